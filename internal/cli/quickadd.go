package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/quickadd"

	"github.com/spf13/cobra"
)

func newQuickAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quick-add",
		Short: "Create a project from a short chat (idea, type, platform) read line by line from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			sess := quickadd.New()
			printed := 0
			flush := func() {
				msgs := sess.Messages()
				for _, m := range msgs[printed:] {
					if !m.FromUser {
						fmt.Fprintln(cmd.ErrOrStderr(), "> "+m.Text)
					}
				}
				printed = len(msgs)
			}
			flush()

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				req, err := sess.Submit(sc.Text())
				if err != nil {
					return writeErr(cmd, err)
				}
				flush()
				if req == nil {
					continue
				}

				strategy, genErr := aiClient(app).GenerateStrategy(context.Background(), req.Title, req.Idea, req.ContentType, req.Platform)
				if genErr != nil {
					_ = sess.Fail(genErr)
					flush()
					fmt.Fprintln(cmd.ErrOrStderr(), describeError(genErr))
					continue
				}
				p, err := sess.Complete(strategy, db.NextProjectID(), nowUTC())
				if err != nil {
					return writeErr(cmd, err)
				}
				flush()
				if err := s.CreateProject(db, p); err != nil {
					return writeErr(cmd, err)
				}
				appendEvent(s, "project.create", p.ID, mutate.CreatedPayload(p))
				return writeOut(cmd, app, map[string]any{
					"data": p,
					"meta": map[string]any{"transcript": sess.Messages()},
				})
			}
			if err := sc.Err(); err != nil {
				return writeErr(cmd, err)
			}
			return writeErr(cmd, fmt.Errorf("quick add ended before a project was created (state: %s): %w", sess.State(), io.ErrUnexpectedEOF))
		},
	}
	return cmd
}
