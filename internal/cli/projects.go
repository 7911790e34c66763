package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsArchiveCmd(app, true))
	cmd.AddCommand(newProjectsArchiveCmd(app, false))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var ps []model.Project
			switch strings.ToLower(strings.TrimSpace(view)) {
			case "", "active":
				ps = model.Active(db.Projects)
			case "completed":
				ps = model.Completed(db.Projects)
			case "archived":
				ps = model.Archived(db.Projects)
			case "all":
				ps = db.Projects
			default:
				return writeErr(cmd, fmt.Errorf("unknown view: %q (expected active|completed|archived|all)", view))
			}
			if ps == nil {
				ps = []model.Project{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": ps,
				"meta": map[string]any{"view": view, "count": len(ps)},
			})
		},
	}

	cmd.Flags().StringVar(&view, "view", "active", "Which projects to list (active|completed|archived|all)")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := db.FindProject(args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "project", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var (
		title    string
		idea     string
		typ      string
		platform string
		deadline string
		noAI     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project (generates an AI strategy unless --no-ai)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			in := mutate.ProjectInput{
				Title:       title,
				Idea:        idea,
				ContentType: model.ContentType(strings.ToLower(strings.TrimSpace(typ))),
				Platform:    model.Platform(strings.ToLower(strings.TrimSpace(platform))),
			}
			if in.Deadline, err = parseOptionalDateTime(deadline); err != nil {
				return writeErr(cmd, err)
			}
			// Validate first so a bad form never reaches the network.
			if err := in.Validate(); err != nil {
				return writeErr(cmd, err)
			}

			strategy := model.Strategy{}
			if !noAI {
				strategy, err = aiClient(app).GenerateStrategy(context.Background(), in.Title, in.Idea, in.ContentType, in.Platform)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			p, err := mutate.NewProject(db, in, strategy)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.CreateProject(db, p); err != nil {
				return writeErr(cmd, err)
			}
			appendEvent(s, "project.create", p.ID, mutate.CreatedPayload(p))
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&idea, "idea", "", "Core idea")
	cmd.Flags().StringVar(&typ, "type", string(model.ContentVlog), "Content type (short|vlog|cinematic|tutorial)")
	cmd.Flags().StringVar(&platform, "platform", string(model.PlatformYouTube), "Platform (youtube|instagram|tiktok|x|facebook|other)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip strategy generation (empty script, shots and editing plan)")
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var (
		title         string
		idea          string
		typ           string
		platform      string
		deadline      string
		clearDeadline bool
		script        string
		scriptFile    string
	)

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Edit project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var patch mutate.ProjectPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("idea") {
				patch.Idea = &idea
			}
			if flags.Changed("type") {
				ct := model.ContentType(strings.ToLower(strings.TrimSpace(typ)))
				patch.ContentType = &ct
			}
			if flags.Changed("platform") {
				pl := model.Platform(strings.ToLower(strings.TrimSpace(platform)))
				patch.Platform = &pl
			}
			if flags.Changed("deadline") {
				d, err := parseDateTime(deadline)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Deadline = &d
			}
			patch.ClearDeadline = clearDeadline
			if patch.Deadline != nil && clearDeadline {
				return writeErr(cmd, errors.New("use either --deadline or --clear-deadline"))
			}
			if flags.Changed("script") && flags.Changed("script-file") {
				return writeErr(cmd, errors.New("use either --script or --script-file"))
			}
			if flags.Changed("script") {
				patch.Script = &script
			}
			if flags.Changed("script-file") {
				b, err := os.ReadFile(scriptFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				body := string(b)
				patch.Script = &body
			}

			res, err := mutate.UpdateFields(db, args[0], patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&idea, "idea", "", "New idea")
	cmd.Flags().StringVar(&typ, "type", "", "New content type")
	cmd.Flags().StringVar(&platform, "platform", "", "New platform")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "Remove the deadline")
	cmd.Flags().StringVar(&script, "script", "", "Replace the script")
	cmd.Flags().StringVar(&scriptFile, "script-file", "", "Replace the script with the contents of a file")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			ok, err := s.DeleteProject(db, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "project", ID: id})
			}
			appendEvent(s, "project.delete", id, map[string]any{})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	return cmd
}

func newProjectsArchiveCmd(app *App, archived bool) *cobra.Command {
	use, short := "archive", "Archive a project (hidden from dashboard and calendar)"
	if !archived {
		use, short = "unarchive", "Restore an archived project"
	}
	cmd := &cobra.Command{
		Use:   use + " <project-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetProjectArchived(db, args[0], archived)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}
	return cmd
}

// findProjectOrErr is the lookup shared by the child-list commands.
func findProjectOrErr(db *store.DB, id string) (*model.Project, error) {
	p, ok := db.FindProject(id)
	if !ok {
		return nil, mutate.NotFoundError{Kind: "project", ID: strings.TrimSpace(id)}
	}
	return p, nil
}
