package cli

import (
	"context"
	"errors"
	"strings"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newAICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "AI strategy and brainstorming tools (requires GEMINI_API_KEY)",
	}
	cmd.AddCommand(newAIStrategyCmd(app))
	cmd.AddCommand(newAIRefineCmd(app))
	cmd.AddCommand(newAITopicCmd(app, "titles", "Suggest video titles for a topic", ai.StrategyClient.GenerateTitles))
	cmd.AddCommand(newAITopicCmd(app, "hashtags", "Suggest hashtags for a topic", ai.StrategyClient.GenerateHashtags))
	cmd.AddCommand(newAITopicCmd(app, "ideas", "Brainstorm video ideas for a topic", ai.StrategyClient.GeneratePromptIdeas))
	return cmd
}

func newAIStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy <project-id>",
		Short: "Regenerate the project's script, shot list and editing plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			strategy, err := aiClient(app).GenerateStrategy(context.Background(), p.Title, p.Idea, p.ContentType, p.Platform)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.ApplyStrategy(db, p.ID, strategy)
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}
	return cmd
}

func newAIRefineCmd(app *App) *cobra.Command {
	var instruction, form string

	cmd := &cobra.Command{
		Use:   "refine <project-id>",
		Short: "Rewrite the project's script following an instruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ai.ParseScriptForm(form)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(instruction) == "" {
				return writeErr(cmd, mutate.ValidationError{Field: "instruction", Message: "is required"})
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := findProjectOrErr(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			script, err := aiClient(app).RefineScript(context.Background(), p.Strategy.Script, instruction, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.UpdateFields(db, p.ID, mutate.ProjectPatch{Script: &script})
			if err != nil {
				return writeErr(cmd, err)
			}
			return applyResult(cmd, app, s, db, res)
		},
	}

	cmd.Flags().StringVar(&instruction, "instruction", "", "What to change (e.g. \"make the hook punchier\")")
	cmd.Flags().StringVar(&form, "form", string(ai.FormShort), "Script form (short|long)")
	return cmd
}

type topicFunc func(ai.StrategyClient, context.Context, string) ([]string, error)

func newAITopicCmd(app *App, use, short string, gen topicFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <topic>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return writeErr(cmd, errors.New("topic is required"))
			}
			out, err := gen(aiClient(app), context.Background(), topic)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"topic": topic, "count": len(out)},
			})
		},
	}
	return cmd
}
