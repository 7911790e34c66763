package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/config"
	"frameflow-cli/internal/format"
	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/store"
	"frameflow-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string

	Config *config.Configuration
	// AI is created from Config on first use unless set beforehand (tests).
	AI ai.StrategyClient
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "frameflow",
		Short:        "FrameFlow (local-first) content planner: CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  frameflow

  # Scriptable commands
  frameflow projects list --view active
  frameflow calendar agenda --days 7

  # Direct project lookup (shortcut for: frameflow projects show <proj-id>)
  frameflow proj-seed0001
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupAmbient(app)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("FRAMEFLOW_DIR", ""), "Path to store dir (advanced: overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("FRAMEFLOW_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FRAMEFLOW_FORMAT", format.JSON), "Output format (json|yaml)")

	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newProgressCmd(app))
	cmd.AddCommand(newShotsCmd(app))
	cmd.AddCommand(newEditingCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newCalendarCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newTutorialCmd(app))
	cmd.AddCommand(newAICmd(app))
	cmd.AddCommand(newQuickAddCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

// setupAmbient loads the environment config and starts the file logger.
// Logging problems never block a command.
func setupAmbient(app *App) error {
	if app.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load environment config: %w", err)
		}
		app.Config = cfg
	}
	logDir, err := store.LogDir()
	if err != nil {
		logDir = ""
	}
	_ = logger.Init(logger.Config{
		Dir:        logDir,
		Level:      app.Config.LogLevel,
		Stderr:     app.Config.LogStderr,
		MaxSizeMB:  app.Config.LogMaxSizeMB,
		MaxBackups: app.Config.LogMaxBackups,
	})
	return nil
}

func aiClient(app *App) ai.StrategyClient {
	if app.AI == nil {
		app.AI = ai.NewFromConfig(app.Config)
	}
	return app.AI
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Store:     s,
		DB:        db,
		Workspace: app.Workspace,
		AI:        aiClient(app),
	})
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

// resolveDir picks the store dir:
// 1) --dir
// 2) --workspace
// 3) a .frameflow dir found upward from cwd
// 4) ~/.frameflow/config.json currentWorkspace
// 5) the "default" workspace
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if app.Workspace != "" {
		d, err := store.WorkspaceDir(app.Workspace)
		if err != nil {
			return "", err
		}
		app.Dir = d
		return d, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := store.DiscoverDir(cwd); ok {
			app.Dir = found
			return found, nil
		}
	}
	if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
		d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
		if err != nil {
			return "", err
		}
		app.Workspace = cfg.CurrentWorkspace
		app.Dir = d
		return d, nil
	}

	app.Workspace = "default"
	d, err := store.WorkspaceDir(app.Workspace)
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), describeError(err))
	return err
}

func nowUTC() time.Time { return time.Now().UTC() }
