package cli

import (
	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/store"

	"github.com/spf13/cobra"
)

// applyResult persists a mutation and prints the project. Unchanged results write nothing.
func applyResult(cmd *cobra.Command, app *App, s store.Store, db *store.DB, res mutate.Result) error {
	if res.Changed {
		if _, err := s.UpdateProject(db, *res.Project); err != nil {
			return writeErr(cmd, err)
		}
		appendEvent(s, res.EventType, res.Project.ID, res.EventPayload)
	}
	return writeOut(cmd, app, map[string]any{
		"data": res.Project,
		"meta": map[string]any{"changed": res.Changed},
	})
}

// appendEvent records activity best-effort; a failed append never fails the command.
func appendEvent(s store.Store, typ, entityID string, payload any) {
	if err := s.AppendEvent(typ, entityID, payload); err != nil {
		logger.Get("cli").WithError(err).WithField("type", typ).Warn("append event failed")
	}
}
