package mutate

import (
	"frameflow-cli/internal/store"
)

// SetProjectArchived archives or restores a project. Both directions refresh updatedAt.
// Callers are responsible for saving db and appending the event.
func SetProjectArchived(db *store.DB, projectID string, archived bool) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	if p.Archived == archived {
		return Result{Project: p, Changed: false}, nil
	}
	p.Archived = archived
	touch(p)

	typ := "project.archive"
	if !archived {
		typ = "project.unarchive"
	}
	return Result{
		Project:      p,
		Changed:      true,
		EventType:    typ,
		EventPayload: map[string]any{"archived": archived},
	}, nil
}
