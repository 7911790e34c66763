package mutate

import (
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// Result is returned by every project mutation. Mutations work on a copy, so db is left
// untouched until the caller persists the project through store.UpdateProject and appends
// EventType/EventPayload to the activity log when Changed.
type Result struct {
	Project      *model.Project
	Changed      bool
	EventType    string
	EventPayload map[string]any
}

func findProject(db *store.DB, projectID string) (*model.Project, error) {
	projectID = strings.TrimSpace(projectID)
	if db == nil || projectID == "" {
		return nil, NotFoundError{Kind: "project", ID: projectID}
	}
	p, ok := db.FindProject(projectID)
	if !ok {
		return nil, NotFoundError{Kind: "project", ID: projectID}
	}
	cp := p.Clone()
	return &cp, nil
}
