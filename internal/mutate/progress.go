package mutate

import (
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// SetMilestone flips one milestone and recomputes percent in the same step.
func SetMilestone(db *store.DB, projectID string, m model.Milestone, done bool) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	next := p.Progress.With(m, done)
	if next == p.Progress {
		return Result{Project: p, Changed: false}, nil
	}
	p.Progress = next
	touch(p)
	return Result{
		Project:   p,
		Changed:   true,
		EventType: "project.progress",
		EventPayload: map[string]any{
			"milestone": string(m),
			"done":      done,
			"percent":   p.Progress.Percent,
		},
	}, nil
}
