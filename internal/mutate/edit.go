package mutate

import (
	"strings"
	"time"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// ProjectPatch carries the editable fields; nil means unchanged.
type ProjectPatch struct {
	Title         *string
	Idea          *string
	ContentType   *model.ContentType
	Platform      *model.Platform
	Deadline      *time.Time
	ClearDeadline bool
	Script        *string
}

func (pt ProjectPatch) empty() bool {
	return pt.Title == nil && pt.Idea == nil && pt.ContentType == nil && pt.Platform == nil &&
		pt.Deadline == nil && !pt.ClearDeadline && pt.Script == nil
}

// UpdateFields applies patch after validating the merged result. Nothing changes on error.
func UpdateFields(db *store.DB, projectID string, patch ProjectPatch) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	if patch.empty() {
		return Result{Project: p, Changed: false}, nil
	}

	in := ProjectInput{
		Title:       p.Title,
		Idea:        p.Idea,
		ContentType: p.ContentType,
		Platform:    p.Platform,
		Deadline:    p.Deadline,
	}
	fields := []string{}
	if patch.Title != nil {
		in.Title = *patch.Title
		fields = append(fields, "title")
	}
	if patch.Idea != nil {
		in.Idea = *patch.Idea
		fields = append(fields, "idea")
	}
	if patch.ContentType != nil {
		in.ContentType = *patch.ContentType
		fields = append(fields, "contentType")
	}
	if patch.Platform != nil {
		in.Platform = *patch.Platform
		fields = append(fields, "platform")
	}
	if patch.ClearDeadline {
		in.Deadline = nil
		fields = append(fields, "deadline")
	} else if patch.Deadline != nil {
		d := *patch.Deadline
		in.Deadline = &d
		fields = append(fields, "deadline")
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	p.Title = in.Title
	p.Idea = in.Idea
	p.ContentType = in.ContentType
	p.Platform = in.Platform
	p.Deadline = in.Deadline
	if patch.Script != nil {
		p.Strategy.Script = *patch.Script
		fields = append(fields, "script")
	}
	touch(p)
	return Result{
		Project:      p,
		Changed:      true,
		EventType:    "project.update",
		EventPayload: map[string]any{"fields": strings.Join(fields, ",")},
	}, nil
}

// ApplyStrategy replaces the whole strategy (a regenerated AI plan).
func ApplyStrategy(db *store.DB, projectID string, s model.Strategy) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	p.Strategy = s
	EnsureChildIDs(p)
	p.Normalize()
	touch(p)
	return Result{
		Project:   p,
		Changed:   true,
		EventType: "project.strategy",
		EventPayload: map[string]any{
			"shots":       len(p.Strategy.Shots),
			"editingPlan": len(p.Strategy.EditingPlan),
		},
	}, nil
}
