package store

import (
	"context"
	"encoding/json"
	"fmt"

	"frameflow-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level     DoctorIssueLevel `json:"level"`
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	ProjectID string           `json:"projectId,omitempty"`
	ChildID   string           `json:"childId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor reads the stored rows directly (without the seed fallback Load applies)
// and reports corrupt rows plus invariant violations.
func (s Store) Doctor() DoctorReport {
	r := DoctorReport{Issues: []DoctorIssue{}}
	ctx := context.Background()

	db, err := s.openSQLite(ctx)
	if err != nil {
		r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "db_open_failed", Message: err.Error()})
		return r
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, json FROM projects ORDER BY position ASC`)
	if err != nil {
		r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "db_query_failed", Message: err.Error()})
		return r
	}
	defer rows.Close()

	var ps []model.Project
	for rows.Next() {
		var id, js string
		if err := rows.Scan(&id, &js); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "db_query_failed", Message: err.Error()})
			return r
		}
		var p model.Project
		if err := json.Unmarshal([]byte(js), &p); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "project_invalid_json", Message: err.Error(), ProjectID: id})
			continue
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "db_query_failed", Message: err.Error()})
	}

	if raw, ok, err := readKV(ctx, db, KeyTheme); err == nil && ok {
		var t model.ThemeSettings
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "theme_invalid_json", Message: err.Error()})
		} else if err := validateTheme(t); err != nil {
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "theme_invalid", Message: err.Error()})
		}
	}

	qrows, err := db.QueryContext(ctx, `SELECT id, reason FROM projects_quarantine ORDER BY quarantined_at_unixms ASC`)
	if err == nil {
		for qrows.Next() {
			var id, reason string
			if err := qrows.Scan(&id, &reason); err != nil {
				break
			}
			r.Issues = append(r.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "project_quarantined", Message: "unreadable row kept aside: " + reason, ProjectID: id})
		}
		_ = qrows.Close()
	}

	r.Issues = append(r.Issues, CheckProjects(ps)...)
	return r
}

// CheckProjects reports invariant violations in an in-memory collection.
func CheckProjects(ps []model.Project) []DoctorIssue {
	out := []DoctorIssue{}
	seen := map[string]bool{}
	for _, p := range ps {
		if seen[p.ID] {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelError, Code: "duplicate_project_id", Message: "project id is used more than once", ProjectID: p.ID})
		}
		seen[p.ID] = true

		if want := model.ComputePercent(p.Progress); p.Progress.Percent != want {
			out = append(out, DoctorIssue{
				Level:     DoctorIssueLevelError,
				Code:      "percent_out_of_sync",
				Message:   fmt.Sprintf("percent is %d but milestones give %d", p.Progress.Percent, want),
				ProjectID: p.ID,
			})
		}
		if !p.CreatedAt.IsZero() && p.UpdatedAt.Before(p.CreatedAt) {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "updated_before_created", Message: "updatedAt is before createdAt", ProjectID: p.ID})
		}
		if !p.ContentType.Valid() {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "unknown_content_type", Message: fmt.Sprintf("unknown content type %q", p.ContentType), ProjectID: p.ID})
		}
		if !p.Platform.Valid() {
			out = append(out, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "unknown_platform", Message: fmt.Sprintf("unknown platform %q", p.Platform), ProjectID: p.ID})
		}

		var shotIDs, stepIDs []string
		for _, sh := range p.Strategy.Shots {
			shotIDs = append(shotIDs, sh.ID)
		}
		for _, st := range p.Strategy.EditingPlan {
			stepIDs = append(stepIDs, st.ID)
		}
		out = append(out, duplicateChildren(p.ID, "shot", shotIDs)...)
		out = append(out, duplicateChildren(p.ID, "editing step", stepIDs)...)
		for _, ph := range model.Phases {
			var ids []string
			for _, it := range p.Schedule.Items(ph) {
				ids = append(ids, it.ID)
			}
			out = append(out, duplicateChildren(p.ID, string(ph)+" item", ids)...)
		}
	}
	return out
}

func duplicateChildren(projectID, kind string, ids []string) []DoctorIssue {
	var out []DoctorIssue
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			out = append(out, DoctorIssue{
				Level:     DoctorIssueLevelError,
				Code:      "duplicate_child_id",
				Message:   fmt.Sprintf("%s id is used more than once", kind),
				ProjectID: projectID,
				ChildID:   id,
			})
		}
		seen[id] = true
	}
	return out
}
