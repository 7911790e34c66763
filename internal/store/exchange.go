package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"frameflow-cli/internal/model"
)

// ExportJSON renders the collection in the browser-compatible format: a bare JSON array.
func ExportJSON(db *DB) ([]byte, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	ps := db.Projects
	if ps == nil {
		ps = []model.Project{}
	}
	for i := range ps {
		ps[i].Normalize()
	}
	return json.MarshalIndent(ps, "", "  ")
}

// ImportJSON parses an exported collection. It accepts the bare array written by ExportJSON
// (and by the browser app) as well as the CLI envelope {"data": [...]}.
// Percent is recomputed from the milestones.
func ImportJSON(b []byte) ([]model.Project, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("empty input")
	}

	var ps []model.Project
	if b[0] == '{' {
		var env struct {
			Data     []model.Project `json:"data"`
			Projects []model.Project `json:"projects"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("parse projects: %w", err)
		}
		ps = env.Data
		if ps == nil {
			ps = env.Projects
		}
	} else if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	if ps == nil {
		ps = []model.Project{}
	}

	seen := map[string]bool{}
	for i := range ps {
		p := &ps[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("project %d: missing id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate project id: %s", p.ID)
		}
		seen[p.ID] = true
		p.Progress.Percent = model.ComputePercent(p.Progress)
		p.Normalize()
	}
	return ps, nil
}
