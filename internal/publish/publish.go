// Package publish writes projects out as markdown production briefs.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/store"
)

type WriteOptions struct {
	IncludeArchived bool
	Overwrite       bool
	Render          RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteProject writes <toDir>/projects/<id>.md.
func WriteProject(db *store.DB, projectID string, toDir string, opt WriteOptions) (WriteResult, error) {
	if db == nil {
		return WriteResult{}, errors.New("missing db")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return WriteResult{}, errors.New("missing project id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	p, ok := db.FindProject(projectID)
	if !ok {
		return WriteResult{}, mutate.NotFoundError{Kind: "project", ID: projectID}
	}
	if p.Archived && !opt.IncludeArchived {
		return WriteResult{}, errors.New("project archived (use --include-archived): " + p.ID)
	}

	outDir := filepath.Join(filepath.Clean(toDir), "projects")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, p.ID+".md")
	if err := writeFile(outPath, []byte(RenderProjectMarkdown(*p, opt.Render)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteAll writes index.md plus one brief per project. Archived projects are skipped
// unless IncludeArchived is set. It stops on the first error.
func WriteAll(db *store.DB, toDir string, opt WriteOptions) (WriteResult, error) {
	if db == nil {
		return WriteResult{}, errors.New("missing db")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	ps := make([]model.Project, 0, len(db.Projects))
	for _, p := range db.Projects {
		if p.Archived && !opt.IncludeArchived {
			continue
		}
		ps = append(ps, p)
	}

	projectsDir := filepath.Join(toDir, "projects")
	if err := os.MkdirAll(projectsDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(ps)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, p := range ps {
		path := filepath.Join(projectsDir, p.ID+".md")
		if err := writeFile(path, []byte(RenderProjectMarkdown(p, opt.Render)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, path)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
