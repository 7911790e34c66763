package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"frameflow-cli/internal/model"
)

const (
	sqliteFileName       = "frameflow.sqlite"
	legacyExportName     = "frameflow-projects.json"
	currentSchemaVersion = 1

	KeyProjects          = "frameflow-projects"
	KeyTheme             = "frameflow-theme"
	KeyTutorialCompleted = "frameflow-tutorial-completed"
)

// DB is the in-memory workspace state. Projects are kept newest first.
type DB struct {
	Version           int                 `json:"version"`
	Projects          []model.Project     `json:"projects"`
	Theme             model.ThemeSettings `json:"theme"`
	TutorialCompleted bool                `json:"tutorialCompleted"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a project-local .frameflow dir.
// The global config dir (~/.frameflow) is not a workspace and is skipped.
func DiscoverDir(start string) (string, bool) {
	cfgDir, _ := ConfigDir()
	dir := start
	for {
		candidate := filepath.Join(dir, ".frameflow")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() && candidate != filepath.Clean(cfgDir) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the workspace dir when neither --dir nor --workspace is set:
// a .frameflow dir found upward from cwd, else the "default" workspace.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err == nil {
		if found, ok := DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	return WorkspaceDir("default")
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// StateFiles lists the files whose mod time changes when another process writes the workspace.
func (s Store) StateFiles() []string {
	p := s.sqlitePath()
	return []string{p, p + "-wal"}
}

func (s Store) legacyExportPath() string {
	return filepath.Join(s.Dir, legacyExportName)
}

// Load reads the workspace state. Unreadable or corrupt storage never fails the load:
// the problem is logged and the seed collection / default theme is used instead.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

// Save persists the whole state (projects, theme and tutorial flag) in one transaction.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// CreateProject prepends p and persists the collection. db changes only once the save succeeds.
func (s Store) CreateProject(db *DB, p model.Project) error {
	if db == nil {
		return errors.New("nil db")
	}
	p.Normalize()
	next := append([]model.Project{p}, db.Projects...)
	if err := s.saveProjects(next); err != nil {
		return err
	}
	db.Projects = next
	return nil
}

// UpdateProject replaces the project with p.ID. An unknown id is a no-op that writes nothing.
// On a failed save db keeps its previous contents.
func (s Store) UpdateProject(db *DB, p model.Project) (bool, error) {
	if db == nil {
		return false, errors.New("nil db")
	}
	for i := range db.Projects {
		if db.Projects[i].ID == p.ID {
			p.Normalize()
			next := append([]model.Project(nil), db.Projects...)
			next[i] = p
			if err := s.saveProjects(next); err != nil {
				return true, err
			}
			db.Projects = next
			return true, nil
		}
	}
	return false, nil
}

// DeleteProject removes the project with id, keeping the order of the rest.
func (s Store) DeleteProject(db *DB, id string) (bool, error) {
	if db == nil {
		return false, errors.New("nil db")
	}
	id = strings.TrimSpace(id)
	for i := range db.Projects {
		if db.Projects[i].ID == id {
			next := append(db.Projects[:i:i], db.Projects[i+1:]...)
			if err := s.saveProjects(next); err != nil {
				return true, err
			}
			db.Projects = next
			return true, nil
		}
	}
	return false, nil
}

// ReplaceProjects swaps in a whole collection (import) and persists it.
func (s Store) ReplaceProjects(db *DB, ps []model.Project) error {
	if db == nil {
		return errors.New("nil db")
	}
	out := make([]model.Project, 0, len(ps))
	for _, p := range ps {
		p.Normalize()
		out = append(out, p)
	}
	if err := s.saveProjects(out); err != nil {
		return err
	}
	db.Projects = out
	return nil
}

func (s Store) SaveTheme(db *DB, theme model.ThemeSettings) error {
	if err := validateTheme(theme); err != nil {
		return err
	}
	if err := s.saveTheme(theme); err != nil {
		return err
	}
	if db != nil {
		db.Theme = theme
	}
	return nil
}

func (s Store) SetTutorialCompleted(db *DB, done bool) error {
	if err := s.saveTutorial(done); err != nil {
		return err
	}
	if db != nil {
		db.TutorialCompleted = done
	}
	return nil
}

func (db *DB) FindProject(id string) (*model.Project, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Projects {
		if db.Projects[i].ID == id {
			return &db.Projects[i], true
		}
	}
	return nil, false
}

func (db *DB) projectIDExists(id string) bool {
	_, ok := db.FindProject(id)
	return ok
}
