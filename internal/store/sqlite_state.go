package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	metaSchemaVersion = "schema_version"
	metaProjectsSaved = "projects_saved"
)

var stateValidate = validator.New()

func validateTheme(t model.ThemeSettings) error {
	return stateValidate.Struct(t)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation share the file; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			archived INTEGER NOT NULL,
			percent INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_position ON projects(position);`,
		`CREATE TABLE IF NOT EXISTS projects_quarantine (
			id TEXT PRIMARY KEY,
			json TEXT NOT NULL,
			reason TEXT NOT NULL,
			quarantined_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_issued ON events(issued_at_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, issued_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite loads the workspace state from <Dir>/frameflow.sqlite.
// If the collection was never saved but a legacy frameflow-projects.json export exists,
// it is imported once; otherwise the seed collection is returned.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	log := logger.Get("store").WithField("dir", s.Dir)

	out := &DB{
		Version:  currentSchemaVersion,
		Projects: SeedProjects(time.Now().UTC()),
		Theme:    model.DefaultTheme(),
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		log.WithError(err).Error("open state db failed; using seed projects")
		return out, nil
	}
	defer db.Close()

	if v, ok, err := readMeta(ctx, db, metaSchemaVersion); err == nil && ok {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}

	saved, err := hasMeta(ctx, db, metaProjectsSaved)
	switch {
	case err != nil:
		log.WithError(err).Error("read state meta failed; using seed projects")
	case !saved:
		if ps, ok := s.importLegacyExport(ctx, db); ok {
			out.Projects = ps
		}
	default:
		ps, bad, err := readProjectRows(ctx, db)
		if err != nil {
			log.WithError(err).WithField("key", KeyProjects).Warn("read stored projects failed; using seed projects")
			break
		}
		for _, b := range bad {
			log.WithError(b.err).WithField("key", KeyProjects).WithField("project", b.id).Warn("skipping unreadable project row")
		}
		if len(bad) > 0 {
			if err := quarantineRows(ctx, db, bad); err != nil {
				log.WithError(err).WithField("key", KeyProjects).Error("quarantine unreadable project rows failed")
			}
			if len(ps) == 0 {
				log.WithField("key", KeyProjects).Warn("no stored project is readable; using seed projects")
				break
			}
		}
		out.Projects = ps
	}

	if raw, ok, err := readKV(ctx, db, KeyTheme); err != nil {
		log.WithError(err).WithField("key", KeyTheme).Warn("read theme failed; using default theme")
	} else if ok {
		var t model.ThemeSettings
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			log.WithError(err).WithField("key", KeyTheme).Warn("stored theme is corrupt; using default theme")
		} else if err := validateTheme(t); err != nil {
			log.WithError(err).WithField("key", KeyTheme).Warn("stored theme is invalid; using default theme")
		} else {
			out.Theme = t
		}
	}

	if raw, ok, err := readKV(ctx, db, KeyTutorialCompleted); err != nil {
		log.WithError(err).WithField("key", KeyTutorialCompleted).Warn("read tutorial flag failed")
	} else if ok {
		out.TutorialCompleted = strings.TrimSpace(raw) == "true"
	}

	return out, nil
}

func (s Store) importLegacyExport(ctx context.Context, db *sql.DB) ([]model.Project, bool) {
	log := logger.Get("store").WithField("path", s.legacyExportPath())
	b, err := os.ReadFile(s.legacyExportPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("read legacy export failed")
		}
		return nil, false
	}
	ps, err := ImportJSON(b)
	if err != nil {
		log.WithError(err).Warn("legacy export is corrupt; using seed projects")
		return nil, false
	}
	if err := writeProjects(ctx, db, ps); err != nil {
		log.WithError(err).Error("import legacy export failed")
		return nil, false
	}
	log.WithField("count", len(ps)).Info("imported legacy export")
	return ps, true
}

// SaveSQLite writes projects, theme and tutorial flag in one transaction.
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	if err := validateTheme(st.Theme); err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceProjectsTx(ctx, tx, st.Projects); err != nil {
		return err
	}
	themeJSON, err := json.Marshal(st.Theme)
	if err != nil {
		return err
	}
	if err := putKV(ctx, tx, KeyTheme, string(themeJSON)); err != nil {
		return err
	}
	if err := putKV(ctx, tx, KeyTutorialCompleted, strconv.FormatBool(st.TutorialCompleted)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s Store) saveProjects(ps []model.Project) error {
	ctx := context.Background()
	db, err := s.openSQLite(ctx)
	if err != nil {
		logger.Get("store").WithError(err).Error("save projects failed")
		return err
	}
	defer db.Close()
	if err := writeProjects(ctx, db, ps); err != nil {
		logger.Get("store").WithError(err).Error("save projects failed")
		return err
	}
	return nil
}

func (s Store) saveTheme(t model.ThemeSettings) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.saveKV(KeyTheme, string(b))
}

func (s Store) saveTutorial(done bool) error {
	return s.saveKV(KeyTutorialCompleted, strconv.FormatBool(done))
}

func (s Store) saveKV(k, v string) error {
	ctx := context.Background()
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, k, v)
	if err != nil {
		return fmt.Errorf("write %s: %w", k, err)
	}
	return nil
}

func writeProjects(ctx context.Context, db *sql.DB, ps []model.Project) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := replaceProjectsTx(ctx, tx, ps); err != nil {
		return err
	}
	return tx.Commit()
}

// replaceProjectsTx rewrites the whole collection. Position 0 is the newest project.
func replaceProjectsTx(ctx context.Context, tx *sql.Tx, ps []model.Project) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return err
	}
	for i, p := range ps {
		p.Normalize()
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO projects(id, position, title, archived, percent, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, p.Title, boolToInt(p.Archived), p.Progress.Percent, string(raw), p.UpdatedAt.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("insert project %s: %w", p.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, metaSchemaVersion, strconv.Itoa(currentSchemaVersion)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, metaProjectsSaved, "1"); err != nil {
		return err
	}
	return nil
}

func putKV(ctx context.Context, tx *sql.Tx, k, v string) error {
	_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v) VALUES(?, ?)`, k, v)
	return err
}

func readKV(ctx context.Context, db *sql.DB, k string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func readMeta(ctx context.Context, db *sql.DB, k string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(v), true, nil
}

func hasMeta(ctx context.Context, db *sql.DB, k string) (bool, error) {
	_, ok, err := readMeta(ctx, db, k)
	return ok, err
}

// badRow is a stored project row that could not be used.
type badRow struct {
	id  string
	raw string
	err error
}

// readProjectRows decodes rows one by one. Rows that fail to decode or validate are
// returned as bad instead of failing the whole read. Percent is recomputed from the
// milestones so a stale stored value never reaches the views.
func readProjectRows(ctx context.Context, db *sql.DB) ([]model.Project, []badRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, json FROM projects ORDER BY position ASC`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	ps := []model.Project{}
	var bad []badRow
	seen := map[string]bool{}
	for rows.Next() {
		var id, js string
		if err := rows.Scan(&id, &js); err != nil {
			return nil, nil, err
		}
		var p model.Project
		if err := json.Unmarshal([]byte(js), &p); err != nil {
			bad = append(bad, badRow{id: id, raw: js, err: err})
			continue
		}
		if err := stateValidate.Var(strings.TrimSpace(p.ID), "required"); err != nil {
			bad = append(bad, badRow{id: id, raw: js, err: fmt.Errorf("project id: %w", err)})
			continue
		}
		if seen[p.ID] {
			bad = append(bad, badRow{id: id, raw: js, err: fmt.Errorf("duplicate project id %s", p.ID)})
			continue
		}
		seen[p.ID] = true
		p.Normalize()
		p.Progress.Percent = model.ComputePercent(p.Progress)
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return ps, bad, nil
}

// quarantineRows copies unreadable rows aside so the next replace-all save cannot lose them.
func quarantineRows(ctx context.Context, db *sql.DB, bad []badRow) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	at := time.Now().UTC().UnixMilli()
	for _, b := range bad {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO projects_quarantine(id, json, reason, quarantined_at_unixms) VALUES(?, ?, ?, ?)`,
			b.id, b.raw, b.err.Error(), at); err != nil {
			return fmt.Errorf("quarantine project %s: %w", b.id, err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
