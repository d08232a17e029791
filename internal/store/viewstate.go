package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const viewStateFileName = "viewstate.sqlite"

// ViewState is small, user-facing UI state restored on relaunch: which notes
// are expanded, where the zoom was, which note held the cursor. It is
// intentionally best effort: callers tolerate missing/invalid data. Note
// content is never persisted here; the server is the source of truth.
type ViewState struct {
	OpenIDs     map[string]bool
	ZoomNoteID  string
	FocusNoteID string
}

type Store struct {
	Dir string
}

// DefaultDir resolves the per-user state directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "notelist"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) path() string {
	return filepath.Join(s.Dir, viewStateFileName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.path())
	if err != nil {
		return nil, err
	}
	// busy_timeout avoids "database is locked" flakiness if two instances run.
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
	if err := s.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS open_notes (
			note_id TEXT PRIMARY KEY
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadViewState reads persisted view state, returning an empty state when
// nothing has been saved yet.
func (s Store) LoadViewState(ctx context.Context) (*ViewState, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	st := &ViewState{OpenIDs: map[string]bool{}}

	rows, err := db.QueryContext(ctx, `SELECT note_id FROM open_notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		st.OpenIDs[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	st.ZoomNoteID = s.metaValue(ctx, db, "zoom_note_id")
	st.FocusNoteID = s.metaValue(ctx, db, "focus_note_id")
	return st, nil
}

// SaveViewState replaces the persisted view state wholesale. State is tiny
// (one row per open note), so a full rewrite inside one transaction is
// simpler than diffing.
func (s Store) SaveViewState(ctx context.Context, st *ViewState) error {
	if st == nil {
		return nil
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM open_notes`); err != nil {
		return err
	}
	for id := range st.OpenIDs {
		if id == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO open_notes (note_id) VALUES (?)`, id); err != nil {
			return err
		}
	}
	for k, v := range map[string]string{
		"zoom_note_id":  st.ZoomNoteID,
		"focus_note_id": st.FocusNoteID,
	} {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (k, v) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) metaValue(ctx context.Context, db *sql.DB, key string) string {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}
