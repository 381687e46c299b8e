package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	document_path TEXT NOT NULL DEFAULT '',
	pinned        INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL,
	last_updated  TEXT NOT NULL,
	version       INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	type       TEXT NOT NULL,
	content    TEXT NOT NULL,
	timestamp  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id, id);
`

// Store wraps the SQLite database holding chat sessions.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session and returns it.
func (s *Store) CreateSession(ctx context.Context, name, documentPath string) (*Session, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	sess := &Session{
		ID:           uuid.NewString(),
		Name:         name,
		DocumentPath: documentPath,
		CreatedAt:    now,
		LastUpdated:  now,
		Version:      1,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, document_path, pinned, created_at, last_updated, version)
		 VALUES (?, ?, ?, 0, ?, ?, 1)`,
		sess.ID, sess.Name, sess.DocumentPath, sess.CreatedAt, sess.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// GetSession returns a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var pinned int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, document_path, pinned, created_at, last_updated, version
		 FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Name, &sess.DocumentPath, &pinned, &sess.CreatedAt, &sess.LastUpdated, &sess.Version)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	sess.Pinned = pinned != 0
	return &sess, nil
}

// ListSessions returns all sessions, pinned first, most recently updated
// within each group.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, document_path, pinned, created_at, last_updated, version
		 FROM sessions ORDER BY pinned DESC, last_updated DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var pinned int
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.DocumentPath, &pinned,
			&sess.CreatedAt, &sess.LastUpdated, &sess.Version); err != nil {
			return nil, err
		}
		sess.Pinned = pinned != 0
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// RenameSession updates a session's display name.
func (s *Store) RenameSession(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET name = ?, last_updated = ? WHERE id = ?`,
		name, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("renaming session: %w", err)
	}
	return checkFound(res, id)
}

// SetPinned pins or unpins a session.
func (s *Store) SetPinned(ctx context.Context, id string, pinned bool) error {
	p := 0
	if pinned {
		p = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET pinned = ? WHERE id = ?`, p, id)
	if err != nil {
		return fmt.Errorf("pinning session: %w", err)
	}
	return checkFound(res, id)
}

// DeleteSession removes a session and its entries.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return checkFound(res, id)
}

// AppendTurn appends a user/response entry pair to a session's history
// under optimistic concurrency: if the stored version no longer equals
// expectedVersion the write is rejected with ErrVersionConflict and the
// caller must re-read and retry.
func (s *Store) AppendTurn(ctx context.Context, sessionID, userContent, responseContent string, expectedVersion int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET version = version + 1, last_updated = ?
		 WHERE id = ? AND version = ?`,
		now, sessionID, expectedVersion)
	if err != nil {
		return fmt.Errorf("bumping session version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a stale version from a missing session.
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM sessions WHERE id = ?`, sessionID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return fmt.Errorf("%w: session %s expected version %d", ErrVersionConflict, sessionID, expectedVersion)
	}

	for _, e := range []Entry{
		{Type: TypeUser, Content: userContent, Timestamp: now},
		{Type: TypeResponse, Content: responseContent, Timestamp: now},
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (session_id, type, content, timestamp) VALUES (?, ?, ?, ?)`,
			sessionID, e.Type, e.Content, e.Timestamp); err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
	}

	return tx.Commit()
}

// ClearHistory removes all entries from a session under the same
// optimistic-concurrency rule as AppendTurn.
func (s *Store) ClearHistory(ctx context.Context, sessionID string, expectedVersion int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET version = version + 1, last_updated = ?
		 WHERE id = ? AND version = ?`,
		now, sessionID, expectedVersion)
	if err != nil {
		return fmt.Errorf("bumping session version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: session %s expected version %d", ErrVersionConflict, sessionID, expectedVersion)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	return tx.Commit()
}

// Recent returns the last n entries of a session in chronological order.
func (s *Store) Recent(ctx context.Context, sessionID string, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, content, timestamp FROM (
			SELECT id, type, content, timestamp FROM entries
			WHERE session_id = ? ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Type, &e.Content, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func checkFound(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}
