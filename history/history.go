// Package history persists chat sessions and their turn-by-turn history
// in SQLite. The query pipeline itself only reads entries supplied by the
// caller; this package is the persistence collaborator behind that.
package history

import "errors"

// Entry types.
const (
	TypeUser     = "user"
	TypeResponse = "response"
)

// Entry is a single chat-history item, consumed read-only by the pipeline.
type Entry struct {
	Type      string `json:"type"` // "user" or "response"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// Session is a named conversation, optionally bound to a document.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DocumentPath string `json:"document_path,omitempty"`
	Pinned       bool   `json:"pinned"`
	CreatedAt    string `json:"created_at"`
	LastUpdated  string `json:"last_updated"`
	Version      int    `json:"version"`
}

var (
	// ErrSessionNotFound is returned when a session ID does not exist.
	ErrSessionNotFound = errors.New("history: session not found")

	// ErrVersionConflict is returned when a write carries a stale session
	// version. Callers should re-read the session and retry.
	ErrVersionConflict = errors.New("history: session version conflict")
)
