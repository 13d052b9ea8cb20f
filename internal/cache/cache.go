// File: cache.go
// Title: Check Result Cache
// Description: SQLite store of syntax check results keyed by file path and
//              content hash, so unchanged files are not parsed again.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-29
// Modified: 2025-03-29
//
// Change History:
// - 2025-03-29 v0.1.0: Initial store

package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

// Memory opens a private in-memory store
const Memory = ":memory:"

// Entry is the cached outcome of checking one file version
type Entry struct {
	Path      string
	Hash      string
	OK        bool
	Line      int
	Column    int
	Message   string
	CheckedAt time.Time
}

// NewEntry builds the entry for a check outcome; err is nil for a file
// without syntax errors
func NewEntry(path, hash string, err *parser.SyntaxError) *Entry {
	e := &Entry{Path: path, Hash: hash, OK: err == nil}
	if err != nil {
		e.Line = err.Pos.Line
		e.Column = err.Pos.Column
		e.Message = err.Msg
	}
	return e
}

// SyntaxError returns the cached syntax error, nil when the file was valid
func (e *Entry) SyntaxError() *parser.SyntaxError {
	if e.OK {
		return nil
	}
	return &parser.SyntaxError{
		Pos: token.Position{Line: e.Line, Column: e.Column},
		Msg: e.Message,
	}
}

// Store persists check results in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the store at path; Memory opens a private
// in-memory database
func Open(path string) (*Store, error) {
	dsn := path
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, storeError(err, "failed to create cache directory", "cache.Open").WithDetail("path", path)
		}
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storeError(err, "failed to open cache database", "cache.Open").WithDetail("path", path)
	}
	// one connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, storeError(err, "failed to initialize cache schema", "cache.Open").WithDetail("path", path)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS results (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		ok INTEGER NOT NULL,
		line INTEGER NOT NULL DEFAULT 0,
		"column" INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		checked_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_checked_at ON results(checked_at);
	`)
	return err
}

// Lookup returns the entry for path when it was recorded for the same
// content hash
func (s *Store) Lookup(ctx context.Context, path, hash string) (*Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		e       = Entry{Path: path}
		checked int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT hash, ok, line, "column", message, checked_at FROM results WHERE path = ?`, path).
		Scan(&e.Hash, &e.OK, &e.Line, &e.Column, &e.Message, &checked)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError(err, "failed to query cache", "cache.Lookup").WithDetail("path", path)
	}
	if e.Hash != hash {
		return nil, false, nil
	}
	e.CheckedAt = time.Unix(0, checked)
	return &e, true, nil
}

// Record stores an entry, replacing an older one for the same path. A zero
// CheckedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CheckedAt.IsZero() {
		e.CheckedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (path, hash, ok, line, "column", message, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			ok = excluded.ok,
			line = excluded.line,
			"column" = excluded."column",
			message = excluded.message,
			checked_at = excluded.checked_at`,
		e.Path, e.Hash, e.OK, e.Line, e.Column, e.Message, e.CheckedAt.UnixNano())
	if err != nil {
		return storeError(err, "failed to record check result", "cache.Record").WithDetail("path", e.Path)
	}
	return nil
}

// Prune deletes entries checked longer than olderThan ago and returns how
// many were removed
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UnixNano()
	result, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, storeError(err, "failed to prune cache", "cache.Prune")
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Count returns the number of entries and of entries with a syntax error
func (s *Store) Count(ctx context.Context) (total, failing int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN ok THEN 0 ELSE 1 END), 0) FROM results`).
		Scan(&total, &failing)
	if err != nil {
		return 0, 0, storeError(err, "failed to count cache entries", "cache.Count")
	}
	return total, failing, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func storeError(err error, msg, op string) *mdwerror.Error {
	return mdwerror.Wrap(err, msg).
		WithCode(mdwerror.CodeCacheError).
		WithOperation(op)
}
