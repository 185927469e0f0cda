// Package journal records handled commands and their replies in SQLite.
//
// The journal exists for diagnostics: it answers "what did the device do
// and when", the same role the serial transcript plays on the bench. It
// is append-only from ledd's point of view and never read back into the
// scheduler.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/ledd/internal/sched"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a SQLite-backed command log.
//
// A fresh session id is generated per Open, so rows from successive
// daemon runs are distinguishable in one database file.
type Journal struct {
	db      *sql.DB
	session string
}

// Entry is one journaled command or notice.
type Entry struct {
	ID      int64
	Session string
	Tick    sched.Ticks
	Line    string // empty for asynchronous notices
	Reply   string
}

// Open creates or opens the journal database at path. Use ":memory:" for
// tests. The database is configured with WAL mode and a single connection
// (SQLite allows one writer; the controller is the only caller).
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply journal schema: %w", err)
	}

	return &Journal{db: db, session: uuid.NewString()}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Session returns the session id for this journal instance.
func (j *Journal) Session() string { return j.session }

// Record appends one handled line and its reply. Implements
// controller.Recorder; a failed insert is logged, not propagated - the
// journal must never disturb command handling.
func (j *Journal) Record(tick sched.Ticks, line, reply string) {
	_, err := j.db.Exec(
		"INSERT INTO commands (session, tick, line, reply) VALUES (?, ?, ?, ?)",
		j.session, int64(tick), line, reply,
	)
	if err != nil {
		slog.Error("journal insert failed", "error", err)
	}
}

// Recent returns the latest n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, session, tick, line, reply FROM commands ORDER BY id DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tick int64
		if err := rows.Scan(&e.ID, &e.Session, &tick, &e.Line, &e.Reply); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		e.Tick = sched.Ticks(tick)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
