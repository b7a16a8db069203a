package cleanup

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Journal is the audit trail of profile deletions, kept in SQLite so
// helpdesk can answer "who deleted my profile" months later.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

// JournalEntry is one recorded deletion attempt.
type JournalEntry struct {
	ID        int64
	Root      string
	Path      string
	User      string
	SizeBytes int64
	Deleted   bool
	Message   string
	CreatedAt string // RFC3339, UTC
}

// OpenJournal opens (and if needed creates) the journal database.
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS deletions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			path TEXT NOT NULL,
			username TEXT NOT NULL,
			size_bytes INTEGER NOT NULL DEFAULT 0,
			deleted INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create deletions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_deletions_username ON deletions(username)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record stores the outcome of one deletion attempt.
func (j *Journal) Record(root string, res FolderResult) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	deleted := 0
	if res.Deleted {
		deleted = 1
	}

	_, err := j.db.Exec(
		"INSERT INTO deletions (root, path, username, size_bytes, deleted, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		root, res.Path, res.User, res.SizeBytes, deleted, res.Message,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record deletion: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`
		SELECT id, root, path, username, size_bytes, deleted, message, created_at
		FROM deletions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var deleted int
		if err := rows.Scan(&e.ID, &e.Root, &e.Path, &e.User, &e.SizeBytes, &deleted, &e.Message, &e.CreatedAt); err != nil {
			continue
		}
		e.Deleted = deleted != 0
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the total number of journal entries.
func (j *Journal) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	var count int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM deletions").Scan(&count); err != nil {
		return 0
	}
	return count
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
