package internal

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// HistoryEntry is one recorded query run.
type HistoryEntry struct {
	ID           int64
	Query        string
	SQL          string
	Success      bool
	ErrorMessage string
	RowCount     int
	CreatedAt    time.Time
}

// HistoryStore keeps a local record of query runs in a SQLite database.
type HistoryStore struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS query_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	sql_text TEXT NOT NULL DEFAULT '',
	success INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	row_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// OpenHistoryStore opens (creating if needed) the history database at
// path.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &HistoryError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &HistoryError{Op: "open", Err: err}
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, &HistoryError{Op: "open", Err: err}
	}

	return &HistoryStore{db: db}, nil
}

// Record appends one query run to the history.
func (s *HistoryStore) Record(entry HistoryEntry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO query_history (query, sql_text, success, error_message, row_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Query, entry.SQL, boolToInt(entry.Success), entry.ErrorMessage, entry.RowCount, created,
	)
	if err != nil {
		return &HistoryError{Op: "record", Err: err}
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *HistoryStore) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, query, sql_text, success, error_message, row_count, created_at
		 FROM query_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &HistoryError{Op: "list", Err: err}
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var success int
		if err := rows.Scan(&e.ID, &e.Query, &e.SQL, &success, &e.ErrorMessage, &e.RowCount, &e.CreatedAt); err != nil {
			return nil, &HistoryError{Op: "list", Err: err}
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &HistoryError{Op: "list", Err: err}
	}

	return entries, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
