// Package history records per-item decisions for run reports.
// It is never consulted for eligibility; the ledger alone gates
// reprocessing.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/subarr/internal/engine"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	item_key   TEXT NOT NULL,
	title      TEXT NOT NULL,
	decision   TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_run ON history(run_id);
`

// Entry is one recorded decision.
type Entry struct {
	ID        int64
	RunID     string
	ItemKey   string
	Title     string
	Decision  string
	Detail    string
	CreatedAt time.Time
}

// Filter specifies criteria for listing history.
type Filter struct {
	RunID    *string
	Decision *string
	Limit    int
}

// Store persists history records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle (used by tests).
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Add inserts a new history entry.
func (s *Store) Add(h *Entry) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO history (run_id, item_key, title, decision, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.RunID, h.ItemKey, h.Title, h.Decision, h.Detail, now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	h.ID = id
	h.CreatedAt = now
	return nil
}

// List returns history entries matching the filter, most recent first.
func (s *Store) List(f Filter) ([]*Entry, error) {
	var conditions []string
	var args []any

	if f.RunID != nil {
		conditions = append(conditions, "run_id = ?")
		args = append(args, *f.RunID)
	}
	if f.Decision != nil {
		conditions = append(conditions, "decision = ?")
		args = append(args, *f.Decision)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, run_id, item_key, title, decision, detail, created_at
		FROM history ` + whereClause + ` ORDER BY id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		h := &Entry{}
		if err := rows.Scan(&h.ID, &h.RunID, &h.ItemKey, &h.Title, &h.Decision, &h.Detail, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return results, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Recorder binds a store to one run id and satisfies the engine's
// HistoryRecorder interface.
type Recorder struct {
	Store *Store
	RunID string
}

var _ engine.HistoryRecorder = (*Recorder)(nil)

// Record writes one decision row for the bound run.
func (r *Recorder) Record(itemKey, title string, decision engine.Decision, detail string) error {
	return r.Store.Add(&Entry{
		RunID:    r.RunID,
		ItemKey:  itemKey,
		Title:    title,
		Decision: string(decision),
		Detail:   detail,
	})
}
