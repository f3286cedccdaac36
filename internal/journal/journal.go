package journal

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository stores entries in the journal table.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Close closes the underlying DB connection used by the Repository.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// ProjectKey normalises a project root into the key entries are stored under.
func ProjectKey(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}

// Record stores e, assigning its ID and timestamp, and returns the stored entry.
func (r *Repository) Record(e Entry) (Entry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()
	if e.Status == "" {
		e.Status = StatusOK
	}
	_, err := r.db.Exec(`INSERT INTO journal (id, kind, project, version, detail, status, error, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Project, e.Version, e.Detail, string(e.Status), e.Error, e.URL,
		e.CreatedAt.Format(timeLayout))
	if err != nil {
		return Entry{}, fmt.Errorf("record journal entry: %w", err)
	}
	return e, nil
}

// ListOptions narrows List. Zero values match everything.
type ListOptions struct {
	Project string
	Kind    Kind
	Limit   int
}

// List returns entries newest first.
func (r *Repository) List(opts ListOptions) ([]Entry, error) {
	q := `SELECT id, kind, project, version, detail, status, error, url, created_at FROM journal WHERE 1=1`
	var args []any
	if opts.Project != "" {
		q += " AND project = ?"
		args = append(args, opts.Project)
	}
	if opts.Kind != "" {
		q += " AND kind = ?"
		args = append(args, string(opts.Kind))
	}
	q += " ORDER BY created_at DESC, rowid DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var kind, status, created string
		if err := rows.Scan(&e.ID, &kind, &e.Project, &e.Version, &e.Detail, &status, &e.Error, &e.URL, &created); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.Status = Status(status)
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("entry %s: bad timestamp %q: %w", e.ID, created, err)
		}
		e.CreatedAt = t
		out = append(out, e)
	}
	return out, rows.Err()
}

// Latest returns the newest entry of kind for project with status ok, or nil.
func (r *Repository) Latest(project string, kind Kind) (*Entry, error) {
	entries, err := r.List(ListOptions{Project: project, Kind: kind})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Status == StatusOK {
			return &e, nil
		}
	}
	return nil, nil
}
