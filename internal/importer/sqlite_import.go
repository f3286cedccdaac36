// Package importer merges journal entries from an exported SQLite file.
package importer

import (
	"database/sql"
	"fmt"
	"os"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

// Result counts the entries seen in the source file.
type Result struct {
	Imported int
	Skipped  int
}

// ImportEntries copies every journal entry of srcPath into dst. Entries
// whose id is already present are skipped, so importing the same file twice
// is harmless.
func ImportEntries(dst *sql.DB, srcPath string) (Result, error) {
	var res Result
	// sql.Open would create a missing file
	if _, err := os.Stat(srcPath); err != nil {
		return res, fmt.Errorf("open src: %w", err)
	}
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return res, fmt.Errorf("open src: %w", err)
	}
	defer func() { _ = src.Close() }()

	rows, err := src.Query(`SELECT id, kind, project, version, detail, status, error, url, created_at FROM journal`)
	if err != nil {
		return res, fmt.Errorf("read src journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, kind, project, version, detail, status, errText, url, createdAt string
		if err := rows.Scan(&id, &kind, &project, &version, &detail, &status, &errText, &url, &createdAt); err != nil {
			return res, err
		}
		r, err := dst.Exec(`INSERT OR IGNORE INTO journal (id, kind, project, version, detail, status, error, url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, id, kind, project, version, detail, status, errText, url, createdAt)
		if err != nil {
			return res, fmt.Errorf("insert entry %s: %w", id, err)
		}
		if n, _ := r.RowsAffected(); n == 0 {
			res.Skipped++
			continue
		}
		res.Imported++
	}
	return res, rows.Err()
}
