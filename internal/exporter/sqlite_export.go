// Package exporter writes the journal out to standalone SQLite files.
package exporter

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/VoxDroid/pkgrel/internal/config"
	dbpkg "github.com/VoxDroid/pkgrel/internal/db"
)

// ExportDatabase copies the active journal database to dstPath.
func ExportDatabase(dstPath string) error {
	src, err := config.DBPath()
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source db: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create dst db: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return nil
}

// ExportProject writes the journal entries of one project into a new
// SQLite DB at dstPath and returns how many were copied. dstPath must not
// exist yet.
func ExportProject(srcDB *sql.DB, project, dstPath string) (int, error) {
	if _, err := os.Stat(dstPath); err == nil {
		return 0, fmt.Errorf("%s already exists", dstPath)
	}
	dstDB, err := dbpkg.Open(dstPath)
	if err != nil {
		return 0, fmt.Errorf("open dst db: %w", err)
	}
	defer func() { _ = dstDB.Close() }()

	rows, err := srcDB.Query(`SELECT id, kind, project, version, detail, status, error, url, created_at
		FROM journal WHERE project = ? ORDER BY created_at ASC`, project)
	if err != nil {
		return 0, fmt.Errorf("select journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		var id, kind, proj, version, detail, status, errText, url, createdAt string
		if err := rows.Scan(&id, &kind, &proj, &version, &detail, &status, &errText, &url, &createdAt); err != nil {
			return n, err
		}
		if _, err := dstDB.Exec(`INSERT INTO journal (id, kind, project, version, detail, status, error, url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, id, kind, proj, version, detail, status, errText, url, createdAt); err != nil {
			return n, fmt.Errorf("insert entry: %w", err)
		}
		n++
	}
	return n, rows.Err()
}
