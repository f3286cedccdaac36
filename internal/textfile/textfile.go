// Package textfile reads and rewrites small text files as line sequences.
package textfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Split breaks s into lines, keeping each line's "\n" terminator. A final
// line without a terminator is kept as is; an empty string yields no lines.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ReadLines reads the whole file at path. A missing file is reported with an
// error wrapping fs.ErrNotExist.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Split(string(b)), nil
}

// WriteLines replaces the file at path with the concatenated lines. The data
// is written to a temporary sibling and renamed into place; an existing
// file's permissions are kept.
func WriteLines(path string, lines []string) error {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(strings.Join(lines, "")); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	slog.Debug("wrote file", "path", path, "lines", len(lines))
	return nil
}

// Rewrite reads path, applies fn and writes the result back. Nothing is
// written when fn fails. When dryRun is set the transform runs but the file
// is left untouched. The original and transformed lines are returned.
func Rewrite(path string, dryRun bool, fn func([]string) ([]string, error)) (before, after []string, err error) {
	before, err = ReadLines(path)
	if err != nil {
		return nil, nil, err
	}
	after, err = fn(before)
	if err != nil {
		return before, nil, fmt.Errorf("%s: %w", path, err)
	}
	if dryRun {
		return before, after, nil
	}
	if err := WriteLines(path, after); err != nil {
		return before, nil, err
	}
	return before, after, nil
}

// Exists reports whether path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Move renames src to dst, replacing dst.
func Move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s -> %s: %w", src, dst, err)
	}
	slog.Debug("moved file", "from", src, "to", dst)
	return nil
}

// MoveIfExists renames src to dst when src exists and reports whether a move
// happened.
func MoveIfExists(src, dst string) (bool, error) {
	ok, err := Exists(src)
	if err != nil || !ok {
		return false, err
	}
	if err := Move(src, dst); err != nil {
		return false, err
	}
	return true, nil
}
