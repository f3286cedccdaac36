package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvPkgrelHome overrides the state directory.
	EnvPkgrelHome = "PKGREL_HOME"
	// EnvPkgrelDB overrides the journal database path.
	EnvPkgrelDB = "PKGREL_DB"
)

// DataDir returns the directory used to store pkgrel state.
func DataDir() (string, error) {
	if d := os.Getenv(EnvPkgrelHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pkgrel"), nil
}

// EnsureDataDir returns DataDir after creating it.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite journal.
func DBPath() (string, error) {
	if p := os.Getenv(EnvPkgrelDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "pkgrel.db"), nil
}
