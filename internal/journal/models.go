// Package journal keeps a local record of version bumps, dependency switches
// and releases performed with pkgrel.
package journal

import "time"

// Kind classifies an entry.
type Kind string

const (
	KindBump    Kind = "bump"
	KindRelease Kind = "release"
	KindDev     Kind = "dev"
)

// Status is the outcome of the recorded action.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
	StatusDryRun Status = "dry-run"
)

// Entry is one recorded action.
type Entry struct {
	ID        string
	Kind      Kind
	Project   string
	Version   string
	Detail    string
	Status    Status
	Error     string
	URL       string
	CreatedAt time.Time
}
