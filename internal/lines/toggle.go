// Package lines implements the two text transforms the maintainer commands
// are built on: comment toggling driven by marker substrings, and extraction
// of a section bounded by prefixed heading lines.
package lines

import (
	"errors"
	"fmt"
	"strings"
)

// CommentPrefix is prepended to deactivate a line and stripped to activate it.
const CommentPrefix = "//"

var (
	// ErrConflictingMarkers is reported for a line carrying both markers.
	ErrConflictingMarkers = errors.New("line contains both markers")
	// ErrMalformedLine is reported for a marker line too short to carry the comment prefix.
	ErrMalformedLine = errors.New("marker line shorter than comment prefix")
	// ErrInvalidMarker is returned when a marker is empty or both markers are equal.
	ErrInvalidMarker = errors.New("invalid marker")
)

// LineError ties a toggle failure to the 1-based line it occurred on.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, strings.TrimRight(e.Text, "\r\n"))
}

func (e *LineError) Unwrap() error { return e.Err }

// Toggle returns a copy of in where every line containing activate is
// uncommented and every line containing deactivate is commented out.
// Lines already in the requested state, and lines carrying neither marker,
// are copied unchanged. Swapping the two markers reverses the operation.
func Toggle(in []string, activate, deactivate string) ([]string, error) {
	if activate == "" || deactivate == "" {
		return nil, fmt.Errorf("%w: markers must not be empty", ErrInvalidMarker)
	}
	if activate == deactivate {
		return nil, fmt.Errorf("%w: markers must differ (%q)", ErrInvalidMarker, activate)
	}

	out := make([]string, len(in))
	for i, l := range in {
		on := strings.Contains(l, activate)
		off := strings.Contains(l, deactivate)
		switch {
		case on && off:
			return nil, &LineError{Line: i + 1, Text: l, Err: ErrConflictingMarkers}
		case (on || off) && len(l) < len(CommentPrefix):
			return nil, &LineError{Line: i + 1, Text: l, Err: ErrMalformedLine}
		case on:
			out[i] = strings.TrimPrefix(l, CommentPrefix)
		case off && !strings.HasPrefix(l, CommentPrefix):
			out[i] = CommentPrefix + l
		default:
			out[i] = l
		}
	}
	return out, nil
}

// Changed counts the positions where a and b differ. Both slices are
// expected to come from the same Toggle call and have equal length.
func Changed(a, b []string) int {
	n := 0
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			n++
		}
	}
	return n
}

// Markers names the sentinel pair used to mark development-only lines.
type Markers struct {
	Dev   string
	NoDev string
}

// DefaultMarkers are the sentinels used in Package.swift.
var DefaultMarkers = Markers{Dev: "//dev", NoDev: "//nodev"}

// Include enables development-only lines and disables their replacements.
func (m Markers) Include(in []string) ([]string, error) {
	return Toggle(in, m.Dev, m.NoDev)
}

// Remove is the inverse of Include.
func (m Markers) Remove(in []string) ([]string, error) {
	return Toggle(in, m.NoDev, m.Dev)
}
