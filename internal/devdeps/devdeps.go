// Package devdeps switches a Swift package between its development
// dependency set (Danger and friends) and the release set. The manifest is
// toggled line by line and the matching Package.resolved is swapped in.
package devdeps

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/VoxDroid/pkgrel/internal/lines"
	"github.com/VoxDroid/pkgrel/internal/textfile"
)

// ErrParkedExists is returned when parking Package.resolved would replace a
// copy parked earlier. Nothing is changed in that case.
var ErrParkedExists = errors.New("parked resolved file already exists")

// Options locates the files to switch. Relative paths are resolved against Root.
type Options struct {
	Root           string
	Manifest       string
	Resolved       string
	DangerSuffix   string
	NoDangerSuffix string
	Markers        lines.Markers
	DryRun         bool
}

// DefaultOptions mirror the layout of a Swift package using Danger.
func DefaultOptions() Options {
	return Options{
		Root:           ".",
		Manifest:       "Package.swift",
		Resolved:       "Package.resolved",
		DangerSuffix:   ".danger",
		NoDangerSuffix: ".nodanger",
		Markers:        lines.DefaultMarkers,
	}
}

// Move is a rename performed (or planned, in dry-run) while switching.
type Move struct {
	From string
	To   string
}

// Result summarises a switch.
type Result struct {
	Manifest string
	Toggled  int
	Moves    []Move
	DryRun   bool
}

func (o Options) path(p string) string {
	if filepath.IsAbs(p) || o.Root == "" {
		return p
	}
	return filepath.Join(o.Root, p)
}

// Include enables development dependencies: dev lines are uncommented, nodev
// lines commented out, the current Package.resolved is parked under the
// nodanger suffix and the danger copy takes its place. An existing nodanger
// copy is never replaced; Include fails with ErrParkedExists instead.
func Include(o Options) (Result, error) {
	resolved := o.path(o.Resolved)
	return apply(o, o.Markers.Include, []Move{
		{From: resolved, To: resolved + o.NoDangerSuffix},
		{From: resolved + o.DangerSuffix, To: resolved},
	})
}

// Remove reverses Include.
func Remove(o Options) (Result, error) {
	resolved := o.path(o.Resolved)
	return apply(o, o.Markers.Remove, []Move{
		{From: resolved, To: resolved + o.DangerSuffix},
		{From: resolved + o.NoDangerSuffix, To: resolved},
	})
}

func apply(o Options, toggle func([]string) ([]string, error), moves []Move) (Result, error) {
	manifest := o.path(o.Manifest)
	res := Result{Manifest: manifest, DryRun: o.DryRun}

	// the first move parks the current resolved file
	if err := checkPark(moves[0]); err != nil {
		return res, err
	}

	before, after, err := textfile.Rewrite(manifest, o.DryRun, toggle)
	if err != nil {
		return res, err
	}
	res.Toggled = lines.Changed(before, after)
	slog.Debug("toggled manifest", "path", manifest, "changed", res.Toggled, "dry_run", o.DryRun)

	for _, m := range moves {
		if o.DryRun {
			ok, err := textfile.Exists(m.From)
			if err != nil {
				return res, err
			}
			if ok {
				res.Moves = append(res.Moves, m)
			}
			continue
		}
		moved, err := textfile.MoveIfExists(m.From, m.To)
		if err != nil {
			return res, err
		}
		if moved {
			res.Moves = append(res.Moves, m)
		}
	}
	return res, nil
}

func checkPark(m Move) error {
	src, err := textfile.Exists(m.From)
	if err != nil || !src {
		return err
	}
	dst, err := textfile.Exists(m.To)
	if err != nil {
		return err
	}
	if dst {
		return fmt.Errorf("%w: %s (move or delete it first)", ErrParkedExists, m.To)
	}
	return nil
}
