// Package git drives the git command line for tagging and publishing a
// release. Commands run through an executor.Runner so a dry-run or fake
// runner can stand in for the real binary.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/VoxDroid/pkgrel/internal/executor"
)

// ErrDirtyWorktree is returned by EnsureClean when there are uncommitted changes.
var ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

// ErrTagExists is returned when the release tag is already present.
var ErrTagExists = errors.New("tag already exists")

// Repo is a git working copy.
type Repo struct {
	Runner executor.Runner
	Dir    string
	Binary string

	// Inspect runs the read-only queries (TagExists, EnsureClean). Nil
	// means Runner. A dry-run Repo points it at a real runner so the checks
	// still see the working copy.
	Inspect executor.Runner

	// Stdin is handed to commands that may prompt (signing passphrases,
	// credentials). Stdout and Stderr receive their output.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Repo for dir using the git binary on PATH.
func New(r executor.Runner, dir string) *Repo {
	return &Repo{Runner: r, Dir: dir, Binary: "git", Stdout: io.Discard, Stderr: io.Discard}
}

func (r *Repo) command(args ...string) string {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}
	return executor.Join(append([]string{bin}, args...)...)
}

func (r *Repo) run(ctx context.Context, args ...string) error {
	if err := r.Runner.Execute(ctx, r.command(args...), r.Dir, r.Stdin, r.Stdout, r.Stderr); err != nil {
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}

func (r *Repo) output(ctx context.Context, args ...string) (string, error) {
	runner := r.Inspect
	if runner == nil {
		runner = r.Runner
	}
	var out bytes.Buffer
	if err := runner.Execute(ctx, r.command(args...), r.Dir, nil, &out, io.Discard); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// Checkout switches to branch.
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	return r.run(ctx, "checkout", branch)
}

// Pull fetches and integrates the current branch's upstream.
func (r *Repo) Pull(ctx context.Context) error {
	return r.run(ctx, "pull")
}

// Tag creates an annotated tag, GPG-signed when sign is set.
func (r *Repo) Tag(ctx context.Context, name, message string, sign bool) error {
	args := []string{"tag"}
	if sign {
		args = append(args, "-s")
	} else {
		args = append(args, "-a")
	}
	args = append(args, name, "-m", message)
	return r.run(ctx, args...)
}

// PushTags pushes all tags to the default remote.
func (r *Repo) PushTags(ctx context.Context) error {
	return r.run(ctx, "push", "--tags")
}

// Rebase rebases the current branch onto upstream.
func (r *Repo) Rebase(ctx context.Context, upstream string) error {
	return r.run(ctx, "rebase", upstream)
}

// Push pushes the current branch.
func (r *Repo) Push(ctx context.Context) error {
	return r.run(ctx, "push")
}

// TagExists reports whether tag is present locally.
func (r *Repo) TagExists(ctx context.Context, tag string) (bool, error) {
	_, err := r.output(ctx, "rev-parse", "-q", "--verify", "refs/tags/"+tag)
	if err == nil {
		return true, nil
	}
	var ce *executor.CommandError
	if errors.As(err, &ce) && ce.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("git rev-parse: %w", err)
}

// EnsureClean fails with ErrDirtyWorktree when tracked or untracked changes
// are present.
func (r *Repo) EnsureClean(ctx context.Context) error {
	out, err := r.output(ctx, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if out != "" {
		return fmt.Errorf("%w:\n%s", ErrDirtyWorktree, out)
	}
	return nil
}
