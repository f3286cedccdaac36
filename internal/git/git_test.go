package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VoxDroid/pkgrel/internal/executor"
)

func TestReleaseRunsStepsInOrder(t *testing.T) {
	m := &mockRunner{}
	r := New(m, "/repo")
	if err := r.Release(context.Background(), DefaultBranches, "v1.2.0", "Version 1.2.0: dice pools", true); err != nil {
		t.Fatalf("Release: %v", err)
	}
	want := []string{
		"git checkout master",
		"git pull",
		"git tag -s v1.2.0 -m 'Version 1.2.0: dice pools'",
		"git push --tags",
		"git checkout development",
		"git pull",
		"git rebase master",
		"git push",
	}
	if strings.Join(m.Commands, "\n") != strings.Join(want, "\n") {
		t.Fatalf("commands:\n%s\nwant:\n%s", strings.Join(m.Commands, "\n"), strings.Join(want, "\n"))
	}
	for _, d := range m.Dirs {
		if d != "/repo" {
			t.Fatalf("expected commands to run in /repo, got %q", d)
		}
	}
}

func TestReleaseStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("remote rejected")
	m := &mockRunner{ExecuteFn: func(c string) error {
		if c == "git push --tags" {
			return boom
		}
		return nil
	}}
	r := New(m, "")
	err := r.Release(context.Background(), DefaultBranches, "v1.0.0", "Version 1.0.0: x", false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected push failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "step 4 (push --tags)") {
		t.Fatalf("error should name the failed step: %v", err)
	}
	if len(m.Commands) != 4 {
		t.Fatalf("expected 4 commands before stopping, got %d", len(m.Commands))
	}
	if m.Commands[2] != "git tag -a v1.0.0 -m 'Version 1.0.0: x'" {
		t.Fatalf("unsigned tag should use -a, got %q", m.Commands[2])
	}
}

func TestEnsureCleanWithMock(t *testing.T) {
	m := &mockRunner{Output: map[string]string{"git status --porcelain": " M Package.swift\n"}}
	err := New(m, "").EnsureClean(context.Background())
	if !errors.Is(err, ErrDirtyWorktree) {
		t.Fatalf("expected ErrDirtyWorktree, got %v", err)
	}
}

func TestDryRunExecutorPrintsCommands(t *testing.T) {
	var out strings.Builder
	r := New(&executor.Executor{DryRun: true}, "")
	r.Stdout = &out
	if err := r.Tag(context.Background(), "v0.1.0", "Version 0.1.0: hello", true); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if out.String() != "dry-run: git tag -s v0.1.0 -m 'Version 0.1.0: hello'\n" {
		t.Fatalf("unexpected dry-run output %q", out.String())
	}
}

// newTestRepo creates a real repository with one commit.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	d := t.TempDir()
	r := New(executor.New(false, false), d)
	ctx := context.Background()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
		{"config", "tag.gpgsign", "false"},
	} {
		if err := r.run(ctx, args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	if err := os.WriteFile(filepath.Join(d, "README.md"), []byte("hi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.run(ctx, "add", "README.md"); err != nil {
		t.Fatalf("git add: %v", err)
	}
	if err := r.run(ctx, "commit", "-q", "-m", "init"); err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return r
}

func TestTagExistsAgainstRealRepo(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	ok, err := r.TagExists(ctx, "v1.0.0")
	if err != nil || ok {
		t.Fatalf("expected missing tag, got %v %v", ok, err)
	}
	if err := r.Tag(ctx, "v1.0.0", "Version 1.0.0: first", false); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	ok, err = r.TagExists(ctx, "v1.0.0")
	if err != nil || !ok {
		t.Fatalf("expected tag to exist, got %v %v", ok, err)
	}
}

func TestEnsureCleanAgainstRealRepo(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	if err := r.EnsureClean(ctx); err != nil {
		t.Fatalf("EnsureClean on fresh repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(r.Dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.EnsureClean(ctx); !errors.Is(err, ErrDirtyWorktree) {
		t.Fatalf("expected ErrDirtyWorktree, got %v", err)
	}
}

func TestInspectRunnerServesQueries(t *testing.T) {
	var out strings.Builder
	inspect := &mockRunner{ExecuteFn: func(string) error {
		return &executor.CommandError{Command: "git rev-parse", Err: exitOne(t)}
	}}
	r := New(&executor.Executor{DryRun: true}, "")
	r.Stdout = &out
	r.Inspect = inspect

	ok, err := r.TagExists(context.Background(), "v0.2.0")
	if err != nil || ok {
		t.Fatalf("expected missing tag from inspect runner, got %v %v", ok, err)
	}
	if len(inspect.Commands) != 1 || out.Len() != 0 {
		t.Fatalf("query should go to the inspect runner only, got %q / %q", inspect.Commands, out.String())
	}
}

// exitOne returns the *exec.ExitError of a process exiting with status 1.
func exitOne(t *testing.T) error {
	t.Helper()
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	err := exec.Command("false").Run()
	if err == nil {
		t.Fatalf("expected false to fail")
	}
	return err
}
