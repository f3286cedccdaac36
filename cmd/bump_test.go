package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBumpExplicitVersion(t *testing.T) {
	root := setupProject(t)
	out, err := runCmd(t, "", "bump", "0.5.0", "--root", root)
	if err != nil {
		t.Fatalf("bump: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Current version: 0.4.0") || !strings.Contains(out, "Version updated to 0.5.0") {
		t.Fatalf("unexpected output: %s", out)
	}
	want := "module: DiceKit\nauthor: Samasaur\nmodule_version: 0.5.0\n"
	if got := readFile(t, filepath.Join(root, ".jazzy.yaml")); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBumpPromptsForVersion(t *testing.T) {
	root := setupProject(t)
	out, err := runCmd(t, "1.0.0\n", "bump", "--root", root)
	if err != nil {
		t.Fatalf("bump: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Input new version: ") {
		t.Fatalf("expected a prompt, got %s", out)
	}
	if got := readFile(t, filepath.Join(root, ".jazzy.yaml")); !strings.HasSuffix(got, "module_version: 1.0.0\n") {
		t.Fatalf("version not written: %q", got)
	}
}

func TestBumpKeywords(t *testing.T) {
	root := setupProject(t)
	for _, tc := range []struct{ arg, want string }{
		{"patch", "0.4.1"},
		{"minor", "0.5.0"},
		{"major", "1.0.0"},
	} {
		if _, err := runCmd(t, "", "bump", tc.arg, "--root", root); err != nil {
			t.Fatalf("bump %s: %v", tc.arg, err)
		}
		if got := readFile(t, filepath.Join(root, ".jazzy.yaml")); !strings.HasSuffix(got, "module_version: "+tc.want+"\n") {
			t.Fatalf("bump %s: got %q", tc.arg, got)
		}
	}
}

func TestBumpRejectsInvalidVersion(t *testing.T) {
	root := setupProject(t)
	if _, err := runCmd(t, "", "bump", "v1.0", "--root", root); err == nil {
		t.Fatalf("expected invalid version error")
	}
	if got := readFile(t, filepath.Join(root, ".jazzy.yaml")); got != jazzy {
		t.Fatalf("file changed on error: %q", got)
	}
}

func TestBumpDryRunAndHistory(t *testing.T) {
	root := setupProject(t)
	out, err := runCmd(t, "", "bump", "0.4.1", "--root", root, "--dry-run")
	if err != nil {
		t.Fatalf("bump --dry-run: %v", err)
	}
	if !strings.Contains(out, "dry-run: would set .jazzy.yaml to 0.4.1") {
		t.Fatalf("unexpected output: %s", out)
	}
	if got := readFile(t, filepath.Join(root, ".jazzy.yaml")); got != jazzy {
		t.Fatalf("dry run wrote the file")
	}
	out, err = runCmd(t, "", "history", "--root", root)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "\tbump\tdry-run\t0.4.0 -> 0.4.1") {
		t.Fatalf("expected dry-run bump in history:\n%s", out)
	}
}
