package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const manifest = `// swift-tools-version:5.0
import PackageDescription

let package = Package(
    name: "DiceKit",
    dependencies: [
//        .package(url: "https://github.com/danger/swift.git", from: "1.0.0"), //dev
    ],
    targets: [
        .target(name: "DiceKit", dependencies: []), //nodev
//        .target(name: "DiceKit", dependencies: ["Danger"]), //dev
    ]
)
`

const jazzy = "module: DiceKit\nauthor: Samasaur\nmodule_version: 0.4.0\n"

const changelogFile = `# Changelog

## Upcoming

## 0.4.0
- Dice pools

## 0.3.0
- Initial
`

// setupProject writes a small Swift package into a temp dir and points the
// journal at a private database.
func setupProject(t *testing.T) string {
	t.Helper()
	t.Setenv("PKGREL_HOME", t.TempDir())
	t.Setenv("PKGREL_DB", filepath.Join(t.TempDir(), "journal.db"))
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Package.swift"), manifest)
	writeFile(t, filepath.Join(root, ".jazzy.yaml"), jazzy)
	writeFile(t, filepath.Join(root, "CHANGELOG.md"), changelogFile)
	return root
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// resetFlags restores every flag to its default; rootCmd is shared between
// tests and cobra keeps parsed values.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
