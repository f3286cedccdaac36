package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/config"
	"github.com/VoxDroid/pkgrel/internal/devdeps"
	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/lines"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Switch the package between development and release dependencies",
}

var devIncludeCmd = &cobra.Command{
	Use:   "include",
	Short: "Enable development dependencies",
	Long: "Uncomment lines marked //dev in Package.swift, comment out lines marked //nodev\n" +
		"and swap in Package.resolved.danger. Example:\n  pkgrel dev include",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDev(cmd, "include", devdeps.Include)
	},
}

var devRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Disable development dependencies",
	Long: "Comment out lines marked //dev in Package.swift, uncomment lines marked //nodev\n" +
		"and restore the release Package.resolved. Example:\n  pkgrel dev remove",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDev(cmd, "remove", devdeps.Remove)
	},
}

func init() {
	devCmd.AddCommand(devIncludeCmd)
	devCmd.AddCommand(devRemoveCmd)
	rootCmd.AddCommand(devCmd)
}

func devOptions(cfg config.Config) devdeps.Options {
	return devdeps.Options{
		Root:           cfg.Root,
		Manifest:       cfg.Manifest.Path,
		Resolved:       cfg.Manifest.Resolved,
		DangerSuffix:   cfg.Manifest.DangerSuffix,
		NoDangerSuffix: cfg.Manifest.NoDangerSuffix,
		Markers:        lines.Markers{Dev: cfg.Manifest.DevMarker, NoDev: cfg.Manifest.NoDevMarker},
		DryRun:         dryRun,
	}
}

func runDev(cmd *cobra.Command, action string, fn func(devdeps.Options) (devdeps.Result, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := fn(devOptions(cfg))
	status, msg := outcome(err)
	record(journal.Entry{
		Kind:    journal.KindDev,
		Project: journal.ProjectKey(cfg.Root),
		Detail:  action,
		Status:  status,
		Error:   msg,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prefix := ""
	if res.DryRun {
		prefix = "dry-run: "
	}
	_, _ = fmt.Fprintf(out, "%s%s: %d line(s) toggled\n", prefix, relPath(cfg.Root, res.Manifest), res.Toggled)
	for _, m := range res.Moves {
		_, _ = fmt.Fprintf(out, "%smoved %s -> %s\n", prefix, relPath(cfg.Root, m.From), relPath(cfg.Root, m.To))
	}
	return nil
}

func relPath(root, p string) string {
	if r, err := filepath.Rel(root, p); err == nil {
		return r
	}
	return p
}
