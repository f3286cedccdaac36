package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/textfile"
	"github.com/VoxDroid/pkgrel/internal/versionfile"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [version|major|minor|patch]",
	Short: "Update the documented module version",
	Long: "Rewrite the module_version line of .jazzy.yaml. Without an argument the new\n" +
		"version is read from stdin. Examples:\n  pkgrel bump 0.5.0\n  pkgrel bump minor",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		var current, next string
		_, _, err = textfile.Rewrite(cfg.Path(cfg.Version.File), dryRun, func(in []string) ([]string, error) {
			e, err := versionfile.Find(in, cfg.Version.Key)
			if err != nil {
				return nil, err
			}
			current = e.Value
			_, _ = fmt.Fprintf(out, "Current version: %s\n", current)

			target := ""
			if len(args) == 1 {
				target = args[0]
			} else if target, err = newPrompter(cmd).Prompt("Input new version"); err != nil {
				return nil, fmt.Errorf("read version: %w", err)
			}
			if next, err = versionfile.Next(current, target); err != nil {
				return nil, err
			}
			return versionfile.Set(in, cfg.Version.Key, next)
		})

		status, msg := outcome(err)
		if current != "" {
			record(journal.Entry{
				Kind:    journal.KindBump,
				Project: journal.ProjectKey(cfg.Root),
				Version: next,
				Detail:  current + " -> " + next,
				Status:  status,
				Error:   msg,
			})
		}
		if err != nil {
			return err
		}
		if dryRun {
			_, _ = fmt.Fprintf(out, "dry-run: would set %s to %s\n", cfg.Version.File, next)
			return nil
		}
		_, _ = fmt.Fprintf(out, "Version updated to %s\n", next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}
