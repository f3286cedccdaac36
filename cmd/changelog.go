package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/changelog"
	"github.com/VoxDroid/pkgrel/internal/ui"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Inspect CHANGELOG.md",
}

var changelogLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest released changelog section",
	Long: "Print the section between the second and third \"## \" headings of CHANGELOG.md,\n" +
		"the first being the Upcoming section. With --notes the section is rendered as\n" +
		"the release body, links included.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := changelog.LatestFile(cfg.Path(cfg.Changelog.File), cfg.Changelog.Prefix)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !s.Found {
			ui.Warnf(cmd.ErrOrStderr(), "%s has fewer than three %q headings", cfg.Changelog.File, cfg.Changelog.Prefix)
		}
		notes, _ := cmd.Flags().GetBool("notes")
		if notes {
			_, _ = fmt.Fprint(out, changelog.Notes(s, changelog.Links{Changelog: cfg.Changelog.URL, Docs: cfg.Changelog.DocsURL}))
			return nil
		}
		if heading, _ := cmd.Flags().GetBool("heading"); heading && s.Heading != "" {
			_, _ = fmt.Fprintln(out, ui.Heading(s.Heading))
		}
		_, _ = fmt.Fprint(out, s.Body())
		return nil
	},
}

func init() {
	changelogLatestCmd.Flags().Bool("notes", false, "Render the release body with changelog and docs links")
	changelogLatestCmd.Flags().Bool("heading", false, "Print the section heading first")
	changelogCmd.AddCommand(changelogLatestCmd)
	rootCmd.AddCommand(changelogCmd)
}
