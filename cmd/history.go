package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/db"
	"github.com/VoxDroid/pkgrel/internal/exporter"
	"github.com/VoxDroid/pkgrel/internal/importer"
	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded bumps, dependency switches and releases",
	Long: "Show the journal of actions run with pkgrel for this project, newest first.\n" +
		"Examples:\n  pkgrel history --kind release\n  pkgrel history --all --filter dice",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")
		filter, _ := cmd.Flags().GetString("filter")

		switch journal.Kind(kind) {
		case "", journal.KindBump, journal.KindRelease, journal.KindDev:
		default:
			return fmt.Errorf("unknown kind %q (want bump, release or dev)", kind)
		}

		r, err := openJournal()
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()

		opts := journal.ListOptions{Kind: journal.Kind(kind), Limit: limit}
		if !all {
			opts.Project = journal.ProjectKey(rootDir)
		}
		if filter != "" {
			// the fuzzy filter runs over the full list, limit applies after
			opts.Limit = 0
		}
		entries, err := r.List(opts)
		if err != nil {
			return err
		}
		if filter != "" {
			entries = journal.Filter(entries, filter)
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			_, _ = fmt.Fprintln(out, "no history")
			return nil
		}
		now := time.Now()
		for _, e := range entries {
			line := fmt.Sprintf("%s\t%s\t%s\t%s", e.Age(now), e.Kind, e.Status, e.Detail)
			if e.Version != "" {
				line += "\t" + e.Version
			}
			if all {
				line += "\t" + ui.Dim(e.Project)
			}
			if e.URL != "" {
				line += "\t" + e.URL
			}
			if e.Error != "" {
				line += "\t" + ui.Dim(e.Error)
			}
			_, _ = fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("kind", "", "Only show entries of this kind (bump, release, dev)")
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries (0 for all)")
	historyCmd.Flags().Bool("all", false, "Show entries for every project")
	historyCmd.Flags().String("filter", "", "Fuzzy filter on kind, version, detail and status")
	rootCmd.AddCommand(historyCmd)
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the journal to a SQLite file",
	Long: "Write this project's journal entries to a new SQLite file, or copy the whole\n" +
		"journal with --all. Example:\n  pkgrel history export dicekit-journal.db",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			if err := exporter.ExportDatabase(args[0]); err != nil {
				return err
			}
			ui.Successf(cmd.OutOrStdout(), "exported journal to %s", args[0])
			return nil
		}
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		n, err := exporter.ExportProject(dbConn, journal.ProjectKey(rootDir), args[0])
		if err != nil {
			return err
		}
		ui.Successf(cmd.OutOrStdout(), "exported %d entries to %s", n, args[0])
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge journal entries from an exported SQLite file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		res, err := importer.ImportEntries(dbConn, args[0])
		if err != nil {
			return err
		}
		ui.Successf(cmd.OutOrStdout(), "imported %d entries (%d already present)", res.Imported, res.Skipped)
		return nil
	},
}

func init() {
	historyExportCmd.Flags().Bool("all", false, "Copy the journal of every project")
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)
}
