package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/config"
	"github.com/VoxDroid/pkgrel/internal/db"
	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/security"
	"github.com/VoxDroid/pkgrel/internal/utils"
)

var (
	rootDir    string
	configFile string
	verbose    bool
	dryRun     bool
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "pkgrel",
	Short: "pkgrel automates the maintenance chores of a Swift package",
	Long: "pkgrel switches development dependencies, bumps the documented version,\n" +
		"extracts release notes from CHANGELOG.md and drives a tagged GitHub release.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogging(cmd.ErrOrStderr(), verbose)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "pkgrel: run 'pkgrel --help' to see available commands")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "Project root directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would change without touching files, git or GitHub")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (config.Config, error) {
	return config.Load(rootDir, configFile)
}

func newPrompter(cmd *cobra.Command) *utils.Prompter {
	p := utils.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	p.AssumeYes = assumeYes
	return p
}

func openJournal() (*journal.Repository, error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, err
	}
	return journal.NewRepository(dbConn), nil
}

// record stores e in the journal. Failures are logged, not returned.
func record(e journal.Entry) {
	r, err := openJournal()
	if err != nil {
		slog.Warn("journal unavailable", "error", err)
		return
	}
	defer func() { _ = r.Close() }()
	if _, err := r.Record(e); err != nil {
		slog.Warn("could not record journal entry", "error", err)
	}
}

func outcome(err error) (journal.Status, string) {
	switch {
	case err != nil:
		return journal.StatusFailed, security.Redact(err.Error())
	case dryRun:
		return journal.StatusDryRun, ""
	}
	return journal.StatusOK, ""
}
