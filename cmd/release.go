package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/pkgrel/internal/config"
	"github.com/VoxDroid/pkgrel/internal/executor"
	"github.com/VoxDroid/pkgrel/internal/git"
	"github.com/VoxDroid/pkgrel/internal/github"
	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/release"
	"github.com/VoxDroid/pkgrel/internal/ui"
	"github.com/VoxDroid/pkgrel/internal/utils"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Tag the current version and publish a GitHub release",
	Long: "Tag v<module_version> on the main branch, push it, rebase the development\n" +
		"branch, then create a GitHub release whose body is the newest changelog section.\n" +
		"The token is read from the variable named by github.token_env (GH_TOKEN).\n" +
		"Example:\n  pkgrel release -m \"Dice pools\"",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		message, _ := cmd.Flags().GetString("message")
		skipGit, _ := cmd.Flags().GetBool("skip-git")
		skipPublish, _ := cmd.Flags().GetBool("skip-publish")
		editNotes, _ := cmd.Flags().GetBool("edit-notes")

		repo := git.New(executor.New(dryRun, verbose), cfg.Root)
		repo.Stdin = cmd.InOrStdin()
		repo.Stdout = cmd.OutOrStdout()
		repo.Stderr = cmd.ErrOrStderr()
		if dryRun {
			repo.Inspect = executor.New(false, verbose)
		}

		client := github.New(cfg.GitHub.API, cfg.Token())
		defer func() { _ = client.Close() }()

		d := &release.Driver{
			Git:       repo,
			Publisher: client,
			Prompter:  newPrompter(cmd),
			Token:     cfg.Token(),
			Out:       cmd.OutOrStdout(),
		}
		if j, err := openJournal(); err != nil {
			slog.Warn("journal unavailable", "error", err)
		} else {
			defer func() { _ = j.Close() }()
			d.Journal = j
			warnReleased(cmd, j, cfg)
		}

		opts := release.Options{
			Config:      cfg,
			Description: message,
			SkipGit:     skipGit,
			SkipPublish: skipPublish,
			DryRun:      dryRun,
		}
		if editNotes && !dryRun {
			opts.EditNotes = func(notes string) (string, error) {
				return utils.EditText("pkgrel-notes-*.md", notes)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		_, err = d.Run(ctx, opts)
		return err
	},
}

// warnReleased flags a version the journal has already seen released.
func warnReleased(cmd *cobra.Command, j *journal.Repository, cfg config.Config) {
	v, err := release.ReadVersion(cfg)
	if err != nil {
		return
	}
	last, err := j.Latest(journal.ProjectKey(cfg.Root), journal.KindRelease)
	if err != nil || last == nil || last.Version != v {
		return
	}
	ui.Warnf(cmd.OutOrStdout(), "%s was already released %s (%s)", v, last.Age(time.Now()), last.URL)
}

func init() {
	releaseCmd.Flags().StringP("message", "m", "", "Release description (prompted when empty)")
	releaseCmd.Flags().Bool("skip-git", false, "Do not tag or push; only publish the release")
	releaseCmd.Flags().Bool("skip-publish", false, "Only run the git sequence")
	releaseCmd.Flags().Bool("edit-notes", false, "Open the release notes in $EDITOR before publishing")
	rootCmd.AddCommand(releaseCmd)
}
