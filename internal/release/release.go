// Package release drives a full release of the package: read the version,
// tag and push it with git, then publish a GitHub release whose body is the
// newest section of the changelog.
//
// Every external effect goes through a small interface (GitRepo, Publisher,
// Prompter, Recorder) so the sequence can be exercised without git, network
// or a terminal.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/VoxDroid/pkgrel/internal/changelog"
	"github.com/VoxDroid/pkgrel/internal/config"
	"github.com/VoxDroid/pkgrel/internal/git"
	"github.com/VoxDroid/pkgrel/internal/github"
	"github.com/VoxDroid/pkgrel/internal/journal"
	"github.com/VoxDroid/pkgrel/internal/nameutil"
	"github.com/VoxDroid/pkgrel/internal/security"
	"github.com/VoxDroid/pkgrel/internal/textfile"
	"github.com/VoxDroid/pkgrel/internal/ui"
	"github.com/VoxDroid/pkgrel/internal/versionfile"
)

var (
	// ErrAborted is returned when the operator declines a confirmation.
	ErrAborted = errors.New("release aborted")
	// ErrEmptyDescription is returned when no release description is given.
	ErrEmptyDescription = errors.New("release description must not be empty")
)

// GitRepo is the version control side of a release.
type GitRepo interface {
	EnsureClean(ctx context.Context) error
	TagExists(ctx context.Context, tag string) (bool, error)
	Release(ctx context.Context, b git.Branches, tag, message string, sign bool) error
}

// Publisher creates the hosted release.
type Publisher interface {
	CreateRelease(ctx context.Context, owner, repo string, rel github.Release) (*github.ReleaseResponse, error)
}

// Prompter asks the operator for confirmation and free text.
type Prompter interface {
	Confirm(msg string) bool
	Prompt(msg string) (string, error)
}

// Recorder stores the outcome of a release.
type Recorder interface {
	Record(e journal.Entry) (journal.Entry, error)
}

// Options control a single run.
type Options struct {
	Config      config.Config
	Description string
	SkipGit     bool
	SkipPublish bool
	DryRun      bool
	// EditNotes, when set, is given the rendered notes before publishing and
	// returns the text to publish.
	EditNotes func(notes string) (string, error)
}

// Driver wires the collaborators of a release.
type Driver struct {
	Git       GitRepo
	Publisher Publisher
	Prompter  Prompter
	Journal   Recorder
	Token     string
	Out       io.Writer
}

// Result describes what a run did.
type Result struct {
	Version string
	Tag     string
	Name    string
	Notes   string
	Tagged  bool
	Release *github.ReleaseResponse
}

// Run performs the release described by o.
func (d *Driver) Run(ctx context.Context, o Options) (res Result, err error) {
	cfg := o.Config
	out := d.Out
	if out == nil {
		out = io.Discard
	}

	res.Version, err = ReadVersion(cfg)
	if err != nil {
		return res, err
	}
	res.Tag = versionfile.Tag(res.Version)
	ui.KV(out, "version", res.Version)
	ui.KV(out, "tag", res.Tag)

	defer func() { d.record(cfg, o, res, err) }()

	if !o.SkipPublish {
		if err := cfg.ValidatePublish(); err != nil {
			return res, err
		}
		if d.Token == "" && !o.DryRun {
			return res, fmt.Errorf("%w: set %s", github.ErrMissingToken, cfg.GitHub.TokenEnv)
		}
	}

	// notes must be readable before any git side effect
	res.Notes, err = d.notes(cfg, res.Version)
	if err != nil {
		return res, err
	}
	if o.EditNotes != nil {
		if res.Notes, err = o.EditNotes(res.Notes); err != nil {
			return res, fmt.Errorf("edit notes: %w", err)
		}
	}

	if !o.SkipGit {
		if err := d.checkRepo(ctx, cfg, res.Tag); err != nil {
			return res, err
		}
		ui.Warnf(out, "this will run the git release sequence (%s -> %s).", cfg.Git.MainBranch, cfg.Git.DevelopmentBranch)
		if !d.Prompter.Confirm("Continue with git") {
			return res, ErrAborted
		}
	}

	desc := o.Description
	if desc == "" {
		desc, err = d.Prompter.Prompt("Input a description of this release")
		if err != nil {
			return res, fmt.Errorf("read description: %w", err)
		}
	}
	desc, cleaned := nameutil.SanitizeTitle(desc)
	if desc == "" {
		return res, ErrEmptyDescription
	}
	if cleaned {
		slog.Debug("cleaned release description", "description", desc)
	}
	if err := nameutil.ValidateTitle(desc); err != nil {
		return res, err
	}
	res.Name = Name(res.Version, desc)

	if !o.SkipGit {
		branches := git.Branches{Main: cfg.Git.MainBranch, Development: cfg.Git.DevelopmentBranch}
		if err := d.Git.Release(ctx, branches, res.Tag, res.Name, cfg.Git.SignTags); err != nil {
			return res, err
		}
		res.Tagged = true
	}

	if o.SkipPublish {
		return res, nil
	}
	rel := github.Release{
		TagName:         res.Tag,
		TargetCommitish: cfg.Git.MainBranch,
		Name:            res.Name,
		Body:            res.Notes,
		Draft:           cfg.GitHub.Draft,
		Prerelease:      versionfile.IsPrerelease(res.Version),
	}
	if o.DryRun {
		b, _ := json.MarshalIndent(rel, "", "  ")
		_, _ = fmt.Fprintf(out, "%s POST /repos/%s/%s/releases\n%s\n", ui.Dim("dry-run:"), cfg.GitHub.Owner, cfg.GitHub.Repo, b)
		return res, nil
	}

	ui.Warnf(out, "this will create a release on github.com/%s/%s.", cfg.GitHub.Owner, cfg.GitHub.Repo)
	if !d.Prompter.Confirm("Continue with GitHub release") {
		return res, ErrAborted
	}
	res.Release, err = d.Publisher.CreateRelease(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo, rel)
	if err != nil {
		return res, err
	}
	ui.Successf(out, "API call successful")
	if res.Release.Draft {
		_, _ = fmt.Fprintf(out, "A release was created as a draft; publish it at %s\n", res.Release.HTMLURL)
	} else {
		_, _ = fmt.Fprintf(out, "Release published at %s\n", res.Release.HTMLURL)
	}
	return res, nil
}

func (d *Driver) checkRepo(ctx context.Context, cfg config.Config, tag string) error {
	if cfg.Git.RequireClean {
		if err := d.Git.EnsureClean(ctx); err != nil {
			return err
		}
	}
	exists, err := d.Git.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", git.ErrTagExists, tag)
	}
	return nil
}

func (d *Driver) notes(cfg config.Config, version string) (string, error) {
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	s, err := changelog.LatestFile(cfg.Path(cfg.Changelog.File), cfg.Changelog.Prefix)
	if err != nil {
		return "", err
	}
	switch {
	case !s.Found:
		ui.Warnf(out, "%s has fewer than three %q headings; release notes will be empty", cfg.Changelog.File, cfg.Changelog.Prefix)
	case s.Empty():
		ui.Warnf(out, "changelog section %q is empty", s.Heading)
	}
	if s.Heading != "" && s.Heading != version && s.Heading != versionfile.Tag(version) {
		ui.Warnf(out, "latest changelog section is %q but releasing %s", s.Heading, version)
	}
	return changelog.Notes(s, changelog.Links{Changelog: cfg.Changelog.URL, Docs: cfg.Changelog.DocsURL}), nil
}

func (d *Driver) record(cfg config.Config, o Options, res Result, runErr error) {
	if d.Journal == nil || errors.Is(runErr, ErrAborted) {
		return
	}
	e := journal.Entry{
		Kind:    journal.KindRelease,
		Project: journal.ProjectKey(cfg.Root),
		Version: res.Version,
		Detail:  res.Name,
		Status:  journal.StatusOK,
	}
	switch {
	case runErr != nil:
		e.Status = journal.StatusFailed
		e.Error = security.Redact(runErr.Error(), d.Token)
	case o.DryRun:
		e.Status = journal.StatusDryRun
	}
	if res.Release != nil {
		e.URL = res.Release.HTMLURL
	}
	if _, err := d.Journal.Record(e); err != nil {
		slog.Warn("could not record release in journal", "error", err)
	}
}

// ReadVersion returns the version stored in the configured version file.
func ReadVersion(cfg config.Config) (string, error) {
	lines, err := textfile.ReadLines(cfg.Path(cfg.Version.File))
	if err != nil {
		return "", err
	}
	e, err := versionfile.Find(lines, cfg.Version.Key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Version.File, err)
	}
	return e.Value, nil
}

// Name is the tag message and release title for version.
func Name(version, description string) string {
	return fmt.Sprintf("Version %s: %s", version, description)
}
