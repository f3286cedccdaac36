package git

import (
	"context"
	"fmt"
	"log/slog"
)

// Branches names the release branch and the integration branch that is
// rebased onto it after tagging.
type Branches struct {
	Main        string
	Development string
}

// DefaultBranches match the repository's git-flow style layout.
var DefaultBranches = Branches{Main: "master", Development: "development"}

// Step is one named git action in a release.
type Step struct {
	Name string
	Run  func(context.Context) error
}

// ReleaseSteps returns the ordered actions that tag and publish tag on
// b.Main and then bring b.Development up to date:
//
//	checkout main, pull, tag, push --tags,
//	checkout development, pull, rebase main, push
func (r *Repo) ReleaseSteps(b Branches, tag, message string, sign bool) []Step {
	return []Step{
		{"checkout " + b.Main, func(ctx context.Context) error { return r.Checkout(ctx, b.Main) }},
		{"pull", r.Pull},
		{"tag " + tag, func(ctx context.Context) error { return r.Tag(ctx, tag, message, sign) }},
		{"push --tags", r.PushTags},
		{"checkout " + b.Development, func(ctx context.Context) error { return r.Checkout(ctx, b.Development) }},
		{"pull", r.Pull},
		{"rebase " + b.Main, func(ctx context.Context) error { return r.Rebase(ctx, b.Main) }},
		{"push", r.Push},
	}
}

// Release runs ReleaseSteps in order and stops at the first failure.
func (r *Repo) Release(ctx context.Context, b Branches, tag, message string, sign bool) error {
	for i, s := range r.ReleaseSteps(b, tag, message, sign) {
		slog.Debug("git step", "n", i+1, "step", s.Name)
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("release step %d (%s): %w", i+1, s.Name, err)
		}
	}
	return nil
}
