// Package changelog pulls the most recent released section out of a
// CHANGELOG.md laid out as "## Upcoming" followed by one "## <version>"
// heading per release, and renders it as a release body.
package changelog

import (
	"strings"

	"github.com/VoxDroid/pkgrel/internal/lines"
	"github.com/VoxDroid/pkgrel/internal/textfile"
)

// DefaultPrefix marks release headings.
const DefaultPrefix = "## "

// Section is the latest released entry. Found is false when the changelog
// has fewer than three headings.
type Section struct {
	Heading string
	Lines   []string
	Found   bool
}

// Body joins the section lines.
func (s Section) Body() string {
	return strings.Join(s.Lines, "")
}

// Empty reports whether the section carries no text.
func (s Section) Empty() bool {
	return strings.TrimSpace(s.Body()) == ""
}

// Latest returns the section under the second heading.
func Latest(in []string, prefix string) Section {
	s, ok := lines.Locate(in, lines.HasPrefix(prefix))
	if !ok {
		return Section{Lines: []string{}}
	}
	body := make([]string, s.End-s.Start)
	copy(body, in[s.Start:s.End])
	return Section{
		Heading: strings.TrimSpace(strings.TrimPrefix(in[s.Heading], prefix)),
		Lines:   body,
		Found:   true,
	}
}

// LatestFile reads path and returns its latest section.
func LatestFile(path, prefix string) (Section, error) {
	in, err := textfile.ReadLines(path)
	if err != nil {
		return Section{}, err
	}
	return Latest(in, prefix), nil
}

// Links are appended below the notes.
type Links struct {
	Changelog string
	Docs      string
}

// Notes renders the release body: the section text, a blank line, then one
// markdown link per configured URL.
func Notes(s Section, l Links) string {
	var b strings.Builder
	b.WriteString(s.Body())
	b.WriteString("\n")
	if l.Changelog != "" {
		b.WriteString("[See changelog](" + l.Changelog + ")\n")
	}
	if l.Docs != "" {
		b.WriteString("[See docs](" + l.Docs + ")\n")
	}
	return b.String()
}
