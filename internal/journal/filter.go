package journal

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
)

type entrySource []Entry

func (s entrySource) String(i int) string {
	e := s[i]
	return string(e.Kind) + " " + e.Version + " " + e.Detail + " " + string(e.Status)
}

func (s entrySource) Len() int { return len(s) }

// Filter returns the entries fuzzy-matching query, keeping their original
// (newest first) order. An empty query returns entries unchanged.
func Filter(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	keep := make(map[int]bool, len(matches))
	for _, m := range matches {
		keep[m.Index] = true
	}
	out := make([]Entry, 0, len(matches))
	for i, e := range entries {
		if keep[i] {
			out = append(out, e)
		}
	}
	return out
}

// Age renders the entry's timestamp relative to now, e.g. "3 hours ago".
func (e Entry) Age(now time.Time) string {
	return humanize.RelTime(e.CreatedAt, now, "ago", "from now")
}
