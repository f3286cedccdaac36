// Package nameutil cleans the free text that ends up in tag messages and
// release titles.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateTitle checks that title can be used as a one-line tag message:
// not blank, valid UTF-8 and free of control characters (newlines included).
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("invalid title: title cannot be empty")
	}
	if !utf8.ValidString(title) {
		return fmt.Errorf("invalid title: contains invalid encoding")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid title: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeTitle drops control and zero-width characters (commonly pasted in
// along with a description), collapses runs of whitespace and trims the
// result. It reports whether anything changed.
func SanitizeTitle(title string) (string, bool) {
	if title == "" {
		return title, false
	}
	var b strings.Builder
	space := false
	for _, r := range title {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			space = true
			continue
		case unicode.IsControl(r):
			continue
		case r == '\u200B', r == '\u200C', r == '\u200D', r == '\uFEFF':
			continue
		case r == ' ':
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	res := b.String()
	return res, res != title
}
