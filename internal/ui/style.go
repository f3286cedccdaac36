// Package ui holds the terminal styles shared by the commands.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5a4"))
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94a3b8"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Italic(true)
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fde047"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
)

// Heading renders a section title.
func Heading(s string) string { return headingStyle.Render(s) }

// Key renders a label in a key/value listing.
func Key(s string) string { return keyStyle.Render(s) }

// Dim renders secondary text such as dry-run previews.
func Dim(s string) string { return dimStyle.Render(s) }

// Warnf writes a highlighted warning line to w.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, warnStyle.Render("WARNING: ")+fmt.Sprintf(format, args...))
}

// Errorf writes a highlighted error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, errorStyle.Render("error: ")+fmt.Sprintf(format, args...))
}

// Successf writes a highlighted success line to w.
func Successf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

// KV writes an aligned "key: value" line to w.
func KV(w io.Writer, key string, value any) {
	_, _ = fmt.Fprintf(w, "%s %v\n", Key(fmt.Sprintf("%-12s", key+":")), value)
}
