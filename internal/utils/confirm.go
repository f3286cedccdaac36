// Package utils provides the interactive helpers used by the commands.
package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned by Prompt when input ends before a line is read.
var ErrNoInput = errors.New("no input")

// Prompter asks the operator questions. All reads share one buffered reader
// so answers piped in on stdin are consumed line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// Interactive is true when input comes from a terminal.
	Interactive bool
	// AssumeYes answers every confirmation with yes without reading input.
	AssumeYes bool
}

// NewPrompter returns a Prompter reading from in and writing prompts to out.
// Interactive is detected when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		p.Interactive = term.IsTerminal(int(f.Fd()))
	}
	return p
}

// Confirm prompts the user with msg and expects y/n. Returns true for yes.
// For non-interactive input it returns false without reading unless
// AssumeYes is set.
func (p *Prompter) Confirm(msg string) bool {
	if p.AssumeYes {
		_, _ = fmt.Fprintf(p.out, "%s [y/N]: y\n", msg)
		return true
	}
	if !p.Interactive {
		_, _ = fmt.Fprintf(p.out, "%s [y/N]: (non-interactive, assuming no)\n", msg)
		return false
	}
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", msg)
	line, _ := p.in.ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}

// Prompt prints msg and reads a single trimmed line. Unlike Confirm it reads
// from non-interactive input too, so answers can be piped in.
func (p *Prompter) Prompt(msg string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
