package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirmInteractive(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("yes\nn\n"), &out)
	p.Interactive = true
	if !p.Confirm("Continue?") {
		t.Fatalf("expected yes")
	}
	if p.Confirm("Again?") {
		t.Fatalf("expected no")
	}
	if !strings.Contains(out.String(), "Continue? [y/N]: ") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestConfirmNonInteractiveDefaultsToNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("y\n"), &out)
	if p.Interactive {
		t.Fatalf("strings.Reader must not be detected as a terminal")
	}
	if p.Confirm("Continue?") {
		t.Fatalf("expected no for non-interactive input")
	}
	// the piped line is still available for a prompt
	got, err := p.Prompt("Answer")
	if err != nil || got != "y" {
		t.Fatalf("Prompt = %q, %v", got, err)
	}
}

func TestConfirmAssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)
	p.AssumeYes = true
	if !p.Confirm("Publish?") {
		t.Fatalf("expected AssumeYes to confirm")
	}
}

func TestPromptReadsSequentialLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  first answer \nsecond"), &out)
	a, err := p.Prompt("One")
	if err != nil || a != "first answer" {
		t.Fatalf("first Prompt = %q, %v", a, err)
	}
	b, err := p.Prompt("Two")
	if err != nil || b != "second" {
		t.Fatalf("second Prompt = %q, %v", b, err)
	}
	if _, err := p.Prompt("Three"); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput at end of input, got %v", err)
	}
}
