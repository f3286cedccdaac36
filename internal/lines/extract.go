package lines

import "strings"

type extractState int

const (
	seekingFirst extractState = iota
	seekingSecond
	collecting
)

// Section is the span found by Locate: Heading is the index of the second
// boundary line and Body covers the lines up to (not including) the third.
type Section struct {
	Heading    int
	Start, End int
}

// Locate runs the boundary state machine once over in and reports where the
// section after the second boundary ends. ok is false when fewer than three
// boundary lines exist.
func Locate(in []string, isBoundary func(string) bool) (Section, bool) {
	state := seekingFirst
	var s Section
	for i, l := range in {
		if !isBoundary(l) {
			continue
		}
		switch state {
		case seekingFirst:
			state = seekingSecond
		case seekingSecond:
			state = collecting
			s.Heading = i
			s.Start = i + 1
		case collecting:
			s.End = i
			return s, true
		}
	}
	return Section{}, false
}

// Extract returns the lines strictly between the second and third lines that
// start with prefix. The first boundary is a placeholder heading and is
// skipped along with anything before the second. When fewer than three
// boundary lines exist the result is empty.
func Extract(in []string, prefix string) []string {
	return ExtractFunc(in, HasPrefix(prefix))
}

// ExtractFunc is Extract with an arbitrary boundary predicate.
func ExtractFunc(in []string, isBoundary func(string) bool) []string {
	s, ok := Locate(in, isBoundary)
	if !ok {
		return []string{}
	}
	out := make([]string, s.End-s.Start)
	copy(out, in[s.Start:s.End])
	return out
}

// HasPrefix returns a case-sensitive line-prefix predicate.
func HasPrefix(prefix string) func(string) bool {
	return func(l string) bool { return strings.HasPrefix(l, prefix) }
}
