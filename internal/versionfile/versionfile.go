// Package versionfile reads and updates the version line of a key/value
// config such as .jazzy.yaml. Only the single line starting with the key is
// inspected; the rest of the file is never parsed.
package versionfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultKey is the line prefix holding the module version in .jazzy.yaml.
const DefaultKey = "module_version: "

var (
	// ErrKeyNotFound is returned when no line starts with the key.
	ErrKeyNotFound = errors.New("version key not found")
	// ErrInvalidVersion is returned for values that are not semantic versions.
	ErrInvalidVersion = errors.New("invalid version")
)

// Entry is the located version line.
type Entry struct {
	Index int
	Value string
}

// Find returns the value of the line starting with key, without its line
// terminator. When several lines match the last one is used.
func Find(lines []string, key string) (Entry, error) {
	e := Entry{Index: -1}
	for i, l := range lines {
		if strings.HasPrefix(l, key) {
			e = Entry{Index: i, Value: strings.TrimRight(l[len(key):], "\r\n")}
		}
	}
	if e.Index < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrKeyNotFound, strings.TrimSpace(key))
	}
	return e, nil
}

// Set returns a copy of lines with the version line replaced by key+version.
func Set(lines []string, key, version string) ([]string, error) {
	e, err := Find(lines, key)
	if err != nil {
		return nil, err
	}
	out := append([]string(nil), lines...)
	out[e.Index] = key + version + "\n"
	return out, nil
}

// Validate reports whether v is a semantic version without a leading "v".
func Validate(v string) error {
	if v == "" || strings.HasPrefix(v, "v") || !semver.IsValid("v"+v) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	// semver accepts shorthand such as "1" or "1.2"; require all three parts.
	if semver.Canonical("v"+v) != "v"+stripBuild(v) {
		return fmt.Errorf("%w: %q (expected MAJOR.MINOR.PATCH)", ErrInvalidVersion, v)
	}
	return nil
}

func stripBuild(v string) string {
	if i := strings.IndexByte(v, '+'); i >= 0 {
		return v[:i]
	}
	return v
}

// Next resolves target against current. target is either "major", "minor",
// "patch" or an explicit version.
func Next(current, target string) (string, error) {
	target = strings.TrimSpace(target)
	switch target {
	case "major", "minor", "patch":
	default:
		if err := Validate(target); err != nil {
			return "", err
		}
		return target, nil
	}
	if err := Validate(current); err != nil {
		return "", fmt.Errorf("current version: %w", err)
	}
	core := strings.TrimPrefix(semver.Canonical("v"+current), "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.SplitN(core, ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidVersion, current)
		}
		nums[i] = n
	}
	// a prerelease bumped at its own level releases its core version
	pre := semver.Prerelease("v"+current) != ""
	switch target {
	case "major":
		if !pre || nums[1] != 0 || nums[2] != 0 {
			nums = []int{nums[0] + 1, 0, 0}
		}
	case "minor":
		if !pre || nums[2] != 0 {
			nums = []int{nums[0], nums[1] + 1, 0}
		}
	case "patch":
		if !pre {
			nums[2]++
		}
	}
	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

// IsPrerelease reports whether version should be published as a prerelease:
// any 0.x version or one carrying a prerelease suffix.
func IsPrerelease(version string) bool {
	if strings.HasPrefix(version, "0.") {
		return true
	}
	return semver.Prerelease("v"+version) != ""
}

// Tag returns the git tag name for version.
func Tag(version string) string {
	return "v" + version
}
