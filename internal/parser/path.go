package parser

import (
	"regexp"
	"strings"
)

// invalidPathChars are rejected anywhere in a candidate path.
const invalidPathChars = `<>:"|?*`

var componentRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// IsValidPath reports whether candidate is a well-formed relative file
// path. Components may be separated by / or \; empty components
// (leading, trailing, or doubled separators) are rejected. The special
// components "." and ".." are accepted and passed through unchanged —
// bounding such paths to an output root is the writer's job, not the
// validator's.
func IsValidPath(candidate string) bool {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, invalidPathChars) {
		return false
	}
	s = strings.ReplaceAll(s, `\`, "/")
	for _, comp := range strings.Split(s, "/") {
		if comp == "" {
			return false
		}
		if comp == "." || comp == ".." {
			continue
		}
		if !componentRe.MatchString(comp) {
			return false
		}
	}
	return true
}
