package parser

import (
	"strings"
)

// maxLineLen is the longest line the parser will attempt to recognize.
// Longer lines are skipped with a warning.
const maxLineLen = 4096

const fenceToken = "```"

// Line is a single transcript line with its 1-based position. Lines are
// never mutated; the parser only classifies and groups them.
type Line struct {
	Text   string
	Number int
}

// SplitLines breaks a transcript into Lines, tolerating CRLF endings.
func SplitLines(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = Line{Text: strings.TrimSuffix(s, "\r"), Number: i + 1}
	}
	return lines
}

// skippable reports whether a line is excluded from all recognition and
// buffering: over-long lines and lines containing non-printable characters
// (tab excepted).
func skippable(l Line) bool {
	if len(l.Text) > maxLineLen {
		return true
	}
	for _, r := range l.Text {
		if r < 0x20 && r != '\t' {
			return true
		}
		if r == 0x7f {
			return true
		}
	}
	return false
}

// isFence reports whether a line is a fence marker: its trimmed content
// begins with the fence token, optionally followed by a language tag.
func isFence(l Line) bool {
	return strings.HasPrefix(strings.TrimSpace(l.Text), fenceToken)
}

// isClosingFence reports whether a line is a bare fence with no tag.
// Whether it actually closes a region depends on the current state.
func isClosingFence(l Line) bool {
	return strings.TrimSpace(l.Text) == fenceToken
}

// fenceTag returns the language tag of a fence marker, or "" for a bare
// fence.
func fenceTag(l Line) string {
	trimmed := strings.TrimSpace(l.Text)
	return strings.TrimSpace(strings.TrimPrefix(trimmed, fenceToken))
}
