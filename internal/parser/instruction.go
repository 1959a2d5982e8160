package parser

import "strings"

// RecognizeInstruction classifies a line outside any fence as a
// free-standing instruction. A trimmed line qualifies if it starts with
// "instruction:" or "todo:" (case-insensitive), contains "important:" or
// "note:" (case-insensitive), or is fully enclosed in square brackets, in
// which case the brackets are stripped from the returned text.
func RecognizeInstruction(l Line) (string, bool) {
	s := strings.TrimSpace(l.Text)
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "instruction:") || strings.HasPrefix(lower, "todo:") {
		return s, true
	}
	if strings.Contains(lower, "important:") || strings.Contains(lower, "note:") {
		return s, true
	}
	if len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return strings.TrimSpace(s[1 : len(s)-1]), true
	}
	return "", false
}
