package parser

import "testing"

func TestRecognizeInstruction(t *testing.T) {
	cases := []struct {
		line string
		want string
		ok   bool
	}{
		{"Instruction: run the tests", "Instruction: run the tests", true},
		{"TODO: wire up the cache", "TODO: wire up the cache", true},
		{"This is IMPORTANT: read first", "This is IMPORTANT: read first", true},
		{"note: applies to v2 only", "note: applies to v2 only", true},
		{"[restart the server]", "restart the server", true},
		{"  [trimmed]  ", "trimmed", true},
		{"plain prose line", "", false},
		{"[unclosed bracket", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := RecognizeInstruction(Line{Text: c.line, Number: 1})
		if ok != c.ok || got != c.want {
			t.Errorf("RecognizeInstruction(%q) = (%q, %v), want (%q, %v)", c.line, got, ok, c.want, c.ok)
		}
	}
}
