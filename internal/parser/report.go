package parser

import (
	"fmt"
	"strings"
)

const reportMarker = "---"

// ParsedPrefix is the exact two-line prefix a report stamps onto a
// transcript. Callers must treat any transcript beginning with it as
// already processed and skip the parse; the parser itself does not check.
const ParsedPrefix = "---\nParsed: true\n"

// Report renders a Result into the fixed report text. The structure and
// field order are a stable contract consumed by the already-parsed guard
// and must not change: marker, "Parsed: true", block counts, file counts,
// an enumerated file list, "Files updated: 0", an enumerated instruction
// list, trailing marker. Byte-stability is a contract with this tool's
// own earlier output; only the two-line ParsedPrefix is shared with other
// report formats, so the guard recognizes transcripts either produced.
// The create/update distinction belongs to the file-writing layer, so
// "New files created" simply equals files found.
func Report(r *Result) string {
	var b strings.Builder
	b.WriteString(reportMarker + "\n")
	b.WriteString("Parsed: true\n")
	fmt.Fprintf(&b, "Code blocks found: %d\n", r.CodeBlocks)
	fmt.Fprintf(&b, "Instruction blocks found: %d\n", r.InstructionBlocks)
	fmt.Fprintf(&b, "Files found: %d\n", len(r.Files))
	fmt.Fprintf(&b, "New files created: %d\n", len(r.Files))
	for i, f := range r.Files {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Path)
	}
	b.WriteString("Files updated: 0\n")
	for i, in := range r.Instructions {
		fmt.Fprintf(&b, "%d. Line %d: %s\n", i+1, in.Number, in.Text)
	}
	b.WriteString(reportMarker + "\n")
	return b.String()
}
