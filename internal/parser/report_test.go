package parser

import (
	"strings"
	"testing"
)

func TestReport_Format(t *testing.T) {
	res := &Result{
		Files: []FileInfo{
			{Path: "a/b.py"},
			{Path: "c.go"},
		},
		Instructions: []Instruction{
			{Text: "restart the server", Number: 3},
			{Text: "TODO: bump version", Number: 9},
		},
		CodeBlocks:        4,
		InstructionBlocks: 1,
	}
	want := strings.Join([]string{
		"---",
		"Parsed: true",
		"Code blocks found: 4",
		"Instruction blocks found: 1",
		"Files found: 2",
		"New files created: 2",
		"1. a/b.py",
		"2. c.go",
		"Files updated: 0",
		"1. Line 3: restart the server",
		"2. Line 9: TODO: bump version",
		"---",
		"",
	}, "\n")
	if got := Report(res); got != want {
		t.Fatalf("report mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestReport_Empty(t *testing.T) {
	got := Report(&Result{})
	want := strings.Join([]string{
		"---",
		"Parsed: true",
		"Code blocks found: 0",
		"Instruction blocks found: 0",
		"Files found: 0",
		"New files created: 0",
		"Files updated: 0",
		"---",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("report mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestReport_CarriesParsedPrefix(t *testing.T) {
	if !strings.HasPrefix(Report(&Result{}), ParsedPrefix) {
		t.Fatal("report must start with the already-parsed guard prefix")
	}
}
