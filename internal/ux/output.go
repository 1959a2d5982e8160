// Package ux holds terminal output helpers for the weaver CLI.
package ux

import (
	"fmt"
	"time"

	"github.com/jorge-barreto/weaver/internal/parser"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Processing prints a run header for a transcript file.
func Processing(path string) {
	fmt.Printf("\n%s[%s]%s %s══ Processing %s ══%s\n", Dim, timestamp(), Reset, Cyan, path, Reset)
}

// Skipped prints a notice for an already-parsed transcript.
func Skipped(path string) {
	fmt.Printf("%s[%s]%s  %s– %s already parsed, skipping%s\n", Dim, timestamp(), Reset, Dim, path, Reset)
}

// FileCreated prints a created-file line.
func FileCreated(path string) {
	fmt.Printf("%s[%s]%s  %s+ %s%s\n", Dim, timestamp(), Reset, Green, path, Reset)
}

// FileUpdated prints an updated-file line with its backup location.
func FileUpdated(path, backup string) {
	fmt.Printf("%s[%s]%s  %s~ %s%s %s(backup: %s)%s\n", Dim, timestamp(), Reset, Yellow, path, Reset, Dim, backup, Reset)
}

// Summary prints the outcome of one parse run.
func Summary(res *parser.Result, created, updated int) {
	fmt.Printf("\n  code blocks:        %d\n", res.CodeBlocks)
	fmt.Printf("  instruction blocks: %d\n", res.InstructionBlocks)
	fmt.Printf("  files created:      %s%d%s\n", Green, created, Reset)
	fmt.Printf("  files updated:      %s%d%s\n\n", Yellow, updated, Reset)
}

// Watching prints the watch-mode banner.
func Watching(path string) {
	fmt.Printf("\n%sWatching:%s %s (ctrl-c to stop)\n", Bold, Reset, path)
}
