// Package prompt supplies Disambiguator implementations: an interactive
// terminal prompt and a non-interactive auto mode.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/weaver/internal/parser"
	"github.com/jorge-barreto/weaver/internal/ux"
)

// headLines caps how much of an ambiguous block is echoed back.
const headLines = 8

// Terminal implements parser.Disambiguator over an interactive terminal.
// Reads block until a full line is available; the parser waits.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// OnLearn, if set, is called when the user teaches a comment style
	// for the extension of a manually supplied path.
	OnLearn func(ext, style string)
}

// NewTerminal returns a Terminal over stdin/stdout.
func NewTerminal() *Terminal {
	return NewTerminalIO(os.Stdin, os.Stdout)
}

// NewTerminalIO returns a Terminal over the given reader and writer.
// Tests pass scripted input here.
func NewTerminalIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) ChooseAction(block []parser.Line, startLine int) (parser.Action, error) {
	fmt.Fprintf(t.out, "\n%sAmbiguous block at line %d:%s\n", ux.Yellow, startLine, ux.Reset)
	for i, l := range block {
		if i == headLines {
			fmt.Fprintf(t.out, "  %s… %d more lines%s\n", ux.Dim, len(block)-headLines, ux.Reset)
			break
		}
		fmt.Fprintf(t.out, "  %s│%s %s\n", ux.Dim, ux.Reset, l.Text)
	}
	for {
		fmt.Fprintf(t.out, "  [f]ile / [i]nstruction / [n]ested / s[k]ip: ")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		switch strings.ToLower(line) {
		case "f", "file":
			return parser.ActionManualPath, nil
		case "i", "instruction":
			return parser.ActionInstruction, nil
		case "n", "nested":
			return parser.ActionNested, nil
		case "k", "s", "skip":
			return parser.ActionIgnore, nil
		}
		fmt.Fprintf(t.out, "  %sunrecognized choice %q%s\n", ux.Red, line, ux.Reset)
	}
}

func (t *Terminal) PromptManualPath() (string, error) {
	fmt.Fprintf(t.out, "  target path (empty to skip): ")
	path, err := t.readLine()
	if err != nil {
		return "", err
	}
	if path != "" && t.OnLearn != nil {
		if ext := filepath.Ext(path); ext != "" {
			fmt.Fprintf(t.out, "  comment style for %s files (empty to skip): ", ext)
			style, err := t.readLine()
			if err != nil {
				return "", err
			}
			if style != "" {
				t.OnLearn(ext, style)
			}
		}
	}
	return path, nil
}

func (t *Terminal) Confirm(candidate string) (bool, error) {
	fmt.Fprintf(t.out, "  use path %s%s%s? [y/N]: ", ux.Cyan, candidate, ux.Reset)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Auto is a non-interactive Disambiguator for unattended runs: ambiguous
// blocks are skipped, standalone path candidates are accepted as-is.
type Auto struct{}

func (Auto) ChooseAction(block []parser.Line, startLine int) (parser.Action, error) {
	return parser.ActionIgnore, nil
}

func (Auto) PromptManualPath() (string, error) { return "", nil }

func (Auto) Confirm(candidate string) (bool, error) { return true, nil }
