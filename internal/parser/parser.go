// Package parser extracts file contents and free-form instructions from
// mixed prose/code transcripts, as produced by AI chat responses.
package parser

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// MaxNestingDepth bounds recursive sub-parses of nested fenced regions.
const MaxNestingDepth = 10

// ErrNestingDepth is returned when nested fences recurse past
// MaxNestingDepth. The parse aborts; no partial result is returned.
var ErrNestingDepth = errors.New("parser: nesting depth exceeded")

// Action is a Disambiguator decision for a fenced block whose target file
// could not be inferred.
type Action int

const (
	// ActionInstruction treats every buffered line as an instruction.
	ActionInstruction Action = iota
	// ActionManualPath asks the Disambiguator for a path.
	ActionManualPath
	// ActionNested re-parses the buffered block recursively.
	ActionNested
	// ActionIgnore discards the block.
	ActionIgnore
)

// Disambiguator supplies decisions for ambiguous fenced blocks. Calls are
// synchronous and may block on human input; the parser waits. Any error
// aborts the parse — the parser never guesses on the collaborator's
// behalf.
type Disambiguator interface {
	ChooseAction(block []Line, startLine int) (Action, error)
	PromptManualPath() (string, error)
	Confirm(candidate string) (bool, error)
}

// FileInfo is one extracted file: a validated relative path and its
// content lines in transcript order.
type FileInfo struct {
	Path    string
	Content []Line
}

// Instruction is one free-form directive with its original transcript
// position.
type Instruction struct {
	Text   string
	Number int
}

// Result is the outcome of one parse. Files are ordered by the position
// of each block's closing fence. CodeBlocks counts every closed fenced
// block, including ones that were ignored or consumed as instructions, so
// CodeBlocks >= len(Files) always holds.
type Result struct {
	Files             []FileInfo
	Instructions      []Instruction
	CodeBlocks        int
	InstructionBlocks int
}

type state int

const (
	stateScanning state = iota
	stateInCodeBlock
	stateInNestedCodeBlock
	stateInInstructionBlock
)

// nestedFrame saves the enclosing block while a nested fence is buffered.
// The stack of frames belongs to a single parse invocation and never
// outlives it.
type nestedFrame struct {
	saved state
	buf   []Line
	open  Line // the fence that opened the nested region
}

// Parser is the transcript state machine. One Parser may run concurrent
// Parse calls on independent transcripts; each call owns its own state.
type Parser struct {
	extractor *Extractor
	dis       Disambiguator
	log       zerolog.Logger
}

// New returns a Parser over the given comment-style config and
// disambiguator. Logging is off until SetLogger is called.
func New(cfg *StyleConfig, dis Disambiguator) *Parser {
	return &Parser{
		extractor: NewExtractor(cfg),
		dis:       dis,
		log:       zerolog.Nop(),
	}
}

// SetLogger routes skip warnings and drop notices to log.
func (p *Parser) SetLogger(log zerolog.Logger) {
	p.log = log
}

// Parse consumes a full transcript and returns everything it found.
// On ErrNestingDepth or a disambiguator failure the result is nil:
// partial results are never passed off as complete.
func (p *Parser) Parse(text string) (*Result, error) {
	return p.parseLines(SplitLines(text), 0)
}

func (p *Parser) parseLines(lines []Line, depth int) (*Result, error) {
	if depth > MaxNestingDepth {
		return nil, fmt.Errorf("%w (max %d)", ErrNestingDepth, MaxNestingDepth)
	}

	res := &Result{}
	st := stateScanning
	var (
		buf     []Line        // lines of the block being buffered
		stack   []nestedFrame // saved outer blocks
		tag     string        // language tag of the current code block
		start   int           // line number of the current block's opening fence
		bound   string        // standalone path bound to the current block
		pending string        // standalone path waiting for the next fence
	)

	for _, line := range lines {
		if skippable(line) {
			p.log.Warn().Int("line", line.Number).Msg("skipping unrecognizable line")
			continue
		}

		switch st {
		case stateScanning:
			switch {
			case isFence(line):
				st = stateInCodeBlock
				tag = fenceTag(line)
				start = line.Number
				bound, pending = pending, ""
				buf = nil
			default:
				if text, ok := RecognizeInstruction(line); ok {
					res.Instructions = append(res.Instructions, Instruction{Text: text, Number: line.Number})
					break
				}
				// A bare path line outside a fence names the next
				// block's file.
				if path, ok := p.extractor.Extract(line); ok {
					pending = path
				}
			}

		case stateInCodeBlock:
			switch {
			case isClosingFence(line):
				if err := p.closeBlock(res, buf, tag, start, bound, depth); err != nil {
					return nil, err
				}
				st = stateScanning
				buf = nil
				bound = ""
			case isFence(line):
				stack = append(stack, nestedFrame{saved: st, buf: buf, open: line})
				buf = nil
				st = stateInNestedCodeBlock
			default:
				buf = append(buf, line)
			}

		case stateInNestedCodeBlock:
			if !isFence(line) {
				buf = append(buf, line)
				break
			}
			region := nestedRegion(stack[len(stack)-1].open, buf, &line)
			sub, err := p.parseLines(region, depth+1)
			if err != nil {
				return nil, err
			}
			res.merge(sub)
			// Restore the outer block and keep the nested region as a
			// contiguous span of its content.
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			buf = append(fr.buf, region...)
			st = fr.saved

		case stateInInstructionBlock:
			if isClosingFence(line) {
				res.InstructionBlocks++
				st = stateScanning
				break
			}
			res.Instructions = append(res.Instructions, Instruction{Text: line.Text, Number: line.Number})
		}
	}

	// End-of-input flush: an unterminated fence is closed as if a closing
	// fence had appeared; trailing blocks are never dropped.
	for st == stateInNestedCodeBlock && len(stack) > 0 {
		region := nestedRegion(stack[len(stack)-1].open, buf, nil)
		sub, err := p.parseLines(region, depth+1)
		if err != nil {
			return nil, err
		}
		res.merge(sub)
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		buf = append(fr.buf, region...)
		st = fr.saved
	}
	switch st {
	case stateInCodeBlock:
		if err := p.closeBlock(res, buf, tag, start, bound, depth); err != nil {
			return nil, err
		}
	case stateInInstructionBlock:
		res.InstructionBlocks++
	case stateScanning, stateInNestedCodeBlock:
	}

	return res, nil
}

// closeBlock finalizes a buffered code block. Resolution order: a path in
// the block's first line (scoped to the fence tag's comment styles), then
// a standalone path bound before the fence (confirmed, since it is the
// weaker signal), then the Disambiguator.
func (p *Parser) closeBlock(res *Result, buf []Line, tag string, start int, bound string, depth int) error {
	res.CodeBlocks++

	if len(buf) > 0 {
		if path, ok := p.extractor.ExtractForTag(buf[0], tag); ok {
			res.Files = append(res.Files, FileInfo{Path: path, Content: buf[1:]})
			return nil
		}
	}

	if bound != "" {
		ok, err := p.dis.Confirm(bound)
		if err != nil {
			return err
		}
		if ok {
			res.Files = append(res.Files, FileInfo{Path: bound, Content: buf})
			return nil
		}
	}

	action, err := p.dis.ChooseAction(buf, start)
	if err != nil {
		return err
	}
	switch action {
	case ActionInstruction:
		for _, l := range buf {
			res.Instructions = append(res.Instructions, Instruction{Text: l.Text, Number: l.Number})
		}
		res.InstructionBlocks++
	case ActionManualPath:
		path, err := p.dis.PromptManualPath()
		if err != nil {
			return err
		}
		if path != "" && IsValidPath(path) {
			res.Files = append(res.Files, FileInfo{Path: path, Content: buf})
		} else {
			p.log.Warn().Int("line", start).Msg("manual path rejected, block dropped")
		}
	case ActionNested:
		sub, err := p.parseLines(buf, depth+1)
		if err != nil {
			return err
		}
		res.merge(sub)
	case ActionIgnore:
	default:
		return fmt.Errorf("parser: unknown disambiguator action %d", action)
	}
	return nil
}

// nestedRegion rebuilds a nested fenced region's raw lines, fences
// included, for recursive sub-parsing. close is nil when input ended
// before the nested fence closed.
func nestedRegion(open Line, buf []Line, close *Line) []Line {
	region := make([]Line, 0, len(buf)+2)
	region = append(region, open)
	region = append(region, buf...)
	if close != nil {
		region = append(region, *close)
	}
	return region
}

// merge folds a sub-parse into r by value.
func (r *Result) merge(sub *Result) {
	r.Files = append(r.Files, sub.Files...)
	r.Instructions = append(r.Instructions, sub.Instructions...)
	r.CodeBlocks += sub.CodeBlocks
	r.InstructionBlocks += sub.InstructionBlocks
}
