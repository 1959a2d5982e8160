package parser

import (
	"errors"
	"strings"
	"testing"
)

// scripted is a canned Disambiguator. The last action repeats once the
// script runs out.
type scripted struct {
	actions     []Action
	manualPath  string
	confirm     bool
	err         error
	chooseCalls int
}

func (s *scripted) ChooseAction(block []Line, startLine int) (Action, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.chooseCalls++
	if len(s.actions) == 0 {
		return ActionIgnore, nil
	}
	a := s.actions[0]
	if len(s.actions) > 1 {
		s.actions = s.actions[1:]
	}
	return a, nil
}

func (s *scripted) PromptManualPath() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.manualPath, nil
}

func (s *scripted) Confirm(candidate string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.confirm, nil
}

func newTestParser(dis Disambiguator) *Parser {
	return New(testStyles(), dis)
}

func TestParse_SingleFileBlock(t *testing.T) {
	input := "```python\n# File: a/b.py\nprint(1)\n```\n"
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(res.Files))
	}
	f := res.Files[0]
	if f.Path != "a/b.py" {
		t.Fatalf("expected path a/b.py, got %q", f.Path)
	}
	if len(f.Content) != 1 || f.Content[0].Text != "print(1)" {
		t.Fatalf("unexpected content: %+v", f.Content)
	}
	if res.CodeBlocks != 1 || res.InstructionBlocks != 0 || len(res.Instructions) != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	res, err := newTestParser(&scripted{}).Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 0 || len(res.Instructions) != 0 || res.CodeBlocks != 0 || res.InstructionBlocks != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestParse_InstructionLines(t *testing.T) {
	input := "intro prose\nTODO: check the config\n[restart nginx]\n"
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %+v", res.Instructions)
	}
	if res.Instructions[0].Text != "TODO: check the config" || res.Instructions[0].Number != 2 {
		t.Fatalf("unexpected first instruction: %+v", res.Instructions[0])
	}
	if res.Instructions[1].Text != "restart nginx" || res.Instructions[1].Number != 3 {
		t.Fatalf("unexpected second instruction: %+v", res.Instructions[1])
	}
}

func TestParse_AmbiguousBlockAsInstruction(t *testing.T) {
	input := "```\nfirst step\nsecond step\n```\n"
	res, err := newTestParser(&scripted{actions: []Action{ActionInstruction}}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %+v", res.Files)
	}
	if res.CodeBlocks != 1 || res.InstructionBlocks != 1 {
		t.Fatalf("unexpected counts: blocks=%d instr=%d", res.CodeBlocks, res.InstructionBlocks)
	}
	if len(res.Instructions) != 2 ||
		res.Instructions[0].Text != "first step" || res.Instructions[0].Number != 2 ||
		res.Instructions[1].Text != "second step" || res.Instructions[1].Number != 3 {
		t.Fatalf("instructions not preserved in order: %+v", res.Instructions)
	}
}

func TestParse_NestedFileBlock(t *testing.T) {
	input := strings.Join([]string{
		"```python",
		"# File: outer.py",
		"a = 1",
		"```python",
		"# File: inner.py",
		"b = 2",
		"```",
		"```",
		"",
	}, "\n")
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %+v", res.Files)
	}
	// Files are ordered by closing fence: the nested block closes first.
	if res.Files[0].Path != "inner.py" || res.Files[1].Path != "outer.py" {
		t.Fatalf("unexpected order: %q, %q", res.Files[0].Path, res.Files[1].Path)
	}
	if len(res.Files[0].Content) != 1 || res.Files[0].Content[0].Text != "b = 2" {
		t.Fatalf("unexpected inner content: %+v", res.Files[0].Content)
	}
	// The outer content keeps the nested region as a contiguous span.
	var outer []string
	for _, l := range res.Files[1].Content {
		outer = append(outer, l.Text)
	}
	want := []string{"a = 1", "```python", "# File: inner.py", "b = 2", "```"}
	if strings.Join(outer, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected outer content: %v", outer)
	}
	if res.CodeBlocks != 2 {
		t.Fatalf("expected 2 code blocks, got %d", res.CodeBlocks)
	}
}

func TestParse_UnterminatedFenceFlushed(t *testing.T) {
	input := "```python\n# File: tail.py\nx = 1\n"
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "tail.py" {
		t.Fatalf("trailing block dropped: %+v", res.Files)
	}
	if res.CodeBlocks != 1 {
		t.Fatalf("expected 1 code block, got %d", res.CodeBlocks)
	}
}

func TestParse_StandalonePathBindsNextFence(t *testing.T) {
	input := "lib/util.py\n```python\nvalue = 42\n```\n"
	res, err := newTestParser(&scripted{confirm: true}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "lib/util.py" {
		t.Fatalf("standalone path not applied: %+v", res.Files)
	}
	if len(res.Files[0].Content) != 1 || res.Files[0].Content[0].Text != "value = 42" {
		t.Fatalf("unexpected content: %+v", res.Files[0].Content)
	}
}

func TestParse_StandalonePathRejectedFallsThrough(t *testing.T) {
	input := "lib/util.py\n```python\nvalue = 42\n```\n"
	dis := &scripted{confirm: false}
	res, err := newTestParser(dis).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files after rejected confirm, got %+v", res.Files)
	}
	if dis.chooseCalls != 1 {
		t.Fatalf("expected disambiguation after rejected confirm, got %d calls", dis.chooseCalls)
	}
}

func TestParse_ManualPath(t *testing.T) {
	input := "```\nmystery content\n```\n"
	dis := &scripted{actions: []Action{ActionManualPath}, manualPath: "notes/mystery.txt"}
	res, err := newTestParser(dis).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "notes/mystery.txt" {
		t.Fatalf("manual path not applied: %+v", res.Files)
	}
}

func TestParse_ManualPathInvalidDropsBlock(t *testing.T) {
	input := "```\nmystery content\n```\n"
	dis := &scripted{actions: []Action{ActionManualPath}, manualPath: "bad path!"}
	res, err := newTestParser(dis).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 0 || res.CodeBlocks != 1 {
		t.Fatalf("expected dropped block still counted, got %+v", res)
	}
}

func TestParse_IgnoredBlockStillCounted(t *testing.T) {
	input := "```\nrandom noise here\n```\n```python\n# File: real.py\nok\n```\n"
	res, err := newTestParser(&scripted{actions: []Action{ActionIgnore}}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CodeBlocks != 2 {
		t.Fatalf("expected 2 code blocks, got %d", res.CodeBlocks)
	}
	if len(res.Files) != 1 || res.Files[0].Path != "real.py" {
		t.Fatalf("unexpected files: %+v", res.Files)
	}
}

func TestParse_DisambiguatorErrorPropagates(t *testing.T) {
	wantErr := errors.New("terminal closed")
	_, err := newTestParser(&scripted{err: wantErr}).Parse("```\nwhat is this\n```\n")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected collaborator error, got %v", err)
	}
}

func TestParse_NestingDepthExceeded(t *testing.T) {
	input := strings.Repeat("```x\n", 20) + "y\n" + strings.Repeat("```\n", 20)
	_, err := newTestParser(&scripted{actions: []Action{ActionNested}}).Parse(input)
	if !errors.Is(err, ErrNestingDepth) {
		t.Fatalf("expected ErrNestingDepth, got %v", err)
	}
}

func TestParse_SkippableLineExcluded(t *testing.T) {
	input := "```python\n# File: a.py\nok\nbad\x01line\n```\n"
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected 1 file, got %+v", res.Files)
	}
	if len(res.Files[0].Content) != 1 || res.Files[0].Content[0].Text != "ok" {
		t.Fatalf("skippable line leaked into content: %+v", res.Files[0].Content)
	}
}

func TestParse_OverlongLineExcluded(t *testing.T) {
	long := strings.Repeat("a", maxLineLen+1)
	input := long + "\nTODO: keep me\n"
	res, err := newTestParser(&scripted{}).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Instructions) != 1 || res.Instructions[0].Text != "TODO: keep me" {
		t.Fatalf("unexpected instructions: %+v", res.Instructions)
	}
}

func TestParse_NestedDecisionReparsesBuffer(t *testing.T) {
	// The outer block has no path of its own, but its buffer holds the
	// nested region as a span. A Nested decision re-parses that span, so
	// the wrapped file surfaces a second time alongside the copy the
	// in-line sub-parse already produced. Deduplication is the file
	// writer's job, not the parser's.
	input := strings.Join([]string{
		"```",
		"prose wrapper",
		"```python",
		"# File: wrapped.py",
		"z = 3",
		"```",
		"```",
		"",
	}, "\n")
	dis := &scripted{actions: []Action{ActionNested}}
	res, err := newTestParser(dis).Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	copies := 0
	for _, f := range res.Files {
		if f.Path == "wrapped.py" {
			copies++
		}
	}
	if copies != 2 {
		t.Fatalf("expected 2 copies of wrapped.py, got %d (%+v)", copies, res.Files)
	}
	if res.CodeBlocks != 3 {
		t.Fatalf("expected 3 code blocks (inner, outer, re-parsed inner), got %d", res.CodeBlocks)
	}
}
