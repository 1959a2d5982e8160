package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with weaver",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, comment styles, and file types",
		Content: topicConfig,
	},
	{
		Name:    "parsing",
		Title:   "How Parsing Works",
		Summary: "Fences, path detection, nesting, and the parse report",
		Content: topicParsing,
	},
	{
		Name:    "disambiguation",
		Title:   "Ambiguous Blocks",
		Summary: "What the interactive prompt asks and why",
		Content: topicDisambiguation,
	},
	{
		Name:    "watch",
		Title:   "Watch Mode",
		Summary: "Reparsing a transcript on every save",
		Content: topicWatch,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    weaver init

   This creates .weaver/config.yaml and .weaver/logs/.

2. Save an AI chat response to a file, e.g. response.md.

3. Parse it:

    weaver parse response.md

   Code blocks with recognizable file paths are written to disk,
   instruction lines are logged, and a report is stamped onto the
   transcript so it is never parsed twice.

4. Or keep it running while you paste new responses:

    weaver watch response.md

CLI Flags
---------

  weaver parse <file>            Parse a transcript once
  weaver parse <file> --auto     Never prompt; skip ambiguous blocks
  weaver parse <file> --dry-run  Parse and report, write nothing
  weaver parse <file> --root D   Write extracted files under D
  weaver watch <file>            Reparse on every save
  weaver init                    Scaffold .weaver/ directory
  weaver docs                    List documentation topics`

const topicConfig = `Configuration Reference
=======================

weaver looks for .weaver/config.yaml in the current directory or any
parent. Without one, built-in defaults cover the common languages.

Fields
------

log-folder (string, default ".weaver/logs")
  Where backups, instruction logs, and parsed-transcript copies go.

comment-styles (list)
  Each entry has a name and an ordered list of prefixes. Order matters:
  the first prefix that matches a block's first line wins.

    comment-styles:
      - name: hash
        prefixes: ["# File:", "#"]
      - name: slash
        prefixes: ["// File:", "//"]

file-types (list)
  Maps fence tags and file extensions to comment styles. A fence tag
  like 'python' restricts first-line path detection to that language's
  comment styles, tried in the listed order.

    file-types:
      - name: python
        extensions: [".py"]
        comment-styles: [hash]

Learned extensions
------------------

When you supply a manual path with an unknown extension, weaver asks
which comment style applies and remembers the answer in
.weaver/learned.yaml. Learned entries never override configured ones.`

const topicParsing = `How Parsing Works
=================

weaver scans the transcript line by line.

Outside a code block:
  - A line that is only a valid relative path is remembered and bound
    to the next code block that opens.
  - A line starting with "Instruction:" or "TODO:", containing
    "IMPORTANT:" or "NOTE:", or wrapped in [brackets] is recorded as an
    instruction with its line number.
  - A line starting with three backticks opens a code block. Text after
    the backticks is the fence tag.

Inside a code block:
  - Another fence with a tag opens a nested block; its content is kept
    verbatim in the outer block and parsed again on its own.
  - A bare fence closes the innermost open block.

When a block closes, weaver resolves it in order:
  1. If the first line is a path inside a comment (e.g. "# src/app.py"),
     that is the file path and the first line is dropped from content.
  2. If a standalone path preceded the block, weaver asks you to confirm
     it and keeps the whole block as content.
  3. Otherwise the block is ambiguous (see: disambiguation).

Oversized lines (over 4096 bytes) and lines with control characters are
ignored entirely. Blocks still open at end of input are closed as if a
fence followed the last line.

The report
----------

After parsing, a report is prepended to the transcript:

    ---
    Parsed: true
    Code blocks found: N
    ...
    ---

A transcript starting with that marker is skipped on later runs. Delete
the marker block to force a reparse.`

const topicDisambiguation = `Ambiguous Blocks
================

A closed block with no detectable path is ambiguous. The prompt shows
the first lines of the block and asks:

  [f]ile         You type a relative path; the block is saved there.
                 An unknown extension triggers a one-time question
                 about its comment style, which weaver remembers.
  [i]nstruction  Every line of the block is logged as an instruction.
  [n]ested       The block's content is parsed again as its own
                 transcript. Useful when an AI response quotes another
                 AI response.
  s[k]ip         The block is ignored. It still counts in the report.

With --auto there is no prompt: ambiguous blocks are skipped and
standalone-path bindings are accepted without confirmation.`

const topicWatch = `Watch Mode
==========

    weaver watch response.md

watches the file's directory (editors often replace files rather than
writing in place) and reparses the transcript after each save, with a
short debounce so one save triggers one parse.

Because every successful parse stamps the report onto the transcript,
a watch loop is naturally idempotent: the rewrite triggered by the
stamp is seen, found already parsed, and skipped.

Replace the file's content with a fresh response (without the marker)
and it is parsed again. Stop with Ctrl-C.`
