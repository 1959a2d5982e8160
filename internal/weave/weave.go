// Package weave ties the parser to its collaborators: it reads a
// transcript, materializes extracted files, records instructions, and
// stamps the parse report back onto the transcript.
package weave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jorge-barreto/weaver/internal/gitops"
	"github.com/jorge-barreto/weaver/internal/parser"
	"github.com/jorge-barreto/weaver/internal/writer"
)

// AlreadyParsed reports whether a transcript carries the parse report
// prefix. Callers must check this before submitting a transcript; the
// parser itself does not.
func AlreadyParsed(content string) bool {
	return strings.HasPrefix(content, parser.ParsedPrefix)
}

// Outcome summarizes one processed transcript.
type Outcome struct {
	Result  *parser.Result
	Created []string
	Updated []string
	Backups []string // parallel to Updated
	Skipped bool
}

// Weaver runs the full pipeline on one transcript file.
type Weaver struct {
	Styles *parser.StyleConfig
	Dis    parser.Disambiguator
	Writer *writer.Writer
	Log    zerolog.Logger
	DryRun bool
	UseGit bool
}

// Process parses the transcript at transcriptPath and materializes its
// artifacts. Already-parsed transcripts are skipped. In dry-run mode the
// parse runs but nothing is written.
func (w *Weaver) Process(ctx context.Context, transcriptPath string) (*Outcome, error) {
	log := w.Log.With().Str("run", uuid.NewString()[:8]).Str("file", transcriptPath).Logger()

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	content := string(data)
	if AlreadyParsed(content) {
		log.Info().Msg("transcript already parsed, skipping")
		return &Outcome{Skipped: true}, nil
	}

	p := parser.New(w.Styles, w.Dis)
	p.SetLogger(log)
	res, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", transcriptPath, err)
	}
	out := &Outcome{Result: res}
	if w.DryRun {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var newFiles, existing []parser.FileInfo
	for _, fi := range res.Files {
		if w.Writer.Exists(fi.Path) {
			existing = append(existing, fi)
		} else {
			newFiles = append(newFiles, fi)
		}
	}

	for _, fi := range newFiles {
		if err := w.Writer.Create(fi); err != nil {
			if errors.Is(err, writer.ErrOutsideRoot) {
				log.Warn().Str("path", fi.Path).Msg("refusing to write outside output root")
				continue
			}
			return nil, err
		}
		out.Created = append(out.Created, fi.Path)
	}

	if len(existing) > 0 {
		if err := w.updateExisting(existing, out, log); err != nil {
			return nil, err
		}
	}

	if err := w.Writer.WriteReport(transcriptPath, parser.Report(res), content); err != nil {
		return nil, err
	}
	if err := w.Writer.LogInstructions(res.Instructions); err != nil {
		return nil, err
	}

	log.Info().
		Int("files", len(res.Files)).
		Int("instructions", len(res.Instructions)).
		Msg("transcript processed")
	return out, nil
}

// updateExisting overwrites files that already exist, on a dedicated git
// branch when the output root is inside a repository.
func (w *Weaver) updateExisting(existing []parser.FileInfo, out *Outcome, log zerolog.Logger) error {
	var repo *gitops.Repo
	if w.UseGit {
		var err error
		repo, err = gitops.Open(w.Writer.Root, log)
		if err != nil {
			return err
		}
		if repo == nil {
			log.Warn().Msg("no git repository at output root, updating in place")
		}
	}

	var branch string
	if repo != nil {
		paths := make([]string, 0, len(existing))
		for _, fi := range existing {
			paths = append(paths, fi.Path)
		}
		branch = gitops.BranchName(paths, time.Now())
		if err := repo.StartBranch(branch); err != nil {
			return err
		}
	}

	for _, fi := range existing {
		backup, err := w.Writer.Update(fi)
		if err != nil {
			if errors.Is(err, writer.ErrOutsideRoot) {
				log.Warn().Str("path", fi.Path).Msg("refusing to write outside output root")
				continue
			}
			return err
		}
		out.Updated = append(out.Updated, fi.Path)
		out.Backups = append(out.Backups, backup)
	}

	if repo != nil && len(out.Updated) > 0 {
		if err := repo.CommitAll(fmt.Sprintf("Update %s via weaver", strings.Join(out.Updated, ", "))); err != nil {
			return err
		}
	}
	return nil
}
