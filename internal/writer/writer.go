// Package writer materializes parse results on disk: new files, backed-up
// updates, instruction logs, and the report stamped onto the transcript.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jorge-barreto/weaver/internal/parser"
)

// ErrOutsideRoot rejects extracted paths that resolve outside the output
// root. The parser's validator passes "." and ".." components through by
// contract; the boundary is enforced here instead.
var ErrOutsideRoot = errors.New("writer: path escapes output root")

type Writer struct {
	Root      string // output root for extracted files
	LogFolder string
	Log       zerolog.Logger
}

func New(root, logFolder string, log zerolog.Logger) *Writer {
	return &Writer{Root: root, LogFolder: logFolder, Log: log}
}

// Resolve maps a validated relative path to a location under the root.
// Containment is decided on the cleaned paths, so it holds for relative
// roots like "." as well as absolute ones.
func (w *Writer) Resolve(rel string) (string, error) {
	full := filepath.Join(w.Root, filepath.FromSlash(rel))
	r, err := filepath.Rel(filepath.Clean(w.Root), full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return full, nil
}

// Exists reports whether the file already exists under the root.
func (w *Writer) Exists(rel string) bool {
	full, err := w.Resolve(rel)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(full)
	return statErr == nil
}

// Create writes a new file, creating parent directories as needed.
func (w *Writer) Create(fi parser.FileInfo) error {
	full, err := w.Resolve(fi.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating parent dirs for %s: %w", fi.Path, err)
	}
	if err := writeFileAtomic(full, contentBytes(fi), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", fi.Path, err)
	}
	w.Log.Info().Str("path", fi.Path).Msg("file created")
	return nil
}

// Update backs up then overwrites an existing file, returning the backup
// path.
func (w *Writer) Update(fi parser.FileInfo) (string, error) {
	full, err := w.Resolve(fi.Path)
	if err != nil {
		return "", err
	}
	backup, err := w.backup(full)
	if err != nil {
		return "", fmt.Errorf("backing up %s: %w", fi.Path, err)
	}
	if err := writeFileAtomic(full, contentBytes(fi), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", fi.Path, err)
	}
	w.Log.Info().Str("path", fi.Path).Str("backup", backup).Msg("file updated")
	return backup, nil
}

// backup copies a file into <log-folder>/history with a timestamp suffix.
func (w *Writer) backup(full string) (string, error) {
	historyDir := filepath.Join(w.LogFolder, "history")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s", filepath.Base(full), time.Now().Format("20060102_150405"))
	backup := filepath.Join(historyDir, name)
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", err
	}
	return backup, nil
}

// WriteReport stamps the report onto the transcript file and copies the
// result into the log folder.
func (w *Writer) WriteReport(transcriptPath, report, content string) error {
	updated := []byte(report + content)
	if err := writeFileAtomic(transcriptPath, updated, 0644); err != nil {
		return fmt.Errorf("stamping report on %s: %w", transcriptPath, err)
	}
	if err := os.MkdirAll(w.LogFolder, 0755); err != nil {
		return err
	}
	copyPath := filepath.Join(w.LogFolder, "parsed_"+filepath.Base(transcriptPath))
	if err := os.WriteFile(copyPath, updated, 0644); err != nil {
		return fmt.Errorf("copying parsed transcript: %w", err)
	}
	return nil
}

// LogInstructions writes one instruction_block_N.md per entry into the
// log folder.
func (w *Writer) LogInstructions(entries []parser.Instruction) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(w.LogFolder, 0755); err != nil {
		return err
	}
	for i, e := range entries {
		path := filepath.Join(w.LogFolder, fmt.Sprintf("instruction_block_%d.md", i+1))
		line := fmt.Sprintf("Line %d: %s\n", e.Number, e.Text)
		if err := os.WriteFile(path, []byte(line), 0644); err != nil {
			return fmt.Errorf("logging instruction %d: %w", i+1, err)
		}
	}
	return nil
}

func contentBytes(fi parser.FileInfo) []byte {
	texts := make([]string, len(fi.Content))
	for i, l := range fi.Content {
		texts[i] = l.Text
	}
	return []byte(strings.Join(texts, "\n"))
}
