// Package gitops wraps the git operations the pipeline needs when it
// overwrites existing files: a dedicated update branch and a commit.
package gitops

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo wraps a git worktree.
type Repo struct {
	repo *git.Repository
	log  zerolog.Logger
}

// Open returns the repository containing path, or (nil, nil) when path is
// not inside one. Git integration is optional; a missing repo only means
// updates happen without branching.
func Open(path string, log zerolog.Logger) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening git repo at %s: %w", path, err)
	}
	return &Repo{repo: r, log: log}, nil
}

// BranchName builds an update branch name from the files being replaced,
// e.g. "update-a.py-b.py-20240101-120000". Falls back to a short random
// id when the joined names are empty or unwieldy.
func BranchName(paths []string, now time.Time) string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	joined := strings.Join(names, "-")
	if joined == "" || len(joined) > 60 {
		joined = uuid.NewString()[:8]
	}
	return fmt.Sprintf("update-%s-%s", joined, now.Format("20060102-150405"))
}

// StartBranch creates and checks out a new branch at HEAD.
func (r *Repo) StartBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	}); err != nil {
		return fmt.Errorf("creating branch %s: %w", name, err)
	}
	r.log.Info().Str("branch", name).Msg("update branch created")
	return nil
}

// CommitAll stages every change in the worktree and commits.
func (r *Repo) CommitAll(message string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "weaver", Email: "weaver@localhost", When: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	r.log.Info().Str("commit", hash.String()[:8]).Msg("changes committed")
	return nil
}
