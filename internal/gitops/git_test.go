package gitops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.py"), []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("a.py"); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@localhost", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir
}

func TestOpen_NotARepo(t *testing.T) {
	r, err := Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil repo for a plain directory")
	}
}

func TestBranchAndCommit(t *testing.T) {
	dir := initRepo(t)
	r, err := Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if r == nil {
		t.Fatal("expected a repo")
	}

	if err := r.StartBranch("update-a.py-test"); err != nil {
		t.Fatalf("start branch: %v", err)
	}
	head, err := r.repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.Name().Short() != "update-a.py-test" {
		t.Fatalf("on branch %q, want update-a.py-test", head.Name().Short())
	}

	if err := os.WriteFile(filepath.Join(dir, "a.py"), []byte("new\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.CommitAll("update a.py"); err != nil {
		t.Fatalf("commit all: %v", err)
	}
	newHead, err := r.repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if newHead.Hash() == head.Hash() {
		t.Fatal("expected a new commit")
	}
}

func TestBranchName(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	got := BranchName([]string{"src/a.py", "b.go"}, now)
	if got != "update-a.py-b.go-20240102-150405" {
		t.Fatalf("unexpected branch name: %q", got)
	}
}

func TestBranchName_FallsBackWhenUnwieldy(t *testing.T) {
	now := time.Now()
	long := []string{strings.Repeat("x", 80) + ".py"}
	got := BranchName(long, now)
	if len(got) > 80 || !strings.HasPrefix(got, "update-") {
		t.Fatalf("unexpected branch name: %q", got)
	}
	empty := BranchName(nil, now)
	if !strings.HasPrefix(empty, "update-") {
		t.Fatalf("unexpected branch name: %q", empty)
	}
}
