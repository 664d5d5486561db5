package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitIsIdempotent(t *testing.T) {
	root := t.TempDir()
	store := GitStore{}

	if err := store.Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(root); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
}

func TestCommitAndHead(t *testing.T) {
	root := t.TempDir()
	store := GitStore{}
	if err := store.Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	head, err := store.Head(root)
	if err != nil {
		t.Fatalf("Head on empty store failed: %v", err)
	}
	if head != nil {
		t.Fatalf("expected no head before first commit, got %+v", head)
	}

	path := filepath.Join(root, "control.txt")
	if err := os.WriteFile(path, []byte("step one\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	hash, err := store.Commit(root, []string{"control.txt"}, "first snapshot")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected a commit hash")
	}

	head, err = store.Head(root)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if head == nil || head.Hash != hash {
		t.Fatalf("expected head %s, got %+v", hash, head)
	}
	if head.Message != "first snapshot" {
		t.Fatalf("expected snapshot message preserved, got %q", head.Message)
	}
}

func TestCommitWithNoChangesIsNotAnError(t *testing.T) {
	root := t.TempDir()
	store := GitStore{}
	if err := store.Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	path := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(path, []byte("tracked\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := store.Commit(root, []string{"notes.txt"}, "snapshot"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	hash, err := store.Commit(root, []string{"notes.txt"}, "snapshot again")
	if err != nil {
		t.Fatalf("empty Commit failed: %v", err)
	}
	if hash != "" {
		t.Fatalf("expected empty hash for a no-change commit, got %s", hash)
	}
}

func TestHeadOutsideRepository(t *testing.T) {
	head, err := GitStore{}.Head(t.TempDir())
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if head != nil {
		t.Fatalf("expected nil head outside a repository, got %+v", head)
	}
}
