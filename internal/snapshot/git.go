// Package snapshot persists point-in-time commits of a project's tracked
// files. The store is deliberately narrow: project operations decide what is
// tracked, the store only records it.
package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var ErrSnapshot = errors.New("snapshot failed")

// HeadInfo describes the most recent snapshot, if any.
type HeadInfo struct {
	Hash    string
	When    time.Time
	Message string
}

// Store is the snapshot backend used by project operations.
type Store interface {
	// Init prepares a snapshot store at root. Calling it on an existing
	// store is a no-op.
	Init(root string) error
	// Commit snapshots the given root-relative paths. It returns the empty
	// string without error when there is nothing new to record.
	Commit(root string, paths []string, message string) (string, error)
	// Head returns the latest snapshot, or nil when none exists.
	Head(root string) (*HeadInfo, error)
}

// GitStore keeps snapshots as commits in a git repository at the project
// root.
type GitStore struct{}

func (GitStore) Init(root string) error {
	_, err := git.PlainInit(root, false)
	if err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("%w: init: %v", ErrSnapshot, err)
	}
	return nil
}

func (GitStore) Commit(root string, paths []string, message string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("%w: open: %v", ErrSnapshot, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: worktree: %v", ErrSnapshot, err)
	}

	for _, path := range paths {
		if _, err := wt.Add(path); err != nil {
			return "", fmt.Errorf("%w: add %s: %v", ErrSnapshot, path, err)
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: signature(repo)})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", nil
		}
		return "", fmt.Errorf("%w: commit: %v", ErrSnapshot, err)
	}
	return hash.String(), nil
}

func (GitStore) Head(root string) (*HeadInfo, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		// No repository means no snapshots, which is not an error.
		return nil, nil
	}

	head, err := repo.Head()
	if err != nil {
		// Empty repository: HEAD exists but points at nothing yet.
		return nil, nil
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: head: %v", ErrSnapshot, err)
	}

	return &HeadInfo{
		Hash:    head.Hash().String(),
		When:    commit.Author.When,
		Message: strings.TrimSpace(commit.Message),
	}, nil
}

// signature resolves the commit identity from git configuration, falling
// back to a fixed tool identity so save works on machines without one.
func signature(repo *git.Repository) *object.Signature {
	name, email := "makebio", "makebio@localhost"
	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
