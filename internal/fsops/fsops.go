package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrAlreadyExists = errors.New("path already exists")
	ErrBrokenLink    = errors.New("symlink target does not exist")
	ErrPermission    = errors.New("failed to update permissions")
)

// writeBits covers owner, group, and other write permission.
const writeBits fs.FileMode = 0o222

// Exists reports whether path exists. Dangling symlinks count as existing.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and resolves to a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MakeDir creates path and any missing parents. The path itself must not
// already exist.
func MakeDir(path string) error {
	if Exists(path) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// MakeSymlink creates link pointing at target. Unless allowDangling is set,
// the target must already exist; scaffolding onto a scratch mount that is
// not available yet is the one case where a dangling link is wanted.
func MakeSymlink(target, link string, allowDangling bool) error {
	if Exists(link) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, link)
	}
	if !allowDangling {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("%w: %s", ErrBrokenLink, target)
		}
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("failed to link %s -> %s: %w", link, target, err)
	}
	return nil
}

// Freeze strips write permission from path and everything under it, leaving
// read and execute bits alone. Freezing an already-frozen tree is a no-op.
func Freeze(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		mode := info.Mode()
		if mode&writeBits == 0 {
			return nil
		}
		if err := os.Chmod(p, mode.Perm()&^writeBits); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPermission, p, err)
		}
		return nil
	})
}

// Frozen reports whether path carries no write permission bits.
func Frozen(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode()&writeBits == 0, nil
}
