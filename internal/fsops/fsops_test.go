package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMakeDirRefusesExistingPath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b")

	if err := MakeDir(path); err != nil {
		t.Fatalf("MakeDir failed: %v", err)
	}
	if err := MakeDir(path); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMakeSymlinkTargetPolicy(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "missing")

	if err := MakeSymlink(missing, filepath.Join(root, "strict"), false); !errors.Is(err, ErrBrokenLink) {
		t.Fatalf("expected ErrBrokenLink for missing target, got %v", err)
	}

	if err := MakeSymlink(missing, filepath.Join(root, "dangling"), true); err != nil {
		t.Fatalf("expected dangling link to be permitted, got %v", err)
	}
	if !Exists(filepath.Join(root, "dangling")) {
		t.Fatalf("expected dangling link to exist via Lstat")
	}

	// A dangling link occupies its path: creating over it must fail.
	if err := MakeSymlink(missing, filepath.Join(root, "dangling"), true); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists over dangling link, got %v", err)
	}
}

func TestFreezeIsRecursiveAndIdempotent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2024-01-01_peaks")
	nested := filepath.Join(dir, "sub")
	mustMkdirAll(t, nested)
	file := filepath.Join(nested, "notes.txt")
	mustWriteFile(t, file, "finalized")
	thaw(t, dir)

	if err := Freeze(dir); err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}
	first := snapshotModes(t, dir, nested, file)

	if err := Freeze(dir); err != nil {
		t.Fatalf("second Freeze failed: %v", err)
	}
	second := snapshotModes(t, dir, nested, file)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical modes across freezes, got %v then %v", first, second)
		}
		if first[i]&0o222 != 0 {
			t.Fatalf("expected write bits stripped, got %v", first[i])
		}
		if first[i]&0o444 == 0 {
			t.Fatalf("expected read bits preserved, got %v", first[i])
		}
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode()&0o111 == 0 {
		t.Fatalf("expected directory execute bits preserved, got %v", info.Mode())
	}

	frozen, err := Frozen(dir)
	if err != nil {
		t.Fatalf("Frozen failed: %v", err)
	}
	if !frozen {
		t.Fatalf("expected Frozen to report true")
	}
}

func TestFrozenOnWritablePath(t *testing.T) {
	root := t.TempDir()
	frozen, err := Frozen(root)
	if err != nil {
		t.Fatalf("Frozen failed: %v", err)
	}
	if frozen {
		t.Fatalf("expected fresh temp dir to be writable")
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s failed: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}

func snapshotModes(t *testing.T, paths ...string) []os.FileMode {
	t.Helper()
	modes := make([]os.FileMode, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s failed: %v", path, err)
		}
		modes = append(modes, info.Mode().Perm())
	}
	return modes
}

// thaw restores write permission before TempDir cleanup runs.
func thaw(t *testing.T, dir string) {
	t.Helper()
	t.Cleanup(func() {
		_ = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			_ = os.Chmod(p, info.Mode().Perm()|0o200)
			return nil
		})
	})
}
