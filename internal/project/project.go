// Package project implements the operations behind every makebio command:
// scaffolding the fixed directory layout, adding date-prefixed analysis and
// data directories, freezing finished work read-only, and keeping the
// project configuration in sync with the tree. Filesystem changes always
// happen before the matching config change, so a crash leaves at worst an
// untracked directory that update can re-register.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raivivek/makebio/internal/config"
	"github.com/raivivek/makebio/internal/fsops"
	"github.com/raivivek/makebio/internal/snapshot"
)

const DateFormat = "2006-01-02"

// SkeletonDirs is the fixed layout created at the project root, besides the
// work and data entries whose shape depends on --linkto.
var SkeletonDirs = []string{"bin", "control", "figures", "notebooks", "src", "results"}

const gitignore = `# Large or regenerable artifacts stay out of snapshots.
work/
data/
*.swp
.DS_Store
`

// Project is an explicit handle on one initialized project root. All
// operations go through a handle; nothing reads ambient process state.
type Project struct {
	Root   string
	Config *config.Config

	store snapshot.Store
}

// Open loads the project at root, failing when root is not initialized.
func Open(root string) (*Project, error) {
	cfg, err := config.Load(root)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotInitialized, root)
		}
		return nil, err
	}
	return &Project{Root: root, Config: cfg, store: snapshot.GitStore{}}, nil
}

// InitOptions carries everything init needs besides the root path.
type InitOptions struct {
	Name        string // defaults to the root's base name
	LinkTo      string // scratch root; empty means plain work/ and data/ dirs
	Author      string
	Email       string
	Description string

	AllowDangling bool // permit work/data symlinks whose target is missing
	Git           bool // initialize the snapshot store

	Now time.Time // creation timestamp; zero means time.Now
}

// Init scaffolds a new project at root and writes its initial configuration.
// The config is written last: if any earlier step fails the root holds no
// config and therefore stays uninitialized.
func Init(root string, opts InitOptions) (*Project, error) {
	if fsops.Exists(root) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, root)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(root)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := fsops.MakeDir(root); err != nil {
		return nil, err
	}
	for _, dir := range SkeletonDirs {
		if err := fsops.MakeDir(filepath.Join(root, dir)); err != nil {
			return nil, err
		}
	}

	var links config.Links
	if opts.LinkTo != "" {
		workTarget := filepath.Join(opts.LinkTo, name, "work")
		dataTarget := filepath.Join(opts.LinkTo, name, "data")
		for _, target := range []string{workTarget, dataTarget} {
			if err := os.MkdirAll(target, 0o755); err != nil && !opts.AllowDangling {
				return nil, fmt.Errorf("%w: %s: %v", ErrBrokenLink, target, err)
			}
		}
		if err := fsops.MakeSymlink(workTarget, filepath.Join(root, "work"), opts.AllowDangling); err != nil {
			return nil, err
		}
		if err := fsops.MakeSymlink(dataTarget, filepath.Join(root, "data"), opts.AllowDangling); err != nil {
			return nil, err
		}
		links = config.Links{Work: workTarget, Data: dataTarget}
	} else {
		if err := fsops.MakeDir(filepath.Join(root, "work")); err != nil {
			return nil, err
		}
		if err := fsops.MakeDir(filepath.Join(root, "data")); err != nil {
			return nil, err
		}
	}

	store := snapshot.GitStore{}
	if opts.Git {
		if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write .gitignore: %w", err)
		}
		if err := store.Init(root); err != nil {
			return nil, err
		}
	}

	cfg := &config.Config{
		Version:     config.CurrentConfigVersion,
		Name:        name,
		Created:     now.Format(DateFormat),
		Author:      opts.Author,
		Email:       opts.Email,
		Description: opts.Description,
		Settings:    config.Settings{InitGit: opts.Git, AllowDangling: opts.AllowDangling},
		Links:       links,
	}
	if err := config.Save(root, cfg); err != nil {
		return nil, err
	}

	return &Project{Root: root, Config: cfg, store: store}, nil
}

// DirName computes the date-prefixed directory name for an analysis or data
// entry, e.g. 2019-04-20_createTracks.
func DirName(name string, day time.Time) string {
	return day.Format(DateFormat) + "_" + name
}

// AddAnalysis creates paired directories under control/ and results/ and
// records the analysis. Name uniqueness is enforced against the config, not
// just the disk.
func (p *Project) AddAnalysis(name string, day time.Time) (*config.Analysis, error) {
	if day.IsZero() {
		day = time.Now()
	}
	if p.Config.HasName(name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	dir := DirName(name, day)
	if err := fsops.MakeDir(filepath.Join(p.Root, "control", dir)); err != nil {
		return nil, err
	}
	if err := fsops.MakeDir(filepath.Join(p.Root, "results", dir)); err != nil {
		return nil, err
	}

	rec := config.Analysis{Name: name, Created: day.Format(DateFormat), Dir: dir}
	p.Config.Analyses = append(p.Config.Analyses, rec)
	if err := p.saveConfig(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AddData creates a dataset directory under data/ and records it, optionally
// freezing it read-only right away.
func (p *Project) AddData(name string, day time.Time, freeze bool) (*config.Data, error) {
	if day.IsZero() {
		day = time.Now()
	}
	if p.Config.HasName(name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	dir := DirName(name, day)
	path := filepath.Join(p.Root, "data", dir)
	if err := fsops.MakeDir(path); err != nil {
		return nil, err
	}
	if freeze {
		if err := fsops.Freeze(path); err != nil {
			return nil, err
		}
	}

	rec := config.Data{Name: name, Created: day.Format(DateFormat), Dir: dir, Frozen: freeze}
	p.Config.Datasets = append(p.Config.Datasets, rec)
	if err := p.saveConfig(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RenameAnalysis renames the control/ and results/ directories of an
// analysis, preserving the date prefix. The config is updated only after
// both directories are renamed; a failure on the second rename rolls the
// first one back.
func (p *Project) RenameAnalysis(oldName, newName string) error {
	rec := p.Config.FindAnalysis(oldName)
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if p.Config.HasName(newName) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, newName)
	}

	newDir := rec.Created + "_" + newName
	oldControl := filepath.Join(p.Root, "control", rec.Dir)
	newControl := filepath.Join(p.Root, "control", newDir)
	oldResults := filepath.Join(p.Root, "results", rec.Dir)
	newResults := filepath.Join(p.Root, "results", newDir)

	if err := os.Rename(oldControl, newControl); err != nil {
		return fmt.Errorf("failed to rename %s: %w", oldControl, err)
	}
	if err := os.Rename(oldResults, newResults); err != nil {
		// Restore the control rename so disk and config stay consistent.
		if rbErr := os.Rename(newControl, oldControl); rbErr != nil {
			return fmt.Errorf("failed to rename %s (rollback also failed: %v): %w", oldResults, rbErr, err)
		}
		return fmt.Errorf("failed to rename %s: %w", oldResults, err)
	}

	rec.Name = newName
	rec.Dir = newDir
	return p.saveConfig()
}

// Freeze resolves its argument as an analysis name, then a data name, then a
// path (relative to the project root or absolute), and marks the resolved
// directories read-only. Name resolution also records the frozen flag.
func (p *Project) Freeze(nameOrPath string) error {
	if rec := p.Config.FindAnalysis(nameOrPath); rec != nil {
		for _, sub := range []string{"control", "results"} {
			dir := filepath.Join(p.Root, sub, rec.Dir)
			if !fsops.Exists(dir) {
				return fmt.Errorf("%w: %s", ErrNotFound, dir)
			}
			if err := fsops.Freeze(dir); err != nil {
				return err
			}
		}
		if !rec.Frozen {
			rec.Frozen = true
			return p.saveConfig()
		}
		return nil
	}

	if rec := p.Config.FindData(nameOrPath); rec != nil {
		dir := filepath.Join(p.Root, "data", rec.Dir)
		if !fsops.Exists(dir) {
			return fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		if err := fsops.Freeze(dir); err != nil {
			return err
		}
		if !rec.Frozen {
			rec.Frozen = true
			return p.saveConfig()
		}
		return nil
	}

	path := nameOrPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}
	if !fsops.Exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, nameOrPath)
	}
	return fsops.Freeze(path)
}

// Save snapshots the tracked tree. The work and data entries are never
// included: their contents live on scratch or are frozen datasets, neither
// of which belongs in a snapshot.
func (p *Project) Save(message string) (string, error) {
	if message == "" {
		message = "Snapshot " + time.Now().Format("2006-01-02 15:04")
	}

	tracked := append([]string{}, SkeletonDirs...)
	tracked = append(tracked, config.ConfigFile, ".gitignore")

	paths := make([]string, 0, len(tracked))
	for _, rel := range tracked {
		if fsops.Exists(filepath.Join(p.Root, rel)) {
			paths = append(paths, rel)
		}
	}

	return p.store.Commit(p.Root, paths, message)
}

func (p *Project) saveConfig() error {
	return config.Save(p.Root, p.Config)
}
