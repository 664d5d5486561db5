package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/raivivek/makebio/internal/config"
	"github.com/raivivek/makebio/internal/fsops"
)

// UpdateReport lists the differences between the config and the tree.
type UpdateReport struct {
	UntrackedAnalyses []string `json:"untracked_analyses,omitempty"`
	UntrackedData     []string `json:"untracked_data,omitempty"`
	MissingAnalyses   []string `json:"missing_analyses,omitempty"`
	MissingData       []string `json:"missing_data,omitempty"`
	Registered        []string `json:"registered,omitempty"`
	Skipped           []string `json:"skipped,omitempty"`
}

// Clean reports whether config and tree agree.
func (r UpdateReport) Clean() bool {
	return len(r.UntrackedAnalyses) == 0 && len(r.UntrackedData) == 0 &&
		len(r.MissingAnalyses) == 0 && len(r.MissingData) == 0
}

// Scan compares the config against the directories actually present under
// control/ and data/ without changing either.
func (p *Project) Scan() (UpdateReport, error) {
	var report UpdateReport

	controlDirs, err := listDirs(filepath.Join(p.Root, "control"))
	if err != nil {
		return report, err
	}
	dataDirs, err := listDirs(filepath.Join(p.Root, "data"))
	if err != nil {
		return report, err
	}

	trackedAnalyses := make(map[string]bool, len(p.Config.Analyses))
	for _, a := range p.Config.Analyses {
		trackedAnalyses[a.Dir] = true
		if !controlDirs[a.Dir] {
			report.MissingAnalyses = append(report.MissingAnalyses, a.Dir)
		}
	}
	trackedData := make(map[string]bool, len(p.Config.Datasets))
	for _, d := range p.Config.Datasets {
		trackedData[d.Dir] = true
		if !dataDirs[d.Dir] {
			report.MissingData = append(report.MissingData, d.Dir)
		}
	}

	for dir := range controlDirs {
		if !trackedAnalyses[dir] {
			report.UntrackedAnalyses = append(report.UntrackedAnalyses, dir)
		}
	}
	for dir := range dataDirs {
		if !trackedData[dir] {
			report.UntrackedData = append(report.UntrackedData, dir)
		}
	}

	sort.Strings(report.UntrackedAnalyses)
	sort.Strings(report.UntrackedData)
	sort.Strings(report.MissingAnalyses)
	sort.Strings(report.MissingData)
	return report, nil
}

// Update re-synchronizes the config with the tree. With register set,
// untracked date-prefixed directories become config records; entries whose
// directories vanished are only flagged, never deleted.
func (p *Project) Update(register bool) (UpdateReport, error) {
	report, err := p.Scan()
	if err != nil {
		return report, err
	}
	if !register {
		return report, nil
	}

	for _, dir := range report.UntrackedAnalyses {
		created, name, ok := splitDirName(dir)
		if !ok || p.Config.HasName(name) {
			report.Skipped = append(report.Skipped, dir)
			continue
		}
		// An analysis needs its results mirror; recreate it if absent.
		resultsDir := filepath.Join(p.Root, "results", dir)
		if !fsops.Exists(resultsDir) {
			if err := fsops.MakeDir(resultsDir); err != nil {
				return report, err
			}
		}
		p.Config.Analyses = append(p.Config.Analyses, config.Analysis{
			Name:    name,
			Created: created,
			Dir:     dir,
		})
		report.Registered = append(report.Registered, dir)
	}

	for _, dir := range report.UntrackedData {
		created, name, ok := splitDirName(dir)
		if !ok || p.Config.HasName(name) {
			report.Skipped = append(report.Skipped, dir)
			continue
		}
		frozen, err := fsops.Frozen(filepath.Join(p.Root, "data", dir))
		if err != nil {
			return report, err
		}
		p.Config.Datasets = append(p.Config.Datasets, config.Data{
			Name:    name,
			Created: created,
			Dir:     dir,
			Frozen:  frozen,
		})
		report.Registered = append(report.Registered, dir)
	}

	if len(report.Registered) > 0 {
		if err := p.saveConfig(); err != nil {
			return report, err
		}
	}
	return report, nil
}

// splitDirName parses a date-prefixed directory name back into its creation
// date and entry name.
func splitDirName(dir string) (created, name string, ok bool) {
	prefix, rest, found := strings.Cut(dir, "_")
	if !found || rest == "" {
		return "", "", false
	}
	if _, err := time.Parse(DateFormat, prefix); err != nil {
		return "", "", false
	}
	return prefix, rest, true
}

func listDirs(path string) (map[string]bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	dirs := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs[entry.Name()] = true
		}
	}
	return dirs, nil
}
