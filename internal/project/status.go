package project

import (
	"path/filepath"

	"github.com/raivivek/makebio/internal/fsops"
	"github.com/raivivek/makebio/internal/snapshot"
)

// RecordStatus is the on-disk view of one tracked analysis or data entry.
type RecordStatus struct {
	Name    string `json:"name"`
	Created string `json:"created"`
	Dir     string `json:"dir"`
	Frozen  bool   `json:"frozen"`
	Missing bool   `json:"missing"`
}

// Status is a read-only report of the whole project for show.
type Status struct {
	Root        string             `json:"root"`
	Name        string             `json:"name"`
	Created     string             `json:"created"`
	Author      string             `json:"author,omitempty"`
	Email       string             `json:"email,omitempty"`
	Description string             `json:"description,omitempty"`
	WorkLink    string             `json:"work_link,omitempty"`
	DataLink    string             `json:"data_link,omitempty"`
	Analyses    []RecordStatus     `json:"analyses"`
	Datasets    []RecordStatus     `json:"data"`
	Snapshot    *snapshot.HeadInfo `json:"snapshot,omitempty"`
}

// Status renders the current project state. It never mutates anything; a
// vanished directory is only reported, reconciliation belongs to update.
func (p *Project) Status() Status {
	st := Status{
		Root:        p.Root,
		Name:        p.Config.Name,
		Created:     p.Config.Created,
		Author:      p.Config.Author,
		Email:       p.Config.Email,
		Description: p.Config.Description,
		WorkLink:    p.Config.Links.Work,
		DataLink:    p.Config.Links.Data,
		Analyses:    make([]RecordStatus, 0, len(p.Config.Analyses)),
		Datasets:    make([]RecordStatus, 0, len(p.Config.Datasets)),
	}

	for _, a := range p.Config.Analyses {
		st.Analyses = append(st.Analyses, RecordStatus{
			Name:    a.Name,
			Created: a.Created,
			Dir:     a.Dir,
			Frozen:  a.Frozen,
			Missing: !fsops.Exists(filepath.Join(p.Root, "control", a.Dir)),
		})
	}
	for _, d := range p.Config.Datasets {
		st.Datasets = append(st.Datasets, RecordStatus{
			Name:    d.Name,
			Created: d.Created,
			Dir:     d.Dir,
			Frozen:  d.Frozen,
			Missing: !fsops.Exists(filepath.Join(p.Root, "data", d.Dir)),
		})
	}

	if head, err := p.store.Head(p.Root); err == nil {
		st.Snapshot = head
	}

	return st
}
