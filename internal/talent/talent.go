// Package talent provides the client-managed pipeline of saved candidates,
// organized into named, colored folders.
package talent

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a lightweight snapshot of an analyzed profile stored inside a folder.
type Candidate struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Seniority string    `json:"seniority"`
	AddedAt   time.Time `json:"added_at"`
}

// Folder is a user-defined named collection of saved candidates.
// Candidates are unique by username within a folder.
type Folder struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Color      string      `json:"color"`
	Candidates []Candidate `json:"candidates"`
}

// DefaultFolderName is the label for the auto-offered folder when none exist.
const DefaultFolderName = "Default"

// palette holds the folder colors cycled through on creation.
var palette = []string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ef4444", // red
	"#06b6d4", // cyan
}

// Pipeline is the ordered collection of folders. The zero value is usable.
type Pipeline struct {
	Folders []Folder `json:"folders"`
}

// CreateFolder appends a new empty folder with a fresh id and a palette color
// and returns it.
func (p *Pipeline) CreateFolder(name string) Folder {
	f := Folder{
		ID:         uuid.NewString(),
		Name:       name,
		Color:      palette[len(p.Folders)%len(palette)],
		Candidates: []Candidate{},
	}
	p.Folders = append(p.Folders, f)
	return f
}

// DeleteFolder removes the folder with the given id and everything it
// contains. Deleting an unknown id is a no-op.
func (p *Pipeline) DeleteFolder(id string) {
	for i, f := range p.Folders {
		if f.ID == id {
			p.Folders = append(p.Folders[:i], p.Folders[i+1:]...)
			return
		}
	}
}

// EditFolder renames and recolors a folder in place. Unknown ids are a no-op.
// Empty name or color leave the respective field unchanged.
func (p *Pipeline) EditFolder(id, name, color string) {
	for i := range p.Folders {
		if p.Folders[i].ID != id {
			continue
		}
		if name != "" {
			p.Folders[i].Name = name
		}
		if color != "" {
			p.Folders[i].Color = color
		}
		return
	}
}

// FindFolder returns the folder with the given id, or nil.
func (p *Pipeline) FindFolder(id string) *Folder {
	for i := range p.Folders {
		if p.Folders[i].ID == id {
			return &p.Folders[i]
		}
	}
	return nil
}

// AddCandidate saves a candidate into a folder. If the folder already holds an
// entry for the same username the old entry is dropped and the new one
// appended, so the latest save always wins. Returns false if the folder does
// not exist.
func (p *Pipeline) AddCandidate(folderID string, c Candidate) bool {
	f := p.FindFolder(folderID)
	if f == nil {
		return false
	}
	for i, existing := range f.Candidates {
		if existing.Username == c.Username {
			f.Candidates = append(f.Candidates[:i], f.Candidates[i+1:]...)
			break
		}
	}
	f.Candidates = append(f.Candidates, c)
	return true
}

// RemoveCandidate drops the entry for username from a folder. Removing a
// candidate that is not present, or from an unknown folder, is a no-op.
func (p *Pipeline) RemoveCandidate(folderID, username string) {
	f := p.FindFolder(folderID)
	if f == nil {
		return
	}
	for i, c := range f.Candidates {
		if c.Username == username {
			f.Candidates = append(f.Candidates[:i], f.Candidates[i+1:]...)
			return
		}
	}
}

// TotalCandidates counts saved candidates across all folders.
func (p *Pipeline) TotalCandidates() int {
	n := 0
	for _, f := range p.Folders {
		n += len(f.Candidates)
	}
	return n
}
