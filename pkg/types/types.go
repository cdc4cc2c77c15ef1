package types

import (
	"fmt"
	"path/filepath"
)

// FileRecord holds the identity of a single candidate file as the
// pipeline learns it: size first, then the partial fingerprint, then
// (only when needed) the full fingerprint.
type FileRecord struct {
	Path        string
	Size        int64
	PartialHash string
	FullHash    string
}

// NewFileRecord creates a FileRecord, validating the fields that every
// later stage depends on.
func NewFileRecord(path string, size int64) (*FileRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("file record requires a path")
	}
	if size < 0 {
		return nil, fmt.Errorf("file record for %s has negative size %d", path, size)
	}
	return &FileRecord{Path: path, Size: size}, nil
}

// DuplicateGroup is a set of files with identical content. The first
// member is kept in place; the rest are moved to quarantine.
type DuplicateGroup struct {
	Hash  string
	Size  int64
	Files []string
}

// NewDuplicateGroup creates a DuplicateGroup. Files must already be in
// discovery order; the first entry becomes the keeper.
func NewDuplicateGroup(hash string, size int64, files []string) (*DuplicateGroup, error) {
	if hash == "" {
		return nil, fmt.Errorf("duplicate group requires a hash")
	}
	if len(files) < 2 {
		return nil, fmt.Errorf("duplicate group for %s needs at least two files, got %d", hash, len(files))
	}
	return &DuplicateGroup{Hash: hash, Size: size, Files: files}, nil
}

// Keep returns the file that stays in place.
func (g *DuplicateGroup) Keep() string {
	return g.Files[0]
}

// Duplicates returns the files to be moved to quarantine.
func (g *DuplicateGroup) Duplicates() []string {
	return g.Files[1:]
}

// WastedBytes returns the bytes recoverable by quarantining the group.
func (g *DuplicateGroup) WastedBytes() int64 {
	return g.Size * int64(len(g.Files)-1)
}

// NameGroup is a set of paths that share a final path component.
// Paths are sorted lexicographically; the first is kept unchanged.
type NameGroup struct {
	Name  string
	Paths []string
}

// NewNameGroup creates a NameGroup from already-sorted paths.
func NewNameGroup(name string, paths []string) (*NameGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("name group requires a base name")
	}
	if len(paths) < 2 {
		return nil, fmt.Errorf("name group for %q needs at least two paths, got %d", name, len(paths))
	}
	for _, p := range paths {
		if filepath.Base(p) != name {
			return nil, fmt.Errorf("path %s does not match name group %q", p, name)
		}
	}
	return &NameGroup{Name: name, Paths: paths}, nil
}

// Keep returns the path that keeps its name.
func (g *NameGroup) Keep() string {
	return g.Paths[0]
}

// Collisions returns the paths that need a new name.
func (g *NameGroup) Collisions() []string {
	return g.Paths[1:]
}

// RenameOperation is a single planned rename, consumed once by the
// executor.
type RenameOperation struct {
	Source string
	Target string
	Reason string
}

// Outcome accumulates per-item results of a batch of filesystem
// mutations. Failures never abort the batch, they are only counted.
type Outcome struct {
	Succeeded     int
	Failed        int
	BytesAffected int64
}

// Merge folds another outcome into this one.
func (o *Outcome) Merge(other Outcome) {
	o.Succeeded += other.Succeeded
	o.Failed += other.Failed
	o.BytesAffected += other.BytesAffected
}
