// Package naming produces collision-free destination paths for moves
// and renames. Both tools share the same suffixing scheme: a hyphen
// and an integer inserted between the file stem and its extension
// ("photo.jpg" -> "photo-1.jpg", "README" -> "README-1").
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/undupe/pkg/types"
)

// WithIndex returns base with the index suffix inserted between stem
// and extension.
func WithIndex(base string, index int) string {
	dir := filepath.Dir(base)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(filepath.Base(base), ext)
	return filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, index, ext))
}

// UniquePath probes the filesystem for the first index at or above
// start whose suffixed path does not exist. It is a pure probe: it
// creates nothing, so calling it twice against an unchanged filesystem
// returns the same path.
func UniquePath(fsys types.FS, base string, start int) string {
	for index := start; ; index++ {
		candidate := WithIndex(base, index)
		if !exists(fsys, candidate) {
			return candidate
		}
	}
}

// Generator hands out collision-free paths for one batch. On top of
// the filesystem probe it remembers every path it has returned, so two
// planned actions in the same batch can never claim the same target
// even before anything is created on disk. A Generator is not safe for
// concurrent use; probes for one batch must stay on one goroutine.
type Generator struct {
	fsys    types.FS
	claimed map[string]struct{}
}

// NewGenerator creates a Generator for a single planning batch.
func NewGenerator(fsys types.FS) *Generator {
	return &Generator{
		fsys:    fsys,
		claimed: make(map[string]struct{}),
	}
}

// Reserve claims base as-is if it is free, reporting whether the claim
// succeeded. Callers that want "plain name first, suffix only on
// collision" try Reserve before falling back to Unique.
func (g *Generator) Reserve(base string) bool {
	if g.taken(base) {
		return false
	}
	g.claimed[base] = struct{}{}
	return true
}

// Unique returns the first free suffixed variant of base at or above
// start and claims it for the rest of the batch.
func (g *Generator) Unique(base string, start int) string {
	for index := start; ; index++ {
		candidate := WithIndex(base, index)
		if !g.taken(candidate) {
			g.claimed[candidate] = struct{}{}
			return candidate
		}
	}
}

func (g *Generator) taken(path string) bool {
	if _, ok := g.claimed[path]; ok {
		return true
	}
	return exists(g.fsys, path)
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}
