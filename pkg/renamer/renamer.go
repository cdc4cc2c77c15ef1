// Package renamer implements filename-collision detection: files in
// different directories that share a final path component. It is
// independent of content-based deduplication; two colliding names may
// hold completely different bytes.
package renamer

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/naming"
	"github.com/arthur-debert/undupe/pkg/types"
)

// GroupByName buckets paths by their base name and returns the groups
// with two or more members. Members are sorted byte-wise by full path,
// a total order, so the result is identical regardless of discovery
// order; the first member keeps its name.
func GroupByName(paths []string) []*types.NameGroup {
	logger := logging.GetLogger("renamer")

	byName := make(map[string][]string)
	for _, path := range paths {
		name := filepath.Base(path)
		byName[name] = append(byName[name], path)
	}

	names := make([]string, 0, len(byName))
	for name, members := range byName {
		if len(members) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	groups := make([]*types.NameGroup, 0, len(names))
	for _, name := range names {
		members := byName[name]
		sort.Strings(members)
		group, err := types.NewNameGroup(name, members)
		if err != nil {
			logger.Error().Err(err).Str("name", name).Msg("Skipping malformed name group")
			continue
		}
		groups = append(groups, group)
	}

	logger.Debug().
		Int("files", len(paths)).
		Int("collisions", len(groups)).
		Msg("Name collision grouping completed")
	return groups
}

// PlanRenames produces one rename operation per colliding path. Each
// loser gets the next free suffixed variant of its own path; the
// generator's claim set guarantees two losers never plan the same
// target, even before anything is renamed on disk.
func PlanRenames(fsys types.FS, groups []*types.NameGroup) []types.RenameOperation {
	gen := naming.NewGenerator(fsys)

	var operations []types.RenameOperation
	for _, group := range groups {
		for index, path := range group.Collisions() {
			target := gen.Unique(path, index+1)
			operations = append(operations, types.RenameOperation{
				Source: path,
				Target: target,
				Reason: fmt.Sprintf("Duplicate of '%s'", group.Name),
			})
		}
	}
	return operations
}
