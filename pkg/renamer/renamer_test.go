package renamer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/undupe/pkg/filesystem"
	"github.com/arthur-debert/undupe/pkg/naming"
	"github.com/arthur-debert/undupe/pkg/renamer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByNameFindsCollisions(t *testing.T) {
	paths := []string{"a/photo.jpg", "b/photo.jpg", "c/unique.txt"}

	groups := renamer.GroupByName(paths)

	require.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, "photo.jpg", group.Name)
	assert.Equal(t, []string{"a/photo.jpg", "b/photo.jpg"}, group.Paths)
	assert.Equal(t, "a/photo.jpg", group.Keep(), "lexicographically smaller path keeps its name")
	assert.Equal(t, []string{"b/photo.jpg"}, group.Collisions())
}

func TestGroupByNameIsOrderIndependent(t *testing.T) {
	forward := renamer.GroupByName([]string{"a/x.txt", "b/x.txt", "c/x.txt"})
	reversed := renamer.GroupByName([]string{"c/x.txt", "b/x.txt", "a/x.txt"})

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	assert.Equal(t, forward[0].Paths, reversed[0].Paths)
	assert.Equal(t, "a/x.txt", forward[0].Keep())
}

func TestGroupByNameIgnoresSingletons(t *testing.T) {
	groups := renamer.GroupByName([]string{"a/one.txt", "b/two.txt"})
	assert.Empty(t, groups)
}

func TestGroupByNameSortsGroupsByName(t *testing.T) {
	paths := []string{
		"x/zebra.txt", "y/zebra.txt",
		"x/apple.txt", "y/apple.txt",
	}

	groups := renamer.GroupByName(paths)
	require.Len(t, groups, 2)
	assert.Equal(t, "apple.txt", groups[0].Name)
	assert.Equal(t, "zebra.txt", groups[1].Name)
}

func TestPlanRenamesSuffixesLosers(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	for _, sub := range []string{"a", "b", "c"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "photo.jpg"), []byte(sub), 0644))
	}

	groups := renamer.GroupByName([]string{
		filepath.Join(dir, "a", "photo.jpg"),
		filepath.Join(dir, "b", "photo.jpg"),
		filepath.Join(dir, "c", "photo.jpg"),
	})
	ops := renamer.PlanRenames(fsys, groups)

	require.Len(t, ops, 2, "keeper needs no rename")
	assert.Equal(t, filepath.Join(dir, "b", "photo.jpg"), ops[0].Source)
	assert.Equal(t, filepath.Join(dir, "b", "photo-1.jpg"), ops[0].Target)
	assert.Equal(t, filepath.Join(dir, "c", "photo.jpg"), ops[1].Source)
	assert.Equal(t, filepath.Join(dir, "c", "photo-2.jpg"), ops[1].Target)
	assert.Equal(t, "Duplicate of 'photo.jpg'", ops[0].Reason)
}

func TestPlanRenamesProbesExistingTargets(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "doc.txt"), []byte(sub), 0644))
	}
	// The natural target already exists, forcing the probe onward.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "doc-1.txt"), []byte("x"), 0644))

	groups := renamer.GroupByName([]string{
		filepath.Join(dir, "a", "doc.txt"),
		filepath.Join(dir, "b", "doc.txt"),
	})
	ops := renamer.PlanRenames(fsys, groups)

	require.Len(t, ops, 1)
	assert.Equal(t, naming.WithIndex(filepath.Join(dir, "b", "doc.txt"), 2), ops[0].Target)
}

func TestPlanRenamesNeverReusesATargetWithinABatch(t *testing.T) {
	// Two colliding files in the same directory under different base
	// names cannot happen, but two groups can still race for the same
	// suffixed path when names overlap after suffixing. The claim set
	// must keep every planned target distinct.
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "f.txt"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "f.txt"), []byte("2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "f-1.txt"), []byte("3"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "f-1.txt"), []byte("4"), 0644))

	groups := renamer.GroupByName([]string{
		filepath.Join(dir, "a", "f.txt"),
		filepath.Join(dir, "b", "f.txt"),
		filepath.Join(dir, "a", "f-1.txt"),
		filepath.Join(dir, "b", "f-1.txt"),
	})
	ops := renamer.PlanRenames(fsys, groups)

	targets := make(map[string]bool)
	for _, op := range ops {
		assert.False(t, targets[op.Target], "target %s planned twice", op.Target)
		targets[op.Target] = true
	}
}
