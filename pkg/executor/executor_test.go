package executor_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/undupe/pkg/executor"
	"github.com/arthur-debert/undupe/pkg/filesystem"
	"github.com/arthur-debert/undupe/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func mustGroup(t *testing.T, hash string, size int64, files []string) *types.DuplicateGroup {
	t.Helper()
	group, err := types.NewDuplicateGroup(hash, size, files)
	require.NoError(t, err)
	return group
}

func TestMoveDuplicatesRelocatesLosers(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.jpg", []byte("abc"))
	lose := writeFile(t, dir, "lose.jpg", []byte("abc"))
	quarantine := filepath.Join(dir, "duplicates")

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, lose})},
		quarantine,
	)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, 0, outcome.Failed)
	assert.Equal(t, int64(3), outcome.BytesAffected)

	assert.FileExists(t, keep, "keeper stays in place")
	assert.NoFileExists(t, lose, "loser no longer exists at its original path")
	assert.FileExists(t, filepath.Join(quarantine, "lose.jpg"))
}

func TestMoveDuplicatesSuffixesOnNameCollision(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "a/photo.jpg", []byte("abc"))
	lose := writeFile(t, dir, "b/photo.jpg", []byte("abc"))

	quarantine := filepath.Join(dir, "duplicates")
	// A file with the loser's name already sits in quarantine.
	writeFile(t, dir, "duplicates/photo.jpg", []byte("unrelated"))

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, lose})},
		quarantine,
	)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Succeeded)
	assert.FileExists(t, filepath.Join(quarantine, "photo-1.jpg"),
		"collision resolves with a -1 suffix instead of overwriting")

	data, err := os.ReadFile(filepath.Join(quarantine, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("unrelated"), data, "pre-existing file is untouched")
}

func TestMoveDuplicatesSameNameLosersGetDistinctTargets(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "a/pic.jpg", []byte("abc"))
	lose1 := writeFile(t, dir, "b/pic.jpg", []byte("abc"))
	lose2 := writeFile(t, dir, "c/pic.jpg", []byte("abc"))
	quarantine := filepath.Join(dir, "duplicates")

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, lose1, lose2})},
		quarantine,
	)
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.Succeeded)
	assert.FileExists(t, filepath.Join(quarantine, "pic.jpg"))
	assert.FileExists(t, filepath.Join(quarantine, "pic-1.jpg"))
}

func TestMoveDuplicatesContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.bin", []byte("xyz"))
	gone := filepath.Join(dir, "gone.bin")
	lose := writeFile(t, dir, "lose.bin", []byte("xyz"))
	quarantine := filepath.Join(dir, "duplicates")

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, gone, lose})},
		quarantine,
	)
	require.NoError(t, err, "per-item failures never fail the batch")

	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	assert.FileExists(t, filepath.Join(quarantine, "lose.bin"),
		"the action after the failed one still runs")
}

func TestMoveDuplicatesDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.jpg", []byte("abc"))
	lose := writeFile(t, dir, "lose.jpg", []byte("abc"))
	quarantine := filepath.Join(dir, "duplicates")

	exec := executor.New(executor.Options{FS: filesystem.NewOS(), DryRun: true})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, lose})},
		quarantine,
	)
	require.NoError(t, err)

	assert.Equal(t, types.Outcome{}, outcome)
	assert.FileExists(t, lose)
	assert.NoDirExists(t, quarantine, "dry run does not even create the quarantine directory")
}

func TestExecuteRenames(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "b/photo.jpg", []byte("2"))
	target := filepath.Join(dir, "b", "photo-1.jpg")

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome := exec.ExecuteRenames([]types.RenameOperation{
		{Source: source, Target: target, Reason: "Duplicate of 'photo.jpg'"},
	})

	assert.Equal(t, 1, outcome.Succeeded)
	assert.NoFileExists(t, source)
	assert.FileExists(t, target)
}

func TestExecuteRenamesContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	source := writeFile(t, dir, "real.txt", []byte("x"))

	exec := executor.New(executor.Options{FS: filesystem.NewOS()})
	outcome := exec.ExecuteRenames([]types.RenameOperation{
		{Source: missing, Target: filepath.Join(dir, "missing-1.txt")},
		{Source: source, Target: filepath.Join(dir, "real-1.txt")},
	})

	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	assert.FileExists(t, filepath.Join(dir, "real-1.txt"))
}

func TestExecuteRenamesDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "photo.jpg", []byte("x"))

	exec := executor.New(executor.Options{FS: filesystem.NewOS(), DryRun: true})
	outcome := exec.ExecuteRenames([]types.RenameOperation{
		{Source: source, Target: filepath.Join(dir, "photo-1.jpg")},
	})

	assert.Equal(t, types.Outcome{}, outcome)
	assert.FileExists(t, source)
	assert.NoFileExists(t, filepath.Join(dir, "photo-1.jpg"))
}

func writeFS(t *testing.T, fsys types.FS, path string, content []byte) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, content, 0644))
}

func TestMoveDuplicatesAgainstMemoryFilesystem(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	writeFS(t, fsys, "photos/keep.jpg", []byte("abc"))
	writeFS(t, fsys, "photos/lose.jpg", []byte("abc"))

	exec := executor.New(executor.Options{FS: fsys})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{"photos/keep.jpg", "photos/lose.jpg"})},
		"duplicates",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Succeeded)
	data, err := fsys.ReadFile("duplicates/lose.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	_, err = fsys.Stat("photos/lose.jpg")
	assert.True(t, os.IsNotExist(err))
}

// renameFailFS simulates a filesystem where rename cannot succeed, the
// way a move across mount points fails.
type renameFailFS struct {
	types.FS
}

func (f *renameFailFS) Rename(oldpath, newpath string) error {
	return errors.New("invalid cross-device link")
}

func TestMoveDuplicatesFallsBackToCopyWhenRenameFails(t *testing.T) {
	fsys := &renameFailFS{FS: filesystem.NewAferoFS(afero.NewMemMapFs())}
	writeFS(t, fsys, "photos/keep.jpg", []byte("abc"))
	writeFS(t, fsys, "photos/lose.jpg", []byte("abc"))

	exec := executor.New(executor.Options{FS: fsys})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{"photos/keep.jpg", "photos/lose.jpg"})},
		"duplicates",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, 0, outcome.Failed)

	data, err := fsys.ReadFile("duplicates/lose.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data, "destination holds the copied content")
	_, err = fsys.Stat("photos/lose.jpg")
	assert.True(t, os.IsNotExist(err), "source is removed after a successful copy")
}

type brokenReadFile struct{}

func (brokenReadFile) Read([]byte) (int, error) { return 0, errors.New("read error") }

func (brokenReadFile) Seek(int64, int) (int64, error) { return 0, nil }

func (brokenReadFile) Close() error { return nil }

// brokenReadFS fails every rename and every read, forcing the copy
// fallback to abort mid-stream.
type brokenReadFS struct {
	types.FS
}

func (f *brokenReadFS) Rename(oldpath, newpath string) error {
	return errors.New("invalid cross-device link")
}

func (f *brokenReadFS) Open(name string) (types.File, error) {
	return brokenReadFile{}, nil
}

func TestMoveDuplicatesCleansUpPartialCopy(t *testing.T) {
	fsys := &brokenReadFS{FS: filesystem.NewAferoFS(afero.NewMemMapFs())}
	writeFS(t, fsys, "photos/keep.jpg", []byte("abc"))
	writeFS(t, fsys, "photos/lose.jpg", []byte("abc"))

	exec := executor.New(executor.Options{FS: fsys})
	outcome, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{"photos/keep.jpg", "photos/lose.jpg"})},
		"duplicates",
	)
	require.NoError(t, err, "a failed move is counted, never fatal")

	assert.Equal(t, 0, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)

	_, err = fsys.Stat("duplicates/lose.jpg")
	assert.True(t, os.IsNotExist(err), "partial destination is removed when the copy fails")
	_, err = fsys.Stat("photos/lose.jpg")
	assert.NoError(t, err, "source stays in place when the move fails")
}

type recordingObserver struct {
	completed []string
	errs      int
}

func (r *recordingObserver) FilesDiscovered(count int) {}

func (r *recordingObserver) FileHashed(path string) {}

func (r *recordingObserver) ActionCompleted(desc string, err error) {
	r.completed = append(r.completed, desc)
	if err != nil {
		r.errs++
	}
}

func TestExecutorNotifiesObserver(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.jpg", []byte("abc"))
	lose := writeFile(t, dir, "lose.jpg", []byte("abc"))
	gone := filepath.Join(dir, "gone.jpg")

	obs := &recordingObserver{}
	exec := executor.New(executor.Options{FS: filesystem.NewOS(), Observer: obs})
	_, err := exec.MoveDuplicates(
		[]*types.DuplicateGroup{mustGroup(t, "h", 3, []string{keep, lose, gone})},
		filepath.Join(dir, "duplicates"),
	)
	require.NoError(t, err)

	assert.Len(t, obs.completed, 2)
	assert.Equal(t, 1, obs.errs)
}
