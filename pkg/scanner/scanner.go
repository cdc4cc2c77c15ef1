// Package scanner discovers candidate files under the supplied root
// directories. Discovery is strictly sequential: the emitted order is
// the tie-break that decides which member of a duplicate group is
// kept, so it must be identical across runs.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/undupe/pkg/errors"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/types"
	"github.com/rs/zerolog"
)

// ValidateRoots checks the pre-flight conditions: at least one root,
// and every root exists and is a directory. These are the only fatal
// errors in the pipeline; everything later degrades per-file.
func ValidateRoots(fsys types.FS, roots []string) error {
	if len(roots) == 0 {
		return errors.New(errors.ErrInvalidInput, "at least one directory must be specified")
	}
	for _, root := range roots {
		info, err := fsys.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Newf(errors.ErrRootNotFound, "directory %s does not exist", root)
			}
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", root)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrRootNotDir, "%s is not a directory", root)
		}
	}
	return nil
}

// Discover walks the roots depth-first and returns every regular file
// in deterministic order (directory entries are visited in sorted
// order). Entries that cannot be read are skipped and logged, never
// fatal.
func Discover(fsys types.FS, roots []string) []string {
	logger := logging.GetLogger("scanner")

	var paths []string
	for _, root := range roots {
		walk(fsys, root, &paths, logger)
	}

	logger.Debug().Int("files", len(paths)).Strs("roots", roots).Msg("Discovery completed")
	return paths
}

func walk(fsys types.FS, dir string, paths *[]string, logger zerolog.Logger) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			walk(fsys, path, paths, logger)
			continue
		}
		*paths = append(*paths, path)
	}
}
