// Package renamecmd orchestrates the filename-collision pipeline:
// discovery, name grouping, rename planning and, in run mode,
// execution.
package renamecmd

import (
	"time"

	"github.com/arthur-debert/undupe/pkg/executor"
	"github.com/arthur-debert/undupe/pkg/filesystem"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/renamer"
	"github.com/arthur-debert/undupe/pkg/scanner"
	"github.com/arthur-debert/undupe/pkg/types"
)

// Options holds options for the rename command
type Options struct {
	Mode        types.RunMode
	Directories []string
	FileSystem  types.FS       // Allow injecting a filesystem for testing
	Observer    types.Observer // Optional progress sink
}

// Result is the outcome of a rename run.
type Result struct {
	Mode       types.RunMode
	FilesFound int
	Groups     []*types.NameGroup
	Operations []types.RenameOperation
	Outcome    types.Outcome
	Duration   time.Duration
}

// Run finds files with colliding names under the given directories and
// plans one rename per loser. In run mode the renames are executed;
// list mode plans but mutates nothing (planning only probes the
// filesystem for existing names).
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.rename")
	start := time.Now()
	defer logging.LogDuration(start, "rename")

	logger.Info().
		Str("mode", string(opts.Mode)).
		Strs("directories", opts.Directories).
		Msg("Starting name collision detection")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	if err := scanner.ValidateRoots(fs, opts.Directories); err != nil {
		return nil, err
	}

	paths := scanner.Discover(fs, opts.Directories)
	if opts.Observer != nil {
		opts.Observer.FilesDiscovered(len(paths))
	}

	groups := renamer.GroupByName(paths)
	operations := renamer.PlanRenames(fs, groups)

	result := &Result{
		Mode:       opts.Mode,
		FilesFound: len(paths),
		Groups:     groups,
		Operations: operations,
	}

	if opts.Mode == types.ModeRun && len(operations) > 0 {
		exec := executor.New(executor.Options{
			FS:       fs,
			Logger:   logger,
			Observer: opts.Observer,
		})
		result.Outcome.Merge(exec.ExecuteRenames(operations))
	}

	result.Duration = time.Since(start)

	logger.Info().
		Int("files", result.FilesFound).
		Int("collisions", len(result.Groups)).
		Int("planned", len(result.Operations)).
		Int("renamed", result.Outcome.Succeeded).
		Int("failed", result.Outcome.Failed).
		Dur("duration", result.Duration).
		Msg("Name collision detection completed")
	return result, nil
}
