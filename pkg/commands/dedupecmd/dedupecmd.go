// Package dedupecmd orchestrates the content-deduplication pipeline:
// discovery, parallel fingerprinting, three-stage grouping and, in run
// mode, quarantine moves.
package dedupecmd

import (
	"time"

	"github.com/arthur-debert/undupe/pkg/dedupe"
	"github.com/arthur-debert/undupe/pkg/executor"
	"github.com/arthur-debert/undupe/pkg/filesystem"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/scanner"
	"github.com/arthur-debert/undupe/pkg/types"
)

// Options holds options for the dedupe command
type Options struct {
	Mode          types.RunMode
	Directories   []string
	QuarantineDir string
	Workers       int
	FileSystem    types.FS       // Allow injecting a filesystem for testing
	Observer      types.Observer // Optional progress sink
}

// Result is the outcome of a dedupe run.
type Result struct {
	Mode       types.RunMode
	FilesFound int
	Groups     []*types.DuplicateGroup
	Outcome    types.Outcome
	Duration   time.Duration
}

// TotalDuplicates returns the number of losing files across all groups.
func (r *Result) TotalDuplicates() int {
	total := 0
	for _, g := range r.Groups {
		total += len(g.Duplicates())
	}
	return total
}

// WastedBytes returns the bytes recoverable across all groups.
func (r *Result) WastedBytes() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.WastedBytes()
	}
	return total
}

// Run finds duplicate files under the given directories and, in run
// mode, moves the losers into the quarantine directory. List mode
// performs the full detection pipeline but mutates nothing.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.dedupe")
	start := time.Now()
	defer logging.LogDuration(start, "dedupe")

	logger.Info().
		Str("mode", string(opts.Mode)).
		Strs("directories", opts.Directories).
		Str("quarantine", opts.QuarantineDir).
		Msg("Starting duplicate detection")

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

	records := dedupe.ScanPaths(fs, paths, dedupe.ScanOptions{
		Workers:  opts.Workers,
		Observer: opts.Observer,
	})
	groups := dedupe.FindDuplicates(fs, records)

	result := &Result{
		Mode:       opts.Mode,
		FilesFound: len(paths),
		Groups:     groups,
	}

	if opts.Mode == types.ModeRun && len(groups) > 0 {
		exec := executor.New(executor.Options{
			FS:       fs,
			Logger:   logger,
			Observer: opts.Observer,
		})
		outcome, err := exec.MoveDuplicates(groups, opts.QuarantineDir)
		if err != nil {
			return nil, err
		}
		result.Outcome.Merge(outcome)
	}

	result.Duration = time.Since(start)

	logger.Info().
		Int("files", result.FilesFound).
		Int("groups", len(result.Groups)).
		Int("moved", result.Outcome.Succeeded).
		Int("failed", result.Outcome.Failed).
		Dur("duration", result.Duration).
		Msg("Duplicate detection completed")
	return result, nil
}
