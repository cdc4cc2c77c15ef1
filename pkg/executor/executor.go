// Package executor applies planned moves and renames. Every mutation
// is attempted independently: a failure is counted and logged, and the
// batch continues. In dry-run mode the executor performs no filesystem
// mutations at all.
package executor

import (
	"io"
	"path/filepath"

	"github.com/arthur-debert/undupe/pkg/errors"
	"github.com/arthur-debert/undupe/pkg/filesystem"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/naming"
	"github.com/arthur-debert/undupe/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	DryRun   bool
	Logger   zerolog.Logger
	Observer types.Observer
	// Filesystem operations interface for testing
	FS types.FS
}

// Executor performs the filesystem mutations planned by the resolvers.
type Executor struct {
	dryRun   bool
	logger   zerolog.Logger
	observer types.Observer
	fs       types.FS
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Executor{
		dryRun:   opts.DryRun,
		logger:   logger,
		observer: opts.Observer,
		fs:       fs,
	}
}

// MoveDuplicates relocates every losing member of each group into the
// quarantine directory, keeping its base name where possible and
// falling back to suffixed variants on collision. The quarantine
// directory is created up front, idempotently.
func (e *Executor) MoveDuplicates(groups []*types.DuplicateGroup, quarantineDir string) (types.Outcome, error) {
	var outcome types.Outcome

	if e.dryRun {
		e.logger.Info().Int("groups", len(groups)).Msg("Dry run - no files will be moved")
		return outcome, nil
	}

	if err := e.fs.MkdirAll(quarantineDir, 0755); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create quarantine directory %s", quarantineDir)
	}

	gen := naming.NewGenerator(e.fs)
	for _, group := range groups {
		for _, dup := range group.Duplicates() {
			dest := filepath.Join(quarantineDir, filepath.Base(dup))
			if !gen.Reserve(dest) {
				dest = gen.Unique(dest, 1)
			}

			if err := e.moveFile(dup, dest); err != nil {
				e.logger.Error().Err(err).Str("source", dup).Str("dest", dest).Msg("Failed to move duplicate")
				outcome.Failed++
				e.notify("move "+dup, err)
				continue
			}

			outcome.Succeeded++
			outcome.BytesAffected += group.Size
			e.notify("move "+dup, nil)
		}
	}

	e.logger.Info().
		Int("moved", outcome.Succeeded).
		Int("failed", outcome.Failed).
		Int64("bytes", outcome.BytesAffected).
		Msg("Quarantine moves completed")
	return outcome, nil
}

// ExecuteRenames applies planned rename operations one by one.
func (e *Executor) ExecuteRenames(operations []types.RenameOperation) types.Outcome {
	var outcome types.Outcome

	if e.dryRun {
		e.logger.Info().Int("operations", len(operations)).Msg("Dry run - no files will be renamed")
		return outcome
	}

	for _, op := range operations {
		if err := e.fs.Rename(op.Source, op.Target); err != nil {
			e.logger.Error().Err(err).Str("source", op.Source).Str("target", op.Target).Msg("Failed to rename")
			outcome.Failed++
			e.notify("rename "+op.Source, err)
			continue
		}
		outcome.Succeeded++
		e.notify("rename "+op.Source, nil)
	}

	e.logger.Info().
		Int("renamed", outcome.Succeeded).
		Int("failed", outcome.Failed).
		Msg("Renames completed")
	return outcome
}

// moveFile renames source to dest, falling back to copy+remove when
// the rename fails (the common case being a cross-device move).
func (e *Executor) moveFile(source, dest string) error {
	renameErr := e.fs.Rename(source, dest)
	if renameErr == nil {
		return nil
	}

	if err := e.copyFile(source, dest); err != nil {
		return errors.Wrapf(renameErr, errors.ErrMoveFailed,
			"failed to move %s to %s", source, dest)
	}
	if err := e.fs.Remove(source); err != nil {
		return errors.Wrapf(err, errors.ErrMoveFailed,
			"copied %s to %s but failed to remove source", source, dest)
	}
	return nil
}

func (e *Executor) copyFile(source, dest string) error {
	in, err := e.fs.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := e.fs.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = e.fs.Remove(dest)
		return err
	}
	return out.Close()
}

func (e *Executor) notify(description string, err error) {
	if e.observer != nil {
		e.observer.ActionCompleted(description, err)
	}
}
