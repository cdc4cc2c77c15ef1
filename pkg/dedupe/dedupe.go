// Package dedupe implements content-based duplicate detection: a
// three-stage pipeline that partitions candidates by size, then by
// partial fingerprint, then by full fingerprint. Only the last stage
// proves equality; the earlier ones exist to avoid reading whole
// files that cannot possibly match.
package dedupe

import (
	"github.com/arthur-debert/undupe/pkg/hashing"
	"github.com/arthur-debert/undupe/pkg/logging"
	"github.com/arthur-debert/undupe/pkg/types"
	"github.com/arthur-debert/undupe/pkg/workers"
	"github.com/rs/zerolog"
)

// ScanOptions configures the parallel fingerprint scan.
type ScanOptions struct {
	// Workers bounds the hashing pool. Zero means one worker per CPU.
	Workers int

	// Observer receives a FileHashed checkpoint per file. May be nil.
	Observer types.Observer
}

// ScanPaths fingerprints the candidates in parallel and returns their
// records in discovery order. Zero-byte files and files that fail to
// read are dropped here and never reach grouping.
func ScanPaths(fsys types.FS, paths []string, opts ScanOptions) []*types.FileRecord {
	logger := logging.GetLogger("dedupe.scan")

	scanned := workers.Map(opts.Workers, paths, func(path string) *types.FileRecord {
		rec, err := hashing.ScanFile(fsys, path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Dropping unreadable file")
			return nil
		}
		return rec
	}, func(index int) {
		if opts.Observer != nil {
			opts.Observer.FileHashed(paths[index])
		}
	})

	records := make([]*types.FileRecord, 0, len(scanned))
	for _, rec := range scanned {
		if rec != nil {
			records = append(records, rec)
		}
	}

	logger.Debug().
		Int("candidates", len(paths)).
		Int("records", len(records)).
		Msg("Fingerprint scan completed")
	return records
}

// FindDuplicates runs the three-stage grouping over records that are
// already in discovery order and returns one DuplicateGroup per set of
// byte-identical files. Group member order preserves discovery order,
// so the first member is the stable keeper across repeated runs.
func FindDuplicates(fsys types.FS, records []*types.FileRecord) []*types.DuplicateGroup {
	logger := logging.GetLogger("dedupe")

	// Stage 1: partition by exact size. A file with a unique size
	// cannot have a duplicate.
	bySize := partition(records, func(r *types.FileRecord) int64 { return r.Size })

	sizeGroups := 0
	var groups []*types.DuplicateGroup
	for _, sized := range bySize {
		if len(sized) < 2 {
			continue
		}
		sizeGroups++

		// Stage 2: partition by partial fingerprint. This is a cost
		// filter only: matching head and tail chunks prove nothing
		// about the middle of the file.
		byPartial := partition(sized, func(r *types.FileRecord) string { return r.PartialHash })

		for _, candidates := range byPartial {
			if len(candidates) < 2 {
				continue
			}
			groups = append(groups, confirmGroups(fsys, candidates, logger)...)
		}
	}

	logger.Debug().
		Int("sizeGroups", sizeGroups).
		Int("duplicateGroups", len(groups)).
		Msg("Duplicate detection completed")
	return groups
}

// confirmGroups computes the authoritative full fingerprint for every
// candidate that still lacks one and emits the final partitions.
// Files that become unreadable between scan and confirmation are
// silently excluded.
func confirmGroups(fsys types.FS, candidates []*types.FileRecord, logger zerolog.Logger) []*types.DuplicateGroup {
	confirmed := make([]*types.FileRecord, 0, len(candidates))
	for _, rec := range candidates {
		if rec.FullHash == "" {
			full, err := hashing.FullHash(fsys, rec.Path)
			if err != nil {
				logger.Debug().Err(err).Str("path", rec.Path).Msg("Dropping file that failed full fingerprint")
				continue
			}
			rec.FullHash = full
		}
		confirmed = append(confirmed, rec)
	}

	var groups []*types.DuplicateGroup
	for _, members := range partition(confirmed, func(r *types.FileRecord) string { return r.FullHash }) {
		if len(members) < 2 {
			continue
		}
		files := make([]string, len(members))
		for i, m := range members {
			files[i] = m.Path
		}
		group, err := types.NewDuplicateGroup(members[0].FullHash, members[0].Size, files)
		if err != nil {
			logger.Error().Err(err).Msg("Skipping malformed duplicate group")
			continue
		}
		groups = append(groups, group)
	}
	return groups
}

// partition splits records into buckets by key, preserving both
// first-seen bucket order and member order.
func partition[K comparable](records []*types.FileRecord, key func(*types.FileRecord) K) [][]*types.FileRecord {
	index := make(map[K]int)
	var buckets [][]*types.FileRecord
	for _, rec := range records {
		k := key(rec)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], rec)
	}
	return buckets
}
