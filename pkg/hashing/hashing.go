// Package hashing computes the two file fingerprints the duplicate
// pipeline is built on: a partial fingerprint sampling the head and
// tail of a file, and a full fingerprint streaming the entire content.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/arthur-debert/undupe/pkg/errors"
	"github.com/arthur-debert/undupe/pkg/types"
)

// ChunkSize is the unit of file I/O for both fingerprints. Files at or
// below twice this size are read whole, so their partial fingerprint
// is the full-content digest.
const ChunkSize = 1024 * 1024

// PartialHash hashes the first chunk of the file and, for files larger
// than two chunks, the last chunk. It is a cheap pre-filter only:
// files that differ in their middle region still collide here.
func PartialHash(fsys types.FS, path string, size int64) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()

	if _, err := io.CopyN(hasher, f, ChunkSize); err != nil && err != io.EOF {
		return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to read head of %s", path)
	}

	if size > ChunkSize*2 {
		if _, err := f.Seek(-ChunkSize, io.SeekEnd); err != nil {
			return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to seek tail of %s", path)
		}
		if _, err := io.CopyN(hasher, f, ChunkSize); err != nil && err != io.EOF {
			return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to read tail of %s", path)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FullHash streams the entire file through SHA-256 in fixed-size
// chunks.
func FullHash(fsys types.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", errors.Wrapf(err, errors.ErrHashFailed, "failed to read %s", path)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ScanFile stats and fingerprints a single file. Zero-byte files are
// excluded from duplicate detection and yield (nil, nil). Small files
// are read once: the full digest doubles as the partial one. Errors
// mean "drop this file", never "abort the run".
func ScanFile(fsys types.FS, path string) (*types.FileRecord, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	rec, err := types.NewFileRecord(path, info.Size())
	if err != nil {
		return nil, err
	}

	if rec.Size > ChunkSize*2 {
		partial, err := PartialHash(fsys, path, rec.Size)
		if err != nil {
			return nil, err
		}
		rec.PartialHash = partial
	} else {
		full, err := FullHash(fsys, path)
		if err != nil {
			return nil, err
		}
		rec.FullHash = full
		rec.PartialHash = full
	}

	return rec, nil
}
