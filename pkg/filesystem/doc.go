// Package filesystem provides implementations of types.FS: a direct
// OS-backed one for production and an afero-backed one for tests that
// need an in-memory filesystem.
package filesystem
