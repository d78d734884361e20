// Package filesystem provides filesystem implementations for cardinal.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem and an afero-backed one used by tests,
// plus the copy helpers shared by the store and realise.
package filesystem
