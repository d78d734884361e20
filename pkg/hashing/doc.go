// Package hashing computes content digests for files and directory trees.
//
// A file digest is the SHA-1 of its raw bytes. A directory digest is the
// SHA-1 of the concatenated lowercase hex digests of its direct children,
// taken in name order. Only regular files and directories can be hashed;
// symlinks, devices, sockets and pipes are rejected with
// UNSUPPORTED_ENTRY_TYPE and no partial digest is returned.
//
// All functions go through types.FS so the same code hashes the real
// filesystem and the in-memory one used by tests.
package hashing
