// Package store implements cardinal's content-addressed store.
//
// A store is a single flat directory. Every entry is an immutable copy of
// a file or directory tree named "<digest>-<basename>", where digest is the
// hex SHA-1 of the source at the time it was added (see package hashing)
// and basename is the last component of the source path. The directory
// listing is the index; nothing else is recorded.
//
// Adds are staged under a hidden ".<uuid>.partial" name inside the store
// and renamed into place, so a failed add never leaves a half-written
// entry behind under its final name.
//
// The store does no locking. Two processes adding the same content at the
// same time may both hash and copy, and one of them loses the final rename.
package store
