// Package testutil provides fixtures for testing cardinal components.
//
// Key components:
//   - TestEnvironment: isolated HOME, XDG and CARDINAL_* variables plus a
//     filesystem, either in memory or under a temp directory
//   - FileTree: declarative file trees written with WriteTree
//   - FaultyFS: a types.FS wrapper that fails selected operations
//
// Symlinks only exist on the real filesystem, so tests that need them use
// EnvIsolated.
package testutil
