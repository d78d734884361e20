// Package types holds the small set of types shared across cardinal's
// packages: the filesystem abstraction and the manifest's file item.
package types
