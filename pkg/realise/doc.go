// Package realise puts manifest entries in place.
//
// Each item's source is added to the store (or found there if already
// present) and the target path is made to point at the stored copy,
// either as a symlink or as a full copy. Items are handled in order and a
// failing item does not stop the others; the overall error reports how
// many failed.
package realise
