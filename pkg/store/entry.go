package store

import (
	"strings"

	"github.com/arthur-debert/cardinal/pkg/errors"
	"github.com/arthur-debert/cardinal/pkg/hashing"
)

// Entry is one item in the store.
type Entry struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Digest   hashing.Digest `json:"digest"`
	Basename string         `json:"basename"`
}

// EntryName returns the store name for content with digest d that came
// from a source called basename.
func EntryName(d hashing.Digest, basename string) string {
	return d.String() + "-" + basename
}

// ParseEntryName splits a store name into digest and basename.
func ParseEntryName(name string) (Entry, error) {
	if len(name) < hashing.HexSize+2 || name[hashing.HexSize] != '-' {
		return Entry{}, errors.Newf(errors.ErrInvalidInput, "%q is not a store entry name", name)
	}

	d, err := hashing.ParseDigest(name[:hashing.HexSize])
	if err != nil {
		return Entry{}, errors.Wrapf(err, errors.ErrInvalidInput, "%q is not a store entry name", name)
	}

	basename := name[hashing.HexSize+1:]
	if strings.ContainsAny(basename, "/\\") || basename == "." || basename == ".." {
		return Entry{}, errors.Newf(errors.ErrInvalidInput, "%q has an invalid basename", name)
	}

	return Entry{Name: name, Digest: d, Basename: basename}, nil
}
