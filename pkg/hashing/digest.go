package hashing

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/arthur-debert/cardinal/pkg/errors"
)

// Size is the length of a Digest in bytes.
const Size = sha1.Size

// HexSize is the length of a Digest rendered as hex.
const HexSize = Size * 2

// Digest is a SHA-1 content digest.
type Digest [Size]byte

// String returns the digest as 40 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero value.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDigest parses 40 lowercase hex characters into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != HexSize {
		return d, errors.Newf(errors.ErrInvalidInput, "digest must be %d hex characters, got %d", HexSize, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return d, errors.Newf(errors.ErrInvalidInput, "invalid digest character %q", c)
		}
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, errors.Wrap(err, errors.ErrInvalidInput, "invalid digest")
	}
	return d, nil
}

// Sum returns the digest of data held in memory.
func Sum(data []byte) Digest {
	return Digest(sha1.Sum(data))
}
