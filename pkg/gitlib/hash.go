// Package gitlib wraps libgit2 with the repository primitives the
// attribution engine consumes: tracked-file listing, blame, tree-to-tree
// diffs, commit history walks, reference resolution, and checkout.
package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

const (
	// HashSize is the size of a SHA-1 hash in bytes.
	HashSize = 20
	// HashHexSize is the size of a hex-encoded SHA-1 hash.
	HashHexSize = 40
)

// Hash represents a git object hash (SHA-1).
type Hash [HashSize]byte

// ZeroHash returns the zero value hash.
func ZeroHash() Hash {
	return Hash{}
}

// NewHash creates a Hash from a hex string. Malformed input yields the
// zero hash.
func NewHash(hexStr string) Hash {
	var h Hash

	if len(hexStr) != HashHexSize {
		return h
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return Hash{}
	}

	copy(h[:], decoded)

	return h
}

// HashFromOid converts a libgit2 Oid to Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	copy(h[:], oid[:])

	return h
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ToOid converts Hash back to libgit2 Oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}
