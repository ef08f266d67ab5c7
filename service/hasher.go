package service

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Hash primitives. The root is only useful to a verifier running the same one.
const (
	HashKeccak256 = "keccak256"
	HashSHA3      = "sha3-256"
	HashSHA256    = "sha256"
	HashBlake3    = "blake3"
)

func getHashFunc(name string) (func() hash.Hash, error) {
	switch name {
	case HashKeccak256:
		return sha3.NewLegacyKeccak256, nil
	case HashSHA3:
		return sha3.New256, nil
	case HashSHA256:
		return sha256.New, nil
	case HashBlake3:
		return func() hash.Hash { return blake3.New() }, nil
	default:
		return nil, fmt.Errorf("%w: unknown hash: %s", ErrInvalidParams, name)
	}
}

// Hasher computes leaf and interior node digests.
type Hasher struct {
	newHash  func() hash.Hash
	encoding string
}

func NewHasher(p Params) (*Hasher, error) {
	newHash, err := getHashFunc(p.Hash)
	if err != nil {
		return nil, err
	}
	switch p.LeafEncoding {
	case EncodingConcat, EncodingDelimited:
	default:
		return nil, fmt.Errorf("%w: unknown leaf encoding: %s", ErrInvalidParams, p.LeafEncoding)
	}
	return &Hasher{newHash: newHash, encoding: p.LeafEncoding}, nil
}

func (h *Hasher) sum(parts ...[]byte) Digest {
	hh := h.newHash()
	for _, p := range parts {
		hh.Write(p)
	}
	var d Digest
	copy(d[:], hh.Sum(nil))
	return d
}

// LeafBytes is the preimage of a leaf: lat and lon with no separator for the
// concat encoding, or joined by a comma for the delimited one.
func (h *Hasher) LeafBytes(p GridPoint) []byte {
	if h.encoding == EncodingDelimited {
		return []byte(p.Lat + "," + p.Lon)
	}
	return []byte(p.Lat + p.Lon)
}

func (h *Hasher) HashLeaf(p GridPoint) Digest {
	return h.sum(h.LeafBytes(p))
}

// HashNode hashes left || right in the given order.
func (h *Hasher) HashNode(left, right Digest) Digest {
	return h.sum(left[:], right[:])
}

// HashLeaves hashes every point and returns the digests sorted ascending by
// byte value with duplicates removed.
func (h *Hasher) HashLeaves(points []GridPoint) []Digest {
	leaves := make([]Digest, len(points))
	for i, p := range points {
		leaves[i] = h.HashLeaf(p)
	}
	return sortLeaves(leaves)
}
