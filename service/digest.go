package service

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

const HashSize = 32

// Digest is a 256-bit hash value. It marshals to lowercase hex.
type Digest [HashSize]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Less reports whether d sorts before o by raw byte value.
func (d Digest) Less(o Digest) bool {
	return bytes.Compare(d[:], o[:]) < 0
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a hex string of exactly HashSize bytes.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(HashSize) {
		return d, fmt.Errorf("expecting %d hex chars but got %d", hex.EncodedLen(HashSize), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, err
	}
	return d, nil
}
