package service

import "fmt"

// Verification modes.
const (
	ModeOrderBits = "order-bits"
	ModeByteOrder = "byte-order"
)

// Verifier recomputes a root from a leaf and its proof and compares it to
// the committed root. Implementations never modify their arguments.
type Verifier interface {
	Verify(root, leaf Digest, proof []Digest, order []bool) bool
}

func getVerifier(mode string, h *Hasher) (Verifier, error) {
	switch mode {
	case ModeOrderBits:
		return &orderBitVerifier{hasher: h}, nil
	case ModeByteOrder:
		return &byteOrderVerifier{hasher: h}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// NewVerifier returns the verifier for mode using the hash named in p.
func NewVerifier(mode string, p Params) (Verifier, error) {
	h, err := NewHasher(p)
	if err != nil {
		return nil, err
	}
	return getVerifier(mode, h)
}

// defaultMode is the verification mode matching the pair order a tree was
// built with.
func defaultMode(pairOrder string) string {
	if pairOrder == PairSorted {
		return ModeByteOrder
	}
	return ModeOrderBits
}

// orderBitVerifier trusts the supplied order bits: true puts the current
// value first, false puts the sibling first.
type orderBitVerifier struct {
	hasher *Hasher
}

func (v *orderBitVerifier) Verify(root, leaf Digest, proof []Digest, order []bool) bool {
	if len(proof) != len(order) {
		return false
	}
	current := leaf
	for i, sibling := range proof {
		if order[i] {
			current = v.hasher.HashNode(current, sibling)
		} else {
			current = v.hasher.HashNode(sibling, current)
		}
	}
	return current == root
}

// byteOrderVerifier ignores order bits and always puts the smaller digest
// first.
type byteOrderVerifier struct {
	hasher *Hasher
}

func (v *byteOrderVerifier) Verify(root, leaf Digest, proof []Digest, _ []bool) bool {
	current := leaf
	for _, sibling := range proof {
		if current.Less(sibling) {
			current = v.hasher.HashNode(current, sibling)
		} else {
			current = v.hasher.HashNode(sibling, current)
		}
	}
	return current == root
}
