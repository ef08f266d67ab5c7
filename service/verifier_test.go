package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourLeafProof builds a tree over four leaves and returns the proof for
// leaf 0 with position-derived order bits.
func fourLeafProof(t *testing.T, order string) (*Tree, []Digest, []bool) {
	h := newTestHasher(t, nil)
	tree, err := BuildTree(h, testLeaves(h, 4), order, OddPromote)
	require.NoError(t, err)

	l := tree.Leaves()
	layer1 := tree.Layers()[1]
	proof := []Digest{l[1], layer1[1]}
	bits := []bool{true, true}
	if order == PairSorted {
		bits[1] = layer1[0].Less(layer1[1])
	}
	return tree, proof, bits
}

func TestOrderBitVerifier(t *testing.T) {
	tree, proof, bits := fourLeafProof(t, PairPositional)
	v, err := NewVerifier(ModeOrderBits, DefaultParams())
	require.NoError(t, err)

	assert.True(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, bits))
	assert.False(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, []bool{false, true}))
	assert.False(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, bits[:1]))
	assert.False(t, v.Verify(tree.Root(), tree.Leaves()[2], proof, bits))
}

func TestByteOrderVerifier(t *testing.T) {
	tree, proof, bits := fourLeafProof(t, PairSorted)
	v, err := NewVerifier(ModeByteOrder, DefaultParams())
	require.NoError(t, err)

	assert.True(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, bits))
	// bits are ignored
	assert.True(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, nil))
	assert.True(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, []bool{false, false}))

	tampered := append([]Digest(nil), proof...)
	tampered[1][0] ^= 0xff
	assert.False(t, v.Verify(tree.Root(), tree.Leaves()[0], tampered, bits))
}

func TestSortedTreeVerifiesUnderBothModes(t *testing.T) {
	tree, proof, bits := fourLeafProof(t, PairSorted)
	for _, mode := range []string{ModeOrderBits, ModeByteOrder} {
		v, err := NewVerifier(mode, DefaultParams())
		require.NoError(t, err)
		assert.True(t, v.Verify(tree.Root(), tree.Leaves()[0], proof, bits), mode)
	}
}

func TestVerifierDoesNotMutate(t *testing.T) {
	tree, proof, bits := fourLeafProof(t, PairPositional)
	proofCopy := append([]Digest(nil), proof...)
	bitsCopy := append([]bool(nil), bits...)

	for _, mode := range []string{ModeOrderBits, ModeByteOrder} {
		v, err := NewVerifier(mode, DefaultParams())
		require.NoError(t, err)
		v.Verify(tree.Root(), tree.Leaves()[0], proof, bits)
	}
	assert.Equal(t, proofCopy, proof)
	assert.Equal(t, bitsCopy, bits)
}

func TestUnknownVerificationMode(t *testing.T) {
	_, err := NewVerifier("trust-me", DefaultParams())
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestDefaultMode(t *testing.T) {
	assert.Equal(t, ModeOrderBits, defaultMode(PairPositional))
	assert.Equal(t, ModeByteOrder, defaultMode(PairSorted))
}
