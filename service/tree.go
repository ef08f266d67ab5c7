package service

import (
	"fmt"
	"sort"
)

// Tree is the full layer stack of a Merkle tree: layer 0 holds the sorted
// leaves, the last layer holds the root.
type Tree struct {
	layers    [][]Digest
	pairOrder string
	oddNode   string
}

func sortLeaves(leaves []Digest) []Digest {
	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].Less(leaves[j])
	})
	out := leaves[:0]
	for i, l := range leaves {
		if i > 0 && l == leaves[i-1] {
			continue
		}
		out = append(out, l)
	}
	return out
}

// BuildTree combines sorted leaves pairwise until a single root remains.
// The leaves are sorted and deduplicated again, so any order is accepted.
func BuildTree(h *Hasher, leaves []Digest, pairOrder, oddNode string) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}
	switch pairOrder {
	case PairPositional, PairSorted:
	default:
		return nil, fmt.Errorf("%w: unknown pair order: %s", ErrInvalidParams, pairOrder)
	}
	switch oddNode {
	case OddPromote, OddDuplicate:
	default:
		return nil, fmt.Errorf("%w: unknown odd node policy: %s", ErrInvalidParams, oddNode)
	}

	sorted := sortLeaves(append([]Digest(nil), leaves...))
	t := &Tree{
		layers:    [][]Digest{sorted},
		pairOrder: pairOrder,
		oddNode:   oddNode,
	}
	for layer := sorted; len(layer) > 1; {
		layer = t.nextLayer(h, layer)
		t.layers = append(t.layers, layer)
	}
	return t, nil
}

func (t *Tree) nextLayer(h *Hasher, layer []Digest) []Digest {
	next := make([]Digest, 0, (len(layer)+1)/2)
	for i := 0; i < len(layer); i += 2 {
		if i+1 == len(layer) {
			if t.oddNode == OddDuplicate {
				next = append(next, h.HashNode(layer[i], layer[i]))
			} else {
				next = append(next, layer[i])
			}
			continue
		}
		next = append(next, combine(h, t.pairOrder, layer[i], layer[i+1]))
	}
	return next
}

func combine(h *Hasher, pairOrder string, left, right Digest) Digest {
	if pairOrder == PairSorted && right.Less(left) {
		return h.HashNode(right, left)
	}
	return h.HashNode(left, right)
}

func (t *Tree) Root() Digest {
	return t.layers[len(t.layers)-1][0]
}

func (t *Tree) Leaves() []Digest {
	return t.layers[0]
}

// Layers returns the layer stack from leaves to root.
func (t *Tree) Layers() [][]Digest {
	return t.layers
}

// Depth is the number of combination steps between leaves and root.
func (t *Tree) Depth() int {
	return len(t.layers) - 1
}

// Body returns the interior layers, root-proximal first. Trees with fewer
// than three layers have an empty body.
func (t *Tree) Body() Body {
	if len(t.layers) < 3 {
		return Body{}
	}
	interior := t.layers[1 : len(t.layers)-1]
	body := make(Body, 0, len(interior))
	for i := len(interior) - 1; i >= 0; i-- {
		body = append(body, interior[i])
	}
	return body
}
