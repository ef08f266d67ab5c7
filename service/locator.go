package service

import (
	"fmt"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Locator rebuilds an inclusion proof for a candidate coordinate from a
// stored body. The committed leaves are gone, so it regenerates the
// candidate's own grid and searches for a pair of those leaves whose parent
// appears in the leaf-proximal layer.
type Locator struct {
	params  Params
	hasher  *Hasher
	workers int
}

// NewLocator returns a locator using the commit-time params p. With more
// than one worker the outer loop of the pair scan runs in parallel; the
// selected match is the same as with a single worker.
func NewLocator(p Params, workers int) (*Locator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h, err := NewHasher(p)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	return &Locator{params: p, hasher: h, workers: workers}, nil
}

type leafPair struct {
	left, right           Digest
	leftIndex, rightIndex int
}

// Locate decodes body and builds a submission for candidate.
func (l *Locator) Locate(body string, candidate Coordinate) (*Submission, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	b, err := DecodeBody(body)
	if err != nil {
		return nil, err
	}
	return l.LocateBody(b, candidate)
}

func (l *Locator) LocateBody(b Body, candidate Coordinate) (*Submission, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	deepest := b.LeafProximal()
	if len(deepest) == 0 {
		return nil, fmt.Errorf("%w: no interior layers", ErrInvalidMerkleBody)
	}

	positions := make(map[Digest]int, len(deepest))
	for k := len(deepest) - 1; k >= 0; k-- {
		positions[deepest[k]] = k
	}

	candidates := l.hasher.HashLeaves(l.params.Grid(candidate))
	m, ok := l.search(candidates, positions)
	if !ok {
		return nil, fmt.Errorf("%w: candidate %s,%s over %d grid leaves",
			ErrNoMatchFound, FormatDegrees(candidate.Lat), FormatDegrees(candidate.Lon), len(candidates))
	}
	return l.climb(b, m)
}

func (l *Locator) search(candidates []Digest, positions map[Digest]int) (leafPair, bool) {
	if l.workers == 1 {
		for i := range candidates {
			if m, ok := l.scanRow(candidates, i, positions); ok {
				return m, true
			}
		}
		return leafPair{}, false
	}

	n := len(candidates)
	best := atomic.NewInt64(int64(n))
	rows := make([]leafPair, n)

	var g errgroup.Group
	for w := 0; w < l.workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < n; i += l.workers {
				if int64(i) > best.Load() {
					return nil
				}
				m, ok := l.scanRow(candidates, i, positions)
				if !ok {
					continue
				}
				rows[i] = m
				for {
					cur := best.Load()
					if int64(i) >= cur || best.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return nil
			}
			return nil
		})
	}
	_ = g.Wait()

	i := best.Load()
	if i == int64(n) {
		return leafPair{}, false
	}
	return rows[i], true
}

// scanRow tries every sibling j for the fixed left candidate i and returns
// the first pair whose parent is in the leaf-proximal layer.
func (l *Locator) scanRow(candidates []Digest, i int, positions map[Digest]int) (leafPair, bool) {
	left := candidates[i]
	for _, right := range candidates {
		if right == left {
			continue
		}
		k, ok := positions[l.hasher.HashNode(left, right)]
		if !ok {
			continue
		}
		return leafPair{left: left, right: right, leftIndex: k, rightIndex: k + 1}, true
	}
	return leafPair{}, false
}

// climb walks from the matched pair to the root-proximal layer, collecting
// siblings and order bits.
func (l *Locator) climb(b Body, m leafPair) (*Submission, error) {
	proof := []Digest{m.right}
	order := []bool{l.currentFirst(m.left, m.right, true)}

	index := m.leftIndex
	for i := len(b) - 1; i >= 0; i-- {
		layer := b[i]
		if index >= len(layer) {
			return nil, fmt.Errorf("%w: index %d outside layer %d of %d nodes", ErrInvalidMerkleBody, index, i, len(layer))
		}
		isRight := index%2 == 1
		sibling := index + 1
		if isRight {
			sibling = index - 1
		}

		switch {
		case sibling < len(layer):
			proof = append(proof, layer[sibling])
			order = append(order, l.currentFirst(layer[index], layer[sibling], !isRight))
		case l.params.OddNode == OddDuplicate:
			proof = append(proof, layer[index])
			order = append(order, true)
		}

		// parent index
		index /= 2
	}

	if len(proof) != len(order) {
		return nil, fmt.Errorf("%w: %d siblings but %d order bits", ErrMalformedProof, len(proof), len(order))
	}

	return &Submission{
		Proof:  proof,
		Answer: m.left,
		Order:  order,
	}, nil
}

// currentFirst reports whether current was the left operand when it was
// combined with sibling.
func (l *Locator) currentFirst(current, sibling Digest, isLeft bool) bool {
	if l.params.PairOrder == PairSorted {
		return current.Less(sibling)
	}
	return isLeft
}
