package service

import (
	"fmt"
	"math"
)

const (
	DefaultDistance    = 0.020
	DefaultEarthRadius = 6371.0
	DefaultStep        = 0.0001

	// MaxGridPoints bounds the candidate grid so the pairwise scan stays small.
	MaxGridPoints = 1 << 12
)

// Leaf encodings.
const (
	EncodingConcat    = "concat"
	EncodingDelimited = "delimited"
)

// Pair orders used when combining two nodes into their parent.
const (
	PairPositional = "positional"
	PairSorted     = "sorted"
)

// Policies for the trailing node of an odd-length layer.
const (
	OddPromote   = "promote"
	OddDuplicate = "duplicate"
)

// Params are the commit-time constants. Commitment and redemption must use
// identical values or every redemption fails with ErrNoMatchFound.
type Params struct {
	Distance     float64 `json:"distance"`
	EarthRadius  float64 `json:"earth_radius"`
	Step         float64 `json:"step"`
	Hash         string  `json:"hash"`
	LeafEncoding string  `json:"leaf_encoding"`
	PairOrder    string  `json:"pair_order"`
	OddNode      string  `json:"odd_node"`
}

func DefaultParams() Params {
	return Params{
		Distance:     DefaultDistance,
		EarthRadius:  DefaultEarthRadius,
		Step:         DefaultStep,
		Hash:         HashKeccak256,
		LeafEncoding: EncodingConcat,
		PairOrder:    PairPositional,
		OddNode:      OddPromote,
	}
}

// DegreeOffset converts the tolerance distance into an angular offset in
// degrees, applied to both axes.
func (p Params) DegreeOffset() float64 {
	quotient := p.Distance / p.EarthRadius
	return quotient * 180 / math.Pi
}

// AxisPoints is the number of grid values along one axis. It is computed in
// float64 so absurd params yield +Inf instead of wrapping.
func (p Params) AxisPoints() float64 {
	return math.Floor(2*p.DegreeOffset()/p.Step) + 1
}

func (p Params) Validate() error {
	if !(p.Step > 0) || math.IsInf(p.Step, 0) {
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidParams, p.Step)
	}
	if !(p.EarthRadius > 0) || math.IsInf(p.EarthRadius, 0) {
		return fmt.Errorf("%w: earth radius must be positive, got %v", ErrInvalidParams, p.EarthRadius)
	}
	if !(p.Distance >= 0) || math.IsInf(p.Distance, 0) {
		return fmt.Errorf("%w: distance must be non-negative, got %v", ErrInvalidParams, p.Distance)
	}
	if n := p.AxisPoints(); math.IsNaN(n) || math.IsInf(n, 0) || n > math.Sqrt(MaxGridPoints) {
		return fmt.Errorf("%w: grid of %v points per axis exceeds %d points", ErrInvalidParams, n, MaxGridPoints)
	}
	if _, err := getHashFunc(p.Hash); err != nil {
		return err
	}
	switch p.LeafEncoding {
	case EncodingConcat, EncodingDelimited:
	default:
		return fmt.Errorf("%w: unknown leaf encoding: %s", ErrInvalidParams, p.LeafEncoding)
	}
	switch p.PairOrder {
	case PairPositional, PairSorted:
	default:
		return fmt.Errorf("%w: unknown pair order: %s", ErrInvalidParams, p.PairOrder)
	}
	switch p.OddNode {
	case OddPromote, OddDuplicate:
	default:
		return fmt.Errorf("%w: unknown odd node policy: %s", ErrInvalidParams, p.OddNode)
	}
	return nil
}
