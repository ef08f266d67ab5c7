package service

import (
	"fmt"
	"strings"
)

const (
	layerSeparator  = "-"
	digestSeparator = ","
)

// Body holds the interior layers of a tree, root-proximal first. The last
// layer is the one built directly from the leaves.
type Body [][]Digest

// LeafProximal returns the deepest interior layer, or nil for an empty body.
func (b Body) LeafProximal() []Digest {
	if len(b) == 0 {
		return nil
	}
	return b[len(b)-1]
}

// EncodeBody hex-encodes every digest, joins digests within a layer with a
// comma and joins layers with a dash, root-proximal layer first.
func EncodeBody(b Body) string {
	layers := make([]string, len(b))
	for i, layer := range b {
		digests := make([]string, len(layer))
		for j, d := range layer {
			digests[j] = d.String()
		}
		layers[i] = strings.Join(digests, digestSeparator)
	}
	return strings.Join(layers, layerSeparator)
}

// DecodeBody reverses EncodeBody. An empty string decodes to an empty body.
func DecodeBody(s string) (Body, error) {
	if s == "" {
		return Body{}, nil
	}
	parts := strings.Split(s, layerSeparator)
	b := make(Body, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: layer %d is empty", ErrInvalidMerkleBody, i)
		}
		encoded := strings.Split(part, digestSeparator)
		layer := make([]Digest, len(encoded))
		for j, e := range encoded {
			d, err := ParseDigest(e)
			if err != nil {
				return nil, fmt.Errorf("%w: layer %d digest %d: %v", ErrInvalidMerkleBody, i, j, err)
			}
			layer[j] = d
		}
		b[i] = layer
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// validate checks that the layer widths describe a binary tree whose root
// sits directly above the first layer.
func (b Body) validate() error {
	if len(b) == 0 {
		return nil
	}
	if len(b[0]) != 2 {
		return fmt.Errorf("%w: root-proximal layer has %d nodes, want 2", ErrInvalidMerkleBody, len(b[0]))
	}
	for i := 1; i < len(b); i++ {
		if want := (len(b[i]) + 1) / 2; len(b[i-1]) != want {
			return fmt.Errorf("%w: layer %d has %d nodes, want %d above a layer of %d",
				ErrInvalidMerkleBody, i-1, len(b[i-1]), want, len(b[i]))
		}
	}
	return nil
}
