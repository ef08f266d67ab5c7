package service

import "errors"

var (
	// ErrInvalidMerkleBody is returned when an encoded body cannot be parsed
	// or its layers do not describe a binary tree.
	ErrInvalidMerkleBody = errors.New("invalid merkle body")

	// ErrNoMatchFound is returned when no pair of candidate leaves hashes
	// into the leaf-proximal layer of the body. The candidate is either
	// outside the tolerance grid or was generated with different constants.
	ErrNoMatchFound = errors.New("no matching leaf pair found")

	// ErrMalformedProof means the locator produced a proof whose sibling and
	// order-bit sequences differ in length. This is a bug, not bad input.
	ErrMalformedProof = errors.New("malformed proof")

	// ErrVerificationFailed is returned when the root recomputed from a proof
	// does not equal the committed root.
	ErrVerificationFailed = errors.New("proof verification failed")

	// ErrInvalidCoordinate is returned for non-finite coordinates or ones
	// outside [-90, 90] latitude and [-180, 180] longitude.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	ErrUnknownMode        = errors.New("unknown verification mode")
	ErrNoLeaves           = errors.New("no leaves to build tree from")
	ErrInvalidParams      = errors.New("invalid commitment params")
	ErrCommitmentNotFound = errors.New("commitment not found")
)
