package service

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

const DefaultCacheSize = 128

// QuestService commits to the tolerance grid around a coordinate and later
// redeems candidate coordinates against stored commitments.
type QuestService struct {
	storage   *Storage
	params    Params
	hasher    *Hasher
	workers   int
	cacheSize int
	bodies    *lru.Cache[string, Body]
	log       zerolog.Logger
	metrics   Metrics
}

type Option func(*QuestService)

func WithLogger(log zerolog.Logger) Option {
	return func(s *QuestService) { s.log = log }
}

func WithMetrics(m Metrics) Option {
	return func(s *QuestService) { s.metrics = m }
}

func WithWorkers(n int) Option {
	return func(s *QuestService) { s.workers = n }
}

// WithCacheSize sets how many decoded bodies are kept in memory.
func WithCacheSize(n int) Option {
	return func(s *QuestService) { s.cacheSize = n }
}

func NewQuestService(storage *Storage, params Params, opts ...Option) (*QuestService, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	h, err := NewHasher(params)
	if err != nil {
		return nil, err
	}

	s := &QuestService{
		storage:   storage,
		params:    params,
		hasher:    h,
		workers:   1,
		cacheSize: DefaultCacheSize,
		log:       zerolog.Nop(),
		metrics:   NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.bodies, err = lru.New[string, Body](s.cacheSize)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewQuestServiceFromConfig builds a service from loaded config.
func NewQuestServiceFromConfig(storage *Storage, cfg *Config, opts ...Option) (*QuestService, error) {
	opts = append([]Option{WithWorkers(cfg.Workers), WithCacheSize(cfg.CacheSize)}, opts...)
	return NewQuestService(storage, cfg.Params, opts...)
}

// Commit builds the tree over the grid around center and stores root and
// body. The leaves are not kept.
func (s *QuestService) Commit(center Coordinate) (*CommitResult, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	points := s.params.Grid(center)
	if len(points) == 0 {
		return nil, fmt.Errorf("empty grid around %s,%s: %w",
			FormatDegrees(center.Lat), FormatDegrees(center.Lon), ErrNoLeaves)
	}

	tree, err := BuildTree(s.hasher, s.hasher.HashLeaves(points), s.params.PairOrder, s.params.OddNode)
	if err != nil {
		return nil, err
	}

	body := tree.Body()
	c := &Commitment{
		Root:   tree.Root().String(),
		Body:   EncodeBody(body),
		Params: s.params,
	}
	if err := s.storage.StoreCommitment(c); err != nil {
		return nil, fmt.Errorf("could not store commitment: %w", err)
	}
	s.bodies.Add(c.Root, body)
	s.metrics.CommitmentBuilt(len(tree.Leaves()))

	s.log.Debug().
		Str("root", c.Root).
		Int("leaves", len(tree.Leaves())).
		Int("depth", tree.Depth()).
		Msg("commitment stored")

	return &CommitResult{
		Root:   c.Root,
		Body:   c.Body,
		Depth:  tree.Depth(),
		Leaves: len(tree.Leaves()),
	}, nil
}

func (s *QuestService) GetCommitment(root string) (*Commitment, error) {
	return s.storage.GetCommitment(root)
}

// Commitments lists every stored commitment in root order.
func (s *QuestService) Commitments() ([]*Commitment, error) {
	roots, err := s.storage.Roots()
	if err != nil {
		return nil, err
	}
	commitments := make([]*Commitment, 0, len(roots))
	for _, root := range roots {
		c, err := s.storage.GetCommitment(root)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, nil
}

// Locate builds a submission for candidate against a body held elsewhere,
// using the service params.
func (s *QuestService) Locate(body string, candidate Coordinate) (*Submission, error) {
	locator, err := NewLocator(s.params, s.workers)
	if err != nil {
		return nil, err
	}
	return locator.Locate(body, candidate)
}

// Redeem locates a proof for candidate against the commitment stored under
// root and verifies it locally. An empty mode selects the mode matching the
// commitment's pair order. Candidates without a match are rejected before
// any verification runs.
func (s *QuestService) Redeem(root string, candidate Coordinate, mode string) (*RedemptionResult, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	c, err := s.storage.GetCommitment(root)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = defaultMode(c.Params.PairOrder)
	}

	rootDigest, err := ParseDigest(c.Root)
	if err != nil {
		return nil, fmt.Errorf("stored root %s: %w", c.Root, err)
	}
	h, err := NewHasher(c.Params)
	if err != nil {
		return nil, err
	}
	verifier, err := getVerifier(mode, h)
	if err != nil {
		return nil, err
	}

	body, err := s.body(c)
	if err != nil {
		s.reject(root, outcomeInvalid, err)
		return nil, err
	}
	locator, err := NewLocator(c.Params, s.workers)
	if err != nil {
		return nil, err
	}
	sub, err := locator.LocateBody(body, candidate)
	if err != nil {
		outcome := outcomeInvalid
		if errors.Is(err, ErrNoMatchFound) {
			outcome = outcomeNoMatch
		}
		s.reject(root, outcome, err)
		return nil, err
	}

	if !verifier.Verify(rootDigest, sub.Answer, sub.Proof, sub.Order) {
		err := fmt.Errorf("%w: mode %s against root %s", ErrVerificationFailed, mode, root)
		s.reject(root, outcomeRejected, err)
		return nil, err
	}

	s.metrics.Redemption(outcomeVerified)
	return &RedemptionResult{
		Root:       root,
		Mode:       mode,
		Submission: sub,
	}, nil
}

func (s *QuestService) body(c *Commitment) (Body, error) {
	if b, ok := s.bodies.Get(c.Root); ok {
		return b, nil
	}
	b, err := DecodeBody(c.Body)
	if err != nil {
		return nil, err
	}
	s.bodies.Add(c.Root, b)
	return b, nil
}

func (s *QuestService) reject(root, outcome string, err error) {
	s.metrics.Redemption(outcome)
	s.log.Warn().Err(err).Str("root", root).Str("outcome", outcome).Msg("redemption rejected")
}

// VerifySubmission checks sub against root with the given mode.
func VerifySubmission(p Params, mode string, root Digest, sub *Submission) (bool, error) {
	v, err := NewVerifier(mode, p)
	if err != nil {
		return false, err
	}
	return v.Verify(root, sub.Answer, sub.Proof, sub.Order), nil
}
