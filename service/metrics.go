package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespaceQuest = "quest"

// Redemption outcomes.
const (
	outcomeVerified = "verified"
	outcomeNoMatch  = "no_match"
	outcomeInvalid  = "invalid"
	outcomeRejected = "rejected"
)

type Metrics interface {
	CommitmentBuilt(leaves int)
	Redemption(outcome string)
}

type NoopMetrics struct{}

func (NoopMetrics) CommitmentBuilt(int) {}
func (NoopMetrics) Redemption(string)   {}

type Collector struct {
	commitments prometheus.Counter
	leaves      prometheus.Histogram
	redemptions *prometheus.CounterVec
}

// NewCollector registers the quest metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		commitments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceQuest,
			Name:      "commitments_total",
			Help:      "number of commitments built",
		}),
		leaves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceQuest,
			Name:      "commitment_leaves",
			Help:      "number of leaves per commitment",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceQuest,
			Name:      "redemptions_total",
			Help:      "redemption attempts by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.commitments, c.leaves, c.redemptions)
	return c
}

func (c *Collector) CommitmentBuilt(leaves int) {
	c.commitments.Inc()
	c.leaves.Observe(float64(leaves))
}

func (c *Collector) Redemption(outcome string) {
	c.redemptions.WithLabelValues(outcome).Inc()
}
