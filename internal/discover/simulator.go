package discover

import (
	"math/rand"
	"sync"
)

// MatchSimulator is demo-mode scaffolding only. Real mutual-like detection is
// server-side; when the backend does not report a match outcome and demo mode
// is on, the simulator fakes one at a fixed probability so the match
// notification flow can be exercised without a full backend. It must never be
// enabled in a production configuration.
type MatchSimulator struct {
	mu          sync.Mutex
	probability float64
	rand        *rand.Rand
}

// NewMatchSimulator creates a simulator that reports a match with the given
// probability. The seed makes outcomes reproducible in tests.
func NewMatchSimulator(probability float64, seed int64) *MatchSimulator {
	return &MatchSimulator{
		probability: probability,
		rand:        rand.New(rand.NewSource(seed)),
	}
}

// Matched flips the coin.
func (s *MatchSimulator) Matched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64() < s.probability
}
