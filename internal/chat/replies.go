package chat

import (
	"math/rand"
	"sync"
	"time"
)

// The fixed reply pool the simulation draws from.
var cannedReplies = []string{
	"That's interesting! Tell me more 😊",
	"I totally agree with you! 👍",
	"That sounds amazing! What else do you like?",
	"Haha, that's funny! 😄",
	"I'd love to hear more about that!",
	"That's so cool! We have a lot in common!",
	"Thanks for sharing that with me! 💕",
	"I'm really enjoying our conversation!",
	"That's awesome! We should definitely meet sometime!",
	"You seem like such an interesting person! 😊",
}

const (
	replyDelayBase   = 2 * time.Second
	replyDelayJitter = 3 * time.Second
)

// Responder picks canned replies and randomized delays for the auto-reply
// simulation. Seeded for reproducible tests.
type Responder struct {
	mu      sync.Mutex
	rand    *rand.Rand
	replies []string
}

// NewResponder creates a responder over the fixed reply pool.
func NewResponder(seed int64) *Responder {
	return &Responder{
		rand:    rand.New(rand.NewSource(seed)),
		replies: cannedReplies,
	}
}

// Pick selects a reply from the pool.
func (r *Responder) Pick() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replies[r.rand.Intn(len(r.replies))]
}

// Delay returns a randomized think time in [base, base+jitter).
func (r *Responder) Delay() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return replyDelayBase + time.Duration(r.rand.Int63n(int64(replyDelayJitter)))
}
