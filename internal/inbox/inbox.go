package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

// Backend is the slice of the core backend the inbox needs.
type Backend interface {
	ReceivedRequests(ctx context.Context) ([]json.RawMessage, error)
	ReviewRequest(ctx context.Context, verdict, requestID string) error
}

// Inbox holds the pending inbound connection requests for one session.
// Accept and reject remove entries optimistically on success; a failed
// review keeps the entry and surfaces the error instead of swallowing it.
type Inbox struct {
	api    Backend
	logger *zap.Logger

	mu      sync.Mutex
	entries []model.RequestEntry
}

// NewInbox creates an empty inbox. Call LoadRequests to populate it.
func NewInbox(api Backend, logger *zap.Logger) *Inbox {
	return &Inbox{
		api:    api,
		logger: logger,
	}
}

// LoadRequests replaces the in-memory set from a fresh fetch. Entries arrive
// in either of two historical wire shapes; ones that fail to decode are
// dropped individually, never fatal to the batch.
func (i *Inbox) LoadRequests(ctx context.Context) error {
	raw, err := i.api.ReceivedRequests(ctx)
	if err != nil {
		return fmt.Errorf("load requests: %w", err)
	}

	entries := make([]model.RequestEntry, 0, len(raw))
	for idx, r := range raw {
		entry, err := model.DecodeRequestEntry(r)
		if err != nil {
			i.logger.Warn("dropping request entry",
				zap.Int("index", idx),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}

	i.mu.Lock()
	i.entries = entries
	i.mu.Unlock()

	i.logger.Debug("requests loaded", zap.Int("pending", len(entries)))
	return nil
}

// Entries returns a snapshot of the pending requests.
func (i *Inbox) Entries() []model.RequestEntry {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]model.RequestEntry, len(i.entries))
	copy(out, i.entries)
	return out
}

// Accept resolves a request positively and removes it from the inbox.
func (i *Inbox) Accept(ctx context.Context, requestID string) error {
	return i.review(ctx, "accepted", requestID)
}

// Reject resolves a request negatively and removes it from the inbox.
func (i *Inbox) Reject(ctx context.Context, requestID string) error {
	return i.review(ctx, "rejected", requestID)
}

func (i *Inbox) review(ctx context.Context, verdict, requestID string) error {
	if err := i.api.ReviewRequest(ctx, verdict, requestID); err != nil {
		return fmt.Errorf("review %s %s: %w", verdict, requestID, err)
	}

	// Optimistic local removal; no reconciliation beyond this call's success.
	i.mu.Lock()
	kept := i.entries[:0]
	for _, e := range i.entries {
		if e.RequestID != requestID {
			kept = append(kept, e)
		}
	}
	i.entries = kept
	i.mu.Unlock()

	i.logger.Info("request reviewed",
		zap.String("request_id", requestID),
		zap.String("verdict", verdict),
	)
	return nil
}
