package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

// EventDedupAdapter remembers recently seen broker message ids in a bounded
// LRU, so redelivered change events do not trigger duplicate refreshes.
type EventDedupAdapter struct {
	mu     sync.Mutex
	seen   *lru.Cache[string, struct{}]
	logger out.LoggerPort
}

func NewEventDedupAdapter(cfg *config.Config, logger out.LoggerPort) (*EventDedupAdapter, error) {
	seen, err := lru.New[string, struct{}](cfg.RabbitMQ.DedupSize)
	if err != nil {
		logger.Error("dedup.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.RabbitMQ.DedupSize,
		})
		return nil, err
	}

	return &EventDedupAdapter{
		seen:   seen,
		logger: logger,
	}, nil
}

func (a *EventDedupAdapter) MarkSeen(ctx context.Context, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, known := a.seen.Get(id); known {
		a.logger.Debug("dedup.duplicate", out.LogFields{
			"messageId": id,
		})
		return true
	}

	a.seen.Add(id, struct{}{})
	return false
}
