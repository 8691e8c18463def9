package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newDedup(t *testing.T, size int) *EventDedupAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.RabbitMQ.DedupSize = size

	adapter, err := NewEventDedupAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	return adapter
}

func TestMarkSeen(t *testing.T) {
	dedup := newDedup(t, 16)
	ctx := context.Background()

	assert.False(t, dedup.MarkSeen(ctx, "msg-1"))
	assert.True(t, dedup.MarkSeen(ctx, "msg-1"))
	assert.False(t, dedup.MarkSeen(ctx, "msg-2"))
}

func TestMarkSeenEvictsOldest(t *testing.T) {
	dedup := newDedup(t, 2)
	ctx := context.Background()

	dedup.MarkSeen(ctx, "msg-1")
	dedup.MarkSeen(ctx, "msg-2")
	dedup.MarkSeen(ctx, "msg-3") // evicts msg-1

	assert.False(t, dedup.MarkSeen(ctx, "msg-1"))
	assert.True(t, dedup.MarkSeen(ctx, "msg-3"))
}

func TestInvalidSizeFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.RabbitMQ.DedupSize = 0

	_, err := NewEventDedupAdapter(cfg, nopLogger{})
	assert.Error(t, err)
}
