package rabbitmq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/in"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

type nopTestLogger struct{}

func (nopTestLogger) Debug(string, out.LogFields)               {}
func (nopTestLogger) Info(string, out.LogFields)                {}
func (nopTestLogger) Warn(string, out.LogFields)                {}
func (nopTestLogger) Error(string, out.LogFields)               {}
func (l nopTestLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopTestLogger) WithModule(string) out.LoggerPort        { return l }

func TestParseChangeEventRoutingKey(t *testing.T) {
	key, err := parseChangeEventRoutingKey("sai.queue-coordinator.appointment.updated")
	require.NoError(t, err)

	assert.Equal(t, "sai", key.Source)
	assert.Equal(t, "queue-coordinator", key.Receiver)
	assert.Equal(t, "appointment", key.ResourceType)
	assert.Equal(t, ChangeEventUpdated, key.EventType)

	_, err = parseChangeEventRoutingKey("appointment.updated")
	assert.Error(t, err)
}

type countingUseCase struct {
	refreshes int
}

func (c *countingUseCase) Refresh(ctx context.Context) error { c.refreshes++; return nil }
func (c *countingUseCase) Schedule(ctx context.Context, draft domain.AppointmentDraft) (*domain.Appointment, error) {
	return nil, nil
}
func (c *countingUseCase) Transition(ctx context.Context, id string, target domain.AppointmentStatus, confirm in.ConfirmFunc) error {
	return nil
}
func (c *countingUseCase) Snapshot() []domain.Appointment { return nil }
func (c *countingUseCase) Buckets() domain.QueueBuckets   { return domain.QueueBuckets{} }

type memoryDedup struct {
	seen map[string]bool
}

func (m *memoryDedup) MarkSeen(ctx context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func TestProcessMessage(t *testing.T) {
	useCase := &countingUseCase{}
	listener := &AppointmentListener{
		useCase: useCase,
		dedup:   &memoryDedup{seen: map[string]bool{}},
		logger:  nopTestLogger{},
	}
	ctx := context.Background()

	msg := amqp.Delivery{
		MessageId:  "msg-1",
		RoutingKey: "sai.queue-coordinator.appointment.updated",
	}

	require.NoError(t, listener.processMessage(ctx, msg))
	assert.Equal(t, 1, useCase.refreshes)

	// Redelivery of the same message id is a no-op.
	require.NoError(t, listener.processMessage(ctx, msg))
	assert.Equal(t, 1, useCase.refreshes)

	// Other resource types are ignored.
	other := amqp.Delivery{
		MessageId:  "msg-2",
		RoutingKey: "sai.queue-coordinator.attendant.updated",
	}
	require.NoError(t, listener.processMessage(ctx, other))
	assert.Equal(t, 1, useCase.refreshes)

	// Unparseable keys are acked away without refreshing.
	garbled := amqp.Delivery{MessageId: "msg-3", RoutingKey: "garbled"}
	require.NoError(t, listener.processMessage(ctx, garbled))
	assert.Equal(t, 1, useCase.refreshes)
}
