package in

import (
	"context"

	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
)

// ConfirmFunc is the abstract confirmation capability consulted before a
// destructive transition. Each caller supplies its own answer per call.
type ConfirmFunc func(ctx context.Context, appointment domain.Appointment) bool

type QueueCoordinatorUseCase interface {
	// Replaces the snapshot and projection from the registry. On failure the
	// previous snapshot stays valid and queryable.
	Refresh(ctx context.Context) error

	// Creates an appointment and refreshes, so the caller always observes a
	// projection that includes the new record.
	Schedule(ctx context.Context, draft domain.AppointmentDraft) (*domain.Appointment, error)

	// Drives one appointment through a legal status transition. Only one
	// in-flight transition per id is permitted.
	Transition(ctx context.Context, id string, target domain.AppointmentStatus, confirm ConfirmFunc) error

	Snapshot() []domain.Appointment
	Buckets() domain.QueueBuckets
}
