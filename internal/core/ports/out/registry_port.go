package out

import (
	"context"

	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
)

// RegistryPort is the boundary toward the authoritative appointment store.
// Each call succeeds once or fails with one of the domain error kinds; retry
// policy belongs to the caller.
type RegistryPort interface {
	// Full current set, no paging; always replaces the local snapshot.
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)

	// The registry assigns the ID and the initial status.
	CreateAppointment(ctx context.Context, draft domain.AppointmentDraft) (*domain.Appointment, error)

	UpdateAppointmentStatus(ctx context.Context, id string, target domain.AppointmentStatus) error
}
