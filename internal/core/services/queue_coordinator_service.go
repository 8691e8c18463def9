package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/in"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

// QueueCoordinatorService owns the canonical snapshot of appointments and
// the bucketed projection derived from it. The snapshot is always replaced
// wholesale from the registry, never merged, so a lost race between two
// refreshes still leaves a consistent last-write-wins state.
type QueueCoordinatorService struct {
	registryPort out.RegistryPort
	sessionPort  out.SessionEventsPort
	logger       out.LoggerPort

	mu       sync.RWMutex
	snapshot []domain.Appointment
	buckets  domain.QueueBuckets

	// One in-flight transition per appointment id; different ids are
	// unrestricted.
	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

func NewQueueCoordinatorService(
	registryPort out.RegistryPort,
	sessionPort out.SessionEventsPort,
	logger out.LoggerPort,
) *QueueCoordinatorService {
	return &QueueCoordinatorService{
		registryPort: registryPort,
		sessionPort:  sessionPort,
		logger:       logger.WithModule("QueueCoordinatorService"),
		buckets:      domain.Bucketize(nil),
		inflight:     make(map[string]struct{}),
	}
}

func (s *QueueCoordinatorService) Refresh(ctx context.Context) error {
	listTiming := domain.StartTiming("queue.refresh.list")

	appointments, err := s.registryPort.ListAppointments(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.logger.Warn("queue.refresh.session_expired", out.LogFields{
				"error": err.Error(),
			})
			s.notifySessionExpired(ctx)
			return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
		}

		s.logger.Error("queue.refresh.failed", out.LogFields{
			"error": err.Error(),
		})
		return errors.Join(domain.ErrRefreshFailed, err)
	}

	listTiming.Elapse()

	buckets := domain.Bucketize(appointments)

	// Snapshot and projection swap together; readers never observe a
	// half-updated pair.
	s.mu.Lock()
	s.snapshot = appointments
	s.buckets = buckets
	s.mu.Unlock()

	s.logger.Debug("queue.refresh.success", out.LogFields{
		"count":    len(appointments),
		"timingMs": listTiming.Timing,
	})

	return nil
}

func (s *QueueCoordinatorService) Schedule(ctx context.Context, draft domain.AppointmentDraft) (*domain.Appointment, error) {
	draft.NationalID = domain.NormalizeNationalID(draft.NationalID)

	if err := draft.Validate(); err != nil {
		s.logger.Warn("queue.schedule.rejected", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("queue.schedule.started", out.LogFields{
		"serviceType":   draft.ServiceType,
		"priorityClass": draft.PriorityClass,
	})

	createTiming := domain.StartTiming("queue.schedule.create")

	appointment, err := s.registryPort.CreateAppointment(ctx, draft)
	if err != nil {
		s.logger.Error("queue.schedule.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	createTiming.Elapse()

	s.logger.Info("queue.schedule.success", out.LogFields{
		"appointmentId": appointment.ID,
		"status":        appointment.Status,
		"timingMs":      createTiming.Timing,
	})

	// The create committed; a failed follow-up refresh only means the
	// projection is stale, so the appointment is returned either way.
	if err := s.Refresh(ctx); err != nil {
		return appointment, err
	}

	return appointment, nil
}

func (s *QueueCoordinatorService) Transition(ctx context.Context, id string, target domain.AppointmentStatus, confirm in.ConfirmFunc) error {
	if !s.acquireInflight(id) {
		s.logger.Warn("queue.transition.in_progress", out.LogFields{
			"appointmentId": id,
		})
		return fmt.Errorf("%w: %s", domain.ErrOperationInProgress, id)
	}
	defer s.releaseInflight(id)

	appointment, ok := s.lookup(id)
	if !ok {
		// Unknown locally; no network round-trip wasted on it.
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	if err := domain.RequireTransition(appointment.Status, target); err != nil {
		s.logger.Warn("queue.transition.rejected", out.LogFields{
			"appointmentId": id,
			"from":          appointment.Status,
			"to":            target,
		})
		return err
	}

	if domain.IsDestructive(target) {
		if confirm == nil || !confirm(ctx, appointment) {
			s.logger.Info("queue.transition.cancel_declined", out.LogFields{
				"appointmentId": id,
			})
			return fmt.Errorf("%w: %s", domain.ErrConfirmationDeclined, id)
		}
	}

	s.logger.Info("queue.transition.started", out.LogFields{
		"appointmentId": id,
		"from":          appointment.Status,
		"to":            target,
	})

	updateTiming := domain.StartTiming("queue.transition.update")

	if err := s.registryPort.UpdateAppointmentStatus(ctx, id, target); err != nil {
		s.logger.Error("queue.transition.failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return err
	}

	updateTiming.Elapse()

	s.logger.Info("queue.transition.success", out.LogFields{
		"appointmentId": id,
		"to":            target,
		"timingMs":      updateTiming.Timing,
	})

	return s.Refresh(ctx)
}

func (s *QueueCoordinatorService) Snapshot() []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.Appointment, len(s.snapshot))
	copy(snapshot, s.snapshot)
	return snapshot
}

func (s *QueueCoordinatorService) Buckets() domain.QueueBuckets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets
}

func (s *QueueCoordinatorService) lookup(id string) (domain.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, appointment := range s.snapshot {
		if appointment.ID == id {
			return appointment, true
		}
	}
	return domain.Appointment{}, false
}

func (s *QueueCoordinatorService) acquireInflight(id string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *QueueCoordinatorService) releaseInflight(id string) {
	s.inflightMu.Lock()
	delete(s.inflight, id)
	s.inflightMu.Unlock()
}

func (s *QueueCoordinatorService) notifySessionExpired(ctx context.Context) {
	if s.sessionPort == nil {
		return
	}
	s.sessionPort.SessionExpired(ctx)
}
