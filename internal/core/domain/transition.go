package domain

import "fmt"

// Legal lifecycle transitions. Cancellation is only reachable from
// EM_ATENDIMENTO; CONCLUIDO and CANCELADO are terminal.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusWaiting:   {AppointmentStatusInService},
	AppointmentStatusInService: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func CanTransition(current, target AppointmentStatus) bool {
	for _, allowed := range legalTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// RequireTransition is the pre-flight check before any remote mutation. The
// registry enforces the same rules server-side and may still reject a legal
// transition under concurrent modification.
func RequireTransition(current, target AppointmentStatus) error {
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	return nil
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// IsDestructive reports whether a transition to target requires explicit
// confirmation from the caller before it is issued.
func IsDestructive(target AppointmentStatus) bool {
	return target == AppointmentStatusCancelled
}
