package domain

import "errors"

// Error kinds surfaced by the coordinator and its adapters. Callers classify
// with errors.Is; every remote failure is wrapped into exactly one of these.
var (
	ErrValidation           = errors.New("queue: invalid appointment data")
	ErrSchedulingConflict   = errors.New("queue: arrival time conflicts with an existing appointment")
	ErrNotFound             = errors.New("queue: appointment not found")
	ErrInvalidTransition    = errors.New("queue: illegal status transition")
	ErrOperationInProgress  = errors.New("queue: another operation is in flight for this appointment")
	ErrUnauthenticated      = errors.New("queue: registry rejected the credential")
	ErrSessionExpired       = errors.New("queue: session expired, re-authentication required")
	ErrServiceUnavailable   = errors.New("queue: registry unavailable")
	ErrRefreshFailed        = errors.New("queue: snapshot refresh failed, previous snapshot kept")
	ErrConfirmationDeclined = errors.New("queue: cancellation was not confirmed")
)
