package out

import "context"

// CredentialPort yields the bearer credential to attach to outgoing registry
// requests. The credential is opaque to the core: never parsed, never stored
// beyond the session that supplied it. A missing credential is not an error
// here; the registry decides whether the operation requires one.
type CredentialPort interface {
	Token(ctx context.Context) (string, bool)
}

// SessionEventsPort receives the session-expired signal raised when the
// registry rejects the credential, so the owner can force re-authentication
// instead of showing a generic failure.
type SessionEventsPort interface {
	SessionExpired(ctx context.Context)
}
