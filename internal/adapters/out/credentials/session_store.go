package credentials

import (
	"context"
	"sync"

	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

// SessionStore holds the bearer credential for the current registry session:
// set at session start, replaced on re-authentication, cleared on logout or
// expiry. The token is opaque; it is only ever forwarded, never inspected.
type SessionStore struct {
	mu     sync.RWMutex
	token  string
	logger out.LoggerPort
}

func NewSessionStore(logger out.LoggerPort) *SessionStore {
	return &SessionStore{logger: logger}
}

func (s *SessionStore) Token(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *SessionStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Info("credentials.session.set", out.LogFields{})
}

func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.logger.Info("credentials.session.cleared", out.LogFields{})
}

// SessionExpired implements out.SessionEventsPort: a rejected credential
// discards the session so the next operation fails fast until re-auth.
func (s *SessionStore) SessionExpired(ctx context.Context) {
	s.logger.Warn("credentials.session.expired", out.LogFields{})
	s.Clear()
}
