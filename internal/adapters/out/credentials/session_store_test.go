package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func TestSessionLifecycle(t *testing.T) {
	store := NewSessionStore(nopLogger{})
	ctx := context.Background()

	_, ok := store.Token(ctx)
	assert.False(t, ok)

	store.Set("token-1")
	token, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)

	// Re-authentication replaces the credential.
	store.Set("token-2")
	token, _ = store.Token(ctx)
	assert.Equal(t, "token-2", token)

	store.Clear()
	_, ok = store.Token(ctx)
	assert.False(t, ok)
}

func TestSessionExpiredDiscardsCredential(t *testing.T) {
	store := NewSessionStore(nopLogger{})
	store.Set("token-1")

	store.SessionExpired(context.Background())

	_, ok := store.Token(context.Background())
	assert.False(t, ok)
}
