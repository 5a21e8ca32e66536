package port

import (
	"context"
	"time"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// SessionStore is the persistent key-value capability holding login sessions.
// It is injected into the access guard and the login flow instead of being
// reached as ambient global state; the guard only reads and deletes.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.StoredSession, error)
	Set(ctx context.Context, session domain.StoredSession, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
