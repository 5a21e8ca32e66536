package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
)

// SessionStore implements port.SessionStore on Redis. Sessions are stored as
// JSON under a prefixed key and expire with the configured TTL; the access
// guard additionally deletes them eagerly when the embedded token has expired.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore wires a Redis-backed session store.
func NewSessionStore(client *goredis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "onehealth:session"
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sessionID)
}

// Get retrieves a stored session. A missing key maps to repository.ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.StoredSession, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.StoredSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &session, nil
}

// Set writes the session with the given TTL.
func (s *SessionStore) Set(ctx context.Context, session domain.StoredSession, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

// Delete removes the session. Deleting a missing session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ port.SessionStore = (*SessionStore)(nil)
