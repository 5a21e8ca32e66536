package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
)

type stubSessionStore struct {
	get    func(ctx context.Context, sessionID string) (*domain.StoredSession, error)
	set    func(ctx context.Context, session domain.StoredSession, ttl time.Duration) error
	delete func(ctx context.Context, sessionID string) error
}

func (s *stubSessionStore) Get(ctx context.Context, sessionID string) (*domain.StoredSession, error) {
	if s.get == nil {
		panic("unexpected Get call")
	}
	return s.get(ctx, sessionID)
}

func (s *stubSessionStore) Set(ctx context.Context, session domain.StoredSession, ttl time.Duration) error {
	if s.set == nil {
		panic("unexpected Set call")
	}
	return s.set(ctx, session, ttl)
}

func (s *stubSessionStore) Delete(ctx context.Context, sessionID string) error {
	if s.delete == nil {
		panic("unexpected Delete call")
	}
	return s.delete(ctx, sessionID)
}

// tokenWithClaims builds an unsigned JWT-shaped string whose middle segment
// carries the given claims. The guard never verifies the signature, so a dummy
// one is enough.
func tokenWithClaims(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return "eyJhbGciOiJSUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestDecideAllowsValidSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := tokenWithClaims(t, map[string]any{"exp": float64(now.Add(time.Hour).Unix())})

	sessions := &stubSessionStore{
		get: func(_ context.Context, sessionID string) (*domain.StoredSession, error) {
			return &domain.StoredSession{ID: sessionID, UserID: "u1", Token: token}, nil
		},
	}
	guard := NewAccessGuard(sessions, zap.NewNop()).WithClock(fixedClock(now))

	decision := guard.Decide(context.Background(), "/dashboard", "sess-1")
	if !decision.Allowed {
		t.Fatalf("valid session denied: %+v", decision)
	}
}

func TestDecideExpiredSessionDeletedAndDenied(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := tokenWithClaims(t, map[string]any{"exp": float64(now.Add(-time.Minute).Unix())})

	var deleted string
	sessions := &stubSessionStore{
		get: func(_ context.Context, sessionID string) (*domain.StoredSession, error) {
			return &domain.StoredSession{ID: sessionID, Token: token}, nil
		},
		delete: func(_ context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	guard := NewAccessGuard(sessions, zap.NewNop()).WithClock(fixedClock(now))

	decision := guard.Decide(context.Background(), "/dashboard", "sess-2")
	if decision.Allowed {
		t.Fatal("expired session allowed")
	}
	if decision.RedirectPath != LoginPath {
		t.Errorf("RedirectPath = %q, want %q", decision.RedirectPath, LoginPath)
	}
	if deleted != "sess-2" {
		t.Errorf("expired session not deleted, got %q", deleted)
	}
}

func TestDecideMissingSessionDenied(t *testing.T) {
	guard := NewAccessGuard(&stubSessionStore{}, zap.NewNop())

	decision := guard.Decide(context.Background(), "/dashboard", "")
	if decision.Allowed {
		t.Fatal("request without session allowed")
	}
	if decision.RedirectPath != "/auth/login" {
		t.Errorf("RedirectPath = %q, want /auth/login", decision.RedirectPath)
	}
}

func TestDecideMalformedTokenDenied(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"no separator", "notajwt"},
		{"bad base64", "header.!!!.sig"},
		{"payload not json", "header." + base64.RawURLEncoding.EncodeToString([]byte("plain")) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &stubSessionStore{
				get: func(_ context.Context, sessionID string) (*domain.StoredSession, error) {
					return &domain.StoredSession{ID: sessionID, Token: tt.token}, nil
				},
			}
			guard := NewAccessGuard(sessions, zap.NewNop())

			if guard.Decide(context.Background(), "/dashboard", "sess-3").Allowed {
				t.Error("malformed token allowed")
			}
		})
	}
}

func TestDecideMissingExpiryAllowed(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
	}{
		{"no exp claim", map[string]any{"sub": "u1"}},
		{"non-numeric exp", map[string]any{"exp": "tomorrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tokenWithClaims(t, tt.claims)
			sessions := &stubSessionStore{
				get: func(_ context.Context, sessionID string) (*domain.StoredSession, error) {
					return &domain.StoredSession{ID: sessionID, Token: token}, nil
				},
			}
			guard := NewAccessGuard(sessions, zap.NewNop())

			if !guard.Decide(context.Background(), "/dashboard", "sess-4").Allowed {
				t.Error("token without a usable expiry must be treated as unexpired")
			}
		})
	}
}

func TestDecideUnknownSessionDenied(t *testing.T) {
	sessions := &stubSessionStore{
		get: func(context.Context, string) (*domain.StoredSession, error) {
			return nil, repository.ErrNotFound
		},
	}
	guard := NewAccessGuard(sessions, zap.NewNop())

	if guard.Decide(context.Background(), "/dashboard", "gone").Allowed {
		t.Fatal("unknown session allowed")
	}
}

func TestDecidePublicPathsAlwaysAllowed(t *testing.T) {
	// No store interaction may happen: every stub func is nil.
	guard := NewAccessGuard(&stubSessionStore{}, zap.NewNop())

	for _, path := range []string{
		"/auth/login",
		"/auth/forgot-password",
		"/auth/forgot-password/reset",
	} {
		if !guard.Decide(context.Background(), path, "").Allowed {
			t.Errorf("public path %q denied without session", path)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	if IsPublicPath("/dashboard") {
		t.Error("/dashboard must not be public")
	}
	if !IsPublicPath("/auth/login") {
		t.Error("/auth/login must be public")
	}
	if IsPublicPath("/auth/logout") {
		t.Error("/auth/logout must not be public")
	}
}
