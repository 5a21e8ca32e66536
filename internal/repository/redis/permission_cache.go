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

// PermissionCache implements port.FeaturePermissionCache on Redis with a
// short TTL. A cache miss maps to repository.ErrNotFound so callers fall
// through to Postgres.
type PermissionCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewPermissionCache wires a Redis-backed feature permission cache.
func NewPermissionCache(client *goredis.Client, prefix string, ttl time.Duration) *PermissionCache {
	if prefix == "" {
		prefix = "onehealth:feature-permission"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PermissionCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *PermissionCache) key(userID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, userID)
}

// Get returns the cached permission map for the user.
func (c *PermissionCache) Get(ctx context.Context, userID string) (domain.FeaturePermissions, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get cached permissions: %w", err)
	}

	perms := domain.FeaturePermissions{}
	if err := json.Unmarshal(raw, &perms); err != nil {
		return nil, fmt.Errorf("decode cached permissions: %w", err)
	}

	return perms, nil
}

// Set caches the permission map for the configured TTL.
func (c *PermissionCache) Set(ctx context.Context, userID string, perms domain.FeaturePermissions) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached permissions: %w", err)
	}

	return nil
}

// Invalidate drops the cached entry after a grant or revoke.
func (c *PermissionCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached permissions: %w", err)
	}
	return nil
}

var _ port.FeaturePermissionCache = (*PermissionCache)(nil)
