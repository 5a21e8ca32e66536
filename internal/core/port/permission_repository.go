package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// FeaturePermissionRepository resolves which admin screens a user may access.
type FeaturePermissionRepository interface {
	ListByUser(ctx context.Context, userID string) (domain.FeaturePermissions, error)
	Grant(ctx context.Context, userID string, featureID int) error
	Revoke(ctx context.Context, userID string, featureID int) error
}

// FeaturePermissionCache fronts the repository with a short-lived cache so the
// menu filter does not hit Postgres on every navigation.
type FeaturePermissionCache interface {
	Get(ctx context.Context, userID string) (domain.FeaturePermissions, error)
	Set(ctx context.Context, userID string, perms domain.FeaturePermissions) error
	Invalidate(ctx context.Context, userID string) error
}
