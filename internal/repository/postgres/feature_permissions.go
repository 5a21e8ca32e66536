package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
)

// FeaturePermissionRepository implements port.FeaturePermissionRepository
// using PostgreSQL.
type FeaturePermissionRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewFeaturePermissionRepository wires a PostgreSQL-backed permission repository.
func NewFeaturePermissionRepository(pool *pgxpool.Pool) *FeaturePermissionRepository {
	return &FeaturePermissionRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByUser returns the granted feature ids as a lookup map. A user with no
// grants yields an empty, non-nil map.
func (r *FeaturePermissionRepository) ListByUser(ctx context.Context, userID string) (domain.FeaturePermissions, error) {
	stmt, args, err := r.builder.
		Select("feature_id").
		From("onehealth.user_feature_permissions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select permissions sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	perms := domain.FeaturePermissions{}
	for rows.Next() {
		var featureID int
		if err := rows.Scan(&featureID); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms[featureID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permissions: %w", err)
	}

	return perms, nil
}

// Grant records a feature grant. Granting twice is a no-op.
func (r *FeaturePermissionRepository) Grant(ctx context.Context, userID string, featureID int) error {
	stmt, args, err := r.builder.
		Insert("onehealth.user_feature_permissions").
		Columns("user_id", "feature_id").
		Values(userID, featureID).
		Suffix("ON CONFLICT (user_id, feature_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build grant permission sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}

	return nil
}

// Revoke removes a feature grant.
func (r *FeaturePermissionRepository) Revoke(ctx context.Context, userID string, featureID int) error {
	stmt, args, err := r.builder.
		Delete("onehealth.user_feature_permissions").
		Where(squirrel.Eq{"user_id": userID, "feature_id": featureID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke permission sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.FeaturePermissionRepository = (*FeaturePermissionRepository)(nil)
