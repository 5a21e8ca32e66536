package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
)

// NavigationService resolves the admin menu a user is allowed to see. The
// permission lookup goes through a short-lived cache so menu rendering does
// not hit Postgres on every request.
type NavigationService struct {
	permissions port.FeaturePermissionRepository
	cache       port.FeaturePermissionCache
	logger      *zap.Logger
}

// NewNavigationService wires the navigation service.
func NewNavigationService(permissions port.FeaturePermissionRepository, cache port.FeaturePermissionCache, logger *zap.Logger) *NavigationService {
	return &NavigationService{permissions: permissions, cache: cache, logger: logger}
}

// PermissionsFor returns the user's feature permission map, cache first. The
// result is never nil on success; a user with no grants gets an empty map.
func (s *NavigationService) PermissionsFor(ctx context.Context, userID string) (domain.FeaturePermissions, error) {
	if s.cache != nil {
		perms, err := s.cache.Get(ctx, userID)
		if err == nil {
			return perms, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("permission cache read failed", zap.Error(err))
		}
	}

	perms, err := s.permissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = domain.FeaturePermissions{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, perms); err != nil {
			s.logger.Warn("permission cache write failed", zap.Error(err))
		}
	}

	return perms, nil
}

// MenuFor returns the navigation tree filtered down to the entries the user
// may access.
func (s *NavigationService) MenuFor(ctx context.Context, userID string) ([]domain.NavigationNode, error) {
	perms, err := s.PermissionsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterNavigationTree(domain.DefaultNavigationTree(), perms), nil
}

// MenuEntriesFor returns the user's menu as renderable entries, with every
// link prefixed by the layout path.
func (s *NavigationService) MenuEntriesFor(ctx context.Context, userID, layout string) ([]domain.MenuEntry, error) {
	menu, err := s.MenuFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ToMenuEntries(layout, menu), nil
}

// FilterNavigationTree removes every node whose feature is not granted.
// Parents and children are gated independently: a denied parent disappears
// with all its children, a granted parent keeps only its granted children.
// Declaration order is preserved and the input is never mutated, so filtering
// an already filtered tree with the same permissions returns the same tree.
func FilterNavigationTree(tree []domain.NavigationNode, perms domain.FeaturePermissions) []domain.NavigationNode {
	filtered := make([]domain.NavigationNode, 0, len(tree))
	for _, node := range tree {
		if !perms.Allows(node.FeatureID) {
			continue
		}

		kept := node
		if len(node.Children) > 0 {
			kept.Children = FilterNavigationTree(node.Children, perms)
			if len(kept.Children) == 0 {
				kept.Children = nil
			}
		}
		filtered = append(filtered, kept)
	}
	return filtered
}
