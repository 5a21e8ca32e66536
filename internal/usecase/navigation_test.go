package usecase

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
)

type stubPermissionRepo struct {
	listByUser func(ctx context.Context, userID string) (domain.FeaturePermissions, error)
	grant      func(ctx context.Context, userID string, featureID int) error
	revoke     func(ctx context.Context, userID string, featureID int) error
}

func (s *stubPermissionRepo) ListByUser(ctx context.Context, userID string) (domain.FeaturePermissions, error) {
	if s.listByUser == nil {
		panic("unexpected ListByUser call")
	}
	return s.listByUser(ctx, userID)
}

func (s *stubPermissionRepo) Grant(ctx context.Context, userID string, featureID int) error {
	if s.grant == nil {
		panic("unexpected Grant call")
	}
	return s.grant(ctx, userID, featureID)
}

func (s *stubPermissionRepo) Revoke(ctx context.Context, userID string, featureID int) error {
	if s.revoke == nil {
		panic("unexpected Revoke call")
	}
	return s.revoke(ctx, userID, featureID)
}

type stubPermissionCache struct {
	get        func(ctx context.Context, userID string) (domain.FeaturePermissions, error)
	set        func(ctx context.Context, userID string, perms domain.FeaturePermissions) error
	invalidate func(ctx context.Context, userID string) error
}

func (s *stubPermissionCache) Get(ctx context.Context, userID string) (domain.FeaturePermissions, error) {
	if s.get == nil {
		panic("unexpected cache Get call")
	}
	return s.get(ctx, userID)
}

func (s *stubPermissionCache) Set(ctx context.Context, userID string, perms domain.FeaturePermissions) error {
	if s.set == nil {
		panic("unexpected cache Set call")
	}
	return s.set(ctx, userID, perms)
}

func (s *stubPermissionCache) Invalidate(ctx context.Context, userID string) error {
	if s.invalidate == nil {
		panic("unexpected cache Invalidate call")
	}
	return s.invalidate(ctx, userID)
}

func TestFilterNavigationTreeNilPermissions(t *testing.T) {
	filtered := FilterNavigationTree(domain.DefaultNavigationTree(), nil)
	if len(filtered) != 0 {
		t.Fatalf("nil permissions kept %d nodes, want 0", len(filtered))
	}
}

func TestFilterNavigationTreeIndependentGating(t *testing.T) {
	perms := domain.FeaturePermissions{
		domain.FeatureDashboard:      true,
		domain.FeatureFinancialGroup: true,
		domain.FeatureInvoices:       true,
		// Expenses denied: financial keeps only the invoices child.
		// Customers granted but the customer group is denied, so the
		// whole branch disappears.
		domain.FeatureCustomers: true,
	}

	filtered := FilterNavigationTree(domain.DefaultNavigationTree(), perms)

	if len(filtered) != 2 {
		t.Fatalf("kept %d top-level nodes, want 2: %+v", len(filtered), filtered)
	}
	if filtered[0].FeatureID != domain.FeatureDashboard {
		t.Errorf("first node = %d, want dashboard (order preserved)", filtered[0].FeatureID)
	}
	financial := filtered[1]
	if financial.FeatureID != domain.FeatureFinancialGroup {
		t.Fatalf("second node = %d, want financial group", financial.FeatureID)
	}
	if len(financial.Children) != 1 || financial.Children[0].FeatureID != domain.FeatureInvoices {
		t.Errorf("financial children = %+v, want only invoices", financial.Children)
	}
}

func TestFilterNavigationTreeParentWithoutGrantedChildren(t *testing.T) {
	perms := domain.FeaturePermissions{domain.FeatureMasterDataGroup: true}

	filtered := FilterNavigationTree(domain.DefaultNavigationTree(), perms)

	if len(filtered) != 1 {
		t.Fatalf("kept %d nodes, want 1", len(filtered))
	}
	if filtered[0].Children != nil {
		t.Errorf("parent with no granted children must have nil children, got %+v", filtered[0].Children)
	}
}

func TestFilterNavigationTreeIdempotent(t *testing.T) {
	perms := domain.FeaturePermissions{
		domain.FeatureDashboard:     true,
		domain.FeatureCustomerGroup: true,
		domain.FeatureCaseHistory:   true,
		domain.FeatureReminders:     true,
	}

	once := FilterNavigationTree(domain.DefaultNavigationTree(), perms)
	twice := FilterNavigationTree(once, perms)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestFilterNavigationTreeDoesNotMutateInput(t *testing.T) {
	tree := domain.DefaultNavigationTree()
	before := domain.DefaultNavigationTree()

	FilterNavigationTree(tree, domain.FeaturePermissions{domain.FeatureFinancialGroup: true})

	if !reflect.DeepEqual(tree, before) {
		t.Error("input tree was mutated by filtering")
	}
}

func TestPermissionsForCacheMiss(t *testing.T) {
	var cached domain.FeaturePermissions
	repoCalled := false

	repo := &stubPermissionRepo{
		listByUser: func(_ context.Context, userID string) (domain.FeaturePermissions, error) {
			repoCalled = true
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			return domain.FeaturePermissions{domain.FeatureDashboard: true}, nil
		},
	}
	cache := &stubPermissionCache{
		get: func(context.Context, string) (domain.FeaturePermissions, error) {
			return nil, repository.ErrNotFound
		},
		set: func(_ context.Context, _ string, perms domain.FeaturePermissions) error {
			cached = perms
			return nil
		},
	}

	svc := NewNavigationService(repo, cache, zap.NewNop())
	perms, err := svc.PermissionsFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PermissionsFor: %v", err)
	}
	if !repoCalled {
		t.Fatal("repository not consulted on cache miss")
	}
	if !perms.Allows(domain.FeatureDashboard) {
		t.Error("loaded permissions missing dashboard grant")
	}
	if cached == nil {
		t.Error("loaded permissions not written back to cache")
	}
}

func TestPermissionsForCacheHitSkipsRepository(t *testing.T) {
	cache := &stubPermissionCache{
		get: func(context.Context, string) (domain.FeaturePermissions, error) {
			return domain.FeaturePermissions{domain.FeatureStaff: true}, nil
		},
	}

	// Repository stub with nil funcs: any call panics the test.
	svc := NewNavigationService(&stubPermissionRepo{}, cache, zap.NewNop())
	perms, err := svc.PermissionsFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PermissionsFor: %v", err)
	}
	if !perms.Allows(domain.FeatureStaff) {
		t.Error("cached permissions not returned")
	}
}

func TestPermissionsForNoGrantsYieldsEmptyMap(t *testing.T) {
	repo := &stubPermissionRepo{
		listByUser: func(context.Context, string) (domain.FeaturePermissions, error) {
			return nil, nil
		},
	}
	cache := &stubPermissionCache{
		get: func(context.Context, string) (domain.FeaturePermissions, error) {
			return nil, repository.ErrNotFound
		},
		set: func(context.Context, string, domain.FeaturePermissions) error {
			return nil
		},
	}

	svc := NewNavigationService(repo, cache, zap.NewNop())
	perms, err := svc.PermissionsFor(context.Background(), "u2")
	if err != nil {
		t.Fatalf("PermissionsFor: %v", err)
	}
	if perms == nil {
		t.Fatal("permissions map is nil, want empty map")
	}
	if len(perms) != 0 {
		t.Errorf("permissions = %+v, want empty", perms)
	}
}

func TestMenuForFiltersTree(t *testing.T) {
	cache := &stubPermissionCache{
		get: func(context.Context, string) (domain.FeaturePermissions, error) {
			return domain.FeaturePermissions{domain.FeatureReminders: true}, nil
		},
	}

	svc := NewNavigationService(&stubPermissionRepo{}, cache, zap.NewNop())
	menu, err := svc.MenuFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("MenuFor: %v", err)
	}
	if len(menu) != 1 || menu[0].FeatureID != domain.FeatureReminders {
		t.Errorf("menu = %+v, want only reminders", menu)
	}
}
