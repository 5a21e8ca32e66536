package postgres

import (
	"context"
	"errors"
	"testing"

	squirrel "github.com/Masterminds/squirrel"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/manish9869/onehealth-api/internal/repository"
)

func newPermissionRepoWithMock(t *testing.T) (*FeaturePermissionRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	repo := &FeaturePermissionRepository{
		exec:    mock,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	return repo, mock
}

func TestFeaturePermissionRepository_ListByUser(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	rows := pgxmock.NewRows([]string{"feature_id"}).
		AddRow(1).
		AddRow(15).
		AddRow(22)

	mock.ExpectQuery(`SELECT feature_id FROM onehealth\.user_feature_permissions`).
		WithArgs("user-1").
		WillReturnRows(rows)

	perms, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(perms) != 3 {
		t.Fatalf("expected three grants, got %d: %+v", len(perms), perms)
	}
	for _, featureID := range []int{1, 15, 22} {
		if !perms.Allows(featureID) {
			t.Errorf("feature %d not granted", featureID)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeaturePermissionRepository_ListByUserEmpty(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	mock.ExpectQuery(`SELECT feature_id FROM onehealth\.user_feature_permissions`).
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"feature_id"}))

	perms, err := repo.ListByUser(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if perms == nil {
		t.Fatal("expected empty non-nil map for user without grants")
	}
	if len(perms) != 0 {
		t.Fatalf("expected no grants, got %+v", perms)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeaturePermissionRepository_Grant(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO onehealth\.user_feature_permissions`).
		WithArgs("user-1", 7).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Grant(context.Background(), "user-1", 7); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeaturePermissionRepository_GrantTwiceIsNoop(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	// ON CONFLICT DO NOTHING reports zero affected rows; Grant still succeeds.
	mock.ExpectExec(`INSERT INTO onehealth\.user_feature_permissions`).
		WithArgs("user-1", 7).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	if err := repo.Grant(context.Background(), "user-1", 7); err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeaturePermissionRepository_Revoke(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	// squirrel orders Eq keys alphabetically: feature_id before user_id.
	mock.ExpectExec(`DELETE FROM onehealth\.user_feature_permissions`).
		WithArgs(7, "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Revoke(context.Background(), "user-1", 7); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeaturePermissionRepository_RevokeMissing(t *testing.T) {
	repo, mock := newPermissionRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM onehealth\.user_feature_permissions`).
		WithArgs(99, "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Revoke(context.Background(), "user-1", 99)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want repository.ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
