package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// UserRepository deals with dashboard operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	SetTwoFASecret(ctx context.Context, userID, secret string, enabled bool) error
}
