package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/security"
	"github.com/manish9869/onehealth-api/internal/repository"
)

var (
	// ErrUserIdentifierTaken indicates the username or email is already in use.
	ErrUserIdentifierTaken = errors.New("user: username or email already in use")
	// ErrUserRequiredFields indicates username, email or password is missing.
	ErrUserRequiredFields = errors.New("user: username, email and password are required")
)

// UserService manages dashboard operator accounts and their feature grants.
type UserService struct {
	users         port.UserRepository
	permissions   port.FeaturePermissionRepository
	cache         port.FeaturePermissionCache
	passwordRules *security.PasswordValidator
	logger        *zap.Logger
}

// NewUserService wires the user service.
func NewUserService(
	users port.UserRepository,
	permissions port.FeaturePermissionRepository,
	cache port.FeaturePermissionCache,
	passwordRules *security.PasswordValidator,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:         users,
		permissions:   permissions,
		cache:         cache,
		passwordRules: passwordRules,
		logger:        logger,
	}
}

// CreateUserInput carries the operator account form fields.
type CreateUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

// Create registers a new operator account with a policy-checked password.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrUserRequiredFields
	}

	if s.passwordRules != nil {
		if err := s.passwordRules.Validate(in.Password); err != nil {
			return nil, err
		}
	}

	for _, identifier := range []string{username, email} {
		if existing, err := s.users.GetByUsernameOrEmail(ctx, identifier); err == nil && existing != nil {
			return nil, ErrUserIdentifierTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("check identifier: %w", err)
		}
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleStaff
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", role))
	return &user, nil
}

// UpdateUserInput carries the mutable account fields.
type UpdateUserInput struct {
	Email    string
	FullName string
	Role     string
	Status   domain.UserStatus
}

// Update rewrites the account profile.
func (s *UserService) Update(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Status != "" {
		user.Status = in.Status
	}

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get returns a single operator account.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// List returns every operator account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GrantFeature allows the user to access a feature and drops the cached
// permission map so the menu reflects the change promptly.
func (s *UserService) GrantFeature(ctx context.Context, userID string, featureID int) error {
	if err := s.permissions.Grant(ctx, userID, featureID); err != nil {
		return fmt.Errorf("grant feature %d: %w", featureID, err)
	}
	s.invalidatePermissions(ctx, userID)
	return nil
}

// RevokeFeature removes the user's access to a feature.
func (s *UserService) RevokeFeature(ctx context.Context, userID string, featureID int) error {
	if err := s.permissions.Revoke(ctx, userID, featureID); err != nil {
		return fmt.Errorf("revoke feature %d: %w", featureID, err)
	}
	s.invalidatePermissions(ctx, userID)
	return nil
}

func (s *UserService) invalidatePermissions(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("permission cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
