package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/security"
	"github.com/manish9869/onehealth-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers unknown accounts and wrong passwords alike
	// so responses do not leak which one it was.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrAccountInactive indicates the account exists but may not sign in.
	ErrAccountInactive = errors.New("auth: account is not active")
	// ErrRateLimited indicates too many attempts inside the window.
	ErrRateLimited = errors.New("auth: too many attempts, retry later")
	// ErrTwoFARequired indicates the account has TOTP enabled and no code was supplied.
	ErrTwoFARequired = errors.New("auth: two-factor code required")
	// ErrTwoFAInvalid indicates the supplied TOTP code did not match.
	ErrTwoFAInvalid = errors.New("auth: two-factor code invalid")
	// ErrTwoFANotEnrolled indicates verification was attempted before enrollment.
	ErrTwoFANotEnrolled = errors.New("auth: two-factor not enrolled")
	// ErrResetTokenInvalid indicates an unknown or expired reset token.
	ErrResetTokenInvalid = errors.New("auth: reset token invalid or expired")
)

// RateLimiter gates repeated attempts per subject.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
	Reset(ctx context.Context, subject string) error
}

// AuthService implements dashboard operator login, logout, password reset and
// TOTP enrollment.
type AuthService struct {
	users          port.UserRepository
	sessions       port.SessionStore
	publisher      port.EventPublisher
	tokens         *security.TokenGenerator
	passwordRules  *security.PasswordValidator
	loginLimiter   RateLimiter
	resetLimiter   RateLimiter
	logger         *zap.Logger
	issuer         string
	sessionTTL     time.Duration
	resetTokenTTL  time.Duration
	resetTokens    port.SessionStore
	now            func() time.Time
}

// AuthServiceOptions collects the wiring for NewAuthService.
type AuthServiceOptions struct {
	Users         port.UserRepository
	Sessions      port.SessionStore
	ResetTokens   port.SessionStore
	Publisher     port.EventPublisher
	Tokens        *security.TokenGenerator
	PasswordRules *security.PasswordValidator
	LoginLimiter  RateLimiter
	ResetLimiter  RateLimiter
	Logger        *zap.Logger
	Issuer        string
	SessionTTL    time.Duration
}

// NewAuthService wires the auth service.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = "onehealth-api"
	}
	return &AuthService{
		users:         opts.Users,
		sessions:      opts.Sessions,
		resetTokens:   opts.ResetTokens,
		publisher:     opts.Publisher,
		tokens:        opts.Tokens,
		passwordRules: opts.PasswordRules,
		loginLimiter:  opts.LoginLimiter,
		resetLimiter:  opts.ResetLimiter,
		logger:        opts.Logger,
		issuer:        issuer,
		sessionTTL:    sessionTTL,
		resetTokenTTL: 30 * time.Minute,
		now:           time.Now,
	}
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Identifier string
	Password   string
	TOTPCode   string
	IPAddress  *string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      domain.User
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// Login authenticates an operator, mints a signed access token and stores the
// session the access guard will check on subsequent requests.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if s.loginLimiter != nil {
		ok, err := s.loginLimiter.Allow(ctx, in.Identifier)
		if err != nil {
			s.logger.Warn("login rate limiter unavailable", zap.Error(err))
		} else if !ok {
			return nil, ErrRateLimited
		}
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, in.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := security.VerifyPassword(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	if user.Status != domain.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if user.TwoFAEnabled {
		if in.TOTPCode == "" {
			return nil, ErrTwoFARequired
		}
		if user.TwoFASecret == nil {
			return nil, ErrTwoFANotEnrolled
		}
		ok, err := security.VerifyTOTP(*user.TwoFASecret, in.TOTPCode, s.now())
		if err != nil {
			return nil, fmt.Errorf("verify totp: %w", err)
		}
		if !ok {
			return nil, ErrTwoFAInvalid
		}
	}

	sessionID := uuid.NewString()
	issuedAt := s.now().UTC()

	claims, err := security.NewAccessTokenClaims(security.AccessTokenOptions{
		UserID:    user.ID,
		SessionID: sessionID,
		Role:      user.Role,
		Issuer:    s.issuer,
		Subject:   user.ID,
		TTL:       s.sessionTTL,
		IssuedAt:  issuedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("build claims: %w", err)
	}

	token, err := s.tokens.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	session := domain.StoredSession{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		CreatedAt: issuedAt,
	}
	if err := s.sessions.Set(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	if s.loginLimiter != nil {
		if err := s.loginLimiter.Reset(ctx, in.Identifier); err != nil {
			s.logger.Warn("login rate limiter reset failed", zap.Error(err))
		}
	}

	if err := s.publisher.PublishUserLoggedIn(ctx, domain.UserLoggedInEvent{
		UserID:    user.ID,
		SessionID: sessionID,
		LoggedAt:  issuedAt,
		IPAddress: in.IPAddress,
	}); err != nil {
		s.logger.Warn("login event not published", zap.Error(err))
	}

	return &LoginResult{
		User:      *user,
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: issuedAt.Add(s.sessionTTL),
	}, nil
}

// Logout removes the stored session. Unknown sessions log out successfully.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ForgotPassword issues a short-lived reset token for the account. Unknown
// identifiers succeed silently so the endpoint cannot be used to enumerate
// accounts; the token is only delivered when the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, identifier string) (string, error) {
	if s.resetLimiter != nil {
		ok, err := s.resetLimiter.Allow(ctx, identifier)
		if err != nil {
			s.logger.Warn("reset rate limiter unavailable", zap.Error(err))
		} else if !ok {
			return "", ErrRateLimited
		}
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	token, err := security.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	record := domain.StoredSession{
		ID:        security.HashToken(token),
		UserID:    user.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.resetTokens.Set(ctx, record, s.resetTokenTTL); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and sets a new password after policy
// validation.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := s.resetTokens.Get(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("load reset token: %w", err)
	}

	if s.passwordRules != nil {
		if err := s.passwordRules.Validate(newPassword); err != nil {
			return err
		}
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, *user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// One-shot token.
	if err := s.resetTokens.Delete(ctx, security.HashToken(token)); err != nil {
		s.logger.Warn("failed to delete reset token", zap.Error(err))
	}

	return nil
}

// TwoFAEnrollment carries the secret and provisioning URI for the
// authenticator app.
type TwoFAEnrollment struct {
	Secret          string
	ProvisioningURI string
}

// EnrollTwoFA generates a TOTP secret for the user. The secret is stored
// disabled until VerifyTwoFA confirms the authenticator produces matching
// codes.
func (s *AuthService) EnrollTwoFA(ctx context.Context, userID string) (*TwoFAEnrollment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	secret, err := security.GenerateTOTPSecret()
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	if err := s.users.SetTwoFASecret(ctx, userID, secret, false); err != nil {
		return nil, fmt.Errorf("store totp secret: %w", err)
	}

	return &TwoFAEnrollment{
		Secret:          secret,
		ProvisioningURI: security.TOTPProvisioningURI("OneHealth", user.Email, secret),
	}, nil
}

// VerifyTwoFA confirms the enrollment code and switches two-factor on.
func (s *AuthService) VerifyTwoFA(ctx context.Context, userID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user.TwoFASecret == nil {
		return ErrTwoFANotEnrolled
	}

	ok, err := security.VerifyTOTP(*user.TwoFASecret, code, s.now())
	if err != nil {
		return fmt.Errorf("verify totp: %w", err)
	}
	if !ok {
		return ErrTwoFAInvalid
	}

	if err := s.users.SetTwoFASecret(ctx, userID, *user.TwoFASecret, true); err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}

	return nil
}

// DisableTwoFA clears the TOTP secret and switches two-factor off.
func (s *AuthService) DisableTwoFA(ctx context.Context, userID string) error {
	if err := s.users.SetTwoFASecret(ctx, userID, "", false); err != nil {
		return fmt.Errorf("disable totp: %w", err)
	}
	return nil
}
