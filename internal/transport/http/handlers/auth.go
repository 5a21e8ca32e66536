package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/transport/http/middleware"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// AuthHandler exposes login, logout, password reset and two-factor endpoints.
type AuthHandler struct {
	auth     *usecase.AuthService
	notifier NotificationDispatcher
	logger   *zap.Logger
}

// NewAuthHandler builds a new auth handler instance.
func NewAuthHandler(auth *usecase.AuthService, notifier NotificationDispatcher, logger *zap.Logger) *AuthHandler {
	if notifier == nil {
		notifier = noopDispatcher{}
	}
	return &AuthHandler{auth: auth, notifier: notifier, logger: logger}
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	TOTPCode   string `json:"totp_code"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	User      UserSummary `json:"user"`
	SessionID string      `json:"session_id"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

var loginErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
	{Err: usecase.ErrAccountInactive, Status: http.StatusForbidden, Message: "account is not active"},
	{Err: usecase.ErrRateLimited, Status: http.StatusTooManyRequests, Message: "too many attempts, retry later"},
	{Err: usecase.ErrTwoFARequired, Status: http.StatusUnauthorized, Message: "two-factor code required"},
	{Err: usecase.ErrTwoFAInvalid, Status: http.StatusUnauthorized, Message: "two-factor code invalid"},
}

// Login godoc
// @Summary Operator login
// @Description Authenticates an operator and opens a dashboard session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Envelope{data=LoginResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "identifier and password are required"))
		return
	}

	ip := c.ClientIP()
	result, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		TOTPCode:   req.TOTPCode,
		IPAddress:  &ip,
	})
	if err != nil {
		RespondWithMappedError(c, err, loginErrorCases, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, OK(LoginResponse{
		User:      NewUserSummary(result.User),
		SessionID: result.SessionID,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}))
}

// Logout godoc
// @Summary Operator logout
// @Description Deletes the session backing the request.
// @Tags Auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		sessionID = c.GetHeader(middleware.SessionIDHeader)
	}

	if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "logout failed"))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// ForgotPasswordRequest defines the payload for the forgot-password endpoint.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Issues a reset token for the account. Responds identically for unknown identifiers.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account identifier"
// @Success 200 {object} MessageResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "identifier is required"))
		return
	}

	token, err := h.auth.ForgotPassword(c.Request.Context(), req.Identifier)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRateLimited, Status: http.StatusTooManyRequests, Message: "too many attempts, retry later"},
		}, http.StatusInternalServerError, "reset request failed")
		return
	}

	if token != "" {
		if err := h.notifier.SendPasswordReset(c.Request.Context(), PasswordResetNotification{
			Email:    req.Identifier,
			DevToken: token,
			Expires:  time.Now().Add(30 * time.Minute),
		}); err != nil {
			h.logger.Warn("password reset notification failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "if the account exists, a reset link has been sent"})
}

// ResetPasswordRequest defines the payload for the reset-password endpoint.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Description Consumes a reset token and sets a new password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "token and new password are required"))
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrResetTokenInvalid, Status: http.StatusBadRequest, Message: "reset token invalid or expired"},
		}, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

// TwoFAEnrollResponse carries the enrollment secret for the authenticator app.
type TwoFAEnrollResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// EnrollTwoFA godoc
// @Summary Begin two-factor enrollment
// @Description Generates a TOTP secret; enrollment completes on verification.
// @Tags Auth
// @Produce json
// @Success 200 {object} Envelope{data=TwoFAEnrollResponse}
// @Router /auth/2fa/enroll [post]
func (h *AuthHandler) EnrollTwoFA(c *gin.Context) {
	enrollment, err := h.auth.EnrollTwoFA(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "two-factor enrollment failed"))
		return
	}

	c.JSON(http.StatusOK, OK(TwoFAEnrollResponse{
		Secret:          enrollment.Secret,
		ProvisioningURI: enrollment.ProvisioningURI,
	}))
}

// TwoFAVerifyRequest defines the payload for two-factor verification.
type TwoFAVerifyRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyTwoFA godoc
// @Summary Complete two-factor enrollment
// @Description Confirms the authenticator code and switches two-factor on.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body TwoFAVerifyRequest true "Authenticator code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/2fa/verify [post]
func (h *AuthHandler) VerifyTwoFA(c *gin.Context) {
	var req TwoFAVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "code is required"))
		return
	}

	err := h.auth.VerifyTwoFA(c.Request.Context(), middleware.GetUserID(c), req.Code)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTwoFANotEnrolled, Status: http.StatusBadRequest, Message: "two-factor not enrolled"},
			{Err: usecase.ErrTwoFAInvalid, Status: http.StatusBadRequest, Message: "two-factor code invalid"},
		}, http.StatusInternalServerError, "two-factor verification failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "two-factor enabled"})
}

// DisableTwoFA godoc
// @Summary Disable two-factor
// @Description Clears the TOTP secret for the authenticated operator.
// @Tags Auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/2fa [delete]
func (h *AuthHandler) DisableTwoFA(c *gin.Context) {
	if err := h.auth.DisableTwoFA(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "two-factor disable failed"))
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "two-factor disabled"})
}
