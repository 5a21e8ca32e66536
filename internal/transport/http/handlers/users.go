package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// UserHandler exposes operator account management and feature grants.
type UserHandler struct {
	users  *usecase.UserService
	logger *zap.Logger
}

// NewUserHandler builds a new user handler instance.
func NewUserHandler(users *usecase.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// CreateUserRequest defines the account creation payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest defines the mutable account fields.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

var userErrorCases = []ErrorCase{
	{Err: usecase.ErrUserRequiredFields, Status: http.StatusBadRequest, Message: "username, email and password are required"},
	{Err: usecase.ErrUserIdentifierTaken, Status: http.StatusConflict, Message: "username or email already in use"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
}

// Create godoc
// @Summary Create an operator account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "Account"
// @Success 201 {object} Envelope{data=UserSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, OK(NewUserSummary(*user)))
}

// Update godoc
// @Summary Update an operator account
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Account changes"
// @Success 200 {object} Envelope{data=UserSummary}
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), usecase.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		Status:   domain.UserStatus(req.Status),
	})
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "user update failed")
		return
	}

	c.JSON(http.StatusOK, OK(NewUserSummary(*user)))
}

// Get godoc
// @Summary Get an operator account
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope{data=UserSummary}
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "user lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(NewUserSummary(*user)))
}

// List godoc
// @Summary List operator accounts
// @Tags Users
// @Produce json
// @Success 200 {object} Envelope{data=[]UserSummary}
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("user listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "user listing failed"))
		return
	}

	views := make([]UserSummary, 0, len(users))
	for _, user := range users {
		views = append(views, NewUserSummary(user))
	}

	c.JSON(http.StatusOK, OK(views))
}

// GrantFeature godoc
// @Summary Grant a feature to a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Param featureID path int true "Feature ID"
// @Success 200 {object} MessageResponse
// @Router /users/{id}/features/{featureID} [post]
func (h *UserHandler) GrantFeature(c *gin.Context) {
	featureID, ok := featureIDParam(c)
	if !ok {
		return
	}

	if err := h.users.GrantFeature(c.Request.Context(), c.Param("id"), featureID); err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "feature grant failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "feature granted"})
}

// RevokeFeature godoc
// @Summary Revoke a feature from a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Param featureID path int true "Feature ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/features/{featureID} [delete]
func (h *UserHandler) RevokeFeature(c *gin.Context) {
	featureID, ok := featureIDParam(c)
	if !ok {
		return
	}

	if err := h.users.RevokeFeature(c.Request.Context(), c.Param("id"), featureID); err != nil {
		RespondWithMappedError(c, err, userErrorCases, http.StatusInternalServerError, "feature revoke failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "feature revoked"})
}

func featureIDParam(c *gin.Context) (int, bool) {
	featureID, err := strconv.Atoi(c.Param("featureID"))
	if err != nil || featureID <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid featureID"))
		return 0, false
	}
	return featureID, true
}
