package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// StaffHandler exposes the staff roster endpoints.
type StaffHandler struct {
	staff  *usecase.StaffService
	logger *zap.Logger
}

// NewStaffHandler builds a new staff handler instance.
func NewStaffHandler(staff *usecase.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{staff: staff, logger: logger}
}

// StaffRequest defines the staff member payload.
type StaffRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Mobile      string `json:"mobile"`
	Designation string `json:"designation"`
}

// StaffView is the API representation of a staff member.
type StaffView struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile,omitempty"`
	Designation string    `json:"designation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var staffErrorCases = []ErrorCase{
	{Err: usecase.ErrStaffRequiredFields, Status: http.StatusBadRequest, Message: "full name and email are required"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "staff member not found"},
}

// Create godoc
// @Summary Add a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body StaffRequest true "Staff member"
// @Success 201 {object} Envelope{data=StaffView}
// @Failure 400 {object} ErrorResponse
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	input, ok := bindStaff(c)
	if !ok {
		return
	}

	member, err := h.staff.Create(c.Request.Context(), *input)
	if err != nil {
		RespondWithMappedError(c, err, staffErrorCases, http.StatusInternalServerError, "staff create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newStaffView(*member)))
}

// Update godoc
// @Summary Update a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path int true "Staff ID"
// @Param request body StaffRequest true "Staff member"
// @Success 200 {object} Envelope{data=StaffView}
// @Failure 404 {object} ErrorResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := bindStaff(c)
	if !ok {
		return
	}

	member, err := h.staff.Update(c.Request.Context(), staffID, *input)
	if err != nil {
		RespondWithMappedError(c, err, staffErrorCases, http.StatusInternalServerError, "staff update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newStaffView(*member)))
}

// Delete godoc
// @Summary Remove a staff member
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.staff.Delete(c.Request.Context(), staffID); err != nil {
		RespondWithMappedError(c, err, staffErrorCases, http.StatusInternalServerError, "staff delete failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "staff member removed"})
}

// Get godoc
// @Summary Get a staff member
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} Envelope{data=StaffView}
// @Failure 404 {object} ErrorResponse
// @Router /staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	member, err := h.staff.Get(c.Request.Context(), staffID)
	if err != nil {
		RespondWithMappedError(c, err, staffErrorCases, http.StatusInternalServerError, "staff lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newStaffView(*member)))
}

// List godoc
// @Summary List staff members
// @Tags Staff
// @Produce json
// @Success 200 {object} Envelope{data=[]StaffView}
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	members, err := h.staff.List(c.Request.Context())
	if err != nil {
		h.logger.Error("staff listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "staff listing failed"))
		return
	}

	views := make([]StaffView, 0, len(members))
	for _, member := range members {
		views = append(views, newStaffView(member))
	}

	c.JSON(http.StatusOK, OK(views))
}

func bindStaff(c *gin.Context) (*usecase.StaffInput, bool) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid staff payload"))
		return nil, false
	}
	return &usecase.StaffInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Designation: req.Designation,
	}, true
}

func newStaffView(member domain.StaffMember) StaffView {
	return StaffView{
		ID:          member.ID,
		FullName:    member.FullName,
		Email:       member.Email,
		Mobile:      member.Mobile,
		Designation: member.Designation,
		CreatedAt:   member.CreatedAt,
		UpdatedAt:   member.UpdatedAt,
	}
}
