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

// ReminderHandler exposes the patient reminder endpoints.
type ReminderHandler struct {
	reminders *usecase.ReminderService
	logger    *zap.Logger
}

// NewReminderHandler builds a new reminder handler instance.
func NewReminderHandler(reminders *usecase.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, logger: logger}
}

// ReminderRequest defines the reminder payload.
type ReminderRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	Note      *string   `json:"note"`
	DueAt     time.Time `json:"due_at" binding:"required"`
}

// ReminderView is the API representation of a reminder.
type ReminderView struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	Title     string    `json:"title"`
	Note      *string   `json:"note,omitempty"`
	DueAt     time.Time `json:"due_at"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var reminderErrorCases = []ErrorCase{
	{Err: usecase.ErrReminderTitleRequired, Status: http.StatusBadRequest, Message: "title is required"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "reminder not found"},
}

// Schedule godoc
// @Summary Schedule a reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param request body ReminderRequest true "Reminder"
// @Success 201 {object} Envelope{data=ReminderView}
// @Failure 400 {object} ErrorResponse
// @Router /reminders [post]
func (h *ReminderHandler) Schedule(c *gin.Context) {
	input, ok := bindReminder(c)
	if !ok {
		return
	}

	reminder, err := h.reminders.Schedule(c.Request.Context(), *input)
	if err != nil {
		RespondWithMappedError(c, err, reminderErrorCases, http.StatusInternalServerError, "reminder create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newReminderView(*reminder)))
}

// Update godoc
// @Summary Update a reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param id path int true "Reminder ID"
// @Param request body ReminderRequest true "Reminder"
// @Success 200 {object} Envelope{data=ReminderView}
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	reminderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := bindReminder(c)
	if !ok {
		return
	}

	reminder, err := h.reminders.Update(c.Request.Context(), reminderID, *input)
	if err != nil {
		RespondWithMappedError(c, err, reminderErrorCases, http.StatusInternalServerError, "reminder update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newReminderView(*reminder)))
}

// MarkDone godoc
// @Summary Mark a reminder as handled
// @Tags Reminders
// @Produce json
// @Param id path int true "Reminder ID"
// @Success 200 {object} Envelope{data=ReminderView}
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{id}/done [put]
func (h *ReminderHandler) MarkDone(c *gin.Context) {
	reminderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reminder, err := h.reminders.MarkDone(c.Request.Context(), reminderID)
	if err != nil {
		RespondWithMappedError(c, err, reminderErrorCases, http.StatusInternalServerError, "reminder update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newReminderView(*reminder)))
}

// Delete godoc
// @Summary Remove a reminder
// @Tags Reminders
// @Produce json
// @Param id path int true "Reminder ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	reminderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reminders.Delete(c.Request.Context(), reminderID); err != nil {
		RespondWithMappedError(c, err, reminderErrorCases, http.StatusInternalServerError, "reminder delete failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "reminder removed"})
}

// List godoc
// @Summary List reminders
// @Description Returns every reminder, soonest due first. Pass due=true for
// only the undone reminders whose due date has arrived.
// @Tags Reminders
// @Produce json
// @Param due query bool false "Only due reminders"
// @Success 200 {object} Envelope{data=[]ReminderView}
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	var (
		reminders []domain.Reminder
		err       error
	)
	if c.Query("due") == "true" {
		reminders, err = h.reminders.Due(c.Request.Context())
	} else {
		reminders, err = h.reminders.List(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("reminder listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "reminder listing failed"))
		return
	}

	views := make([]ReminderView, 0, len(reminders))
	for _, reminder := range reminders {
		views = append(views, newReminderView(reminder))
	}

	c.JSON(http.StatusOK, OK(views))
}

func bindReminder(c *gin.Context) (*usecase.ReminderInput, bool) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid reminder payload"))
		return nil, false
	}
	return &usecase.ReminderInput{
		PatientID: req.PatientID,
		Title:     req.Title,
		Note:      req.Note,
		DueAt:     req.DueAt,
	}, true
}

func newReminderView(reminder domain.Reminder) ReminderView {
	return ReminderView{
		ID:        reminder.ID,
		PatientID: reminder.PatientID,
		Title:     reminder.Title,
		Note:      reminder.Note,
		DueAt:     reminder.DueAt,
		Done:      reminder.Done,
		CreatedAt: reminder.CreatedAt,
		UpdatedAt: reminder.UpdatedAt,
	}
}
