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

// AppointmentHandler exposes the scheduling endpoints.
type AppointmentHandler struct {
	appointments *usecase.AppointmentService
	patients     *usecase.PatientService
	staff        *usecase.StaffService
	notifier     NotificationDispatcher
	logger       *zap.Logger
}

// NewAppointmentHandler builds a new appointment handler instance.
func NewAppointmentHandler(
	appointments *usecase.AppointmentService,
	patients *usecase.PatientService,
	staff *usecase.StaffService,
	notifier NotificationDispatcher,
	logger *zap.Logger,
) *AppointmentHandler {
	if notifier == nil {
		notifier = noopDispatcher{}
	}
	return &AppointmentHandler{
		appointments: appointments,
		patients:     patients,
		staff:        staff,
		notifier:     notifier,
		logger:       logger,
	}
}

// AppointmentRequest defines the booking payload.
type AppointmentRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	StaffID   int64     `json:"staff_id" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
	Notes     *string   `json:"notes"`
}

// RescheduleRequest defines the new window for an existing booking.
type RescheduleRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// AppointmentStatusRequest defines the status transition payload.
type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentView is the API representation of an appointment.
type AppointmentView struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	StaffID   int64     `json:"staff_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var appointmentErrorCases = []ErrorCase{
	{Err: usecase.ErrAppointmentWindow, Status: http.StatusBadRequest, Message: "end must be after start"},
	{Err: usecase.ErrStaffDoubleBooked, Status: http.StatusConflict, Message: "staff member is already booked in this window"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "appointment not found"},
}

// Book godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body AppointmentRequest true "Booking"
// @Success 201 {object} Envelope{data=AppointmentView}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid appointment payload"))
		return
	}

	appointment, err := h.appointments.Book(c.Request.Context(), usecase.AppointmentInput{
		PatientID: req.PatientID,
		StaffID:   req.StaffID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Notes:     req.Notes,
	})
	if err != nil {
		RespondWithMappedError(c, err, appointmentErrorCases, http.StatusInternalServerError, "appointment booking failed")
		return
	}

	h.sendConfirmation(c, *appointment)

	c.JSON(http.StatusCreated, OK(newAppointmentView(*appointment)))
}

// sendConfirmation dispatches the booking confirmation. Lookup or dispatch
// failures are logged and never fail the booking.
func (h *AppointmentHandler) sendConfirmation(c *gin.Context, appointment domain.Appointment) {
	ctx := c.Request.Context()

	patient, err := h.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		h.logger.Warn("confirmation skipped: patient lookup failed",
			zap.Int64("patient_id", appointment.PatientID), zap.Error(err))
		return
	}

	staffName := ""
	if member, err := h.staff.Get(ctx, appointment.StaffID); err == nil {
		staffName = member.FullName
	}

	if err := h.notifier.SendAppointmentConfirmation(ctx, AppointmentNotification{
		PatientEmail:  patient.Email,
		PatientMobile: patient.Mobile,
		StaffName:     staffName,
		StartsAt:      appointment.StartsAt,
	}); err != nil {
		h.logger.Warn("appointment confirmation not dispatched",
			zap.Int64("appointment_id", appointment.ID), zap.Error(err))
	}
}

// Reschedule godoc
// @Summary Reschedule an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body RescheduleRequest true "New window"
// @Success 200 {object} Envelope{data=AppointmentView}
// @Failure 409 {object} ErrorResponse
// @Router /appointments/{id}/reschedule [put]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid reschedule payload"))
		return
	}

	appointment, err := h.appointments.Reschedule(c.Request.Context(), appointmentID, req.StartsAt, req.EndsAt)
	if err != nil {
		RespondWithMappedError(c, err, appointmentErrorCases, http.StatusInternalServerError, "appointment reschedule failed")
		return
	}

	c.JSON(http.StatusOK, OK(newAppointmentView(*appointment)))
}

// SetStatus godoc
// @Summary Transition an appointment status
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body AppointmentStatusRequest true "New status"
// @Success 200 {object} Envelope{data=AppointmentView}
// @Failure 400 {object} ErrorResponse
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "status is required"))
		return
	}

	status := domain.AppointmentStatus(req.Status)
	switch status {
	case domain.AppointmentBooked, domain.AppointmentCompleted, domain.AppointmentCancelled:
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown status"))
		return
	}

	appointment, err := h.appointments.SetStatus(c.Request.Context(), appointmentID, status)
	if err != nil {
		RespondWithMappedError(c, err, appointmentErrorCases, http.StatusInternalServerError, "status update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newAppointmentView(*appointment)))
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.appointments.Cancel(c.Request.Context(), appointmentID); err != nil {
		RespondWithMappedError(c, err, appointmentErrorCases, http.StatusInternalServerError, "appointment cancel failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "appointment cancelled"})
}

// Get godoc
// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} Envelope{data=AppointmentView}
// @Failure 404 {object} ErrorResponse
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.appointments.Get(c.Request.Context(), appointmentID)
	if err != nil {
		RespondWithMappedError(c, err, appointmentErrorCases, http.StatusInternalServerError, "appointment lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newAppointmentView(*appointment)))
}

// Schedule godoc
// @Summary List appointments in a window
// @Description Defaults to the next seven days when no window is given.
// @Tags Appointments
// @Produce json
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Success 200 {object} Envelope{data=[]AppointmentView}
// @Router /appointments [get]
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	from, to, ok := scheduleWindow(c)
	if !ok {
		return
	}

	appointments, err := h.appointments.Schedule(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("schedule listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "schedule listing failed"))
		return
	}

	views := make([]AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		views = append(views, newAppointmentView(appointment))
	}

	c.JSON(http.StatusOK, OK(views))
}

func scheduleWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "from must be RFC 3339"))
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "to must be RFC 3339"))
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	return from, to, true
}

func newAppointmentView(appointment domain.Appointment) AppointmentView {
	return AppointmentView{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		StaffID:   appointment.StaffID,
		StartsAt:  appointment.StartsAt,
		EndsAt:    appointment.EndsAt,
		Status:    string(appointment.Status),
		Notes:     appointment.Notes,
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}
}
