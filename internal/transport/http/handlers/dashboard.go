package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/usecase"
)

// DashboardHandler exposes the landing screen summary.
type DashboardHandler struct {
	dashboard *usecase.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler builds a new dashboard handler instance.
func NewDashboardHandler(dashboard *usecase.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// DashboardSummaryView is the landing screen payload.
type DashboardSummaryView struct {
	TotalPatients     int               `json:"total_patients"`
	TodayAppointments []AppointmentView `json:"today_appointments"`
	DueReminders      []ReminderView    `json:"due_reminders"`
	MonthExpenseTotal float64           `json:"month_expense_total"`
}

// Summary godoc
// @Summary Dashboard summary
// @Description Patient count, today's appointments, due reminders and this
// month's expense total.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} Envelope{data=DashboardSummaryView}
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "dashboard summary failed"))
		return
	}

	appointments := make([]AppointmentView, 0, len(summary.TodayAppointments))
	for _, appointment := range summary.TodayAppointments {
		appointments = append(appointments, newAppointmentView(appointment))
	}
	reminders := make([]ReminderView, 0, len(summary.DueReminders))
	for _, reminder := range summary.DueReminders {
		reminders = append(reminders, newReminderView(reminder))
	}

	c.JSON(http.StatusOK, OK(DashboardSummaryView{
		TotalPatients:     summary.TotalPatients,
		TodayAppointments: appointments,
		DueReminders:      reminders,
		MonthExpenseTotal: summary.MonthExpenseTotal,
	}))
}
