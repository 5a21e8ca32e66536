package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// DashboardService aggregates the numbers shown on the landing screen.
type DashboardService struct {
	patients     port.PatientRepository
	appointments port.AppointmentRepository
	reminders    port.ReminderRepository
	expenses     port.ExpenseRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewDashboardService wires the dashboard service.
func NewDashboardService(
	patients port.PatientRepository,
	appointments port.AppointmentRepository,
	reminders port.ReminderRepository,
	expenses port.ExpenseRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		patients:     patients,
		appointments: appointments,
		reminders:    reminders,
		expenses:     expenses,
		logger:       logger,
		now:          time.Now,
	}
}

// DashboardSummary is the landing screen payload.
type DashboardSummary struct {
	TotalPatients     int
	TodayAppointments []domain.Appointment
	DueReminders      []domain.Reminder
	MonthExpenseTotal float64
}

// Summary collects patient, appointment, reminder and expense figures for the
// current day and month.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := s.now().UTC()

	total, err := s.patients.Count(ctx, port.PatientFilter{})
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	appointments, err := s.appointments.ListBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	reminders, err := s.reminders.ListDueBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	expenses, err := s.expenses.ListBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	var expenseTotal float64
	for _, expense := range expenses {
		expenseTotal += expense.Amount
	}

	return &DashboardSummary{
		TotalPatients:     total,
		TodayAppointments: appointments,
		DueReminders:      reminders,
		MonthExpenseTotal: domain.RoundMoney(expenseTotal),
	}, nil
}
