package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

var (
	// ErrAppointmentWindow indicates the end does not follow the start.
	ErrAppointmentWindow = errors.New("appointment: end must be after start")
	// ErrStaffDoubleBooked indicates the staff member already has an
	// overlapping appointment.
	ErrStaffDoubleBooked = errors.New("appointment: staff member is already booked in this window")
)

// AppointmentService books and manages appointments with a double-booking
// check per staff member.
type AppointmentService struct {
	appointments port.AppointmentRepository
	publisher    port.EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewAppointmentService wires the appointment service.
func NewAppointmentService(appointments port.AppointmentRepository, publisher port.EventPublisher, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// AppointmentInput carries the booking form fields.
type AppointmentInput struct {
	PatientID int64
	StaffID   int64
	StartsAt  time.Time
	EndsAt    time.Time
	Notes     *string
}

// Book creates an appointment after verifying the window and the staff
// member's availability, then publishes the booked event.
func (s *AppointmentService) Book(ctx context.Context, in AppointmentInput) (*domain.Appointment, error) {
	if !in.EndsAt.After(in.StartsAt) {
		return nil, ErrAppointmentWindow
	}

	appointment := domain.Appointment{
		PatientID: in.PatientID,
		StaffID:   in.StaffID,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		Status:    domain.AppointmentBooked,
		Notes:     in.Notes,
	}

	if err := s.ensureAvailable(ctx, appointment, 0); err != nil {
		return nil, err
	}

	id, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	appointment.ID = id

	if err := s.publisher.PublishAppointmentBooked(ctx, domain.AppointmentBookedEvent{
		AppointmentID: id,
		PatientID:     in.PatientID,
		StaffID:       in.StaffID,
		StartsAt:      in.StartsAt,
		BookedAt:      s.now().UTC(),
	}); err != nil {
		s.logger.Warn("appointment booked event not published", zap.Int64("appointment_id", id), zap.Error(err))
	}

	return &appointment, nil
}

// Reschedule moves an appointment to a new window, re-checking availability.
func (s *AppointmentService) Reschedule(ctx context.Context, appointmentID int64, startsAt, endsAt time.Time) (*domain.Appointment, error) {
	if !endsAt.After(startsAt) {
		return nil, ErrAppointmentWindow
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.StartsAt = startsAt
	appointment.EndsAt = endsAt

	if err := s.ensureAvailable(ctx, *appointment, appointmentID); err != nil {
		return nil, err
	}

	if err := s.appointments.Update(ctx, *appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// SetStatus transitions the appointment status.
func (s *AppointmentService) SetStatus(ctx context.Context, appointmentID int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Status = status
	if err := s.appointments.Update(ctx, *appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// Cancel removes an appointment from the schedule.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID int64) error {
	return s.appointments.Delete(ctx, appointmentID)
}

// Get returns a single appointment.
func (s *AppointmentService) Get(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	return s.appointments.GetByID(ctx, appointmentID)
}

// Schedule returns every appointment overlapping the window.
func (s *AppointmentService) Schedule(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	return s.appointments.ListBetween(ctx, from, to)
}

// ensureAvailable rejects windows colliding with the staff member's existing
// bookings. ignoreID skips the appointment being rescheduled.
func (s *AppointmentService) ensureAvailable(ctx context.Context, candidate domain.Appointment, ignoreID int64) error {
	existing, err := s.appointments.ListByStaffBetween(ctx, candidate.StaffID, candidate.StartsAt, candidate.EndsAt)
	if err != nil {
		return fmt.Errorf("check staff availability: %w", err)
	}

	for _, other := range existing {
		if other.ID == ignoreID || other.Status == domain.AppointmentCancelled {
			continue
		}
		if candidate.Overlaps(other) {
			return ErrStaffDoubleBooked
		}
	}
	return nil
}
