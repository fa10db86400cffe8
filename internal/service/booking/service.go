package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jbslegal/consultation-api/internal/email"
	"github.com/jbslegal/consultation-api/internal/model"
	"github.com/jbslegal/consultation-api/internal/repository"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
	"github.com/jbslegal/consultation-api/pkg/metrics"
)

// Policy holds the booking rules the two predecessor backends
// disagreed on. Each toggle is independent.
type Policy struct {
	EnforceFutureDate bool
	CheckSlotConflict bool
}

// Notifier dispatches the per-booking notification emails.
type Notifier interface {
	SendConsultationEmails(ctx context.Context, booking *model.Booking) (email.Result, error)
}

// Result is the outcome of a successful booking.
type Result struct {
	Booking *model.Booking
	Emails  email.Result
}

// Service owns the consultation booking flow: validation, reference
// generation, slot bookkeeping and notification dispatch.
type Service struct {
	store    repository.BookingStore
	notifier Notifier
	policy   Policy
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store repository.BookingStore, notifier Notifier, policy Policy, logger zerolog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		policy:   policy,
		logger:   logger.With().Str("component", "booking").Logger(),
		metrics:  m,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book runs the full flow for one submission. Validation and conflict
// failures return before any side effect; email outcomes degrade the
// result flags but never fail the booking.
func (s *Service) Book(ctx context.Context, req *model.BookingRequest) (*Result, error) {
	if err := s.Validate(req); err != nil {
		s.countFailure("validation")
		return nil, err
	}

	if s.policy.CheckSlotConflict {
		available, err := s.store.CheckAvailability(ctx, req.Date, req.Time)
		if err != nil {
			s.countFailure("internal")
			return nil, apperrors.NewInternal(fmt.Errorf("failed to check availability: %w", err))
		}
		if !available {
			s.countFailure("conflict")
			return nil, apperrors.NewConflict("Selected slot is no longer available")
		}
	}

	booking := &model.Booking{
		ID:        s.newBookingID(),
		Name:      req.Name,
		Email:     req.Email,
		WhatsApp:  req.WhatsApp,
		Date:      req.Date,
		Time:      req.Time,
		CreatedAt: s.now(),
	}

	if err := s.store.Create(ctx, booking); err != nil {
		s.countFailure("internal")
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create booking: %w", err))
	}

	emails, err := s.notifier.SendConsultationEmails(ctx, booking)
	if err != nil {
		s.countFailure("configuration")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("email", booking.Email).
		Str("date", booking.Date).
		Str("time", booking.Time).
		Bool("user_email_sent", emails.User).
		Bool("admin_email_sent", emails.Admin).
		Msg("booking created")

	return &Result{Booking: booking, Emails: emails}, nil
}

// AvailableSlots returns the upcoming open slots.
func (s *Service) AvailableSlots(ctx context.Context) ([]model.AvailableSlot, error) {
	slots, err := s.store.ListAvailableSlots(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list available slots: %w", err))
	}
	return slots, nil
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newBookingID produces CONSULT-<epoch millis>-<9-char base36>. The
// reference is display-only; it carries no uniqueness guarantee and
// is never used for lookup.
func (s *Service) newBookingID() string {
	suffix := make([]byte, 9)
	rand.Read(suffix)
	for i, b := range suffix {
		suffix[i] = base36[int(b)%len(base36)]
	}
	return fmt.Sprintf("CONSULT-%d-%s", s.now().UnixMilli(), suffix)
}

func (s *Service) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.BookingsFailed.WithLabelValues(reason).Inc()
	}
}
