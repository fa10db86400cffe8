package email

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jbslegal/consultation-api/internal/model"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
	"github.com/jbslegal/consultation-api/pkg/metrics"
)

// Result reports per-recipient send success for one booking.
type Result struct {
	User  bool `json:"email"`
	Admin bool `json:"adminNotified"`
}

// Service builds and dispatches the two notification emails for a
// booking: a client confirmation and an admin alert.
type Service struct {
	cfg     Config
	factory SenderFactory
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithSenderFactory overrides transport construction, for tests.
func WithSenderFactory(f SenderFactory) Option {
	return func(s *Service) { s.factory = f }
}

func NewService(cfg Config, logger zerolog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		logger:  logger.With().Str("component", "email").Logger(),
		metrics: m,
	}
	s.factory = func() (Sender, error) { return newSMTPSender(cfg) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendConsultationEmails sends both notifications concurrently and
// reports each outcome. Transport errors are caught and logged per
// recipient; only a misconfigured provider returns an error, since no
// send can be attempted at all.
func (s *Service) SendConsultationEmails(ctx context.Context, booking *model.Booking) (Result, error) {
	sender, err := s.factory()
	if err != nil {
		return Result{}, apperrors.NewConfiguration("failed to configure mail transport", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var (
		wg  sync.WaitGroup
		res Result
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res.User = s.sendUserConfirmation(sender, booking)
	}()
	go func() {
		defer wg.Done()
		res.Admin = s.sendAdminNotification(sender, booking)
	}()
	wg.Wait()

	return res, nil
}

func (s *Service) sendUserConfirmation(sender Sender, booking *model.Booking) bool {
	body, err := renderUserConfirmation(booking)
	if err != nil {
		s.recordOutcome("user", booking, err)
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", booking.Email)
	m.SetHeader("Reply-To", s.cfg.AdminEmail)
	m.SetHeader("Subject", "Consultation Booking Confirmed – JBS Legal | Yurekh Solutions")
	m.SetBody("text/html", body)

	err = s.send(sender, m)
	s.recordOutcome("user", booking, err)
	return err == nil
}

func (s *Service) sendAdminNotification(sender Sender, booking *model.Booking) bool {
	body, err := renderAdminNotification(booking)
	if err != nil {
		s.recordOutcome("admin", booking, err)
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.AdminEmail)
	m.SetHeader("Reply-To", booking.Email)
	m.SetHeader("Subject", fmt.Sprintf("New Consultation Booking – %s", booking.Name))
	m.SetBody("text/html", body)

	err = s.send(sender, m)
	s.recordOutcome("admin", booking, err)
	return err == nil
}

func (s *Service) send(sender Sender, m *gomail.Message) error {
	start := time.Now()
	err := sender.Send(m)
	if s.metrics != nil {
		s.metrics.EmailLatency.Observe(time.Since(start).Seconds())
	}
	return err
}

func (s *Service) recordOutcome(recipient string, booking *model.Booking, err error) {
	status := "success"
	if err != nil {
		status = "failure"
		s.logger.Error().
			Err(err).
			Str("recipient", recipient).
			Str("booking_id", booking.ID).
			Msg("failed to send notification email")
	} else {
		s.logger.Info().
			Str("recipient", recipient).
			Str("booking_id", booking.ID).
			Msg("notification email sent")
	}
	if s.metrics != nil {
		s.metrics.EmailsSent.WithLabelValues(recipient, status).Inc()
	}
}
