package booking

import (
	"regexp"
	"time"

	"github.com/jbslegal/consultation-api/internal/model"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Validate checks a booking submission. Rules run in order and stop
// at the first failure; validated strings are passed downstream
// unchanged. The future-date rule only applies when the policy
// enables it.
func (s *Service) Validate(req *model.BookingRequest) error {
	if req.Name == "" || req.Email == "" || req.WhatsApp == "" || req.Date == "" || req.Time == "" {
		return apperrors.NewValidation("Missing required fields")
	}

	if !emailPattern.MatchString(req.Email) {
		return apperrors.NewValidation("Invalid email format")
	}

	if len(nonDigit.ReplaceAllString(req.WhatsApp, "")) < 10 {
		return apperrors.NewValidation("Invalid WhatsApp number")
	}

	if s.policy.EnforceFutureDate && !s.isFutureDate(req.Date) {
		return apperrors.NewValidation("Date must be in the future")
	}

	return nil
}

// isFutureDate reports whether date parses and resolves strictly
// after the current moment. An unparseable date cannot be in the
// future.
func (s *Service) isFutureDate(date string) bool {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.After(s.now())
		}
	}
	return false
}
