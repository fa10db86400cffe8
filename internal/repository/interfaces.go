package repository

import (
	"context"

	"github.com/jbslegal/consultation-api/internal/model"
)

// BookingStore abstracts booking storage so a real database can be
// substituted without touching validation or notification logic.
type BookingStore interface {
	// Create records a booking and marks its slot as taken.
	Create(ctx context.Context, booking *model.Booking) error

	// CheckAvailability reports whether the (date, time) slot is still
	// open. Unknown dates are considered open; the time string is not
	// validated against the slot table.
	CheckAvailability(ctx context.Context, date, timeOfDay string) (bool, error)

	// ListAvailableSlots returns upcoming slots with their open times,
	// ordered by date.
	ListAvailableSlots(ctx context.Context) ([]model.AvailableSlot, error)
}
