package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jbslegal/consultation-api/internal/model"
)

// Default consultation grid: weekdays, morning and afternoon blocks.
var defaultTimes = []string{
	"09:00 AM", "10:00 AM", "11:00 AM",
	"02:00 PM", "03:00 PM", "04:00 PM",
}

const (
	dateLayout      = "2006-01-02"
	slotWindowDays  = 14
	cleanupInterval = time.Hour
)

// Store is an in-memory BookingStore. Bookings expire after the
// configured retention, so the store never grows unbounded and a
// restart forgets everything, matching the ephemeral nature of the
// system it replaces.
type Store struct {
	bookings  *cache.Cache
	taken     *cache.Cache
	retention time.Duration
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a booking store whose entries expire after
// retention.
func NewStore(retention time.Duration, opts ...Option) *Store {
	s := &Store{
		bookings:  cache.New(retention, cleanupInterval),
		taken:     cache.New(retention, cleanupInterval),
		retention: retention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func slotKey(date, timeOfDay string) string {
	return date + "|" + timeOfDay
}

func (s *Store) Create(_ context.Context, booking *model.Booking) error {
	if booking.ID == "" {
		return fmt.Errorf("booking ID is required")
	}
	if err := s.bookings.Add(booking.ID, booking, s.retention); err != nil {
		return fmt.Errorf("booking %s already exists", booking.ID)
	}
	s.taken.Set(slotKey(booking.Date, booking.Time), booking.ID, s.retention)
	return nil
}

func (s *Store) CheckAvailability(_ context.Context, date, timeOfDay string) (bool, error) {
	_, booked := s.taken.Get(slotKey(date, timeOfDay))
	return !booked, nil
}

// ListAvailableSlots generates the upcoming weekday grid and filters
// out times already taken by a booking.
func (s *Store) ListAvailableSlots(_ context.Context) ([]model.AvailableSlot, error) {
	var slots []model.AvailableSlot

	day := s.now().AddDate(0, 0, 1)
	for i := 0; i < slotWindowDays; i++ {
		d := day.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		date := d.Format(dateLayout)
		var open []string
		for _, t := range defaultTimes {
			if _, booked := s.taken.Get(slotKey(date, t)); !booked {
				open = append(open, t)
			}
		}
		if len(open) > 0 {
			slots = append(slots, model.AvailableSlot{Date: date, Times: open})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Date < slots[j].Date })
	return slots, nil
}
