package booking

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbslegal/consultation-api/internal/email"
	"github.com/jbslegal/consultation-api/internal/model"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
)

type fakeStore struct {
	available  bool
	checkCalls int
	created    []*model.Booking
	createErr  error
	slots      []model.AvailableSlot
}

func (f *fakeStore) Create(_ context.Context, b *model.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeStore) CheckAvailability(_ context.Context, _, _ string) (bool, error) {
	f.checkCalls++
	return f.available, nil
}

func (f *fakeStore) ListAvailableSlots(_ context.Context) ([]model.AvailableSlot, error) {
	return f.slots, nil
}

type fakeNotifier struct {
	result email.Result
	err    error
	calls  int
}

func (f *fakeNotifier) SendConsultationEmails(_ context.Context, _ *model.Booking) (email.Result, error) {
	f.calls++
	return f.result, f.err
}

var bookingIDPattern = regexp.MustCompile(`^CONSULT-\d+-[A-Z0-9]{9}$`)

func TestBook(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: true, Admin: true}}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: true}, zerolog.Nop(), nil)

	result, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, bookingIDPattern, result.Booking.ID)
	assert.True(t, result.Emails.User)
	assert.True(t, result.Emails.Admin)
	assert.Equal(t, 1, notifier.calls)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Jane Doe", store.created[0].Name)
}

func TestBookValidationFailureHasNoSideEffects(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: true, Admin: true}}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: true}, zerolog.Nop(), nil)

	req := validRequest()
	req.Email = "not-an-email"

	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())
	assert.Empty(t, store.created)
	assert.Zero(t, notifier.calls, "no email dispatch should be attempted")
}

func TestBookSlotConflict(t *testing.T) {
	store := &fakeStore{available: false}
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: true}, zerolog.Nop(), nil)

	_, err := svc.Book(context.Background(), validRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Selected slot is no longer available", appErr.Message)
	assert.Empty(t, store.created)
	assert.Zero(t, notifier.calls)
}

func TestBookConflictCheckDisabled(t *testing.T) {
	store := &fakeStore{available: false}
	notifier := &fakeNotifier{result: email.Result{User: true, Admin: true}}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: false}, zerolog.Nop(), nil)

	_, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Zero(t, store.checkCalls, "availability must not be consulted")
	require.Len(t, store.created, 1)
}

func TestBookPartialEmailFailureStillSucceeds(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: false, Admin: true}}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: true}, zerolog.Nop(), nil)

	result, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, result.Emails.User)
	assert.True(t, result.Emails.Admin)
}

func TestBookConfigurationErrorEscalates(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{err: apperrors.NewConfiguration("failed to configure mail transport", fmt.Errorf("invalid email service"))}
	svc := NewService(store, notifier, Policy{EnforceFutureDate: true, CheckSlotConflict: true}, zerolog.Nop(), nil)

	_, err := svc.Book(context.Background(), validRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConfiguration, appErr.Code)
}

func TestNewBookingIDFormat(t *testing.T) {
	svc := NewService(nil, nil, Policy{}, zerolog.Nop(), nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := svc.newBookingID()
		assert.Regexp(t, bookingIDPattern, id)
		seen[id] = true
	}
	// Collisions are theoretically possible but should not happen in
	// a hundred draws.
	assert.Greater(t, len(seen), 99)
}

func TestAvailableSlots(t *testing.T) {
	store := &fakeStore{slots: []model.AvailableSlot{
		{Date: "2026-09-01", Times: []string{"09:00 AM", "10:00 AM"}},
	}}
	svc := NewService(store, nil, Policy{}, zerolog.Nop(), nil)

	slots, err := svc.AvailableSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2026-09-01", slots[0].Date)
}
