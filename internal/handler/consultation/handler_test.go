package consultation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbslegal/consultation-api/internal/email"
	"github.com/jbslegal/consultation-api/internal/model"
	"github.com/jbslegal/consultation-api/internal/service/booking"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
)

type fakeStore struct {
	available bool
	created   []*model.Booking
	slots     []model.AvailableSlot
}

func (f *fakeStore) Create(_ context.Context, b *model.Booking) error {
	f.created = append(f.created, b)
	return nil
}

func (f *fakeStore) CheckAvailability(_ context.Context, _, _ string) (bool, error) {
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

func setupRouter(store *fakeStore, notifier *fakeNotifier, policy booking.Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := booking.NewService(store, notifier, policy, zerolog.Nop(), nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func defaultPolicy() booking.Policy {
	return booking.Policy{EnforceFutureDate: true, CheckSlotConflict: true}
}

func postBooking(t *testing.T, r *gin.Engine, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/consultation/book", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func validPayload() map[string]string {
	return map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"whatsapp": "9876543210",
		"date":     time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		"time":     "10:00 AM",
	}
}

func TestBookConsultation(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: true, Admin: true}}
	r := setupRouter(store, notifier, defaultPolicy())

	w, resp := postBooking(t, r, validPayload())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Consultation booked successfully", resp["message"])
	assert.Regexp(t, `^CONSULT-\d+-[A-Z0-9]{9}$`, resp["bookingId"])

	sent, ok := resp["confirmationSent"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, sent["email"])
	assert.Equal(t, true, sent["adminNotified"])
}

func TestBookConsultationInvalidEmail(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: true, Admin: true}}
	r := setupRouter(store, notifier, defaultPolicy())

	payload := validPayload()
	payload["email"] = "not-an-email"
	w, resp := postBooking(t, r, payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Invalid email format", resp["message"])
	assert.Zero(t, notifier.calls, "no email dispatch should be attempted")
	assert.Empty(t, store.created)
}

func TestBookConsultationMissingFields(t *testing.T) {
	r := setupRouter(&fakeStore{available: true}, &fakeNotifier{}, defaultPolicy())

	w, resp := postBooking(t, r, map[string]string{"name": "Jane Doe"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", resp["message"])
}

func TestBookConsultationDateToday(t *testing.T) {
	r := setupRouter(&fakeStore{available: true}, &fakeNotifier{}, defaultPolicy())

	payload := validPayload()
	payload["date"] = time.Now().Format("2006-01-02")
	w, resp := postBooking(t, r, payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Date must be in the future", resp["message"])
}

func TestBookConsultationSlotConflict(t *testing.T) {
	store := &fakeStore{available: false}
	r := setupRouter(store, &fakeNotifier{}, defaultPolicy())

	w, resp := postBooking(t, r, validPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Selected slot is no longer available", resp["message"])
}

func TestBookConsultationPartialEmailFailure(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{result: email.Result{User: false, Admin: true}}
	r := setupRouter(store, notifier, defaultPolicy())

	w, resp := postBooking(t, r, validPayload())

	assert.Equal(t, http.StatusCreated, w.Code)
	sent := resp["confirmationSent"].(map[string]interface{})
	assert.Equal(t, false, sent["email"])
	assert.Equal(t, true, sent["adminNotified"])
}

func TestBookConsultationConfigurationError(t *testing.T) {
	store := &fakeStore{available: true}
	notifier := &fakeNotifier{err: apperrors.NewConfiguration("failed to configure mail transport", fmt.Errorf("invalid email service"))}
	r := setupRouter(store, notifier, defaultPolicy())

	w, resp := postBooking(t, r, validPayload())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", resp["status"])
	// Internal detail never reaches the client.
	assert.Equal(t, "Failed to create booking. Please try again.", resp["message"])
}

func TestGetAvailability(t *testing.T) {
	store := &fakeStore{slots: []model.AvailableSlot{
		{Date: "2026-09-07", Times: []string{"09:00 AM", "10:00 AM"}},
		{Date: "2026-09-08", Times: []string{"02:00 PM"}},
	}}
	r := setupRouter(store, &fakeNotifier{}, defaultPolicy())

	req := httptest.NewRequest(http.MethodGet, "/api/consultation/availability", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status         string                `json:"status"`
		AvailableSlots []model.AvailableSlot `json:"availableSlots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.AvailableSlots, 2)
	assert.Equal(t, "2026-09-07", resp.AvailableSlots[0].Date)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, resp.AvailableSlots[0].Times)
}
