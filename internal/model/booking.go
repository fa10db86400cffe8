package model

import "time"

// BookingRequest is a consultation booking submission. Fields are
// passed through to notifications exactly as received; validation
// happens in the booking service.
type BookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Booking is a confirmed consultation booking.
type Booking struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	WhatsApp  string    `json:"whatsapp"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// AvailableSlot is a bookable date with its open times, in display order.
type AvailableSlot struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
