package models

import "time"

// BookingDraft is the ephemeral form state for an in-progress BnB booking.
// It exists per modal instance and is destroyed on success or close.
type BookingDraft struct {
	ListingID       string    `json:"listing_id" validate:"required"`
	CheckIn         time.Time `json:"check_in" validate:"required"`
	CheckOut        time.Time `json:"check_out" validate:"required"`
	Guests          int       `json:"guests" validate:"required,min=1"`
	GuestName       string    `json:"guest_name" validate:"required"`
	GuestEmail      string    `json:"guest_email" validate:"required,email"`
	GuestPhone      string    `json:"guest_phone" validate:"required"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

// Nights computes the stay length as ceil((checkOut - checkIn) / 1 day).
// Zero is returned while either date is unset.
func (d BookingDraft) Nights() int {
	if d.CheckIn.IsZero() || d.CheckOut.IsZero() {
		return 0
	}
	diff := d.CheckOut.Sub(d.CheckIn)
	if diff <= 0 {
		return 0
	}
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// Booking is a confirmed booking record returned by the backend.
type Booking struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"` // Human-facing confirmation reference
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Guests    int       `json:"guests"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"` // e.g. "confirmed", "pending"
	CreatedAt time.Time `json:"created_at"`
}

// AvailabilityResponse is the backend's answer to an availability read.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}
