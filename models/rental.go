package models

import "time"

// Driver holds the driver details collected in step two of the rental wizard.
type Driver struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	License string `json:"license" validate:"required"`
}

// RentalDraft is the ephemeral form state for an in-progress car rental.
// Created when the booking modal opens, reset on success or close.
type RentalDraft struct {
	VehicleID       string    `json:"vehicle_id" validate:"required"`
	PickupDate      time.Time `json:"pickup_date" validate:"required"`
	ReturnDate      time.Time `json:"return_date" validate:"required"`
	PickupLocation  string    `json:"pickup_location" validate:"required"`
	ReturnLocation  string    `json:"return_location" validate:"required"`
	Driver          Driver    `json:"driver"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

// Days computes the rental length as ceil((returnDate - pickupDate) / 1 day).
func (d RentalDraft) Days() int {
	if d.PickupDate.IsZero() || d.ReturnDate.IsZero() {
		return 0
	}
	diff := d.ReturnDate.Sub(d.PickupDate)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Rental is a confirmed rental record returned by the backend.
type Rental struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	VehicleID  string    `json:"vehicle_id"`
	UserID     string    `json:"user_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
