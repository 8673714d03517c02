package models

import "time"

// PaymentMethod selects the payment endpoint: card or mobile money.
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodMobile PaymentMethod = "mobile"
)

// CardDetails are submitted to POST /api/v1/payments/card. The gateway is
// backend-owned; these fields pass through opaquely.
type CardDetails struct {
	Number      string `json:"number" validate:"required"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required"`
	CVV         string `json:"cvv" validate:"required"`
	HolderName  string `json:"holder_name" validate:"required"`
}

// MobileDetails are submitted to POST /api/v1/payments/mobile.
type MobileDetails struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Network     string `json:"network" validate:"required"`
}

// PaymentIntent is created on booking confirmation and submitted once.
// Failed payments are not retried automatically; the user resubmits.
type PaymentIntent struct {
	Amount    float64        `json:"amount" validate:"required,gt=0"`
	Currency  string         `json:"currency" validate:"required"`
	Reference string         `json:"reference" validate:"required"` // Booking/rental reference being paid
	Method    PaymentMethod  `json:"method" validate:"required,oneof=card mobile"`
	Card      *CardDetails   `json:"card,omitempty"`
	Mobile    *MobileDetails `json:"mobile,omitempty"`
}

// PaymentResult is the backend's settlement answer.
type PaymentResult struct {
	PaymentID string    `json:"payment_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"` // e.g. "paid", "failed", "pending"
	CreatedAt time.Time `json:"created_at"`
}
