// Package booking holds the BnB booking flow: a state machine over an
// ephemeral draft, with availability-gated submission and inline errors.
// Service and cleaning fees are included in the nightly rate, so the total
// stays nights x rate with no separate fee line.
package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"buckler/config"
	"buckler/models"
	"buckler/services/availability"
	"buckler/services/query"
	"buckler/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// API is the slice of the REST client the flow needs.
type API interface {
	BnbAvailability(ctx context.Context, id string, checkIn, checkOut time.Time, guests int) (models.AvailabilityResponse, error)
	CreateBooking(ctx context.Context, draft models.BookingDraft) (models.Booking, error)
}

// SuccessView carries what the confirmation screen shows after the draft is
// destroyed.
type SuccessView struct {
	Reference string
	Total     float64
	Currency  string
}

// Machine drives one booking modal instance for one listing.
type Machine struct {
	Listing models.BnbListing

	api      API
	cache    *query.Cache
	checker  *availability.Checker
	validate *validator.Validate
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	draft     models.BookingDraft
	submitErr string
	success   *SuccessView
}

// NewMachine creates the per-modal machine. Availability reads go through
// the cache keyed by the exact input tuple.
func NewMachine(api API, cache *query.Cache, listing models.BnbListing) *Machine {
	m := &Machine{
		Listing:  listing,
		api:      api,
		cache:    cache,
		validate: validator.New(),
		logger:   utils.GetLogger(),
		state:    StateCollecting,
		draft:    models.BookingDraft{ListingID: listing.ID},
	}
	m.checker = availability.NewChecker(func(ctx context.Context, p availability.Params) (bool, error) {
		key := query.Key("bnb", "avail", p.ListingID,
			p.CheckIn.Format("2006-01-02"), p.CheckOut.Format("2006-01-02"), fmt.Sprint(p.Guests))
		resp, err := query.Fetch(ctx, cache, key, config.AvailabilityStaleness(), func(ctx context.Context) (models.AvailabilityResponse, error) {
			return api.BnbAvailability(ctx, p.ListingID, p.CheckIn, p.CheckOut, p.Guests)
		})
		if err != nil {
			return false, err
		}
		return resp.Available, nil
	})
	return m
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Draft() models.BookingDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SetDates records the stay window. A complete, changed date/guest tuple
// moves the machine to CheckingAvailability on its own; no explicit user
// action starts the check.
func (m *Machine) SetDates(checkIn, checkOut time.Time) {
	m.mu.Lock()
	m.draft.CheckIn = checkIn
	m.draft.CheckOut = checkOut
	m.mu.Unlock()
	m.syncAvailability()
}

// SetGuests records the party size.
func (m *Machine) SetGuests(guests int) {
	m.mu.Lock()
	m.draft.Guests = guests
	m.mu.Unlock()
	m.syncAvailability()
}

// SetContact records the contact fields. Contact edits never reset the
// availability answer.
func (m *Machine) SetContact(name, email, phone string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.GuestName = name
	m.draft.GuestEmail = email
	m.draft.GuestPhone = phone
}

// SetSpecialRequests records the free-text request field.
func (m *Machine) SetSpecialRequests(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.SpecialRequests = s
}

func (m *Machine) syncAvailability() {
	m.mu.Lock()
	p := availability.Params{
		ListingID: m.draft.ListingID,
		CheckIn:   m.draft.CheckIn,
		CheckOut:  m.draft.CheckOut,
		Guests:    m.draft.Guests,
	}
	m.mu.Unlock()

	if !m.checker.SetParams(p) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if canTransition(m.state, StateChecking) {
		m.state = StateChecking
	}
}

// RunAvailabilityCheck performs the pending check and applies the result,
// unless a newer tuple superseded it mid-flight.
func (m *Machine) RunAvailabilityCheck(ctx context.Context) error {
	res, err := m.checker.Run(ctx)
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if res.Available == nil {
		return nil
	}
	target := StateUnavailable
	if *res.Available {
		target = StateAvailable
	}
	if canTransition(m.state, target) {
		m.state = target
	}
	return nil
}

// Availability exposes the latest applied answer.
func (m *Machine) Availability() availability.Result {
	return m.checker.Result()
}

// Nights is the computed stay length.
func (m *Machine) Nights() int {
	return m.Draft().Nights()
}

// Total is nights x nightly rate. Fees are included, not added.
func (m *Machine) Total() float64 {
	return float64(m.Nights()) * m.Listing.NightlyRate
}

// BlockingReason returns the single message explaining why submission is
// disabled, with date-order ahead of availability ahead of minimum-nights;
// the checks run in that sequence and are mutually exclusive.
func (m *Machine) BlockingReason() (string, bool) {
	m.mu.Lock()
	draft := m.draft
	state := m.state
	m.mu.Unlock()

	if state == StateSubmitting {
		return "submission in progress", false
	}
	if draft.CheckIn.IsZero() || draft.CheckOut.IsZero() {
		return "select check-in and check-out dates", false
	}
	if !draft.CheckOut.After(draft.CheckIn) {
		return "check-out must be after check-in", false
	}

	res := m.checker.Result()
	if res.Checking {
		return "checking availability", false
	}
	if res.Available == nil {
		return "availability not yet confirmed", false
	}
	if !*res.Available {
		return "selected dates are not available", false
	}

	if min := m.Listing.MinNights; min > 0 && draft.Nights() < min {
		return fmt.Sprintf("Minimum %d nights required", min), false
	}

	if err := m.validate.Struct(draft); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fieldMessage(errs[0]), false
		}
		return "required fields are missing", false
	}
	return "", true
}

// CanSubmit reports whether every submit condition holds.
func (m *Machine) CanSubmit() bool {
	_, ok := m.BlockingReason()
	return ok
}

// Submit creates the booking. On failure the machine returns to collecting
// input with the server detail surfaced inline and fields retained; on
// success the draft is destroyed and the confirmation view is populated.
func (m *Machine) Submit(ctx context.Context) (models.Booking, error) {
	if reason, ok := m.BlockingReason(); !ok {
		return models.Booking{}, fmt.Errorf("cannot submit: %s", reason)
	}

	m.mu.Lock()
	if !canTransition(m.state, StateSubmitting) {
		from := m.state
		m.mu.Unlock()
		return models.Booking{}, &TransitionError{From: from, To: StateSubmitting}
	}
	m.state = StateSubmitting
	m.submitErr = ""
	draft := m.draft
	m.mu.Unlock()

	booking, err := m.api.CreateBooking(ctx, draft)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateCollecting
		m.submitErr = err.Error()
		if apiErr, ok := err.(*utils.APIError); ok {
			m.submitErr = apiErr.Detail
		}
		m.logger.Warn("booking submission failed",
			zap.String("listingID", m.Listing.ID), zap.Error(err))
		return models.Booking{}, err
	}

	m.state = StateSucceeded
	m.success = &SuccessView{
		Reference: booking.Reference,
		Total:     booking.Total,
		Currency:  booking.Currency,
	}
	m.draft = models.BookingDraft{ListingID: m.Listing.ID}
	m.checker.Reset()

	m.cache.Invalidate("bookings:mine")
	m.cache.Invalidate(query.Key("bnb", "avail", m.Listing.ID))
	return booking, nil
}

// SubmitError is the inline server message after a failed submission.
func (m *Machine) SubmitError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitErr
}

// Success is the confirmation view, nil until the flow succeeds.
func (m *Machine) Success() *SuccessView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

// Reset returns the machine to a fresh draft, e.g. when the modal reopens.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateCollecting
	m.draft = models.BookingDraft{ListingID: m.Listing.ID}
	m.submitErr = ""
	m.success = nil
	m.checker.Reset()
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " is below the minimum"
	default:
		return field + " is invalid"
	}
}
