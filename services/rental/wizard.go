// Package rental drives the car rental flow: an ordered three-step wizard
// (dates/location, driver details, confirmation) followed by a separate
// payment submission. The BnB flow folds fees into the booking itself; cars
// keep payment as its own step, a deliberate product difference.
package rental

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"buckler/config"
	"buckler/models"
	"buckler/services/availability"
	"buckler/services/query"
	"buckler/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Step is the wizard position. Forward navigation is blocked until the
// current step validates.
type Step int

const (
	StepDates Step = iota + 1
	StepDriver
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepDates:
		return "dates"
	case StepDriver:
		return "driver"
	case StepConfirm:
		return "confirmation"
	}
	return "unknown"
}

// ErrPaymentAlreadySubmitted guards the submit-once payment rule.
var ErrPaymentAlreadySubmitted = errors.New("payment already submitted")

// API is the slice of the REST client the wizard needs.
type API interface {
	VehicleAvailability(ctx context.Context, id string, pickup, ret time.Time) (models.AvailabilityResponse, error)
	CreateRental(ctx context.Context, draft models.RentalDraft) (models.Rental, error)
	ProcessPayment(ctx context.Context, intent models.PaymentIntent) (models.PaymentResult, error)
}

// Wizard is one rental modal instance for one vehicle.
type Wizard struct {
	Vehicle models.Vehicle

	id       string
	api      API
	cache    *query.Cache
	checker  *availability.Checker
	validate *validator.Validate
	logger   *zap.Logger

	mu          sync.Mutex
	step        Step
	draft       models.RentalDraft
	rental      *models.Rental
	payment     *models.PaymentResult
	payInFlight bool
}

// NewWizard creates the per-modal wizard at step one.
func NewWizard(api API, cache *query.Cache, vehicle models.Vehicle) *Wizard {
	w := &Wizard{
		Vehicle:  vehicle,
		id:       uuid.New().String(),
		api:      api,
		cache:    cache,
		validate: validator.New(),
		logger:   utils.GetLogger(),
		step:     StepDates,
		draft:    models.RentalDraft{VehicleID: vehicle.ID},
	}
	w.checker = availability.NewChecker(func(ctx context.Context, p availability.Params) (bool, error) {
		key := query.Key("cars", "avail", p.ListingID,
			p.CheckIn.Format("2006-01-02"), p.CheckOut.Format("2006-01-02"))
		resp, err := query.Fetch(ctx, cache, key, config.AvailabilityStaleness(), func(ctx context.Context) (models.AvailabilityResponse, error) {
			return api.VehicleAvailability(ctx, p.ListingID, p.CheckIn, p.CheckOut)
		})
		if err != nil {
			return false, err
		}
		return resp.Available, nil
	})
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Draft() models.RentalDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDates records the rental window and triggers an availability check when
// the tuple is complete.
func (w *Wizard) SetDates(pickup, ret time.Time) {
	w.mu.Lock()
	w.draft.PickupDate = pickup
	w.draft.ReturnDate = ret
	vehicleID := w.draft.VehicleID
	w.mu.Unlock()

	w.checker.SetParams(availability.Params{
		ListingID: vehicleID,
		CheckIn:   pickup,
		CheckOut:  ret,
		Guests:    1, // party size is not a rental input
	})
}

// SetLocations records pickup and return locations.
func (w *Wizard) SetLocations(pickup, ret string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.PickupLocation = pickup
	w.draft.ReturnLocation = ret
}

// SetDriver records the driver details collected in step two.
func (w *Wizard) SetDriver(d models.Driver) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Driver = d
}

// SetSpecialRequests records the free-text request field.
func (w *Wizard) SetSpecialRequests(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.SpecialRequests = s
}

// RunAvailabilityCheck performs the pending check for the current dates.
func (w *Wizard) RunAvailabilityCheck(ctx context.Context) error {
	_, err := w.checker.Run(ctx)
	return err
}

// Availability exposes the latest applied answer.
func (w *Wizard) Availability() availability.Result {
	return w.checker.Result()
}

// Days is the computed rental length.
func (w *Wizard) Days() int {
	return w.Draft().Days()
}

// Total is days x daily rate.
func (w *Wizard) Total() float64 {
	return float64(w.Days()) * w.Vehicle.DailyRate
}

// Next advances the wizard. The step does not advance when the current
// step's requirements fail; the returned error names the blocker.
func (w *Wizard) Next() error {
	w.mu.Lock()
	step := w.step
	draft := w.draft
	w.mu.Unlock()

	switch step {
	case StepDates:
		if err := w.validateDates(draft); err != nil {
			return err
		}
	case StepDriver:
		if err := w.validate.Struct(draft.Driver); err != nil {
			return fmt.Errorf("driver details incomplete: %w", err)
		}
	case StepConfirm:
		return errors.New("already at confirmation; submit instead")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == step {
		w.step++
	}
	return nil
}

// Back returns to the previous step. Always allowed; entered fields are kept.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepDates {
		w.step--
	}
}

func (w *Wizard) validateDates(draft models.RentalDraft) error {
	if draft.PickupDate.IsZero() || draft.ReturnDate.IsZero() {
		return errors.New("select pickup and return dates")
	}
	if !draft.ReturnDate.After(draft.PickupDate) {
		return errors.New("return date must be after pickup date")
	}
	if draft.PickupLocation == "" || draft.ReturnLocation == "" {
		return errors.New("select pickup and return locations")
	}
	res := w.checker.Result()
	if res.Checking {
		return errors.New("checking availability")
	}
	if res.Available == nil {
		return errors.New("availability not yet confirmed")
	}
	if !*res.Available {
		return errors.New("vehicle is not available for the selected dates")
	}
	return nil
}

// Confirm submits the rental from the confirmation step. Failure keeps the
// wizard at confirmation with fields retained; success records the rental
// and invalidates dependent reads.
func (w *Wizard) Confirm(ctx context.Context) (models.Rental, error) {
	w.mu.Lock()
	if w.step != StepConfirm {
		step := w.step
		w.mu.Unlock()
		return models.Rental{}, fmt.Errorf("cannot confirm from step %s", step)
	}
	if w.rental != nil {
		w.mu.Unlock()
		return models.Rental{}, errors.New("rental already confirmed")
	}
	draft := w.draft
	w.mu.Unlock()

	rental, err := w.api.CreateRental(ctx, draft)
	if err != nil {
		w.logger.Warn("rental confirmation failed",
			zap.String("wizardID", w.id), zap.String("vehicleID", w.Vehicle.ID), zap.Error(err))
		return models.Rental{}, err
	}

	w.mu.Lock()
	w.rental = &rental
	w.mu.Unlock()

	w.cache.Invalidate("rentals:mine")
	w.cache.Invalidate(query.Key("cars", "avail", w.Vehicle.ID))
	return rental, nil
}

// SubmitPayment pays for the confirmed rental. The intent is submitted once;
// a failed payment surfaces inline and waits for the user to resubmit.
func (w *Wizard) SubmitPayment(ctx context.Context, method models.PaymentMethod, card *models.CardDetails, mobile *models.MobileDetails) (models.PaymentResult, error) {
	w.mu.Lock()
	if w.rental == nil {
		w.mu.Unlock()
		return models.PaymentResult{}, errors.New("confirm the rental before paying")
	}
	if w.payment != nil || w.payInFlight {
		w.mu.Unlock()
		return models.PaymentResult{}, ErrPaymentAlreadySubmitted
	}
	w.payInFlight = true
	intent := models.PaymentIntent{
		Amount:    w.rental.Total,
		Currency:  w.rental.Currency,
		Reference: w.rental.Reference,
		Method:    method,
		Card:      card,
		Mobile:    mobile,
	}
	w.mu.Unlock()

	if err := w.validate.Struct(intent); err != nil {
		w.mu.Lock()
		w.payInFlight = false
		w.mu.Unlock()
		return models.PaymentResult{}, fmt.Errorf("invalid payment details: %w", err)
	}

	result, err := w.api.ProcessPayment(ctx, intent)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.payInFlight = false
	if err != nil {
		w.logger.Warn("payment failed", zap.String("reference", intent.Reference), zap.Error(err))
		return models.PaymentResult{}, err
	}
	w.payment = &result
	return result, nil
}

// Rental returns the confirmed rental, nil before confirmation.
func (w *Wizard) Rental() *models.Rental {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rental
}

// Payment returns the settlement result, nil until payment succeeds.
func (w *Wizard) Payment() *models.PaymentResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

// Reset destroys the draft, e.g. on success or modal close.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDates
	w.draft = models.RentalDraft{VehicleID: w.Vehicle.ID}
	w.rental = nil
	w.payment = nil
	w.payInFlight = false
	w.checker.Reset()
}
