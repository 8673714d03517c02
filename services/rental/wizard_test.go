package rental

import (
	"context"
	"sync"
	"testing"
	"time"

	"buckler/models"
	"buckler/services/query"
	"buckler/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRentalAPI struct {
	mu           sync.Mutex
	available    bool
	createErr    error
	payErr       error
	payCalls     int
	createdDraft *models.RentalDraft
}

func (f *fakeRentalAPI) VehicleAvailability(ctx context.Context, id string, pickup, ret time.Time) (models.AvailabilityResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.AvailabilityResponse{Available: f.available}, nil
}

func (f *fakeRentalAPI) CreateRental(ctx context.Context, draft models.RentalDraft) (models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdDraft = &draft
	if f.createErr != nil {
		return models.Rental{}, f.createErr
	}
	return models.Rental{
		ID:        "r1",
		Reference: "RNT-2001",
		VehicleID: draft.VehicleID,
		Total:     float64(draft.Days()) * 85,
		Currency:  "USD",
		Status:    "confirmed",
	}, nil
}

func (f *fakeRentalAPI) ProcessPayment(ctx context.Context, intent models.PaymentIntent) (models.PaymentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payCalls++
	if f.payErr != nil {
		return models.PaymentResult{}, f.payErr
	}
	return models.PaymentResult{PaymentID: "p1", Reference: intent.Reference, Status: "paid"}, nil
}

func testVehicle() models.Vehicle {
	return models.Vehicle{ID: "v1", Make: "Toyota", Model: "RAV4", DailyRate: 85, Currency: "USD"}
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func validDriver() models.Driver {
	return models.Driver{Name: "Jane Doe", Phone: "+254700000000", License: "DL-99881"}
}

func card() *models.CardDetails {
	return &models.CardDetails{Number: "4242424242424242", ExpiryMonth: 9, ExpiryYear: 2027, CVV: "123", HolderName: "Jane Doe"}
}

// advance fills step one and moves to the driver step.
func advanceToDriver(t *testing.T, w *Wizard) {
	t.Helper()
	w.SetDates(day(10), day(13))
	w.SetLocations("Airport", "Airport")
	require.NoError(t, w.RunAvailabilityCheck(context.Background()))
	require.NoError(t, w.Next())
}

func TestWizardStartsAtDates(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	assert.Equal(t, StepDates, w.Step())
}

func TestNextBlockedUntilAvailabilityConfirmed(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	w.SetDates(day(10), day(13))
	w.SetLocations("Airport", "Airport")

	// Check is pending; the answer is not in yet.
	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, StepDates, w.Step())

	require.NoError(t, w.RunAvailabilityCheck(context.Background()))
	require.NoError(t, w.Next())
	assert.Equal(t, StepDriver, w.Step())
}

func TestNextBlockedWhenVehicleUnavailable(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: false}, query.NewCache(), testVehicle())
	w.SetDates(day(10), day(13))
	w.SetLocations("Airport", "Airport")
	require.NoError(t, w.RunAvailabilityCheck(context.Background()))

	err := w.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
	assert.Equal(t, StepDates, w.Step())
}

func TestNextBlockedOnBadDateOrder(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	w.SetDates(day(13), day(10))
	w.SetLocations("Airport", "Airport")

	err := w.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "return date must be after pickup date")
}

func TestDriverStepRequiresAllFields(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	advanceToDriver(t, w)

	w.SetDriver(models.Driver{Name: "Jane Doe"}) // phone and license missing
	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, StepDriver, w.Step())

	w.SetDriver(validDriver())
	require.NoError(t, w.Next())
	assert.Equal(t, StepConfirm, w.Step())
}

func TestBackAlwaysAllowedAndKeepsFields(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	advanceToDriver(t, w)
	w.SetDriver(validDriver())

	w.Back()
	assert.Equal(t, StepDates, w.Step())
	assert.Equal(t, "Jane Doe", w.Draft().Driver.Name)

	w.Back() // already at the first step
	assert.Equal(t, StepDates, w.Step())
}

func TestDaysComputation(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	w.SetDates(day(10), day(13))

	assert.Equal(t, 3, w.Days())
	assert.Equal(t, 255.0, w.Total())
}

func TestConfirmOnlyFromConfirmationStep(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	_, err := w.Confirm(context.Background())
	require.Error(t, err)
}

func TestFullFlowConfirmAndPay(t *testing.T) {
	api := &fakeRentalAPI{available: true}
	w := NewWizard(api, query.NewCache(), testVehicle())
	advanceToDriver(t, w)
	w.SetDriver(validDriver())
	require.NoError(t, w.Next())

	rental, err := w.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RNT-2001", rental.Reference)
	assert.Equal(t, 255.0, rental.Total)

	result, err := w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	require.NoError(t, err)
	assert.Equal(t, "paid", result.Status)
	assert.Equal(t, "RNT-2001", result.Reference)
	assert.Equal(t, 1, api.payCalls)
}

func TestPaymentRequiresConfirmedRental(t *testing.T) {
	w := NewWizard(&fakeRentalAPI{available: true}, query.NewCache(), testVehicle())
	_, err := w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	require.Error(t, err)
}

func TestPaymentSubmittedOnce(t *testing.T) {
	api := &fakeRentalAPI{available: true}
	w := NewWizard(api, query.NewCache(), testVehicle())
	advanceToDriver(t, w)
	w.SetDriver(validDriver())
	require.NoError(t, w.Next())
	_, err := w.Confirm(context.Background())
	require.NoError(t, err)

	_, err = w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	require.NoError(t, err)

	_, err = w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	assert.ErrorIs(t, err, ErrPaymentAlreadySubmitted)
	assert.Equal(t, 1, api.payCalls)
}

func TestFailedPaymentCanBeResubmitted(t *testing.T) {
	api := &fakeRentalAPI{available: true, payErr: &utils.APIError{Status: 402, Detail: "card declined"}}
	w := NewWizard(api, query.NewCache(), testVehicle())
	advanceToDriver(t, w)
	w.SetDriver(validDriver())
	require.NoError(t, w.Next())
	_, err := w.Confirm(context.Background())
	require.NoError(t, err)

	_, err = w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	require.Error(t, err)
	assert.Nil(t, w.Payment())

	api.mu.Lock()
	api.payErr = nil
	api.mu.Unlock()
	result, err := w.SubmitPayment(context.Background(), models.MethodCard, card(), nil)
	require.NoError(t, err)
	assert.Equal(t, "paid", result.Status)
	assert.Equal(t, 2, api.payCalls)
}

func TestResetClearsEverything(t *testing.T) {
	api := &fakeRentalAPI{available: true}
	w := NewWizard(api, query.NewCache(), testVehicle())
	advanceToDriver(t, w)
	w.SetDriver(validDriver())
	require.NoError(t, w.Next())
	_, err := w.Confirm(context.Background())
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, StepDates, w.Step())
	assert.Nil(t, w.Rental())
	assert.Empty(t, w.Draft().Driver.Name)
	assert.Nil(t, w.Availability().Available)
}
