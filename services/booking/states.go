package booking

import "fmt"

// State names one position in the booking flow.
type State string

const (
	StateCollecting  State = "collecting_input"
	StateChecking    State = "checking_availability"
	StateAvailable   State = "availability_confirmed"
	StateUnavailable State = "availability_rejected"
	StateSubmitting  State = "submitting"
	StateSucceeded   State = "succeeded"
)

// transitions is the legal-move table. Anything absent is rejected, which
// keeps states like "submitting while unavailable" unrepresentable.
var transitions = map[State][]State{
	StateCollecting:  {StateChecking, StateSubmitting},
	StateChecking:    {StateChecking, StateAvailable, StateUnavailable},
	StateAvailable:   {StateChecking, StateSubmitting},
	StateUnavailable: {StateChecking},
	StateSubmitting:  {StateSucceeded, StateCollecting},
	StateSucceeded:   {StateCollecting},
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition: %s -> %s", e.From, e.To)
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
