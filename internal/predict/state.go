package predict

import (
	"github.com/abhisek/cropcast/internal/form"
)

// Phase is the submission lifecycle stage.
type Phase int

const (
	PhaseIdle       Phase = iota // Nothing submitted yet, or a validation error
	PhaseValidating              // Checking fields before sending
	PhaseSending                 // Request in flight; submit is disabled
	PhaseSucceeded               // Last submission returned predictions
	PhaseFailed                  // Last submission failed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSending:
		return "sending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the form and its last submission.
// Transition functions take a State and return a new one.
type State struct {
	Values      form.Values
	Predictions []Prediction
	Err         string
	Phase       Phase
}

// NewState returns the initial, empty state.
func NewState() State {
	return State{Values: form.Empty(), Phase: PhaseIdle}
}

// InFlight reports whether a submission is waiting on the service.
func (s State) InFlight() bool {
	return s.Phase == PhaseSending
}

// CanSubmit reports whether a new submission would be accepted.
func (s State) CanSubmit() bool {
	return !s.InFlight()
}

// UpdateField applies a raw edit. Rejected input leaves s untouched; an
// accepted edit clears the error. Edits are allowed while in flight.
func UpdateField(s State, f form.Field, raw string) State {
	values, ok := s.Values.Update(f, raw)
	if !ok {
		return s
	}
	s.Values = values
	s.Err = ""
	return s
}

// ResetForm clears the seven values. Predictions and the error are kept.
func ResetForm(s State) State {
	s.Values = s.Values.Reset()
	return s
}

// ClearError drops the current error message.
func ClearError(s State) State {
	s.Err = ""
	return s
}

// Begin validates the form and, if it passes, moves to PhaseSending with
// predictions and error cleared. On a validation failure the returned state
// is idle with the field message set, and err is the field error. While a
// request is in flight Begin returns ErrSubmissionInProgress and s as-is.
func Begin(s State) (State, form.Request, error) {
	if s.InFlight() {
		return s, form.Request{}, ErrSubmissionInProgress
	}

	s.Phase = PhaseValidating
	s.Predictions = nil
	s.Err = ""

	req, err := form.BuildRequest(s.Values)
	if err != nil {
		s.Phase = PhaseIdle
		s.Err = Message(err)
		return s, form.Request{}, err
	}

	s.Phase = PhaseSending
	return s, req, nil
}

// Complete records the outcome of a send. Success replaces the predictions
// wholesale; failure sets the message and leaves predictions empty.
func Complete(s State, preds []Prediction, err error) State {
	if err != nil {
		s.Phase = PhaseFailed
		s.Predictions = nil
		s.Err = Message(err)
		return s
	}

	s.Phase = PhaseSucceeded
	s.Err = ""
	s.Predictions = make([]Prediction, len(preds))
	copy(s.Predictions, preds)
	return s
}
