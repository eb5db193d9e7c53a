package predict

import (
	"errors"
	"fmt"

	"github.com/abhisek/cropcast/internal/form"
)

// ErrSubmissionInProgress is returned when a submission is attempted while
// another one is still waiting on the service.
var ErrSubmissionInProgress = errors.New("a prediction request is already in flight")

// genericPredictionFailure is shown when the service gives no reason.
const genericPredictionFailure = "Prediction failed"

// networkFailureMessage is shown when the request never completed.
const networkFailureMessage = "Network error: is the prediction service running?"

// ServerError indicates the service answered with a non-2xx status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// PredictionError indicates a 2xx response that was unsuccessful or whose
// body did not match the response contract.
type PredictionError struct {
	Message string
	Err     error
}

func (e *PredictionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericPredictionFailure
}

func (e *PredictionError) Unwrap() error { return e.Err }

// NetworkError indicates the request could not complete (connection
// failure, timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return "network error"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Message maps any pipeline error to the single line shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var missing *form.MissingFieldError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	var invalid *form.InvalidFieldError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}
	var srv *ServerError
	if errors.As(err, &srv) {
		return srv.Error()
	}
	var pred *PredictionError
	if errors.As(err, &pred) {
		return pred.Error()
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return networkFailureMessage
	}
	if errors.Is(err, ErrSubmissionInProgress) {
		return "Please wait for the current prediction to finish"
	}

	return genericPredictionFailure
}

// Kind returns a short label for err, used in logs.
func Kind(err error) string {
	var (
		missing *form.MissingFieldError
		invalid *form.InvalidFieldError
		srv     *ServerError
		pred    *PredictionError
		netErr  *NetworkError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &invalid):
		return "invalid_field"
	case errors.As(err, &srv):
		return "server"
	case errors.As(err, &pred):
		return "prediction"
	case errors.As(err, &netErr):
		return "network"
	case errors.Is(err, ErrSubmissionInProgress):
		return "in_flight"
	default:
		return "unknown"
	}
}
