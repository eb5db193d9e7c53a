package predict

import (
	"context"

	"github.com/abhisek/cropcast/internal/form"
)

// Predictor submits a request to the prediction service and returns the
// ranked predictions. Errors are one of *ServerError, *PredictionError or
// *NetworkError.
type Predictor interface {
	Predict(ctx context.Context, req form.Request) ([]Prediction, error)
}

// Prediction is a single (crop, probability) pair. Probability is a
// percentage in [0,100]; the value comes from the service and is not trusted.
type Prediction struct {
	Crop        string  `json:"crop"`
	Probability float64 `json:"probability"`
}

// Response is the body returned by POST /predict.
type Response struct {
	Success     bool         `json:"success"`
	Predictions []Prediction `json:"predictions,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Health is the body returned by GET /health.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
