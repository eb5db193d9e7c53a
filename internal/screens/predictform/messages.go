package predictform

import (
	"time"

	"github.com/abhisek/cropcast/internal/predict"
)

// predictionDoneMsg carries the outcome of a Send back to the screen.
type predictionDoneMsg struct {
	Predictions []predict.Prediction
	Err         error
}

// confettiTickMsg advances the success burst one frame.
type confettiTickMsg time.Time
