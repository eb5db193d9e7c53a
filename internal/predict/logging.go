package predict

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/cropcast/internal/form"
)

// LoggingPredictor is a decorator that records every prediction request.
type LoggingPredictor struct {
	inner  Predictor
	logger *zap.Logger
}

// WithLogging wraps a Predictor with structured request logging.
func WithLogging(p Predictor, logger *zap.Logger) Predictor {
	if logger == nil {
		return p
	}
	return &LoggingPredictor{inner: p, logger: logger.Named("predict")}
}

func (l *LoggingPredictor) Predict(ctx context.Context, req form.Request) ([]Prediction, error) {
	id := RequestIDFrom(ctx, func() string { return uuid.New().String() })
	ctx = WithRequestID(ctx, id)

	start := time.Now()
	preds, err := l.inner.Predict(ctx, req)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("request_id", id),
		zap.Duration("latency", latency),
		zap.String("outcome", Kind(err)),
	}
	if err != nil {
		l.logger.Warn("prediction failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields, zap.Int("predictions", len(preds)))
	if len(preds) > 0 {
		fields = append(fields,
			zap.String("top_crop", preds[0].Crop),
			zap.Float64("top_probability", preds[0].Probability),
		)
	}
	l.logger.Info("prediction succeeded", fields...)
	return preds, nil
}
