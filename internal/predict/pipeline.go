package predict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/cropcast/internal/form"
)

// DefaultTimeout bounds a single submission when none is configured.
const DefaultTimeout = 30 * time.Second

// Confetti is the fixed configuration handed to the celebration hook.
type Confetti struct {
	ParticleCount int
	Spread        int
	OriginY       float64
}

// DefaultConfetti is the burst fired after a successful prediction.
var DefaultConfetti = Confetti{ParticleCount: 100, Spread: 70, OriginY: 0.6}

// Celebrator is an optional hook invoked once per successful submission.
type Celebrator func(Confetti)

// Pipeline drives a submission: validate, send, classify, celebrate.
// At most one request is in flight per Pipeline.
type Pipeline struct {
	predictor Predictor
	celebrate Celebrator
	logger    *zap.Logger
	timeout   time.Duration
	inflight  *semaphore.Weighted
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCelebrator installs the success hook. A nil hook is allowed.
func WithCelebrator(fn Celebrator) PipelineOption {
	return func(p *Pipeline) {
		p.celebrate = fn
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSubmitTimeout bounds each send. Zero or negative disables the bound.
func WithSubmitTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// NewPipeline creates a Pipeline around predictor.
func NewPipeline(predictor Predictor, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		predictor: predictor,
		logger:    zap.NewNop(),
		timeout:   DefaultTimeout,
		inflight:  semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send performs the network step for an already validated request. It
// returns ErrSubmissionInProgress if another Send has not finished.
func (p *Pipeline) Send(ctx context.Context, req form.Request) ([]Prediction, error) {
	if !p.inflight.TryAcquire(1) {
		return nil, ErrSubmissionInProgress
	}
	defer p.inflight.Release(1)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	preds, err := p.predictor.Predict(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && Kind(err) == "unknown" {
			err = &NetworkError{Err: ctxErr}
		}
		return nil, err
	}
	return preds, nil
}

// Finish applies the outcome to s and fires the celebration on success.
func (p *Pipeline) Finish(s State, preds []Prediction, err error) State {
	next := Complete(s, preds, err)
	if err != nil {
		p.logger.Info("submission failed",
			zap.String("kind", Kind(err)),
			zap.String("message", next.Err),
		)
		return next
	}

	p.logger.Info("submission succeeded", zap.Int("predictions", len(next.Predictions)))
	p.fireCelebration()
	return next
}

// Submit runs a full validate, send, classify cycle synchronously. The
// returned error is non-nil only when the submission was refused because
// another one is in flight; every other failure is reported in State.Err.
func (p *Pipeline) Submit(ctx context.Context, s State) (State, error) {
	sending, req, err := Begin(s)
	if err != nil {
		if errors.Is(err, ErrSubmissionInProgress) {
			return s, err
		}
		p.logger.Debug("validation failed", zap.String("message", sending.Err))
		return sending, nil
	}

	preds, err := p.Send(ctx, req)
	if errors.Is(err, ErrSubmissionInProgress) {
		return s, err
	}
	return p.Finish(sending, preds, err), nil
}

// fireCelebration calls the hook if present. The hook must never affect
// the outcome, so a panic is recovered and logged.
func (p *Pipeline) fireCelebration() {
	if p.celebrate == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("celebration hook panicked", zap.String("panic", fmt.Sprint(r)))
		}
	}()
	p.celebrate(DefaultConfetti)
}
