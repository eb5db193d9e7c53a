package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/present"
)

// Session walks the seven fields, submits, and prints the ranked result.
type Session struct {
	driver   Driver
	pipeline *predict.Pipeline
}

func NewSession(d Driver, p *predict.Pipeline) *Session {
	return &Session{driver: d, pipeline: p}
}

// Run loops until the user declines another prediction or aborts. Previous
// answers are offered as defaults on the next round.
func (s *Session) Run(ctx context.Context) error {
	state := predict.NewState()
	for {
		var err error
		state, err = s.fill(ctx, state)
		if err != nil {
			return err
		}

		state, err = s.pipeline.Submit(ctx, state)
		if err != nil {
			return err
		}
		if err := s.report(ctx, state); err != nil {
			return err
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Predict again?", Default: true})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) fill(ctx context.Context, state predict.State) (predict.State, error) {
	for _, spec := range form.Specs() {
		raw, err := s.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("%s (%s)", spec.Label, spec.Unit),
			Default:   state.Values.Get(spec.Field),
			Help:      fmt.Sprintf("Typical range %g to %g", spec.Min, spec.Max),
			Validator: FieldValidator(spec.Field),
		})
		if err != nil {
			return state, err
		}
		state = predict.UpdateField(state, spec.Field, strings.TrimSpace(raw))
	}
	return state, nil
}

func (s *Session) report(ctx context.Context, state predict.State) error {
	if state.Err != "" {
		return s.driver.Info(ctx, "✗ "+state.Err)
	}
	for _, line := range FormatResults(present.Present(state.Predictions)) {
		if err := s.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// FieldValidator rejects blank answers and anything the form's numeric
// filter would drop.
func FieldValidator(f form.Field) func(string) error {
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return &form.MissingFieldError{Field: f}
		}
		if !form.Accepts(raw) {
			return fmt.Errorf("%s accepts digits and one decimal point only", f)
		}
		return nil
	}
}

// FormatResults renders one line per ranked row.
func FormatResults(rows []present.RankedView) []string {
	if len(rows) == 0 {
		return []string{"No predictions returned."}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%-4s %-12s %-12s %6.2f%%  %s (%s)",
			r.RankLabel, r.DisplayName, r.Crop, r.Probability, r.Tier, r.Tier.Badge()))
	}
	return out
}
