// Package predictform is the main screen: seven measurements, a submit
// button and the ranked recommendation.
package predictform

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/screen"
	"github.com/abhisek/cropcast/internal/ui/components"
	"github.com/abhisek/cropcast/internal/ui/layout"
)

const (
	inputWidth     = 12
	confettiPeriod = 60 * time.Millisecond
)

// Screen implements screen.Screen for the prediction form.
type Screen struct {
	ctx      context.Context
	pipeline *predict.Pipeline
	confetti *components.Confetti

	state  predict.State
	inputs [form.NumFields]components.NumericInput
	focus  int
	button components.Button
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New builds the form. confetti may be nil; when set it should be the same
// burst the pipeline's celebrator fires.
func New(ctx context.Context, pipeline *predict.Pipeline, confetti *components.Confetti) *Screen {
	s := &Screen{
		ctx:      ctx,
		pipeline: pipeline,
		confetti: confetti,
		state:    predict.NewState(),
		button:   components.NewButton("Predict", "Predicting..."),
	}
	for i, spec := range form.Specs() {
		s.inputs[i] = components.NewNumericInput(spec, inputWidth)
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *Screen) Title() string {
	return "Crop Recommendation"
}

// State returns the current form snapshot.
func (s *Screen) State() predict.State {
	return s.state
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
	}
	if s.state.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Predict"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Reset"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionDoneMsg:
		return s.handleDone(msg)

	case confettiTickMsg:
		if s.confetti == nil || !s.confetti.Active() {
			return s, nil
		}
		s.confetti.Step()
		return s, confettiTick()

	case spinner.TickMsg:
		if !s.state.InFlight() {
			return s, nil
		}
		var cmd tea.Cmd
		s.button.Spinner, cmd = s.button.Spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and paste results belong to the focused input.
	return s.forward(msg)
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	case "enter":
		return s.submit()
	case "ctrl+r":
		return s, s.reset()
	}
	return s.forward(msg)
}

// forward passes msg to the focused input and mirrors its value into state.
func (s *Screen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	in := &s.inputs[s.focus]
	*in, cmd = in.Update(msg)

	field := in.Spec.Field
	if in.Value() != s.state.Values.Get(field) {
		s.state = predict.UpdateField(s.state, field, in.Value())
		// Keep the widget honest if the state refused the edit.
		if in.Value() != s.state.Values.Get(field) {
			in.SetValue(s.state.Values.Get(field))
		}
	}
	return s, cmd
}

func (s *Screen) moveFocus(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + form.NumFields) % form.NumFields
	return s.inputs[s.focus].Focus()
}

func (s *Screen) reset() tea.Cmd {
	s.state = predict.ResetForm(s.state)
	for i := range s.inputs {
		s.inputs[i].Model.Reset()
	}
	return s.moveFocus(-s.focus)
}

// submit validates and, when the form is complete, starts the request.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	next, req, err := predict.Begin(s.state)
	if err != nil {
		if errors.Is(err, predict.ErrSubmissionInProgress) {
			return s, nil
		}
		s.state = next
		return s, s.focusField(err)
	}

	s.state = next
	s.button.Busy = true
	return s, tea.Batch(s.button.Spinner.Tick, s.send(req))
}

func (s *Screen) send(req form.Request) tea.Cmd {
	ctx, p := s.ctx, s.pipeline
	return func() tea.Msg {
		preds, err := p.Send(ctx, req)
		return predictionDoneMsg{Predictions: preds, Err: err}
	}
}

func (s *Screen) handleDone(msg predictionDoneMsg) (screen.Screen, tea.Cmd) {
	s.button.Busy = false
	s.state = s.pipeline.Finish(s.state, msg.Predictions, msg.Err)
	if s.confetti != nil && s.confetti.Active() {
		return s, confettiTick()
	}
	return s, nil
}

// focusField moves focus to the field named by a validation error.
func (s *Screen) focusField(err error) tea.Cmd {
	var field form.Field
	var missing *form.MissingFieldError
	var invalid *form.InvalidFieldError
	switch {
	case errors.As(err, &missing):
		field = missing.Field
	case errors.As(err, &invalid):
		field = invalid.Field
	default:
		return nil
	}
	for i, in := range s.inputs {
		if in.Spec.Field == field && i != s.focus {
			return s.moveFocus(i - s.focus)
		}
	}
	return nil
}

func confettiTick() tea.Cmd {
	return tea.Tick(confettiPeriod, func(t time.Time) tea.Msg {
		return confettiTickMsg(t)
	})
}
