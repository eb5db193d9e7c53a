package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/present"
)

type stubDriver struct {
	inputs   []string
	confirms []bool
	infos    []string
	asked    []InputConfig
	inputErr error
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg)
	if d.inputErr != nil {
		return "", d.inputErr
	}
	if len(d.inputs) == 0 {
		return "", errors.New("stub: out of inputs")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func sevenAnswers(v string) []string {
	out := make([]string, form.NumFields)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSession_PrintsRankedResults(t *testing.T) {
	mock := predict.NewMockPredictor(predict.MockResponse{Predictions: []predict.Prediction{
		{Crop: "rice", Probability: 18},
		{Crop: "maize", Probability: 12},
	}})
	d := &stubDriver{inputs: sevenAnswers(" 10 ")}

	err := NewSession(d, predict.NewPipeline(mock)).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, d.asked, form.NumFields)
	assert.Equal(t, "Nitrogen (kg/ha)", d.asked[0].Message)
	assert.Equal(t, "Typical range 4 to 9", d.asked[5].Help)

	require.Len(t, d.infos, 2)
	assert.True(t, strings.HasPrefix(d.infos[0], "1st  Rice"), d.infos[0])
	assert.Contains(t, d.infos[0], "18.00%")
	assert.Contains(t, d.infos[0], "High (Strong)")
	assert.Contains(t, d.infos[1], "Medium (Moderate)")

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, 10.0, mock.Calls[0].Rainfall)
}

func TestSession_ReportsFailureAndOffersPreviousAnswers(t *testing.T) {
	mock := predict.NewMockPredictor(
		predict.MockResponse{Err: &predict.PredictionError{Message: "bad input"}},
		predict.MockResponse{Predictions: []predict.Prediction{{Crop: "jute", Probability: 40}}},
	)
	d := &stubDriver{
		inputs:   append(sevenAnswers("5"), sevenAnswers("6")...),
		confirms: []bool{true, false},
	}

	err := NewSession(d, predict.NewPipeline(mock)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "✗ bad input", d.infos[0])
	assert.Contains(t, d.infos[1], "Fiber")
	assert.Equal(t, "5", d.asked[form.NumFields].Default, "second round defaults to the last answer")
	assert.Equal(t, 2, mock.CallCount())
}

func TestSession_AbortStops(t *testing.T) {
	mock := predict.NewMockPredictor()
	d := &stubDriver{inputErr: ErrAborted}

	err := NewSession(d, predict.NewPipeline(mock)).Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 0, mock.CallCount())
}

func TestFieldValidator(t *testing.T) {
	v := FieldValidator(form.PH)

	var missing *form.MissingFieldError
	assert.True(t, errors.As(v("  "), &missing))
	assert.EqualError(t, v(""), "Please enter ph")
	assert.Error(t, v("6,5"))
	assert.Error(t, v("-1"))
	assert.NoError(t, v("6.5"))
	assert.NoError(t, v(" 7 "))
}

func TestFormatResults_Empty(t *testing.T) {
	assert.Equal(t, []string{"No predictions returned."}, FormatResults(present.Present(nil)))
}
