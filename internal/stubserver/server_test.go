package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
)

var riceLike = form.Request{
	Nitrogen:    90,
	Phosphorus:  42,
	Potassium:   43,
	Temperature: 20.8,
	Humidity:    82,
	PH:          6.5,
	Rainfall:    202.9,
}

func newClient(t *testing.T, s *Server) *predict.Client {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	c, err := predict.NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func post(t *testing.T, s *Server, body string) (int, predict.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp predict.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func TestPredict_ThroughClient(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := newClient(t, New(WithLogger(zap.New(core))))

	preds, err := c.Predict(predict.WithRequestID(context.Background(), "abc-123"), riceLike)
	require.NoError(t, err)
	require.Len(t, preds, TopN)
	assert.Equal(t, "rice", preds[0].Crop)

	var sum float64
	for i, p := range preds {
		sum += p.Probability
		assert.GreaterOrEqual(t, p.Probability, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, p.Probability, preds[i-1].Probability)
		}
		assert.Equal(t, p.Probability, float64(int64(p.Probability*100+0.5))/100, "rounded to 2 decimals")
	}
	assert.LessOrEqual(t, sum, 100.05)

	served := logs.FilterMessage("prediction served").All()
	require.Len(t, served, 1)
	assert.Equal(t, "abc-123", served[0].ContextMap()["request_id"])
}

func TestPredict_Rejections(t *testing.T) {
	full := `"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.8,"humidity":82`

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"empty body", ``, http.StatusBadRequest, "No data received. Send JSON."},
		{"not json", `nitrogen=90`, http.StatusBadRequest, "No data received. Send JSON."},
		{"empty object", `{}`, http.StatusBadRequest, "No data received. Send JSON."},
		{"missing fields", `{` + full + `}`, http.StatusBadRequest, "Missing fields: ph, rainfall"},
		{"bad number", `{` + full + `,"ph":"acidic","rainfall":200}`, http.StatusBadRequest,
			"Invalid number format: could not convert string to float: 'acidic'"},
		{"null value", `{` + full + `,"ph":null,"rainfall":200}`, http.StatusInternalServerError,
			"Internal server error. Check input data."},
		{"ph out of range", `{` + full + `,"ph":3,"rainfall":200}`, http.StatusBadRequest,
			"pH must be between 4 and 9. Got 3.0."},
		{"nitrogen out of range", `{"nitrogen":350.5,"phosphorus":42,"potassium":43,"temperature":20.8,"humidity":82,"ph":6,"rainfall":200}`,
			http.StatusBadRequest, "Nitrogen must be between 0 and 300. Got 350.5."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := post(t, New(), tt.body)
			assert.Equal(t, tt.status, status)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

func TestPredict_NumericStringsAccepted(t *testing.T) {
	status, resp := post(t, New(), `{"nitrogen":"90","phosphorus":"42","potassium":"43","temperature":" 20.8 ","humidity":"82","ph":"6.5","rainfall":"202.9"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "rice", resp.Predictions[0].Crop)
}

func TestPredict_ServerErrorReachesClient(t *testing.T) {
	c := newClient(t, New())
	_, err := c.Predict(context.Background(), form.Request{Nitrogen: 1, Phosphorus: 1, Potassium: 1, Temperature: 50, Humidity: 1, PH: 6, Rainfall: 1})

	var se *predict.ServerError
	require.True(t, errors.As(err, &se), "got %T", err)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "Temperature must be between 10 and 45. Got 50.0.", predict.Message(err))
}

func TestWithoutModel(t *testing.T) {
	s := New(WithoutModel())
	c := newClient(t, s)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &predict.Health{Status: "healthy", ModelLoaded: false}, h)

	_, err = c.Predict(context.Background(), riceLike)
	assert.Equal(t, "Model not loaded. Please check server logs.", predict.Message(err))
}

func TestHealth(t *testing.T) {
	h, err := newClient(t, New()).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &predict.Health{Status: "healthy", ModelLoaded: true}, h)
}

func TestModel_NearestProfileWins(t *testing.T) {
	for _, p := range Profiles() {
		preds := NewModel(Profiles()).Predict(p.Features, 1)
		require.Len(t, preds, 1)
		assert.Equal(t, p.Crop, preds[0].Crop)
	}
}

func TestModel_EdgeCases(t *testing.T) {
	assert.Empty(t, NewModel(nil).Predict([form.NumFields]float64{}, 5))
	assert.Empty(t, NewModel(Profiles()).Predict([form.NumFields]float64{}, 0))
	assert.Len(t, NewModel(Profiles()[:3]).Predict([form.NumFields]float64{}, 5), 3)

	one := NewModel([]Profile{{Crop: "rice"}}).Predict([form.NumFields]float64{}, 5)
	assert.Equal(t, []predict.Prediction{{Crop: "rice", Probability: 100}}, one)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New().ListenAndServe(ctx, addr) }()

	c, err := predict.NewClient("http://" + addr)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := c.Health(context.Background())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
