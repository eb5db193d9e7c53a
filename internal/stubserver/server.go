// Package stubserver is an offline stand-in for the crop prediction service.
// It accepts the same POST /predict and GET /health contract and scores
// requests against built-in crop profiles.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
)

const maxRequestBodySize = 1 << 20

const shutdownTimeout = 5 * time.Second

// Error bodies returned to clients.
const (
	msgNoData         = "No data received. Send JSON."
	msgModelNotLoaded = "Model not loaded. Please check server logs."
	msgInternal       = "Internal server error. Check input data."
)

type Server struct {
	model       *Model
	modelLoaded bool
	logger      *zap.Logger
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithoutModel makes the server behave as if the model failed to load.
func WithoutModel() Option {
	return func(s *Server) { s.modelLoaded = false }
}

// WithProfiles replaces the built-in crop profiles.
func WithProfiles(ps []Profile) Option {
	return func(s *Server) { s.model = NewModel(ps) }
}

func New(opts ...Option) *Server {
	s := &Server{
		model:       NewModel(profiles),
		modelLoaded: true,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("stub")
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the prediction endpoints onto r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/predict", s.HandlePredict)
	r.Get("/health", s.HandleHealth)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// HandleHealth handles GET /health.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, predict.Health{Status: "healthy", ModelLoaded: s.modelLoaded})
}

// HandlePredict handles POST /predict.
//  1. Refuse when no model is loaded.
//  2. Decode a non-empty JSON object.
//  3. Require all seven fields, convert each to a number, range-check.
//  4. Score and return the top five crops.
func (s *Server) HandlePredict(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	if !s.modelLoaded {
		fail(w, http.StatusInternalServerError, msgModelNotLoaded)
		return
	}

	data, ok := decodeObject(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if !ok {
		fail(w, http.StatusBadRequest, msgNoData)
		return
	}

	features, status, msg := parseFeatures(data)
	if status != 0 {
		log.Info("rejected prediction request", zap.Int("status", status), zap.String("reason", msg))
		fail(w, status, msg)
		return
	}

	preds := s.model.Predict(features, TopN)
	if len(preds) == 0 {
		log.Error("model returned no predictions")
		fail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	log.Info("prediction served",
		zap.String("top_crop", preds[0].Crop),
		zap.Float64("top_probability", preds[0].Probability),
	)
	writeJSON(w, http.StatusOK, predict.Response{Success: true, Predictions: preds})
}

func decodeObject(body io.Reader) (map[string]any, bool) {
	raw, err := io.ReadAll(body)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// parseFeatures returns a non-zero status and message when data is rejected.
func parseFeatures(data map[string]any) ([form.NumFields]float64, int, string) {
	var x [form.NumFields]float64

	var missing []string
	for _, f := range form.Fields() {
		if _, ok := data[string(f)]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return x, http.StatusBadRequest, "Missing fields: " + strings.Join(missing, ", ")
	}

	for i, f := range form.Fields() {
		switch v := data[string(f)].(type) {
		case float64:
			x[i] = v
		case bool:
			if v {
				x[i] = 1
			}
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return x, http.StatusBadRequest, fmt.Sprintf("Invalid number format: could not convert string to float: '%s'", v)
			}
			x[i] = n
		default:
			return x, http.StatusInternalServerError, msgInternal
		}
	}

	for i, spec := range form.Specs() {
		if !spec.InRange(x[i]) {
			return x, http.StatusBadRequest, fmt.Sprintf("%s must be between %s and %s. Got %s.",
				rangeName(spec), formatBound(spec.Min), formatBound(spec.Max), formatValue(x[i]))
		}
	}
	return x, 0, ""
}

func rangeName(s form.Spec) string {
	if s.Field == form.PH {
		return "pH"
	}
	return s.Label
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatValue renders a received number the way the reference service does:
// integral values keep a trailing ".0".
func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e16:
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, predict.Response{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
