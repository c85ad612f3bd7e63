package modelstub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexanderramin/riceyield/internal/predict"
)

const maxBodyBytes = 1 << 20

// Server is the HTTP front of the placeholder model.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server that will listen on addr.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
	}
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until Stop. A clean shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("model_stub_listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	// An empty object is rejected like a missing body.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		respondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	req, err := decodeFeatures(raw)
	if err != nil {
		s.logger.Warn("model_stub_predict_failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "Prediction failed")
		return
	}

	y := Yield(req.FeatureSet())
	s.logger.Debug("model_stub_predict", "predicted_yield", y)
	respondJSON(w, http.StatusOK, predict.Response{PredictedYield: &y})
}

// decodeFeatures reads the full-body keys by exact name, the way the Flask
// backend does. The capitalized climate keys of the minimal body are read
// only when the lowercase ones are absent. Missing keys stay zero.
func decodeFeatures(raw map[string]json.RawMessage) (predict.FeatureRequest, error) {
	var req predict.FeatureRequest
	fields := []struct {
		dst  any
		keys []string
	}{
		{&req.TotalRainfallMm, []string{"total_rainfall_mm", "Total_Rainfall_mm"}},
		{&req.AverageTemperatureC, []string{"average_temperature_c", "Average_Temperature_C"}},
		{&req.NKgHa, []string{"n_kg_ha"}},
		{&req.PKgHa, []string{"p_kg_ha"}},
		{&req.KKgHa, []string{"k_kg_ha"}},
		{&req.Irrigation, []string{"irrigation"}},
		{&req.PestRisk, []string{"pest_risk"}},
		{&req.Clay, []string{"clay"}},
		{&req.Sand, []string{"sand"}},
		{&req.Silt, []string{"silt"}},
	}
	for _, f := range fields {
		for _, k := range f.keys {
			v, ok := raw[k]
			if !ok {
				continue
			}
			if err := json.Unmarshal(v, f.dst); err != nil {
				return predict.FeatureRequest{}, fmt.Errorf("field %s: %w", k, err)
			}
			break
		}
	}
	return req, nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
