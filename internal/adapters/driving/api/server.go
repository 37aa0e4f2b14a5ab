// Package api exposes the diagnosis services over a small HTTP JSON API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ports aggregates the driving port interfaces the API server needs.
type Ports struct {
	// Diagnosis performs compliance diagnoses. Required.
	Diagnosis driving.DiagnosisService

	// Comparison builds cross-market reports. Optional.
	Comparison driving.ComparisonService

	// Alternatives researches substitutes. Optional.
	Alternatives driving.AlternativesService

	// Search provides regulation text search. Optional.
	Search driving.SearchService
}

// Server serves the HTTP API.
type Server struct {
	ports *Ports
	mux   *http.ServeMux
}

// NewServer creates an API server with the given ports.
func NewServer(ports *Ports) *Server {
	s := &Server{
		ports: ports,
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /diagnose", s.handleDiagnose)
	s.mux.HandleFunc("POST /compare", s.handleCompare)
	s.mux.HandleFunc("POST /alternatives", s.handleAlternatives)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the server on addr and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// diagnoseRequest is the body of POST /diagnose.
type diagnoseRequest struct {
	// Target is the chemical name to diagnose.
	Target string `json:"target"`

	// Market is the jurisdiction code (EU, TW, US, GLOBAL).
	Market string `json:"market"`

	// Industry narrows an alternatives request. Unused by diagnose.
	Industry string `json:"industry,omitempty"`

	// Query is a free-text regulation search to run alongside.
	Query string `json:"query,omitempty"`
}

type diagnoseResponse struct {
	Diagnosis *domain.Diagnosis     `json:"diagnosis"`
	Search    []domain.SearchResult `json:"search,omitempty"`
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, errors.New("target is required"))
		return
	}
	if s.ports.Diagnosis == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("diagnosis service unavailable"))
		return
	}

	market := domain.MarketEU
	if req.Market != "" {
		parsed, err := domain.ParseMarket(req.Market)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported market %q", req.Market))
			return
		}
		market = parsed
	}
	if market == domain.MarketGlobal {
		writeError(w, http.StatusBadRequest, errors.New("use /compare for a global diagnosis"))
		return
	}

	diagnosis, err := s.ports.Diagnosis.Diagnose(r.Context(), req.Target, market)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	resp := diagnoseResponse{Diagnosis: diagnosis}

	// Optional side search over the regulation text.
	if req.Query != "" && s.ports.Search != nil {
		results, searchErr := s.ports.Search.Search(r.Context(), req.Query, domain.SearchOptions{Market: market})
		if searchErr != nil {
			logger.Warn("Diagnose side search failed: %v", searchErr)
		} else {
			resp.Search = results
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type compareRequest struct {
	Target  string   `json:"target"`
	Markets []string `json:"markets,omitempty"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, errors.New("target is required"))
		return
	}
	if s.ports.Comparison == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("comparison service unavailable"))
		return
	}

	var markets []domain.Market
	for _, raw := range req.Markets {
		market, err := domain.ParseMarket(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported market %q", raw))
			return
		}
		markets = append(markets, market)
	}

	comparison, err := s.ports.Comparison.Compare(r.Context(), req.Target, markets)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}

type alternativesRequest struct {
	Target   string `json:"target"`
	Industry string `json:"industry,omitempty"`
	Max      int    `json:"max,omitempty"`
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	var req alternativesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, errors.New("target is required"))
		return
	}
	if s.ports.Alternatives == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("alternatives service unavailable"))
		return
	}
	if req.Max <= 0 {
		req.Max = 5
	}

	report, err := s.ports.Alternatives.Research(r.Context(), req.Target, req.Industry, req.Max)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.ports.Search == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("search service unavailable"))
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}

	opts := domain.SearchOptions{}
	if raw := r.URL.Query().Get("market"); raw != "" {
		market, err := domain.ParseMarket(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported market %q", raw))
			return
		}
		opts.Market = market
	}

	results, err := s.ports.Search.Search(r.Context(), query, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the JSON shape of every non-2xx response. The status
// code is embedded so clients logging only the body keep the code.
type errorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Status: status, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrMarketUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrSearchUnavailable),
		errors.Is(err, domain.ErrPaperSearchUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
