package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/NikitaCOEUR/skycast/internal/serrors"
	"github.com/NikitaCOEUR/skycast/internal/weather"
)

type searchResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type currentResponse struct {
	Query   string            `json:"query"`
	Weather *weather.Snapshot `json:"weather"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) < s.threshold {
		writeJSON(w, http.StatusOK, searchResponse{Query: q, Suggestions: []string{}})
		return
	}

	names, err := s.lookup.Suggest(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Suggestions: names})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	snap, err := s.lookup.Current(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, currentResponse{Query: q, Weather: snap})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// statusFor maps typed errors to HTTP statuses
func statusFor(err error) int {
	var (
		apiErr    *serrors.APIError
		decodeErr *serrors.DecodeError
		validErr  *serrors.ValidationError
	)
	switch {
	case errors.As(err, &apiErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	case errors.As(err, &validErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.log.Warn().
		Str("request_id", r.Header.Get(RequestIDHeader)).
		Str("path", r.URL.Path).
		Int("status", status).
		Err(err).
		Msg("Request failed")
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: serrors.CodeOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
