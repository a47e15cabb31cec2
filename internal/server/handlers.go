package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/progress"
)

// RunStatus records the latest snapshot for /health. It implements
// progress.Reporter and is safe for concurrent use.
type RunStatus struct {
	mu   sync.RWMutex
	last progress.Snapshot
	seen bool
}

// NewRunStatus creates an empty status.
func NewRunStatus() *RunStatus { return &RunStatus{} }

// OnSnapshot records s. The Pi value is not retained.
func (r *RunStatus) OnSnapshot(s progress.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = progress.Snapshot{Iteration: s.Iteration, Precision: s.Precision}
	r.seen = true
}

// Latest returns the last recorded snapshot and whether one was seen.
func (r *RunStatus) Latest() (progress.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.seen
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Timestamp     int64   `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Iteration     uint64  `json:"iteration"`
	Precision     uint64  `json:"precision_digits"`
	HasSnapshot   bool    `json:"has_snapshot"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleHealth reports liveness and the progress of the current run.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	last, seen := s.status.Latest()
	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().Unix(),
		UptimeSeconds: time.Since(s.started).Seconds(),
		Iteration:     last.Iteration,
		Precision:     last.Precision,
		HasSnapshot:   seen,
	})
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error reply.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
