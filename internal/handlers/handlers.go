package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"stock-board/internal/middleware"
	"stock-board/internal/service"
	"stock-board/internal/utils"
)

// Server holds all HTTP-facing dependencies.
type Server struct {
	Service *service.Service
	Auth    *middleware.Auth
	Metrics *utils.MetricsCollector
}

// NewServer creates a new Server instance with the given components
func NewServer(svc *service.Service, auth *middleware.Auth, metrics *utils.MetricsCollector) *Server {
	return &Server{
		Service: svc,
		Auth:    auth,
		Metrics: metrics,
	}
}

// instrument wraps a handler with request counting and latency tracking.
func (s *Server) instrument(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Metrics == nil {
			next(w, r)
			return
		}
		s.Metrics.IncrementRequests()
		start := time.Now()
		next(w, r)
		s.Metrics.AddOperationLatency(operation, time.Since(start))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	if s.Metrics != nil {
		s.Metrics.IncrementErrors()
	}

	if appErr, ok := err.(*utils.AppError); ok {
		status := utils.AppErrorToHTTPStatus(appErr.Code)
		if status >= 500 {
			log.Printf("Request failed: %v", err)
		}
		s.respondJSON(w, status, map[string]string{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	log.Printf("Unexpected error: %v", err)
	s.respondJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Internal server error",
	})
}
