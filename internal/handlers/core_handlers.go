package handlers

import (
	"net/http"
)

// HandleHealth reports liveness plus request counters when metrics are on.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{
			"status": "ok",
		}
		if s.Metrics != nil {
			requests, errors, uptime := s.Metrics.Snapshot()
			payload["requests"] = requests
			payload["errors"] = errors
			payload["uptime_seconds"] = int64(uptime.Seconds())
		}
		s.respondJSON(w, http.StatusOK, payload)
	}
}
