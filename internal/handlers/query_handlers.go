package handlers

import (
	"net/http"

	"stock-board/internal/models"
	"stock-board/internal/query"
)

// HandleQuery serves the read endpoint for one record kind. All eight kinds
// share this shape: GET with an identifying key plus optional sort_field,
// sort_order and limit, answered with a bare JSON array of sanitized records.
func (s *Server) HandleQuery(kind models.RecordKind) http.HandlerFunc {
	return s.instrument("query_"+string(kind), func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		values := r.URL.Query()
		params := query.Params{
			Key:       values.Get(query.FilterParam(kind)),
			SortField: values.Get("sort_field"),
			SortOrder: values.Get("sort_order"),
			Limit:     values.Get("limit"),
		}

		records, err := s.Service.Query(r.Context(), kind, params)
		if err != nil {
			s.respondError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, records)
	})
}
