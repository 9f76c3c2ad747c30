package api

import (
	"net/http"

	"github.com/qarzdaftar/qarzdaftar/internal/middleware"
)

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
