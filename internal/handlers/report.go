package handlers

import (
	"net/http"
	"strconv"

	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/repository"
)

type ReportHandler struct {
	repo *repository.AssessmentRepo
}

func NewReportHandler(repo *repository.AssessmentRepo) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// List returns the caller's archived assessments, newest first.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := h.repo.ListBySession(r.Context(), sessionID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL", "Failed to load reports", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"reports":    reports,
	})
}
