// Package http exposes the service over websockets and plain JSON endpoints.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/app"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// APIHandler serves the read-side endpoints: leaderboard and placement.
type APIHandler struct {
	service *app.ExamService
}

func NewAPIHandler(service *app.ExamService) *APIHandler {
	return &APIHandler{service: service}
}

type leaderboardResponse struct {
	RoleID string                  `json:"roleId"`
	Rows   []domain.LeaderboardRow `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeLeaderboard handles GET /leaderboard?roleId=&candidateId=.
func (h *APIHandler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	roleID, candidateID := r.URL.Query().Get("roleId"), r.URL.Query().Get("candidateId")
	if roleID == "" || candidateID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing roleId or candidateId"})
		return
	}

	rows, err := h.service.Leaderboard(r.Context(), roleID, candidateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{RoleID: roleID, Rows: rows})
}

// ServePlacement handles GET /placement?roleId=&candidateId=.
func (h *APIHandler) ServePlacement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	roleID, candidateID := r.URL.Query().Get("roleId"), r.URL.Query().Get("candidateId")
	if roleID == "" || candidateID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing roleId or candidateId"})
		return
	}

	report, err := h.service.Placement(r.Context(), roleID, candidateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "role not found"})
	case errors.Is(err, domain.ErrCandidateNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "candidate not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
