package pomodoro

import (
	"encoding/json"
	"net/http"

	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/models"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, h.registry.Get)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, h.registry.Toggle)
}

func (h *Handler) Skip(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, h.registry.Skip)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.do(w, r, h.registry.Reset)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.do(w, r, func(userID string) TimerView {
		return h.registry.Configure(userID, s)
	})
}

func (h *Handler) do(w http.ResponseWriter, r *http.Request, op func(string) TimerView) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, op(userID))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
