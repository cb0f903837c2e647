package gpa

import (
	"encoding/json"
	"net/http"

	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/validation"
)

type CalculateRequest struct {
	Courses []Course `json:"courses" validate:"dive"`
}

type ScaleResponse struct {
	Grades     []Grade `json:"grades"`
	MinCredits int     `json:"min_credits"`
	MaxCredits int     `json:"max_credits"`
}

type Handler struct {
	validator *validation.Validator
}

func NewHandler(v *validation.Validator) *Handler {
	return &Handler{validator: v}
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Calculate(req.Courses))
}

func (h *Handler) GetScale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ScaleResponse{Grades: Scale, MinCredits: MinCredits, MaxCredits: MaxCredits})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
