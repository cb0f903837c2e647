package exam

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/models"
)

const examBackRoute = "/exam"

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// getUserID returns the signed-in user, or "" for anonymous quizzes.
func getUserID(r *http.Request) string {
	uid, _ := middleware.UserID(r)
	return uid
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	bank := h.manager.Bank()
	writeJSON(w, http.StatusOK, models.ExamSubjectsResponse{
		Total:    bank.Len(),
		Subjects: bank.SubjectCounts(),
	})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	// an empty body starts a random quiz
	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, err := h.manager.Create(r.Context(), getUserID(r), req.Subject)
	if err != nil {
		writeError(w, "CreateSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.Get(r.Context(), mux.Vars(r)["id"], getUserID(r))
	if err != nil {
		writeError(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Choice == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "choice is required"})
		return
	}

	view, err := h.manager.Answer(r.Context(), mux.Vars(r)["id"], getUserID(r), *req.Choice)
	if err != nil {
		writeError(w, "Answer", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.Next(r.Context(), mux.Vars(r)["id"], getUserID(r))
	if err != nil {
		writeError(w, "Next", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.Retry(r.Context(), mux.Vars(r)["id"], getUserID(r))
	if err != nil {
		writeError(w, "Retry", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) ChooseAnother(w http.ResponseWriter, r *http.Request) {
	view, err := h.manager.ChooseAnother(r.Context(), mux.Vars(r)["id"], getUserID(r))
	if err != nil {
		writeError(w, "ChooseAnother", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: "Quiz session not found", Back: examBackRoute})
	case errors.Is(err, ErrSubjectNotFound):
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: "Subject not found", Back: examBackRoute})
	case errors.Is(err, ErrInvalidChoice):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrWrongPhase), errors.Is(err, ErrNotAnswered):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[handler] %s error: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
