package userdata

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/validation"
)

type Handler struct {
	service   *Service
	validator *validation.Validator
}

func NewHandler(service *Service, v *validation.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

type BookmarksResponse struct {
	Bookmarks []string `json:"bookmarks"`
}

type NotesResponse struct {
	Notes []models.Note `json:"notes"`
}

type HistoryResponse struct {
	History []models.ExamRecord `json:"history"`
}

type CoursesResponse struct {
	Courses []string `json:"courses"`
}

type ClearCompletedResponse struct {
	Removed int `json:"removed"`
}

// ── Bookmarks ────────────────────────────────────────────

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: h.service.Bookmarks(r.Context(), userID)})
}

func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.service.ToggleBookmark(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "ToggleBookmark", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := h.service.AddBookmark(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "AddBookmark", err)
		return
	}
	writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: list})
}

func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := h.service.RemoveBookmark(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "RemoveBookmark", err)
		return
	}
	writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: list})
}

// ── Notes ────────────────────────────────────────────────

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NotesResponse{Notes: h.service.Notes(r.Context(), userID, r.URL.Query().Get("q"))})
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req models.CreateNoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	note, err := h.service.CreateNote(r.Context(), userID, req)
	if err != nil {
		writeError(w, "CreateNote", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var patch models.NotePatch
	if !h.decode(w, r, &patch) {
		return
	}
	note, err := h.service.UpdateNote(r.Context(), userID, mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, "UpdateNote", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteNote(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, "DeleteNote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Todos ────────────────────────────────────────────────

func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	filter := models.TodoFilter(r.URL.Query().Get("filter"))
	switch filter {
	case "":
		filter = models.TodoFilterAll
	case models.TodoFilterAll, models.TodoFilterActive, models.TodoFilterCompleted:
	default:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "filter must be one of all, active, completed"})
		return
	}
	writeJSON(w, http.StatusOK, h.service.Todos(r.Context(), userID, filter))
}

func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req models.CreateTodoRequest
	if !h.decode(w, r, &req) {
		return
	}
	todo, err := h.service.AddTodo(r.Context(), userID, req)
	if err != nil {
		writeError(w, "CreateTodo", err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var patch models.TodoPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if patch.Text == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text is required"})
		return
	}
	todo, err := h.service.EditTodo(r.Context(), userID, mux.Vars(r)["id"], *patch.Text)
	if err != nil {
		writeError(w, "UpdateTodo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	todo, err := h.service.ToggleTodo(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "ToggleTodo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTodo(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, "DeleteTodo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	removed, err := h.service.ClearCompleted(r.Context(), userID)
	if err != nil {
		writeError(w, "ClearCompleted", err)
		return
	}
	writeJSON(w, http.StatusOK, ClearCompletedResponse{Removed: removed})
}

// ── History & Courses ────────────────────────────────────

func (h *Handler) GetExamHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{History: h.service.ExamHistory(r.Context(), userID)})
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CoursesResponse{Courses: h.service.RegisteredCourses(r.Context(), userID)})
}

func (h *Handler) RegisterCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.service.RegisterCourse(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "RegisterCourse", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ──────────────────────────────────────────────

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
	}
	return userID, ok
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrEmptyText), errors.Is(err, ErrInvalidColor), errors.Is(err, ErrInvalidPriority):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrUnavailable):
		log.Printf("[handler] %s error: %v", op, err)
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Storage temporarily unavailable, nothing was changed"})
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
