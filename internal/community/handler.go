package community

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/userdata"
	"github.com/studyhub/backend/internal/validation"
)

type PostsResponse struct {
	Total int                    `json:"total"`
	Posts []models.CommunityPost `json:"posts"`
}

type Handler struct {
	board     *Board
	validator *validation.Validator
}

func NewHandler(board *Board, v *validation.Validator) *Handler {
	return &Handler{board: board, validator: v}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts := h.board.List(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, PostsResponse{Total: len(posts), Posts: posts})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	author := ""
	if id, ok := middleware.RequestIdentity(r); ok {
		author = id.DisplayName()
	}
	post, err := h.board.Create(r.Context(), author, req)
	if err != nil {
		writeError(w, "CreatePost", err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	post, err := h.board.Like(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "LikePost", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: err.Error(), Back: "/community"})
	case errors.Is(err, userdata.ErrEmptyText):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "title and content are required"})
	case errors.Is(err, userdata.ErrUnavailable):
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
