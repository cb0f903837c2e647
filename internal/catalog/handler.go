package catalog

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyhub/backend/internal/markdown"
	"github.com/studyhub/backend/internal/models"
)

const (
	learningBackRoute = "/learning"
	promptsBackRoute  = "/prompts"

	notFoundLearning = "ไม่พบเนื้อหา"
	notFoundPrompt   = "ไม่พบ Prompt"
)

type LearningDetailResponse struct {
	Item    models.LearningItem    `json:"item"`
	HTML    string                 `json:"html"`
	TOC     []markdown.HeadingNode `json:"toc"`
	Related []models.LearningItem  `json:"related"`
}

type PromptDetailResponse struct {
	Prompt  models.Prompt   `json:"prompt"`
	Related []models.Prompt `json:"related"`
}

type RenderRequest struct {
	Markdown string `json:"markdown"`
}

type LinksResponse struct {
	Links      []models.Link `json:"links"`
	Categories []string      `json:"categories"`
}

type Handler struct {
	source *Source
}

func NewHandler(source *Source) *Handler {
	return &Handler{source: source}
}

// ── Learning ────────────────────────────────────────────

func (h *Handler) ListLearning(w http.ResponseWriter, r *http.Request) {
	c := h.source.Current()
	query := r.URL.Query()

	filter := models.LearningFilter{
		Query:   query.Get("q"),
		Subject: query.Get("subject"),
	}
	if t := query.Get("type"); t != "" {
		lt, err := models.ParseLearningType(t)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "type must be one of สรุป, สูตร, บันทึก"})
			return
		}
		filter.Type = lt
	}

	items := FilterLearning(c.Learning, filter)
	writeJSON(w, http.StatusOK, models.LearningListResponse{
		Total:    len(items),
		Items:    stripContent(items),
		Groups:   GroupByTopic(stripContent(items)),
		Subjects: LearningSubjects(c.Learning),
		Topics:   LearningTopics(c.Learning),
		Types:    LearningTypes(c.Learning),
	})
}

func (h *Handler) GetLearning(w http.ResponseWriter, r *http.Request) {
	c := h.source.Current()
	item, err := c.LearningByID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: notFoundLearning, Back: learningBackRoute})
		return
	}

	doc := markdown.Render(item.Content)
	writeJSON(w, http.StatusOK, LearningDetailResponse{
		Item:    item,
		HTML:    doc.HTML,
		TOC:     doc.TOC,
		Related: stripContent(RelatedLearning(c.Learning, item)),
	})
}

func (h *Handler) ExportLearningPDF(w http.ResponseWriter, r *http.Request) {
	item, err := h.source.Current().LearningByID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: notFoundLearning, Back: learningBackRoute})
		return
	}

	var buf bytes.Buffer
	if err := markdown.ExportPDF(&buf, item.Title, item.Content); err != nil {
		log.Printf("[catalog] ExportPDF %s error: %v", item.ID, err)
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "PDF export is unavailable"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+item.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Render previews user-authored markdown. Raw HTML is always dropped.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	writeJSON(w, http.StatusOK, markdown.RenderWithOptions(req.Markdown, markdown.Options{SkipHTML: true}))
}

// ── Prompts ─────────────────────────────────────────────

func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	c := h.source.Current()
	query := r.URL.Query()

	prompts := FilterPrompts(c.Prompts, models.PromptFilter{
		Query:   query.Get("q"),
		Subject: query.Get("subject"),
		Level:   query.Get("level"),
		Tag:     query.Get("tag"),
	})
	writeJSON(w, http.StatusOK, models.PromptListResponse{
		Total:    len(prompts),
		Prompts:  prompts,
		Subjects: PromptSubjects(c.Prompts),
		Levels:   PromptLevels(c.Prompts),
		Tags:     PromptTags(c.Prompts),
	})
}

func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	c := h.source.Current()
	prompt, err := c.PromptByID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: notFoundPrompt, Back: promptsBackRoute})
		return
	}
	writeJSON(w, http.StatusOK, PromptDetailResponse{
		Prompt:  prompt,
		Related: RelatedPrompts(c.Prompts, prompt),
	})
}

func (h *Handler) FillPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.source.Current().PromptByID(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: notFoundPrompt, Back: promptsBackRoute})
		return
	}

	var req models.PromptFillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	writeJSON(w, http.StatusOK, models.PromptFillResponse{
		ID:      prompt.ID,
		Content: FillTemplate(prompt, req.Values),
	})
}

// ── Static Lists ────────────────────────────────────────

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Current().Subjects)
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Current().Tools)
}

func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	c := h.source.Current()
	query := r.URL.Query()
	writeJSON(w, http.StatusOK, LinksResponse{
		Links:      FilterLinks(c.Links, query.Get("category"), query.Get("q")),
		Categories: LinkCategories(c.Links),
	})
}

func (h *Handler) GetComputerCourse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Current().Course)
}

// ── Helpers ─────────────────────────────────────────────

// stripContent drops markdown bodies from list payloads.
func stripContent(items []models.LearningItem) []models.LearningItem {
	out := make([]models.LearningItem, len(items))
	for i, item := range items {
		item.Content = ""
		out[i] = item
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
