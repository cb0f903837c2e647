package models

import "fmt"

// LearningType classifies a learning catalog entry.
type LearningType string

const (
	LearningSummary LearningType = "สรุป"
	LearningFormula LearningType = "สูตร"
	LearningNote    LearningType = "บันทึก"
)

// Slug returns the ASCII name used for icons and CSS classes.
func (t LearningType) Slug() string {
	switch t {
	case LearningSummary:
		return "summary"
	case LearningFormula:
		return "formula"
	case LearningNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseLearningType accepts either the Thai label or its ASCII slug.
func ParseLearningType(s string) (LearningType, error) {
	switch s {
	case string(LearningSummary), "summary":
		return LearningSummary, nil
	case string(LearningFormula), "formula":
		return LearningFormula, nil
	case string(LearningNote), "note":
		return LearningNote, nil
	}
	return "", fmt.Errorf("unknown learning type %q", s)
}

type LearningItem struct {
	ID      string       `json:"id" yaml:"id"`
	Subject string       `json:"subject" yaml:"subject"`
	Topic   string       `json:"topic" yaml:"topic"`
	Type    LearningType `json:"type" yaml:"type"`
	Title   string       `json:"title" yaml:"title"`
	Tags    []string     `json:"tags" yaml:"tags"`
	Date    string       `json:"date,omitempty" yaml:"date"`
	Content string       `json:"content,omitempty" yaml:"-"`
}

type Prompt struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Subject      string   `json:"subject" yaml:"subject"`
	Level        string   `json:"level" yaml:"level"`
	Tags         []string `json:"tags" yaml:"tags"`
	IsTemplate   bool     `json:"isTemplate" yaml:"isTemplate"`
	Placeholders []string `json:"placeholders,omitempty" yaml:"placeholders"`
	Date         string   `json:"date,omitempty" yaml:"date"`
	Content      string   `json:"content" yaml:"-"`
}

type Subject struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	BgColor     string `json:"bgColor" yaml:"bgColor"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
}

// ToolID enumerates the study tools hub entries.
type ToolID string

const (
	ToolTodo     ToolID = "todo"
	ToolSchedule ToolID = "schedule"
	ToolGPA      ToolID = "gpa"
	ToolTimer    ToolID = "timer"
	ToolNotes    ToolID = "notes"
)

type Tool struct {
	ID          ToolID `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
	Color       string `json:"color" yaml:"color"`
}

type Link struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon" yaml:"icon"`
	URL         string `json:"url" yaml:"url"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

type CourseContent struct {
	Type       string `json:"type" yaml:"type"`
	Title      string `json:"title" yaml:"title"`
	URL        string `json:"url" yaml:"url"`
	IsExternal bool   `json:"isExternal,omitempty" yaml:"isExternal"`
}

type CourseModule struct {
	ID          int             `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Duration    string          `json:"duration" yaml:"duration"`
	Content     []CourseContent `json:"content" yaml:"content"`
}

type Course struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	CoverImage  string         `json:"coverImage,omitempty" yaml:"coverImage"`
	Modules     []CourseModule `json:"modules" yaml:"modules"`
}

// ── Request / Response Types ──────────────────────────

type LearningFilter struct {
	Query   string
	Subject string
	Type    LearningType
}

type PromptFilter struct {
	Query   string
	Subject string
	Level   string
	Tag     string
}

type TopicGroup struct {
	Topic string         `json:"topic"`
	Items []LearningItem `json:"items"`
}

type LearningListResponse struct {
	Total    int            `json:"total"`
	Items    []LearningItem `json:"items"`
	Groups   []TopicGroup   `json:"groups"`
	Subjects []string       `json:"subjects"`
	Topics   []string       `json:"topics"`
	Types    []LearningType `json:"types"`
}

type PromptListResponse struct {
	Total    int      `json:"total"`
	Prompts  []Prompt `json:"prompts"`
	Subjects []string `json:"subjects"`
	Levels   []string `json:"levels"`
	Tags     []string `json:"tags"`
}

type PromptFillRequest struct {
	Values map[string]string `json:"values"`
}

type PromptFillResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// ── Community ─────────────────────────────────────────

type PostType string

const (
	PostPrompt PostType = "prompt"
	PostNote   PostType = "note"
)

type CommunityPost struct {
	ID      string   `json:"id" yaml:"id"`
	Author  string   `json:"author" yaml:"author"`
	Type    PostType `json:"type" yaml:"type"`
	Title   string   `json:"title" yaml:"title"`
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags" yaml:"tags"`
	Likes   int      `json:"likes" yaml:"likes"`
	Date    string   `json:"date" yaml:"date"`
}

type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Type    PostType `json:"type" validate:"omitempty,oneof=prompt note"`
	Tags    string   `json:"tags"`
}
