package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/studyhub/backend/internal/models"
)

// ErrNotFound is returned for lookups of unknown catalog ids.
var ErrNotFound = errors.New("not found")

// Catalog is the immutable static content served by the API.
type Catalog struct {
	Learning  []models.LearningItem
	Prompts   []models.Prompt
	Questions []models.Question
	Subjects  []models.Subject
	Tools     []models.Tool
	Links     []models.Link
	Course    models.Course
	Posts     []models.CommunityPost
}

func (c *Catalog) LearningByID(id string) (models.LearningItem, error) {
	for _, item := range c.Learning {
		if item.ID == id {
			return item, nil
		}
	}
	return models.LearningItem{}, fmt.Errorf("learning item %q: %w", id, ErrNotFound)
}

func (c *Catalog) PromptByID(id string) (models.Prompt, error) {
	for _, p := range c.Prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Prompt{}, fmt.Errorf("prompt %q: %w", id, ErrNotFound)
}

func (c *Catalog) ToolByID(id models.ToolID) (models.Tool, error) {
	for _, t := range c.Tools {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Tool{}, fmt.Errorf("tool %q: %w", id, ErrNotFound)
}

// Validate reports every structural problem in the catalog. An empty result
// means the content is safe to serve.
func (c *Catalog) Validate() []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	seen := map[string]bool{}
	for _, item := range c.Learning {
		if seen[item.ID] {
			add("learning %s: duplicate id", item.ID)
		}
		seen[item.ID] = true
		if _, err := models.ParseLearningType(string(item.Type)); err != nil {
			add("learning %s: %v", item.ID, err)
		}
		if strings.TrimSpace(item.Title) == "" {
			add("learning %s: empty title", item.ID)
		}
		if item.Subject == "" || item.Topic == "" {
			add("learning %s: subject and topic are required", item.ID)
		}
	}

	seen = map[string]bool{}
	for _, p := range c.Prompts {
		if seen[p.ID] {
			add("prompt %s: duplicate id", p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Content) == "" {
			add("prompt %s: empty content", p.ID)
		}
		if p.IsTemplate && len(p.Placeholders) == 0 {
			add("prompt %s: template without placeholders", p.ID)
		}
		for _, ph := range p.Placeholders {
			if !strings.Contains(p.Content, "["+ph+"]") {
				add("prompt %s: placeholder [%s] not used in content", p.ID, ph)
			}
		}
	}

	seen = map[string]bool{}
	for _, q := range c.Questions {
		if seen[q.ID] {
			add("question %s: duplicate id", q.ID)
		}
		seen[q.ID] = true
		if len(q.Choices) != models.ChoiceCount {
			add("question %s: expected %d choices, got %d", q.ID, models.ChoiceCount, len(q.Choices))
		}
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			add("question %s: answer index %d out of range", q.ID, q.Answer)
		}
		if q.Subject == "" || strings.TrimSpace(q.Question) == "" {
			add("question %s: subject and question are required", q.ID)
		}
	}

	for _, t := range c.Tools {
		switch t.ID {
		case models.ToolTodo, models.ToolSchedule, models.ToolGPA, models.ToolTimer, models.ToolNotes:
		default:
			add("tool %s: unknown tool id", t.ID)
		}
	}

	return errs
}
