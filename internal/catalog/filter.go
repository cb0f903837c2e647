package catalog

import (
	"slices"
	"strings"

	"github.com/studyhub/backend/internal/models"
)

const (
	maxRelatedLearning = 4
	maxRelatedPrompts  = 3
)

// ── Learning ────────────────────────────────────────────

// FilterLearning applies a case-insensitive text search plus exact subject and
// type filters. Empty filter fields match everything.
func FilterLearning(items []models.LearningItem, f models.LearningFilter) []models.LearningItem {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.LearningItem{}
	for _, item := range items {
		if f.Subject != "" && item.Subject != f.Subject {
			continue
		}
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if q != "" && !containsAny(q, item.Title, item.Topic, item.Content) && !anyTagContains(item.Tags, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// GroupByTopic buckets items by topic, keeping topics in first-seen order.
func GroupByTopic(items []models.LearningItem) []models.TopicGroup {
	groups := []models.TopicGroup{}
	index := map[string]int{}
	for _, item := range items {
		i, ok := index[item.Topic]
		if !ok {
			i = len(groups)
			index[item.Topic] = i
			groups = append(groups, models.TopicGroup{Topic: item.Topic})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// RelatedLearning returns up to four other items sharing the subject or topic.
func RelatedLearning(items []models.LearningItem, item models.LearningItem) []models.LearningItem {
	out := []models.LearningItem{}
	for _, other := range items {
		if other.ID == item.ID {
			continue
		}
		if other.Subject == item.Subject || other.Topic == item.Topic {
			out = append(out, other)
			if len(out) == maxRelatedLearning {
				break
			}
		}
	}
	return out
}

func LearningSubjects(items []models.LearningItem) []string {
	return distinct(items, func(i models.LearningItem) []string { return []string{i.Subject} })
}

func LearningTopics(items []models.LearningItem) []string {
	return distinct(items, func(i models.LearningItem) []string { return []string{i.Topic} })
}

func LearningTypes(items []models.LearningItem) []models.LearningType {
	out := []models.LearningType{}
	for _, s := range distinct(items, func(i models.LearningItem) []string { return []string{string(i.Type)} }) {
		out = append(out, models.LearningType(s))
	}
	return out
}

// ── Prompts ─────────────────────────────────────────────

// FilterPrompts searches title, description, subject and tags, then applies
// the exact subject, level and tag filters.
func FilterPrompts(prompts []models.Prompt, f models.PromptFilter) []models.Prompt {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Prompt{}
	for _, p := range prompts {
		if f.Subject != "" && p.Subject != f.Subject {
			continue
		}
		if f.Level != "" && p.Level != f.Level {
			continue
		}
		if f.Tag != "" && !slices.Contains(p.Tags, f.Tag) {
			continue
		}
		if q != "" && !containsAny(q, p.Title, p.Description, p.Subject) && !anyTagContains(p.Tags, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// RelatedPrompts returns up to three other prompts with the same subject or a
// shared tag.
func RelatedPrompts(prompts []models.Prompt, prompt models.Prompt) []models.Prompt {
	out := []models.Prompt{}
	for _, other := range prompts {
		if other.ID == prompt.ID {
			continue
		}
		if other.Subject == prompt.Subject || sharesTag(other.Tags, prompt.Tags) {
			out = append(out, other)
			if len(out) == maxRelatedPrompts {
				break
			}
		}
	}
	return out
}

// FillTemplate substitutes each declared [placeholder] that has a non-empty
// value. Placeholders without a value are left in place.
func FillTemplate(p models.Prompt, values map[string]string) string {
	content := p.Content
	if !p.IsTemplate {
		return content
	}
	for _, ph := range p.Placeholders {
		if v := values[ph]; v != "" {
			content = strings.ReplaceAll(content, "["+ph+"]", v)
		}
	}
	return content
}

func PromptSubjects(prompts []models.Prompt) []string {
	return distinct(prompts, func(p models.Prompt) []string { return []string{p.Subject} })
}

func PromptLevels(prompts []models.Prompt) []string {
	return distinct(prompts, func(p models.Prompt) []string { return []string{p.Level} })
}

func PromptTags(prompts []models.Prompt) []string {
	return distinct(prompts, func(p models.Prompt) []string { return p.Tags })
}

// ── Links ───────────────────────────────────────────────

// FilterLinks matches the category exactly and searches title and description.
func FilterLinks(links []models.Link, category, query string) []models.Link {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Link{}
	for _, l := range links {
		if category != "" && l.Category != category {
			continue
		}
		if q != "" && !containsAny(q, l.Title, l.Description) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func LinkCategories(links []models.Link) []string {
	return distinct(links, func(l models.Link) []string { return []string{l.Category} })
}

// ── Helpers ─────────────────────────────────────────────

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func sharesTag(a, b []string) bool {
	for _, t := range a {
		if slices.Contains(b, t) {
			return true
		}
	}
	return false
}

func distinct[T any](items []T, keys func(T) []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, item := range items {
		for _, k := range keys(item) {
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
