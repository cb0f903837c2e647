package generator

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/studyhub/backend/internal/models"
)

type GeneratedBatch struct {
	Questions []GeneratedQuestion `json:"questions"`

	// Warnings are non-fatal findings such as clustered answers.
	Warnings []string `json:"-"`
}

type GeneratedQuestion struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// DiversityThreshold is the keyword overlap above which two questions are
// reported as near duplicates.
const DiversityThreshold = 0.60

func ParseResponse(responseBody string) (*GeneratedBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch GeneratedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}
	for _, w := range batch.Warnings {
		log.Printf("[generator] WARNING: %s", w)
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateBatch(batch *GeneratedBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	answerCounts := make(map[int]int)

	for i, q := range batch.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question", qNum))
		}
		if strings.TrimSpace(q.Explanation) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}

		if len(q.Choices) != models.ChoiceCount {
			errs = append(errs, fmt.Sprintf("question %d: expected %d choices, got %d", qNum, models.ChoiceCount, len(q.Choices)))
			continue
		}

		seen := make(map[string]int, len(q.Choices))
		for j, c := range q.Choices {
			c = strings.TrimSpace(c)
			if c == "" {
				errs = append(errs, fmt.Sprintf("question %d: choice %d is empty", qNum, j+1))
				continue
			}
			if prev, dup := seen[c]; dup {
				errs = append(errs, fmt.Sprintf("question %d: choices %d and %d are identical", qNum, prev+1, j+1))
			}
			seen[c] = j
		}

		if q.Answer < 0 || q.Answer >= models.ChoiceCount {
			errs = append(errs, fmt.Sprintf("question %d: answer index %d outside [0, %d]", qNum, q.Answer, models.ChoiceCount-1))
			continue
		}
		answerCounts[q.Answer]++
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	// more than half the batch on one position is worth flagging
	n := len(batch.Questions)
	if n >= models.ChoiceCount {
		for idx := 0; idx < models.ChoiceCount; idx++ {
			if answerCounts[idx]*2 > n {
				batch.Warnings = append(batch.Warnings, fmt.Sprintf("answer index %d is correct in %d of %d questions", idx, answerCounts[idx], n))
			}
		}
	}

	batch.Warnings = append(batch.Warnings, checkTopicDiversity(batch.Questions)...)
	return nil
}

// checkTopicDiversity reports question pairs whose keyword overlap exceeds
// DiversityThreshold.
func checkTopicDiversity(questions []GeneratedQuestion) []string {
	if len(questions) < 2 {
		return nil
	}

	tokenSets := make([]map[string]bool, len(questions))
	for i, q := range questions {
		tokenSets[i] = tokenize(q.Question)
	}

	var warnings []string
	for i := 0; i < len(questions); i++ {
		for j := i + 1; j < len(questions); j++ {
			overlap := jaccardSimilarity(tokenSets[i], tokenSets[j])
			if overlap > DiversityThreshold {
				warnings = append(warnings, fmt.Sprintf("questions %d and %d have %.0f%% keyword overlap", i+1, j+1, overlap*100))
			}
		}
	}
	return warnings
}

// tokenize splits on whitespace and drops one-rune tokens. Thai runs words
// together, so a Thai sentence mostly collapses to a few long tokens; exact
// repeats still overlap.
func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, "?.,!:;\"'()")
		if utf8.RuneCountInString(word) > 1 {
			tokens[word] = true
		}
	}
	return tokens
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
