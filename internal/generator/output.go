package generator

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/studyhub/backend/internal/models"
)

// WriteYAML encodes questions as a YAML sequence in the question bank's
// layout, ready to append to questions.yaml.
func WriteYAML(w io.Writer, questions []models.Question) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	return enc.Close()
}
