package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/models"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load(Embedded())
	require.NoError(t, err)

	assert.Len(t, c.Questions, 16)
	assert.Len(t, c.Subjects, 6)
	assert.Len(t, c.Tools, 5)
	assert.Len(t, c.Posts, 4)
	assert.NotEmpty(t, c.Learning)
	assert.NotEmpty(t, c.Prompts)
	assert.NotEmpty(t, c.Links)
	assert.Len(t, c.Course.Modules, 4)

	assert.Empty(t, c.Validate())
}

func TestLoad_QuestionBankSubjects(t *testing.T) {
	c, err := Load(Embedded())
	require.NoError(t, err)

	counts := map[string]int{}
	for _, q := range c.Questions {
		counts[q.Subject]++
	}
	assert.Equal(t, map[string]int{
		"คณิตศาสตร์":         4,
		"วิทยาศาสตร์":        4,
		"ภาษาอังกฤษ":         3,
		"ประวัติศาสตร์":      3,
		"วิทยาการคอมพิวเตอร์": 2,
	}, counts)

	assert.Equal(t, "q1", c.Questions[0].ID)
	assert.Equal(t, 2, c.Questions[0].Answer)
}

func TestLoad_LearningFrontmatter(t *testing.T) {
	c, err := Load(Embedded())
	require.NoError(t, err)

	item, err := c.LearningByID("l1")
	require.NoError(t, err)
	assert.Equal(t, "คณิตศาสตร์", item.Subject)
	assert.Equal(t, models.LearningFormula, item.Type)
	assert.Contains(t, item.Content, "## สูตรหาคำตอบ")
	assert.NotContains(t, item.Content, "subject:")
}

func TestLoad_MissingSectionFails(t *testing.T) {
	fsys := fstest.MapFS{
		"questions.yaml": {Data: []byte("[]")},
	}

	_, err := Load(fsys)
	assert.Error(t, err)
}

func TestLoadOverlay_ReplacesProvidedSections(t *testing.T) {
	override := fstest.MapFS{
		"learning/custom/extra.md": {Data: []byte("---\nid: x1\nsubject: ศิลปะ\ntopic: สี\ntype: บันทึก\ntitle: วงล้อสี\ntags: [สี]\n---\n## แม่สี\n")},
		"tools.yaml":               {Data: []byte("- id: gpa\n  title: GPA\n")},
	}

	c, err := LoadOverlay(override)
	require.NoError(t, err)

	require.Len(t, c.Learning, 1)
	assert.Equal(t, "x1", c.Learning[0].ID)
	require.Len(t, c.Tools, 1)
	assert.Equal(t, models.ToolGPA, c.Tools[0].ID)

	// untouched sections keep the embedded content
	assert.Len(t, c.Questions, 16)
	assert.NotEmpty(t, c.Prompts)
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMeta string
		wantBody string
		wantErr  bool
	}{
		{
			name:     "meta and body",
			in:       "---\nid: a\n---\n# Hi\n",
			wantMeta: "id: a\n",
			wantBody: "# Hi\n",
		},
		{
			name:     "body keeps horizontal rules",
			in:       "---\nid: a\n---\none\n\n---\n\ntwo\n",
			wantMeta: "id: a\n",
			wantBody: "one\n\n---\n\ntwo\n",
		},
		{
			name:     "crlf line endings",
			in:       "---\r\nid: a\r\n---\r\nbody\r\n",
			wantMeta: "id: a\n",
			wantBody: "body\n",
		},
		{
			name:    "no frontmatter",
			in:      "# Just markdown\n",
			wantErr: true,
		},
		{
			name:    "unterminated",
			in:      "---\nid: a\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := splitFrontmatter([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, string(meta))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	c := &Catalog{
		Learning: []models.LearningItem{
			{ID: "a", Subject: "s", Topic: "t", Type: "อื่นๆ", Title: "x"},
			{ID: "a", Subject: "s", Topic: "t", Type: models.LearningNote, Title: "y"},
		},
		Prompts: []models.Prompt{
			{ID: "p", Content: "hello [name]", IsTemplate: true, Placeholders: []string{"name", "missing"}},
		},
		Questions: []models.Question{
			{ID: "q", Subject: "s", Question: "?", Choices: []string{"a", "b"}, Answer: 3},
		},
		Tools: []models.Tool{{ID: "calendar"}},
	}

	errs := c.Validate()

	// bad type, duplicate id, unused placeholder, choice count, answer range, unknown tool
	assert.Len(t, errs, 6)
}
