package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/auth"
	"github.com/studyhub/backend/internal/catalog"
	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/generator"
	"github.com/studyhub/backend/internal/markdown"
	"github.com/studyhub/backend/internal/pomodoro"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"render", "focus", "token", "catalog", "export-pdf", "generate-questions", "migrate"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRenderCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(file, []byte("## บทนำ\n\ntext\n\n### Details\n"), 0644))

	out, err := execute(t, "render", file)
	require.NoError(t, err)
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "<p>text</p>")

	out, err = execute(t, "render", file, "--toc")
	require.NoError(t, err)
	var toc []markdown.HeadingNode
	require.NoError(t, json.Unmarshal([]byte(out), &toc))
	require.Len(t, toc, 2)
	assert.Equal(t, "บทนำ", toc[0].Title)
	assert.Equal(t, 3, toc[1].Level)

	_, err = execute(t, "render", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "cli-test-secret-0123456789")

	out, err := execute(t, "token", "student-9", "--name", "Malee Sukjai")
	require.NoError(t, err)

	id, err := auth.NewSigner("cli-test-secret-0123456789").Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "student-9", id.UserID)
	assert.Equal(t, "Malee Sukjai", id.Name)
}

func TestCatalogCommands(t *testing.T) {
	c, err := catalog.Load(catalog.Embedded())
	require.NoError(t, err)

	tests := []struct {
		kind string
		want []string
	}{
		{"learning", []string{"Learning (", "l1", "สูตรสมการกำลังสอง"}},
		{"prompts", []string{"Prompts (", "p1"}},
		{"questions", []string{"Questions (16)", "คณิตศาสตร์", "คอมพิวเตอร์"}},
	}
	for _, tt := range tests {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		require.NoError(t, listCatalog(cmd, c, tt.kind), tt.kind)
		for _, want := range tt.want {
			assert.Contains(t, out.String(), want, tt.kind)
		}
	}

	assert.Error(t, listCatalog(&cobra.Command{}, c, "videos"))

	out, err := execute(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "All validations passed!")
}

func TestReportValidation_Errors(t *testing.T) {
	c, err := catalog.Load(catalog.Embedded())
	require.NoError(t, err)
	c.Questions[0].Answer = 9

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	err = reportValidation(cmd, c)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Validation Errors (1)")
	assert.Contains(t, out.String(), "answer index 9 out of range")
}

func TestFocusTimerCues(t *testing.T) {
	var out bytes.Buffer
	timer := newFocusTimer(1, 1, &out)
	timer.Toggle()
	timer.Advance(61)

	assert.Contains(t, out.String(), "\a")
	assert.Contains(t, out.String(), "หมดเวลาโฟกัส")
	assert.Equal(t, pomodoro.PhaseBreak, timer.Phase())
	assert.Equal(t, 1, timer.Sessions())

	line := statusLine(timer.State())
	assert.Contains(t, line, "พัก")
	assert.Contains(t, line, "01:00")
	assert.Contains(t, line, "รอบที่ 2")
	assert.True(t, strings.HasSuffix(line, "  0%"), line)
}

func TestStatusLine_Progress(t *testing.T) {
	tests := []struct {
		ticks int
		want  string
	}{
		{0, "โฟกัส  01:00  รอบที่ 1    0%"},
		{15, "โฟกัส  00:45  รอบที่ 1   25%"},
		{30, "โฟกัส  00:30  รอบที่ 1   50%"},
		{60, "โฟกัส  00:00  รอบที่ 1  100%"},
		{61, "พัก    01:00  รอบที่ 2    0%"},
	}
	for _, tt := range tests {
		timer := newFocusTimer(1, 1, io.Discard)
		timer.Toggle()
		timer.Advance(tt.ticks)
		assert.Equal(t, tt.want, statusLine(timer.State()), "%d ticks", tt.ticks)
	}
}

func TestGenerateQuestions_Mock(t *testing.T) {
	llm := generator.NewMockClient()
	out := filepath.Join(t.TempDir(), "generated.yaml")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var diag bytes.Buffer
	cmd.SetErr(&diag)
	cmd.SetOut(&diag)

	err := generateQuestions(cmd, generator.NewGenerator(llm, "mock"), generator.NewVerifier(llm), nil, generateOptions{
		subject: "คณิตศาสตร์",
		count:   5,
		output:  out,
		verify:  true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "- id: gen-"))
	assert.Contains(t, string(data), "subject: คณิตศาสตร์")
	// mock replies are not verification JSON, so every question is unverified
	assert.Contains(t, diag.String(), "passed 0, flagged 5, rejected 0")
	assert.Contains(t, diag.String(), "appended 5 questions")
}

func TestMigrateOptions(t *testing.T) {
	_, err := optionsFor(config.DatabaseConfig{Driver: "memory"})
	assert.Error(t, err)

	opts, err := optionsFor(config.DatabaseConfig{Driver: "sqlite", URL: "studyhub.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", opts.Driver)
	assert.Equal(t, "studyhub.db", opts.URL)
}
