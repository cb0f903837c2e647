package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/studyhub/backend/internal/models"
)

//go:embed content
var embedded embed.FS

const (
	learningGlob = "learning/**/*.md"
	promptGlob   = "prompts/**/*.md"

	questionsFile = "questions.yaml"
	subjectsFile  = "subjects.yaml"
	toolsFile     = "tools.yaml"
	linksFile     = "links.yaml"
	courseFile    = "course.yaml"
	communityFile = "community.yaml"
)

// Embedded returns the content compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load reads a complete catalog from fsys. Every section must be present.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	if err := c.merge(fsys, true); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadOverlay loads the embedded catalog and replaces each section that the
// override directory provides.
func LoadOverlay(override fs.FS) (*Catalog, error) {
	c, err := Load(Embedded())
	if err != nil {
		return nil, fmt.Errorf("load embedded catalog: %w", err)
	}
	if override == nil {
		return c, nil
	}
	if err := c.merge(override, false); err != nil {
		return nil, fmt.Errorf("load content override: %w", err)
	}
	return c, nil
}

func (c *Catalog) merge(fsys fs.FS, required bool) error {
	learning, err := loadLearning(fsys)
	if err != nil {
		return err
	}
	if len(learning) > 0 || required {
		c.Learning = learning
	}

	prompts, err := loadPrompts(fsys)
	if err != nil {
		return err
	}
	if len(prompts) > 0 || required {
		c.Prompts = prompts
	}

	sections := []struct {
		file string
		dst  any
	}{
		{questionsFile, &c.Questions},
		{subjectsFile, &c.Subjects},
		{toolsFile, &c.Tools},
		{linksFile, &c.Links},
		{courseFile, &c.Course},
		{communityFile, &c.Posts},
	}
	for _, s := range sections {
		data, err := fs.ReadFile(fsys, s.file)
		if errors.Is(err, fs.ErrNotExist) && !required {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.file, err)
		}
		if err := yaml.Unmarshal(data, s.dst); err != nil {
			return fmt.Errorf("parse %s: %w", s.file, err)
		}
	}
	return nil
}

// ── Markdown Documents ──────────────────────────────────

func loadLearning(fsys fs.FS) ([]models.LearningItem, error) {
	paths, err := matchSorted(fsys, learningGlob)
	if err != nil {
		return nil, err
	}

	items := make([]models.LearningItem, 0, len(paths))
	for _, p := range paths {
		var item models.LearningItem
		body, err := readDocument(fsys, p, &item)
		if err != nil {
			return nil, err
		}
		item.Content = body
		if item.ID == "" {
			return nil, fmt.Errorf("%s: missing id", p)
		}
		items = append(items, item)
	}
	return items, nil
}

func loadPrompts(fsys fs.FS) ([]models.Prompt, error) {
	paths, err := matchSorted(fsys, promptGlob)
	if err != nil {
		return nil, err
	}

	prompts := make([]models.Prompt, 0, len(paths))
	for _, p := range paths {
		var prompt models.Prompt
		body, err := readDocument(fsys, p, &prompt)
		if err != nil {
			return nil, err
		}
		prompt.Content = strings.TrimRight(body, "\n")
		if prompt.ID == "" {
			return nil, fmt.Errorf("%s: missing id", p)
		}
		prompts = append(prompts, prompt)
	}
	return prompts, nil
}

// matchSorted globs fsys and orders the matches by path so catalog order is
// stable across platforms.
func matchSorted(fsys fs.FS, pattern string) ([]string, error) {
	paths, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func readDocument(fsys fs.FS, path string, meta any) (string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	front, body, err := splitFrontmatter(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(front, meta); err != nil {
		return "", fmt.Errorf("%s: failed to parse frontmatter: %w", path, err)
	}
	return body, nil
}

// splitFrontmatter separates a leading YAML block delimited by "---" lines
// from the markdown body.
func splitFrontmatter(data []byte) ([]byte, string, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, "", errors.New("missing frontmatter")
	}

	rest := data[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return nil, string(rest[len("---\n"):]), nil
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")], "", nil
		}
		return nil, "", errors.New("frontmatter started but no closing delimiter found")
	}
	return rest[:end+1], string(rest[end+len("\n---\n"):]), nil
}
