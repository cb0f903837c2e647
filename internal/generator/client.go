package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/studyhub/backend/internal/models"
)

// LLMClient is the interface every generator backend satisfies.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

const (
	BackendAPI  = "api"
	BackendCLI  = "cli"
	BackendMock = "mock"

	DefaultModel = "claude-sonnet-4-5"
)

var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

type ClientConfig struct {
	Backend string
	APIKey  string
	Model   string
	CLIPath string
}

// NewClient picks the backend named by cfg. It returns the model label to
// record next to generated questions.
func NewClient(cfg ClientConfig) (LLMClient, string, error) {
	switch cfg.Backend {
	case BackendMock:
		return NewMockClient(), "mock", nil
	case BackendCLI:
		path := cfg.CLIPath
		if path == "" {
			path = "claude"
		}
		return NewCLIClient(path, cfg.Model), "claude-cli", nil
	case BackendAPI, "":
		if cfg.APIKey == "" {
			return nil, "", ErrNoAPIKey
		}
		model := cfg.Model
		if model == "" {
			model = DefaultModel
		}
		return NewAPIClient(cfg.APIKey, model), model, nil
	default:
		return nil, "", fmt.Errorf("unknown generator backend %q", cfg.Backend)
	}
}

// Generator turns LLM output into bank-ready questions.
type Generator struct {
	llm   LLMClient
	model string
	newID func() string
}

func NewGenerator(llm LLMClient, model string) *Generator {
	return &Generator{
		llm:   llm,
		model: model,
		newID: func() string { return "gen-" + uuid.NewString()[:8] },
	}
}

func (g *Generator) ModelName() string {
	return g.model
}

// Generate asks for count questions on subject and returns them tagged with
// the subject and fresh ids, plus the parsed batch for its warnings.
func (g *Generator) Generate(ctx context.Context, subject string, count int, existing []string) ([]models.Question, *GeneratedBatch, *LLMResponse, error) {
	if count <= 0 {
		return nil, nil, nil, fmt.Errorf("count must be positive, got %d", count)
	}

	resp, err := g.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(subject, count, existing))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("generate %s batch: %w", subject, err)
	}

	batch, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, nil, resp, fmt.Errorf("parse %s response: %w", subject, err)
	}

	questions := make([]models.Question, 0, len(batch.Questions))
	for _, q := range batch.Questions {
		choices := make([]string, len(q.Choices))
		for i, c := range q.Choices {
			choices[i] = strings.TrimSpace(c)
		}
		questions = append(questions, models.Question{
			ID:          g.newID(),
			Subject:     subject,
			Question:    strings.TrimSpace(q.Question),
			Choices:     choices,
			Answer:      q.Answer,
			Explanation: strings.TrimSpace(q.Explanation),
		})
	}
	return questions, batch, resp, nil
}

// ── APIClient: Anthropic SDK ───────────────────────────────

type APIClient struct {
	client   *anthropic.Client
	model    string
	attempts uint
	delay    time.Duration
}

func NewAPIClient(apiKey, model string, opts ...option.RequestOption) *APIClient {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &APIClient{client: &client, model: model, attempts: 2, delay: 2 * time.Second}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.8),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var message *anthropic.Message
	err := retry.Do(
		func() error {
			m, err := c.client.Messages.New(ctx, params)
			if err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			message = m
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[generator] Anthropic API attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("anthropic API failed after retries: %w", err)
	}
	return message, nil
}

// isRetryable treats rate limits and server errors as transient.
func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

// ── MockClient: Local Development ──────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      buildMockJSON(),
		PromptTokens: 800,
		OutputTokens: 1200,
	}, nil
}

func buildMockJSON() string {
	topics := []string{"สมการ", "พื้นที่", "ความน่าจะเป็น", "ร้อยละ", "ลำดับเลขคณิต"}

	var sb strings.Builder
	sb.WriteString("```json\n{\"questions\":[")
	for i, topic := range topics {
		if i > 0 {
			sb.WriteString(",")
		}
		answer := i % models.ChoiceCount
		fmt.Fprintf(&sb, `{"question":"[Mock] โจทย์ข้อที่ %d เรื่อง%s ข้อใดถูกต้อง?","choices":["ตัวเลือก %d-ก","ตัวเลือก %d-ข","ตัวเลือก %d-ค","ตัวเลือก %d-ง"],"answer":%d,"explanation":"[Mock] คำตอบคือตัวเลือกที่ %d"}`,
			i+1, topic, i+1, i+1, i+1, i+1, answer, answer+1)
	}
	sb.WriteString("]}\n```")
	return sb.String()
}
