package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient shells out to the claude CLI so generation can run on a local
// plan without an API key.
type CLIClient struct {
	cliPath string
	model   string
}

func NewCLIClient(cliPath, model string) *CLIClient {
	return &CLIClient{cliPath: cliPath, model: model}
}

func (c *CLIClient) args(systemPrompt string) []string {
	args := []string{
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	}
	if c.model != "" {
		args = append(args, "--model", c.model)
	}
	return args
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.cliPath, c.args(systemPrompt)...)
	cmd.Stdin = strings.NewReader(userPrompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude CLI error: %w\nstderr: %s", err, stderr.String())
	}

	responseText := strings.TrimSpace(stdout.String())
	if responseText == "" {
		return nil, fmt.Errorf("claude CLI returned empty response")
	}

	// the CLI does not report usage
	return &LLMResponse{Content: responseText}, nil
}
