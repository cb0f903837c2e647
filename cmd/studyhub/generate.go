package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/generator"
	"github.com/studyhub/backend/internal/models"
)

type generateOptions struct {
	subject string
	count   int
	backend string
	model   string
	cliPath string
	verify  bool
	output  string
	dir     string
}

func newGenerateQuestionsCommand() *cobra.Command {
	var opts generateOptions

	command := &cobra.Command{
		Use:   "generate-questions",
		Short: "Generate exam questions with an LLM and print them as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			model := opts.model
			if model == "" {
				model = cfg.Anthropic.Model
			}
			llm, label, err := generator.NewClient(generator.ClientConfig{
				Backend: opts.backend,
				APIKey:  cfg.Anthropic.APIKey,
				Model:   model,
				CLIPath: opts.cliPath,
			})
			if err != nil {
				return fmt.Errorf("question generation unavailable: %w", err)
			}

			dir := opts.dir
			if dir == "" {
				dir = cfg.Content.Dir
			}
			c, err := loadCatalog(dir)
			if err != nil {
				return err
			}
			return generateQuestions(cmd, generator.NewGenerator(llm, label), generator.NewVerifier(llm), existingQuestions(c.Questions, opts.subject), opts)
		},
	}

	command.Flags().StringVar(&opts.subject, "subject", "", "exam subject, e.g. คณิตศาสตร์")
	command.Flags().IntVar(&opts.count, "count", 5, "number of questions")
	command.Flags().StringVar(&opts.backend, "backend", generator.BackendAPI, "api, cli or mock")
	command.Flags().StringVar(&opts.model, "model", "", "model name (default from config)")
	command.Flags().StringVar(&opts.cliPath, "cli-path", "claude", "path to the claude CLI for --backend cli")
	command.Flags().BoolVar(&opts.verify, "verify", false, "ask the model to solve each question and score it")
	command.Flags().StringVarP(&opts.output, "output", "o", "", "append YAML to this file instead of stdout")
	command.Flags().StringVar(&opts.dir, "dir", "", "content directory overlaid on the embedded content")
	_ = command.MarkFlagRequired("subject")
	return command
}

func existingQuestions(bank []models.Question, subject string) []string {
	var out []string
	for _, q := range bank {
		if q.Subject == subject {
			out = append(out, q.Question)
		}
	}
	return out
}

// generateQuestions writes the YAML to stdout or opts.output. Diagnostics go
// to stderr so stdout stays valid YAML.
func generateQuestions(cmd *cobra.Command, gen *generator.Generator, verifier *generator.Verifier, existing []string, opts generateOptions) error {
	diag := cmd.ErrOrStderr()

	questions, batch, resp, err := gen.Generate(cmd.Context(), opts.subject, opts.count, existing)
	if err != nil {
		return err
	}
	headerColor.Fprintf(diag, "%d questions from %s (%d in / %d out tokens)\n",
		len(questions), gen.ModelName(), resp.PromptTokens, resp.OutputTokens)
	for _, w := range batch.Warnings {
		warnColor.Fprintf(diag, "WARNING: %s\n", w)
	}

	if opts.verify {
		result, err := verifier.VerifyBatch(cmd.Context(), questions)
		if err != nil {
			return err
		}
		distribOK := !hasClusterWarning(batch.Warnings)
		for i, q := range questions {
			s := generator.ComputeStructuralScore(q)
			s.CorrectAnswerDistribOK = distribOK
			vr := result.Results[i]
			score := generator.ComputeQualityScore(&vr, s)
			class := generator.ClassifyQuality(score)
			c := successColor
			switch class {
			case "reject":
				c = errorColor
			case "flagged":
				c = warnColor
			}
			c.Fprintf(diag, "  %s %-7s %.2f  %s\n", q.ID, class, score, q.Question)
		}
		fmt.Fprintf(diag, "passed %d, flagged %d, rejected %d\n", result.PassedCount, result.FlaggedCount, result.RejectedCount)
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.OpenFile(opts.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}
	if err := generator.WriteYAML(w, questions); err != nil {
		return err
	}
	if opts.output != "" {
		successColor.Fprintf(diag, "appended %d questions to %s\n", len(questions), opts.output)
	}
	return nil
}

func hasClusterWarning(warnings []string) bool {
	for _, w := range warnings {
		if strings.HasPrefix(w, "answer index") {
			return true
		}
	}
	return false
}
