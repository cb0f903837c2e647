package generator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/studyhub/backend/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: "a", Subject: "คณิตศาสตร์", Question: "ค่าของ √144 เท่ากับเท่าไร?", Choices: []string{"10", "11", "12", "14"}, Answer: 2, Explanation: "12 × 12 = 144"},
		{ID: "b", Subject: "คณิตศาสตร์", Question: "ถ้า 2x + 6 = 18 แล้ว x มีค่าเท่าไร?", Choices: []string{"4", "5", "6", "7"}, Answer: 2, Explanation: "x = 6"},
		{ID: "c", Subject: "คณิตศาสตร์", Question: "(a + b)² มีค่าเท่ากับอะไร?", Choices: []string{"a² + b²", "a² + 2ab + b²", "a² - 2ab + b²", "2a² + 2b²"}, Answer: 1, Explanation: "กำลังสองสมบูรณ์"},
	}
}

func TestVerifier_VerifyBatch(t *testing.T) {
	llm := &stubLLM{responses: []string{
		`{"selected_answer": 2, "confidence": "high", "reasoning": "ok"}`,
		"```json\n{\"selected_answer\": 2, \"confidence\": \"Medium\"}\n```",
		`{"selected_answer": 0, "confidence": "high"}`,
	}}

	res, err := NewVerifier(llm).VerifyBatch(context.Background(), sampleQuestions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PassedCount != 1 || res.FlaggedCount != 1 || res.RejectedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", res.PassedCount, res.FlaggedCount, res.RejectedCount)
	}
	if res.Results[1].Confidence != "medium" {
		t.Errorf("confidence not normalised: %q", res.Results[1].Confidence)
	}
	if res.Results[2].Matches || res.Results[2].RecordedAnswer != 1 {
		t.Errorf("mismatch not recorded: %+v", res.Results[2])
	}
	if res.TotalOutputTokens != 60 {
		t.Errorf("tokens = %d, want 60", res.TotalOutputTokens)
	}
}

func TestVerifier_FailuresPassUnverified(t *testing.T) {
	res, err := NewVerifier(&stubLLM{err: errors.New("down")}).VerifyBatch(context.Background(), sampleQuestions()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if !res.Results[0].Matches || res.Results[0].Confidence != "low" || res.FlaggedCount != 1 {
		t.Errorf("unexpected result %+v", res.Results[0])
	}

	if _, err := NewVerifier(nil).VerifyBatch(context.Background(), nil); !errors.Is(err, ErrNoVerifier) {
		t.Errorf("expected ErrNoVerifier, got %v", err)
	}
}

func TestComputeQualityScore(t *testing.T) {
	full := StructuralScore{true, true, true, true}
	tests := []struct {
		name       string
		vr         *VerificationResult
		structural StructuralScore
		want       float64
		class      string
	}{
		{"verified high", &VerificationResult{Matches: true, Confidence: "high"}, full, 1.0, "passed"},
		{"verified medium", &VerificationResult{Matches: true, Confidence: "medium"}, full, 0.82, "passed"},
		{"unverified", nil, full, 0.64, "flagged"},
		{"wrong answer", &VerificationResult{Matches: false, Confidence: "high"}, full, 0.40, "reject"},
		{"half structure", &VerificationResult{Matches: true, Confidence: "high"}, StructuralScore{QuestionLengthOK: true, ExplanationPresent: true}, 0.80, "passed"},
	}
	for _, tt := range tests {
		got := ComputeQualityScore(tt.vr, tt.structural)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: score = %v, want %v", tt.name, got, tt.want)
		}
		if c := ClassifyQuality(got); c != tt.class {
			t.Errorf("%s: class = %q, want %q", tt.name, c, tt.class)
		}
	}
}

func TestComputeStructuralScore(t *testing.T) {
	q := sampleQuestions()[0]
	if s := ComputeStructuralScore(q); s != (StructuralScore{true, true, true, true}) {
		t.Errorf("expected all checks to pass, got %+v", s)
	}

	q.Question = "สั้น"
	q.Choices = []string{"1", "2", ""}
	q.Explanation = ""
	s := ComputeStructuralScore(q)
	if s.QuestionLengthOK || s.AllChoicesInRange || s.ExplanationPresent {
		t.Errorf("expected failures, got %+v", s)
	}
}
