package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validBatch(count int) GeneratedBatch {
	batch := GeneratedBatch{Questions: make([]GeneratedQuestion, count)}
	topics := []string{"สมการ", "ปริมาตร", "ค่าเฉลี่ย", "ลำดับ", "เซต", "ตรีโกณ"}
	for i := 0; i < count; i++ {
		batch.Questions[i] = GeneratedQuestion{
			Question:    fmt.Sprintf("โจทย์เรื่อง%s ข้อ %d ข้อใดถูกต้อง?", topics[i%len(topics)], i+1),
			Choices:     []string{"ก", "ข", "ค", "ง"},
			Answer:      i % 4,
			Explanation: "เพราะเป็นไปตามนิยาม",
		}
	}
	return batch
}

func batchJSON(b GeneratedBatch) string {
	data, _ := json.Marshal(b)
	return string(data)
}

func TestParseResponse_ValidJSON(t *testing.T) {
	batch, err := ParseResponse(batchJSON(validBatch(6)))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(batch.Questions) != 6 {
		t.Errorf("expected 6 questions, got %d", len(batch.Questions))
	}
	if len(batch.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", batch.Warnings)
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	for _, wrap := range []string{"```json\n%s\n```", "```\n%s\n```", "  %s  "} {
		input := fmt.Sprintf(wrap, batchJSON(validBatch(2)))
		if _, err := ParseResponse(input); err != nil {
			t.Errorf("%q: expected no error, got: %v", wrap, err)
		}
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	if _, err := ParseResponse(`{"questions": [`); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseResponse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *GeneratedQuestion)
		wantMsg string
	}{
		{"three choices", func(q *GeneratedQuestion) { q.Choices = q.Choices[:3] }, "expected 4 choices, got 3"},
		{"five choices", func(q *GeneratedQuestion) { q.Choices = append(q.Choices, "จ") }, "expected 4 choices, got 5"},
		{"answer too high", func(q *GeneratedQuestion) { q.Answer = 4 }, "answer index 4 outside [0, 3]"},
		{"negative answer", func(q *GeneratedQuestion) { q.Answer = -1 }, "answer index -1 outside [0, 3]"},
		{"empty question", func(q *GeneratedQuestion) { q.Question = "  " }, "empty question"},
		{"empty explanation", func(q *GeneratedQuestion) { q.Explanation = "" }, "empty explanation"},
		{"empty choice", func(q *GeneratedQuestion) { q.Choices[2] = " " }, "choice 3 is empty"},
		{"duplicate choices", func(q *GeneratedQuestion) { q.Choices[3] = "ข" }, "choices 2 and 4 are identical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBatch(2)
			tt.mutate(&b.Questions[1])

			_, err := ParseResponse(batchJSON(b))
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), "question 2: "+tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseResponse_EmptyBatch(t *testing.T) {
	_, err := ParseResponse(`{"questions": []}`)
	if err == nil || !strings.Contains(err.Error(), "no questions in batch") {
		t.Fatalf("expected empty batch error, got %v", err)
	}
}

func TestParseResponse_ClusteredAnswers(t *testing.T) {
	b := validBatch(4)
	for i := range b.Questions {
		b.Questions[i].Answer = 1
	}
	batch, err := ParseResponse(batchJSON(b))
	if err != nil {
		t.Fatalf("clustering must not reject: %v", err)
	}
	if len(batch.Warnings) != 1 || !strings.Contains(batch.Warnings[0], "answer index 1 is correct in 4 of 4") {
		t.Errorf("unexpected warnings %v", batch.Warnings)
	}
}

func TestParseResponse_NearDuplicates(t *testing.T) {
	b := validBatch(2)
	b.Questions[0].Question = "What is the capital city of Thailand today?"
	b.Questions[1].Question = "What is the capital city of Thailand?"
	batch, err := ParseResponse(batchJSON(b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Warnings) != 1 || !strings.Contains(batch.Warnings[0], "questions 1 and 2") {
		t.Errorf("unexpected warnings %v", batch.Warnings)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 0},
		{"alpha beta", "alpha beta", 1},
		{"alpha beta", "gamma delta", 0},
		{"alpha beta gamma", "alpha beta delta", 0.5},
	}
	for _, tt := range tests {
		if got := jaccardSimilarity(tokenize(tt.a), tokenize(tt.b)); got != tt.want {
			t.Errorf("jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
