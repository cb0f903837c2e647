package exam

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/studyhub/backend/internal/models"
)

// RandomQuizSize is how many questions a quiz across every subject draws.
const RandomQuizSize = 10

var (
	ErrNotFound        = errors.New("session not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrNotAnswered     = errors.New("current question not answered")
	ErrWrongPhase      = errors.New("operation not allowed in this phase")
	ErrInvalidChoice   = errors.New("choice out of range")
)

// Bank is the immutable question pool.
type Bank struct {
	questions []models.Question
	subjects  []string
	counts    map[string]int
}

func NewBank(questions []models.Question) *Bank {
	b := &Bank{
		questions: append([]models.Question(nil), questions...),
		counts:    map[string]int{},
	}
	for _, q := range b.questions {
		if b.counts[q.Subject] == 0 {
			b.subjects = append(b.subjects, q.Subject)
		}
		b.counts[q.Subject]++
	}
	return b
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Subjects lists the distinct subjects in bank order.
func (b *Bank) Subjects() []string {
	return append([]string(nil), b.subjects...)
}

// SubjectCounts pairs every subject with its question count.
func (b *Bank) SubjectCounts() []models.ExamSubject {
	out := make([]models.ExamSubject, 0, len(b.subjects))
	for _, s := range b.subjects {
		out = append(out, models.ExamSubject{Subject: s, Count: b.counts[s]})
	}
	return out
}

// BySubject returns the subject's questions in bank order.
func (b *Bank) BySubject(subject string) ([]models.Question, error) {
	if b.counts[subject] == 0 {
		return nil, fmt.Errorf("%q: %w", subject, ErrSubjectNotFound)
	}
	out := make([]models.Question, 0, b.counts[subject])
	for _, q := range b.questions {
		if q.Subject == subject {
			out = append(out, q)
		}
	}
	return out, nil
}

// Sample draws min(n, Len()) distinct questions in random order.
func (b *Bank) Sample(n int, rng *rand.Rand) []models.Question {
	if n > len(b.questions) {
		n = len(b.questions)
	}
	if n <= 0 {
		return []models.Question{}
	}
	perm := rng.Perm(len(b.questions))
	out := make([]models.Question, n)
	for i := 0; i < n; i++ {
		out[i] = b.questions[perm[i]]
	}
	return out
}
