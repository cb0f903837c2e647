package exam

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/studyhub/backend/internal/models"
)

// Result card messages by percentage band.
const (
	messageExcellent = "🌟 ยอดเยี่ยม! คุณเข้าใจเนื้อหาดีมาก"
	messageGood      = "👍 ดีมาก! ลองทบทวนหัวข้อที่ผิดอีกครั้ง"
	messageRetry     = "💪 ไม่ต้องท้อ! ลองทบทวนเนื้อหาแล้วทำใหม่"
)

// Quiz is one user's SELECT → QUIZ → RESULT state machine. It is not safe
// for concurrent use.
type Quiz struct {
	bank *Bank
	rng  *rand.Rand
	now  func() time.Time

	phase     models.QuizPhase
	subject   string
	random    bool
	questions []models.Question
	answers   map[int]int
	position  int
	startedAt time.Time
	elapsed   time.Duration
	saved     bool
}

func NewQuiz(bank *Bank, rng *rand.Rand, now func() time.Time) *Quiz {
	if now == nil {
		now = time.Now
	}
	return &Quiz{
		bank:    bank,
		rng:     rng,
		now:     now,
		phase:   models.PhaseSelect,
		answers: map[int]int{},
	}
}

func (q *Quiz) Phase() models.QuizPhase { return q.phase }
func (q *Quiz) Subject() string         { return q.subject }
func (q *Quiz) Position() int           { return q.position }
func (q *Quiz) Questions() []models.Question {
	return q.questions
}

// Start begins a quiz. An empty subject samples across every subject.
func (q *Quiz) Start(subject string) error {
	if q.phase == models.PhaseQuiz {
		return fmt.Errorf("start: %w", ErrWrongPhase)
	}

	var questions []models.Question
	if subject == "" || subject == models.RandomSubjectLabel {
		questions = q.bank.Sample(RandomQuizSize, q.rng)
		q.subject = models.RandomSubjectLabel
		q.random = true
	} else {
		qs, err := q.bank.BySubject(subject)
		if err != nil {
			return err
		}
		questions = qs
		q.subject = subject
		q.random = false
	}

	q.questions = questions
	q.answers = map[int]int{}
	q.position = 0
	q.startedAt = q.now()
	q.elapsed = 0
	q.saved = false
	q.phase = models.PhaseQuiz
	if len(q.questions) == 0 {
		q.finish()
	}
	return nil
}

// Answer records the choice for the current question. Answering a question a
// second time changes nothing and returns the original feedback.
func (q *Quiz) Answer(choice int) (models.AnswerFeedback, error) {
	if q.phase != models.PhaseQuiz {
		return models.AnswerFeedback{}, fmt.Errorf("answer: %w", ErrWrongPhase)
	}
	if prev, ok := q.answers[q.position]; ok {
		return q.feedback(q.position, prev), nil
	}
	current := q.questions[q.position]
	if choice < 0 || choice >= len(current.Choices) {
		return models.AnswerFeedback{}, fmt.Errorf("choice %d: %w", choice, ErrInvalidChoice)
	}
	q.answers[q.position] = choice
	return q.feedback(q.position, choice), nil
}

// Next advances past an answered question, entering RESULT after the last.
func (q *Quiz) Next() error {
	if q.phase != models.PhaseQuiz {
		return fmt.Errorf("next: %w", ErrWrongPhase)
	}
	if _, ok := q.answers[q.position]; !ok {
		return ErrNotAnswered
	}
	if q.position < len(q.questions)-1 {
		q.position++
		return nil
	}
	q.finish()
	return nil
}

// Retry restarts the finished quiz with the same subject. A random quiz
// draws a fresh sample.
func (q *Quiz) Retry() error {
	if q.phase != models.PhaseResult {
		return fmt.Errorf("retry: %w", ErrWrongPhase)
	}
	subject := q.subject
	if q.random {
		subject = ""
	}
	return q.Start(subject)
}

// ChooseAnother returns a finished quiz to subject selection.
func (q *Quiz) ChooseAnother() error {
	if q.phase != models.PhaseResult {
		return fmt.Errorf("choose another: %w", ErrWrongPhase)
	}
	q.phase = models.PhaseSelect
	return nil
}

// Elapsed is wall-clock time since the quiz started, frozen once it ends.
func (q *Quiz) Elapsed() time.Duration {
	switch q.phase {
	case models.PhaseQuiz:
		return q.now().Sub(q.startedAt)
	case models.PhaseResult:
		return q.elapsed
	}
	return 0
}

// Score counts answers that match the correct index.
func (q *Quiz) Score() int {
	score := 0
	for i, question := range q.questions {
		if chosen, ok := q.answers[i]; ok && chosen == question.Answer {
			score++
		}
	}
	return score
}

// Result summarises a finished quiz.
func (q *Quiz) Result() (models.QuizResult, error) {
	if q.phase != models.PhaseResult {
		return models.QuizResult{}, fmt.Errorf("result: %w", ErrWrongPhase)
	}

	score := q.Score()
	total := len(q.questions)
	pct := Percentage(score, total)

	review := make([]models.ReviewItem, 0, total)
	for i, question := range q.questions {
		item := models.ReviewItem{
			Position:    i,
			QuestionID:  question.ID,
			Question:    question.Question,
			AnswerIndex: question.Answer,
			AnswerText:  question.Choices[question.Answer],
			Explanation: question.Explanation,
		}
		if chosen, ok := q.answers[i]; ok {
			c := chosen
			item.Chosen = &c
			item.ChosenText = question.Choices[chosen]
			item.Correct = chosen == question.Answer
		}
		review = append(review, item)
	}

	return models.QuizResult{
		Subject:    q.subject,
		Score:      score,
		Total:      total,
		Percentage: pct,
		TimeSpent:  int(q.elapsed / time.Second),
		Message:    ResultMessage(pct),
		Saved:      q.saved,
		Review:     review,
	}, nil
}

// Record builds the exam history entry for a finished quiz.
func (q *Quiz) Record() (models.ExamRecord, error) {
	res, err := q.Result()
	if err != nil {
		return models.ExamRecord{}, err
	}
	return models.ExamRecord{
		Subject:    res.Subject,
		Score:      res.Score,
		Total:      res.Total,
		Percentage: res.Percentage,
		TimeSpent:  res.TimeSpent,
	}, nil
}

// NeedsSave reports whether a finished quiz has not been persisted yet.
func (q *Quiz) NeedsSave() bool {
	return q.phase == models.PhaseResult && !q.saved
}

func (q *Quiz) MarkSaved() {
	q.saved = true
}

// View is the client snapshot. Correct answers stay hidden until the current
// question has been answered.
func (q *Quiz) View() models.QuizView {
	v := models.QuizView{
		Phase:     q.phase,
		Subject:   q.subject,
		Position:  q.position,
		Total:     len(q.questions),
		Elapsed:   int(q.Elapsed() / time.Second),
		StartedAt: q.startedAt,
	}

	switch q.phase {
	case models.PhaseQuiz:
		current := q.questions[q.position]
		v.Question = &models.QuizQuestion{
			ID:       current.ID,
			Subject:  current.Subject,
			Question: current.Question,
			Choices:  current.Choices,
		}
		if chosen, ok := q.answers[q.position]; ok {
			fb := q.feedback(q.position, chosen)
			v.Feedback = &fb
		}
	case models.PhaseResult:
		if res, err := q.Result(); err == nil {
			v.Result = &res
		}
	}
	return v
}

func (q *Quiz) finish() {
	q.elapsed = q.now().Sub(q.startedAt)
	q.phase = models.PhaseResult
}

func (q *Quiz) feedback(pos, chosen int) models.AnswerFeedback {
	question := q.questions[pos]
	return models.AnswerFeedback{
		Chosen:      chosen,
		Correct:     chosen == question.Answer,
		AnswerIndex: question.Answer,
		Explanation: question.Explanation,
	}
}

// Percentage is round(100*score/total), or 0 for an empty quiz.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

func ResultMessage(percentage int) string {
	switch {
	case percentage >= 80:
		return messageExcellent
	case percentage >= 50:
		return messageGood
	default:
		return messageRetry
	}
}
