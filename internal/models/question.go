package models

import "time"

// RandomSubjectLabel is the subject label recorded for quizzes sampled from every subject.
const RandomSubjectLabel = "ทุกวิชา"

// ChoiceCount is the number of answer choices every question carries.
const ChoiceCount = 4

type QuizPhase string

const (
	PhaseSelect QuizPhase = "select"
	PhaseQuiz   QuizPhase = "quiz"
	PhaseResult QuizPhase = "result"
)

// ── Core Structs ───────────────────────────────────────

type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Subject     string   `json:"subject" yaml:"subject"`
	Question    string   `json:"question" yaml:"question"`
	Choices     []string `json:"choices" yaml:"choices"`
	Answer      int      `json:"answer" yaml:"answer"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// ExamRecord is one finished quiz in a user's exam history.
type ExamRecord struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	TimeSpent  int    `json:"timeSpent"`
	Date       string `json:"date"`
}

// ── Request Types ─────────────────────────────────────

type StartQuizRequest struct {
	// Subject is empty for a random quiz across every subject.
	Subject string `json:"subject"`
}

type AnswerRequest struct {
	Choice *int `json:"choice"`
}

// ── Response Types (strip answers for serving) ────────

type QuizQuestion struct {
	ID       string   `json:"id"`
	Subject  string   `json:"subject"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

// AnswerFeedback is revealed once a question has been answered.
type AnswerFeedback struct {
	Chosen      int    `json:"chosen"`
	Correct     bool   `json:"correct"`
	AnswerIndex int    `json:"answer_index"`
	Explanation string `json:"explanation"`
}

type ReviewItem struct {
	Position    int    `json:"position"`
	QuestionID  string `json:"question_id"`
	Question    string `json:"question"`
	Chosen      *int   `json:"chosen,omitempty"`
	ChosenText  string `json:"chosen_text,omitempty"`
	AnswerIndex int    `json:"answer_index"`
	AnswerText  string `json:"answer_text"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

type QuizResult struct {
	Subject    string       `json:"subject"`
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage int          `json:"percentage"`
	TimeSpent  int          `json:"time_spent_seconds"`
	Message    string       `json:"message"`
	Saved      bool         `json:"saved"`
	Review     []ReviewItem `json:"review"`
}

// QuizView is the client-facing snapshot of a quiz session.
type QuizView struct {
	SessionID string          `json:"session_id"`
	Phase     QuizPhase       `json:"phase"`
	Subject   string          `json:"subject"`
	Position  int             `json:"position"`
	Total     int             `json:"total"`
	Elapsed   int             `json:"elapsed_seconds"`
	Question  *QuizQuestion   `json:"question,omitempty"`
	Feedback  *AnswerFeedback `json:"feedback,omitempty"`
	Result    *QuizResult     `json:"result,omitempty"`
	StartedAt time.Time       `json:"started_at"`
}

type ExamSubject struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

type ExamSubjectsResponse struct {
	Total    int           `json:"total"`
	Subjects []ExamSubject `json:"subjects"`
}
