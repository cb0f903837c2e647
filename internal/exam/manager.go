package exam

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhub/backend/internal/models"
)

// DefaultSessionTTL is how long an idle quiz session is kept.
const DefaultSessionTTL = 2 * time.Hour

// HistoryRecorder persists finished quizzes for signed-in users.
type HistoryRecorder interface {
	AppendExamResult(ctx context.Context, userID string, rec models.ExamRecord) (models.ExamRecord, error)
}

type session struct {
	mu     sync.Mutex
	quiz   *Quiz
	userID string

	// lastSeen is guarded by Manager.mu.
	lastSeen time.Time
}

// Manager owns the in-memory quiz sessions.
type Manager struct {
	bank    *Bank
	history HistoryRecorder
	ttl     time.Duration
	now     func() time.Time
	newRand func() *rand.Rand

	mu       sync.Mutex
	sessions map[string]*session
}

type ManagerOption func(*Manager)

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = ttl }
}

// WithRand sets the random source factory used for each new session.
func WithRand(newRand func() *rand.Rand) ManagerOption {
	return func(m *Manager) { m.newRand = newRand }
}

func NewManager(bank *Bank, history HistoryRecorder, opts ...ManagerOption) *Manager {
	m := &Manager{
		bank:     bank,
		history:  history,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		newRand:  func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) },
		sessions: map[string]*session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Bank() *Bank {
	return m.bank
}

// Create starts a new quiz session for subject ("" for a random quiz).
func (m *Manager) Create(ctx context.Context, userID, subject string) (models.QuizView, error) {
	quiz := NewQuiz(m.bank, m.newRand(), m.now)
	if err := quiz.Start(subject); err != nil {
		return models.QuizView{}, err
	}

	id := uuid.NewString()
	s := &session{quiz: quiz, userID: userID, lastSeen: m.now()}

	m.mu.Lock()
	m.sweepLocked()
	m.sessions[id] = s
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	m.persistIfFinished(ctx, s)
	return m.view(id, s), nil
}

func (m *Manager) Get(ctx context.Context, id, userID string) (models.QuizView, error) {
	return m.apply(ctx, id, userID, func(*Quiz) error { return nil })
}

func (m *Manager) Answer(ctx context.Context, id, userID string, choice int) (models.QuizView, error) {
	return m.apply(ctx, id, userID, func(q *Quiz) error {
		_, err := q.Answer(choice)
		return err
	})
}

func (m *Manager) Next(ctx context.Context, id, userID string) (models.QuizView, error) {
	return m.apply(ctx, id, userID, (*Quiz).Next)
}

func (m *Manager) Retry(ctx context.Context, id, userID string) (models.QuizView, error) {
	return m.apply(ctx, id, userID, (*Quiz).Retry)
}

func (m *Manager) ChooseAnother(ctx context.Context, id, userID string) (models.QuizView, error) {
	return m.apply(ctx, id, userID, (*Quiz).ChooseAnother)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) apply(ctx context.Context, id, userID string, op func(*Quiz) error) (models.QuizView, error) {
	s, err := m.lookup(id, userID)
	if err != nil {
		return models.QuizView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(s.quiz); err != nil {
		return m.view(id, s), err
	}
	m.persistIfFinished(ctx, s)
	return m.view(id, s), nil
}

// lookup finds a live session. Sessions owned by a user are invisible to
// everyone else.
func (m *Manager) lookup(id, userID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if m.expired(s) {
		delete(m.sessions, id)
		return nil, fmt.Errorf("session %s expired: %w", id, ErrNotFound)
	}
	if s.userID != "" && s.userID != userID {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	s.lastSeen = m.now()
	return s, nil
}

// persistIfFinished appends the result to the owner's exam history the first
// time the session is observed in RESULT. Must hold s.mu.
func (m *Manager) persistIfFinished(ctx context.Context, s *session) {
	if s.userID == "" || m.history == nil || !s.quiz.NeedsSave() {
		return
	}
	rec, err := s.quiz.Record()
	if err != nil {
		return
	}
	if _, err := m.history.AppendExamResult(ctx, s.userID, rec); err != nil {
		log.Printf("[exam] save result for %s error: %v", s.userID, err)
	}
	s.quiz.MarkSaved()
}

func (m *Manager) view(id string, s *session) models.QuizView {
	v := s.quiz.View()
	v.SessionID = id
	return v
}

// expired must be called with m.mu held.
func (m *Manager) expired(s *session) bool {
	return m.now().Sub(s.lastSeen) > m.ttl
}

// sweepLocked drops idle sessions. Must hold m.mu.
func (m *Manager) sweepLocked() {
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
		}
	}
}
