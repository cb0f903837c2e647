package exam

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/models"
)

type recordingHistory struct {
	mu      sync.Mutex
	records map[string][]models.ExamRecord
	err     error
}

func (h *recordingHistory) AppendExamResult(_ context.Context, userID string, rec models.ExamRecord) (models.ExamRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return rec, h.err
	}
	if h.records == nil {
		h.records = map[string][]models.ExamRecord{}
	}
	h.records[userID] = append(h.records[userID], rec)
	return rec, nil
}

func newTestManager(history HistoryRecorder, clock *fakeClock) *Manager {
	return NewManager(standardBank(), history,
		WithClock(clock.Now),
		WithRand(func() *rand.Rand { return seeded() }),
	)
}

func finish(t *testing.T, m *Manager, id, userID string) models.QuizView {
	t.Helper()
	ctx := context.Background()
	view, err := m.Get(ctx, id, userID)
	require.NoError(t, err)
	for view.Phase == models.PhaseQuiz {
		// choice 0 is correct for some questions and wrong for others
		view, err = m.Answer(ctx, id, userID, 0)
		require.NoError(t, err)
		view, err = m.Next(ctx, id, userID)
		require.NoError(t, err)
	}
	return view
}

func TestManager_SavesResultExactlyOnce(t *testing.T) {
	history := &recordingHistory{}
	clock := newClock()
	m := newTestManager(history, clock)
	ctx := context.Background()

	view, err := m.Create(ctx, "u1", "วิทยาศาสตร์")
	require.NoError(t, err)
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, models.PhaseQuiz, view.Phase)

	clock.Advance(42 * time.Second)
	view = finish(t, m, view.SessionID, "u1")
	require.Equal(t, models.PhaseResult, view.Phase)
	require.NotNil(t, view.Result)
	assert.True(t, view.Result.Saved)

	// observing RESULT again must not append a second record
	_, err = m.Get(ctx, view.SessionID, "u1")
	require.NoError(t, err)

	require.Len(t, history.records["u1"], 1)
	rec := history.records["u1"][0]
	assert.Equal(t, "วิทยาศาสตร์", rec.Subject)
	assert.Equal(t, 4, rec.Total)
	assert.Equal(t, 42, rec.TimeSpent)
	assert.Equal(t, view.Result.Score, rec.Score)
}

func TestManager_RetrySavesAgain(t *testing.T) {
	history := &recordingHistory{}
	m := newTestManager(history, newClock())
	ctx := context.Background()

	view, err := m.Create(ctx, "u1", "วิทยาการคอมพิวเตอร์")
	require.NoError(t, err)
	finish(t, m, view.SessionID, "u1")

	_, err = m.Retry(ctx, view.SessionID, "u1")
	require.NoError(t, err)
	finish(t, m, view.SessionID, "u1")

	assert.Len(t, history.records["u1"], 2)
}

func TestManager_AnonymousNotSaved(t *testing.T) {
	history := &recordingHistory{}
	m := newTestManager(history, newClock())

	view, err := m.Create(context.Background(), "", "วิทยาการคอมพิวเตอร์")
	require.NoError(t, err)
	view = finish(t, m, view.SessionID, "")

	assert.Equal(t, models.PhaseResult, view.Phase)
	assert.False(t, view.Result.Saved)
	assert.Empty(t, history.records)
}

func TestManager_SaveFailureIsNotFatal(t *testing.T) {
	history := &recordingHistory{err: errors.New("store down")}
	m := newTestManager(history, newClock())

	view, err := m.Create(context.Background(), "u1", "วิทยาการคอมพิวเตอร์")
	require.NoError(t, err)
	view = finish(t, m, view.SessionID, "u1")

	assert.Equal(t, models.PhaseResult, view.Phase)
}

func TestManager_SessionOwnership(t *testing.T) {
	m := newTestManager(&recordingHistory{}, newClock())
	ctx := context.Background()

	view, err := m.Create(ctx, "owner", "")
	require.NoError(t, err)

	_, err = m.Get(ctx, view.SessionID, "intruder")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get(ctx, view.SessionID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get(ctx, view.SessionID, "owner")
	assert.NoError(t, err)
}

func TestManager_IdleExpiry(t *testing.T) {
	clock := newClock()
	m := newTestManager(&recordingHistory{}, clock)
	ctx := context.Background()

	view, err := m.Create(ctx, "", "")
	require.NoError(t, err)

	clock.Advance(DefaultSessionTTL - time.Minute)
	_, err = m.Get(ctx, view.SessionID, "")
	require.NoError(t, err)

	clock.Advance(DefaultSessionTTL + time.Second)
	_, err = m.Get(ctx, view.SessionID, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_UnknownSubject(t *testing.T) {
	m := newTestManager(&recordingHistory{}, newClock())

	_, err := m.Create(context.Background(), "", "ดนตรี")
	assert.ErrorIs(t, err, ErrSubjectNotFound)
	assert.Equal(t, 0, m.Len())
}
