package pomodoro

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/middleware"
	"github.com/studyhub/backend/internal/models"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestRegistry_CatchesUpElapsedSeconds(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now)

	view := reg.Toggle("u1")
	require.True(t, view.Running)

	clock.Advance(90*time.Second + 500*time.Millisecond)
	view = reg.Get("u1")
	assert.Equal(t, 25*60-90, view.Remaining)

	// the leftover half second counts toward the next read
	clock.Advance(500 * time.Millisecond)
	view = reg.Get("u1")
	assert.Equal(t, 25*60-91, view.Remaining)
}

func TestRegistry_PausedTimeDoesNotCount(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now)

	reg.Toggle("u1")
	clock.Advance(10 * time.Second)
	reg.Toggle("u1")

	clock.Advance(time.Hour)
	view := reg.Toggle("u1")
	assert.Equal(t, 25*60-10, view.Remaining)

	clock.Advance(5 * time.Second)
	view = reg.Get("u1")
	assert.Equal(t, 25*60-15, view.Remaining)
}

func TestRegistry_CountsCues(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now)

	reg.Configure("u1", Settings{FocusMinutes: intPtr(1), BreakMinutes: intPtr(1)})
	reg.Toggle("u1")

	clock.Advance(61 * time.Second)
	view := reg.Get("u1")
	assert.Equal(t, PhaseBreak, view.Phase)
	assert.Equal(t, 1, view.Sessions)
	assert.Equal(t, 1, view.Cues)
}

func TestRegistry_UsersAreIndependent(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now)

	reg.Toggle("a")
	reg.Skip("b")
	clock.Advance(time.Minute)

	a := reg.Get("a")
	b := reg.Get("b")
	assert.Equal(t, PhaseFocus, a.Phase)
	assert.Equal(t, 25*60-60, a.Remaining)
	assert.Equal(t, PhaseBreak, b.Phase)
	assert.False(t, b.Running)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_DropsIdleTimers(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now, WithIdleTTL(time.Hour))

	reg.Toggle("idle")
	reg.Toggle("active")
	for i := 0; i < 3; i++ {
		clock.Advance(30 * time.Minute)
		reg.Get("active")
	}

	assert.Equal(t, 1, reg.Len())
	view := reg.Get("idle")
	assert.False(t, view.Running, "a dropped timer starts over")
	assert.Equal(t, 25*60, view.Remaining)
	assert.Equal(t, 0, view.Sessions)
}

func TestRegistry_LongCatchUp(t *testing.T) {
	clock := newClock()
	reg := NewRegistry(clock.Now, WithIdleTTL(365*24*time.Hour))

	reg.Toggle("u1")
	// 100 full cycles of 25+5 minutes plus the two swap ticks each, then 10s
	clock.Advance(100*(30*time.Minute+2*time.Second) + 10*time.Second)
	view := reg.Get("u1")

	assert.Equal(t, PhaseFocus, view.Phase)
	assert.Equal(t, 100, view.Sessions)
	assert.Equal(t, 200, view.Cues)
	assert.Equal(t, 25*60-10, view.Remaining)
}

func TestHandler_Routes(t *testing.T) {
	clock := newClock()
	h := NewHandler(NewRegistry(clock.Now))

	do := func(method string, fn http.HandlerFunc, body string, userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/tools/timer", strings.NewReader(body))
		if userID != "" {
			req = req.WithContext(middleware.WithIdentity(context.Background(), models.Identity{UserID: userID}))
		}
		rec := httptest.NewRecorder()
		fn(rec, req)
		return rec
	}

	rec := do(http.MethodGet, h.Get, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(http.MethodPut, h.UpdateSettings, `{"focus_minutes": 500}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var view TimerView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, 120, view.FocusMinutes)
	assert.Equal(t, "120:00", view.Display)

	rec = do(http.MethodPut, h.UpdateSettings, `not json`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, h.Toggle, "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.True(t, view.Running)

	rec = do(http.MethodPost, h.Reset, "", "u1")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.False(t, view.Running)
	assert.Equal(t, 120*60, view.Remaining)
}

func intPtr(v int) *int { return &v }
