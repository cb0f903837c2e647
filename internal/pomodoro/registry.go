package pomodoro

import (
	"sync"
	"time"
)

// TimerView is the state of a user's timer as served over HTTP.
type TimerView struct {
	State
	Cues int `json:"cues"`
}

// Settings carries a settings update; nil fields are left unchanged.
type Settings struct {
	FocusMinutes *int `json:"focus_minutes"`
	BreakMinutes *int `json:"break_minutes"`
}

// DefaultIdleTTL is how long a timer nobody looks at is kept.
const DefaultIdleTTL = 12 * time.Hour

type entry struct {
	timer    *Timer
	lastSync time.Time
	lastSeen time.Time
	cues     int
}

// Registry keeps one timer per user. Instead of a goroutine per timer, each
// access first replays the whole seconds elapsed since the previous access.
// Timers idle for longer than the TTL are dropped and start over.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]*entry
	now       func() time.Time
	ttl       time.Duration
	lastSweep time.Time
}

type RegistryOption func(*Registry)

func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = ttl }
}

func NewRegistry(now func() time.Time, opts ...RegistryOption) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{entries: make(map[string]*entry), now: now, ttl: DefaultIdleTTL}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = now()
	return r
}

func (r *Registry) Get(userID string) TimerView {
	return r.apply(userID, func(*Timer) {})
}

func (r *Registry) Toggle(userID string) TimerView {
	return r.apply(userID, (*Timer).Toggle)
}

func (r *Registry) Skip(userID string) TimerView {
	return r.apply(userID, (*Timer).Skip)
}

func (r *Registry) Reset(userID string) TimerView {
	return r.apply(userID, (*Timer).Reset)
}

func (r *Registry) Configure(userID string, s Settings) TimerView {
	return r.apply(userID, func(t *Timer) {
		if s.FocusMinutes != nil {
			t.SetFocusMinutes(*s.FocusMinutes)
		}
		if s.BreakMinutes != nil {
			t.SetBreakMinutes(*s.BreakMinutes)
		}
	})
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) apply(userID string, op func(*Timer)) TimerView {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	e := r.lookup(userID, now)
	e.lastSeen = now
	r.sync(e, now)

	wasRunning := e.timer.Running()
	op(e.timer)
	if !wasRunning && e.timer.Running() {
		e.lastSync = now
	}

	return TimerView{State: e.timer.State(), Cues: e.cues}
}

func (r *Registry) lookup(userID string, now time.Time) *entry {
	e, ok := r.entries[userID]
	if !ok {
		e = &entry{timer: NewTimer(), lastSync: now, lastSeen: now}
		e.timer.OnCue(func(Phase) { e.cues++ })
		r.entries[userID] = e
	}
	return e
}

// sync replays elapsed whole seconds. The fractional remainder is carried
// to the next access.
func (r *Registry) sync(e *entry, now time.Time) {
	if !e.timer.Running() {
		e.lastSync = now
		return
	}
	n := int(now.Sub(e.lastSync) / time.Second)
	if n <= 0 {
		return
	}
	e.timer.Advance(n)
	e.lastSync = e.lastSync.Add(time.Duration(n) * time.Second)
}

// sweepLocked drops timers idle past the TTL, at most once a minute. Must
// hold r.mu.
func (r *Registry) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < time.Minute {
		return
	}
	r.lastSweep = now
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
}
