package pomodoro

import "fmt"

type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5

	MinFocusMinutes = 1
	MaxFocusMinutes = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 30

	// FocusStep and BreakStep are the increments of the settings buttons.
	FocusStep = 5
	BreakStep = 1
)

// CueFunc is called when a phase runs out. from is the phase that ended.
type CueFunc func(from Phase)

// State is a read-only snapshot of a Timer.
type State struct {
	Phase        Phase   `json:"phase"`
	Remaining    int     `json:"remaining_seconds"`
	Display      string  `json:"display"`
	Running      bool    `json:"running"`
	Sessions     int     `json:"sessions"`
	FocusMinutes int     `json:"focus_minutes"`
	BreakMinutes int     `json:"break_minutes"`
	Progress     float64 `json:"progress"`
}

// Timer is the Pomodoro countdown. It is driven by Tick and is not safe for
// concurrent use.
type Timer struct {
	focusMinutes int
	breakMinutes int
	remaining    int
	running      bool
	onBreak      bool
	sessions     int
	cue          CueFunc
}

func NewTimer() *Timer {
	return &Timer{
		focusMinutes: DefaultFocusMinutes,
		breakMinutes: DefaultBreakMinutes,
		remaining:    DefaultFocusMinutes * 60,
	}
}

// OnCue installs the phase-end hook.
func (t *Timer) OnCue(fn CueFunc) {
	t.cue = fn
}

// Tick advances the countdown by one second. When the countdown is already
// at zero the phase swaps instead, so every phase shows 00:00 for a tick.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	if t.remaining > 0 {
		t.remaining--
		return
	}
	t.swap(true)
}

// Advance applies n ticks. Whole focus+break cycles are skipped by
// division, so the cost does not grow with n.
func (t *Timer) Advance(n int) {
	if !t.running {
		return
	}
	for n > 0 {
		if n <= t.remaining {
			t.remaining -= n
			return
		}
		// count down to zero, then one more tick swaps
		n -= t.remaining + 1
		t.remaining = 0
		t.swap(true)

		if cycle := t.cycleTicks(); n >= cycle {
			t.skipCycles(n / cycle)
			n %= cycle
		}
	}
}

// cycleTicks is the number of ticks a full focus plus break takes,
// counting the swap tick at the end of each phase.
func (t *Timer) cycleTicks() int {
	return t.focusMinutes*60 + t.breakMinutes*60 + 2
}

// skipCycles fast-forwards k whole cycles from the start of a phase. Each
// cycle leaves focus once and ends two phases.
func (t *Timer) skipCycles(k int) {
	t.sessions += k
	if t.cue == nil {
		return
	}
	first, second := PhaseFocus, PhaseBreak
	if t.onBreak {
		first, second = PhaseBreak, PhaseFocus
	}
	for i := 0; i < k; i++ {
		t.cue(first)
		t.cue(second)
	}
}

func (t *Timer) Toggle() {
	t.running = !t.running
}

// Skip ends the current phase immediately. The running flag is unchanged.
func (t *Timer) Skip() {
	t.swap(false)
}

// Reset stops the timer and returns to a full focus phase.
func (t *Timer) Reset() {
	t.running = false
	t.onBreak = false
	t.remaining = t.focusMinutes * 60
}

// SetFocusMinutes clamps and stores the focus length. A paused focus phase
// restarts at the new length; a running countdown is untouched.
func (t *Timer) SetFocusMinutes(m int) {
	t.focusMinutes = clamp(m, MinFocusMinutes, MaxFocusMinutes)
	if !t.onBreak && !t.running {
		t.remaining = t.focusMinutes * 60
	}
}

// SetBreakMinutes is SetFocusMinutes for the break phase.
func (t *Timer) SetBreakMinutes(m int) {
	t.breakMinutes = clamp(m, MinBreakMinutes, MaxBreakMinutes)
	if t.onBreak && !t.running {
		t.remaining = t.breakMinutes * 60
	}
}

func (t *Timer) Phase() Phase {
	if t.onBreak {
		return PhaseBreak
	}
	return PhaseFocus
}

func (t *Timer) Running() bool  { return t.running }
func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Sessions() int  { return t.sessions }

// Duration is the full length of the current phase in seconds.
func (t *Timer) Duration() int {
	if t.onBreak {
		return t.breakMinutes * 60
	}
	return t.focusMinutes * 60
}

// Progress is the elapsed share of the current phase, 0 to 100.
func (t *Timer) Progress() float64 {
	total := t.Duration()
	if total == 0 {
		return 0
	}
	p := float64(total-t.remaining) / float64(total) * 100
	if p < 0 {
		return 0
	}
	return p
}

func (t *Timer) State() State {
	return State{
		Phase:        t.Phase(),
		Remaining:    t.remaining,
		Display:      FormatClock(t.remaining),
		Running:      t.running,
		Sessions:     t.sessions,
		FocusMinutes: t.focusMinutes,
		BreakMinutes: t.breakMinutes,
		Progress:     t.Progress(),
	}
}

func (t *Timer) swap(cue bool) {
	from := t.Phase()
	if cue && t.cue != nil {
		t.cue(from)
	}
	if !t.onBreak {
		t.sessions++
	}
	t.onBreak = !t.onBreak
	t.remaining = t.Duration()
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
