package pomodoro

import "testing"

func TestNewTimer_Defaults(t *testing.T) {
	tm := NewTimer()
	s := tm.State()

	if s.Phase != PhaseFocus || s.Running || s.Sessions != 0 {
		t.Errorf("initial state = %+v", s)
	}
	if s.Remaining != 25*60 {
		t.Errorf("Remaining = %d, want %d", s.Remaining, 25*60)
	}
	if s.Display != "25:00" {
		t.Errorf("Display = %q, want 25:00", s.Display)
	}
}

func TestTick_PausedIsNoop(t *testing.T) {
	tm := NewTimer()
	tm.Tick()
	if tm.Remaining() != 25*60 {
		t.Errorf("paused Tick changed remaining to %d", tm.Remaining())
	}
}

func TestTick_FocusToBreak(t *testing.T) {
	tm := NewTimer()
	tm.SetFocusMinutes(1)
	var cues []Phase
	tm.OnCue(func(from Phase) { cues = append(cues, from) })
	tm.Toggle()

	tm.Advance(60)
	if tm.Remaining() != 0 || tm.Phase() != PhaseFocus {
		t.Fatalf("after 60 ticks: remaining=%d phase=%s, want 0 focus", tm.Remaining(), tm.Phase())
	}

	tm.Tick()
	if tm.Phase() != PhaseBreak {
		t.Errorf("phase = %s, want break", tm.Phase())
	}
	if tm.Remaining() != 5*60 {
		t.Errorf("Remaining = %d, want %d", tm.Remaining(), 5*60)
	}
	if tm.Sessions() != 1 {
		t.Errorf("Sessions = %d, want 1", tm.Sessions())
	}
	if len(cues) != 1 || cues[0] != PhaseFocus {
		t.Errorf("cues = %v, want [focus]", cues)
	}
	if !tm.Running() {
		t.Error("timer should keep running across the swap")
	}
}

func TestTick_BreakToFocusKeepsSessions(t *testing.T) {
	tm := NewTimer()
	tm.SetFocusMinutes(1)
	tm.SetBreakMinutes(1)
	tm.Toggle()

	tm.Advance(61) // focus -> break
	tm.Advance(61) // break -> focus

	if tm.Phase() != PhaseFocus {
		t.Errorf("phase = %s, want focus", tm.Phase())
	}
	if tm.Sessions() != 1 {
		t.Errorf("Sessions = %d, want 1", tm.Sessions())
	}
	if tm.Remaining() != 60 {
		t.Errorf("Remaining = %d, want 60", tm.Remaining())
	}
}

func TestTick_RemainingStaysInRange(t *testing.T) {
	tm := NewTimer()
	tm.SetFocusMinutes(2)
	tm.SetBreakMinutes(1)
	tm.Toggle()

	for i := 0; i < 1000; i++ {
		tm.Tick()
		if r := tm.Remaining(); r < 0 || r > tm.Duration() {
			t.Fatalf("tick %d: remaining %d outside [0, %d]", i, r, tm.Duration())
		}
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name         string
		running      bool
		skips        int
		wantPhase    Phase
		wantSessions int
	}{
		{"paused focus", false, 1, PhaseBreak, 1},
		{"running focus", true, 1, PhaseBreak, 1},
		{"break back to focus", false, 2, PhaseFocus, 1},
		{"two full cycles", true, 4, PhaseFocus, 2},
	}

	for _, tt := range tests {
		tm := NewTimer()
		cues := 0
		tm.OnCue(func(Phase) { cues++ })
		if tt.running {
			tm.Toggle()
		}
		for i := 0; i < tt.skips; i++ {
			tm.Skip()
		}
		if tm.Phase() != tt.wantPhase {
			t.Errorf("%s: phase = %s, want %s", tt.name, tm.Phase(), tt.wantPhase)
		}
		if tm.Sessions() != tt.wantSessions {
			t.Errorf("%s: sessions = %d, want %d", tt.name, tm.Sessions(), tt.wantSessions)
		}
		if tm.Running() != tt.running {
			t.Errorf("%s: running = %v, want %v", tt.name, tm.Running(), tt.running)
		}
		if tm.Remaining() != tm.Duration() {
			t.Errorf("%s: remaining = %d, want full %d", tt.name, tm.Remaining(), tm.Duration())
		}
		if cues != 0 {
			t.Errorf("%s: skip fired %d cues", tt.name, cues)
		}
	}
}

func TestReset(t *testing.T) {
	tm := NewTimer()
	tm.Toggle()
	tm.Skip()
	tm.Advance(30)
	tm.Reset()

	if tm.Running() || tm.Phase() != PhaseFocus || tm.Remaining() != 25*60 {
		t.Errorf("after Reset: %+v", tm.State())
	}
	if tm.Sessions() != 1 {
		t.Errorf("Reset should keep sessions, got %d", tm.Sessions())
	}
}

func TestSetMinutes_Clamp(t *testing.T) {
	tests := []struct {
		focus, breakMin         int
		wantFocus, wantBreakMin int
	}{
		{25, 5, 25, 5},
		{0, 0, 1, 1},
		{-10, -1, 1, 1},
		{120, 30, 120, 30},
		{121, 31, 120, 30},
		{500, 99, 120, 30},
	}

	for _, tt := range tests {
		tm := NewTimer()
		tm.SetFocusMinutes(tt.focus)
		tm.SetBreakMinutes(tt.breakMin)
		s := tm.State()
		if s.FocusMinutes != tt.wantFocus || s.BreakMinutes != tt.wantBreakMin {
			t.Errorf("Set(%d, %d) = (%d, %d), want (%d, %d)",
				tt.focus, tt.breakMin, s.FocusMinutes, s.BreakMinutes, tt.wantFocus, tt.wantBreakMin)
		}
	}
}

func TestSetMinutes_OnlyTouchesPausedCurrentPhase(t *testing.T) {
	// paused focus: new focus length applies, break length does not
	tm := NewTimer()
	tm.SetFocusMinutes(50)
	if tm.Remaining() != 50*60 {
		t.Errorf("paused focus remaining = %d, want %d", tm.Remaining(), 50*60)
	}
	tm.SetBreakMinutes(10)
	if tm.Remaining() != 50*60 {
		t.Errorf("break change altered focus countdown: %d", tm.Remaining())
	}

	// running focus: countdown untouched
	tm.Toggle()
	tm.Advance(10)
	tm.SetFocusMinutes(30)
	if tm.Remaining() != 50*60-10 {
		t.Errorf("running focus remaining = %d, want %d", tm.Remaining(), 50*60-10)
	}

	// paused break: new break length applies
	tm.Toggle()
	tm.Skip()
	tm.SetBreakMinutes(3)
	if tm.Remaining() != 3*60 {
		t.Errorf("paused break remaining = %d, want %d", tm.Remaining(), 3*60)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		ticks int
		want  float64
	}{
		{0, 0},
		{15, 25},
		{30, 50},
		{60, 100},
	}

	for _, tt := range tests {
		tm := NewTimer()
		tm.SetFocusMinutes(1)
		tm.Toggle()
		tm.Advance(tt.ticks)
		if got := tm.Progress(); got != tt.want {
			t.Errorf("Progress after %d ticks = %v, want %v", tt.ticks, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{25 * 60, "25:00"},
		{120 * 60, "120:00"},
		{-5, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestAdvance_MatchesSingleTicks(t *testing.T) {
	newTimer := func(onBreak bool, cues *[]Phase) *Timer {
		tm := NewTimer()
		tm.SetFocusMinutes(2)
		tm.SetBreakMinutes(1)
		if onBreak {
			tm.Skip()
		}
		tm.OnCue(func(from Phase) { *cues = append(*cues, from) })
		tm.Toggle()
		return tm
	}

	for _, onBreak := range []bool{false, true} {
		for _, n := range []int{0, 1, 60, 61, 120, 121, 182, 183, 184, 500, 1000, 10007} {
			var stepCues, jumpCues []Phase
			stepped := newTimer(onBreak, &stepCues)
			jumped := newTimer(onBreak, &jumpCues)

			for i := 0; i < n; i++ {
				stepped.Tick()
			}
			jumped.Advance(n)

			if got, want := jumped.State(), stepped.State(); got != want {
				t.Errorf("onBreak=%v Advance(%d) = %+v, want %+v", onBreak, n, got, want)
			}
			if len(jumpCues) != len(stepCues) {
				t.Errorf("onBreak=%v Advance(%d) fired %d cues, want %d", onBreak, n, len(jumpCues), len(stepCues))
				continue
			}
			for i := range stepCues {
				if jumpCues[i] != stepCues[i] {
					t.Errorf("onBreak=%v Advance(%d) cue %d = %s, want %s", onBreak, n, i, jumpCues[i], stepCues[i])
					break
				}
			}
		}
	}
}

func TestAdvance_PausedIsNoop(t *testing.T) {
	tm := NewTimer()
	tm.Advance(1_000_000)
	if tm.Remaining() != 25*60 || tm.Sessions() != 0 {
		t.Errorf("paused Advance changed state to %+v", tm.State())
	}
}
