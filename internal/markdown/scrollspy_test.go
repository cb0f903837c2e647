package markdown

import "testing"

func TestActiveHeading(t *testing.T) {
	positions := []HeadingPosition{
		{ID: "intro", Top: 100},
		{ID: "setup", Top: 600},
		{ID: "usage", Top: 1400},
	}

	tests := []struct {
		scrollY float64
		want    string
	}{
		{0, "intro"},
		{-50, ""},
		{479, "intro"},
		{481, "setup"},
		{1300, "usage"},
		{5000, "usage"},
	}

	for _, tt := range tests {
		got := ActiveHeading(positions, tt.scrollY, DefaultSpyThreshold)
		if got != tt.want {
			t.Errorf("ActiveHeading(scrollY=%v) = %q, want %q", tt.scrollY, got, tt.want)
		}
	}
}

func TestActiveHeading_Empty(t *testing.T) {
	if got := ActiveHeading(nil, 1000, DefaultSpyThreshold); got != "" {
		t.Errorf("ActiveHeading(nil) = %q, want empty", got)
	}
}

func TestScrollTarget(t *testing.T) {
	tests := []struct {
		offset float64
		want   float64
	}{
		{500, 420},
		{80, 0},
		{10, 0},
	}

	for _, tt := range tests {
		got := ScrollTarget(tt.offset, DefaultHeaderHeight)
		if got != tt.want {
			t.Errorf("ScrollTarget(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}
