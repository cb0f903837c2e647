package markdown

// ── Scroll Spy ──────────────────────────────────────────

const (
	// DefaultSpyThreshold is how far below the viewport top a heading may sit
	// and still count as the active section.
	DefaultSpyThreshold = 120.0
	// DefaultHeaderHeight is the fixed page header a scroll target must clear.
	DefaultHeaderHeight = 80.0
)

// HeadingPosition is the measured top offset of a rendered heading.
type HeadingPosition struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// ActiveHeading returns the id of the last heading, in document order, whose
// top lies above scrollY+threshold. It returns "" when none qualifies.
func ActiveHeading(positions []HeadingPosition, scrollY, threshold float64) string {
	active := ""
	for _, p := range positions {
		if p.Top < scrollY+threshold {
			active = p.ID
		}
	}
	return active
}

// ScrollTarget returns the scroll position that brings a heading at offset
// just below the page header.
func ScrollTarget(offset, headerHeight float64) float64 {
	if target := offset - headerHeight; target > 0 {
		return target
	}
	return 0
}
