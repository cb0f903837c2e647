package gpa

import (
	"github.com/shopspring/decimal"
)

// Grade is one row of the grading scale.
type Grade struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Scale is the eight-step grading scale, highest first.
var Scale = []Grade{
	{"A", decimal.RequireFromString("4.0")},
	{"B+", decimal.RequireFromString("3.5")},
	{"B", decimal.RequireFromString("3.0")},
	{"C+", decimal.RequireFromString("2.5")},
	{"C", decimal.RequireFromString("2.0")},
	{"D+", decimal.RequireFromString("1.5")},
	{"D", decimal.RequireFromString("1.0")},
	{"F", decimal.Zero},
}

const (
	MinCredits = 1
	MaxCredits = 6
)

// Band is the colour band of a GPA.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

var bandColors = map[Band]string{
	BandExcellent: "#10B981",
	BandGood:      "#F59E0B",
	BandFair:      "#F97316",
	BandPoor:      "#EF4444",
}

type Course struct {
	Name    string `json:"name"`
	Credits int    `json:"credits" validate:"min=1,max=6"`
	Grade   string `json:"grade"`
}

type Result struct {
	GPA          string `json:"gpa"`
	TotalCredits int    `json:"total_credits"`
	TotalPoints  string `json:"total_points"`
	Band         Band   `json:"band"`
	Color        string `json:"color"`
}

// GradeValue looks up a grade label. Unknown labels are worth zero.
func GradeValue(label string) decimal.Decimal {
	for _, g := range Scale {
		if g.Label == label {
			return g.Value
		}
	}
	return decimal.Zero
}

// Calculate returns the credit-weighted average rounded to two places.
// With no credits the GPA is "0.00".
func Calculate(courses []Course) Result {
	totalCredits := 0
	points := decimal.Zero
	for _, c := range courses {
		totalCredits += c.Credits
		points = points.Add(GradeValue(c.Grade).Mul(decimal.NewFromInt(int64(c.Credits))))
	}

	gpa := decimal.Zero
	if totalCredits > 0 {
		gpa = points.DivRound(decimal.NewFromInt(int64(totalCredits)), 2)
	}

	band := BandFor(gpa)
	return Result{
		GPA:          gpa.StringFixed(2),
		TotalCredits: totalCredits,
		TotalPoints:  points.StringFixed(1),
		Band:         band,
		Color:        bandColors[band],
	}
}

// BandFor maps a GPA onto its colour band.
func BandFor(gpa decimal.Decimal) Band {
	switch {
	case gpa.GreaterThanOrEqual(decimal.RequireFromString("3.5")):
		return BandExcellent
	case gpa.GreaterThanOrEqual(decimal.RequireFromString("2.5")):
		return BandGood
	case gpa.GreaterThanOrEqual(decimal.RequireFromString("1.5")):
		return BandFair
	default:
		return BandPoor
	}
}
