package generator

import (
	"unicode/utf8"

	"github.com/studyhub/backend/internal/models"
)

// StructuralScore holds the individual structural compliance checks.
type StructuralScore struct {
	QuestionLengthOK       bool
	AllChoicesInRange      bool
	ExplanationPresent     bool
	CorrectAnswerDistribOK bool
}

const (
	minQuestionRunes = 10
	maxQuestionRunes = 400
	maxChoiceRunes   = 150
)

// ComputeStructuralScore evaluates structural compliance for a single
// question. CorrectAnswerDistribOK is set by the caller from batch warnings.
func ComputeStructuralScore(q models.Question) StructuralScore {
	n := utf8.RuneCountInString(q.Question)

	choicesOK := len(q.Choices) == models.ChoiceCount
	for _, c := range q.Choices {
		if l := utf8.RuneCountInString(c); l == 0 || l > maxChoiceRunes {
			choicesOK = false
		}
	}

	return StructuralScore{
		QuestionLengthOK:       n >= minQuestionRunes && n <= maxQuestionRunes,
		AllChoicesInRange:      choicesOK,
		ExplanationPresent:     q.Explanation != "",
		CorrectAnswerDistribOK: true,
	}
}

// ComputeQualityScore calculates a composite quality score (0.0-1.0).
//
// Formula: verification_confidence * 0.60 + structural * 0.40
func ComputeQualityScore(vr *VerificationResult, structural StructuralScore) float64 {
	verificationScore := 0.4 // unverified
	if vr != nil {
		switch {
		case !vr.Matches:
			verificationScore = 0.0
		case vr.Confidence == "high":
			verificationScore = 1.0
		case vr.Confidence == "medium":
			verificationScore = 0.7
		}
	}

	// 4 checks, each worth 0.25
	structuralScore := 0.0
	if structural.QuestionLengthOK {
		structuralScore += 0.25
	}
	if structural.AllChoicesInRange {
		structuralScore += 0.25
	}
	if structural.ExplanationPresent {
		structuralScore += 0.25
	}
	if structural.CorrectAnswerDistribOK {
		structuralScore += 0.25
	}

	return verificationScore*0.60 + structuralScore*0.40
}

// ClassifyQuality returns "reject" (< 0.50), "flagged" (0.50-0.70) or
// "passed" (> 0.70).
func ClassifyQuality(score float64) string {
	if score < 0.50 {
		return "reject"
	}
	if score <= 0.70 {
		return "flagged"
	}
	return "passed"
}
