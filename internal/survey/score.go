package survey

import (
	"math"
	"strings"

	"github.com/anketa-app/anketa/internal/grading"
)

// TotalPoints is the fixed score pool of every test, divided evenly
// across its questions. A test's max score is always this value (zero
// for a test without questions).
const TotalPoints = 5.0

// RespondentInfo carries the respondent fields a test author can mark
// required.
type RespondentInfo struct {
	UserName string
	Group    string
	Age      *int
}

// ValidateRequiredFields checks the respondent fields a test mandates.
// It runs before any scoring; a failure means nothing is persisted.
func ValidateRequiredFields(t Test, info RespondentInfo) error {
	if t.RequireName && strings.TrimSpace(info.UserName) == "" {
		return &ValidationError{Field: "name"}
	}
	if t.RequireGroup && strings.TrimSpace(info.Group) == "" {
		return &ValidationError{Field: "group"}
	}
	if t.RequireAge && info.Age == nil {
		return &ValidationError{Field: "age"}
	}
	return nil
}

// ComputeScore evaluates every question of the test against the
// submission and returns (score, maxScore). Each correct answer earns an
// even share of the fixed pool; the sum is rounded to two decimals, so
// the result is independent of question order.
func ComputeScore(t Test, sub Submission, ev grading.Evaluator) (float64, float64) {
	n := len(t.Questions)
	if n == 0 {
		return 0, 0
	}
	correct := 0
	for _, q := range t.Questions {
		if ev.IsCorrect(gradingView(q), gradingResponse(sub.AnswerFor(q.ID))) {
			correct++
		}
	}
	score := round2(TotalPoints / float64(n) * float64(correct))
	return score, TotalPoints
}

// PointsPerQuestion is the even share of the pool each question of the
// test is worth.
func PointsPerQuestion(questionCount int) float64 {
	if questionCount == 0 {
		return 0
	}
	return TotalPoints / float64(questionCount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// gradingView projects a question into the evaluator's minimal shape.
func gradingView(q Question) grading.Q {
	opts := make([]grading.Option, len(q.Options))
	for i, o := range q.Options {
		opts[i] = grading.Option{ID: o.ID, Correct: o.Correct}
	}
	return grading.Q{Type: string(q.Type), Options: opts, CorrectText: q.CorrectText}
}

func gradingResponse(a *SubmittedAnswer) *grading.Response {
	if a == nil {
		return nil
	}
	return &grading.Response{
		OptionID:  a.SelectedOptionID,
		OptionIDs: a.SelectedOptionIDs,
		Text:      a.TextAnswer,
	}
}
