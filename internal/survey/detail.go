package survey

import (
	"sort"
	"strings"

	"github.com/anketa-app/anketa/internal/grading"
)

// Rendering markers for answers that cannot be shown verbatim.
const (
	markerNoAnswer        = "No answer"
	markerNotSelected     = "Not selected"
	markerUnknownOption   = "Unknown option"
	markerNoneSelected    = "None selected"
	markerNoCorrectAnswer = "No correct answer"
	markerNoReference     = "No reference answer"
	markerUnknownType     = "Unknown question type"
)

// QuestionResultDetail is one row of the per-question breakdown.
type QuestionResultDetail struct {
	QuestionID    string       `json:"question_id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Points        float64      `json:"points"`
	SubmittedText string       `json:"submitted_answer"`
	CorrectText   string       `json:"correct_answer"`
	Correct       bool         `json:"correct"`
	PointsAwarded float64      `json:"points_awarded"`
}

// ResultDetail is the reconstructed, human-readable view of a stored
// result. Score and MaxScore are shown as stored at submission time;
// the per-question rows are recomputed against the current question
// definitions, which may have drifted since.
type ResultDetail struct {
	ResultID    string                 `json:"result_id"`
	TestTitle   string                 `json:"test_title"`
	UserName    string                 `json:"user_name,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Age         *int                   `json:"age,omitempty"`
	CompletedAt int64                  `json:"completed_at"`
	Score       float64                `json:"score"`
	MaxScore    float64                `json:"max_score"`
	Percentage  float64                `json:"percentage"`
	Questions   []QuestionResultDetail `json:"questions"`
}

// BuildResultDetail rebuilds the per-question breakdown of a result from
// its stored answer payload and the test's current questions.
func BuildResultDetail(r Result, t Test, ev grading.Evaluator) ResultDetail {
	sub := DecodeAnswers(r.AnswersJSON)

	questions := make([]Question, len(t.Questions))
	copy(questions, t.Questions)
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })

	share := PointsPerQuestion(len(questions))
	rows := make([]QuestionResultDetail, 0, len(questions))
	for _, q := range questions {
		a := sub.AnswerFor(q.ID)
		correct := ev.IsCorrect(gradingView(q), gradingResponse(a))
		awarded := 0.0
		if correct {
			awarded = share
		}
		rows = append(rows, QuestionResultDetail{
			QuestionID:    q.ID,
			Text:          q.Text,
			Type:          q.Type,
			Points:        share,
			SubmittedText: renderSubmitted(q, a),
			CorrectText:   renderCorrect(q),
			Correct:       correct,
			PointsAwarded: awarded,
		})
	}

	pct := 0.0
	if r.MaxScore > 0 {
		pct = round2(100 * r.Score / r.MaxScore)
	}
	return ResultDetail{
		ResultID:    r.ID,
		TestTitle:   t.Title,
		UserName:    r.UserName,
		Group:       r.Group,
		Age:         r.Age,
		CompletedAt: r.CompletedAt,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		Percentage:  pct,
		Questions:   rows,
	}
}

func renderSubmitted(q Question, a *SubmittedAnswer) string {
	if a == nil {
		return markerNoAnswer
	}
	switch q.Type {
	case SingleChoice, TrueFalse:
		return selectedOptionText(q, a.SelectedOptionID)
	case MultipleChoice:
		return selectedOptionsText(q, a.SelectedOptionIDs)
	case TextAnswer:
		if strings.TrimSpace(a.TextAnswer) == "" {
			return markerNoAnswer
		}
		return a.TextAnswer
	default:
		return markerUnknownType
	}
}

func renderCorrect(q Question) string {
	switch q.Type {
	case SingleChoice, TrueFalse:
		if o, ok := firstCorrect(q.Options); ok {
			return o.Text
		}
		return markerNoCorrectAnswer
	case MultipleChoice:
		texts := []string{}
		for _, o := range q.Options {
			if o.Correct {
				texts = append(texts, o.Text)
			}
		}
		if len(texts) == 0 {
			return markerNoCorrectAnswer
		}
		return strings.Join(texts, ", ")
	case TextAnswer:
		if strings.TrimSpace(q.CorrectText) == "" {
			return markerNoReference
		}
		return q.CorrectText
	default:
		return markerUnknownType
	}
}

func selectedOptionText(q Question, optionID *int) string {
	if optionID == nil {
		return markerNotSelected
	}
	for _, o := range q.Options {
		if o.ID == *optionID {
			return o.Text
		}
	}
	// The option may have been edited away since submission.
	return markerUnknownOption
}

func selectedOptionsText(q Question, optionIDs []int) string {
	if len(optionIDs) == 0 {
		return markerNoneSelected
	}
	selected := map[int]bool{}
	for _, id := range optionIDs {
		selected[id] = true
	}
	texts := []string{}
	for _, o := range q.Options {
		if selected[o.ID] {
			texts = append(texts, o.Text)
		}
	}
	if len(texts) == 0 {
		return markerNoneSelected
	}
	return strings.Join(texts, ", ")
}

func firstCorrect(opts []AnswerOption) (AnswerOption, bool) {
	for _, o := range opts {
		if o.Correct {
			return o, true
		}
	}
	return AnswerOption{}, false
}
