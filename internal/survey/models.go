package survey

// QuestionType tags a question with its evaluation semantics.
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TextAnswer     QuestionType = "text_answer"
	TrueFalse      QuestionType = "true_false"
)

// AnswerOption is one selectable choice of a question. IDs are small
// integers assigned 1..n at authoring time, unique within the question.
type AnswerOption struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID     string       `json:"id"`
	TestID string       `json:"test_id,omitempty"`
	Order  int          `json:"order"`
	Text   string       `json:"text"`
	Type   QuestionType `json:"type"`

	Options []AnswerOption `json:"options,omitempty"` // choice-based types only

	// Reference answer for text_answer questions; compared trimmed and
	// case-insensitively.
	CorrectText string `json:"correct_text,omitempty"`
}

type Test struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty"`
	CreatedAt    int64      `json:"created_at,omitempty"`
	Published    bool       `json:"published"`
	RequireName  bool       `json:"require_name"`
	RequireGroup bool       `json:"require_group"`
	RequireAge   bool       `json:"require_age"`
	Questions    []Question `json:"questions"`
}

// TestSummary is the list-view projection of a test.
type TestSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	CreatedAt     int64  `json:"created_at"`
	Published     bool   `json:"published"`
	QuestionCount int    `json:"question_count"`
}

// SubmittedAnswer is one respondent answer, tagged with the question it
// answers and the question's type. Exactly one of the value fields is
// meaningful, depending on Type.
type SubmittedAnswer struct {
	QuestionID string       `json:"question_id"`
	Type       QuestionType `json:"type"`

	SelectedOptionID  *int   `json:"selected_option_id,omitempty"`  // single_choice, true_false
	SelectedOptionIDs []int  `json:"selected_option_ids,omitempty"` // multiple_choice, order-irrelevant
	TextAnswer        string `json:"text_answer,omitempty"`         // text_answer
}

// Submission is a respondent's full answer set for one attempt, at most
// one answer per question.
type Submission []SubmittedAnswer

// AnswerFor returns the answer for a question, or nil if the respondent
// skipped it.
func (s Submission) AnswerFor(questionID string) *SubmittedAnswer {
	for i := range s {
		if s[i].QuestionID == questionID {
			return &s[i]
		}
	}
	return nil
}

// Result is the immutable record of one completed submission. AnswersJSON
// holds the encoded answer set and is the durable source of truth for
// later reconstruction; Score/MaxScore are cached derived values.
type Result struct {
	ID          string  `json:"id"`
	TestID      string  `json:"test_id"`
	UserName    string  `json:"user_name,omitempty"`
	Group       string  `json:"group,omitempty"`
	Age         *int    `json:"age,omitempty"`
	CompletedAt int64   `json:"completed_at"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	AnswersJSON string  `json:"-"`
}
