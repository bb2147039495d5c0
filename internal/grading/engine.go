package grading

// Q is a minimal view of a question needed for correctness checks.
// Callers convert their own question type into this shape so the
// evaluator stays free of storage concerns.
type Q struct {
	Type        string
	Options     []Option
	CorrectText string
}

// Option is one answer choice of a choice-based question.
type Option struct {
	ID      int
	Correct bool
}

// Response is a respondent's answer to a single question. A nil
// *Response means the question was skipped.
type Response struct {
	OptionID  *int  // single_choice, true_false
	OptionIDs []int // multiple_choice
	Text      string
}

// Evaluator decides whether a response answers a question correctly.
// Implementations are pure: no side effects, total over all inputs.
type Evaluator interface {
	IsCorrect(q Q, resp *Response) bool
}

// Strategy checks a single question type.
type Strategy interface {
	Correct(q Q, resp Response) bool
}

type defaultEvaluator struct {
	strategies map[string]Strategy
}

// NewEvaluator installs the built-in strategies, one per question type.
// Unknown types and skipped questions are always incorrect.
func NewEvaluator() Evaluator {
	return &defaultEvaluator{
		strategies: map[string]Strategy{
			"single_choice":   singleChoiceStrategy{},
			"true_false":      singleChoiceStrategy{},
			"multiple_choice": multiChoiceStrategy{},
			"text_answer":     textAnswerStrategy{},
		},
	}
}

func (e *defaultEvaluator) IsCorrect(q Q, resp *Response) bool {
	if resp == nil {
		return false
	}
	s, ok := e.strategies[q.Type]
	if !ok {
		return false
	}
	return s.Correct(q, *resp)
}

// singleChoiceStrategy also covers true/false questions: those are two
// ordinary options with one flagged correct.
type singleChoiceStrategy struct{}

func (singleChoiceStrategy) Correct(q Q, resp Response) bool {
	correct, ok := firstCorrectOption(q.Options)
	if !ok || resp.OptionID == nil {
		return false
	}
	return *resp.OptionID == correct.ID
}

// multiChoiceStrategy is all-or-nothing: the selected set must equal the
// non-empty correct set exactly. Partial overlap earns nothing.
type multiChoiceStrategy struct{}

func (multiChoiceStrategy) Correct(q Q, resp Response) bool {
	correct := map[int]struct{}{}
	for _, o := range q.Options {
		if o.Correct {
			correct[o.ID] = struct{}{}
		}
	}
	if len(correct) == 0 {
		return false
	}
	selected := map[int]struct{}{}
	for _, id := range resp.OptionIDs {
		selected[id] = struct{}{}
	}
	if len(selected) != len(correct) {
		return false
	}
	for id := range selected {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

type textAnswerStrategy struct{}

func (textAnswerStrategy) Correct(q Q, resp Response) bool {
	return textMatch(resp.Text, q.CorrectText)
}

func firstCorrectOption(opts []Option) (Option, bool) {
	for _, o := range opts {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}
