package grading

import "testing"

func intPtr(v int) *int { return &v }

func TestSingleChoice(t *testing.T) {
	q := Q{Type: "single_choice", Options: []Option{
		{ID: 1, Correct: false},
		{ID: 2, Correct: true},
		{ID: 3, Correct: false},
	}}

	tests := []struct {
		name string
		resp *Response
		want bool
	}{
		{"correct option", &Response{OptionID: intPtr(2)}, true},
		{"wrong option", &Response{OptionID: intPtr(1)}, false},
		{"nonexistent option", &Response{OptionID: intPtr(9)}, false},
		{"nothing selected", &Response{}, false},
		{"skipped", nil, false},
	}
	ev := NewEvaluator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ev.IsCorrect(q, tc.resp); got != tc.want {
				t.Errorf("IsCorrect = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSingleChoiceFirstCorrectWinsWhenSeveralFlagged(t *testing.T) {
	q := Q{Type: "single_choice", Options: []Option{
		{ID: 1, Correct: true},
		{ID: 2, Correct: true},
	}}
	ev := NewEvaluator()
	if !ev.IsCorrect(q, &Response{OptionID: intPtr(1)}) {
		t.Error("first flagged option should be accepted")
	}
	if ev.IsCorrect(q, &Response{OptionID: intPtr(2)}) {
		t.Error("second flagged option should not be accepted")
	}
}

func TestNoCorrectOptionNeverMatches(t *testing.T) {
	ev := NewEvaluator()
	for _, typ := range []string{"single_choice", "true_false"} {
		q := Q{Type: typ, Options: []Option{{ID: 1}, {ID: 2}}}
		for id := 1; id <= 2; id++ {
			if ev.IsCorrect(q, &Response{OptionID: intPtr(id)}) {
				t.Errorf("%s: option %d accepted with no correct option", typ, id)
			}
		}
	}
	multi := Q{Type: "multiple_choice", Options: []Option{{ID: 1}, {ID: 2}}}
	if ev.IsCorrect(multi, &Response{OptionIDs: []int{1, 2}}) {
		t.Error("multiple_choice: accepted with empty correct set")
	}
}

func TestMultipleChoiceAllOrNothing(t *testing.T) {
	q := Q{Type: "multiple_choice", Options: []Option{
		{ID: 1, Correct: true},
		{ID: 2, Correct: false},
		{ID: 3, Correct: true},
		{ID: 4, Correct: false},
	}}

	tests := []struct {
		name     string
		selected []int
		want     bool
	}{
		{"exact set", []int{1, 3}, true},
		{"exact set reversed", []int{3, 1}, true},
		{"strict subset", []int{1}, false},
		{"superset", []int{1, 3, 2}, false},
		{"disjoint", []int{2, 4}, false},
		{"empty", nil, false},
	}
	ev := NewEvaluator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ev.IsCorrect(q, &Response{OptionIDs: tc.selected})
			if got != tc.want {
				t.Errorf("selected %v: got %v, want %v", tc.selected, got, tc.want)
			}
		})
	}
}

func TestTextAnswerMatching(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		submitted string
		want      bool
	}{
		{"exact", "Paris", "Paris", true},
		{"case insensitive", "Paris", "PARIS", true},
		{"surrounding whitespace", "Paris", "  paris  ", true},
		{"different answer", "Paris", "London", false},
		{"blank submitted", "Paris", "   ", false},
		{"blank reference", "", "Paris", false},
		{"blank both", "", "", false},
		{"whitespace both", "  ", "  ", false},
	}
	ev := NewEvaluator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Q{Type: "text_answer", CorrectText: tc.reference}
			got := ev.IsCorrect(q, &Response{Text: tc.submitted})
			if got != tc.want {
				t.Errorf("%q vs %q: got %v, want %v", tc.submitted, tc.reference, got, tc.want)
			}
		})
	}
}

func TestTrueFalse(t *testing.T) {
	q := Q{Type: "true_false", Options: []Option{
		{ID: 1, Correct: true},  // true
		{ID: 2, Correct: false}, // false
	}}
	ev := NewEvaluator()
	if !ev.IsCorrect(q, &Response{OptionID: intPtr(1)}) {
		t.Error("correct option rejected")
	}
	if ev.IsCorrect(q, &Response{OptionID: intPtr(2)}) {
		t.Error("wrong option accepted")
	}
}

func TestUnknownTypeIsAlwaysIncorrect(t *testing.T) {
	ev := NewEvaluator()
	q := Q{Type: "essay", Options: []Option{{ID: 1, Correct: true}}}
	if ev.IsCorrect(q, &Response{OptionID: intPtr(1)}) {
		t.Error("unknown question type must never be correct")
	}
}
