package survey

import (
	"math"
	"testing"

	"github.com/anketa-app/anketa/internal/grading"
)

func fourQuestionTest() Test {
	return Test{
		ID:    "t1",
		Title: "Geography",
		Questions: []Question{
			{ID: "q1", Order: 1, Text: "Capital of France?", Type: SingleChoice, Options: []AnswerOption{
				{ID: 1, Text: "Paris", Correct: true},
				{ID: 2, Text: "Lyon"},
			}},
			{ID: "q2", Order: 2, Text: "Seas of Europe?", Type: MultipleChoice, Options: []AnswerOption{
				{ID: 1, Text: "Baltic", Correct: true},
				{ID: 2, Text: "Caspian"},
				{ID: 3, Text: "North", Correct: true},
			}},
			{ID: "q3", Order: 3, Text: "Longest river?", Type: TextAnswer, CorrectText: "Volga"},
			{ID: "q4", Order: 4, Text: "Iceland is an island.", Type: TrueFalse, Options: []AnswerOption{
				{ID: 1, Text: "True", Correct: true},
				{ID: 2, Text: "False"},
			}},
		},
	}
}

func TestDetailPointsSumToStoredScoreWhenFresh(t *testing.T) {
	ev := grading.NewEvaluator()
	tst := fourQuestionTest()
	// Three of four correct.
	sub := Submission{
		{QuestionID: "q1", Type: SingleChoice, SelectedOptionID: intPtr(1)},
		{QuestionID: "q2", Type: MultipleChoice, SelectedOptionIDs: []int{3, 1}},
		{QuestionID: "q3", Type: TextAnswer, TextAnswer: "Dnieper"},
		{QuestionID: "q4", Type: TrueFalse, SelectedOptionID: intPtr(1)},
	}
	score, max := ComputeScore(tst, sub, ev)
	if score != 3.75 || max != 5 {
		t.Fatalf("score = (%v, %v), want (3.75, 5)", score, max)
	}

	r := Result{ID: "r1", TestID: "t1", Score: score, MaxScore: max, AnswersJSON: EncodeAnswers(sub)}
	d := BuildResultDetail(r, tst, ev)

	sum := 0.0
	for _, row := range d.Questions {
		sum += row.PointsAwarded
	}
	if math.Abs(sum-score) > 1e-9 {
		t.Errorf("points awarded sum to %v, stored score is %v", sum, score)
	}
	if d.Percentage != 75 {
		t.Errorf("percentage = %v, want 75", d.Percentage)
	}
}

func TestDetailRendersAnswers(t *testing.T) {
	ev := grading.NewEvaluator()
	tst := fourQuestionTest()
	sub := Submission{
		{QuestionID: "q1", Type: SingleChoice, SelectedOptionID: intPtr(2)},
		{QuestionID: "q2", Type: MultipleChoice, SelectedOptionIDs: []int{1, 3}},
		{QuestionID: "q3", Type: TextAnswer, TextAnswer: "Volga"},
	}
	r := Result{AnswersJSON: EncodeAnswers(sub), Score: 2.5, MaxScore: 5}
	d := BuildResultDetail(r, tst, ev)

	if len(d.Questions) != 4 {
		t.Fatalf("got %d rows, want 4", len(d.Questions))
	}
	rows := map[string]QuestionResultDetail{}
	for _, row := range d.Questions {
		rows[row.QuestionID] = row
	}

	if got := rows["q1"].SubmittedText; got != "Lyon" {
		t.Errorf("q1 submitted = %q, want Lyon", got)
	}
	if got := rows["q1"].CorrectText; got != "Paris" {
		t.Errorf("q1 correct = %q, want Paris", got)
	}
	if rows["q1"].Correct {
		t.Error("q1 should be incorrect")
	}
	if got := rows["q2"].SubmittedText; got != "Baltic, North" {
		t.Errorf("q2 submitted = %q, want Baltic, North", got)
	}
	if got := rows["q2"].CorrectText; got != "Baltic, North" {
		t.Errorf("q2 correct = %q, want Baltic, North", got)
	}
	if !rows["q2"].Correct {
		t.Error("q2 should be correct")
	}
	if got := rows["q3"].SubmittedText; got != "Volga" {
		t.Errorf("q3 submitted = %q, want Volga", got)
	}
	// q4 skipped entirely.
	if got := rows["q4"].SubmittedText; got != "No answer" {
		t.Errorf("q4 submitted = %q, want No answer", got)
	}
	if rows["q4"].Correct {
		t.Error("skipped question must be incorrect")
	}
}

func TestDetailMarkersForMissingAndUnknown(t *testing.T) {
	ev := grading.NewEvaluator()
	tst := fourQuestionTest()
	sub := Submission{
		// Option 9 no longer exists on q1.
		{QuestionID: "q1", Type: SingleChoice, SelectedOptionID: intPtr(9)},
		// Nothing selected for q2.
		{QuestionID: "q2", Type: MultipleChoice},
		// Blank text for q3.
		{QuestionID: "q3", Type: TextAnswer, TextAnswer: "   "},
		// Nothing selected for q4.
		{QuestionID: "q4", Type: TrueFalse},
	}
	d := BuildResultDetail(Result{AnswersJSON: EncodeAnswers(sub)}, tst, ev)

	rows := map[string]QuestionResultDetail{}
	for _, row := range d.Questions {
		rows[row.QuestionID] = row
	}
	if got := rows["q1"].SubmittedText; got != "Unknown option" {
		t.Errorf("q1 = %q, want Unknown option", got)
	}
	if got := rows["q2"].SubmittedText; got != "None selected" {
		t.Errorf("q2 = %q, want None selected", got)
	}
	if got := rows["q3"].SubmittedText; got != "No answer" {
		t.Errorf("q3 = %q, want No answer", got)
	}
	if got := rows["q4"].SubmittedText; got != "Not selected" {
		t.Errorf("q4 = %q, want Not selected", got)
	}
}

func TestDetailZeroMaxScoreGuard(t *testing.T) {
	d := BuildResultDetail(Result{Score: 0, MaxScore: 0}, Test{}, grading.NewEvaluator())
	if d.Percentage != 0 {
		t.Errorf("percentage = %v, want 0", d.Percentage)
	}
}

func TestDetailOrdersRowsByQuestionOrder(t *testing.T) {
	tst := fourQuestionTest()
	// Shuffle the slice; Order fields still say 1..4.
	tst.Questions[0], tst.Questions[3] = tst.Questions[3], tst.Questions[0]
	d := BuildResultDetail(Result{}, tst, grading.NewEvaluator())
	want := []string{"q1", "q2", "q3", "q4"}
	for i, row := range d.Questions {
		if row.QuestionID != want[i] {
			t.Fatalf("row %d = %s, want %s", i, row.QuestionID, want[i])
		}
	}
}

func TestDetailCorruptPayloadStillViewable(t *testing.T) {
	tst := fourQuestionTest()
	d := BuildResultDetail(Result{Score: 3.75, MaxScore: 5, AnswersJSON: "{corrupt"}, tst, grading.NewEvaluator())
	if len(d.Questions) != 4 {
		t.Fatalf("got %d rows, want 4", len(d.Questions))
	}
	for _, row := range d.Questions {
		if row.Correct {
			t.Errorf("%s: corrupt payload must score incorrect", row.QuestionID)
		}
		if row.SubmittedText != "No answer" {
			t.Errorf("%s: submitted = %q, want No answer", row.QuestionID, row.SubmittedText)
		}
	}
	// The cached score is displayed as stored.
	if d.Score != 3.75 {
		t.Errorf("stored score = %v, want 3.75", d.Score)
	}
}
