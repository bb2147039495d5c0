package survey

import "encoding/json"

// EncodeAnswers serializes a submission to the durable payload stored on
// a result. Only the value field relevant to each answer's question type
// is carried; duplicates for the same question are dropped (first wins).
func EncodeAnswers(sub Submission) string {
	seen := map[string]bool{}
	out := make(Submission, 0, len(sub))
	for _, a := range sub {
		if a.QuestionID == "" || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		out = append(out, normalizeAnswer(a))
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(buf)
}

// DecodeAnswers is the inverse of EncodeAnswers. Malformed or empty
// payloads decode to an empty submission, never an error: a corrupt or
// legacy record stays viewable and simply scores as all-incorrect.
func DecodeAnswers(payload string) Submission {
	if payload == "" {
		return Submission{}
	}
	var sub Submission
	if err := json.Unmarshal([]byte(payload), &sub); err != nil {
		return Submission{}
	}
	seen := map[string]bool{}
	out := make(Submission, 0, len(sub))
	for _, a := range sub {
		if a.QuestionID == "" || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		out = append(out, normalizeAnswer(a))
	}
	return out
}

// normalizeAnswer keeps exactly the fields meaningful for the answer's
// question type, so encode(decode(p)) is stable and round-trips.
func normalizeAnswer(a SubmittedAnswer) SubmittedAnswer {
	n := SubmittedAnswer{QuestionID: a.QuestionID, Type: a.Type}
	switch a.Type {
	case SingleChoice, TrueFalse:
		n.SelectedOptionID = a.SelectedOptionID
	case MultipleChoice:
		n.SelectedOptionIDs = a.SelectedOptionIDs
	case TextAnswer:
		n.TextAnswer = a.TextAnswer
	}
	return n
}
