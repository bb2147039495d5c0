package grading

import "strings"

// textMatch compares a submitted text answer against the reference
// answer: surrounding whitespace is ignored and the comparison is
// case-insensitive (Unicode case folding). A blank side never matches,
// so an empty reference answer cannot silently accept empty input.
func textMatch(submitted, reference string) bool {
	submitted = strings.TrimSpace(submitted)
	reference = strings.TrimSpace(reference)
	if submitted == "" || reference == "" {
		return false
	}
	return strings.EqualFold(submitted, reference)
}
