package survey

import "errors"

var (
	ErrTestNotFound   = errors.New("test not found")
	ErrResultNotFound = errors.New("result not found")
)

// ValidationError reports a missing required respondent field. It is
// raised before any scoring or persistence and is user-correctable.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "required field missing: " + e.Field
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
