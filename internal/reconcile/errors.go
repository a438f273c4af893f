package reconcile

import (
	"errors"
	"strings"
)

// FieldDetail describes one invalid request field.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input. It is raised before any fetch.
type ValidationError struct {
	Details []FieldDetail
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NotFoundError reports a well-formed lookup that legitimately matched
// nothing. Data optionally carries the empty result shape for the caller.
type NotFoundError struct {
	Message string
	Data    any
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
