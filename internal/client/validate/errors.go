package validate

import "strings"

type FieldError struct {
	Field   string
	Message string
}

// Errors lists the failing fields in form order, at most one message per
// field.
type Errors []FieldError

func (e *Errors) add(field, msg string) {
	if msg != "" {
		*e = append(*e, FieldError{Field: field, Message: msg})
	}
}

// Any reports whether validation failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Get returns the message for field, "" when the field is valid.
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Summary is the first message, suitable for a single-line notification.
func (e Errors) Summary() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}
