package entity

import "strings"

// FieldError is a single field-scoped validation message, suitable for
// returning to the client verbatim.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects validation failures for one entity. A nil slice
// means the entity is valid.
type FieldErrors []FieldError

func (e FieldErrors) Add(field, message string) FieldErrors {
	return append(e, FieldError{Field: field, Message: message})
}

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "valid"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return strings.Join(parts, "; ")
}
