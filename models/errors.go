package models

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound reports a lookup, update or delete against an id with no
// stored record.
var ErrTaskNotFound = errors.New("Task not found")

// ErrDuplicateTitle reports a create whose title is already taken.
var ErrDuplicateTitle = errors.New("Task with this title already exists")

type ValidationKind int

const (
	KindRequired ValidationKind = iota
	KindEmpty
	KindLength
	KindRange
	KindType
	KindFormat
	KindPastDate
	KindEnum
	KindUnexpectedField
)

// ValidationError is a field-level rejection. Error() renders the
// creation-time wording; the HTTP layer rewords update-time failures.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindRequired:
		return fmt.Sprintf("Field '%s' is required", e.Field)
	case KindEmpty:
		return fmt.Sprintf("Field '%s' cannot be empty", e.Field)
	case KindLength:
		return fmt.Sprintf("Field '%s' exceeds maximum length", e.Field)
	case KindRange:
		return fmt.Sprintf("Field '%s' must be between 1 and 5", e.Field)
	case KindType:
		return fmt.Sprintf("Field '%s' must be an integer", e.Field)
	case KindFormat:
		return fmt.Sprintf("Field '%s' must be a valid date", e.Field)
	case KindPastDate:
		return fmt.Sprintf("Field '%s' cannot be in the past", e.Field)
	case KindEnum:
		return fmt.Sprintf("Field '%s' has an invalid value", e.Field)
	case KindUnexpectedField:
		return fmt.Sprintf("Unexpected field '%s'", e.Field)
	}
	return fmt.Sprintf("Field '%s' is invalid", e.Field)
}
