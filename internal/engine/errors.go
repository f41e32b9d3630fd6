package engine

import (
	"errors"
	"fmt"
)

// InputError reports a data-integrity violation in the roster or
// catalog handed to New.
//
// These are programmer/data errors, not business outcomes: a person
// referencing an unknown activity, duplicate names, or impossible
// capacity bounds would silently corrupt the engine's consistency
// invariant if absorbed, so they fail fast before any assignment work.
type InputError struct {
	// Code identifies the error category.
	Code InputErrorCode

	// Message is a human-readable description.
	Message string

	// Subject is the offending person or activity name.
	Subject string
}

// InputErrorCode categorizes input errors.
type InputErrorCode string

const (
	// ErrCodeDuplicatePerson indicates two people share a name.
	ErrCodeDuplicatePerson InputErrorCode = "DUPLICATE_PERSON"

	// ErrCodeDuplicateActivity indicates two activities share a name.
	ErrCodeDuplicateActivity InputErrorCode = "DUPLICATE_ACTIVITY"

	// ErrCodeUnknownActivity indicates a preference references an
	// activity that is not in the catalog.
	ErrCodeUnknownActivity InputErrorCode = "UNKNOWN_ACTIVITY"

	// ErrCodeInvalidCapacity indicates min > max or max < 1.
	ErrCodeInvalidCapacity InputErrorCode = "INVALID_CAPACITY"

	// ErrCodeTooManyPreferences indicates a preference list longer
	// than the four ranks the engine tracks.
	ErrCodeTooManyPreferences InputErrorCode = "TOO_MANY_PREFERENCES"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (subject=%q)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInputError returns true if the error is an InputError.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func newInputError(code InputErrorCode, subject, format string, args ...any) *InputError {
	return &InputError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Subject: subject,
	}
}
