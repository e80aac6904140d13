package usecase

import (
	"errors"
	"strings"
)

// DomainError is a business rule refusal the user can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a failed platform call. Err keeps the full cause for
// logs while Message stays short enough to show to users.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ValidationFailure carries every field problem found before any call was
// made.
type ValidationFailure struct {
	Errors []ValidationError
}

func (e *ValidationFailure) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func IsValidationFailure(err error) bool {
	var vf *ValidationFailure
	return errors.As(err, &vf)
}

func validationFailure(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationFailure{Errors: errs}
}

const (
	CodeNotFound       = "NOT_FOUND"
	CodeAPIError       = "API_ERROR"
	CodeInProgress     = "CONVERSION_IN_PROGRESS"
	CodeMeetingNotDone = "MEETING_NOT_COMPLETED"
	CodeUploadFailed   = "UPLOAD_FAILED"
	CodeUnknownLookup  = "UNKNOWN_LOOKUP"
)

func apiFailure(message string, err error) error {
	return &TechnicalError{Code: CodeAPIError, Message: message, Err: err}
}

func notFound(message string) error {
	return &DomainError{Code: CodeNotFound, Message: message}
}
