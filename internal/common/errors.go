package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline's failure taxonomy. Callers classify
// with errors.Is; the orchestration boundary maps each kind to one of the
// three caller-visible outcomes (validation / configuration / generic).
var (
	// Input validation errors, rejected before any model call.
	ErrNoImages      = errors.New("no images provided")
	ErrTooManyPages  = errors.New("too many pages")
	ErrDocumentParse = errors.New("document could not be parsed")

	// Configuration errors that the operator must fix.
	ErrProviderConfig = errors.New("model provider not configured")

	// Extraction errors, surfaced to the user as a generic retry prompt.
	ErrMalformedResponse = errors.New("malformed model response")
	ErrTimeout           = errors.New("extraction timed out")

	// Encoding errors indicate a data-shape bug and carry their cause.
	ErrNoEvents = errors.New("no events to generate calendar for")
	ErrEncoding = errors.New("calendar encoding failed")
)

// AppError carries a machine code alongside a human message and cause.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
