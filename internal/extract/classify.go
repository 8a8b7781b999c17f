package extract

import (
	"errors"

	"github.com/jklim/schoolcal/internal/common"
)

// ErrorClass is the caller-visible outcome class of a pipeline failure.
type ErrorClass int

const (
	// ClassValidation is a structured input error (400-class).
	ClassValidation ErrorClass = iota
	// ClassConfig is an operator-fixable deployment defect (500-class).
	ClassConfig
	// ClassGeneric is a transient failure with a retry-suggested message
	// (500-class).
	ClassGeneric
)

// Classify maps a pipeline error to its outcome class and the message the
// end user sees. Only the configuration class exposes internal detail (the
// name of the missing setting); everything else gets a fixed message.
func Classify(err error) (ErrorClass, string) {
	switch {
	case errors.Is(err, common.ErrNoImages):
		return ClassValidation, "No images provided"
	case errors.Is(err, common.ErrTooManyPages):
		return ClassValidation, "Maximum 10 pages supported"
	case errors.Is(err, common.ErrDocumentParse):
		return ClassValidation, "Could not read the uploaded file. Please try another file."
	case errors.Is(err, common.ErrProviderConfig):
		return ClassConfig, "OpenAI API key not configured. Please set OPENAI_API_KEY environment variable."
	default:
		return ClassGeneric, "Failed to extract events. Please try again."
	}
}
