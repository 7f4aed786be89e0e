package llm

import "fmt"

// LLMError represents a fault inside the suggestion source. It never leaves
// Suggester.Suggest as a returned error; it is recorded in SuggestionResult.
type LLMError struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeModel      = "model"
	ErrorTypeValidation = "validation"
	ErrorTypeParse      = "parse"
)

// Error implements the error interface.
func (e *LLMError) Error() string {
	return fmt.Sprintf("LLM %s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewModelError creates an error for a model that is missing or failed to answer.
func NewModelError(model string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeModel,
		Message: fmt.Sprintf("model %q unavailable", model),
		Err:     err,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("Validation failed: %s", message),
		Err:     err,
	}
}

// NewParseError creates a parse error.
func NewParseError(content string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("Failed to parse LLM output: %s", content),
		Err:     err,
	}
}
