package schema

import "fmt"

// ValidationError reports a record field that failed validation.
type ValidationError struct {
	Record  string // "requirement", "test case", ...
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s: %s", e.Record, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Record, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func requirementError(field, message string) *ValidationError {
	return &ValidationError{Record: "requirement", Field: field, Message: message}
}

func testCaseError(field, message string) *ValidationError {
	return &ValidationError{Record: "test case", Field: field, Message: message}
}
