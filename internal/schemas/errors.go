package schemas

import (
	"fmt"
	"strings"
)

// ValidationError represents a schema validation error with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ContractViolationError reports an upstream LLM response that broke its
// documented schema in a way validation cannot express (e.g. a rubric
// category missing from a factor analysis). Always fatal for the run.
type ContractViolationError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *ContractViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s contract violation: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s contract violation: %s", e.Schema, e.Message)
}

func (e *ContractViolationError) Unwrap() error {
	return e.Cause
}
