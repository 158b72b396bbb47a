// Package errors provides structured error types for the benchmark driver.
// All errors carry a category, code, and message so the binary can map any
// failure to the right exit status and diagnostic line.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies errors by failure domain.
type Category string

const (
	// CategoryUsage covers malformed flags and invalid configuration.
	CategoryUsage Category = "USAGE"
	// CategoryEngine covers any non-success status from the storage engine.
	// Engine errors are fatal to the run: a benchmark measurement is
	// all-or-nothing.
	CategoryEngine Category = "ENGINE"
	// CategoryInternal covers unexpected driver failures.
	CategoryInternal Category = "INTERNAL"
)

// Error codes for each category.
const (
	// Usage codes
	CodeBadFlag    = "BAD_FLAG"
	CodeBadConfig  = "BAD_CONFIG"
	CodeMissingKey = "MISSING_KEY"

	// Engine codes
	CodeOpenFailed       = "OPEN_FAILED"
	CodePragmaFailed     = "PRAGMA_FAILED"
	CodePrepareFailed    = "PREPARE_FAILED"
	CodeExecFailed       = "EXEC_FAILED"
	CodeStepFailed       = "STEP_FAILED"
	CodeCheckpointFailed = "CHECKPOINT_FAILED"
	CodeCloseFailed      = "CLOSE_FAILED"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// BenchError is the structured error type used throughout the driver.
type BenchError struct {
	Category Category
	Code     string
	Message  string
	Cause    error
}

// Error returns a formatted error string.
func (e *BenchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *BenchError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *BenchError) Is(target error) bool {
	var t *BenchError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new BenchError.
func New(category Category, code, message string) *BenchError {
	return &BenchError{Category: category, Code: code, Message: message}
}

// Wrap creates a new BenchError wrapping an existing error.
func Wrap(category Category, code, message string, cause error) *BenchError {
	return &BenchError{Category: category, Code: code, Message: message, Cause: cause}
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a BenchError.
func GetCategory(err error) Category {
	var be *BenchError
	if errors.As(err, &be) {
		return be.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a BenchError.
func GetCode(err error) string {
	var be *BenchError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Convenience constructors.

func NewUsageError(code, message string) *BenchError {
	return New(CategoryUsage, code, message)
}

func NewEngineError(code, message string, cause error) *BenchError {
	return Wrap(CategoryEngine, code, message, cause)
}

func NewInternalError(message string, cause error) *BenchError {
	return Wrap(CategoryInternal, CodeUnexpected, message, cause)
}
