// Package errors defines the pipeline error taxonomy: source-file and
// connectivity failures carry remediation hints and are non-fatal to later
// phases, verification failures are logged and ignored, and model-fitting
// failures propagate untouched.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a pipeline failure.
type Code string

const (
	CodeSourceFile   Code = "SOURCE_FILE"
	CodeStorage      Code = "STORAGE"
	CodeVerification Code = "VERIFICATION"
	CodeBadData      Code = "BAD_DATA"
)

// PipelineError is a coded error with optional remediation hints surfaced to
// the operator on the console.
type PipelineError struct {
	Code    Code
	Message string
	Hints   []string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New creates a coded pipeline error.
func New(code Code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap annotates an underlying error with a code and message.
func Wrap(err error, code Code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// WithHints attaches operator remediation hints.
func (e *PipelineError) WithHints(hints ...string) *PipelineError {
	e.Hints = append(e.Hints, hints...)
	return e
}

// CodeOf returns the code carried by err, or an empty code for plain errors.
func CodeOf(err error) Code {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HintsOf returns any remediation hints carried by err.
func HintsOf(err error) []string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Hints
	}
	return nil
}

// StorageHints is the fixed troubleshooting checklist printed when a load
// into the relational store fails.
func StorageHints(database string) []string {
	return []string{
		"Check the database server is running",
		fmt.Sprintf("Verify database %q exists", database),
		"Confirm the pipeline user can create and drop tables",
		"Check the configured driver matches the server",
	}
}
