package errors

import (
	stderrors "errors"
	"fmt"
)

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a calculator input that breaks the working-time rules.
// Err is one of the calculation sentinels below so callers can match the kind with errors.Is.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s (%s=%s)", e.Err, e.Reason, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Calculation failures. Both are permanent for the given inputs.
var (
	ErrOutOfWorkingHours = fmt.Errorf("out of working hours")
	ErrInvalidTurnaround = fmt.Errorf("invalid turnaround")
)

// Input parsing failures
var (
	ErrInvalidSubmissionTime   = fmt.Errorf("invalid submission time")
	ErrInvalidTurnaroundFormat = fmt.Errorf("invalid turnaround format")
	ErrInvalidFieldCount       = fmt.Errorf("invalid field count")
	ErrEmptyRecord             = fmt.Errorf("empty record")
)

// Label maps an error to a stable, low-cardinality name for metrics and logs.
func Label(err error) string {
	var parseErr *ParseError
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, ErrOutOfWorkingHours):
		return "out_of_working_hours"
	case stderrors.Is(err, ErrInvalidTurnaround):
		return "invalid_turnaround"
	case stderrors.As(err, &parseErr),
		stderrors.Is(err, ErrInvalidSubmissionTime),
		stderrors.Is(err, ErrInvalidTurnaroundFormat),
		stderrors.Is(err, ErrInvalidFieldCount),
		stderrors.Is(err, ErrEmptyRecord):
		return "parse"
	default:
		return "unknown"
	}
}

// Reason returns the human readable reason of a validation failure,
// or the full error text for anything else.
func Reason(err error) string {
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return err.Error()
}
