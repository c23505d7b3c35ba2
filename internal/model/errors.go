package model

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. The concrete types below carry the details.
var (
	ErrValidation       = errors.New("validation error")
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNoRootInBracket  = errors.New("no root in bracket")
)

// ValidationError reports malformed input rejected at a function boundary
// (empty series, mismatched lengths, non-finite numbers, ...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError with a formatted reason.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateInputError is returned by the regression when every x value is equal.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

func (e *DegenerateInputError) Is(target error) bool { return target == ErrDegenerateInput }

// InvalidParameterError is returned when a value that must be positive is not.
type InvalidParameterError struct {
	Name  string
	Value float64
	Want  string
}

func (e *InvalidParameterError) Error() string {
	want := e.Want
	if want == "" {
		want = "> 0"
	}
	return fmt.Sprintf("invalid parameter %s=%g: must be %s", e.Name, e.Value, want)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// NoRootInBracketError is returned by IRR when NPV does not change sign over the bracket.
type NoRootInBracketError struct {
	Low, High       float64
	NPVLow, NPVHigh float64
}

func (e *NoRootInBracketError) Error() string {
	return fmt.Sprintf("no IRR root in [%g, %g]: NPV(low)=%.4f NPV(high)=%.4f share sign",
		e.Low, e.High, e.NPVLow, e.NPVHigh)
}

func (e *NoRootInBracketError) Is(target error) bool { return target == ErrNoRootInBracket }
