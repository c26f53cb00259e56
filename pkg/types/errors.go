// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutputExists is returned when a result would overwrite an existing
// output file. Callers can distinguish "don't overwrite" from permission
// problems with errors.Is.
var ErrOutputExists = errors.New("output file already exists")

// ValidationError indicates invalid caller input: empty or too-short text,
// an unsupported input shape, or an option value out of range. It is never
// wrapped into an ExtractionError; the caller sees the original signal.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExtractionError wraps a failure of the embedding or keyword model with
// elapsed-time context. Input errors are excluded from this wrapping.
type ExtractionError struct {
	Elapsed time.Duration
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("keyword extraction failed after %.2fs: %v", e.Elapsed.Seconds(), e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ConfigurationError indicates a bad engine selection or a malformed
// printer-service configuration. These fail fast, before any work begins.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CalculationError indicates a spine-width calculation failure: missing
// formula parameters, an unknown formula type, or out-of-range inputs.
type CalculationError struct {
	Msg string
}

func (e *CalculationError) Error() string { return e.Msg }

// Calculationf builds a CalculationError from a format string.
func Calculationf(format string, args ...any) *CalculationError {
	return &CalculationError{Msg: fmt.Sprintf(format, args...)}
}
