package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a line, column, or offset outside the valid range.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidConfig indicates a setting value outside its recognized set.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTypeMismatch indicates a bulk replacement was given non-text entries.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrChangeMismatch indicates a change no longer applies to the buffer,
	// because the lines it expects to remove are not the current lines.
	ErrChangeMismatch = errors.New("change does not match buffer contents")
)

// BoundsError reports an index, column, or offset outside its valid range.
// The valid range is [Min, Max], inclusive on both ends.
type BoundsError struct {
	// Op is the operation that rejected the value.
	Op string
	// Kind names what was out of range: "line", "column", "offset" or "range".
	Kind string
	// Value is the rejected value.
	Value int
	// Min and Max bound the accepted values.
	Min, Max int
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	if e.Max < e.Min {
		return fmt.Sprintf("%s: %s %d out of range (no valid values)", e.Op, e.Kind, e.Value)
	}
	return fmt.Sprintf("%s: %s %d out of range [%d, %d]", e.Op, e.Kind, e.Value, e.Min, e.Max)
}

// Unwrap allows errors.Is(err, ErrOutOfBounds).
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// ConfigError reports a configuration value that is not accepted.
type ConfigError struct {
	// Setting is the name of the setting, e.g. "eol" or "indent.width".
	Setting string
	// Value is the rejected value.
	Value any
	// Reason describes what is accepted.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Setting, fmt.Sprint(e.Value), e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// TypeMismatchError reports a non-text entry in a bulk line replacement.
type TypeMismatchError struct {
	// Index is the position of the first offending entry.
	Index int
	// Got is the Go type of the offending entry.
	Got string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("line %d: expected string, got %s", e.Index, e.Got)
}

// Unwrap allows errors.Is(err, ErrTypeMismatch).
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func boundsErr(op, kind string, value, min, max int) error {
	return &BoundsError{Op: op, Kind: kind, Value: value, Min: min, Max: max}
}
