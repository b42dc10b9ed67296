// Package errors provides error handling for Atlas.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel-based classification of generator failures
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := parse(desc); err != nil {
//	    return errors.Wrap(err, "failed to parse description")
//	}
//
//	// Classify errors
//	if errors.Is(err, errors.ErrDescriptionParse) {
//	    // handle bad description
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
)

// Assertions and panics
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Generator error taxonomy. Every failure Atlas surfaces wraps exactly one
// of these sentinels so callers can classify with errors.Is().
var (
	// ErrArgument indicates malformed or missing CLI options
	ErrArgument = New("argument error")

	// ErrDescriptionParse indicates an invalid strong-type description
	ErrDescriptionParse = New("description parse error")

	// ErrInteractionParse indicates an invalid interaction file
	ErrInteractionParse = New("interaction parse error")

	// ErrFile indicates an input/output filesystem failure
	ErrFile = New("file error")

	// ErrConfiguration indicates conflicting directives or configuration
	ErrConfiguration = New("configuration error")
)

// IsArgumentError checks if an error is or wraps ErrArgument
func IsArgumentError(err error) bool {
	return err != nil && Is(err, ErrArgument)
}

// IsDescriptionParseError checks if an error is or wraps ErrDescriptionParse
func IsDescriptionParseError(err error) bool {
	return err != nil && Is(err, ErrDescriptionParse)
}

// IsInteractionParseError checks if an error is or wraps ErrInteractionParse
func IsInteractionParseError(err error) bool {
	return err != nil && Is(err, ErrInteractionParse)
}

// IsFileError checks if an error is or wraps ErrFile
func IsFileError(err error) bool {
	return err != nil && Is(err, ErrFile)
}

// NewArgumentError creates an argument error with a formatted message
func NewArgumentError(format string, args ...interface{}) error {
	return Wrap(ErrArgument, Newf(format, args...).Error())
}

// NewDescriptionParseError creates a description parse error with a formatted message
func NewDescriptionParseError(format string, args ...interface{}) error {
	return Wrap(ErrDescriptionParse, Newf(format, args...).Error())
}

// NewInteractionParseError creates an interaction parse error with a formatted message
func NewInteractionParseError(format string, args ...interface{}) error {
	return Wrap(ErrInteractionParse, Newf(format, args...).Error())
}

// NewFileError wraps a filesystem error with context while preserving the type
func NewFileError(err error, context string) error {
	return Wrap(Wrap(ErrFile, err.Error()), context)
}
