package errors

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorKind categorizes parse errors for programmatic handling
type ErrorKind string

const (
	KindArgument      ErrorKind = "argument"      // Malformed CLI options
	KindDescription   ErrorKind = "description"   // Invalid strong-type description
	KindInteraction   ErrorKind = "interaction"   // Invalid interaction file
	KindFile          ErrorKind = "file"          // Filesystem failure
	KindConfiguration ErrorKind = "configuration" // Conflicting directives
)

// sentinelFor maps an ErrorKind to its taxonomy sentinel
func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindArgument:
		return ErrArgument
	case KindDescription:
		return ErrDescriptionParse
	case KindInteraction:
		return ErrInteractionParse
	case KindFile:
		return ErrFile
	case KindConfiguration:
		return ErrConfiguration
	default:
		return nil
	}
}

// ParseError is a structured parse failure with source context. It wraps the
// taxonomy sentinel for its kind so errors.Is() classification works.
type ParseError struct {
	Kind        ErrorKind // Error category
	Message     string    // Human-readable message
	Token       string    // Offending token, verbatim (optional)
	Line        int       // 1-based input line, 0 when not line-oriented
	Suggestions []string  // Possible fixes
}

// Error implements the error interface with a plain, log-safe message
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap ties the error into the taxonomy for errors.Is/As
func (e *ParseError) Unwrap() error {
	return sentinelFor(e.Kind)
}

// FormatTerminal renders a colored message for interactive terminals
func (e *ParseError) FormatTerminal() string {
	msg := pterm.Red(e.Error())
	if e.Token != "" {
		msg += fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("\n%s\n  %s", pterm.Green("Suggestions:"), strings.Join(e.Suggestions, "\n  "))
	}
	return msg
}

// NewParseError creates a ParseError with the given kind and message
func NewParseError(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithToken records the offending token
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// WithLine records the 1-based input line
func (e *ParseError) WithLine(line int) *ParseError {
	e.Line = line
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}
