// Package description defines the textual input model for strong types and
// parses the "strong T; op, op, ..." description grammar.
package description

import (
	"strings"

	"github.com/teranos/atlas/errors"
)

// Kind selects the class-key of the generated type
type Kind string

const (
	KindStruct Kind = "struct"
	KindClass  Kind = "class"
)

// ParseKind validates a kind literal
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStruct, KindClass:
		return Kind(s), nil
	default:
		return "", errors.NewDescriptionParseError("invalid kind: %q (expected struct or class)", s)
	}
}

// ParseBoolOption accepts the boolean literals the CLI and input files share
func ParseBoolOption(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, errors.NewArgumentError("invalid boolean literal: %q", s)
	}
}

// StrongTypeDescription is the raw input for one generated strong type
type StrongTypeDescription struct {
	Kind           Kind
	TypeNamespace  string
	TypeName       string
	Description    string
	DefaultValue   string
	GuardPrefix    string
	GuardSeparator string
	UpcaseGuard    bool
}

// ArithmeticMode is the overflow-handling policy for binary arithmetic
type ArithmeticMode int

const (
	ModeDefault ArithmeticMode = iota
	ModeChecked
	ModeSaturating
	ModeWrapping
)

// String names the mode for template and registry IDs
func (m ArithmeticMode) String() string {
	switch m {
	case ModeChecked:
		return "checked"
	case ModeSaturating:
		return "saturating"
	case ModeWrapping:
		return "wrapping"
	default:
		return "default"
	}
}

// ConstraintKind enumerates the supported value constraints
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintPositive
	ConstraintNonNegative
	ConstraintNonZero
	ConstraintNonEmpty
	ConstraintNonNull
	ConstraintBounded      // lo <= v <= hi
	ConstraintBoundedRange // lo <= v < hi
)

// String names the constraint for registry IDs
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPositive:
		return "positive"
	case ConstraintNonNegative:
		return "non_negative"
	case ConstraintNonZero:
		return "non_zero"
	case ConstraintNonEmpty:
		return "non_empty"
	case ConstraintNonNull:
		return "non_null"
	case ConstraintBounded:
		return "bounded"
	case ConstraintBoundedRange:
		return "bounded_range"
	default:
		return "none"
	}
}

// Constraint is an invariant on the wrapped value, enforced at construction
// and after mutating arithmetic
type Constraint struct {
	Kind    ConstraintKind
	Low     string // bounded / bounded_range only, verbatim
	High    string
	Message string // optional constraint_message="..." override
}

// Cast is a requested conversion operator
type Cast struct {
	Target     string
	IsImplicit bool
}

// Options is the parsed feature set of one description string
type Options struct {
	UnderlyingType string

	BinaryOps   []string // subset of + - * / % & | ^ << >>, request order
	UnaryOps    []string // subset of + - ~
	Comparisons []string // subset of == != < <= > >=, as explicitly requested
	Spaceship   bool

	LogicalNot bool
	LogicalAnd bool
	LogicalOr  bool

	Increment    bool // ++
	Decrement    bool // --
	Indirection  bool // @
	AddressOf    bool // &of
	MemberAccess bool // ->
	Call         bool // ()
	CallRef      bool // (&)
	Subscript    bool // []
	BoolConv     bool // bool

	StreamIn  bool
	StreamOut bool

	Hash     bool
	Iterable bool
	Assign   bool
	Format   bool // fmt

	Casts    []Cast
	Includes []string // explicit #<...> includes, normalized

	Constexpr     bool // false after no-constexpr
	ConstexprHash bool // false after no-constexpr or no-constexpr-hash

	Mode       ArithmeticMode
	Constraint Constraint
}

// HasBinaryOp reports whether a binary arithmetic operator was requested
func (o *Options) HasBinaryOp(sym string) bool {
	for _, op := range o.BinaryOps {
		if op == sym {
			return true
		}
	}
	return false
}

// HasUnaryOp reports whether a unary operator was requested
func (o *Options) HasUnaryOp(sym string) bool {
	for _, op := range o.UnaryOps {
		if op == sym {
			return true
		}
	}
	return false
}

// HasComparison reports whether a relational operator was explicitly requested
func (o *Options) HasComparison(sym string) bool {
	for _, op := range o.Comparisons {
		if op == sym {
			return true
		}
	}
	return false
}
