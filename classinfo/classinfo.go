// Package classinfo builds the semantic model consumed by the feature
// emitters. A ClassInfo is constructed once per type and is read-only
// afterwards; emitters receive it by reference.
package classinfo

import (
	"strings"

	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/headers"
)

// ClassInfo is the normalized model of one strong type
type ClassInfo struct {
	Kind              description.Kind
	Namespace         string // "::" trimmed at both ends
	ClassName         string
	FullQualifiedName string

	UnderlyingType string
	DefaultValue   string
	Description    string // original description text, feeds the guard hash

	GuardPrefix    string
	GuardSeparator string
	UpcaseGuard    bool

	Opts description.Options

	// Comparisons holds the effective relational set: the explicit requests
	// plus "==" when hash implies it and no spaceship covers it.
	Comparisons []string

	// ImplicitIncludes are deduced from the underlying type plus the
	// explicit #<...> description includes. Emitter includes join later.
	ImplicitIncludes []string
}

// Build normalizes a StrongTypeDescription into a ClassInfo
func Build(desc description.StrongTypeDescription) (*ClassInfo, error) {
	opts, err := description.Parse(desc.Description)
	if err != nil {
		return nil, err
	}

	namespace := strings.Trim(desc.TypeNamespace, ":")
	className := strings.Trim(desc.TypeName, ":")

	fqn := className
	if namespace != "" {
		fqn = namespace + "::" + className
	}

	sep := desc.GuardSeparator
	if sep == "" {
		sep = "_"
	}

	ci := &ClassInfo{
		Kind:              desc.Kind,
		Namespace:         namespace,
		ClassName:         className,
		FullQualifiedName: fqn,
		UnderlyingType:    opts.UnderlyingType,
		DefaultValue:      desc.DefaultValue,
		Description:       desc.Description,
		GuardPrefix:       desc.GuardPrefix,
		GuardSeparator:    sep,
		UpcaseGuard:       desc.UpcaseGuard,
		Opts:              *opts,
	}

	ci.Comparisons = effectiveComparisons(opts)

	includes := headers.DeduceHeadersFromType(opts.UnderlyingType)
	for _, cast := range opts.Casts {
		includes = append(includes, headers.DeduceHeadersFromType(cast.Target)...)
	}
	includes = append(includes, opts.Includes...)
	ci.ImplicitIncludes = includes

	return ci, nil
}

// effectiveComparisons applies the hash→"==" implication. A defaulted
// spaceship already declares operator==, so no implication fires then.
func effectiveComparisons(opts *description.Options) []string {
	comparisons := append([]string(nil), opts.Comparisons...)
	if opts.Hash && !opts.Spaceship && !opts.HasComparison("==") {
		comparisons = append(comparisons, "==")
	}
	return comparisons
}

// HasComparison reports whether op is in the effective relational set
func (ci *ClassInfo) HasComparison(op string) bool {
	for _, c := range ci.Comparisons {
		if c == op {
			return true
		}
	}
	return false
}

// HasConstraint reports whether a value constraint applies
func (ci *ClassInfo) HasConstraint() bool {
	return ci.Opts.Constraint.Kind != description.ConstraintNone
}

// ConstExpr renders the constexpr specifier for template substitution:
// "constexpr " when enabled, "" after no-constexpr.
func (ci *ClassInfo) ConstExpr() string {
	if ci.Opts.Constexpr {
		return "constexpr "
	}
	return ""
}

// ConstExprHash is the hash-emitter variant of ConstExpr, disabled
// independently by no-constexpr-hash.
func (ci *ClassInfo) ConstExprHash() string {
	if ci.Opts.ConstexprHash {
		return "constexpr "
	}
	return ""
}
