package interaction

import (
	"sort"
	"strings"

	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/generator"
	"github.com/teranos/atlas/mustache"
	"github.com/teranos/atlas/templates"
)

// operator fragment; operands are read through the priority-tagged
// atlas_value dispatch so user-supplied accessors win over generated ones
const operatorTemplate = `{{template_header}}{{const_expr}}{{result}} operator{{op}}({{lhs}} const& lhs, {{rhs}} const& rhs)
{
    return {{result}}{ atlas_value(lhs, atlas::priority_tag<2>{}) {{op}} atlas_value(rhs, atlas::priority_tag<2>{}) };
}
`

const compoundTemplate = `{{template_header}}{{const_expr}}{{lhs}}& operator{{op}}=({{lhs}}& lhs, {{rhs}} const& rhs)
{
    lhs = lhs {{op}} rhs;
    return lhs;
}
`

const accessorTemplate = `{{const_expr}}decltype(auto) atlas_value({{type}} const& operand, atlas::priority_tag<1>)
{
    return {{{access_expr}}};
}
`

var relationalOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// Generate assembles the interaction header for a parsed file: bundled type
// definitions first, then the free operators in the interaction namespace.
func Generate(file *File) (*generator.Output, error) {
	includes := []string{`"atlas/value.hpp"`}
	includes = append(includes, file.Includes...)

	var typeBody, typeGuardInput string
	var warnings []string
	if len(file.Types) > 0 {
		rendered, err := generator.NewAssembler(templates.Default()).RenderTypes(file.Types)
		if err != nil {
			return nil, err
		}
		typeBody = rendered.Body
		typeGuardInput = rendered.GuardInput
		includes = append(includes, rendered.Includes...)
		warnings = rendered.Warnings
	}

	accessors, err := collectAccessors(file)
	if err != nil {
		return nil, err
	}

	var operators strings.Builder
	for _, acc := range accessors {
		operators.WriteString(renderAccessor(acc))
		operators.WriteString("\n")
	}
	for _, inter := range file.Interactions {
		operators.WriteString(renderInteraction(inter))
	}

	guard := interactionGuard(file, typeGuardInput)

	var b strings.Builder
	b.WriteString("// Code generated by atlas. DO NOT EDIT.\n")
	b.WriteString("\n#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n\n")
	for _, inc := range sortUnique(includes) {
		b.WriteString("#include " + inc + "\n")
	}
	b.WriteString("\n")
	b.WriteString(typeBody)

	if file.Namespace != "" {
		b.WriteString("namespace " + file.Namespace + " {\n\n")
	}
	b.WriteString(operators.String())
	if file.Namespace != "" {
		b.WriteString("} // namespace " + file.Namespace + "\n\n")
	}

	b.WriteString("#endif // " + guard + "\n")
	return &generator.Output{Header: b.String(), Warnings: warnings}, nil
}

func interactionGuard(file *File, typeGuardInput string) string {
	prefix := file.GuardPrefix
	if prefix == "" {
		prefix = file.Namespace
	}
	if prefix == "" {
		prefix = "interactions"
	}

	var content []string
	content = append(content, file.Namespace, typeGuardInput)
	for _, inter := range file.Interactions {
		content = append(content, strings.Join([]string{
			inter.LHS, inter.Op, inter.RHS, inter.Result,
			inter.LHSAccess, inter.RHSAccess,
			boolMark(inter.Symmetric), boolMark(inter.Constexpr),
		}, "|"))
	}
	return generator.Guard(prefix, file.GuardSeparator, file.UpcaseGuard,
		strings.Join(content, "\n"))
}

func boolMark(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// accessor is one generated atlas_value overload
type accessor struct {
	typeName  string
	expr      string
	constexpr bool
}

// collectAccessors gathers the non-default accessors, one overload per
// operand type. Two interactions demanding different accessors for the same
// type cannot both be satisfied by one overload set.
func collectAccessors(file *File) ([]accessor, error) {
	byType := make(map[string]string)
	var ordered []accessor

	add := func(inter Interaction, typeName, access string) error {
		if access == DefaultAccess {
			return nil
		}
		if inter.Template != nil && typeName == inter.Template.Param {
			return nil
		}
		expr := AccessExpr("operand", access)
		if prev, seen := byType[typeName]; seen {
			if prev != expr {
				return errors.NewParseError(errors.KindConfiguration,
					"conflicting value accessors for %s: %q and %q", typeName, prev, expr)
			}
			return nil
		}
		byType[typeName] = expr
		ordered = append(ordered, accessor{
			typeName:  typeName,
			expr:      expr,
			constexpr: inter.Constexpr,
		})
		return nil
	}

	for _, inter := range file.Interactions {
		if err := add(inter, inter.LHS, inter.LHSAccess); err != nil {
			return nil, err
		}
		if err := add(inter, inter.RHS, inter.RHSAccess); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// AccessExpr applies an accessor string to an operand expression. Three
// shapes are recognized: ".member", "method()" and a qualified accessor,
// either a call with the literal placeholder "operand" ("ns::get(operand)")
// or a bare function name ("atlas::value") that takes the operand as its
// argument.
func AccessExpr(operand, access string) string {
	switch {
	case strings.HasPrefix(access, "."):
		return operand + access
	case strings.Contains(access, "::"):
		if strings.Contains(access, "operand") {
			return strings.Replace(access, "operand", operand, 1)
		}
		return access + "(" + operand + ")"
	default:
		return operand + "." + access
	}
}

func renderAccessor(acc accessor) string {
	return mustache.Render(accessorTemplate, mustache.Context{
		"const_expr":  constExpr(acc.constexpr),
		"type":        acc.typeName,
		"access_expr": acc.expr,
	})
}

func constExpr(enabled bool) string {
	if enabled {
		return "constexpr "
	}
	return "inline "
}

func renderInteraction(inter Interaction) string {
	var b strings.Builder
	b.WriteString(renderOperator(inter, inter.LHS, inter.RHS))
	b.WriteString("\n")

	if inter.Result == inter.LHS && !relationalOps[inter.Op] {
		b.WriteString(mustache.Render(compoundTemplate, mustache.Context{
			"template_header": templateHeader(inter),
			"const_expr":      constExpr(inter.Constexpr),
			"lhs":             inter.LHS,
			"rhs":             inter.RHS,
			"op":              inter.Op,
		}))
		b.WriteString("\n")
	}

	if inter.Symmetric {
		b.WriteString(renderOperator(inter, inter.RHS, inter.LHS))
		b.WriteString("\n")
	}
	return b.String()
}

func renderOperator(inter Interaction, lhs, rhs string) string {
	return mustache.Render(operatorTemplate, mustache.Context{
		"template_header": templateHeader(inter),
		"const_expr":      constExpr(inter.Constexpr),
		"result":          inter.Result,
		"op":              inter.Op,
		"lhs":             lhs,
		"rhs":             rhs,
	})
}

// templateHeader synthesizes the constrained template header when an
// operand binds to the directive's parameter
func templateHeader(inter Interaction) string {
	tc := inter.Template
	if tc == nil {
		return ""
	}
	if inter.LHS != tc.Param && inter.RHS != tc.Param && inter.Result != tc.Param {
		return ""
	}
	if tc.EnableIf != "" {
		return "template <typename " + tc.Param + ", typename = " + tc.EnableIf + ">\n"
	}
	return "template <" + tc.Concept + " " + tc.Param + ">\n"
}

func sortUnique(includes []string) []string {
	seen := make(map[string]struct{}, len(includes))
	var unique []string
	for _, inc := range includes {
		if _, dup := seen[inc]; dup {
			continue
		}
		seen[inc] = struct{}{}
		unique = append(unique, inc)
	}
	sort.Strings(unique)
	return unique
}
