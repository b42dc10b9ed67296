package interaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/atlas/errors"
)

func parse(t *testing.T, content string) *File {
	t.Helper()
	file, err := ParseFile(content)
	require.NoError(t, err)
	return file
}

func TestParseSimpleInteraction(t *testing.T) {
	file := parse(t, `
namespace=math

Meters * Factor -> Meters
`)

	assert.Equal(t, "math", file.Namespace)
	require.Len(t, file.Interactions, 1)

	inter := file.Interactions[0]
	assert.Equal(t, "Meters", inter.LHS)
	assert.Equal(t, "*", inter.Op)
	assert.Equal(t, "Factor", inter.RHS)
	assert.Equal(t, "Meters", inter.Result)
	assert.False(t, inter.Symmetric)
	assert.True(t, inter.Constexpr)
	assert.Equal(t, DefaultAccess, inter.LHSAccess)
	assert.Equal(t, DefaultAccess, inter.RHSAccess)
}

func TestParseSymmetricForms(t *testing.T) {
	file := parse(t, `
Meters * Factor -> Meters symmetric
Meters + Span <-> Meters
`)
	require.Len(t, file.Interactions, 2)
	assert.True(t, file.Interactions[0].Symmetric)
	assert.True(t, file.Interactions[1].Symmetric)
}

func TestParseCommentsAndBlanks(t *testing.T) {
	file := parse(t, `
# full-line comment

Meters * Factor -> Meters
`)
	require.Len(t, file.Interactions, 1)
}

func TestParseAccessorDirectivesAreModal(t *testing.T) {
	file := parse(t, `
lhs_value_access=.count
Meters * Factor -> Meters
rhs_value_access=getValue()
Meters * Scale -> Meters
`)
	require.Len(t, file.Interactions, 2)
	assert.Equal(t, ".count", file.Interactions[0].LHSAccess)
	assert.Equal(t, DefaultAccess, file.Interactions[0].RHSAccess)
	assert.Equal(t, "getValue()", file.Interactions[1].RHSAccess)
}

func TestParseValueAccessSuppliesRHSDefault(t *testing.T) {
	file := parse(t, `
value_access=.raw
Meters * Factor -> Meters
`)
	assert.Equal(t, DefaultAccess, file.Interactions[0].LHSAccess)
	assert.Equal(t, ".raw", file.Interactions[0].RHSAccess)
}

func TestParseConstexprSwitches(t *testing.T) {
	file := parse(t, `
no-constexpr
Meters * Factor -> Meters
constexpr
Meters + Span -> Meters
`)
	assert.False(t, file.Interactions[0].Constexpr)
	assert.True(t, file.Interactions[1].Constexpr)
}

func TestParseIncludes(t *testing.T) {
	file := parse(t, `
include <chrono>
include "meters.hpp"
Meters * Factor -> Meters
`)
	assert.Equal(t, []string{"<chrono>", `"meters.hpp"`}, file.Includes)

	_, err := ParseFile("include chrono\nMeters * Factor -> Meters\n")
	require.Error(t, err)
	assert.True(t, errors.IsInteractionParseError(err))
}

func TestParseConceptDirective(t *testing.T) {
	file := parse(t, `
concept=Scalar
Meters * Scalar -> Meters
`)
	tc := file.Interactions[0].Template
	require.NotNil(t, tc)
	assert.Equal(t, "Scalar", tc.Param)
	assert.Equal(t, "Scalar", tc.Concept)

	file = parse(t, `
concept=std::integral T
Meters * T -> Meters
`)
	tc = file.Interactions[0].Template
	require.NotNil(t, tc)
	assert.Equal(t, "T", tc.Param)
	assert.Equal(t, "std::integral", tc.Concept)
}

func TestParseEnableIfDirective(t *testing.T) {
	file := parse(t, `
enable_if=std::enable_if_t<std::is_arithmetic_v<T>>
Meters * T -> Meters
`)
	tc := file.Interactions[0].Template
	require.NotNil(t, tc)
	assert.Equal(t, "T", tc.Param)
	assert.Equal(t, "std::enable_if_t<std::is_arithmetic_v<T>>", tc.EnableIf)
}

func TestParseEnableIfWithoutParameter(t *testing.T) {
	_, err := ParseFile("enable_if=no_angles_here\nMeters * T -> Meters\n")
	require.Error(t, err)
	assert.True(t, errors.IsInteractionParseError(err))
}

func TestParseEmptyConceptValue(t *testing.T) {
	_, err := ParseFile("concept=\nMeters * T -> Meters\n")
	require.Error(t, err)
	assert.True(t, errors.IsInteractionParseError(err))
}

func TestParseErrorsOnMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing operator", "Meters Factor -> Meters\n"},
		{"unknown operator", "Meters ** Factor -> Meters\n"},
		{"missing rhs", "Meters * -> Meters\n"},
		{"missing arrow", "Meters * Factor Meters\n"},
		{"missing result", "Meters * Factor ->\n"},
		{"trailing junk", "Meters * Factor -> Meters sideways\n"},
		{"unknown directive", "frobnicate=1\nMeters * Factor -> Meters\n"},
		{"empty file", "# nothing\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile(tt.in)
			require.Error(t, err)
			assert.True(t, errors.IsInteractionParseError(err))
		})
	}
}

func TestParseBundledTypeBlock(t *testing.T) {
	file := parse(t, `
namespace=math

[type]
kind=struct
namespace=math
name=Meters
description=strong double; +, -

Meters * Meters -> Area
`)
	require.Len(t, file.Types, 1)
	assert.Equal(t, "Meters", file.Types[0].TypeName)
	assert.Equal(t, "strong double; +, -", file.Types[0].Description)
	require.Len(t, file.Interactions, 1)
}

func TestParseTypeBlockUnknownKey(t *testing.T) {
	_, err := ParseFile("[type]\nkind=struct\nname=A\ncolor=red\n")
	require.Error(t, err)
	assert.True(t, errors.IsInteractionParseError(err))
}

func TestParseExtractAngleParam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"std::enable_if_t<std::is_arithmetic_v<T>>", "T"},
		{"typename std::enable_if<Cond<U>::value>::type", "U"},
		{"foo<  X  >", "X"},
		{"no angles", ""},
		{"<>", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractAngleParam(tt.in), tt.in)
	}
}

func TestAccessExpr(t *testing.T) {
	assert.Equal(t, "operand.count", AccessExpr("operand", ".count"))
	assert.Equal(t, "operand.getValue()", AccessExpr("operand", "getValue()"))
	assert.Equal(t, "mylib::raw(operand)", AccessExpr("operand", "mylib::raw(operand)"))
	// a bare qualified name takes the operand as its argument
	assert.Equal(t, "atlas::value(operand)", AccessExpr("operand", "atlas::value"))
}

func TestGenerateOperator(t *testing.T) {
	file := parse(t, `
namespace=math
Meters * Factor -> Meters
`)
	out, err := Generate(file)
	require.NoError(t, err)
	header := out.Header

	assert.True(t, strings.HasPrefix(header, "// Code generated by atlas. DO NOT EDIT.\n"))
	assert.Contains(t, header, `#include "atlas/value.hpp"`)
	assert.Contains(t, header, "namespace math {")
	assert.Contains(t, header, "constexpr Meters operator*(Meters const& lhs, Factor const& rhs)")
	assert.Contains(t, header, "return Meters{ atlas_value(lhs, atlas::priority_tag<2>{}) * atlas_value(rhs, atlas::priority_tag<2>{}) };")
	// result type equals LHS, so the compound form appears
	assert.Contains(t, header, "constexpr Meters& operator*=(Meters& lhs, Factor const& rhs)")
	assert.Contains(t, header, "} // namespace math")
	assert.NotContains(t, header, "{{")
}

func TestGenerateNoCompoundForDifferentResult(t *testing.T) {
	out, err := Generate(parse(t, "Meters * Meters -> Area\n"))
	require.NoError(t, err)
	assert.NotContains(t, out.Header, "operator*=")
}

func TestGenerateNoCompoundForRelational(t *testing.T) {
	out, err := Generate(parse(t, "Meters == Meters -> Meters\n"))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "operator==(Meters const& lhs, Meters const& rhs)")
	assert.NotContains(t, out.Header, "operator===")
}

func TestGenerateSymmetricMirrorsOperands(t *testing.T) {
	out, err := Generate(parse(t, "Meters * Factor <-> Meters\n"))
	require.NoError(t, err)

	assert.Contains(t, out.Header, "operator*(Meters const& lhs, Factor const& rhs)")
	assert.Contains(t, out.Header, "operator*(Factor const& lhs, Meters const& rhs)")
}

func TestGenerateAccessorOverload(t *testing.T) {
	out, err := Generate(parse(t, `
rhs_value_access=getValue()
Meters * Factor -> Meters
`))
	require.NoError(t, err)
	header := out.Header

	assert.Contains(t, header, "constexpr decltype(auto) atlas_value(Factor const& operand, atlas::priority_tag<1>)")
	assert.Contains(t, header, "return operand.getValue();")
	// only one generated overload; Meters keeps the default dispatch
	assert.Equal(t, 1, strings.Count(header, "priority_tag<1>"))
}

func TestGenerateQualifiedAccessorWithoutPlaceholder(t *testing.T) {
	out, err := Generate(parse(t, `
namespace=k
lhs_value_access=atlas::value
rhs_value_access=.value
Price + Discount -> Price
`))
	require.NoError(t, err)
	header := out.Header

	assert.Contains(t, header, "constexpr decltype(auto) atlas_value(Price const& operand, atlas::priority_tag<1>)")
	assert.Contains(t, header, "return atlas::value(operand);")
	assert.NotContains(t, header, "return atlas::value;")
	assert.Contains(t, header, "constexpr Price operator+(Price const& lhs, Discount const& rhs)")
	assert.Contains(t, header, "constexpr Price& operator+=(Price& lhs, Discount const& rhs)")
}

func TestGenerateConflictingAccessorsFail(t *testing.T) {
	_, err := Generate(parse(t, `
rhs_value_access=getValue()
Meters * Factor -> Meters
rhs_value_access=.raw
Span * Factor -> Span
`))
	require.Error(t, err)
}

func TestGenerateTemplateHeaders(t *testing.T) {
	out, err := Generate(parse(t, `
concept=std::integral T
Meters * T -> Meters
`))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "template <std::integral T>\nconstexpr Meters operator*(Meters const& lhs, T const& rhs)")

	out, err = Generate(parse(t, `
enable_if=std::enable_if_t<std::is_arithmetic_v<T>>
Meters * T -> Meters
`))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "template <typename T, typename = std::enable_if_t<std::is_arithmetic_v<T>>>\n")
}

func TestGenerateNoConstexprUsesInline(t *testing.T) {
	out, err := Generate(parse(t, "no-constexpr\nMeters * Factor -> Meters\n"))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "inline Meters operator*(")
	assert.NotContains(t, out.Header, "constexpr Meters operator*(")
}

func TestGenerateBundledTypes(t *testing.T) {
	out, err := Generate(parse(t, `
namespace=math

[type]
kind=struct
namespace=math
name=Meters
description=strong double; +

Meters * Meters -> Area
`))
	require.NoError(t, err)
	header := out.Header

	// the bundled type precedes the operator block inside one guard
	assert.Equal(t, 1, strings.Count(header, "#ifndef "))
	typePos := strings.Index(header, "struct Meters")
	opPos := strings.Index(header, "operator*(Meters const& lhs")
	require.True(t, typePos > 0 && opPos > 0)
	assert.Less(t, typePos, opPos)
}

func TestGenerateGuardControls(t *testing.T) {
	out, err := Generate(parse(t, `
namespace=math
guard_prefix=mathops
Meters * Factor -> Meters
`))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "#ifndef MATHOPS_")

	out, err = Generate(parse(t, `
namespace=math
upcase_guard=no
Meters * Factor -> Meters
`))
	require.NoError(t, err)
	assert.Contains(t, out.Header, "#ifndef math_")
}

func TestGenerateDeterministic(t *testing.T) {
	const input = `
namespace=math
Meters * Factor -> Meters
Span + Span -> Span
`
	a, err := Generate(parse(t, input))
	require.NoError(t, err)
	b, err := Generate(parse(t, input))
	require.NoError(t, err)
	assert.Equal(t, a.Header, b.Header)
}
