package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/description"
)

func buildInfo(t *testing.T, desc string) *classinfo.ClassInfo {
	t.Helper()
	ci, err := classinfo.Build(description.StrongTypeDescription{
		Kind:          description.KindStruct,
		TypeNamespace: "test",
		TypeName:      "MyInt",
		Description:   desc,
	})
	require.NoError(t, err)
	return ci
}

func applicableIDs(ci *classinfo.ClassInfo) []string {
	var ids []string
	Default().VisitApplicable(ci, func(e Emitter) {
		ids = append(ids, e.ID())
	})
	return ids
}

func lookup(t *testing.T, id string) Emitter {
	t.Helper()
	e, ok := Default().Lookup(id)
	require.True(t, ok, "emitter %s not registered", id)
	return e
}

func TestRegistrySealsOnFirstRead(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))

	_, _ = r.Lookup("operators.io.ostream")

	err := r.Register(boolConversion{emitterBase: emitterBase{id: "late"}})
	require.Error(t, err)
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))
	err := RegisterBuiltins(r)
	require.Error(t, err)
}

func TestDefaultRegistryPopulated(t *testing.T) {
	for _, id := range []string{
		"operators.arithmetic.addition.default",
		"operators.arithmetic.division.saturating",
		"operators.unary.minus",
		"operators.comparison.spaceship",
		"operators.io.istream",
		"operators.access.subscript",
		"conversion.cast",
		"hash.specialization",
		"constraints.bounded_range",
	} {
		_, ok := Default().Lookup(id)
		assert.True(t, ok, id)
	}
}

func TestArithmeticModeSelection(t *testing.T) {
	tests := []struct {
		desc    string
		want    string
		exclude string
	}{
		{"strong int; +", "operators.arithmetic.addition.default", "operators.arithmetic.addition.checked"},
		{"strong int; +, checked", "operators.arithmetic.addition.checked", "operators.arithmetic.addition.default"},
		{"strong int; +, saturating", "operators.arithmetic.addition.saturating", "operators.arithmetic.addition.default"},
		{"strong int; +, wrapping", "operators.arithmetic.addition.wrapping", "operators.arithmetic.addition.default"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ids := applicableIDs(buildInfo(t, tt.desc))
			assert.Contains(t, ids, tt.want)
			assert.NotContains(t, ids, tt.exclude)
		})
	}
}

func TestDivisionFallsBackToDefaultUnderWrapping(t *testing.T) {
	ids := applicableIDs(buildInfo(t, "strong int; /, %, +, wrapping"))

	assert.Contains(t, ids, "operators.arithmetic.division.default")
	assert.Contains(t, ids, "operators.arithmetic.modulo.default")
	assert.Contains(t, ids, "operators.arithmetic.addition.wrapping")
	assert.NotContains(t, ids, "operators.arithmetic.addition.default")
}

func TestBitwiseOpsApplyUnderEveryMode(t *testing.T) {
	for _, desc := range []string{
		"strong int; &, |, ^",
		"strong int; &, |, ^, checked",
		"strong int; &, |, ^, wrapping",
	} {
		ids := applicableIDs(buildInfo(t, desc))
		assert.Contains(t, ids, "operators.arithmetic.bitwise_and.default", desc)
		assert.Contains(t, ids, "operators.arithmetic.bitwise_xor.default", desc)
	}
}

func TestDefaultArithmeticFragment(t *testing.T) {
	ci := buildInfo(t, "strong int; +")
	got := Render(lookup(t, "operators.arithmetic.addition.default"), ci)

	assert.Contains(t, got, "friend constexpr MyInt& operator+=(MyInt& lhs, MyInt const& rhs)")
	assert.Contains(t, got, "lhs.value += rhs.value;")
	assert.Contains(t, got, "friend constexpr MyInt operator+(MyInt lhs, MyInt const& rhs)")
	assert.Contains(t, got, "lhs += rhs;")
	assert.NotContains(t, got, "check_constraint")
	assert.NotContains(t, got, "{{")
}

func TestCheckedArithmeticUsesHelper(t *testing.T) {
	ci := buildInfo(t, "strong int; *, checked")
	e := lookup(t, "operators.arithmetic.multiplication.checked")
	got := Render(e, ci)

	assert.Contains(t, got, "atlas::checked_mul(lhs.value, rhs.value)")
	assert.Contains(t, e.RequiredIncludes(), `"atlas/checked.hpp"`)
}

func TestSaturatingNoexceptDropsUnderConstraint(t *testing.T) {
	e := lookup(t, "operators.arithmetic.addition.saturating")

	plain := Render(e, buildInfo(t, "strong int; +, saturating"))
	assert.Contains(t, plain, "noexcept")

	constrained := Render(e, buildInfo(t, "strong int; +, saturating, positive"))
	assert.NotContains(t, constrained, "noexcept")
	assert.Contains(t, constrained, "check_constraint(lhs.value);")
}

func TestWrappingFragment(t *testing.T) {
	got := Render(lookup(t, "operators.arithmetic.subtraction.wrapping"),
		buildInfo(t, "strong int; -, wrapping"))

	assert.Contains(t, got, "static_assert(std::is_integral_v<int>")
	assert.Contains(t, got, "std::make_unsigned_t<int>")
	assert.Contains(t, got, "static_cast<atlas_wrap_t>(lhs.value) - static_cast<atlas_wrap_t>(rhs.value)")
}

func TestUnaryFragment(t *testing.T) {
	got := Render(lookup(t, "operators.unary.minus"), buildInfo(t, "strong int; u-"))

	assert.Contains(t, got, "friend constexpr MyInt operator-(MyInt const& operand)")
	assert.Contains(t, got, "return MyInt{ -operand.value };")
	assert.NotContains(t, got, "{{")
}

func TestIncrementFragment(t *testing.T) {
	got := Render(lookup(t, "operators.increment"), buildInfo(t, "strong int; ++, positive"))

	assert.Contains(t, got, "operator++(MyInt& operand)")
	assert.Contains(t, got, "operator++(MyInt& operand, int)")
	assert.Contains(t, got, "check_constraint(operand.value);")
}

func TestComparisonFragment(t *testing.T) {
	ci := buildInfo(t, "strong int; <=")
	ids := applicableIDs(ci)
	assert.Contains(t, ids, "operators.comparison.less_equal")
	assert.NotContains(t, ids, "operators.comparison.less")

	got := Render(lookup(t, "operators.comparison.less_equal"), ci)
	assert.Contains(t, got, "friend constexpr bool operator<=(MyInt const& lhs, MyInt const& rhs)")
	assert.Contains(t, got, "return lhs.value <= rhs.value;")
}

func TestHashImpliedEqualityApplies(t *testing.T) {
	ids := applicableIDs(buildInfo(t, "strong int; hash"))
	assert.Contains(t, ids, "operators.comparison.equal")
	assert.Contains(t, ids, "hash.specialization")
}

func TestSpaceshipFragment(t *testing.T) {
	ci := buildInfo(t, "strong int; <=>")
	e := lookup(t, "operators.comparison.spaceship")
	require.True(t, e.ShouldApply(ci))

	got := Render(e, ci)
	assert.Contains(t, got, "friend auto operator<=>(MyInt const& lhs, MyInt const& rhs) = default;")
	assert.Contains(t, e.RequiredIncludes(), "<compare>")
}

func TestStreamFragments(t *testing.T) {
	ci := buildInfo(t, "strong int; in, out")

	out := Render(lookup(t, "operators.io.ostream"), ci)
	assert.Contains(t, out, "friend std::ostream& operator<<(std::ostream& out, MyInt const& operand)")

	in := Render(lookup(t, "operators.io.istream"), ci)
	assert.Contains(t, in, "atlas::istream_drill(in, operand.value, atlas::priority_tag<2>{});")
	assert.Contains(t, lookup(t, "operators.io.istream").RequiredIncludes(), `"atlas/istream_drill.hpp"`)
}

func TestSubscriptFragment(t *testing.T) {
	got := Render(lookup(t, "operators.access.subscript"),
		buildInfo(t, "strong std::vector<int>; []"))

	assert.Contains(t, got, "#if defined(__cpp_multidimensional_subscript)")
	assert.Contains(t, got, "operator[](Index&&... index)")
	assert.Contains(t, got, "#else")
	assert.Contains(t, got, "operator[](Index&& index)")
	assert.Contains(t, got, "#endif")
}

func TestAssignFragment(t *testing.T) {
	got := Render(lookup(t, "operators.access.assign"),
		buildInfo(t, "strong int; assign, non_zero"))

	assert.Contains(t, got, "std::is_convertible_v<Other, int>")
	assert.Contains(t, got, "check_constraint(value);")
}

func TestBoolConversionFragment(t *testing.T) {
	got := Render(lookup(t, "conversion.bool"), buildInfo(t, "strong int; bool"))
	assert.Contains(t, got, "explicit constexpr operator bool() const noexcept")
}

func TestCastRendersEveryTarget(t *testing.T) {
	ci := buildInfo(t, "strong int; cast<double>, implicit_cast<long>")
	got := Render(lookup(t, "conversion.cast"), ci)

	assert.Contains(t, got, "explicit constexpr operator double() const")
	assert.Contains(t, got, "return static_cast<double>(value);")
	// implicit cast drops the explicit specifier
	assert.Contains(t, got, "\n    constexpr operator long() const")
	assert.Contains(t, got, "return static_cast<long>(value);")
}

func TestHashFragmentIsPostamble(t *testing.T) {
	e := lookup(t, "hash.specialization")
	assert.True(t, e.Postamble())

	got := Render(e, buildInfo(t, "strong int; hash"))
	assert.Contains(t, got, "struct std::hash<test::MyInt>")
	assert.Contains(t, got, "constexpr std::size_t operator()(test::MyInt const& operand) const noexcept")
	assert.Contains(t, got, "return std::hash<int>{}(operand.value);")
}

func TestHashConstexprToggle(t *testing.T) {
	got := Render(lookup(t, "hash.specialization"),
		buildInfo(t, "strong int; hash, no-constexpr-hash"))
	assert.Contains(t, got, "    std::size_t operator()(")
	assert.NotContains(t, got, "constexpr std::size_t")
}

func TestFormatterFragment(t *testing.T) {
	e := lookup(t, "format.specialization")
	assert.True(t, e.Postamble())

	got := Render(e, buildInfo(t, "strong int; fmt"))
	assert.Contains(t, got, "struct std::formatter<test::MyInt> : std::formatter<int>")
}

func TestConstraintFragments(t *testing.T) {
	tests := []struct {
		desc string
		id   string
		cond string
		msg  string
	}{
		{"strong int; positive", "constraints.positive", "candidate > 0", "value must be positive"},
		{"strong int; non_negative", "constraints.non_negative", "candidate >= 0", "value must be non-negative"},
		{"strong int; non_zero", "constraints.non_zero", "candidate != 0", "value must be non-zero"},
		{"strong std::string; non_empty", "constraints.non_empty", "!candidate.empty()", "value must be non-empty"},
		{"strong int*; non_null", "constraints.non_null", "candidate != nullptr", "value must be non-null"},
		{"strong int; bounded<0,100>", "constraints.bounded",
			"candidate >= 0 && candidate <= 100", "value must be within [0, 100]"},
		{"strong int; bounded_range<0,100>", "constraints.bounded_range",
			"candidate >= 0 && candidate < 100", "value must be within [0, 100)"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ci := buildInfo(t, tt.desc)
			ids := applicableIDs(ci)
			assert.Contains(t, ids, tt.id)

			got := Render(lookup(t, tt.id), ci)
			assert.Contains(t, got, "static constexpr void check_constraint(")
			assert.Contains(t, got, "if (!("+tt.cond+"))")
			assert.Contains(t, got, `atlas::ConstraintError("MyInt", atlas::display_value(candidate),`)
			assert.Contains(t, got, `"`+tt.msg+`"`)
		})
	}
}

func TestConstraintMessageOverride(t *testing.T) {
	ci := buildInfo(t, `strong int; bounded<0,100>, constraint_message="percent out of range"`)
	got := Render(lookup(t, "constraints.bounded"), ci)
	assert.Contains(t, got, `"percent out of range"`)
	assert.NotContains(t, got, "value must be within")
}

func TestConstraintSortsAfterOperators(t *testing.T) {
	constraint := lookup(t, "constraints.positive")
	for _, id := range []string{
		"operators.arithmetic.addition.default",
		"operators.comparison.equal",
		"operators.io.ostream",
	} {
		assert.True(t, strings.Compare(lookup(t, id).SortKey(), constraint.SortKey()) < 0,
			"%s should sort before the constraint check", id)
	}
}

func TestNoEmitterAppliesToPlainWrapper(t *testing.T) {
	ids := applicableIDs(buildInfo(t, "strong int"))
	assert.Empty(t, ids)
}
