package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/mustache"
)

// binaryOpNames maps operator symbols to the identifier used in emitter IDs
var binaryOpNames = map[string]string{
	"+":  "addition",
	"-":  "subtraction",
	"*":  "multiplication",
	"/":  "division",
	"%":  "modulo",
	"&":  "bitwise_and",
	"|":  "bitwise_or",
	"^":  "bitwise_xor",
	"<<": "left_shift",
	">>": "right_shift",
}

// checkedHelpers names the atlas runtime primitive for each checked op
var checkedHelpers = map[string]string{
	"+": "checked_add",
	"-": "checked_sub",
	"*": "checked_mul",
	"/": "checked_div",
	"%": "checked_mod",
}

// saturatingHelpers names the atlas runtime primitive for each saturating op
var saturatingHelpers = map[string]string{
	"+": "saturating_add",
	"-": "saturating_sub",
	"*": "saturating_mul",
	"/": "saturating_div",
	"%": "saturating_mod",
}

// binaryArithmetic emits the in-place and value-returning forms of one
// binary operator under one arithmetic mode. The value form forwards
// through the in-place form.
type binaryArithmetic struct {
	emitterBase
	symbol string
	mode   description.ArithmeticMode

	// modeAgnostic ops (bitwise, shifts) have no overflow semantics and
	// apply under every mode
	modeAgnostic bool

	// wrappingFallback marks the Default emitter for "/" and "%", which
	// also applies in Wrapping mode: there is no wrapping division
	wrappingFallback bool

	helper string // atlas runtime primitive for Checked/Saturating
}

func (e binaryArithmetic) ShouldApply(ci *classinfo.ClassInfo) bool {
	if !ci.Opts.HasBinaryOp(e.symbol) {
		return false
	}
	if e.modeAgnostic {
		return true
	}
	if ci.Opts.Mode == e.mode {
		return true
	}
	return e.wrappingFallback && ci.Opts.Mode == description.ModeWrapping
}

func (e binaryArithmetic) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["op"] = e.symbol
	vars["helper"] = e.helper
	return vars
}

func (e binaryArithmetic) Template() string {
	switch e.mode {
	case description.ModeChecked:
		return checkedArithmeticTemplate
	case description.ModeSaturating:
		return saturatingArithmeticTemplate
	case description.ModeWrapping:
		return wrappingArithmeticTemplate
	default:
		return defaultArithmeticTemplate
	}
}

const defaultArithmeticTemplate = `    friend {{const_expr}}{{class_name}}& operator{{op}}=({{class_name}}& lhs, {{class_name}} const& rhs)
    {
        lhs.value {{op}}= rhs.value;{{#has_constraint}}
        check_constraint(lhs.value);{{/has_constraint}}
        return lhs;
    }

    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}} lhs, {{class_name}} const& rhs)
    {
        lhs {{op}}= rhs;
        return lhs;
    }
`

const checkedArithmeticTemplate = `    friend {{const_expr}}{{class_name}}& operator{{op}}=({{class_name}}& lhs, {{class_name}} const& rhs)
    {
        lhs.value = atlas::{{helper}}(lhs.value, rhs.value);{{#has_constraint}}
        check_constraint(lhs.value);{{/has_constraint}}
        return lhs;
    }

    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}} lhs, {{class_name}} const& rhs)
    {
        lhs {{op}}= rhs;
        return lhs;
    }
`

const saturatingArithmeticTemplate = `    friend {{const_expr}}{{class_name}}& operator{{op}}=({{class_name}}& lhs, {{class_name}} const& rhs){{^has_constraint}} noexcept{{/has_constraint}}
    {
        lhs.value = atlas::{{helper}}(lhs.value, rhs.value);{{#has_constraint}}
        check_constraint(lhs.value);{{/has_constraint}}
        return lhs;
    }

    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}} lhs, {{class_name}} const& rhs)
    {
        lhs {{op}}= rhs;
        return lhs;
    }
`

const wrappingArithmeticTemplate = `    friend {{const_expr}}{{class_name}}& operator{{op}}=({{class_name}}& lhs, {{class_name}} const& rhs){{^has_constraint}} noexcept{{/has_constraint}}
    {
        static_assert(std::is_integral_v<{{underlying_type}}>,
                      "wrapping arithmetic requires an integral underlying type");
        using atlas_wrap_t = std::make_unsigned_t<{{underlying_type}}>;
        lhs.value = static_cast<{{underlying_type}}>(
            static_cast<atlas_wrap_t>(lhs.value) {{op}} static_cast<atlas_wrap_t>(rhs.value));{{#has_constraint}}
        check_constraint(lhs.value);{{/has_constraint}}
        return lhs;
    }

    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}} lhs, {{class_name}} const& rhs)
    {
        lhs {{op}}= rhs;
        return lhs;
    }
`

// binaryArithmeticEmitters builds the (operator, mode) matrix. Overflow-aware
// ops get one emitter per mode; "/" and "%" fall back to Default under
// Wrapping; bitwise and shift ops are mode-agnostic.
func binaryArithmeticEmitters() []Emitter {
	var emitters []Emitter

	overflowAware := []string{"+", "-", "*", "/", "%"}
	for _, sym := range overflowAware {
		name := binaryOpNames[sym]
		divisionLike := sym == "/" || sym == "%"

		emitters = append(emitters, binaryArithmetic{
			emitterBase: emitterBase{
				id:      "operators.arithmetic." + name + ".default",
				sortKey: sym,
			},
			symbol:           sym,
			mode:             description.ModeDefault,
			wrappingFallback: divisionLike,
		})
		emitters = append(emitters, binaryArithmetic{
			emitterBase: emitterBase{
				id:       "operators.arithmetic." + name + ".checked",
				sortKey:  sym,
				includes: []string{`"atlas/checked.hpp"`},
			},
			symbol: sym,
			mode:   description.ModeChecked,
			helper: checkedHelpers[sym],
		})
		emitters = append(emitters, binaryArithmetic{
			emitterBase: emitterBase{
				id:       "operators.arithmetic." + name + ".saturating",
				sortKey:  sym,
				includes: []string{`"atlas/saturating.hpp"`},
			},
			symbol: sym,
			mode:   description.ModeSaturating,
			helper: saturatingHelpers[sym],
		})
		if !divisionLike {
			emitters = append(emitters, binaryArithmetic{
				emitterBase: emitterBase{
					id:       "operators.arithmetic." + name + ".wrapping",
					sortKey:  sym,
					includes: []string{"<type_traits>"},
				},
				symbol: sym,
				mode:   description.ModeWrapping,
			})
		}
	}

	for _, sym := range []string{"&", "|", "^", "<<", ">>"} {
		emitters = append(emitters, binaryArithmetic{
			emitterBase: emitterBase{
				id:      "operators.arithmetic." + binaryOpNames[sym] + ".default",
				sortKey: sym,
			},
			symbol:       sym,
			mode:         description.ModeDefault,
			modeAgnostic: true,
		})
	}

	return emitters
}
