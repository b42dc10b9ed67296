package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// logicalNot emits operator! delegating to the underlying
type logicalNot struct {
	emitterBase
}

func (e logicalNot) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.LogicalNot
}

func (e logicalNot) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e logicalNot) Template() string { return logicalNotTemplate }

const logicalNotTemplate = `    friend {{const_expr}}bool operator!({{class_name}} const& operand)
    {
        return !operand.value;
    }
`

// logicalBinary emits operator&& or operator||. Short-circuit evaluation is
// lost on user-declared overloads, which the generated comment states.
type logicalBinary struct {
	emitterBase
	symbol string
	or     bool
}

func (e logicalBinary) ShouldApply(ci *classinfo.ClassInfo) bool {
	if e.or {
		return ci.Opts.LogicalOr
	}
	return ci.Opts.LogicalAnd
}

func (e logicalBinary) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["op"] = e.symbol
	return vars
}

func (e logicalBinary) Template() string { return logicalBinaryTemplate }

const logicalBinaryTemplate = `    // note: overloaded operator{{op}} does not short-circuit
    friend {{const_expr}}bool operator{{op}}({{class_name}} const& lhs, {{class_name}} const& rhs)
    {
        return lhs.value {{op}} rhs.value;
    }
`

func logicalEmitters() []Emitter {
	return []Emitter{
		logicalNot{
			emitterBase: emitterBase{id: "operators.logical.not", sortKey: "!"},
		},
		logicalBinary{
			emitterBase: emitterBase{id: "operators.logical.and", sortKey: "&&"},
			symbol:      "&&",
		},
		logicalBinary{
			emitterBase: emitterBase{id: "operators.logical.or", sortKey: "||"},
			symbol:      "||",
			or:          true,
		},
	}
}
