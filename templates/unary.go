package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// unaryArithmetic emits one unary operator returning a fresh wrapper
type unaryArithmetic struct {
	emitterBase
	symbol string
}

func (e unaryArithmetic) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.HasUnaryOp(e.symbol)
}

func (e unaryArithmetic) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["op"] = e.symbol
	return vars
}

func (e unaryArithmetic) Template() string { return unaryTemplate }

// The spaced brace initialization keeps the rendered output readable and
// keeps "{{class_name}}{" from running into the "{{op}}" tag.
const unaryTemplate = `    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}} const& operand)
    {
        return {{class_name}}{ {{op}}operand.value };
    }
`

// stepOperator emits the prefix and postfix forms of ++ or --
type stepOperator struct {
	emitterBase
	symbol    string
	decrement bool
}

func (e stepOperator) ShouldApply(ci *classinfo.ClassInfo) bool {
	if e.decrement {
		return ci.Opts.Decrement
	}
	return ci.Opts.Increment
}

func (e stepOperator) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["op"] = e.symbol
	return vars
}

func (e stepOperator) Template() string { return stepTemplate }

const stepTemplate = `    friend {{const_expr}}{{class_name}}& operator{{op}}({{class_name}}& operand)
    {
        {{op}}operand.value;{{#has_constraint}}
        check_constraint(operand.value);{{/has_constraint}}
        return operand;
    }

    friend {{const_expr}}{{class_name}} operator{{op}}({{class_name}}& operand, int)
    {
        {{class_name}} previous{operand};
        {{op}}operand;
        return previous;
    }
`

var unaryOpNames = map[string]string{
	"+": "plus",
	"-": "minus",
	"~": "complement",
}

func unaryEmitters() []Emitter {
	var emitters []Emitter
	for _, sym := range []string{"+", "-", "~"} {
		emitters = append(emitters, unaryArithmetic{
			emitterBase: emitterBase{
				id:      "operators.unary." + unaryOpNames[sym],
				sortKey: "u" + sym,
			},
			symbol: sym,
		})
	}
	emitters = append(emitters,
		stepOperator{
			emitterBase: emitterBase{id: "operators.increment", sortKey: "++"},
			symbol:      "++",
		},
		stepOperator{
			emitterBase: emitterBase{id: "operators.decrement", sortKey: "--"},
			symbol:      "--",
			decrement:   true,
		},
	)
	return emitters
}
