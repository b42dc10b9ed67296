package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// relational emits one relational operator delegating to the underlying
type relational struct {
	emitterBase
	symbol string
}

func (e relational) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.HasComparison(e.symbol)
}

func (e relational) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["op"] = e.symbol
	return vars
}

func (e relational) Template() string { return relationalTemplate }

const relationalTemplate = `    friend {{const_expr}}bool operator{{op}}({{class_name}} const& lhs, {{class_name}} const& rhs)
    {
        return lhs.value {{op}} rhs.value;
    }
`

// spaceship emits a defaulted three-way comparison, which implicitly
// declares operator== as well
type spaceship struct {
	emitterBase
}

func (e spaceship) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.Spaceship
}

func (e spaceship) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e spaceship) Template() string { return spaceshipTemplate }

const spaceshipTemplate = `    friend auto operator<=>({{class_name}} const& lhs, {{class_name}} const& rhs) = default;
`

var relationalOpNames = map[string]string{
	"==": "equal",
	"!=": "not_equal",
	"<":  "less",
	"<=": "less_equal",
	">":  "greater",
	">=": "greater_equal",
}

func comparisonEmitters() []Emitter {
	var emitters []Emitter
	for _, sym := range []string{"==", "!=", "<", "<=", ">", ">="} {
		emitters = append(emitters, relational{
			emitterBase: emitterBase{
				id:      "operators.comparison." + relationalOpNames[sym],
				sortKey: sym,
			},
			symbol: sym,
		})
	}
	emitters = append(emitters, spaceship{
		emitterBase: emitterBase{
			id:       "operators.comparison.spaceship",
			sortKey:  "<=>",
			includes: []string{"<compare>"},
		},
	})
	return emitters
}
