package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// streamOut emits operator<< delegating to the underlying value
type streamOut struct {
	emitterBase
}

func (e streamOut) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.StreamOut
}

func (e streamOut) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e streamOut) Template() string { return streamOutTemplate }

const streamOutTemplate = `    friend std::ostream& operator<<(std::ostream& out, {{class_name}} const& operand)
    {
        out << operand.value;
        return out;
    }
`

// streamIn emits operator>> through the istream_drill helper, which
// priority-dispatches to the innermost stream-readable value
type streamIn struct {
	emitterBase
}

func (e streamIn) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.StreamIn
}

func (e streamIn) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e streamIn) Template() string { return streamInTemplate }

const streamInTemplate = `    friend std::istream& operator>>(std::istream& in, {{class_name}}& operand)
    {
        atlas::istream_drill(in, operand.value, atlas::priority_tag<2>{});{{#has_constraint}}
        check_constraint(operand.value);{{/has_constraint}}
        return in;
    }
`

func streamEmitters() []Emitter {
	return []Emitter{
		streamOut{
			emitterBase: emitterBase{
				id:       "operators.io.ostream",
				sortKey:  "out",
				includes: []string{"<ostream>"},
			},
		},
		streamIn{
			emitterBase: emitterBase{
				id:       "operators.io.istream",
				sortKey:  "in",
				includes: []string{"<istream>", `"atlas/istream_drill.hpp"`},
			},
		},
	}
}
