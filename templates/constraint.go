package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/mustache"
)

// constraintEmitter emits the check function for one constraint kind. The
// constructor and every mutating operator call it after producing a value,
// so the check is emitted exactly once per type.
type constraintEmitter struct {
	emitterBase
	kind           description.ConstraintKind
	condition      string // mustache source, "candidate" in scope
	defaultMessage string
}

func (e constraintEmitter) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.Constraint.Kind == e.kind
}

func (e constraintEmitter) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	constraint := ci.Opts.Constraint

	message := constraint.Message
	if message == "" {
		message = mustache.Render(e.defaultMessage, mustache.Context{
			"low":  constraint.Low,
			"high": constraint.High,
		})
	}

	vars := baseVars(ci)
	vars["condition"] = mustache.Render(e.condition, mustache.Context{
		"low":  constraint.Low,
		"high": constraint.High,
	})
	vars["constraint_message"] = message
	return vars
}

func (e constraintEmitter) Template() string { return constraintTemplate }

const constraintTemplate = `    static {{const_expr}}void check_constraint({{underlying_type}} const& candidate)
    {
        if (!({{{condition}}})) {
            throw atlas::ConstraintError("{{class_name}}", atlas::display_value(candidate),
                                         "{{constraint_message}}");
        }
    }
`

func constraintEmitters() []Emitter {
	table := []struct {
		id             string
		kind           description.ConstraintKind
		condition      string
		defaultMessage string
	}{
		{"constraints.positive", description.ConstraintPositive,
			"candidate > 0", "value must be positive"},
		{"constraints.non_negative", description.ConstraintNonNegative,
			"candidate >= 0", "value must be non-negative"},
		{"constraints.non_zero", description.ConstraintNonZero,
			"candidate != 0", "value must be non-zero"},
		{"constraints.non_empty", description.ConstraintNonEmpty,
			"!candidate.empty()", "value must be non-empty"},
		{"constraints.non_null", description.ConstraintNonNull,
			"candidate != nullptr", "value must be non-null"},
		{"constraints.bounded", description.ConstraintBounded,
			"candidate >= {{low}} && candidate <= {{high}}",
			"value must be within [{{low}}, {{high}}]"},
		{"constraints.bounded_range", description.ConstraintBoundedRange,
			"candidate >= {{low}} && candidate < {{high}}",
			"value must be within [{{low}}, {{high}})"},
	}

	var emitters []Emitter
	for _, entry := range table {
		emitters = append(emitters, constraintEmitter{
			emitterBase: emitterBase{
				id: entry.id,
				// sorts after every operator fragment
				sortKey:  "~constraint",
				includes: []string{`"atlas/constraint.hpp"`},
			},
			kind:           entry.kind,
			condition:      entry.condition,
			defaultMessage: entry.defaultMessage,
		})
	}
	return emitters
}
