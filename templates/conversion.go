package templates

import (
	"strings"

	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// boolConversion emits an explicit operator bool
type boolConversion struct {
	emitterBase
}

func (e boolConversion) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.BoolConv
}

func (e boolConversion) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e boolConversion) Template() string { return boolConversionTemplate }

const boolConversionTemplate = `    explicit {{const_expr}}operator bool() const noexcept
    {
        return static_cast<bool>(value);
    }
`

// castOperators emits one conversion operator per requested cast target.
// A single registered emitter handles all targets so the registry stays a
// static catalogue; the per-target loop lives in Render.
type castOperators struct {
	emitterBase
}

func (e castOperators) ShouldApply(ci *classinfo.ClassInfo) bool {
	return len(ci.Opts.Casts) > 0
}

func (e castOperators) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e castOperators) Template() string { return castTemplate }

func (e castOperators) Render(ci *classinfo.ClassInfo) string {
	var fragments []string
	for _, cast := range ci.Opts.Casts {
		vars := baseVars(ci)
		vars["target"] = cast.Target
		if !cast.IsImplicit {
			vars["explicit"] = "explicit "
		}
		fragments = append(fragments, mustache.Render(castTemplate, vars))
	}
	return strings.Join(fragments, "\n")
}

const castTemplate = `    {{explicit}}{{const_expr}}operator {{target}}() const
    {
        return static_cast<{{target}}>(value);
    }
`

func conversionEmitters() []Emitter {
	return []Emitter{
		boolConversion{
			emitterBase: emitterBase{id: "conversion.bool", sortKey: "bool"},
		},
		castOperators{
			emitterBase: emitterBase{id: "conversion.cast", sortKey: "cast"},
		},
	}
}
