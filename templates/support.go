package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// hashSpecialization emits a std::hash specialization after the type's
// namespace closes. Its constexpr-ness is controlled separately by
// no-constexpr-hash.
type hashSpecialization struct {
	emitterBase
}

func (e hashSpecialization) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.Hash
}

func (e hashSpecialization) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	vars := baseVars(ci)
	vars["const_expr_hash"] = ci.ConstExprHash()
	return vars
}

func (e hashSpecialization) Template() string { return hashTemplate }

const hashTemplate = `template <>
struct std::hash<{{full_qualified_name}}>
{
    {{const_expr_hash}}std::size_t operator()({{full_qualified_name}} const& operand) const noexcept
    {
        return std::hash<{{underlying_type}}>{}(operand.value);
    }
};
`

// formatterSpecialization emits a std::formatter specialization inheriting
// the underlying type's format spec handling
type formatterSpecialization struct {
	emitterBase
}

func (e formatterSpecialization) ShouldApply(ci *classinfo.ClassInfo) bool {
	return ci.Opts.Format
}

func (e formatterSpecialization) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e formatterSpecialization) Template() string { return formatterTemplate }

const formatterTemplate = `template <>
struct std::formatter<{{full_qualified_name}}> : std::formatter<{{underlying_type}}>
{
    template <typename FormatContext>
    auto format({{full_qualified_name}} const& operand, FormatContext& ctx) const
    {
        return std::formatter<{{underlying_type}}>::format(operand.value, ctx);
    }
};
`

func supportEmitters() []Emitter {
	return []Emitter{
		hashSpecialization{
			emitterBase: emitterBase{
				id:        "hash.specialization",
				sortKey:   "~hash",
				includes:  []string{"<cstddef>", "<functional>"},
				postamble: true,
			},
		},
		formatterSpecialization{
			emitterBase: emitterBase{
				id:        "format.specialization",
				sortKey:   "~~fmt",
				includes:  []string{"<format>"},
				postamble: true,
			},
		},
	}
}
