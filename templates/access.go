package templates

import (
	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/mustache"
)

// flagEmitter renders a fixed template when a single option flag is set
type flagEmitter struct {
	emitterBase
	applies  func(ci *classinfo.ClassInfo) bool
	template string
}

func (e flagEmitter) ShouldApply(ci *classinfo.ClassInfo) bool {
	return e.applies(ci)
}

func (e flagEmitter) PrepareVariables(ci *classinfo.ClassInfo) mustache.Context {
	return baseVars(ci)
}

func (e flagEmitter) Template() string { return e.template }

// The multidimensional form needs C++23; the single-argument fallback keeps
// earlier standards working.
const subscriptTemplate = `#if defined(__cpp_multidimensional_subscript)
    template <typename... Index>
    {{const_expr}}decltype(auto) operator[](Index&&... index)
        noexcept(noexcept(std::declval<{{underlying_type}}&>()[std::declval<Index>()...]))
    {
        return value[std::forward<Index>(index)...];
    }

    template <typename... Index>
    {{const_expr}}decltype(auto) operator[](Index&&... index) const
        noexcept(noexcept(std::declval<{{underlying_type}} const&>()[std::declval<Index>()...]))
    {
        return value[std::forward<Index>(index)...];
    }
#else
    template <typename Index>
    {{const_expr}}decltype(auto) operator[](Index&& index)
        noexcept(noexcept(std::declval<{{underlying_type}}&>()[std::declval<Index>()]))
    {
        return value[std::forward<Index>(index)];
    }

    template <typename Index>
    {{const_expr}}decltype(auto) operator[](Index&& index) const
        noexcept(noexcept(std::declval<{{underlying_type}} const&>()[std::declval<Index>()]))
    {
        return value[std::forward<Index>(index)];
    }
#endif
`

const callTemplate = `    template <typename... Args>
    {{const_expr}}decltype(auto) operator()(Args&&... args) const
    {
        return value(std::forward<Args>(args)...);
    }
`

const callRefTemplate = `    template <typename... Args>
    {{const_expr}}decltype(auto) operator()(Args&&... args)
    {
        return value(std::forward<Args>(args)...);
    }
`

const indirectionTemplate = `    {{const_expr}}{{underlying_type}}& operator*() noexcept
    {
        return value;
    }

    {{const_expr}}{{underlying_type}} const& operator*() const noexcept
    {
        return value;
    }
`

const addressOfTemplate = `    {{const_expr}}{{underlying_type}}* operator&() noexcept
    {
        return &value;
    }

    {{const_expr}}{{underlying_type}} const* operator&() const noexcept
    {
        return &value;
    }
`

const memberAccessTemplate = `    {{const_expr}}{{underlying_type}}* operator->() noexcept
    {
        return &value;
    }

    {{const_expr}}{{underlying_type}} const* operator->() const noexcept
    {
        return &value;
    }
`

const assignTemplate = `    template <typename Other,
              typename = std::enable_if_t<std::is_convertible_v<Other, {{underlying_type}}>>>
    {{const_expr}}{{class_name}}& operator=(Other&& other)
    {
        value = static_cast<{{underlying_type}}>(std::forward<Other>(other));{{#has_constraint}}
        check_constraint(value);{{/has_constraint}}
        return *this;
    }
`

const iterableTemplate = `    {{const_expr}}auto begin() { return std::begin(value); }
    {{const_expr}}auto end() { return std::end(value); }
    {{const_expr}}auto begin() const { return std::begin(value); }
    {{const_expr}}auto end() const { return std::end(value); }
`

func accessEmitters() []Emitter {
	return []Emitter{
		flagEmitter{
			emitterBase: emitterBase{
				id:       "operators.access.subscript",
				sortKey:  "[]",
				includes: []string{"<utility>"},
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.Subscript },
			template: subscriptTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:       "operators.access.call",
				sortKey:  "()",
				includes: []string{"<utility>"},
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.Call },
			template: callTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:       "operators.access.call_ref",
				sortKey:  "(&)",
				includes: []string{"<utility>"},
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.CallRef },
			template: callRefTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:      "operators.access.indirection",
				sortKey: "@",
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.Indirection },
			template: indirectionTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:      "operators.access.address_of",
				sortKey: "&of",
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.AddressOf },
			template: addressOfTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:      "operators.access.member_access",
				sortKey: "->",
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.MemberAccess },
			template: memberAccessTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:       "operators.access.assign",
				sortKey:  "=",
				includes: []string{"<type_traits>", "<utility>"},
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.Assign },
			template: assignTemplate,
		},
		flagEmitter{
			emitterBase: emitterBase{
				id:       "operators.access.iterable",
				sortKey:  "iterable",
				includes: []string{"<iterator>"},
			},
			applies:  func(ci *classinfo.ClassInfo) bool { return ci.Opts.Iterable },
			template: iterableTemplate,
		},
	}
}
