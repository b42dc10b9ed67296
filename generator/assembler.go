// Package generator assembles rendered feature fragments into complete
// header files: notice banner, content-addressed include guard, deduplicated
// includes, namespace blocks and post-namespace specializations.
package generator

import (
	"sort"
	"strings"

	"github.com/teranos/atlas/classinfo"
	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/mustache"
	"github.com/teranos/atlas/templates"
)

// Output is one assembled header plus any non-fatal diagnostics
type Output struct {
	Header   string
	Warnings []string
}

// Rendered holds the type blocks of a header before guard and include
// layout. The interaction generator embeds bundled type definitions through
// this form.
type Rendered struct {
	Body       string               // namespace blocks and their postambles, input order
	Includes   []string             // unsorted, may contain duplicates
	GuardInput string               // digest input covering every type
	First      *classinfo.ClassInfo // guard controls come from the first type
	Warnings   []string
}

// Assembler drives the registry over ClassInfos and merges the fragments.
// The zero value is not usable; construct with NewAssembler.
type Assembler struct {
	registry *templates.Registry
}

func NewAssembler(registry *templates.Registry) *Assembler {
	return &Assembler{registry: registry}
}

// Generate assembles the header for a single type description
func Generate(desc description.StrongTypeDescription) (*Output, error) {
	return NewAssembler(templates.Default()).Generate(desc)
}

// GenerateBatch assembles one header for several type descriptions: one
// banner, one guard, types in input order.
func GenerateBatch(descs []description.StrongTypeDescription) (*Output, error) {
	return NewAssembler(templates.Default()).GenerateBatch(descs)
}

func (a *Assembler) Generate(desc description.StrongTypeDescription) (*Output, error) {
	return a.GenerateBatch([]description.StrongTypeDescription{desc})
}

func (a *Assembler) GenerateBatch(descs []description.StrongTypeDescription) (*Output, error) {
	if len(descs) == 0 {
		return nil, errors.NewArgumentError("no type descriptions to generate")
	}

	rendered, err := a.RenderTypes(descs)
	if err != nil {
		return nil, err
	}

	guard := guardFor(rendered.First, rendered.GuardInput)

	var b strings.Builder
	b.WriteString(noticeBanner())
	b.WriteString("\n#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n\n")
	for _, inc := range sortUniqueIncludes(rendered.Includes) {
		b.WriteString("#include " + inc + "\n")
	}
	b.WriteString("\n")
	b.WriteString(rendered.Body)
	b.WriteString("#endif // " + guard + "\n")

	return &Output{Header: b.String(), Warnings: rendered.Warnings}, nil
}

// fragment is one emitter's rendered contribution
type fragment struct {
	id        string
	sortKey   string
	text      string
	postamble bool
}

// typePlan is everything collected for one type before layout
type typePlan struct {
	ci         *classinfo.ClassInfo
	body       []fragment
	postambles []fragment
	preambles  []string
}

// RenderTypes renders the namespace blocks for descs without the
// surrounding guard, banner or include block.
func (a *Assembler) RenderTypes(descs []description.StrongTypeDescription) (*Rendered, error) {
	rendered := &Rendered{
		// every type carries the forwarding constructor
		Includes: []string{"<type_traits>", "<utility>"},
	}

	var body strings.Builder
	var guardInputs []string

	for _, desc := range descs {
		ci, err := classinfo.Build(desc)
		if err != nil {
			return nil, err
		}
		if rendered.First == nil {
			rendered.First = ci
		}
		rendered.Warnings = append(rendered.Warnings, AnalyzeWarnings(ci)...)
		rendered.Includes = append(rendered.Includes, ci.ImplicitIncludes...)

		plan := typePlan{ci: ci}
		a.registry.VisitApplicable(ci, func(e templates.Emitter) {
			f := fragment{
				id:        e.ID(),
				sortKey:   e.SortKey(),
				text:      templates.Render(e, ci),
				postamble: e.Postamble(),
			}
			if f.postamble {
				plan.postambles = append(plan.postambles, f)
			} else {
				plan.body = append(plan.body, f)
			}
			rendered.Includes = append(rendered.Includes, e.RequiredIncludes()...)
			if pre := e.RequiredPreamble(ci); pre != "" {
				plan.preambles = append(plan.preambles, pre)
			}
		})

		sortFragments(plan.body)
		sortFragments(plan.postambles)

		ids := fragmentIDs(plan.body, plan.postambles)
		sort.Strings(ids)
		guardInputs = append(guardInputs, guardContent(ci, ids))

		for _, pre := range plan.preambles {
			body.WriteString(pre)
			body.WriteString("\n")
		}
		body.WriteString(renderType(plan))
	}

	rendered.Body = body.String()
	rendered.GuardInput = strings.Join(guardInputs, "\n")
	return rendered, nil
}

// noticeBanner is fixed text; two runs over the same input must produce
// byte-identical output, so no version or timestamp appears here.
func noticeBanner() string {
	return "// Code generated by atlas. DO NOT EDIT.\n"
}

func sortFragments(fragments []fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].sortKey != fragments[j].sortKey {
			return fragments[i].sortKey < fragments[j].sortKey
		}
		return fragments[i].id < fragments[j].id
	})
}

func fragmentIDs(groups ...[]fragment) []string {
	var ids []string
	for _, group := range groups {
		for _, f := range group {
			ids = append(ids, f.id)
		}
	}
	return ids
}

func sortUniqueIncludes(includes []string) []string {
	seen := make(map[string]struct{}, len(includes))
	var unique []string
	for _, inc := range includes {
		if _, dup := seen[inc]; dup {
			continue
		}
		seen[inc] = struct{}{}
		unique = append(unique, inc)
	}
	sort.Strings(unique)
	return unique
}

// typeSkeleton opens the type, declares the constructors and the value
// member. Operator fragments follow it inside the class body. Section tags
// hug their content because the mustache engine does no standalone-line
// trimming.
const typeSkeleton = `{{kind}} {{class_name}}
{
{{#is_class}}public:
{{/is_class}}    {{class_name}}() = default;

    template <typename... Args,
              typename = std::enable_if_t<std::is_constructible_v<{{underlying_type}}, Args&&...>>>
    {{const_expr}}explicit {{class_name}}(Args&&... args)
        : value{std::forward<Args>(args)...}
    {
{{#has_constraint}}        check_constraint(value);
{{/has_constraint}}    }

{{#has_default}}    {{underlying_type}} value{ {{default_value}} };
{{/has_default}}{{^has_default}}    {{underlying_type}} value;
{{/has_default}}`

func renderType(plan typePlan) string {
	ci := plan.ci

	vars := mustache.Context{
		"kind":            string(ci.Kind),
		"class_name":      ci.ClassName,
		"underlying_type": ci.UnderlyingType,
		"const_expr":      ci.ConstExpr(),
		"has_constraint":  ci.HasConstraint(),
		"is_class":        ci.Kind == description.KindClass,
		"has_default":     ci.DefaultValue != "",
		"default_value":   ci.DefaultValue,
	}

	var b strings.Builder
	if ci.Namespace != "" {
		b.WriteString("namespace " + ci.Namespace + " {\n\n")
	}

	b.WriteString(mustache.Render(typeSkeleton, vars))
	for _, f := range plan.body {
		b.WriteString("\n")
		b.WriteString(f.text)
	}
	b.WriteString("};\n\n")

	if ci.Namespace != "" {
		b.WriteString("} // namespace " + ci.Namespace + "\n\n")
	}

	for _, f := range plan.postambles {
		b.WriteString(f.text)
		b.WriteString("\n")
	}
	return b.String()
}
