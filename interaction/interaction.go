// Package interaction parses cross-type operator description files and
// generates the corresponding free-operator headers.
package interaction

import (
	"strings"

	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/inputfile"
)

// DefaultAccess is the accessor used when no value_access directive applies
const DefaultAccess = ".value"

// TemplateConstraint describes a constrained template header synthesized
// from a concept= or enable_if= directive. Exactly one of Concept and
// EnableIf is set.
type TemplateConstraint struct {
	Param    string
	Concept  string
	EnableIf string
}

// Interaction is one parsed cross-type operator request
type Interaction struct {
	LHS    string
	Op     string
	RHS    string
	Result string

	Symmetric bool
	Constexpr bool

	LHSAccess string
	RHSAccess string

	Template *TemplateConstraint
}

// File is a fully parsed interaction description file
type File struct {
	Namespace         string
	GuardPrefix       string
	GuardSeparator    string
	UpcaseGuard       bool
	ConstraintMessage string

	Includes     []string
	Interactions []Interaction
	Types        []description.StrongTypeDescription
}

// binary operators accepted on interaction lines
var interactionOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// parser holds the modal state that directives establish for subsequent
// interaction lines
type parser struct {
	file       *File
	constexpr  bool
	lhsAccess  string
	rhsAccess  string
	constraint *TemplateConstraint

	typeBlock *typeBlock
	line      int
}

// typeBlock accumulates one bundled [type] definition
type typeBlock struct {
	startLine int
	keys      map[string]string
}

// ParseFile parses an interaction description. A file with neither an
// interaction nor a bundled type block is an error.
func ParseFile(content string) (*File, error) {
	p := &parser{
		file: &File{
			GuardSeparator: "_",
			UpcaseGuard:    true,
		},
		constexpr: true,
		lhsAccess: DefaultAccess,
		rhsAccess: DefaultAccess,
	}

	for i, raw := range strings.Split(content, "\n") {
		p.line = i + 1
		line := strings.TrimSpace(raw)
		// comments start the line; a mid-line "#" may be a description
		// include token like #<cstdint>
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.consume(line); err != nil {
			return nil, err
		}
	}
	if err := p.flushTypeBlock(); err != nil {
		return nil, err
	}

	if len(p.file.Interactions) == 0 && len(p.file.Types) == 0 {
		return nil, errors.NewInteractionParseError("interaction file has no interactions and no type blocks")
	}
	return p.file, nil
}

func (p *parser) consume(line string) error {
	switch {
	case line == "[type]":
		if err := p.flushTypeBlock(); err != nil {
			return err
		}
		p.typeBlock = &typeBlock{startLine: p.line, keys: make(map[string]string)}
		return nil

	case line == "constexpr":
		if err := p.flushTypeBlock(); err != nil {
			return err
		}
		p.constexpr = true
		return nil

	case line == "no-constexpr":
		if err := p.flushTypeBlock(); err != nil {
			return err
		}
		p.constexpr = false
		return nil

	case strings.HasPrefix(line, "include "):
		if err := p.flushTypeBlock(); err != nil {
			return err
		}
		return p.consumeInclude(strings.TrimSpace(strings.TrimPrefix(line, "include ")))
	}

	if key, value, ok := strings.Cut(line, "="); ok && !strings.ContainsAny(key, " \t") {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if p.typeBlock != nil {
			return p.consumeTypeKey(key, value)
		}
		return p.consumeDirective(key, value)
	}

	if err := p.flushTypeBlock(); err != nil {
		return err
	}
	return p.consumeInteraction(line)
}

func (p *parser) consumeInclude(spec string) error {
	switch {
	case strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">"),
		strings.HasPrefix(spec, `"`) && strings.HasSuffix(spec, `"`):
		p.file.Includes = append(p.file.Includes, spec)
		return nil
	default:
		return errors.NewParseError(errors.KindInteraction,
			"malformed include %q (expected <header> or \"header\")", spec).
			WithLine(p.line)
	}
}

func (p *parser) consumeDirective(key, value string) error {
	switch key {
	case "namespace":
		p.file.Namespace = strings.Trim(value, ":")
	case "guard_prefix":
		p.file.GuardPrefix = value
	case "guard_separator":
		p.file.GuardSeparator = value
	case "upcase_guard":
		upcase, err := description.ParseBoolOption(value)
		if err != nil {
			return errors.NewParseError(errors.KindInteraction,
				"invalid upcase_guard value %q", value).WithLine(p.line)
		}
		p.file.UpcaseGuard = upcase
	case "constraint_message":
		p.file.ConstraintMessage = strings.Trim(value, `"`)
	case "lhs_value_access":
		p.lhsAccess = value
	case "rhs_value_access":
		p.rhsAccess = value
	case "value_access":
		// supplies the RHS default; LHS keeps its own directive
		p.rhsAccess = value
	case "concept":
		constraint, err := parseConceptValue(value, p.line)
		if err != nil {
			return err
		}
		p.constraint = constraint
	case "enable_if":
		constraint, err := parseEnableIfValue(value, p.line)
		if err != nil {
			return err
		}
		p.constraint = constraint
	default:
		return errors.NewParseError(errors.KindInteraction,
			"unknown directive %q", key).WithLine(p.line).WithToken(key)
	}
	return nil
}

// parseConceptValue accepts "Name" (concept doubles as parameter) or
// "<concept-expr> <param-name>"
func parseConceptValue(value string, line int) (*TemplateConstraint, error) {
	if value == "" {
		return nil, errors.NewParseError(errors.KindInteraction,
			"empty value for concept").WithLine(line)
	}
	if idx := strings.LastIndexAny(value, " \t"); idx >= 0 {
		return &TemplateConstraint{
			Concept: strings.TrimSpace(value[:idx]),
			Param:   strings.TrimSpace(value[idx+1:]),
		}, nil
	}
	return &TemplateConstraint{Concept: value, Param: value}, nil
}

// parseEnableIfValue extracts the parameter name: the first identifier
// inside the innermost angle-bracket pair
func parseEnableIfValue(value string, line int) (*TemplateConstraint, error) {
	if value == "" {
		return nil, errors.NewParseError(errors.KindInteraction,
			"empty value for enable_if").WithLine(line)
	}
	param := extractAngleParam(value)
	if param == "" {
		return nil, errors.NewParseError(errors.KindInteraction,
			"cannot extract a template parameter from enable_if value %q", value).
			WithLine(line)
	}
	return &TemplateConstraint{EnableIf: value, Param: param}, nil
}

// extractAngleParam finds the innermost angle pair (first '>' and the
// nearest '<' before it) and returns the first identifier inside
func extractAngleParam(s string) string {
	closeIdx := strings.Index(s, ">")
	if closeIdx < 0 {
		return ""
	}
	openIdx := strings.LastIndex(s[:closeIdx], "<")
	if openIdx < 0 {
		return ""
	}
	inner := s[openIdx+1 : closeIdx]

	start := -1
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		isIdent := c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			start >= 0 && c >= '0' && c <= '9'
		if isIdent && start < 0 {
			start = i
		}
		if !isIdent && start >= 0 {
			return inner[start:i]
		}
	}
	if start >= 0 {
		return inner[start:]
	}
	return ""
}

// type-block keys shared with the batch input-file grammar
func (p *parser) consumeTypeKey(key, value string) error {
	switch key {
	case "kind", "namespace", "name", "description", "default_value",
		"guard_prefix", "guard_separator", "upcase_guard":
		p.typeBlock.keys[key] = value
		return nil
	default:
		return errors.NewParseError(errors.KindInteraction,
			"unknown key %q in [type] block", key).WithLine(p.line).WithToken(key)
	}
}

func (p *parser) flushTypeBlock() error {
	if p.typeBlock == nil {
		return nil
	}
	block := p.typeBlock
	p.typeBlock = nil

	desc, err := inputfile.DescriptionFromKeys(block.keys)
	if err != nil {
		return errors.Wrapf(err, "[type] block starting on line %d", block.startLine)
	}
	p.file.Types = append(p.file.Types, *desc)
	return nil
}

func (p *parser) consumeInteraction(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || !interactionOps[fields[1]] {
		return errors.NewParseError(errors.KindInteraction,
			"missing or unrecognized operator in interaction %q", line).
			WithLine(p.line)
	}
	if len(fields) < 3 || fields[2] == "->" || fields[2] == "<->" {
		return errors.NewParseError(errors.KindInteraction,
			"missing right-hand operand in interaction %q", line).WithLine(p.line)
	}

	inter := Interaction{
		LHS:       fields[0],
		Op:        fields[1],
		RHS:       fields[2],
		Constexpr: p.constexpr,
		LHSAccess: p.lhsAccess,
		RHSAccess: p.rhsAccess,
		Template:  p.constraint,
	}

	rest := fields[3:]
	if len(rest) == 0 || rest[0] != "->" && rest[0] != "<->" {
		return errors.NewParseError(errors.KindInteraction,
			"missing result type in interaction %q (expected '-> Result')", line).
			WithLine(p.line)
	}
	inter.Symmetric = rest[0] == "<->"
	if len(rest) < 2 {
		return errors.NewParseError(errors.KindInteraction,
			"missing result type in interaction %q", line).WithLine(p.line)
	}
	inter.Result = rest[1]

	for _, extra := range rest[2:] {
		if extra != "symmetric" {
			return errors.NewParseError(errors.KindInteraction,
				"unexpected token %q in interaction %q", extra, line).
				WithLine(p.line).WithToken(extra)
		}
		inter.Symmetric = true
	}

	p.file.Interactions = append(p.file.Interactions, inter)
	return nil
}
