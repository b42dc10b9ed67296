// Package mustache implements the minimal template subset Atlas emitters
// rely on: {{var}} and {{{var}}} substitution plus boolean sections
// {{#flag}}...{{/flag}} and {{^flag}}...{{/flag}}.
//
// There is deliberately no support for partials, lambdas or list iteration.
// Substitution is verbatim in both forms; the generated output is C++ source,
// not HTML, so nothing is ever escaped. Unknown variables render empty and
// rendering performs no I/O.
package mustache

import (
	"strings"
)

// Context supplies values for a render. Strings substitute; bools (and
// non-empty strings) drive sections.
type Context map[string]interface{}

// truthy decides whether a section renders
func (c Context) truthy(key string) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		return false
	}
}

// lookup returns the substitution text for a variable tag
func (c Context) lookup(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Render expands template against ctx. Malformed tags pass through verbatim.
func Render(template string, ctx Context) string {
	var out strings.Builder
	renderInto(&out, template, ctx)
	return out.String()
}

func renderInto(out *strings.Builder, template string, ctx Context) {
	for {
		open := strings.Index(template, "{{")
		if open < 0 {
			out.WriteString(template)
			return
		}
		out.WriteString(template[:open])
		template = template[open:]

		// Triple-brace raw variable
		if strings.HasPrefix(template, "{{{") {
			end := strings.Index(template, "}}}")
			if end < 0 {
				out.WriteString(template)
				return
			}
			key := strings.TrimSpace(template[3:end])
			out.WriteString(ctx.lookup(key))
			template = template[end+3:]
			continue
		}

		end := strings.Index(template, "}}")
		if end < 0 {
			out.WriteString(template)
			return
		}
		tag := strings.TrimSpace(template[2:end])
		rest := template[end+2:]

		if tag == "" {
			template = rest
			continue
		}

		switch tag[0] {
		case '#', '^':
			name := strings.TrimSpace(tag[1:])
			body, after, ok := splitSection(rest, name)
			if !ok {
				// Unterminated section: emit nothing and stop
				return
			}
			show := ctx.truthy(name)
			if tag[0] == '^' {
				show = !show
			}
			if show {
				renderInto(out, body, ctx)
			}
			template = after
		case '/':
			// Stray close tag, drop it
			template = rest
		default:
			out.WriteString(ctx.lookup(tag))
			template = rest
		}
	}
}

// splitSection finds the close tag matching an already-consumed open tag for
// name, honoring nested sections of the same name. It returns the section
// body and the remainder after the close tag.
func splitSection(s, name string) (body, after string, ok bool) {
	depth := 1
	openA := "{{#" + name + "}}"
	openB := "{{^" + name + "}}"
	closeTag := "{{/" + name + "}}"

	i := 0
	for i < len(s) {
		next := strings.Index(s[i:], "{{")
		if next < 0 {
			return "", "", false
		}
		i += next
		switch {
		case strings.HasPrefix(s[i:], openA) || strings.HasPrefix(s[i:], openB):
			depth++
			i += len(openA)
		case strings.HasPrefix(s[i:], closeTag):
			depth--
			if depth == 0 {
				return s[:i], s[i+len(closeTag):], true
			}
			i += len(closeTag)
		default:
			i += 2
		}
	}
	return "", "", false
}
