// Package inputfile parses batch type-definition files: global key=value
// defaults followed by [type] blocks, newline-oriented with # comments.
package inputfile

import (
	"strings"

	"github.com/teranos/atlas/description"
	"github.com/teranos/atlas/errors"
)

// typeKeys are the recognized keys, shared by global defaults and blocks
var typeKeys = map[string]bool{
	"kind":            true,
	"namespace":       true,
	"name":            true,
	"description":     true,
	"default_value":   true,
	"guard_prefix":    true,
	"guard_separator": true,
	"upcase_guard":    true,
}

// ParseTypes parses a type-definition file into descriptions in input
// order. Global lines before the first [type] set defaults each block can
// override.
func ParseTypes(content string) ([]description.StrongTypeDescription, error) {
	defaults := make(map[string]string)
	var blocks []map[string]string
	var current map[string]string

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "[type]" {
			current = make(map[string]string)
			blocks = append(blocks, current)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.NewParseError(errors.KindDescription,
				"malformed line %q (expected key=value or [type])", line).
				WithLine(lineNo)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !typeKeys[key] {
			return nil, errors.NewParseError(errors.KindDescription,
				"unknown key %q", key).WithLine(lineNo).WithToken(key)
		}

		if current != nil {
			current[key] = value
		} else {
			if key == "name" {
				return nil, errors.NewParseError(errors.KindDescription,
					"name outside a [type] block").WithLine(lineNo)
			}
			defaults[key] = value
		}
	}

	if len(blocks) == 0 {
		return nil, errors.NewDescriptionParseError("input file contains no [type] blocks")
	}

	descs := make([]description.StrongTypeDescription, 0, len(blocks))
	for _, block := range blocks {
		merged := make(map[string]string, len(defaults)+len(block))
		for k, v := range defaults {
			merged[k] = v
		}
		for k, v := range block {
			merged[k] = v
		}
		desc, err := DescriptionFromKeys(merged)
		if err != nil {
			return nil, err
		}
		descs = append(descs, *desc)
	}
	return descs, nil
}

// DescriptionFromKeys materializes one StrongTypeDescription from the
// recognized keys. The interaction parser shares it for bundled [type]
// blocks.
func DescriptionFromKeys(keys map[string]string) (*description.StrongTypeDescription, error) {
	kind, err := description.ParseKind(keys["kind"])
	if err != nil {
		return nil, err
	}
	if keys["name"] == "" {
		return nil, errors.NewDescriptionParseError("missing name in type definition")
	}

	desc := &description.StrongTypeDescription{
		Kind:           kind,
		TypeNamespace:  keys["namespace"],
		TypeName:       keys["name"],
		Description:    keys["description"],
		DefaultValue:   keys["default_value"],
		GuardPrefix:    keys["guard_prefix"],
		GuardSeparator: keys["guard_separator"],
	}
	// guards are upcased unless the file says otherwise
	desc.UpcaseGuard = true
	if raw, ok := keys["upcase_guard"]; ok {
		upcase, err := description.ParseBoolOption(raw)
		if err != nil {
			return nil, err
		}
		desc.UpcaseGuard = upcase
	}
	return desc, nil
}
