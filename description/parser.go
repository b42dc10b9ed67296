package description

import (
	"strings"

	"github.com/teranos/atlas/errors"
)

var binarySymbols = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
}

var comparisonSymbols = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

var bareConstraints = map[string]ConstraintKind{
	"positive":     ConstraintPositive,
	"non_negative": ConstraintNonNegative,
	"non_zero":     ConstraintNonZero,
	"non_empty":    ConstraintNonEmpty,
	"non_null":     ConstraintNonNull,
}

// Parse ingests a description of the form "strong <UnderlyingType>; opt, ...".
// The first semicolon-delimited clause names the underlying type; remaining
// comma-delimited tokens request features. Unknown tokens are fatal.
func Parse(desc string) (*Options, error) {
	opts := &Options{
		Constexpr:     true,
		ConstexprHash: true,
	}

	head, tail, _ := strings.Cut(desc, ";")

	underlying, err := parseUnderlying(head)
	if err != nil {
		return nil, err
	}
	opts.UnderlyingType = underlying

	modeSet := false
	for _, raw := range splitOptions(tail) {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue // empty tokens between commas are benign
		}
		if err := parseToken(opts, token, &modeSet); err != nil {
			return nil, err
		}
	}

	return opts, nil
}

// parseUnderlying extracts the underlying type from the "strong T" clause,
// normalizing interior whitespace.
func parseUnderlying(head string) (string, error) {
	head = strings.TrimSpace(head)
	rest, ok := strings.CutPrefix(head, "strong")
	if !ok {
		return "", errors.NewParseError(errors.KindDescription,
			"description must begin with 'strong <type>'").WithToken(head)
	}
	if rest != "" && !strings.ContainsAny(rest[:1], " \t") {
		// "strongint" is not a strong declaration
		return "", errors.NewParseError(errors.KindDescription,
			"description must begin with 'strong <type>'").WithToken(head)
	}
	underlying := strings.Join(strings.Fields(rest), " ")
	if underlying == "" {
		return "", errors.NewParseError(errors.KindDescription, "empty underlying type")
	}
	return underlying, nil
}

// splitOptions splits on commas that are not nested inside angle brackets,
// so bounded<0,100> and cast<std::pair<int,int>> stay whole.
func splitOptions(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func parseToken(opts *Options, token string, modeSet *bool) error {
	// Operator families first; exact matches are cheapest
	switch token {
	case "+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>":
		addUnique(&opts.BinaryOps, token)
		return nil
	case "+*", "-*":
		sym := token[:1]
		addUnique(&opts.BinaryOps, sym)
		addUnique(&opts.UnaryOps, sym)
		return nil
	case "u+", "u-", "u~":
		addUnique(&opts.UnaryOps, token[1:])
		return nil
	case "~":
		addUnique(&opts.UnaryOps, "~")
		return nil
	case "==", "!=", "<", "<=", ">", ">=":
		addUnique(&opts.Comparisons, token)
		return nil
	case "<=>":
		opts.Spaceship = true
		return nil
	case "!", "not":
		opts.LogicalNot = true
		return nil
	case "&&", "and":
		opts.LogicalAnd = true
		return nil
	case "||", "or":
		opts.LogicalOr = true
		return nil
	case "++":
		opts.Increment = true
		return nil
	case "--":
		opts.Decrement = true
		return nil
	case "@":
		opts.Indirection = true
		return nil
	case "&of":
		opts.AddressOf = true
		return nil
	case "->":
		opts.MemberAccess = true
		return nil
	case "()":
		opts.Call = true
		return nil
	case "(&)":
		opts.CallRef = true
		return nil
	case "[]":
		opts.Subscript = true
		return nil
	case "bool":
		opts.BoolConv = true
		return nil
	case "in":
		opts.StreamIn = true
		return nil
	case "out":
		opts.StreamOut = true
		return nil
	case "hash":
		opts.Hash = true
		return nil
	case "iterable":
		opts.Iterable = true
		return nil
	case "assign":
		opts.Assign = true
		return nil
	case "fmt":
		opts.Format = true
		return nil
	case "no-constexpr":
		opts.Constexpr = false
		opts.ConstexprHash = false
		return nil
	case "no-constexpr-hash":
		opts.Hash = true
		opts.ConstexprHash = false
		return nil
	case "checked":
		return setMode(opts, ModeChecked, modeSet)
	case "saturating":
		return setMode(opts, ModeSaturating, modeSet)
	case "wrapping":
		return setMode(opts, ModeWrapping, modeSet)
	}

	if kind, ok := bareConstraints[token]; ok {
		return setConstraint(opts, Constraint{Kind: kind}, token)
	}

	switch {
	case strings.HasPrefix(token, "#"):
		return parseInclude(opts, token)
	case strings.HasPrefix(token, "cast<"), strings.HasPrefix(token, "explicit_cast<"):
		return parseCast(opts, token, false)
	case strings.HasPrefix(token, "implicit_cast<"):
		return parseCast(opts, token, true)
	case strings.HasPrefix(token, "bounded<"):
		return parseBounded(opts, token, ConstraintBounded)
	case strings.HasPrefix(token, "bounded_range<"):
		return parseBounded(opts, token, ConstraintBoundedRange)
	case strings.HasPrefix(token, "constraint_message="):
		return parseConstraintMessage(opts, token)
	}

	return errors.NewParseError(errors.KindDescription,
		"Unrecognized operator or option in description: '%s'", token).WithToken(token)
}

func setMode(opts *Options, mode ArithmeticMode, modeSet *bool) error {
	if *modeSet && opts.Mode != mode {
		return errors.NewParseError(errors.KindDescription,
			"conflicting arithmetic modes: %s and %s are mutually exclusive", opts.Mode, mode)
	}
	opts.Mode = mode
	*modeSet = true
	return nil
}

func setConstraint(opts *Options, c Constraint, token string) error {
	if opts.Constraint.Kind != ConstraintNone && opts.Constraint.Kind != c.Kind {
		return errors.NewParseError(errors.KindDescription,
			"conflicting constraints: %s and %s", opts.Constraint.Kind, c.Kind).WithToken(token)
	}
	message := opts.Constraint.Message // survive a constraint_message seen first
	opts.Constraint = c
	if opts.Constraint.Message == "" {
		opts.Constraint.Message = message
	}
	return nil
}

// parseInclude handles "#<hdr>", "#\"hdr\"" and "#'hdr'" tokens. Single
// quotes are rewritten to double quotes.
func parseInclude(opts *Options, token string) error {
	spec := strings.TrimSpace(token[1:])
	if len(spec) < 2 {
		return errors.NewParseError(errors.KindDescription,
			"unterminated include in description").WithToken(token)
	}
	first, last := spec[0], spec[len(spec)-1]
	switch {
	case first == '<' && last == '>':
		// keep as-is
	case first == '"' && last == '"':
		// keep as-is
	case first == '\'' && last == '\'':
		spec = "\"" + spec[1:len(spec)-1] + "\""
	default:
		return errors.NewParseError(errors.KindDescription,
			"unterminated include in description").WithToken(token)
	}
	addUnique(&opts.Includes, spec)
	return nil
}

// parseCast extracts the target from between the first '<' and the last '>'
func parseCast(opts *Options, token string, implicit bool) error {
	open := strings.Index(token, "<")
	close_ := strings.LastIndex(token, ">")
	if close_ <= open {
		return errors.NewParseError(errors.KindDescription,
			"malformed cast target (missing closing '>')").WithToken(token)
	}
	target := strings.TrimSpace(token[open+1 : close_])
	if target == "" {
		return errors.NewParseError(errors.KindDescription,
			"malformed cast target (empty)").WithToken(token)
	}
	opts.Casts = append(opts.Casts, Cast{Target: target, IsImplicit: implicit})
	return nil
}

func parseBounded(opts *Options, token string, kind ConstraintKind) error {
	open := strings.Index(token, "<")
	close_ := strings.LastIndex(token, ">")
	if close_ <= open {
		return errors.NewParseError(errors.KindDescription,
			"malformed %s constraint (missing closing '>')", kind).WithToken(token)
	}
	inner := token[open+1 : close_]
	lo, hi, found := strings.Cut(inner, ",")
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if !found || lo == "" || hi == "" {
		return errors.NewParseError(errors.KindDescription,
			"malformed %s constraint (expected %s<lo,hi>)", kind, kind).WithToken(token)
	}
	return setConstraint(opts, Constraint{Kind: kind, Low: lo, High: hi}, token)
}

func parseConstraintMessage(opts *Options, token string) error {
	value := strings.TrimSpace(strings.TrimPrefix(token, "constraint_message="))
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return errors.NewParseError(errors.KindDescription,
			`constraint_message requires a double-quoted value`).WithToken(token)
	}
	opts.Constraint.Message = value[1 : len(value)-1]
	return nil
}

func addUnique(list *[]string, item string) {
	for _, existing := range *list {
		if existing == item {
			return
		}
	}
	*list = append(*list, item)
}
