package generator

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/teranos/atlas/classinfo"
)

// guardContent is the digest input for one type. Fragment IDs arrive sorted
// so the digest is stable across registry registration order.
func guardContent(ci *classinfo.ClassInfo, sortedFragmentIDs []string) string {
	parts := []string{
		string(ci.Kind),
		ci.Namespace,
		ci.ClassName,
		ci.UnderlyingType,
		strings.Join(sortedFragmentIDs, ","),
		ci.Description,
	}
	return strings.Join(parts, "|")
}

// Guard computes an include-guard macro: {prefix}{separator}{sha1-hex} over
// content. "::" is never legal in a macro so the separator substitutes for it.
func Guard(prefix, separator string, upcase bool, content string) string {
	prefix = strings.ReplaceAll(prefix, "::", separator)

	digest := sha1.Sum([]byte(content))
	guard := prefix + separator + hex.EncodeToString(digest[:])
	if upcase {
		guard = strings.ToUpper(guard)
	}
	return guard
}

// guardFor derives the guard for a type-definition header. The prefix
// defaults to the qualified name of the first type.
func guardFor(ci *classinfo.ClassInfo, content string) string {
	prefix := ci.GuardPrefix
	if prefix == "" {
		prefix = ci.FullQualifiedName
	}
	return Guard(prefix, ci.GuardSeparator, ci.UpcaseGuard, content)
}
