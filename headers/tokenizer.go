// Package headers deduces the standard-library includes a C++ type
// expression depends on. It tokenizes the expression into qualified
// identifiers and maps each identifier to its canonical header.
package headers

import (
	"strings"
)

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize splits a type expression into identifiers. Namespace
// qualification survives whitespace: "std :: string" is one token
// "std::string". Any other punctuation separates tokens and is dropped.
func Tokenize(typeExpr string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	i := 0
	for i < len(typeExpr) {
		c := typeExpr[i]
		switch {
		case isWordByte(c):
			cur.WriteByte(c)
			i++
		case isSpaceByte(c) || c == ':':
			// Whitespace only glues when it surrounds a "::"; otherwise it
			// terminates the current token.
			j := i
			for j < len(typeExpr) && isSpaceByte(typeExpr[j]) {
				j++
			}
			if j+1 < len(typeExpr) && typeExpr[j] == ':' && typeExpr[j+1] == ':' {
				j += 2
				for j < len(typeExpr) && isSpaceByte(typeExpr[j]) {
					j++
				}
				cur.WriteString("::")
				i = j
			} else if c == ':' {
				// Lone colon is a plain separator
				flush()
				i++
			} else {
				flush()
				i = j
			}
		default:
			flush()
			i++
		}
	}
	flush()

	return tokens
}
