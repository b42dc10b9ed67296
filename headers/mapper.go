package headers

import (
	"sort"
	"strings"
)

// exactHeaders is the closed table of standard-library identifiers Atlas
// recognizes, keyed exactly as they appear after tokenization.
var exactHeaders = map[string][]string{
	"std::string":    {"<string>"},
	"std::wstring":   {"<string>"},
	"std::u8string":  {"<string>"},
	"std::u16string": {"<string>"},
	"std::u32string": {"<string>"},

	"std::string_view":    {"<string_view>"},
	"std::wstring_view":   {"<string_view>"},
	"std::u8string_view":  {"<string_view>"},
	"std::u16string_view": {"<string_view>"},
	"std::u32string_view": {"<string_view>"},

	"std::vector":       {"<vector>"},
	"std::array":        {"<array>"},
	"std::deque":        {"<deque>"},
	"std::list":         {"<list>"},
	"std::forward_list": {"<forward_list>"},

	"std::map":                {"<map>"},
	"std::multimap":           {"<map>"},
	"std::set":                {"<set>"},
	"std::multiset":           {"<set>"},
	"std::unordered_map":      {"<unordered_map>"},
	"std::unordered_multimap": {"<unordered_map>"},
	"std::unordered_set":      {"<unordered_set>"},
	"std::unordered_multiset": {"<unordered_set>"},

	"std::pair":             {"<utility>"},
	"std::tuple":            {"<tuple>"},
	"std::optional":         {"<optional>"},
	"std::variant":          {"<variant>"},
	"std::monostate":        {"<variant>"},
	"std::any":              {"<any>"},
	"std::span":             {"<span>"},
	"std::bitset":           {"<bitset>"},
	"std::complex":          {"<complex>"},
	"std::initializer_list": {"<initializer_list>"},

	"std::unique_ptr": {"<memory>"},
	"std::shared_ptr": {"<memory>"},
	"std::weak_ptr":   {"<memory>"},

	"std::function":          {"<functional>"},
	"std::reference_wrapper": {"<functional>"},

	"std::byte": {"<cstddef>"},

	"std::atomic": {"<atomic>"},
	"std::thread": {"<thread>"},
	"std::mutex":  {"<mutex>"},

	"std::istream":       {"<istream>"},
	"std::ostream":       {"<ostream>"},
	"std::iostream":      {"<iostream>"},
	"std::stringstream":  {"<sstream>"},
	"std::istringstream": {"<sstream>"},
	"std::ostringstream": {"<sstream>"},
}

// cstdintBases covers the <cstdint> "_t" family after the suffix is removed
var cstdintBases = map[string]bool{
	"intmax": true, "intptr": true,
	"uintmax": true, "uintptr": true,
}

// cstddefBases covers the <cstddef> "_t" family after the suffix is removed
var cstddefBases = map[string]bool{
	"size": true, "ptrdiff": true, "ssize": true, "max_align": true,
}

// prefixHeaders maps namespace prefixes to headers
var prefixHeaders = map[string][]string{
	"std::chrono::":      {"<chrono>"},
	"std::pmr::":         {"<memory_resource>"},
	"std::filesystem::":  {"<filesystem>"},
	"std::ranges::":      {"<ranges>"},
	"std::this_thread::": {"<thread>"},
}

// isSizedIntName reports whether base names a sized integer typedef such as
// int8, uint64, int_fast32 or uint_least8.
func isSizedIntName(base string) bool {
	rest := strings.TrimPrefix(base, "u")
	if !strings.HasPrefix(rest, "int") {
		return false
	}
	rest = rest[len("int"):]
	rest = strings.TrimPrefix(rest, "_fast")
	rest = strings.TrimPrefix(rest, "_least")
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// MapToken resolves a single identifier to the canonical headers it needs.
// Unknown identifiers resolve to nothing; user-defined types are not errors.
func MapToken(token string) []string {
	token = strings.TrimPrefix(token, "::")

	var found []string

	if hdrs, ok := exactHeaders[token]; ok {
		found = append(found, hdrs...)
	}

	// "_t" suffix rule, plain or std::-qualified
	if strings.HasSuffix(token, "_t") {
		base := strings.TrimPrefix(token, "std::")
		base = strings.TrimSuffix(base, "_t")
		switch {
		case isSizedIntName(base) || cstdintBases[base]:
			found = append(found, "<cstdint>")
		case cstddefBases[base]:
			found = append(found, "<cstddef>")
		}
	}

	for prefix, hdrs := range prefixHeaders {
		if strings.HasPrefix(token, prefix) {
			found = append(found, hdrs...)
		}
	}

	return sortUnique(found)
}

// DeduceHeadersFromType tokenizes a type expression and returns the sorted,
// deduplicated union of headers its identifiers require.
func DeduceHeadersFromType(typeExpr string) []string {
	var all []string
	for _, token := range Tokenize(typeExpr) {
		all = append(all, MapToken(token)...)
	}
	return sortUnique(all)
}

// sortUnique sorts a header list and drops duplicates
func sortUnique(headers []string) []string {
	if len(headers) == 0 {
		return nil
	}
	sort.Strings(headers)
	out := headers[:1]
	for _, h := range headers[1:] {
		if h != out[len(out)-1] {
			out = append(out, h)
		}
	}
	return out
}
