package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "int", []string{"int"}},
		{"qualified", "std::string", []string{"std::string"}},
		{"spaces around scope", "std :: string", []string{"std::string"}},
		{"space before scope", "std ::string", []string{"std::string"}},
		{"space after scope", "std:: string", []string{"std::string"}},
		{"template", "std::vector<std::string>", []string{"std::vector", "std::string"}},
		{"nested template", "std::map<std::string, std::vector<int>>", []string{"std::map", "std::string", "std::vector", "int"}},
		{"pointer", "my::Thing*", []string{"my::Thing"}},
		{"reference and const", "const std::string&", []string{"const", "std::string"}},
		{"multi word", "unsigned long long", []string{"unsigned", "long", "long"}},
		{"deep namespace", "std::chrono::duration<int>", []string{"std::chrono::duration", "int"}},
		{"empty", "", nil},
		{"punctuation only", "<>,*&", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	// A well-formed qualified name fed back in is a single token
	toks := Tokenize("std::chrono::steady_clock")
	assert.Equal(t, []string{"std::chrono::steady_clock"}, toks)
	assert.Equal(t, toks, Tokenize(toks[0]))
}

func TestMapToken(t *testing.T) {
	tests := []struct {
		token string
		want  []string
	}{
		{"std::string", []string{"<string>"}},
		{"std::vector", []string{"<vector>"}},
		{"std::unordered_map", []string{"<unordered_map>"}},
		{"int", nil},
		{"MyType", nil},
		{"acme::Widget", nil},
		{"int32_t", []string{"<cstdint>"}},
		{"std::int32_t", []string{"<cstdint>"}},
		{"uint64_t", []string{"<cstdint>"}},
		{"int_fast16_t", []string{"<cstdint>"}},
		{"uint_least8_t", []string{"<cstdint>"}},
		{"intptr_t", []string{"<cstdint>"}},
		{"size_t", []string{"<cstddef>"}},
		{"std::size_t", []string{"<cstddef>"}},
		{"ptrdiff_t", []string{"<cstddef>"}},
		{"max_align_t", []string{"<cstddef>"}},
		{"result_t", nil}, // user _t type, no match
		{"std::chrono::milliseconds", []string{"<chrono>"}},
		{"std::pmr::vector", []string{"<memory_resource>"}},
		{"std::filesystem::path", []string{"<filesystem>"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, MapToken(tt.token))
		})
	}
}

func TestDeduceHeadersFromType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain int", "int", nil},
		{"string", "std::string", []string{"<string>"}},
		{"vector of string", "std::vector<std::string>", []string{"<string>", "<vector>"}},
		{"map", "std::map<std::string, std::uint8_t>", []string{"<cstdint>", "<map>", "<string>"}},
		{"dedup", "std::pair<std::string, std::string>", []string{"<string>", "<utility>"}},
		{"user type", "acme::Money", nil},
		{"chrono duration", "std::chrono::duration<std::int64_t>", []string{"<chrono>", "<cstdint>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeduceHeadersFromType(tt.in))
		})
	}
}

func TestDeduceIsUnionOfTokenMaps(t *testing.T) {
	in := "std::map<std::string, std::vector<std::uint64_t>>"
	var union []string
	for _, tok := range Tokenize(in) {
		union = append(union, MapToken(tok)...)
	}
	assert.Equal(t, sortUnique(union), DeduceHeadersFromType(in))
}
