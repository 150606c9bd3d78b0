package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelToFlag transforms a Go field name from CamelCase to flag-case,
// splitting on case boundaries and joining the words with divider.
// Acronym runs stay together: "HTTPAddr" becomes "http-addr".
func CamelToFlag(name, divider string) string {
	if !utf8.ValidString(name) {
		return strings.ToLower(name)
	}

	var words []string
	var current []rune

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && boundary(runes, i) {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	words = append(words, string(current))

	return strings.ToLower(strings.Join(words, divider))
}

// boundary reports whether a new word starts at index i: a lower-to-upper
// transition, or the last upper of an acronym followed by a lower.
func boundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		// End of an acronym: "HTTPAddr" splits before 'A' of "Addr",
		// which is detected one position later, at the lower rune.
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	// Upper preceded by upper: split only if a lower rune follows,
	// closing an acronym run.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
