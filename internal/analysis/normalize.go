package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize is the single text normalization policy shared by the
// palindrome check and the natural language translator:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// palindromeKey is Normalize with every remaining space removed,
// so "Never odd or even" compares as "neveroddoreven".
func palindromeKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Normalize(s))
}

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// IsBlank reports whether s has no non-whitespace characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
