package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Analyze derives the property bundle for raw. It is pure and deterministic;
// callers reject blank input before reaching it.
func Analyze(raw string) Properties {
	freq := make(map[string]int)
	length := 0
	for _, r := range raw {
		freq[string(r)]++
		length++
	}

	return Properties{
		Length:                length,
		IsPalindrome:          IsPalindrome(raw),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(raw)),
		SHA256Hash:            Identifier(raw),
		CharacterFrequencyMap: freq,
	}
}

// Identifier returns the content address of raw: hex SHA-256 over its exact bytes.
func Identifier(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// IsPalindrome reports whether s reads the same in both directions,
// ignoring case and whitespace. Comparison is rune-wise.
func IsPalindrome(s string) bool {
	runes := []rune(palindromeKey(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
