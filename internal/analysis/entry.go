package analysis

import "time"

// Entry is a stored string together with its derived properties.
// Entries are created once and never mutated; ID equals Properties.SHA256Hash.
type Entry struct {
	// ID is the content hash of Value and the uniqueness key
	ID string `json:"id"`

	// Value is the string exactly as submitted
	Value string `json:"value"`

	// Properties are computed by Analyze at creation time
	Properties Properties `json:"properties"`

	// CreatedAt is when the entry was first stored (UTC)
	CreatedAt time.Time `json:"created_at"`
}

// Properties is the bundle of structural facts derived from a string.
type Properties struct {
	// Length is the character count in runes, whitespace included
	Length int `json:"length"`

	// IsPalindrome reports whether the palindrome key reads the same reversed
	IsPalindrome bool `json:"is_palindrome"`

	// UniqueCharacters is the number of distinct runes
	UniqueCharacters int `json:"unique_characters"`

	// WordCount is the number of whitespace-delimited tokens
	WordCount int `json:"word_count"`

	// SHA256Hash is the lowercase hex SHA-256 of the raw UTF-8 bytes
	SHA256Hash string `json:"sha256_hash"`

	// CharacterFrequencyMap maps each rune (as a one-rune string) to its count
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}
