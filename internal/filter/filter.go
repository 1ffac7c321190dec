package filter

import (
	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
)

// Set is the structured filter shared by the query-parameter path and the
// natural language path. A nil field imposes no constraint.
type Set struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty reports whether the set constrains nothing.
func (s Set) IsEmpty() bool {
	return s.IsPalindrome == nil && s.MinLength == nil && s.MaxLength == nil &&
		s.WordCount == nil && s.ContainsCharacter == nil
}

// Matches reports whether props satisfies every present predicate in s.
func Matches(s Set, props analysis.Properties) bool {
	if s.IsPalindrome != nil && props.IsPalindrome != *s.IsPalindrome {
		return false
	}
	if s.MinLength != nil && props.Length < *s.MinLength {
		return false
	}
	if s.MaxLength != nil && props.Length > *s.MaxLength {
		return false
	}
	if s.WordCount != nil && props.WordCount != *s.WordCount {
		return false
	}
	if s.ContainsCharacter != nil && props.CharacterFrequencyMap[*s.ContainsCharacter] < 1 {
		return false
	}
	return true
}

// Validate checks that s is internally consistent and returns it unchanged.
// The only rule today: min_length must not exceed max_length.
func Validate(s Set) (Set, error) {
	if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
		return s, errors.NewConflictingFilters(*s.MinLength, *s.MaxLength)
	}
	return s, nil
}

// Select returns the entries matching s, in their original order.
// The result is never nil.
func Select(s Set, entries []analysis.Entry) []analysis.Entry {
	out := make([]analysis.Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(s, e.Properties) {
			out = append(out, e)
		}
	}
	return out
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
