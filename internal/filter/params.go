package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
)

// Query parameter names accepted by FromParams.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// FromParams builds a Set from query parameters. Absent or empty parameters
// leave the field unset; anything that fails to parse is an
// INVALID_PARAMETERS error. Bound ordering is left to Validate.
func FromParams(values url.Values) (Set, error) {
	var s Set

	if raw := strings.TrimSpace(values.Get(ParamIsPalindrome)); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Set{}, errors.NewInvalidParameters(ParamIsPalindrome, "must be a boolean")
		}
		s.IsPalindrome = &b
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &s.MinLength},
		{ParamMaxLength, &s.MaxLength},
		{ParamWordCount, &s.WordCount},
	} {
		n, ok, err := parseNonNegative(values, p.name)
		if err != nil {
			return Set{}, err
		}
		if ok {
			*p.dst = &n
		}
	}

	if raw, ok := values[ParamContainsCharacter]; ok && len(raw) > 0 && raw[0] != "" {
		if analysis.CountChars(raw[0]) != 1 {
			return Set{}, errors.NewInvalidParameters(ParamContainsCharacter, "must be a single character")
		}
		ch := raw[0]
		s.ContainsCharacter = &ch
	}

	return s, nil
}

// parseNonNegative reads an optional non-negative integer parameter.
func parseNonNegative(values url.Values, name string) (int, bool, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false, errors.NewInvalidParameters(name, "must be a non-negative integer")
	}
	return n, true, nil
}

// Check applies the FromParams rules to a Set built some other way, such as
// decoded tool arguments: counts must be non-negative and
// contains_character must be a single character.
func Check(s Set) error {
	for _, p := range []struct {
		name string
		v    *int
	}{
		{ParamMinLength, s.MinLength},
		{ParamMaxLength, s.MaxLength},
		{ParamWordCount, s.WordCount},
	} {
		if p.v != nil && *p.v < 0 {
			return errors.NewInvalidParameters(p.name, "must be a non-negative integer")
		}
	}
	if s.ContainsCharacter != nil && analysis.CountChars(*s.ContainsCharacter) != 1 {
		return errors.NewInvalidParameters(ParamContainsCharacter, "must be a single character")
	}
	return nil
}
