// Package nlq translates free-text queries such as
// "single word palindromic strings" into a filter.Set.
//
// Translation is a fixed, ordered list of lexical rules evaluated against the
// normalized query. Each rule contributes zero or more fragments; fragments
// are merged field by field. Queries no rule understands fail closed.
package nlq

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/filter"
)

// rule maps recognized phrasing in a normalized query to filter fragments.
type rule struct {
	name  string
	match func(q string) []filter.Set
}

var (
	singleWordRe  = regexp.MustCompile(`\b(?:single|one)[- ]word\b`)
	longerThanRe  = regexp.MustCompile(`\blonger than (\d{1,9})\b`)
	shorterThanRe = regexp.MustCompile(`\bshorter than (\d{1,9})\b`)
	atLeastRe     = regexp.MustCompile(`\bat least (\d{1,9}) characters?\b`)
	atMostRe      = regexp.MustCompile(`\bat most (\d{1,9}) characters?\b`)
	letterRe      = regexp.MustCompile(`\bletter (\pL)(?:[^\pL\pN]|$)`)
	containingRe  = regexp.MustCompile(`\bcontaining (\pL)(?:[^\pL\pN]|$)`)
)

// rules is evaluated in order. Adding a heuristic means adding an entry here.
var rules = []rule{
	{
		name: "single_word",
		match: func(q string) []filter.Set {
			if singleWordRe.MatchString(q) {
				return []filter.Set{{WordCount: filter.Int(1)}}
			}
			return nil
		},
	},
	{
		name: "palindrome",
		match: func(q string) []filter.Set {
			if strings.Contains(q, "palindrom") {
				return []filter.Set{{IsPalindrome: filter.Bool(true)}}
			}
			return nil
		},
	},
	{
		name: "longer_than",
		match: numberRule(longerThanRe, func(n int) filter.Set {
			return filter.Set{MinLength: filter.Int(n + 1)}
		}),
	},
	{
		name: "shorter_than",
		match: numberRule(shorterThanRe, func(n int) filter.Set {
			return filter.Set{MaxLength: filter.Int(n - 1)}
		}),
	},
	{
		name: "at_least",
		match: numberRule(atLeastRe, func(n int) filter.Set {
			return filter.Set{MinLength: filter.Int(n)}
		}),
	},
	{
		name: "at_most",
		match: numberRule(atMostRe, func(n int) filter.Set {
			return filter.Set{MaxLength: filter.Int(n)}
		}),
	},
	{
		name: "contains_letter",
		match: func(q string) []filter.Set {
			var out []filter.Set
			for _, re := range []*regexp.Regexp{letterRe, containingRe} {
				for _, m := range re.FindAllStringSubmatch(q, -1) {
					out = append(out, filter.Set{ContainsCharacter: filter.String(m[1])})
				}
			}
			return out
		},
	},
	{
		name: "first_vowel",
		match: func(q string) []filter.Set {
			if strings.Contains(q, "first vowel") {
				return []filter.Set{{ContainsCharacter: filter.String("a")}}
			}
			return nil
		},
	},
}

// numberRule builds a rule body for patterns capturing one integer.
func numberRule(re *regexp.Regexp, build func(n int) filter.Set) func(string) []filter.Set {
	return func(q string) []filter.Set {
		var out []filter.Set
		for _, m := range re.FindAllStringSubmatch(q, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			out = append(out, build(n))
		}
		return out
	}
}

// Translate converts a natural language query into a filter.Set.
//
// It fails with UNPARSEABLE_QUERY when the query is blank, when no rule
// fires, or when two fragments assign different values to the same field.
// A result whose bounds conflict is still returned; callers run
// filter.Validate to report that separately.
func Translate(query string) (filter.Set, error) {
	q := analysis.Normalize(query)
	if q == "" {
		return filter.Set{}, errors.NewUnparseableQuery(query, "query is empty")
	}

	var (
		merged filter.Set
		fired  bool
	)
	for _, r := range rules {
		for _, frag := range r.match(q) {
			fired = true
			if field, ok := merge(&merged, frag); !ok {
				return filter.Set{}, errors.NewUnparseableQuery(query, "ambiguous query: conflicting values for "+field)
			}
		}
	}

	if !fired {
		return filter.Set{}, errors.NewUnparseableQuery(query, "no recognized pattern")
	}
	return merged, nil
}

// merge folds frag into dst. It reports the first field on which the two
// disagree; equal repeated values are accepted.
func merge(dst *filter.Set, frag filter.Set) (string, bool) {
	if !mergeField(&dst.IsPalindrome, frag.IsPalindrome) {
		return filter.ParamIsPalindrome, false
	}
	if !mergeField(&dst.MinLength, frag.MinLength) {
		return filter.ParamMinLength, false
	}
	if !mergeField(&dst.MaxLength, frag.MaxLength) {
		return filter.ParamMaxLength, false
	}
	if !mergeField(&dst.WordCount, frag.WordCount) {
		return filter.ParamWordCount, false
	}
	if !mergeField(&dst.ContainsCharacter, frag.ContainsCharacter) {
		return filter.ParamContainsCharacter, false
	}
	return "", true
}

func mergeField[T comparable](dst **T, v *T) bool {
	if v == nil {
		return true
	}
	if *dst == nil {
		val := *v
		*dst = &val
		return true
	}
	return **dst == *v
}
