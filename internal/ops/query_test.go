package ops

import (
	"context"
	"reflect"
	"testing"

	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/filter"
)

func queryValues(out *QueryOutput) []string {
	vs := make([]string, 0, len(out.Data))
	for _, e := range out.Data {
		vs = append(vs, e.Value)
	}
	return vs
}

func TestQuery(t *testing.T) {
	database := openTestDB(t)
	seed(t, database, corpus...)

	tests := []struct {
		query   string
		filters filter.Set
		want    []string
	}{
		{
			query:   "all single word palindromic strings",
			filters: filter.Set{WordCount: filter.Int(1), IsPalindrome: filter.Bool(true)},
			want:    []string{"racecar", "level"},
		},
		{
			query:   "strings longer than 10 characters",
			filters: filter.Set{MinLength: filter.Int(11)},
			want:    []string{"hello world", "A man a plan a canal Panama"},
		},
		{
			query:   "strings containing the letter z",
			filters: filter.Set{ContainsCharacter: filter.String("z")},
			want:    []string{"zebra"},
		},
		{
			query:   "Palindromes",
			filters: filter.Set{IsPalindrome: filter.Bool(true)},
			want:    []string{"racecar", "A man a plan a canal Panama", "level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			out, err := Query(context.Background(), database, QueryInput{Query: tt.query})
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if out.InterpretedQuery.Original != tt.query {
				t.Errorf("Original = %q, want %q", out.InterpretedQuery.Original, tt.query)
			}
			if !reflect.DeepEqual(out.InterpretedQuery.ParsedFilters, tt.filters) {
				t.Errorf("ParsedFilters = %+v, want %+v", out.InterpretedQuery.ParsedFilters, tt.filters)
			}
			if got := queryValues(out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %q, want %q", got, tt.want)
			}
			if out.Count != len(tt.want) {
				t.Errorf("Count = %d, want %d", out.Count, len(tt.want))
			}
		})
	}
}

func TestQuery_AgreesWithFilter(t *testing.T) {
	database := openTestDB(t)
	seed(t, database, corpus...)

	nl, err := Query(context.Background(), database, QueryInput{Query: "palindromic strings"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	structured, err := Filter(context.Background(), database, FilterInput{Filters: filter.Set{IsPalindrome: filter.Bool(true)}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if !reflect.DeepEqual(nl.Data, structured.Data) {
		t.Errorf("query data = %q, filter data = %q", queryValues(nl), values(structured))
	}
}

func TestQuery_Unparseable(t *testing.T) {
	database := openTestDB(t)

	for _, q := range []string{"purple monkey dishwasher", "", "   "} {
		_, err := Query(context.Background(), database, QueryInput{Query: q})
		if !errors.Is(err, errors.ErrUnparseableQuery) {
			t.Errorf("Query(%q) error = %v, want UNPARSEABLE_QUERY", q, err)
		}
	}
}

func TestQuery_Conflict(t *testing.T) {
	database := openTestDB(t)

	_, err := Query(context.Background(), database, QueryInput{Query: "longer than 20 characters and shorter than 5"})
	if !errors.Is(err, errors.ErrConflictingFilters) {
		t.Fatalf("error = %v, want CONFLICTING_FILTERS", err)
	}
	if errors.Is(err, errors.ErrUnparseableQuery) {
		t.Error("conflict must not be reported as unparseable")
	}
}
