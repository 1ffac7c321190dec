package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/filter"
	"github.com/hpungsan/sift/internal/nlq"
)

// QueryInput contains parameters for the Query operation.
type QueryInput struct {
	Query string // free text, e.g. "single word palindromic strings"
}

// Query translates a natural language query and returns the matching entries.
// UNPARSEABLE_QUERY and CONFLICTING_FILTERS are reported separately.
func Query(ctx context.Context, database *sql.DB, input QueryInput) (*QueryOutput, error) {
	set, err := nlq.Translate(input.Query)
	if err != nil {
		return nil, err
	}
	if _, err := filter.Validate(set); err != nil {
		return nil, err
	}

	entries, err := db.ListAll(ctx, database)
	if err != nil {
		return nil, err
	}

	data := filter.Select(set, entries)

	return &QueryOutput{
		Data:  data,
		Count: len(data),
		InterpretedQuery: InterpretedQuery{
			Original:      input.Query,
			ParsedFilters: set,
		},
	}, nil
}
