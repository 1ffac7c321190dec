package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/filter"
)

// FilterInput contains parameters for the Filter operation.
type FilterInput struct {
	Filters filter.Set
}

// Filter returns the stored entries matching a structured filter set,
// in insertion order. Inconsistent bounds fail with CONFLICTING_FILTERS.
func Filter(ctx context.Context, database *sql.DB, input FilterInput) (*ListOutput, error) {
	if _, err := filter.Validate(input.Filters); err != nil {
		return nil, err
	}

	entries, err := db.ListAll(ctx, database)
	if err != nil {
		return nil, err
	}

	data := filter.Select(input.Filters, entries)

	return &ListOutput{
		Data:           data,
		Count:          len(data),
		FiltersApplied: input.Filters,
	}, nil
}

// List returns every stored entry in insertion order.
func List(ctx context.Context, database *sql.DB) (*ListOutput, error) {
	return Filter(ctx, database, FilterInput{})
}
