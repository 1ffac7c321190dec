package ops

import (
	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/filter"
)

// ListOutput is the result of operations that return a filtered set of entries.
type ListOutput struct {
	Data           []analysis.Entry `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied filter.Set       `json:"filters_applied"`
}

// InterpretedQuery reports how a natural language query was understood.
type InterpretedQuery struct {
	Original      string     `json:"original"`
	ParsedFilters filter.Set `json:"parsed_filters"`
}

// QueryOutput is the result of a natural language query.
type QueryOutput struct {
	Data             []analysis.Entry `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
}
