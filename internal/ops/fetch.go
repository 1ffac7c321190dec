package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/db"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Value string
}

// Fetch retrieves a stored entry by value. The identifier is recomputed from
// the value, so lookups are exact: "Racecar" and "racecar" are different entries.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*analysis.Entry, error) {
	return db.GetByID(ctx, database, analysis.Identifier(input.Value))
}
