package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Value string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete permanently removes the entry for a value.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	id := analysis.Identifier(input.Value)

	if err := db.DeleteByID(ctx, database, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
