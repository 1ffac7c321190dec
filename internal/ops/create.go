package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/errors"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Value string // required, stored exactly as given
}

// Create analyzes a value and stores it. Values that are already stored
// fail with DUPLICATE_ENTRY; blank values fail with INVALID_INPUT.
func Create(ctx context.Context, database *sql.DB, cfg *config.Config, input CreateInput) (*analysis.Entry, error) {
	if analysis.IsBlank(input.Value) {
		return nil, errors.NewInvalidInput("value is required")
	}

	if cfg != nil && cfg.ValueMaxChars > 0 {
		if n := analysis.CountChars(input.Value); n > cfg.ValueMaxChars {
			return nil, errors.NewValueTooLarge(cfg.ValueMaxChars, n)
		}
	}

	props := analysis.Analyze(input.Value)
	entry := &analysis.Entry{
		ID:         props.SHA256Hash,
		Value:      input.Value,
		Properties: props,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := db.Insert(ctx, database, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
