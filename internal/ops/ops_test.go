package ops

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// seed stores each value in order and fails the test on any error.
func seed(t *testing.T, database *sql.DB, values ...string) {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, v := range values {
		if _, err := Create(context.Background(), database, cfg, CreateInput{Value: v}); err != nil {
			t.Fatalf("Create(%q) failed: %v", v, err)
		}
	}
}

func values(out *ListOutput) []string {
	vs := make([]string, 0, len(out.Data))
	for _, e := range out.Data {
		vs = append(vs, e.Value)
	}
	return vs
}
