package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
)

func TestDelete_HappyPath(t *testing.T) {
	database := openTestDB(t)
	seed(t, database, "abc", "racecar")

	out, err := Delete(context.Background(), database, DeleteInput{Value: "abc"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !out.Deleted {
		t.Error("Deleted = false, want true")
	}
	if out.ID != analysis.Identifier("abc") {
		t.Errorf("ID = %q, want identifier of abc", out.ID)
	}

	if _, err := Fetch(context.Background(), database, FetchInput{Value: "abc"}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch after delete error = %v, want NOT_FOUND", err)
	}
	if _, err := Fetch(context.Background(), database, FetchInput{Value: "racecar"}); err != nil {
		t.Errorf("other entry should survive: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	database := openTestDB(t)

	_, err := Delete(context.Background(), database, DeleteInput{Value: "missing"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestDelete_ThenRecreate(t *testing.T) {
	database := openTestDB(t)
	seed(t, database, "abc")

	if _, err := Delete(context.Background(), database, DeleteInput{Value: "abc"}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	seed(t, database, "abc")
}
