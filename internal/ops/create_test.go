package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
)

func TestCreate_HappyPath(t *testing.T) {
	database := openTestDB(t)

	entry, err := Create(context.Background(), database, config.DefaultConfig(), CreateInput{Value: "racecar"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if entry.ID != analysis.Identifier("racecar") {
		t.Errorf("ID = %q, want sha256 of value", entry.ID)
	}
	if entry.ID != entry.Properties.SHA256Hash {
		t.Errorf("ID = %q, want sha256_hash %q", entry.ID, entry.Properties.SHA256Hash)
	}
	if entry.Value != "racecar" {
		t.Errorf("Value = %q, want %q", entry.Value, "racecar")
	}
	if entry.Properties.Length != 7 {
		t.Errorf("Length = %d, want 7", entry.Properties.Length)
	}
	if !entry.Properties.IsPalindrome {
		t.Error("IsPalindrome = false, want true")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestCreate_PreservesRawValue(t *testing.T) {
	database := openTestDB(t)

	entry, err := Create(context.Background(), database, config.DefaultConfig(), CreateInput{Value: "  Hello World  "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if entry.Value != "  Hello World  " {
		t.Errorf("Value = %q, want raw value kept", entry.Value)
	}
	if entry.Properties.Length != 15 {
		t.Errorf("Length = %d, want 15", entry.Properties.Length)
	}
}

func TestCreate_Blank(t *testing.T) {
	database := openTestDB(t)

	for _, v := range []string{"", "   ", "\t\n"} {
		_, err := Create(context.Background(), database, config.DefaultConfig(), CreateInput{Value: v})
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("Create(%q) error = %v, want INVALID_INPUT", v, err)
		}
	}
}

func TestCreate_Duplicate(t *testing.T) {
	database := openTestDB(t)
	seed(t, database, "hello world")

	_, err := Create(context.Background(), database, config.DefaultConfig(), CreateInput{Value: "hello world"})
	if !errors.Is(err, errors.ErrDuplicateEntry) {
		t.Fatalf("error = %v, want DUPLICATE_ENTRY", err)
	}

	// Different raw bytes are a different entry.
	if _, err := Create(context.Background(), database, config.DefaultConfig(), CreateInput{Value: "Hello World"}); err != nil {
		t.Errorf("Create with different case failed: %v", err)
	}
}

func TestCreate_TooLarge(t *testing.T) {
	database := openTestDB(t)
	cfg := config.DefaultConfig()
	cfg.ValueMaxChars = 10

	_, err := Create(context.Background(), database, cfg, CreateInput{Value: strings.Repeat("é", 11)})
	if !errors.Is(err, errors.ErrValueTooLarge) {
		t.Fatalf("error = %v, want VALUE_TOO_LARGE", err)
	}

	// Limit counts characters, not bytes.
	if _, err := Create(context.Background(), database, cfg, CreateInput{Value: strings.Repeat("é", 10)}); err != nil {
		t.Errorf("Create at limit failed: %v", err)
	}
}

func TestAnalyze_DoesNotStore(t *testing.T) {
	database := openTestDB(t)

	props, err := Analyze(AnalyzeInput{Value: "level"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !props.IsPalindrome {
		t.Error("IsPalindrome = false, want true")
	}

	out, err := List(context.Background(), database)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}

	if _, err := Analyze(AnalyzeInput{Value: " "}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Analyze(blank) error = %v, want INVALID_INPUT", err)
	}
}
