package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func TestSQLiteRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		entries   []models.RawEntry
		wantTotal int
	}{
		{
			name: "append with all fields",
			entries: []models.RawEntry{
				{
					Word:        "ephemeral",
					Phonetic:    "/ɪˈfem(ə)rəl/",
					POS:         "adj.",
					Meaning:     "lasting a very short time",
					Sentence:    "The ephemeral beauty of cherry blossoms",
					Translation: "短暂的美",
				},
			},
			wantTotal: 1,
		},
		{
			name: "append minimal entries",
			entries: []models.RawEntry{
				{Word: "ubiquitous", Meaning: "everywhere"},
				{Word: "Ubiquitous", Meaning: "found everywhere"},
			},
			wantTotal: 3,
		},
		{
			name:      "append nothing",
			entries:   nil,
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.Append(ctx, tt.entries)
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if n != len(tt.entries) {
				t.Errorf("Append() = %d, want %d", n, len(tt.entries))
			}

			count, err := repo.Count(ctx)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if int(count) != tt.wantTotal {
				t.Errorf("Count() = %d, want %d", count, tt.wantTotal)
			}
		})
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	// Arrival order is preserved
	wantWords := []string{"ephemeral", "ubiquitous", "Ubiquitous"}
	for i, w := range wantWords {
		if entries[i].Word != w {
			t.Errorf("List()[%d].Word = %q, want %q", i, entries[i].Word, w)
		}
	}
	if entries[0].Translation != "短暂的美" {
		t.Errorf("List()[0].Translation = %q, want 短暂的美", entries[0].Translation)
	}
}

func TestSQLiteRepository_KeyValue(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "vocab_marked")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() on missing key reported ok")
	}

	if err := repo.Set(ctx, "vocab_marked", `["run"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set(ctx, "vocab_marked", `["run","walk"]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, ok, err := repo.Get(ctx, "vocab_marked")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
	if got != `["run","walk"]` {
		t.Errorf("Get() = %q, want overwritten value", got)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// A second run finds nothing to do
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, _ := s.Get(ctx, "speech_accent"); ok {
		t.Error("Get() on empty store reported ok")
	}
	_ = s.Set(ctx, "speech_accent", "en-GB")
	if v, ok, _ := s.Get(ctx, "speech_accent"); !ok || v != "en-GB" {
		t.Errorf("Get() = %q, %v, want en-GB, true", v, ok)
	}
}
