package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencode-ai/macaccent/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func TestMigrateUpIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	applied, err := database.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if applied != len(migrations) {
		t.Fatalf("expected %d migrations, got %d", len(migrations), applied)
	}

	applied, err = database.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no pending migrations, got %d", applied)
	}
}

func TestHistoryRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(setupTestDB(t))

	entry := &models.HistoryEntry{
		Target: models.TargetBoth,
		Key:    3,
		Name:   "Green",
		Policy: models.PolicyMajority,
		Inputs: []string{"#c0f6ad", "#b8f0a0"},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected ID to be set")
	}
	if entry.AppliedAt.IsZero() {
		t.Fatalf("expected AppliedAt to be set")
	}

	got, err := repo.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Target != models.TargetBoth || got.Key != 3 || got.Name != "Green" {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Policy != models.PolicyMajority {
		t.Fatalf("expected policy majority, got %q", got.Policy)
	}
	if len(got.Inputs) != 2 || got.Inputs[1] != "#b8f0a0" {
		t.Fatalf("unexpected inputs: %v", got.Inputs)
	}
	if !got.AppliedAt.Equal(entry.AppliedAt) {
		t.Fatalf("expected applied_at %v, got %v", entry.AppliedAt, got.AppliedAt)
	}
}

func TestHistoryRepositoryGetMissing(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrHistoryNotFound) {
		t.Fatalf("expected ErrHistoryNotFound, got %v", err)
	}
}

func TestHistoryRepositoryCreateInvalid(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))

	err := repo.Create(context.Background(), &models.HistoryEntry{Key: 1})
	if !errors.Is(err, ErrInvalidHistory) {
		t.Fatalf("expected ErrInvalidHistory, got %v", err)
	}
}

func TestHistoryRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(setupTestDB(t))

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"Red", "Orange", "Yellow"}
	for i, name := range names {
		entry := &models.HistoryEntry{
			AppliedAt: base.Add(time.Duration(i) * time.Minute),
			Target:    models.TargetAccent,
			Key:       i,
			Name:      name,
			Policy:    models.PolicyManual,
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	entries, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Yellow" || entries[1].Name != "Orange" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[0].Inputs != nil {
		t.Fatalf("expected no inputs, got %v", entries[0].Inputs)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if database.Path() != path {
		t.Fatalf("expected path %q, got %q", path, database.Path())
	}
}
