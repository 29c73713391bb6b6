package repository

import (
	"context"
	"testing"

	"github.com/placementos/placementos/internal/schema"
	"github.com/placementos/placementos/internal/testutil"
)

func TestStatsGetMissingReturnsNil(t *testing.T) {
	repo := NewStatsRepository(testutil.OpenTestDB(t))

	got, err := repo.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing row, got %+v", got)
	}
}

func TestStatsUpsertInsertThenUpdate(t *testing.T) {
	repo := NewStatsRepository(testutil.OpenTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, &schema.UserStats{UserID: "u1", LastActiveDate: "2026-03-10", StreakCount: 1}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Upsert(ctx, &schema.UserStats{UserID: "u1", LastActiveDate: "2026-03-11", StreakCount: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastActiveDate != "2026-03-11" || got.StreakCount != 2 {
		t.Errorf("got %+v, want last_active_date=2026-03-11 streak=2", got)
	}
}

func TestUpdateProbabilityCacheLeavesStreakAlone(t *testing.T) {
	repo := NewStatsRepository(testutil.OpenTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, &schema.UserStats{UserID: "u1", LastActiveDate: "2026-03-10", StreakCount: 7}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.UpdateProbabilityCache(ctx, "u1", 42); err != nil {
		t.Fatalf("update cache: %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PlacementProbability != 42 {
		t.Errorf("probability = %d, want 42", got.PlacementProbability)
	}
	if got.StreakCount != 7 || got.LastActiveDate != "2026-03-10" {
		t.Errorf("streak fields changed: %+v", got)
	}
}
