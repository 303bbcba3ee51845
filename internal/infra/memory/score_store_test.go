package memory

import (
	"context"
	"testing"
	"time"

	"quiz-battle-service/internal/domain"
)

func TestScoreStoreAccumulatesPoints(t *testing.T) {
	store := NewScoreStore()
	ctx := context.Background()

	_ = store.SaveResult(ctx, domain.BattleResult{
		BattleID:    "battle-1",
		Winner:      "alice",
		Scores:      map[string]int{"alice": 50, "bob": 30},
		CompletedAt: time.Now(),
	})
	_ = store.SaveResult(ctx, domain.BattleResult{
		BattleID:    "battle-2",
		Winner:      "bob",
		Scores:      map[string]int{"bob": 40, "alice": 20},
		CompletedAt: time.Now(),
	})

	entries, err := store.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Both end at 70; the name tie-break puts alice first.
	if entries[0].Username != "alice" || entries[0].Points != 70 {
		t.Fatalf("expected alice leading with 70, got %+v", entries[0])
	}
	if entries[1].Username != "bob" || entries[1].Points != 70 {
		t.Fatalf("expected bob with 70, got %+v", entries[1])
	}

	if results := store.Results(); len(results) != 2 || results[0].BattleID != "battle-1" {
		t.Fatalf("expected results in completion order, got %+v", results)
	}
}

func TestScoreStoreAppliesLimit(t *testing.T) {
	store := NewScoreStore()
	ctx := context.Background()

	_ = store.SaveResult(ctx, domain.BattleResult{
		BattleID: "battle-1",
		Winner:   "alice",
		Scores:   map[string]int{"alice": 50, "bob": 30, "carol": 10},
	})

	entries, err := store.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].Username != "alice" {
		t.Fatalf("expected top 2 with alice first, got %+v", entries)
	}
}
