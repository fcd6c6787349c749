package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/repositories"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	f := newPlayerFixture(t, "u1", "u2", "u3")
	store := db.NewMemoryStore()
	pitches := repositories.NewPitchRepository(store)

	if err := f.users.Update(ctx, "u2", map[string]any{"blacklisted": true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	finished := f.createGame(t, 4)
	f.createGame(t, 4)
	paused := f.createGame(t, 4)
	if err := f.games.UpdateGame(ctx, paused.ID, map[string]any{"status": "inactive"}); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}
	if _, err := f.players.Join(ctx, nil, "u1", finished.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := f.players.Finish(ctx, nil, finished.ID); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	stats, err := NewDashboardService(f.users, pitches, f.gameRepo).GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.UsersTotal != 3 || stats.BlacklistedUsers != 1 {
		t.Errorf("unexpected user stats %+v", stats)
	}
	if stats.GamesTotal != 3 || stats.ActiveGames != 1 || stats.FinishedGames != 1 {
		t.Errorf("unexpected game stats %+v", stats)
	}
	if stats.PitchesTotal != 0 {
		t.Errorf("expected no pitches, got %d", stats.PitchesTotal)
	}
}

type allFailsStore struct {
	db.Store
}

func (allFailsStore) All(context.Context, string) ([]db.Document, error) {
	return nil, errors.New("unavailable")
}

func TestDashboardService_PropagatesErrors(t *testing.T) {
	store := allFailsStore{Store: db.NewMemoryStore()}
	svc := NewDashboardService(
		repositories.NewUserRepository(store),
		repositories.NewPitchRepository(store),
		repositories.NewGameRepository(store),
	)
	if _, err := svc.GetStats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
