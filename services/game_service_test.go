package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/models"
)

func decodeFields(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return fields
}

func TestCreateGame_Validation(t *testing.T) {
	f := newPlayerFixture(t)
	valid := CreateGameInput{
		LocationID:      "pitch-1",
		OrganizerID:     "org-1",
		Amenities:       []string{"lights"},
		StartTime:       time.Now(),
		Duration:        60,
		MaxParticipants: 10,
		Format:          "5v5",
		Gender:          "mixed",
	}

	mutations := map[string]func(*CreateGameInput){
		"locationId":      func(in *CreateGameInput) { in.LocationID = "" },
		"organizerId":     func(in *CreateGameInput) { in.OrganizerID = " " },
		"amenities":       func(in *CreateGameInput) { in.Amenities = nil },
		"format":          func(in *CreateGameInput) { in.Format = "" },
		"gender":          func(in *CreateGameInput) { in.Gender = "" },
		"maxParticipants": func(in *CreateGameInput) { in.MaxParticipants = 0 },
		"startTime":       func(in *CreateGameInput) { in.StartTime = time.Time{} },
		"duration":        func(in *CreateGameInput) { in.Duration = 0 },
		"negative":        func(in *CreateGameInput) { in.Duration = -5 },
	}
	for name, mutate := range mutations {
		in := valid
		mutate(&in)
		if _, err := f.games.CreateGame(context.Background(), in); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}

	games, _ := f.games.ListGames(context.Background())
	if len(games) != 0 {
		t.Errorf("invalid input must not reach the store, got %d games", len(games))
	}
}

func TestCreateGame_WrapsTypeAndDerivesStatus(t *testing.T) {
	f := newPlayerFixture(t)
	game, err := f.games.CreateGame(context.Background(), CreateGameInput{
		LocationID:      "pitch-1",
		OrganizerID:     "org-1",
		Amenities:       []string{"lights"},
		StartTime:       time.Now(),
		Duration:        60,
		MaxParticipants: 1,
		Format:          "7v7",
		Gender:          "women",
		Participants:    []models.Participant{{UserID: "u1", Name: "Ann"}},
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if game.Type.Format != "7v7" || game.Type.Gender != "women" {
		t.Errorf("unexpected type %+v", game.Type)
	}
	if game.Status != models.GameStatusInactive {
		t.Errorf("expected inactive status for a full game, got %q", game.Status)
	}
}

func TestUpdateGame_NormalizesFields(t *testing.T) {
	f := newPlayerFixture(t)
	game := f.createGame(t, 10)
	ctx := context.Background()

	fields := decodeFields(t, `{"id":"other","duration":120,"maxParticipants":12,"startTime":"2024-07-01T19:30:00+02:00","type":{"format":"7v7","gender":"men"}}`)
	if err := f.games.UpdateGame(ctx, game.ID, fields); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	g := f.game(t, game.ID)
	if g.Duration != 120 || g.MaxParticipants != 12 {
		t.Errorf("unexpected numbers %d %d", g.Duration, g.MaxParticipants)
	}
	if !g.StartTime.Equal(time.Date(2024, 7, 1, 17, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected start time %v", g.StartTime)
	}
	if g.Type.Format != "7v7" || g.UpdatedAt == nil {
		t.Errorf("unexpected game %+v", g)
	}
	if types := f.notifier.types(); len(types) != 1 || types[0] != live.EventGameUpdated {
		t.Errorf("unexpected events %v", types)
	}
}

func TestUpdateGame_Rejects(t *testing.T) {
	f := newPlayerFixture(t)
	game := f.createGame(t, 10)
	ctx := context.Background()

	bad := []string{
		`{"duration":0}`,
		`{"duration":1.5}`,
		`{"maxParticipants":"ten"}`,
		`{"startTime":"tomorrow"}`,
		`{"status":"cancelled"}`,
	}
	for _, body := range bad {
		if err := f.games.UpdateGame(ctx, game.ID, decodeFields(t, body)); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}

	if err := f.games.UpdateGame(ctx, "ghost", map[string]any{"name": "x"}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
	if err := f.games.DeleteGame(ctx, "ghost"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestDeleteGame(t *testing.T) {
	f := newPlayerFixture(t)
	game := f.createGame(t, 10)
	ctx := context.Background()

	if err := f.games.DeleteGame(ctx, game.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := f.games.GetGame(ctx, game.ID); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound after delete, got %v", err)
	}
	if types := f.notifier.types(); len(types) != 1 || types[0] != live.EventGameDeleted {
		t.Errorf("unexpected events %v", types)
	}
}
