package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pickup-games/db"
	"github.com/Dosada05/pickup-games/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	// Create derives the status from the initial participants and reloads the stored game.
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	GetByName(ctx context.Context, name string) ([]models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Count(ctx context.Context, field string, value any) (int, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	AddParticipant(ctx context.Context, id string, p models.Participant) error
	AddToWaitlist(ctx context.Context, id string, p models.Participant) error
	// Finish moves the game into every given user's history and resets the game
	// in a single batch.
	Finish(ctx context.Context, id string, userIDs []string) error
}

type gameRepository struct {
	store db.Store
}

func NewGameRepository(store db.Store) GameRepository {
	return &gameRepository{store: store}
}

// initialStatus: игра без свободных мест создается неактивной.
func initialStatus(participants, maxParticipants int) models.GameStatus {
	if participants >= maxParticipants {
		return models.GameStatusInactive
	}
	return models.GameStatusActive
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	participants := game.Participants
	if participants == nil {
		participants = []models.Participant{}
	}
	waitlist := game.Waitlist
	if waitlist == nil {
		waitlist = []models.Participant{}
	}
	reviews := game.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}

	data := map[string]any{
		"locationId":      game.LocationID,
		"organizerId":     game.OrganizerID,
		"amenities":       nonNilStrings(game.Amenities),
		"startTime":       game.StartTime.UTC(),
		"duration":        game.Duration,
		"participants":    participants,
		"maxParticipants": game.MaxParticipants,
		"waitlist":        waitlist,
		"reviews":         reviews,
		"status":          string(initialStatus(len(participants), game.MaxParticipants)),
		"type":            game.Type,
		"createdAt":       db.ServerTimestamp,
	}
	if game.Name != "" {
		data["name"] = game.Name
	}

	id, err := r.store.Create(ctx, gamesCollection, data)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*game = *created
	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	doc, err := r.store.Get(ctx, gamesCollection, id)
	if err != nil {
		return nil, mapNotFound(err, ErrGameNotFound)
	}
	var game models.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", id, err)
	}
	game.ID = doc.ID()
	return &game, nil
}

func (r *gameRepository) GetByName(ctx context.Context, name string) ([]models.Game, error) {
	docs, err := r.store.Find(ctx, gamesCollection, "name", name)
	if err != nil {
		return nil, fmt.Errorf("failed to find games by name: %w", err)
	}
	return decodeDocuments(docs, setGameID)
}

func (r *gameRepository) List(ctx context.Context) ([]models.Game, error) {
	docs, err := r.store.All(ctx, gamesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return decodeDocuments(docs, setGameID)
}

func (r *gameRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, gamesCollection, id, mergeUpdates(fields)); err != nil {
		return mapNotFound(err, ErrGameNotFound)
	}
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, gamesCollection, id); err != nil {
		return mapNotFound(err, ErrGameNotFound)
	}
	if err := r.store.Delete(ctx, gamesCollection, id); err != nil {
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}
	return nil
}

func (r *gameRepository) AddParticipant(ctx context.Context, id string, p models.Participant) error {
	return r.union(ctx, id, "participants", p)
}

func (r *gameRepository) AddToWaitlist(ctx context.Context, id string, p models.Participant) error {
	return r.union(ctx, id, "waitlist", p)
}

func (r *gameRepository) union(ctx context.Context, id, field string, p models.Participant) error {
	err := r.store.Update(ctx, gamesCollection, id, []db.Update{
		{Path: field, Value: db.ArrayUnion(p)},
		{Path: "updatedAt", Value: db.ServerTimestamp},
	})
	if err != nil {
		return mapNotFound(err, ErrGameNotFound)
	}
	return nil
}

func (r *gameRepository) Finish(ctx context.Context, id string, userIDs []string) error {
	writes := make([]db.Write, 0, len(userIDs)+1)
	for _, uid := range userIDs {
		writes = append(writes, gameToHistoryWrite(uid, id))
	}
	writes = append(writes, db.Write{
		Collection: gamesCollection,
		ID:         id,
		Updates: []db.Update{
			{Path: "participants", Value: []models.Participant{}},
			{Path: "waitlist", Value: []models.Participant{}},
			{Path: "status", Value: string(models.GameStatusFinished)},
			{Path: "updatedAt", Value: db.ServerTimestamp},
		},
	})

	if err := r.store.Batch(ctx, writes); err != nil {
		return fmt.Errorf("failed to finish game %s: %w", id, err)
	}
	return nil
}

func setGameID(g *models.Game, id string) { g.ID = id }

func (r *gameRepository) Count(ctx context.Context, field string, value any) (int, error) {
	return countDocuments(ctx, r.store, gamesCollection, field, value)
}
