package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
)

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetGame(ctx context.Context, id string) (*models.Game, error)
	GetGamesByName(ctx context.Context, name string) ([]models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	UpdateGame(ctx context.Context, id string, fields map[string]any) error
	DeleteGame(ctx context.Context, id string) error
}

type CreateGameInput struct {
	Name            string               `json:"name"`
	LocationID      string               `json:"locationId"`
	OrganizerID     string               `json:"organizerId"`
	Amenities       []string             `json:"amenities"`
	StartTime       time.Time            `json:"startTime"`
	Duration        int                  `json:"duration"`
	MaxParticipants int                  `json:"maxParticipants"`
	Format          string               `json:"format"`
	Gender          string               `json:"gender"`
	Participants    []models.Participant `json:"participants"`
	Reviews         []models.Review      `json:"reviews"`
	Waitlist        []models.Participant `json:"waitlist"`
}

// Validate checks that every required field is present and truthy.
func (in CreateGameInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.LocationID) == "" {
		missing = append(missing, "locationId")
	}
	if strings.TrimSpace(in.OrganizerID) == "" {
		missing = append(missing, "organizerId")
	}
	if in.Amenities == nil {
		missing = append(missing, "amenities")
	}
	if strings.TrimSpace(in.Format) == "" {
		missing = append(missing, "format")
	}
	if strings.TrimSpace(in.Gender) == "" {
		missing = append(missing, "gender")
	}
	if in.MaxParticipants == 0 {
		missing = append(missing, "maxParticipants")
	}
	if in.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if in.Duration == 0 {
		missing = append(missing, "duration")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidationFailed, strings.Join(missing, ", "))
	}
	if in.MaxParticipants < 0 || in.Duration < 0 {
		return fmt.Errorf("%w: maxParticipants and duration must be positive", ErrValidationFailed)
	}
	return nil
}

type gameService struct {
	gameRepo repositories.GameRepository
	notifier live.Notifier
	logger   *slog.Logger
}

func NewGameService(gameRepo repositories.GameRepository, notifier live.Notifier, logger *slog.Logger) GameService {
	return &gameService{
		gameRepo: gameRepo,
		notifier: notifier,
		logger:   logger,
	}
}

var gameUpdates = updateSanitizer{
	ignored:    []string{"id", "createdAt", "updatedAt"},
	timeFields: []string{"startTime"},
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	game := &models.Game{
		Name:            strings.TrimSpace(input.Name),
		LocationID:      strings.TrimSpace(input.LocationID),
		OrganizerID:     strings.TrimSpace(input.OrganizerID),
		Amenities:       input.Amenities,
		StartTime:       input.StartTime,
		Duration:        input.Duration,
		MaxParticipants: input.MaxParticipants,
		Participants:    input.Participants,
		Waitlist:        input.Waitlist,
		Reviews:         input.Reviews,
		Type: models.GameType{
			Format: strings.TrimSpace(input.Format),
			Gender: strings.TrimSpace(input.Gender),
		},
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	s.logger.Info("game created", "game_id", game.ID, "status", game.Status)
	return game, nil
}

func (s *gameService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}
	return game, nil
}

func (s *gameService) GetGamesByName(ctx context.Context, name string) ([]models.Game, error) {
	games, err := s.gameRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by name: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrGameNotFound
	}
	return games, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// UpdateGame не пересчитывает статус: он задается только при создании.
func (s *gameService) UpdateGame(ctx context.Context, id string, fields map[string]any) error {
	sanitized, err := gameUpdates.sanitize(fields)
	if err != nil {
		return err
	}
	for _, field := range []string{"duration", "maxParticipants"} {
		if v, ok := sanitized[field]; ok {
			if err := positiveInt(field, v); err != nil {
				return err
			}
		}
	}
	if v, ok := sanitized["status"]; ok {
		status, _ := v.(string)
		if !models.GameStatus(status).Valid() {
			return fmt.Errorf("%w: status must be one of active, inactive, finished", ErrValidationFailed)
		}
	}

	if err := s.gameRepo.Update(ctx, id, sanitized); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to update game %s: %w", id, err)
	}

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("failed to reload game for live update", "game_id", id, "error", err)
		return nil
	}
	s.notifier.Publish(id, live.EventGameUpdated, game)
	return nil
}

func (s *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}
	s.notifier.Publish(id, live.EventGameDeleted, map[string]string{"gameId": id})
	return nil
}
