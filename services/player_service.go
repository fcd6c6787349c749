package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/pickup-games/live"
	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
	"golang.org/x/sync/errgroup"
)

type JoinOutcome string

const (
	JoinOutcomeJoined     JoinOutcome = "joined"
	JoinOutcomeWaitlisted JoinOutcome = "waitlisted"
)

type PlayerService interface {
	// Join adds the user to the game, or to its waitlist when the game is full.
	// The capacity check and the write are not atomic. A non-admin caller can
	// only enrol themselves; an empty userID means the caller.
	Join(ctx context.Context, caller *models.User, userID, gameID string) (JoinOutcome, error)
	// Finish moves the game into every participant's history and resets it.
	// It is safe to call again after a failure. Only the game's organizer or
	// an admin may finish it.
	Finish(ctx context.Context, caller *models.User, gameID string) error
}

type playerService struct {
	userRepo repositories.UserRepository
	gameRepo repositories.GameRepository
	notifier live.Notifier
	logger   *slog.Logger
}

func NewPlayerService(
	userRepo repositories.UserRepository,
	gameRepo repositories.GameRepository,
	notifier live.Notifier,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *playerService) Join(ctx context.Context, caller *models.User, userID, gameID string) (JoinOutcome, error) {
	if !actsUnrestricted(caller) {
		if userID == "" {
			userID = caller.ID
		} else if userID != caller.ID {
			return "", ErrForbiddenOperation
		}
	}
	if err := requiredFields("userId", userID, "gameId", gameID); err != nil {
		return "", err
	}

	var (
		user *models.User
		game *models.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		game, err = s.gameRepo.GetByID(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrGameNotFound) {
			return "", ErrUserOrGameNotFound
		}
		return "", fmt.Errorf("failed to load user or game: %w", err)
	}

	entry := models.Participant{UserID: user.ID, Name: user.Name}

	if game.IsFull() {
		if err := s.gameRepo.AddToWaitlist(ctx, gameID, entry); err != nil {
			return "", s.membershipError(err, gameID)
		}
		s.notifier.Publish(gameID, live.EventPlayerWaitlisted, entry)
		return JoinOutcomeWaitlisted, nil
	}

	if err := s.gameRepo.AddParticipant(ctx, gameID, entry); err != nil {
		return "", s.membershipError(err, gameID)
	}
	if err := s.userRepo.AddSignedUpGame(ctx, userID, gameID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserOrGameNotFound
		}
		return "", fmt.Errorf("failed to record game %s for user %s: %w", gameID, userID, err)
	}

	s.notifier.Publish(gameID, live.EventPlayerJoined, entry)
	return JoinOutcomeJoined, nil
}

func (s *playerService) membershipError(err error, gameID string) error {
	if errors.Is(err, repositories.ErrGameNotFound) {
		return ErrUserOrGameNotFound
	}
	return fmt.Errorf("failed to update game %s: %w", gameID, err)
}

func (s *playerService) Finish(ctx context.Context, caller *models.User, gameID string) error {
	if err := requiredFields("gameId", gameID); err != nil {
		return err
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	if !actsUnrestricted(caller) && game.OrganizerID != caller.ID {
		return ErrForbiddenOperation
	}

	userIDs, err := s.existingParticipants(ctx, game)
	if err != nil {
		return err
	}

	if err := s.gameRepo.Finish(ctx, gameID, userIDs); err != nil {
		return err
	}

	s.logger.Info("game finished", "game_id", gameID, "participants", len(userIDs))
	s.notifier.Publish(gameID, live.EventGameFinished, map[string]any{
		"gameId":       gameID,
		"participants": userIDs,
	})
	return nil
}

// existingParticipants returns the distinct participant ids that still have a
// profile. Participants whose profile was deleted are skipped.
func (s *playerService) existingParticipants(ctx context.Context, game *models.Game) ([]string, error) {
	seen := make(map[string]bool, len(game.Participants))
	candidates := make([]string, 0, len(game.Participants))
	for _, p := range game.Participants {
		if p.UserID == "" || seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		candidates = append(candidates, p.UserID)
	}

	exists := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, uid := range candidates {
		g.Go(func() error {
			_, err := s.userRepo.GetByID(gctx, uid)
			switch {
			case err == nil:
				exists[i] = true
			case errors.Is(err, repositories.ErrUserNotFound):
				s.logger.Warn("skipping participant without profile", "game_id", game.ID, "user_id", uid)
			default:
				return fmt.Errorf("failed to load participant %s: %w", uid, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(candidates))
	for i, uid := range candidates {
		if exists[i] {
			userIDs = append(userIDs, uid)
		}
	}
	return userIDs, nil
}
