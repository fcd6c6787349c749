package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/pickup-games/models"
	"github.com/Dosada05/pickup-games/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo  repositories.UserRepository
	pitchRepo repositories.PitchRepository
	gameRepo  repositories.GameRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	pitchRepo repositories.PitchRepository,
	gameRepo repositories.GameRepository,
) DashboardService {
	return &dashboardService{
		userRepo:  userRepo,
		pitchRepo: pitchRepo,
		gameRepo:  gameRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	counts := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&stats.UsersTotal, func(ctx context.Context) (int, error) { return s.userRepo.Count(ctx, "", nil) }},
		{&stats.BlacklistedUsers, func(ctx context.Context) (int, error) { return s.userRepo.Count(ctx, "blacklisted", true) }},
		{&stats.PitchesTotal, func(ctx context.Context) (int, error) { return s.pitchRepo.Count(ctx, "", nil) }},
		{&stats.GamesTotal, func(ctx context.Context) (int, error) { return s.gameRepo.Count(ctx, "", nil) }},
		{&stats.ActiveGames, func(ctx context.Context) (int, error) {
			return s.gameRepo.Count(ctx, "status", string(models.GameStatusActive))
		}},
		{&stats.FinishedGames, func(ctx context.Context) (int, error) {
			return s.gameRepo.Count(ctx, "status", string(models.GameStatusFinished))
		}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.count(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}
	return stats, nil
}
