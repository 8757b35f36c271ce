package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tournament-league/internal/domain/standing"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

const DefaultStatisticsWorkers = 4

// Statistics is a user's record across every tournament they entered.
type Statistics struct {
	TotalMatches int
	Wins         int
	Draws        int
	Losses       int
	Champion     int
}

type StatisticsService struct {
	userRepo       user.Repository
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	workers        int
}

func NewStatisticsService(
	userRepo user.Repository,
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	workers int,
) *StatisticsService {
	if workers <= 0 {
		workers = DefaultStatisticsWorkers
	}
	return &StatisticsService{
		userRepo:       userRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		workers:        workers,
	}
}

func (s *StatisticsService) ForUser(ctx context.Context, userID int64) (Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.ForUser", attrUserID.Int64(userID))
	defer span.End()

	_, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Statistics{}, internalError(err, "get user %d", userID)
	}
	if !exists {
		return Statistics{}, fmt.Errorf("%w: user=%d", ErrNotFound, userID)
	}

	return s.compute(ctx, userID)
}

// compute sums the user's team records and counts stopped tournaments the
// user's team finished on top of.
func (s *StatisticsService) compute(ctx context.Context, userID int64) (Statistics, error) {
	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return Statistics{}, internalError(err, "list teams of user %d", userID)
	}

	var stats Statistics
	for _, item := range teams {
		stats.Wins += item.Wins
		stats.Draws += item.Draws
		stats.Losses += item.Losses
	}
	stats.TotalMatches = stats.Wins + stats.Draws + stats.Losses
	if len(teams) == 0 {
		return stats, nil
	}

	stopped, err := s.tournamentRepo.ListStopped(ctx)
	if err != nil {
		return Statistics{}, internalError(err, "list stopped tournaments")
	}

	champion, err := s.countChampionships(ctx, userID, stopped)
	if err != nil {
		return Statistics{}, err
	}
	stats.Champion = champion
	return stats, nil
}

func (s *StatisticsService) countChampionships(ctx context.Context, userID int64, stopped []tournament.Tournament) (int, error) {
	if len(stopped) == 0 {
		return 0, nil
	}

	workerCount := s.workers
	if workerCount > len(stopped) {
		workerCount = len(stopped)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return 0, internalError(err, "create worker pool")
	}
	defer pool.Release()

	var (
		champion atomic.Int32
		workers  sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for _, item := range stopped {
		tournamentID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
			if err != nil {
				errOnce.Do(func() {
					firstErr = internalError(err, "list teams of tournament %d", tournamentID)
				})
				return
			}

			leader, ok := standing.Leader(teams)
			if ok && leader.UserID == userID {
				champion.Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return 0, internalError(err, "submit task to worker pool")
		}
	}

	workers.Wait()
	if firstErr != nil {
		return 0, firstErr
	}
	return int(champion.Load()), nil
}
