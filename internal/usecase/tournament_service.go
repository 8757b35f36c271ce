package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/standing"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/sourcegraph/conc/pool"
)

// TournamentInfo is a tournament with its ranked table and match history.
type TournamentInfo struct {
	Tournament tournament.Tournament
	Teams      []team.Team
	Matches    []match.Match
	IsJoined   bool
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	clubRepo       club.Repository
	tx             Transactor
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	clubRepo club.Repository,
	tx Transactor,
	now func() time.Time,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		clubRepo:       clubRepo,
		tx:             tx,
		now:            clockOrDefault(now),
	}
}

func (s *TournamentService) Create(ctx context.Context, title string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	item := tournament.Tournament{Title: strings.TrimSpace(title)}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, internalError(err, "create tournament")
	}

	return created, nil
}

func (s *TournamentService) Get(ctx context.Context, id int64) (tournament.Tournament, error) {
	return findTournament(ctx, s.tournamentRepo, id)
}

func (s *TournamentService) List(ctx context.Context, offset, limit int) ([]tournament.Tournament, error) {
	offset, limit, err := normalizePage(offset, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.tournamentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, internalError(err, "list tournaments")
	}
	return items, nil
}

// UpdateTitle renames the tournament in any state and leaves its schedule
// as committed.
func (s *TournamentService) UpdateTitle(ctx context.Context, id int64, title string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UpdateTitle", attrTournamentID.Int64(id))
	defer span.End()

	title = strings.TrimSpace(title)
	if err := (tournament.Tournament{Title: title}).Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated tournament.Tournament
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadTournament(ctx, s.tournamentRepo.GetByIDForUpdate, id); err != nil {
			return err
		}

		item, exists, err := s.tournamentRepo.UpdateTitle(ctx, id, title)
		if err != nil {
			return internalError(err, "update tournament %d title", id)
		}
		if !exists {
			return fmt.Errorf("%w: the tournament doesn't exist", ErrNotFound)
		}
		updated = item
		return nil
	})
	if err != nil {
		return tournament.Tournament{}, err
	}
	return updated, nil
}

// Delete soft-deletes the tournament in any state. Its teams and matches stay
// in storage but are unreachable through the tournament.
func (s *TournamentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.tournamentRepo.SoftDelete(ctx, id)
	if err != nil {
		return internalError(err, "delete tournament %d", id)
	}
	if !deleted {
		return fmt.Errorf("%w: the tournament doesn't exist", ErrNotFound)
	}
	return nil
}

func (s *TournamentService) Start(ctx context.Context, id int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Start", attrTournamentID.Int64(id))
	defer span.End()

	return s.transition(ctx, id, func(item *tournament.Tournament) error {
		switch item.State() {
		case tournament.StateStopped:
			return fmt.Errorf("%w: the tournament has ended", ErrInvalidState)
		case tournament.StateStarted:
			return fmt.Errorf("%w: the tournament was already started", ErrInvalidState)
		}

		startedAt := s.now().UTC()
		item.StartedAt = &startedAt
		return nil
	})
}

func (s *TournamentService) Stop(ctx context.Context, id int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Stop", attrTournamentID.Int64(id))
	defer span.End()

	return s.transition(ctx, id, func(item *tournament.Tournament) error {
		switch item.State() {
		case tournament.StateStopped:
			return fmt.Errorf("%w: the tournament was already stopped", ErrInvalidState)
		case tournament.StateDraft:
			return fmt.Errorf("%w: the tournament wasn't started", ErrInvalidState)
		}

		stoppedAt := s.now().UTC()
		if stoppedAt.Before(*item.StartedAt) {
			stoppedAt = *item.StartedAt
		}
		item.StoppedAt = &stoppedAt
		return nil
	})
}

// Info loads the tournament with its ranked teams and matches. viewerID is
// used only to compute IsJoined.
func (s *TournamentService) Info(ctx context.Context, id, viewerID int64) (TournamentInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Info")
	defer span.End()

	item, err := findTournament(ctx, s.tournamentRepo, id)
	if err != nil {
		return TournamentInfo{}, err
	}

	var (
		teams   []team.Team
		matches []match.Match
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.ListByTournament(ctx, id)
		if err != nil {
			return internalError(err, "list teams of tournament %d", id)
		}
		teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.ListByTournament(ctx, id)
		if err != nil {
			return internalError(err, "list matches of tournament %d", id)
		}
		matches = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return TournamentInfo{}, err
	}

	info := TournamentInfo{
		Tournament: item,
		Teams:      standing.Rank(teams),
		Matches:    matches,
	}
	for _, t := range teams {
		if t.UserID == viewerID {
			info.IsJoined = true
			break
		}
	}

	return info, nil
}

func (s *TournamentService) Standings(ctx context.Context, id int64) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Standings")
	defer span.End()

	if _, err := findTournament(ctx, s.tournamentRepo, id); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, internalError(err, "list teams of tournament %d", id)
	}

	return standing.Table(teams), nil
}

// AvailableClubs lists clubs not yet fielded by an active team of the tournament.
func (s *TournamentService) AvailableClubs(ctx context.Context, id int64) ([]club.Club, error) {
	if _, err := findTournament(ctx, s.tournamentRepo, id); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, internalError(err, "list teams of tournament %d", id)
	}

	taken := make([]int64, 0, len(teams))
	for _, t := range teams {
		taken = append(taken, t.ClubID)
	}

	clubs, err := s.clubRepo.ListExcluding(ctx, taken)
	if err != nil {
		return nil, internalError(err, "list available clubs")
	}
	return clubs, nil
}

// transition applies change to the row-locked tournament and writes back its
// schedule in the same transaction.
func (s *TournamentService) transition(ctx context.Context, id int64, change func(*tournament.Tournament) error) (tournament.Tournament, error) {
	var updated tournament.Tournament
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := loadTournament(ctx, s.tournamentRepo.GetByIDForUpdate, id)
		if err != nil {
			return err
		}
		if err := change(&item); err != nil {
			return err
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}

		saved, exists, err := s.tournamentRepo.UpdateSchedule(ctx, item)
		if err != nil {
			return internalError(err, "update tournament %d schedule", id)
		}
		if !exists {
			return fmt.Errorf("%w: the tournament doesn't exist", ErrNotFound)
		}
		updated = saved
		return nil
	})
	if err != nil {
		return tournament.Tournament{}, err
	}
	return updated, nil
}

type tournamentGetter func(ctx context.Context, id int64) (tournament.Tournament, bool, error)

func findTournament(ctx context.Context, repo tournament.Repository, id int64) (tournament.Tournament, error) {
	return loadTournament(ctx, repo.GetByID, id)
}

func loadTournament(ctx context.Context, get tournamentGetter, id int64) (tournament.Tournament, error) {
	item, exists, err := get(ctx, id)
	if err != nil {
		return tournament.Tournament{}, internalError(err, "get tournament %d", id)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: the tournament doesn't exist", ErrNotFound)
	}

	return item, nil
}
