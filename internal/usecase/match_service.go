package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
)

type RecordMatchInput struct {
	TournamentID int64
	HomeTeamID   int64
	AwayTeamID   int64
	Result       match.Result
}

type ReviseMatchInput struct {
	TournamentID int64
	MatchID      int64
	HomeTeamID   int64
	AwayTeamID   int64
	Result       match.Result
}

// MatchService records results and keeps team aggregates in step with them.
type MatchService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	tx             Transactor
	logger         *logging.Logger
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	tx Transactor,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		tx:             tx,
		logger:         logger,
	}
}

func (s *MatchService) Record(ctx context.Context, input RecordMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Record", attrTournamentID.Int64(input.TournamentID))
	defer span.End()

	if err := validatePairing(input.HomeTeamID, input.AwayTeamID, input.Result); err != nil {
		return match.Match{}, err
	}

	var recorded match.Match
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireStarted(ctx, input.TournamentID); err != nil {
			return err
		}
		if err := s.lockTeams(ctx, input.TournamentID, input.HomeTeamID, input.AwayTeamID); err != nil {
			return err
		}

		created, err := s.matchRepo.Create(ctx, match.Match{
			TournamentID: input.TournamentID,
			HomeTeamID:   input.HomeTeamID,
			AwayTeamID:   input.AwayTeamID,
			HomeScored:   input.Result.HomeScored,
			AwayScored:   input.Result.AwayScored,
		})
		if err != nil {
			return internalError(err, "create match")
		}

		home, away := match.Deltas(input.Result)
		if err := s.applyDeltas(ctx, created, home, away); err != nil {
			return err
		}

		recorded = created
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match recorded",
		"tournament_id", recorded.TournamentID,
		"match_id", recorded.ID,
		"home_team_id", recorded.HomeTeamID,
		"away_team_id", recorded.AwayTeamID,
		"score", fmt.Sprintf("%d-%d", recorded.HomeScored, recorded.AwayScored),
	)
	return recorded, nil
}

// Revise replaces the score of an existing match. Team aggregates move by the
// difference between the old and the new result.
func (s *MatchService) Revise(ctx context.Context, input ReviseMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Revise",
		attrTournamentID.Int64(input.TournamentID),
		attrMatchID.Int64(input.MatchID),
	)
	defer span.End()

	var revised match.Match
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, exists, err := s.matchRepo.GetByID(ctx, input.TournamentID, input.MatchID)
		if err != nil {
			return internalError(err, "get match %d", input.MatchID)
		}
		if !exists {
			return fmt.Errorf("%w: the match doesn't exist", ErrNotFound)
		}
		if !current.SamePairing(input.HomeTeamID, input.AwayTeamID) {
			return fmt.Errorf("%w: changing the team is forbidden", ErrInvalidInput)
		}

		if err := validatePairing(input.HomeTeamID, input.AwayTeamID, input.Result); err != nil {
			return err
		}
		if err := s.requireStarted(ctx, input.TournamentID); err != nil {
			return err
		}
		if err := s.lockTeams(ctx, input.TournamentID, input.HomeTeamID, input.AwayTeamID); err != nil {
			return err
		}

		home, away := match.RevisionDeltas(current.Result(), input.Result)
		if err := s.applyDeltas(ctx, current, home, away); err != nil {
			return err
		}

		updated, err := s.matchRepo.UpdateResult(ctx, current.ID, input.Result)
		if err != nil {
			return internalError(err, "update match %d", current.ID)
		}
		revised = updated
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match revised",
		"tournament_id", revised.TournamentID,
		"match_id", revised.ID,
		"score", fmt.Sprintf("%d-%d", revised.HomeScored, revised.AwayScored),
	)
	return revised, nil
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTournament")
	defer span.End()

	if _, err := findTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, internalError(err, "list matches of tournament %d", tournamentID)
	}
	return items, nil
}

// requireStarted share-locks the tournament so it cannot be stopped before the
// caller's transaction commits.
func (s *MatchService) requireStarted(ctx context.Context, tournamentID int64) error {
	item, err := loadTournament(ctx, s.tournamentRepo.GetByIDForShare, tournamentID)
	if err != nil {
		return err
	}

	switch item.State() {
	case tournament.StateDraft:
		return fmt.Errorf("%w: the tournament not started yet", ErrInvalidState)
	case tournament.StateStopped:
		return fmt.Errorf("%w: the tournament has ended", ErrInvalidState)
	}
	return nil
}

// lockTeams checks both teams and locks their rows in ascending id order so
// two transactions on the same pair cannot deadlock.
func (s *MatchService) lockTeams(ctx context.Context, tournamentID, homeTeamID, awayTeamID int64) error {
	type side struct {
		id      int64
		missing string
	}
	sides := []side{
		{id: homeTeamID, missing: "home team doesn't exist"},
		{id: awayTeamID, missing: "away team doesn't exist"},
	}

	// Existence errors keep the home-first order; locking is by id.
	for _, item := range sides {
		if _, exists, err := s.teamRepo.GetByID(ctx, tournamentID, item.id); err != nil {
			return internalError(err, "get team %d", item.id)
		} else if !exists {
			return fmt.Errorf("%w: %s", ErrNotFound, item.missing)
		}
	}

	if sides[0].id > sides[1].id {
		sides[0], sides[1] = sides[1], sides[0]
	}
	for _, item := range sides {
		_, exists, err := s.teamRepo.GetByIDForUpdate(ctx, tournamentID, item.id)
		if err != nil {
			return internalError(err, "lock team %d", item.id)
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrNotFound, item.missing)
		}
	}
	return nil
}

func (s *MatchService) applyDeltas(ctx context.Context, item match.Match, home, away team.Delta) error {
	if !home.IsZero() {
		if _, err := s.teamRepo.ApplyDelta(ctx, item.HomeTeamID, home); err != nil {
			return internalError(err, "apply delta to home team %d", item.HomeTeamID)
		}
	}
	if !away.IsZero() {
		if _, err := s.teamRepo.ApplyDelta(ctx, item.AwayTeamID, away); err != nil {
			return internalError(err, "apply delta to away team %d", item.AwayTeamID)
		}
	}
	return nil
}

func validatePairing(homeTeamID, awayTeamID int64, result match.Result) error {
	if homeTeamID == awayTeamID {
		return fmt.Errorf("%w: %v", ErrInvalidInput, match.ErrSameTeams)
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
