package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
)

type JoinTournamentInput struct {
	UserID       int64
	TournamentID int64
	ClubID       int64
}

// MembershipService lets users enter and leave tournaments with a club.
type MembershipService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	clubRepo       club.Repository
	tx             Transactor
	logger         *logging.Logger
}

func NewMembershipService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	clubRepo club.Repository,
	tx Transactor,
	logger *logging.Logger,
) *MembershipService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MembershipService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		clubRepo:       clubRepo,
		tx:             tx,
		logger:         logger,
	}
}

func (s *MembershipService) Join(ctx context.Context, input JoinTournamentInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.Join",
		attrTournamentID.Int64(input.TournamentID),
		attrUserID.Int64(input.UserID),
	)
	defer span.End()

	var created team.Team
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, exists, err := s.tournamentRepo.GetByIDForShare(ctx, input.TournamentID)
		if err != nil {
			return internalError(err, "get tournament %d", input.TournamentID)
		}
		if !exists {
			return fmt.Errorf("%w: the tournament not found", ErrNotFound)
		}
		switch item.State() {
		case tournament.StateStopped:
			return fmt.Errorf("%w: the tournament is stopped", ErrInvalidState)
		case tournament.StateStarted:
			return fmt.Errorf("%w: the tournament is active", ErrInvalidState)
		}

		_, exists, err = s.clubRepo.GetByID(ctx, input.ClubID)
		if err != nil {
			return internalError(err, "get club %d", input.ClubID)
		}
		if !exists {
			return fmt.Errorf("%w: the club not found", ErrNotFound)
		}

		_, exists, err = s.teamRepo.GetByUser(ctx, input.TournamentID, input.UserID)
		if err != nil {
			return internalError(err, "get team by user")
		}
		if exists {
			return fmt.Errorf("%w: you are already a participant of the tournament", ErrConflict)
		}

		_, exists, err = s.teamRepo.GetByClub(ctx, input.TournamentID, input.ClubID)
		if err != nil {
			return internalError(err, "get team by club")
		}
		if exists {
			return fmt.Errorf("%w: club with clubId \"%d\" already in use", ErrConflict, input.ClubID)
		}

		newTeam := team.Team{
			TournamentID: input.TournamentID,
			UserID:       input.UserID,
			ClubID:       input.ClubID,
		}
		if err := newTeam.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		created, err = s.teamRepo.Create(ctx, newTeam)
		if errors.Is(err, team.ErrDuplicate) {
			return fmt.Errorf("%w: you or your club already take part in the tournament", ErrConflict)
		}
		if err != nil {
			return internalError(err, "create team")
		}
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "user joined tournament",
		"tournament_id", input.TournamentID,
		"user_id", input.UserID,
		"club_id", input.ClubID,
		"team_id", created.ID,
	)
	return created, nil
}

// Leave soft-deletes the caller's team in any tournament state. Matches
// already recorded keep referencing the departed team.
func (s *MembershipService) Leave(ctx context.Context, userID, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.Leave")
	defer span.End()

	item, err := findTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return err
	}

	current, exists, err := s.teamRepo.GetByUser(ctx, tournamentID, userID)
	if err != nil {
		return internalError(err, "get team by user")
	}
	if !exists {
		return fmt.Errorf("%w: you are not a participant of the tournament", ErrNotFound)
	}

	if err := s.teamRepo.SoftDelete(ctx, current.ID); err != nil {
		return internalError(err, "delete team %d", current.ID)
	}

	if current.Played() > 0 {
		s.logger.WarnContext(ctx, "team with match history left tournament",
			"tournament_id", tournamentID,
			"tournament_state", string(item.State()),
			"team_id", current.ID,
			"played", current.Played(),
		)
	}
	return nil
}
