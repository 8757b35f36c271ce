package team

import "context"

// Repository describes team persistence needs from use cases.
// Reads only return active (not soft-deleted) teams.
type Repository interface {
	Create(ctx context.Context, item Team) (Team, error)
	GetByID(ctx context.Context, tournamentID, teamID int64) (Team, bool, error)
	// GetByIDForUpdate locks the team row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, tournamentID, teamID int64) (Team, bool, error)
	GetByUser(ctx context.Context, tournamentID, userID int64) (Team, bool, error)
	GetByClub(ctx context.Context, tournamentID, clubID int64) (Team, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Team, error)
	ListByUser(ctx context.Context, userID int64) ([]Team, error)
	ApplyDelta(ctx context.Context, teamID int64, delta Delta) (Team, error)
	SoftDelete(ctx context.Context, teamID int64) error
}
