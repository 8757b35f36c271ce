package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Match) (Match, error)
	GetByID(ctx context.Context, tournamentID, matchID int64) (Match, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Match, error)
	UpdateResult(ctx context.Context, matchID int64, result Result) (Match, error)
}
