package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/tournament-league/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	err := r.store.write(ctx, func(data *tables) error {
		data.lastMatchID++
		now := r.store.timestamp()
		item.ID = data.lastMatchID
		item.CreatedAt = now
		item.UpdatedAt = now
		data.matches[item.ID] = item
		return nil
	})
	return item, err
}

func (r *MatchRepository) GetByID(_ context.Context, tournamentID, matchID int64) (match.Match, bool, error) {
	var (
		item   match.Match
		exists bool
	)
	r.store.read(func(data *tables) {
		found, ok := data.matches[matchID]
		if ok && found.TournamentID == tournamentID {
			item, exists = found, true
		}
	})
	return item, exists, nil
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID int64) ([]match.Match, error) {
	out := []match.Match{}
	r.store.read(func(data *tables) {
		for _, item := range data.matches {
			if item.TournamentID == tournamentID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID int64, result match.Result) (match.Match, error) {
	var updated match.Match
	err := r.store.write(ctx, func(data *tables) error {
		item, ok := data.matches[matchID]
		if !ok {
			return fmt.Errorf("match %d not found", matchID)
		}
		item.HomeScored = result.HomeScored
		item.AwayScored = result.AwayScored
		item.UpdatedAt = r.store.timestamp()
		data.matches[matchID] = item
		updated = item
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}
	return updated, nil
}
