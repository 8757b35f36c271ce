package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/tournament-league/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	err := r.store.write(ctx, func(data *tables) error {
		for _, record := range data.teams {
			if record.deleted || record.item.TournamentID != item.TournamentID {
				continue
			}
			if record.item.UserID == item.UserID || record.item.ClubID == item.ClubID {
				return team.ErrDuplicate
			}
		}

		data.lastTeamID++
		now := r.store.timestamp()
		item.ID = data.lastTeamID
		item.CreatedAt = now
		item.UpdatedAt = now
		data.teams[item.ID] = teamRecord{item: item}
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}
	return item, nil
}

func (r *TeamRepository) GetByID(_ context.Context, tournamentID, teamID int64) (team.Team, bool, error) {
	item, exists := r.find(func(t team.Team) bool {
		return t.ID == teamID && t.TournamentID == tournamentID
	})
	return item, exists, nil
}

// GetByIDForUpdate needs no extra locking here: the caller's transaction
// already excludes every other writer.
func (r *TeamRepository) GetByIDForUpdate(ctx context.Context, tournamentID, teamID int64) (team.Team, bool, error) {
	return r.GetByID(ctx, tournamentID, teamID)
}

func (r *TeamRepository) GetByUser(_ context.Context, tournamentID, userID int64) (team.Team, bool, error) {
	item, exists := r.find(func(t team.Team) bool {
		return t.TournamentID == tournamentID && t.UserID == userID
	})
	return item, exists, nil
}

func (r *TeamRepository) GetByClub(_ context.Context, tournamentID, clubID int64) (team.Team, bool, error) {
	item, exists := r.find(func(t team.Team) bool {
		return t.TournamentID == tournamentID && t.ClubID == clubID
	})
	return item, exists, nil
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID int64) ([]team.Team, error) {
	return r.filter(func(t team.Team) bool { return t.TournamentID == tournamentID }), nil
}

// ListByUser skips teams whose tournament was deleted.
func (r *TeamRepository) ListByUser(_ context.Context, userID int64) ([]team.Team, error) {
	var out []team.Team
	r.store.read(func(data *tables) {
		for _, record := range data.teams {
			if record.deleted || record.item.UserID != userID {
				continue
			}
			if owner, ok := data.tournaments[record.item.TournamentID]; !ok || owner.deleted {
				continue
			}
			out = append(out, record.item)
		}
	})
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) ApplyDelta(ctx context.Context, teamID int64, delta team.Delta) (team.Team, error) {
	var updated team.Team
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.teams[teamID]
		if !ok || record.deleted {
			return fmt.Errorf("team %d not found", teamID)
		}
		record.item = record.item.Apply(delta)
		record.item.UpdatedAt = r.store.timestamp()
		data.teams[teamID] = record
		updated = record.item
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}
	return updated, nil
}

func (r *TeamRepository) SoftDelete(ctx context.Context, teamID int64) error {
	return r.store.write(ctx, func(data *tables) error {
		record, ok := data.teams[teamID]
		if !ok || record.deleted {
			return fmt.Errorf("team %d not found", teamID)
		}
		record.deleted = true
		data.teams[teamID] = record
		return nil
	})
}

func (r *TeamRepository) find(match func(team.Team) bool) (team.Team, bool) {
	var (
		item   team.Team
		exists bool
	)
	r.store.read(func(data *tables) {
		for _, record := range data.teams {
			if !record.deleted && match(record.item) {
				item, exists = record.item, true
				return
			}
		}
	})
	return item, exists
}

func (r *TeamRepository) filter(keep func(team.Team) bool) []team.Team {
	out := []team.Team{}
	r.store.read(func(data *tables) {
		for _, record := range data.teams {
			if !record.deleted && keep(record.item) {
				out = append(out, record.item)
			}
		}
	})
	sortTeams(out)
	return out
}

func sortTeams(items []team.Team) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
