package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	err := r.store.write(ctx, func(data *tables) error {
		data.lastTournamentID++
		now := r.store.timestamp()
		item.ID = data.lastTournamentID
		item.CreatedAt = now
		item.UpdatedAt = now
		data.tournaments[item.ID] = tournamentRecord{item: item}
		return nil
	})
	return item, err
}

func (r *TournamentRepository) GetByID(_ context.Context, id int64) (tournament.Tournament, bool, error) {
	var (
		item   tournament.Tournament
		exists bool
	)
	r.store.read(func(data *tables) {
		record, ok := data.tournaments[id]
		if ok && !record.deleted {
			item, exists = record.item, true
		}
	})
	return item, exists, nil
}

// GetByIDForUpdate and GetByIDForShare need no extra locking here: the
// caller's transaction already excludes every other writer.
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	return r.GetByID(ctx, id)
}

func (r *TournamentRepository) GetByIDForShare(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	return r.GetByID(ctx, id)
}

func (r *TournamentRepository) List(_ context.Context, offset, limit int) ([]tournament.Tournament, error) {
	items := r.active(func(tournament.Tournament) bool { return true })
	return paginate(items, offset, limit), nil
}

func (r *TournamentRepository) ListStopped(_ context.Context) ([]tournament.Tournament, error) {
	return r.active(tournament.Tournament.IsStopped), nil
}

func (r *TournamentRepository) UpdateTitle(ctx context.Context, id int64, title string) (tournament.Tournament, bool, error) {
	return r.update(ctx, id, func(item *tournament.Tournament) {
		item.Title = title
	})
}

func (r *TournamentRepository) UpdateSchedule(ctx context.Context, item tournament.Tournament) (tournament.Tournament, bool, error) {
	return r.update(ctx, item.ID, func(current *tournament.Tournament) {
		current.StartedAt = item.StartedAt
		current.StoppedAt = item.StoppedAt
	})
}

func (r *TournamentRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.tournaments[id]
		if !ok || record.deleted {
			return nil
		}
		record.deleted = true
		data.tournaments[id] = record
		deleted = true
		return nil
	})
	return deleted, err
}

// update applies change to the stored row so columns it leaves alone keep
// their committed values.
func (r *TournamentRepository) update(ctx context.Context, id int64, change func(*tournament.Tournament)) (tournament.Tournament, bool, error) {
	var (
		item   tournament.Tournament
		exists bool
	)
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.tournaments[id]
		if !ok || record.deleted {
			return nil
		}
		change(&record.item)
		record.item.UpdatedAt = r.store.timestamp()
		data.tournaments[id] = record
		item, exists = record.item, true
		return nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return item, exists, nil
}

func (r *TournamentRepository) active(keep func(tournament.Tournament) bool) []tournament.Tournament {
	var out []tournament.Tournament
	r.store.read(func(data *tables) {
		for _, record := range data.tournaments {
			if !record.deleted && keep(record.item) {
				out = append(out, record.item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), items[offset:end]...)
}
