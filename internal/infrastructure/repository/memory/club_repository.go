package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
)

type ClubRepository struct {
	store *Store
}

func NewClubRepository(store *Store) *ClubRepository {
	return &ClubRepository{store: store}
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	err := r.store.write(ctx, func(data *tables) error {
		if titleTaken(data, item.Title, 0) {
			return club.ErrDuplicateTitle
		}

		data.lastClubID++
		now := r.store.timestamp()
		item.ID = data.lastClubID
		item.CreatedAt = now
		item.UpdatedAt = now
		data.clubs[item.ID] = clubRecord{item: item}
		return nil
	})
	if err != nil {
		return club.Club{}, err
	}
	return item, nil
}

func (r *ClubRepository) GetByID(_ context.Context, id int64) (club.Club, bool, error) {
	var (
		item   club.Club
		exists bool
	)
	r.store.read(func(data *tables) {
		record, ok := data.clubs[id]
		if ok && !record.deleted {
			item, exists = record.item, true
		}
	})
	return item, exists, nil
}

func (r *ClubRepository) List(_ context.Context, offset, limit int) ([]club.Club, error) {
	return paginate(r.active(nil), offset, limit), nil
}

func (r *ClubRepository) ListExcluding(_ context.Context, excludedIDs []int64) ([]club.Club, error) {
	return r.active(excludedIDs), nil
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) (club.Club, error) {
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.clubs[item.ID]
		if !ok || record.deleted {
			return fmt.Errorf("club %d not found", item.ID)
		}
		if titleTaken(data, item.Title, item.ID) {
			return club.ErrDuplicateTitle
		}
		item.CreatedAt = record.item.CreatedAt
		item.UpdatedAt = r.store.timestamp()
		data.clubs[item.ID] = clubRecord{item: item}
		return nil
	})
	if err != nil {
		return club.Club{}, err
	}
	return item, nil
}

func (r *ClubRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.clubs[id]
		if !ok || record.deleted {
			return nil
		}
		record.deleted = true
		data.clubs[id] = record
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *ClubRepository) active(excludedIDs []int64) []club.Club {
	out := []club.Club{}
	r.store.read(func(data *tables) {
		for id, record := range data.clubs {
			if record.deleted || slices.Contains(excludedIDs, id) {
				continue
			}
			out = append(out, record.item)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func titleTaken(data *tables, title string, exceptID int64) bool {
	for id, record := range data.clubs {
		if id != exceptID && !record.deleted && strings.EqualFold(record.item.Title, title) {
			return true
		}
	}
	return false
}
