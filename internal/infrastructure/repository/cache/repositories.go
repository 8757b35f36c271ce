// Package cache decorates repositories with read-through caching.
package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	basecache "github.com/riskibarqy/tournament-league/internal/platform/cache"
)

type clubLookup struct {
	value  club.Club
	exists bool
}

// ClubRepository caches club reads. Any successful write purges both
// caches, so readers never see a club list older than the last write.
type ClubRepository struct {
	next  club.Repository
	byID  *basecache.Store[clubLookup]
	lists *basecache.Store[[]club.Club]
}

func NewClubRepository(next club.Repository, ttl time.Duration) *ClubRepository {
	return &ClubRepository{
		next:  next,
		byID:  basecache.NewStore[clubLookup](ttl),
		lists: basecache.NewStore[[]club.Club](ttl),
	}
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	found, err := r.byID.GetOrLoad(ctx, strconv.FormatInt(id, 10), func(ctx context.Context) (clubLookup, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return clubLookup{value: item, exists: exists}, err
	})
	if err != nil {
		return club.Club{}, false, err
	}
	return found.value, found.exists, nil
}

func (r *ClubRepository) List(ctx context.Context, offset, limit int) ([]club.Club, error) {
	key := "page:" + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
	return r.loadList(ctx, key, func(ctx context.Context) ([]club.Club, error) {
		return r.next.List(ctx, offset, limit)
	})
}

func (r *ClubRepository) ListExcluding(ctx context.Context, excludedIDs []int64) ([]club.Club, error) {
	ids := slices.Clone(excludedIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var key strings.Builder
	key.WriteString("excluding:")
	for i, id := range ids {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatInt(id, 10))
	}
	return r.loadList(ctx, key.String(), func(ctx context.Context) ([]club.Club, error) {
		return r.next.ListExcluding(ctx, ids)
	})
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	created, err := r.next.Create(ctx, item)
	if err == nil {
		r.purge()
	}
	return created, err
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) (club.Club, error) {
	updated, err := r.next.Update(ctx, item)
	if err == nil {
		r.purge()
	}
	return updated, err
}

func (r *ClubRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.next.SoftDelete(ctx, id)
	if err == nil {
		r.purge()
	}
	return deleted, err
}

// loadList hands each caller its own copy so callers may sort or append freely.
func (r *ClubRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]club.Club, error)) ([]club.Club, error) {
	items, err := r.lists.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	return append([]club.Club{}, items...), nil
}

func (r *ClubRepository) purge() {
	r.byID.Purge()
	r.lists.Purge()
}
