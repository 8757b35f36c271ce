package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, item user.User) (user.User, error) {
	err := r.store.write(ctx, func(data *tables) error {
		if emailTaken(data, item.Email, 0) {
			return user.ErrDuplicateEmail
		}

		data.lastUserID++
		now := r.store.timestamp()
		item.ID = data.lastUserID
		item.CreatedAt = now
		item.UpdatedAt = now
		data.users[item.ID] = userRecord{item: item}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return item, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	var (
		item   user.User
		exists bool
	)
	r.store.read(func(data *tables) {
		record, ok := data.users[id]
		if ok && !record.deleted {
			item, exists = record.item, true
		}
	})
	return item, exists, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	var (
		item   user.User
		exists bool
	)
	r.store.read(func(data *tables) {
		for _, record := range data.users {
			if !record.deleted && record.item.Email == email {
				item, exists = record.item, true
				return
			}
		}
	})
	return item, exists, nil
}

func (r *UserRepository) List(_ context.Context, offset, limit int) ([]user.User, error) {
	var out []user.User
	r.store.read(func(data *tables) {
		for _, record := range data.users {
			if !record.deleted {
				out = append(out, record.item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, offset, limit), nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) (user.User, error) {
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.users[item.ID]
		if !ok || record.deleted {
			return fmt.Errorf("user %d not found", item.ID)
		}
		if emailTaken(data, item.Email, item.ID) {
			return user.ErrDuplicateEmail
		}
		item.CreatedAt = record.item.CreatedAt
		item.UpdatedAt = r.store.timestamp()
		data.users[item.ID] = userRecord{item: item}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return item, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.store.write(ctx, func(data *tables) error {
		record, ok := data.users[id]
		if !ok || record.deleted {
			return nil
		}
		record.deleted = true
		data.users[id] = record
		deleted = true
		return nil
	})
	return deleted, err
}

func emailTaken(data *tables, email string, exceptID int64) bool {
	for id, record := range data.users {
		if id != exceptID && !record.deleted && record.item.Email == email {
			return true
		}
	}
	return false
}
