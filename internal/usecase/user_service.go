package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

const MinPasswordLength = 6

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type UpdateUserInput struct {
	Name  string
	Email string
	Role  user.Role
}

type UserService struct {
	userRepo user.Repository
	hasher   PasswordHasher
}

func NewUserService(userRepo user.Repository, hasher PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

func (s *UserService) Get(ctx context.Context, id int64) (user.User, error) {
	return findUser(ctx, s.userRepo, id)
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	offset, limit, err := normalizePage(offset, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, internalError(err, "list users")
	}
	return items, nil
}

// Update is the admin edit: name, email and role in one call.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Update")
	defer span.End()

	item, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return user.User{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Email = user.NormalizeEmail(input.Email)
	item.Role = input.Role
	return s.save(ctx, item)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.userRepo.SoftDelete(ctx, id)
	if err != nil {
		return internalError(err, "delete user %d", id)
	}
	if !deleted {
		return fmt.Errorf("%w: user=%d", ErrNotFound, id)
	}
	return nil
}

func (s *UserService) UpdateName(ctx context.Context, id int64, name string) (user.User, error) {
	item, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return user.User{}, err
	}

	item.Name = strings.TrimSpace(name)
	return s.save(ctx, item)
}

// UpdateEmail changes the login email once the current password is confirmed.
func (s *UserService) UpdateEmail(ctx context.Context, id int64, email, password string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateEmail")
	defer span.End()

	item, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return user.User{}, err
	}
	if err := s.hasher.Compare(item.PasswordHash, password); err != nil {
		return user.User{}, fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	email = user.NormalizeEmail(email)
	if email == item.Email {
		return item, nil
	}
	item.Email = email
	return s.save(ctx, item)
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdatePassword")
	defer span.End()

	item, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(item.PasswordHash, oldPassword); err != nil {
		return fmt.Errorf("%w: old password is not correct", ErrInvalidInput)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return internalError(err, "hash password")
	}
	item.PasswordHash = hash

	_, err = s.save(ctx, item)
	return err
}

func (s *UserService) save(ctx context.Context, item user.User) (user.User, error) {
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.userRepo.Update(ctx, item)
	if errors.Is(err, user.ErrDuplicateEmail) {
		return user.User{}, fmt.Errorf("%w: user with email %q already exist", ErrConflict, item.Email)
	}
	if err != nil {
		return user.User{}, internalError(err, "update user %d", item.ID)
	}
	return updated, nil
}

func findUser(ctx context.Context, repo user.Repository, id int64) (user.User, error) {
	item, exists, err := repo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, internalError(err, "get user %d", id)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%d", ErrNotFound, id)
	}
	return item, nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
