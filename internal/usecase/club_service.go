package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
)

type ClubService struct {
	clubRepo club.Repository
}

func NewClubService(clubRepo club.Repository) *ClubService {
	return &ClubService{clubRepo: clubRepo}
}

func (s *ClubService) Create(ctx context.Context, title string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Create")
	defer span.End()

	item := club.Club{Title: strings.TrimSpace(title)}
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.clubRepo.Create(ctx, item)
	if errors.Is(err, club.ErrDuplicateTitle) {
		return club.Club{}, fmt.Errorf("%w: the club already exist", ErrConflict)
	}
	if err != nil {
		return club.Club{}, internalError(err, "create club")
	}
	return created, nil
}

func (s *ClubService) Get(ctx context.Context, id int64) (club.Club, error) {
	item, exists, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return club.Club{}, internalError(err, "get club %d", id)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: the club not found", ErrNotFound)
	}
	return item, nil
}

func (s *ClubService) List(ctx context.Context, offset, limit int) ([]club.Club, error) {
	offset, limit, err := normalizePage(offset, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.clubRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, internalError(err, "list clubs")
	}
	return items, nil
}

func (s *ClubService) Update(ctx context.Context, id int64, title string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Update")
	defer span.End()

	item, err := s.Get(ctx, id)
	if err != nil {
		return club.Club{}, err
	}

	item.Title = strings.TrimSpace(title)
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.clubRepo.Update(ctx, item)
	if errors.Is(err, club.ErrDuplicateTitle) {
		return club.Club{}, fmt.Errorf("%w: the club already exist", ErrConflict)
	}
	if err != nil {
		return club.Club{}, internalError(err, "update club %d", id)
	}
	return updated, nil
}

func (s *ClubService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.clubRepo.SoftDelete(ctx, id)
	if err != nil {
		return internalError(err, "delete club %d", id)
	}
	if !deleted {
		return fmt.Errorf("%w: the club not found", ErrNotFound)
	}
	return nil
}
