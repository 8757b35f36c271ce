package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	clubmock "github.com/riskibarqy/tournament-league/internal/mocks/domain/club"
	"github.com/stretchr/testify/mock"
)

func TestClubService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	service := NewClubService(repo)

	repo.On("Create", mock.Anything, club.Club{Title: "Arsenal"}).Return(club.Club{ID: 7, Title: "Arsenal"}, nil).Once()
	created, err := service.Create(ctx, "  Arsenal ")
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("unexpected club %+v", created)
	}

	repo.On("Create", mock.Anything, club.Club{Title: "Chelsea"}).Return(club.Club{}, club.ErrDuplicateTitle).Once()
	_, err = service.Create(ctx, "Chelsea")
	if KindOf(err) != KindConflict || err.Error() != "conflict: the club already exist" {
		t.Fatalf("unexpected duplicate error: %v", err)
	}

	if _, err := service.Create(ctx, "   "); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for blank title, got %v", err)
	}
}

func TestClubService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	service := NewClubService(repo)

	repo.On("GetByID", mock.Anything, int64(3)).Return(club.Club{ID: 3, Title: "Roma"}, true, nil).Twice()
	repo.On("Update", mock.Anything, club.Club{ID: 3, Title: "AS Roma"}).Return(club.Club{ID: 3, Title: "AS Roma"}, nil).Once()
	updated, err := service.Update(ctx, 3, "AS Roma")
	if err != nil || updated.Title != "AS Roma" {
		t.Fatalf("update club: item=%+v err=%v", updated, err)
	}
	if _, err := service.Update(ctx, 3, ""); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for blank title, got %v", err)
	}

	repo.On("GetByID", mock.Anything, int64(4)).Return(club.Club{}, false, nil).Once()
	if _, err := service.Update(ctx, 4, "Lazio"); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	repo.On("SoftDelete", mock.Anything, int64(3)).Return(true, nil).Once()
	repo.On("SoftDelete", mock.Anything, int64(4)).Return(false, nil).Once()
	repo.On("SoftDelete", mock.Anything, int64(5)).Return(false, errors.New("connection reset")).Once()
	if err := service.Delete(ctx, 3); err != nil {
		t.Fatalf("delete club: %v", err)
	}
	if err := service.Delete(ctx, 4); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := service.Delete(ctx, 5); KindOf(err) != KindInternal {
		t.Fatalf("expected InternalError, got %v", err)
	}
}

func TestClubService_ListRejectsBadPage(t *testing.T) {
	t.Parallel()

	service := NewClubService(clubmock.NewRepository(t))
	if _, err := service.List(context.Background(), -1, 10); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for negative offset, got %v", err)
	}
}
