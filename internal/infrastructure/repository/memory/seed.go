package memory

import (
	"context"
	"errors"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{Title: "Arsenal"},
		{Title: "Barcelona"},
		{Title: "Bayern Munich"},
		{Title: "Juventus"},
		{Title: "Liverpool"},
		{Title: "Manchester City"},
		{Title: "Paris Saint-Germain"},
		{Title: "Real Madrid"},
	}
}

// Seed loads clubs into the store, skipping titles already present.
func Seed(ctx context.Context, store *Store, clubs []club.Club) error {
	repo := NewClubRepository(store)
	for _, item := range clubs {
		if _, err := repo.Create(ctx, item); err != nil && !errors.Is(err, club.ErrDuplicateTitle) {
			return err
		}
	}
	return nil
}
