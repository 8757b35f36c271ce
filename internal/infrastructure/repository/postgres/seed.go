package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

// BootstrapSeed inserts the default clubs when no live club exists yet.
// It is a single statement, so concurrent instances at most race into
// the title unique index, which ON CONFLICT absorbs.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var live int
	if err := db.GetContext(ctx, &live, `SELECT COUNT(1) FROM clubs WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if live > 0 {
		return nil
	}

	insert := qb.InsertInto("clubs").Columns("title").Suffix("ON CONFLICT DO NOTHING")
	for _, c := range memory.SeedClubs() {
		insert.Values(c.Title)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build seed clubs query: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed clubs: %w", err)
	}
	return nil
}
