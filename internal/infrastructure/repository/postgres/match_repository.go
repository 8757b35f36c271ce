package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	insertModel := matchInsertModel{
		TournamentID: item.TournamentID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		HomeScored:   item.HomeScored,
		AwayScored:   item.AwayScored,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "RETURNING *")
	if err != nil {
		return match.Match{}, fmt.Errorf("build create match query: %w", err)
	}

	var row matchTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return matchFromRow(row), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, tournamentID, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("id", matchID),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := executor(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by tournament query: %w", err)
	}

	var rows []matchTableModel
	if err := executor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by tournament: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID int64, result match.Result) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("home_scored", result.HomeScored).
		Set("away_scored", result.AwayScored).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match result query: %w", err)
	}

	var row matchTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return match.Match{}, fmt.Errorf("update match result: %w", err)
	}
	return matchFromRow(row), nil
}
