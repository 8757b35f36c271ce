package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	insertModel := teamInsertModel{
		TournamentID: item.TournamentID,
		UserID:       item.UserID,
		ClubID:       item.ClubID,
	}
	query, args, err := qb.InsertModel("teams", insertModel, "RETURNING *")
	if err != nil {
		return team.Team{}, fmt.Errorf("build create team query: %w", err)
	}

	var row teamTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isUniqueViolation(err, "") {
			return team.Team{}, team.ErrDuplicate
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return teamFromRow(row), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, tournamentID, teamID int64) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by id", teamBaseSelectBuilder().
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("id", teamID),
		))
}

// GetByIDForUpdate row-locks the team for the rest of the caller's transaction.
func (r *TeamRepository) GetByIDForUpdate(ctx context.Context, tournamentID, teamID int64) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by id for update", teamBaseSelectBuilder().
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("id", teamID),
		).
		ForUpdate())
}

func (r *TeamRepository) GetByUser(ctx context.Context, tournamentID, userID int64) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by user", teamBaseSelectBuilder().
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("user_id", userID),
		))
}

func (r *TeamRepository) GetByClub(ctx context.Context, tournamentID, clubID int64) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by club", teamBaseSelectBuilder().
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("club_id", clubID),
		))
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	return r.list(ctx, "list teams by tournament", teamBaseSelectBuilder().
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id"))
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]team.Team, error) {
	return r.list(ctx, "list teams by user", teamBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Expr("tournament_id IN (SELECT id FROM tournaments WHERE deleted_at IS NULL)"),
		).
		OrderBy("id"))
}

// ApplyDelta increments the counters in SQL so concurrent writers never
// overwrite each other.
func (r *TeamRepository) ApplyDelta(ctx context.Context, teamID int64, delta team.Delta) (team.Team, error) {
	query, args, err := qb.Update("teams").
		SetExpr("scored", "scored + ?", delta.Scored).
		SetExpr("missed", "missed + ?", delta.Missed).
		SetExpr("wins", "wins + ?", delta.Wins).
		SetExpr("draws", "draws + ?", delta.Draws).
		SetExpr("losses", "losses + ?", delta.Losses).
		SetExpr("points", "points + ?", delta.Points).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", teamID),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build apply team delta query: %w", err)
	}

	var row teamTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return team.Team{}, fmt.Errorf("apply team delta: %w", err)
	}
	return teamFromRow(row), nil
}

func (r *TeamRepository) SoftDelete(ctx context.Context, teamID int64) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete team query: %w", err)
	}

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete team: not found")
	}
	return nil
}

func (r *TeamRepository) getOne(ctx context.Context, op string, builder *qb.SelectBuilder) (team.Team, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row teamTableModel
	if err := executor(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) list(ctx context.Context, op string, builder *qb.SelectBuilder) ([]team.Team, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []teamTableModel
	if err := executor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("teams").Where(qb.IsNull("deleted_at"))
}
