package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{Title: item.Title}, "RETURNING *")
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build create tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}
	return tournamentFromRow(row), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, "get tournament by id", tournamentByIDSelectBuilder(id))
}

// GetByIDForUpdate row-locks the tournament for the rest of the caller's transaction.
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, "get tournament by id for update", tournamentByIDSelectBuilder(id).ForUpdate())
}

func (r *TournamentRepository) GetByIDForShare(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, "get tournament by id for share", tournamentByIDSelectBuilder(id).ForShare())
}

func (r *TournamentRepository) List(ctx context.Context, offset, limit int) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}
	return r.selectRows(ctx, "list tournaments", query, args)
}

func (r *TournamentRepository) ListStopped(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(
			qb.IsNotNull("stopped_at"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stopped tournaments query: %w", err)
	}
	return r.selectRows(ctx, "list stopped tournaments", query, args)
}

func (r *TournamentRepository) UpdateTitle(ctx context.Context, id int64, title string) (tournament.Tournament, bool, error) {
	return r.updateOne(ctx, "update tournament title", qb.Update("tournaments").
		Set("title", title).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		))
}

func (r *TournamentRepository) UpdateSchedule(ctx context.Context, item tournament.Tournament) (tournament.Tournament, bool, error) {
	return r.updateOne(ctx, "update tournament schedule", qb.Update("tournaments").
		Set("started_at", item.StartedAt).
		Set("stopped_at", item.StoppedAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", item.ID),
			qb.IsNull("deleted_at"),
		))
}

func (r *TournamentRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Update("tournaments").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete tournament query: %w", err)
	}

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("soft delete tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected soft delete tournament: %w", err)
	}
	return affected > 0, nil
}

func (r *TournamentRepository) getOne(ctx context.Context, op string, builder *qb.SelectBuilder) (tournament.Tournament, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row tournamentTableModel
	if err := executor(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return tournamentFromRow(row), true, nil
}

// updateOne reports exists=false when the row is missing or soft-deleted.
func (r *TournamentRepository) updateOne(ctx context.Context, op string, builder *qb.UpdateBuilder) (tournament.Tournament, bool, error) {
	query, args, err := builder.Suffix("RETURNING *").ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row tournamentTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) selectRows(ctx context.Context, op, query string, args []any) ([]tournament.Tournament, error) {
	var rows []tournamentTableModel
	if err := executor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func tournamentByIDSelectBuilder(id int64) *qb.SelectBuilder {
	return qb.Select("*").From("tournaments").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		)
}
