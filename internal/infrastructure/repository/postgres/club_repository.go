package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/domain/club"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	query, args, err := qb.InsertModel("clubs", clubInsertModel{Title: item.Title}, "RETURNING *")
	if err != nil {
		return club.Club{}, fmt.Errorf("build create club query: %w", err)
	}

	var row clubTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isUniqueViolation(err, "") {
			return club.Club{}, club.ErrDuplicateTitle
		}
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}
	return clubFromRow(row), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by id query: %w", err)
	}

	var row clubTableModel
	if err := executor(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) List(ctx context.Context, offset, limit int) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}
	return r.selectRows(ctx, "list clubs", query, args)
}

func (r *ClubRepository) ListExcluding(ctx context.Context, excludedIDs []int64) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.IsNull("deleted_at"),
			qb.NotIn("id", int64SliceToAny(excludedIDs)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list available clubs query: %w", err)
	}
	return r.selectRows(ctx, "list available clubs", query, args)
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) (club.Club, error) {
	query, args, err := qb.Update("clubs").
		Set("title", item.Title).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", item.ID),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return club.Club{}, fmt.Errorf("build update club query: %w", err)
	}

	var row clubTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isUniqueViolation(err, "") {
			return club.Club{}, club.ErrDuplicateTitle
		}
		return club.Club{}, fmt.Errorf("update club: %w", err)
	}
	return clubFromRow(row), nil
}

func (r *ClubRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Update("clubs").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete club query: %w", err)
	}

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("soft delete club: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected soft delete club: %w", err)
	}
	return affected > 0, nil
}

func (r *ClubRepository) selectRows(ctx context.Context, op, query string, args []any) ([]club.Club, error) {
	var rows []clubTableModel
	if err := executor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}
