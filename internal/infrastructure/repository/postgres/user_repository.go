package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
	qb "github.com/riskibarqy/tournament-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, item user.User) (user.User, error) {
	insertModel := userInsertModel{
		Name:         item.Name,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		Role:         int(item.Role),
	}
	query, args, err := qb.InsertModel("users", insertModel, "RETURNING *")
	if err != nil {
		return user.User{}, fmt.Errorf("build create user query: %w", err)
	}

	var row userTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, user.ErrDuplicateEmail
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return userFromRow(row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	return r.getOne(ctx, "get user by id", qb.Eq("id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getOne(ctx, "get user by email", qb.Eq("email", email))
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := executor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) (user.User, error) {
	query, args, err := qb.Update("users").
		Set("name", item.Name).
		Set("email", item.Email).
		Set("password_hash", item.PasswordHash).
		Set("role", int(item.Role)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", item.ID),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build update user query: %w", err)
	}

	var row userTableModel
	if err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, user.ErrDuplicateEmail
		}
		return user.User{}, fmt.Errorf("update user: %w", err)
	}
	return userFromRow(row), nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Update("users").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete user query: %w", err)
	}

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("soft delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected soft delete user: %w", err)
	}
	return affected > 0, nil
}

func (r *UserRepository) getOne(ctx context.Context, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := executor(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return userFromRow(row), true, nil
}
