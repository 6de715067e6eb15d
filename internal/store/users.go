package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskboard/internal/models"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

// UserRepo provides access to the users table
type UserRepo struct {
	db sqlx.ExtContext
}

// Create inserts a new user and fills in the generated ID and timestamp
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query, args, err := squirrel.Insert("users").
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &Error{Op: "create", Table: "users", Err: err}
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return ParsePostgresError(err, "create", "users")
	}

	return nil
}

// ByEmail looks a user up by email address
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_email", Table: "users", Err: err}
	}

	var user models.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_email", "users")
	}

	return &user, nil
}

// ByID looks a user up by primary key
func (r *UserRepo) ByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_id", Table: "users", Err: err}
	}

	var user models.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_id", "users")
	}

	return &user, nil
}
