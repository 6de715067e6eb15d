package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskboard/internal/models"
)

// TagRepo provides access to the tags table
type TagRepo struct {
	db sqlx.ExtContext
}

// Create inserts a new tag. The name is expected to be normalized already.
func (r *TagRepo) Create(ctx context.Context, name string) (*models.Tag, error) {
	query, args, err := squirrel.Insert("tags").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "create", Table: "tags", Err: err}
	}

	tag := models.Tag{Name: name}
	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&tag.ID); err != nil {
		return nil, ParsePostgresError(err, "create", "tags")
	}

	return &tag, nil
}

// ByName looks a tag up by its normalized name
func (r *TagRepo) ByName(ctx context.Context, name string) (*models.Tag, error) {
	query, args, err := squirrel.Select("id", "name").
		From("tags").
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_name", Table: "tags", Err: err}
	}

	var tag models.Tag
	if err := sqlx.GetContext(ctx, r.db, &tag, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_name", "tags")
	}

	return &tag, nil
}

// ByID looks a tag up by primary key
func (r *TagRepo) ByID(ctx context.Context, id int64) (*models.Tag, error) {
	query, args, err := squirrel.Select("id", "name").
		From("tags").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_id", Table: "tags", Err: err}
	}

	var tag models.Tag
	if err := sqlx.GetContext(ctx, r.db, &tag, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_id", "tags")
	}

	return &tag, nil
}
