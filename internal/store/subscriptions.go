package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskboard/internal/models"
)

// SubscriptionRepo provides access to the user↔tag subscription join table
type SubscriptionRepo struct {
	db sqlx.ExtContext
}

// Subscribe links a user to a tag. Re-subscribing an already-subscribed
// user is a no-op; returns true when a new link was created.
func (r *SubscriptionRepo) Subscribe(ctx context.Context, userID, tagID int64) (bool, error) {
	query, args, err := squirrel.Insert("subscriptions").
		Columns("user_id", "tag_id").
		Values(userID, tagID).
		Suffix("ON CONFLICT (user_id, tag_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, &Error{Op: "subscribe", Table: "subscriptions", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, ParsePostgresError(err, "subscribe", "subscriptions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, &Error{Op: "subscribe", Table: "subscriptions", Err: err}
	}

	return rows > 0, nil
}

// Unsubscribe removes the link between a user and a tag; returns false
// when the user was not subscribed in the first place.
func (r *SubscriptionRepo) Unsubscribe(ctx context.Context, userID, tagID int64) (bool, error) {
	query, args, err := squirrel.Delete("subscriptions").
		Where(squirrel.Eq{"user_id": userID, "tag_id": tagID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, &Error{Op: "unsubscribe", Table: "subscriptions", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, ParsePostgresError(err, "unsubscribe", "subscriptions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, &Error{Op: "unsubscribe", Table: "subscriptions", Err: err}
	}

	return rows > 0, nil
}

// Exists reports whether a user is subscribed to a tag
func (r *SubscriptionRepo) Exists(ctx context.Context, userID, tagID int64) (bool, error) {
	query, args, err := squirrel.Select("user_id", "tag_id", "created_at").
		From("subscriptions").
		Where(squirrel.Eq{"user_id": userID, "tag_id": tagID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, &Error{Op: "exists", Table: "subscriptions", Err: err}
	}

	var sub models.Subscription
	if err := sqlx.GetContext(ctx, r.db, &sub, query, args...); err != nil {
		parsed := ParsePostgresError(err, "exists", "subscriptions")
		if IsNotFound(parsed) {
			return false, nil
		}
		return false, parsed
	}

	return true, nil
}

// TagsByUser returns the tags a user is subscribed to, by name
func (r *SubscriptionRepo) TagsByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	query, args, err := squirrel.Select("t.id", "t.name").
		From("tags t").
		Join("subscriptions s ON s.tag_id = t.id").
		Where(squirrel.Eq{"s.user_id": userID}).
		OrderBy("t.name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "tags_by_user", Table: "subscriptions", Err: err}
	}

	var tags []models.Tag
	if err := sqlx.SelectContext(ctx, r.db, &tags, query, args...); err != nil {
		return nil, ParsePostgresError(err, "tags_by_user", "subscriptions")
	}

	return tags, nil
}

// TagByName resolves a tag name within a user's subscription set
func (r *SubscriptionRepo) TagByName(ctx context.Context, userID int64, name string) (*models.Tag, error) {
	query, args, err := squirrel.Select("t.id", "t.name").
		From("tags t").
		Join("subscriptions s ON s.tag_id = t.id").
		Where(squirrel.Eq{"s.user_id": userID, "t.name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "tag_by_name", Table: "subscriptions", Err: err}
	}

	var tag models.Tag
	if err := sqlx.GetContext(ctx, r.db, &tag, query, args...); err != nil {
		return nil, ParsePostgresError(err, "tag_by_name", "subscriptions")
	}

	return &tag, nil
}
