package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskboard/internal/models"
)

var taskColumns = []string{"id", "title", "description", "due_date", "progress", "date_created", "creator_id", "tag_id"}

// TaskRepo provides access to the tasks table
type TaskRepo struct {
	db sqlx.ExtContext
}

// Create inserts a new task and fills in the generated ID
func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	query, args, err := squirrel.Insert("tasks").
		Columns("title", "description", "due_date", "progress", "date_created", "creator_id", "tag_id").
		Values(task.Title, task.Description, task.DueDate, task.Progress, task.DateCreated, task.CreatorID, task.TagID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &Error{Op: "create", Table: "tasks", Err: err}
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&task.ID); err != nil {
		return ParsePostgresError(err, "create", "tasks")
	}

	return nil
}

// ByID looks a task up by primary key
func (r *TaskRepo) ByID(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_id", Table: "tasks", Err: err}
	}

	var task models.Task
	if err := sqlx.GetContext(ctx, r.db, &task, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_id", "tasks")
	}

	return &task, nil
}

// Update overwrites the mutable fields of a task. Progress and
// date_created are deliberately left untouched.
func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	query, args, err := squirrel.Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("due_date", task.DueDate).
		Set("tag_id", task.TagID).
		Where(squirrel.Eq{"id": task.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &Error{Op: "update", Table: "tasks", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ParsePostgresError(err, "update", "tasks")
	}

	return requireRows(result, "update", "tasks")
}

// ToggleProgress flips the progress flag of a task
func (r *TaskRepo) ToggleProgress(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE tasks SET progress = NOT progress WHERE id = $1", id)
	if err != nil {
		return ParsePostgresError(err, "toggle_progress", "tasks")
	}

	return requireRows(result, "toggle_progress", "tasks")
}

// Delete removes a task by primary key
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &Error{Op: "delete", Table: "tasks", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ParsePostgresError(err, "delete", "tasks")
	}

	return requireRows(result, "delete", "tasks")
}

// ByCreator returns every task owned by a user, oldest first
func (r *TaskRepo) ByCreator(ctx context.Context, creatorID int64) ([]models.Task, error) {
	query, args, err := squirrel.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"creator_id": creatorID}).
		OrderBy("date_created", "id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, &Error{Op: "by_creator", Table: "tasks", Err: err}
	}

	var tasks []models.Task
	if err := sqlx.SelectContext(ctx, r.db, &tasks, query, args...); err != nil {
		return nil, ParsePostgresError(err, "by_creator", "tasks")
	}

	return tasks, nil
}

// DeleteByCreatorAndTag removes one user's tasks under a tag, leaving other
// users' tasks under the same tag untouched. Returns the number removed.
func (r *TaskRepo) DeleteByCreatorAndTag(ctx context.Context, creatorID, tagID int64) (int64, error) {
	query, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"creator_id": creatorID, "tag_id": tagID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, &Error{Op: "delete_by_creator_and_tag", Table: "tasks", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ParsePostgresError(err, "delete_by_creator_and_tag", "tasks")
	}

	return result.RowsAffected()
}
