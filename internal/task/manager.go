package task

import (
	"context"
	"errors"
	"time"

	"github.com/eleven-am/taskboard/internal/board"
	"github.com/eleven-am/taskboard/internal/logger"
	"github.com/eleven-am/taskboard/internal/models"
	"github.com/eleven-am/taskboard/internal/store"
)

var (
	// ErrUnknownTag is returned when the requested tag is not among the
	// caller's subscriptions.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrForbidden is returned when a task belongs to a different user.
	ErrForbidden = errors.New("task belongs to another user")
)

// Input carries the user-editable fields of a task.
type Input struct {
	Title       string
	Description string
	DueDate     *time.Time
	TagName     string
}

// Manager handles task CRUD scoped to a user's subscriptions.
type Manager struct {
	store *store.Store
	now   func() time.Time
}

// NewManager creates a task manager over the given store
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, now: time.Now}
}

// resolveTag maps a tag name to a tag within the user's subscription set
func (m *Manager) resolveTag(ctx context.Context, st *store.Store, user *models.User, name string) (*models.Tag, error) {
	tag, err := st.Subscriptions.TagByName(ctx, user.ID, board.NormalizeName(name))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUnknownTag
		}
		return nil, err
	}
	return tag, nil
}

// Create adds a task under one of the user's subscribed tags. Progress
// starts false and the creation date is set server-side.
func (m *Manager) Create(ctx context.Context, user *models.User, input Input) (*models.Task, error) {
	tag, err := m.resolveTag(ctx, m.store, user, input.TagName)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Progress:    false,
		DateCreated: m.now(),
		CreatorID:   user.ID,
		TagID:       tag.ID,
	}

	if err := m.store.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	logger.Task().Debug("created task", "task_id", task.ID, "user_id", user.ID, "tag", tag.Name)
	return task, nil
}

// Get loads a task the user owns; used to pre-fill the edit form.
func (m *Manager) Get(ctx context.Context, user *models.User, taskID int64) (*models.Task, error) {
	task, err := m.store.Tasks.ByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatorID != user.ID {
		return nil, ErrForbidden
	}
	return task, nil
}

// TagOf returns the tag a task currently lives under
func (m *Manager) TagOf(ctx context.Context, t *models.Task) (*models.Tag, error) {
	return m.store.Tags.ByID(ctx, t.TagID)
}

// Edit overwrites the title, description, due date and tag of an existing
// task. Progress and creation date are untouched. Only the creator may
// edit a task.
func (m *Manager) Edit(ctx context.Context, user *models.User, taskID int64, input Input) (*models.Task, error) {
	var task *models.Task
	err := m.store.WithTransaction(ctx, func(tx *store.Store) error {
		var err error
		task, err = tx.Tasks.ByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.CreatorID != user.ID {
			return ErrForbidden
		}

		tag, err := m.resolveTag(ctx, tx, user, input.TagName)
		if err != nil {
			return err
		}

		task.Title = input.Title
		task.Description = input.Description
		task.DueDate = input.DueDate
		task.TagID = tag.ID

		return tx.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ToggleProgress flips the done flag of a task owned by the user
func (m *Manager) ToggleProgress(ctx context.Context, user *models.User, taskID int64) error {
	return m.store.WithTransaction(ctx, func(tx *store.Store) error {
		task, err := tx.Tasks.ByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.CreatorID != user.ID {
			return ErrForbidden
		}

		return tx.Tasks.ToggleProgress(ctx, taskID)
	})
}

// Delete removes a task owned by the user
func (m *Manager) Delete(ctx context.Context, user *models.User, taskID int64) error {
	return m.store.WithTransaction(ctx, func(tx *store.Store) error {
		task, err := tx.Tasks.ByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.CreatorID != user.ID {
			return ErrForbidden
		}

		return tx.Tasks.Delete(ctx, taskID)
	})
}
