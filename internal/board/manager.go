package board

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eleven-am/taskboard/internal/logger"
	"github.com/eleven-am/taskboard/internal/models"
	"github.com/eleven-am/taskboard/internal/store"
)

// ErrNotSubscribed is returned when unsubscribing a user from a tag they
// were never subscribed to.
var ErrNotSubscribed = errors.New("user is not subscribed to this board")

// Placeholder task created whenever a user joins a board.
const (
	DefaultTaskTitle       = "New Task"
	DefaultTaskDescription = "Add a new task to your new board."
)

var titleCaser = cases.Title(language.Und)

// NormalizeName title-cases a board name so "work" and "Work" resolve to
// the same tag.
func NormalizeName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// Manager handles board (tag) creation, subscription and removal.
type Manager struct {
	store *store.Store
	now   func() time.Time
}

// NewManager creates a board manager over the given store
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, now: time.Now}
}

// CreateOrSubscribe normalizes the board name, creates the tag if it does
// not exist, subscribes the user and seeds a default placeholder task.
// The whole operation runs in a single transaction so a crash cannot
// leave a subscribed-but-taskless board behind.
func (m *Manager) CreateOrSubscribe(ctx context.Context, user *models.User, name string) (*models.Tag, error) {
	normalized := NormalizeName(name)

	var tag *models.Tag
	err := m.store.WithTransaction(ctx, func(tx *store.Store) error {
		var err error
		tag, err = tx.Tags.ByName(ctx, normalized)
		if store.IsNotFound(err) {
			tag, err = tx.Tags.Create(ctx, normalized)
		}
		if err != nil {
			return err
		}

		created, err := tx.Subscriptions.Subscribe(ctx, user.ID, tag.ID)
		if err != nil {
			return err
		}
		if !created {
			logger.Board().Debug("already subscribed", "user_id", user.ID, "tag", tag.Name)
		}

		task := &models.Task{
			Title:       DefaultTaskTitle,
			Description: DefaultTaskDescription,
			Progress:    false,
			DateCreated: m.now(),
			CreatorID:   user.ID,
			TagID:       tag.ID,
		}
		return tx.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	logger.Board().Info("subscribed to board", "user_id", user.ID, "tag", tag.Name)
	return tag, nil
}

// Unsubscribe removes the caller's tasks under the tag and then the
// subscription itself, atomically. Other users' tasks under the same tag
// are untouched; the tag row persists even if nobody is left subscribed.
func (m *Manager) Unsubscribe(ctx context.Context, user *models.User, tagID int64) error {
	return m.store.WithTransaction(ctx, func(tx *store.Store) error {
		subscribed, err := tx.Subscriptions.Exists(ctx, user.ID, tagID)
		if err != nil {
			return err
		}
		if !subscribed {
			return ErrNotSubscribed
		}

		removed, err := tx.Tasks.DeleteByCreatorAndTag(ctx, user.ID, tagID)
		if err != nil {
			return err
		}

		if _, err := tx.Subscriptions.Unsubscribe(ctx, user.ID, tagID); err != nil {
			return err
		}

		logger.Board().Info("left board", "user_id", user.ID, "tag_id", tagID, "tasks_removed", removed)
		return nil
	})
}
