package board

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskboard/internal/models"
	"github.com/eleven-am/taskboard/internal/store"
)

var frozen = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := NewManager(store.New(sqlx.NewDb(db, "postgres")))
	m.now = func() time.Time { return frozen }
	return m, mock
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Work", NormalizeName("work"))
	assert.Equal(t, "Work", NormalizeName("Work"))
	assert.Equal(t, "Work", NormalizeName("  work "))
	assert.Equal(t, "Weekly Groceries", NormalizeName("weekly groceries"))
}

func TestCreateOrSubscribe(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}

	expectDefaultTask := func(mock sqlmock.Sqlmock, tagID int64) {
		mock.ExpectQuery(`INSERT INTO tasks`).
			WithArgs(DefaultTaskTitle, DefaultTaskDescription, nil, false, frozen, int64(1), tagID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	}

	t.Run("creates a new board", func(t *testing.T) {
		m, mock := newTestManager(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
			WithArgs("Groceries").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`INSERT INTO tags \(name\) VALUES \(\$1\) RETURNING id`).
			WithArgs("Groceries").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectExec(`INSERT INTO subscriptions`).
			WithArgs(int64(1), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectDefaultTask(mock, 5)
		mock.ExpectCommit()

		tag, err := m.CreateOrSubscribe(context.Background(), user, "groceries")
		require.NoError(t, err)
		assert.Equal(t, int64(5), tag.ID)
		assert.Equal(t, "Groceries", tag.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("subscribes to an existing board", func(t *testing.T) {
		m, mock := newTestManager(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
			WithArgs("Work").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "Work"))
		mock.ExpectExec(`INSERT INTO subscriptions`).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectDefaultTask(mock, 7)
		mock.ExpectCommit()

		tag, err := m.CreateOrSubscribe(context.Background(), user, "WORK")
		require.NoError(t, err)
		assert.Equal(t, int64(7), tag.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls everything back", func(t *testing.T) {
		m, mock := newTestManager(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name FROM tags WHERE name = \$1`).
			WithArgs("Work").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "Work"))
		mock.ExpectExec(`INSERT INTO subscriptions`).
			WithArgs(int64(1), int64(7)).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		tag, err := m.CreateOrSubscribe(context.Background(), user, "Work")
		assert.Nil(t, tag)
		assert.Error(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnsubscribe(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}

	t.Run("removes the caller's tasks and the subscription", func(t *testing.T) {
		m, mock := newTestManager(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT user_id, tag_id, created_at FROM subscriptions WHERE tag_id = \$1 AND user_id = \$2`).
			WithArgs(int64(2), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "tag_id", "created_at"}).
				AddRow(int64(1), int64(2), frozen))
		mock.ExpectExec(`DELETE FROM tasks WHERE creator_id = \$1 AND tag_id = \$2`).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM subscriptions WHERE tag_id = \$1 AND user_id = \$2`).
			WithArgs(int64(2), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, m.Unsubscribe(context.Background(), user, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not subscribed is an error, not a silent no-op", func(t *testing.T) {
		m, mock := newTestManager(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT user_id, tag_id, created_at FROM subscriptions WHERE tag_id = \$1 AND user_id = \$2`).
			WithArgs(int64(9), int64(1)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := m.Unsubscribe(context.Background(), user, 9)
		assert.ErrorIs(t, err, ErrNotSubscribed)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
