package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskboard/internal/models"
)

func TestUserCreate(t *testing.T) {
	st, mock := newTestStore(t)
	now := time.Now()

	t.Run("assigns generated id and timestamp", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users \(username,email,password_hash\) VALUES \(\$1,\$2,\$3\) RETURNING id, created_at`).
			WithArgs("alice", "a@x.com", "hashed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

		user := &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}
		err := st.Users.Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, now, user.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrDuplicateKey", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("bob", "a@x.com", "other-hash").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uk_users_email"})

		user := &models.User{Username: "bob", Email: "a@x.com", PasswordHash: "other-hash"}
		err := st.Users.Create(context.Background(), user)
		require.Error(t, err)
		assert.True(t, IsDuplicate(err))
		assert.Equal(t, "uk_users_email", GetConstraintName(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserByEmail(t *testing.T) {
	st, mock := newTestStore(t)
	now := time.Now()

	t.Run("existing user", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
				AddRow(int64(1), "alice", "a@x.com", "hashed", now))

		user, err := st.Users.ByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = \$1`).
			WithArgs("nobody@x.com").
			WillReturnError(sql.ErrNoRows)

		user, err := st.Users.ByEmail(context.Background(), "nobody@x.com")
		assert.Nil(t, user)
		assert.True(t, IsNotFound(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserByID(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	user, err := st.Users.ByID(context.Background(), 42)
	assert.Nil(t, user)
	assert.True(t, IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
