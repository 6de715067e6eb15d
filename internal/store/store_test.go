package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store backed by sqlmock
func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(sqlx.NewDb(db, "postgres")), mock
}

func TestWithTransactionCommits(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.WithTransaction(context.Background(), func(tx *Store) error {
		return tx.Tasks.Delete(context.Background(), 7)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	st, mock := newTestStore(t)

	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := st.WithTransaction(context.Background(), func(tx *Store) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionNested(t *testing.T) {
	st, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The inner WithTransaction must reuse the outer transaction rather
	// than trying to open a second one.
	err := st.WithTransaction(context.Background(), func(tx *Store) error {
		return tx.WithTransaction(context.Background(), func(inner *Store) error {
			return inner.Tasks.Delete(context.Background(), 3)
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
