package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/eleven-am/taskboard/internal/logger"
)

// DBConfig holds database connection settings
type DBConfig struct {
	URL             string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// NewDBConfig returns a config with sensible pool defaults
func NewDBConfig(url string) *DBConfig {
	return &DBConfig{
		URL:             url,
		ConnMaxLifetime: 10 * time.Minute,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
	}
}

// Connect opens and pings a Postgres connection
func (cfg *DBConfig) Connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Store().Debug("connected to database")
	return db, nil
}

// Store bundles the repositories over a shared connection or transaction.
type Store struct {
	db sqlx.ExtContext

	Users         *UserRepo
	Tags          *TagRepo
	Tasks         *TaskRepo
	Subscriptions *SubscriptionRepo
}

// New creates a store bound to the given connection
func New(db *sqlx.DB) *Store {
	return newStore(db)
}

func newStore(db sqlx.ExtContext) *Store {
	return &Store{
		db:            db,
		Users:         &UserRepo{db: db},
		Tags:          &TagRepo{db: db},
		Tasks:         &TaskRepo{db: db},
		Subscriptions: &SubscriptionRepo{db: db},
	}
}

// DB returns the underlying connection, or nil when the store is
// transaction-scoped.
func (s *Store) DB() *sqlx.DB {
	db, ok := s.db.(*sqlx.DB)
	if !ok {
		return nil
	}
	return db
}

// WithTransaction executes fn within a transaction. The store passed to fn
// routes every repository call through that transaction. Rollback on error
// or panic, commit otherwise.
func (s *Store) WithTransaction(ctx context.Context, fn func(*Store) error) error {
	db, ok := s.db.(*sqlx.DB)
	if !ok {
		// Already inside a transaction; reuse it.
		return fn(s)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
