package models

import (
	"time"
)

// User represents a registered account. The password is only ever stored
// as a bcrypt hash.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Tag represents a board: a named category users subscribe to. Names are
// stored title-cased and are globally unique.
type Tag struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Task belongs to exactly one creator and one tag. DateCreated is set
// server-side at creation and never changes afterwards.
type Task struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	DueDate     *time.Time `db:"due_date"`
	Progress    bool       `db:"progress"`
	DateCreated time.Time  `db:"date_created"`
	CreatorID   int64      `db:"creator_id"`
	TagID       int64      `db:"tag_id"`
}

// Subscription links a user to a tag. The composite primary key makes
// re-subscribing a no-op at the database level.
type Subscription struct {
	UserID    int64     `db:"user_id"`
	TagID     int64     `db:"tag_id"`
	CreatedAt time.Time `db:"created_at"`
}
