package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Common errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrNotNull      = errors.New("not null constraint violation")
)

// Error provides detailed error information for a failed store operation
type Error struct {
	Op         string // Operation that failed
	Table      string // Table involved
	Err        error  // Underlying error
	Constraint string // Constraint name (if applicable)
	Column     string // Column name (if applicable)
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("store: %s", e.Op))

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("constraint=%s", e.Constraint))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ParsePostgresError converts driver errors to store errors
func ParsePostgresError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &Error{
				Op:         op,
				Table:      table,
				Err:        ErrDuplicateKey,
				Constraint: pqErr.Constraint,
			}
		case "23503": // foreign_key_violation
			return &Error{
				Op:         op,
				Table:      table,
				Err:        ErrForeignKey,
				Constraint: pqErr.Constraint,
			}
		case "23502": // not_null_violation
			return &Error{
				Op:     op,
				Table:  table,
				Err:    ErrNotNull,
				Column: pqErr.Column,
			}
		}
	}

	return &Error{Op: op, Table: table, Err: err}
}

// requireRows converts a zero-row write into ErrNotFound
func requireRows(result sql.Result, op, table string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return &Error{Op: op, Table: table, Err: err}
	}
	if rows == 0 {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}
	return nil
}

// IsDuplicate checks if an error is a unique constraint violation
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsNotFound checks if an error is a missing-row lookup
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetConstraintName extracts the constraint name from an error
func GetConstraintName(err error) string {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Constraint
	}
	return ""
}
