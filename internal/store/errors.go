package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrCartExists     = errors.New("user already has a cart")
	ErrValueTooLong   = errors.New("value too long for column")
)

// PostgreSQL SQLSTATE codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	stringTooLong       = "22001"
)

// wrap tags err with the calling function and folds pgx.ErrNoRows into
// ErrNotFound and over-long strings into ErrValueTooLong.
func wrap(fn string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", fn, ErrNotFound)
	}
	if code, _ := pgCode(err); code == stringTooLong {
		return fmt.Errorf("%s: %w", fn, ErrValueTooLong)
	}
	return fmt.Errorf("%s: %w", fn, err)
}

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
