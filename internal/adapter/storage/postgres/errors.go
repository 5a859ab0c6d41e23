package postgres

import (
	"errors"

	"piggy-bank/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// mapConstraintErr translates a unique-violation SQLSTATE into the
// repository-level sentinel; other errors pass through unchanged.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ports.ErrUniqueViolation
	}
	return err
}
