// Package pgerr maps PostgreSQL driver errors onto the errs taxonomy.
package pgerr

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE of a duplicate key.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a duplicate key error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// Translate turns a duplicate key into errs.ValueIsInvalidError for param and returns any
// other error unchanged.
func Translate(err error, param string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return err
}
