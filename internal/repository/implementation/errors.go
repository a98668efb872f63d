package implementation

import (
	"errors"
	"fmt"

	"interview-prep-be/internal/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// wrapError tags driver failures as persistence errors and keeps the
// Postgres SQLSTATE in the message when there is one.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.Persistence(fmt.Sprintf("%s (sqlstate %s)", op, pgErr.Code), err)
	}
	return apperror.Persistence(op, err)
}
