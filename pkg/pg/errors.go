package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, set PG_CONN_URL")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

// IsNotFoundError reports whether err means the query matched no rows.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
