package pgstore

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
	ErrFailedToQuery            = errors.New("failed to query dictionary store")
	ErrFailedToImport           = errors.New("failed to import dictionary document")
)

// IsNotFoundError reports whether err means no row matched.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows)
}
