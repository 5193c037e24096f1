package mongostore

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrFailedToQuery          = errors.New("failed to query dictionary collection")
	ErrFailedToImport         = errors.New("failed to import dictionary document")
	ErrFailedToCreateIndexes  = errors.New("failed to create dictionary indexes")
)
