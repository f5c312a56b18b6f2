package config

import "errors"

var (
	// ErrMissingDatabaseDSN is returned by validation when no database
	// connection string was provided by any configuration source.
	ErrMissingDatabaseDSN = errors.New("database DSN is required")

	// ErrMissingTokenSignKey is returned by validation when no JWT signing
	// secret was provided by any configuration source.
	ErrMissingTokenSignKey = errors.New("token sign key is required")

	// ErrInvalidWorkerConfigs is returned by validation when worker timing
	// settings are negative.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs")
)
