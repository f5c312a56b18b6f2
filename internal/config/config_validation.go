package config

import "time"

// Fallbacks for values that have a sensible default and are therefore not
// required from any configuration source.
const (
	defaultHTTPAddress  = ":5000"
	defaultTokenIssuer  = "notes-server"
	defaultUploadsDir   = "uploads"
	defaultCleanupGrace = time.Hour
)

// applyDefaults fills in defaults for optional settings left unset by every
// configuration source. Required settings are left alone; validate reports
// them.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}

	if cfg.Storage.Files.UploadsDir == "" {
		cfg.Storage.Files.UploadsDir = defaultUploadsDir
	}

	if cfg.Workers.CleanupInterval > 0 && cfg.Workers.CleanupGrace == 0 {
		cfg.Workers.CleanupGrace = defaultCleanupGrace
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDatabaseDSN
	}

	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Workers.CleanupInterval < 0 || cfg.Workers.CleanupGrace < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
