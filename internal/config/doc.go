// Package config loads and merges the application configuration from
// multiple sources: an optional .env file, environment variables,
// command-line flags, and an optional JSON file. The merged result is
// validated before use and injected explicitly into the components that
// need it; there is no package-level configuration state.
package config
