package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// dotEnvFile is the conventional local-development environment file loaded
// before the process environment is parsed. Deployments are expected to set
// real environment variables instead.
const dotEnvFile = ".env"

// loadDotEnv loads the .env file from the working directory into the process
// environment. A missing file is not an error; any other read or parse
// failure is.
func loadDotEnv() error {
	if _, err := os.Stat(dotEnvFile); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(dotEnvFile); err != nil {
		return fmt.Errorf("error loading %s file: %w", dotEnvFile, err)
	}

	return nil
}
