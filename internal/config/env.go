package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ReadEnv returns the process environment layered over the optional .env file
// in dir. Process variables win over the file.
func ReadEnv(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, EnvFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", EnvFileName, err)
		}
		env = map[string]string{}
	}
	for _, k := range []string{EnvDriver, EnvDSN, EnvKey, EnvLogFile, EnvLogLevel} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides config fields from TASKLIST_* variables and re-validates.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvDriver]; v != "" {
		c.Storage.Driver = v
	}
	if v := env[EnvDSN]; v != "" {
		c.Storage.DSN = v
	}
	if v := env[EnvKey]; v != "" {
		c.Storage.Key = v
	}
	if v := env[EnvLogFile]; v != "" {
		c.Log.File = v
	}
	if v := env[EnvLogLevel]; v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}
