// Package config handles tasklist configuration.
package config

// Default values.
var (
	DefaultDir     = ".tasklist"
	DefaultTitle   = "To-Do List"
	DefaultDriver  = DriverFile
	DefaultKey     = "todos"
	DefaultTTL     = "2s"
	DefaultLevel   = "info"
	DefaultAppName = "tasklist"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Drivers lists every supported storage driver.
var Drivers = []string{DriverFile, DriverSQLite, DriverMySQL, DriverRedis, DriverMemory}

const (
	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"

	// EnvFileName is the optional dotenv file read from the working directory.
	EnvFileName = ".env"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)

// Environment variables that override the config file.
const (
	EnvDriver   = "TASKLIST_STORAGE_DRIVER"
	EnvDSN      = "TASKLIST_STORAGE_DSN"
	EnvKey      = "TASKLIST_STORAGE_KEY"
	EnvLogFile  = "TASKLIST_LOG_FILE"
	EnvLogLevel = "TASKLIST_LOG_LEVEL"
)
