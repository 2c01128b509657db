package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/tasklist/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no tasklist config found")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the tasklist configuration.
type Config struct {
	Version  int           `yaml:"version"`
	Title    string        `yaml:"title"`
	ErrorTTL string        `yaml:"error_ttl"`
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects the persisted slot.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn,omitempty"`
	Key    string `yaml:"key"`
}

// LogConfig controls the structured debug log.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:  CurrentVersion,
		Title:    DefaultTitle,
		ErrorTTL: DefaultTTL,
		Storage: StorageConfig{
			Driver: DefaultDriver,
			Key:    DefaultKey,
		},
		Log: LogConfig{Level: DefaultLevel},
	}
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StoragePath returns the location of a file-based slot: the DSN when set
// (relative to the config directory), otherwise a default inside it.
func (c *Config) StoragePath() string {
	dsn := c.Storage.DSN
	switch {
	case dsn == ":memory:":
		return dsn
	case dsn != "":
		if filepath.IsAbs(dsn) {
			return dsn
		}
		return filepath.Join(c.dir, dsn)
	case c.Storage.Driver == DriverSQLite:
		return filepath.Join(c.dir, DefaultAppName+".db")
	default:
		return filepath.Join(c.dir, c.Storage.Key+".json")
	}
}

// ErrorTTLDuration parses error_ttl, falling back to the default.
func (c *Config) ErrorTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.ErrorTTL)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTTL)
	}
	return d
}

// LogLevel parses log.level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if !contains(Drivers, c.Storage.Driver) {
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage.key is required", ErrInvalid)
	}
	if (c.Storage.Driver == DriverMySQL || c.Storage.Driver == DriverRedis) && c.Storage.DSN == "" {
		return fmt.Errorf("%w: storage.dsn is required for driver %q", ErrInvalid, c.Storage.Driver)
	}
	d, err := time.ParseDuration(c.ErrorTTL)
	if err != nil {
		return fmt.Errorf("%w: invalid error_ttl %q: %w", ErrInvalid, c.ErrorTTL, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: error_ttl must be positive", ErrInvalid)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: invalid log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(c.dir, dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates the config in the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so omitted fields keep sensible values.
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a default config in dir. It refuses to overwrite one.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.ConfigExists, "config already exists in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}
	cfg := NewDefault()
	cfg.dir = absDir
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindDir walks upward from startDir looking for a directory containing
// .tasklist/config.yml. Returns the absolute path to the .tasklist directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// UserDir returns the per-user directory used when no config file exists.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, DefaultAppName), nil
}

// Resolve finds the effective config. An explicit dir must contain a config
// file; otherwise the nearest .tasklist directory is used, and failing that
// the defaults rooted at the per-user directory.
func Resolve(explicitDir, cwd string) (*Config, error) {
	if explicitDir != "" {
		return Load(explicitDir)
	}

	dir, err := FindDir(cwd)
	if err == nil {
		return Load(dir)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	userDir, err := UserDir()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(userDir)
	if errors.Is(err, ErrNotFound) {
		cfg = NewDefault()
		cfg.dir = userDir
		return cfg, nil
	}
	return cfg, err
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
