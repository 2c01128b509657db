package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/antopolskiy/tasklist/internal/clierr"
	"github.com/antopolskiy/tasklist/internal/config"
)

// OpenSlot creates the slot selected by cfg.Storage.
func OpenSlot(ctx context.Context, cfg *config.Config) (Slot, error) {
	key := cfg.Storage.Key
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return NewFileSlot(cfg.StoragePath())
	case config.DriverSQLite:
		return NewSQLiteSlot(ctx, cfg.StoragePath(), key)
	case config.DriverMySQL:
		return NewMySQLSlot(ctx, cfg.Storage.DSN, key)
	case config.DriverRedis:
		return NewRedisSlot(ctx, cfg.Storage.DSN, key)
	case config.DriverMemory:
		return NewMemorySlot(), nil
	default:
		return nil, clierr.Newf(clierr.InvalidConfig, "unknown storage driver %q", cfg.Storage.Driver).
			WithDetails(map[string]any{"driver": cfg.Storage.Driver, "allowed": config.Drivers})
	}
}

// Open creates the configured slot and wraps it in a Repository.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Repository, error) {
	slot, err := OpenSlot(ctx, cfg)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return nil, cliErr
	}
	if err != nil {
		return nil, clierr.Newf(clierr.StorageError, "opening %s storage: %v", cfg.Storage.Driver, err).
			WithDetails(map[string]any{"driver": cfg.Storage.Driver})
	}
	return NewRepository(slot, logger), nil
}
