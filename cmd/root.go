// Package cmd implements the tasklist CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/clierr"
	"github.com/antopolskiy/tasklist/internal/config"
	"github.com/antopolskiy/tasklist/internal/output"
	"github.com/antopolskiy/tasklist/internal/storage"
	"github.com/antopolskiy/tasklist/internal/store"
	"github.com/antopolskiy/tasklist/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagConfig  string
	flagStorage string
	flagDSN     string
	flagNoColor bool
)

const logFileMode = 0o600

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "A small to-do list for the terminal",
	Long: `tasklist keeps a single ordered list of tasks. Add, complete, edit and
delete tasks from the command line, or run it without arguments for the
interactive UI. The list is stored in a JSON file by default, or in SQLite,
MySQL or Redis.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-task output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yml or its directory")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "storage driver: file, sqlite, mysql, redis, memory")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "storage DSN (path, MySQL DSN or Redis URL)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	os.Exit(reportError(os.Stdout, os.Stderr, err))
}

// reportError prints err as a JSON envelope (in JSON mode) or plain text and
// returns the process exit code.
func reportError(stdout, stderr io.Writer, err error) int {
	var cliErr *clierr.Error
	isCLI := errors.As(err, &cliErr)

	if flagJSON || os.Getenv(output.EnvOutput) == "json" {
		if isCLI {
			output.JSONError(stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			return cliErr.ExitCode()
		}
		output.JSONError(stdout, clierr.InternalError, err.Error(), nil)
		return 2 //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(stderr, "Error:", err)
	if isCLI {
		return cliErr.ExitCode()
	}
	return 1
}

// loadConfig resolves the config file, then applies .env and TASKLIST_*
// overrides, then the --storage and --dsn flags.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Resolve(configDirFlag(), cwd)
	if err != nil {
		return nil, configError(err)
	}

	env, err := config.ReadEnv(cfg.Dir())
	if err != nil {
		return nil, configError(err)
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, configError(err)
	}

	if flagStorage != "" {
		cfg.Storage.Driver = flagStorage
	}
	if flagDSN != "" {
		cfg.Storage.DSN = flagDSN
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

// configDirFlag returns the --config value as a directory.
func configDirFlag() string {
	if flagConfig == "" {
		return ""
	}
	if info, err := os.Stat(flagConfig); err == nil && !info.IsDir() {
		return filepath.Dir(flagConfig)
	}
	return flagConfig
}

func configError(err error) error {
	switch {
	case errors.Is(err, config.ErrNotFound):
		return clierr.Newf(clierr.InvalidConfig, "no config found in %s", flagConfig).
			WithDetails(map[string]any{"path": flagConfig})
	case errors.Is(err, config.ErrInvalid):
		return clierr.New(clierr.InvalidConfig, err.Error())
	}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return err
	}
	return clierr.New(clierr.InvalidConfig, err.Error())
}

// newLogger returns a text logger writing to log.file, or a discarding logger
// when no file is configured. The returned func closes the file.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	path := cfg.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir(), path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:mnd // directory permissions
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode) //nolint:gosec // path from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return logger.With(slog.String("driver", cfg.Storage.Driver)), func() { _ = f.Close() }, nil
}

// session bundles what a command needs to work on the list.
type session struct {
	cfg    *config.Config
	repo   *storage.Repository
	store  *store.Store
	logger *slog.Logger
	close  func()
}

// openSession loads the config, sets up logging and opens the store.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, clierr.New(clierr.InvalidConfig, err.Error())
	}

	repo, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	st, err := store.Open(ctx, repo, store.Options{ErrorTTL: cfg.ErrorTTLDuration(), Logger: logger})
	if err != nil {
		_ = repo.Close()
		closeLog()
		return nil, clierr.New(clierr.StorageError, err.Error())
	}

	return &session{
		cfg:    cfg,
		repo:   repo,
		store:  st,
		logger: logger,
		close: func() {
			if err := repo.Close(); err != nil {
				logger.Warn("closing storage failed", slog.Any("error", err))
			}
			closeLog()
		},
	}, nil
}

// storageError wraps a failed save so the CLI reports STORAGE_ERROR.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return err
	}
	return clierr.New(clierr.StorageError, err.Error())
}

// resolveTask finds the task an ID argument refers to.
func resolveTask(st *store.Store, ref string) (task.Task, error) {
	return task.Resolve(st.Tasks(), ref)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printResult writes a single-task mutation result.
func printResult(status, verb string, t task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.TaskResult{Status: status, ID: t.ID, Text: t.Text})
	}
	output.Messagef(os.Stdout, "%s %s: %s", verb, task.ShortID(t.ID), t.Text)
	return nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
