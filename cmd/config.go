package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/clierr"
	"github.com/antopolskiy/tasklist/internal/config"
	"github.com/antopolskiy/tasklist/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify the configuration",
	Long: `Shows the effective configuration (after .env, TASKLIST_* variables and
flags), gets a single key, or sets a writable key in config.yml.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string)
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"title": {
			get: func(c *config.Config) any { return c.Title },
			set: func(c *config.Config, v string) { c.Title = v },
		},
		"error_ttl": {
			get: func(c *config.Config) any { return c.ErrorTTL },
			set: func(c *config.Config, v string) { c.ErrorTTL = v },
		},
		"storage.driver": {
			get: func(c *config.Config) any { return c.Storage.Driver },
			set: func(c *config.Config, v string) { c.Storage.Driver = v },
		},
		"storage.dsn": {
			get: func(c *config.Config) any { return c.Storage.DSN },
			set: func(c *config.Config, v string) { c.Storage.DSN = v },
		},
		"storage.key": {
			get: func(c *config.Config) any { return c.Storage.Key },
			set: func(c *config.Config, v string) { c.Storage.Key = v },
		},
		"storage.path": {
			get: func(c *config.Config) any { return c.StoragePath() },
		},
		"log.file": {
			get: func(c *config.Config) any { return c.Log.File },
			set: func(c *config.Config, v string) { c.Log.File = v },
		},
		"log.level": {
			get: func(c *config.Config) any { return c.Log.Level },
			set: func(c *config.Config, v string) { c.Log.Level = v },
		},
	}
}

func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"title",
		"error_ttl",
		"storage.driver",
		"storage.dsn",
		"storage.key",
		"storage.path",
		"log.file",
		"log.level",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-16s %v\n", key, accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, ok := configAccessors()[args[0]]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", args[0])
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, val)
	return nil
}

// runConfigSet edits the file itself, so environment and flag overrides are
// not applied before saving.
func runConfigSet(_ *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Resolve(configDirFlag(), cwd)
	if err != nil {
		return configError(err)
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if acc.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	acc.set(cfg, value)
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}
