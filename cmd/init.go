package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/config"
	"github.com/antopolskiy/tasklist/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tasklist config in the current directory",
	Long: `Writes .tasklist/config.yml with default settings. Commands run in this
directory or below use it instead of the per-user config.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("dir", "", "directory to create .tasklist in (default: current directory)")
	initCmd.Flags().String("title", "", "title shown in the interactive UI")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	base, _ := cmd.Flags().GetString("dir")
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		base = cwd
	}
	dir := filepath.Join(base, config.DefaultDir)

	cfg, err := config.Init(dir)
	if err != nil {
		return configError(err)
	}

	changed := false
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		cfg.Title = title
		changed = true
	}
	if flagStorage != "" {
		cfg.Storage.Driver = flagStorage
		changed = true
	}
	if flagDSN != "" {
		cfg.Storage.DSN = flagDSN
		changed = true
	}
	if changed {
		if err := cfg.Validate(); err != nil {
			_ = os.Remove(cfg.ConfigPath())
			return configError(err)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "initialized",
			"dir":    cfg.Dir(),
			"driver": cfg.Storage.Driver,
		})
	}
	output.Messagef(os.Stdout, "Initialized tasklist in %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.Storage.Driver, cfg.StoragePath())
	return nil
}
