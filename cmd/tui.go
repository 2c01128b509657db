package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/storage"
	"github.com/antopolskiy/tasklist/internal/tui"
	"github.com/antopolskiy/tasklist/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Long: `Launches the interactive terminal UI. With the file backend the list
live-reloads when another process changes it.

Press a to add a task, space to toggle it, e to edit, d to delete and ? for help.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	model := tui.New(ctx, s.store, s.cfg.Title)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	go startTUIWatcher(ctx, s, p.Send)

	_, err = p.Run()
	return err
}

// startTUIWatcher sends tui.ReloadMsg through send whenever the slot file
// changes on disk. It returns when ctx is done.
func startTUIWatcher(ctx context.Context, s *session, send func(tea.Msg)) {
	paths := s.repo.WatchPaths()
	if len(paths) == 0 {
		return
	}
	w, err := watcher.New(paths, func() {
		send(tui.ReloadMsg{})
	})
	if err != nil {
		s.logger.Warn("live reload disabled", slog.Any("error", err))
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()

	if fs, ok := s.repo.Slot().(*storage.FileSlot); ok {
		w.OnlyNames(filepath.Base(fs.Path()))
	}
	w.Run(ctx, func(err error) {
		s.logger.Warn("watcher error", slog.Any("error", err))
		send(tui.ErrMsg{Err: err})
	})
}
