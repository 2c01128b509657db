package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID TEXT...",
	Short: "Replace a task's text",
	Long: `Replaces the text of a task, keeping its completion state and position.
Unlike add, edit does not reject text that matches another task.`,
	Args: cobra.MinimumNArgs(2), //nolint:mnd // ID and at least one word
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[1:], " ")
	if err := task.ValidateText(text); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	t, err := resolveTask(s.store, args[0])
	if err != nil {
		return err
	}

	s.store.BeginEdit(t.ID)
	s.store.SetEditBuffer(text)
	if err := s.store.SaveEdit(ctx); err != nil {
		return storageError(err)
	}

	t.Text = text
	return printResult("updated", "Updated task", t)
}
