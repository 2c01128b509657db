package cmd

import (
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion",
	Long: `Marks an incomplete task as done, or reopens a completed one. ID may be
any unique prefix of the task ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
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
	if err := s.store.Toggle(ctx, t.ID); err != nil {
		return storageError(err)
	}

	t.Completed = !t.Completed
	if t.Completed {
		return printResult("completed", "Completed task", t)
	}
	return printResult("reopened", "Reopened task", t)
}
