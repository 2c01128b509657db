package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add TEXT...",
	Aliases: []string{"create", "new"},
	Short:   "Add a task",
	Long: `Appends a task to the end of the list. Arguments are joined with spaces.
Adding text that already exists (ignoring case) fails with DUPLICATE_TASK.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if err := task.ValidateText(text); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if _, err := s.store.Add(ctx, text); err != nil {
		return storageError(err)
	}

	tasks := s.store.Tasks()
	return printResult("added", "Added task", tasks[len(tasks)-1])
}
