package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/tasklist/internal/output"
	"github.com/antopolskiy/tasklist/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks in order, optionally narrowed to completed or incomplete ones.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", string(task.FilterAll), "all, completed or incomplete")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("filter")
	filter, err := task.ParseFilter(raw)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	s.store.SetFilter(filter)
	tasks := s.store.Visible()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, os.Stderr, tasks)
	default:
		output.TaskTable(os.Stdout, os.Stderr, tasks)
	}
	return nil
}
