package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/antopolskiy/tasklist/internal/clierr"
	"github.com/antopolskiy/tasklist/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Removes a task from the list. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

// stdinIsTerminal reports whether stdin can answer a prompt. Replaced in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// promptInput is where confirmation answers are read from.
var promptInput io.Reader = os.Stdin

func init() {
	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	force, _ := cmd.Flags().GetBool("force")

	// Require confirmation in TTY mode unless --force.
	if !force {
		if !stdinIsTerminal() {
			return clierr.New(clierr.InvalidInput,
				"cannot prompt for confirmation (not a terminal); use --force")
		}
		fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", task.ShortID(t.ID), t.Text)
		answer, _ := bufio.NewReader(promptInput).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if err := s.store.Delete(ctx, t.ID); err != nil {
		return storageError(err)
	}
	return printResult("deleted", "Deleted task", t)
}
