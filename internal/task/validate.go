package task

import (
	"strings"

	"github.com/antopolskiy/tasklist/internal/clierr"
)

// DuplicateMessage is the user-facing text shown when an add is rejected.
const DuplicateMessage = "Task already exists!"

// ValidateDuplicate returns a CLIError for a rejected duplicate add.
func ValidateDuplicate(text string) *clierr.Error {
	return clierr.New(clierr.DuplicateTask, DuplicateMessage).
		WithDetails(map[string]any{"text": text})
}

// ValidateTaskRef returns a CLIError for an unusable task ID argument.
func ValidateTaskRef(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidInput, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateText returns a CLIError when text is empty after trimming.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return clierr.New(clierr.InvalidInput, "task text must not be empty")
	}
	return nil
}
