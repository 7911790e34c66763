package cli

import (
	"errors"

	"frameflow-cli/internal/ai"
)

// describeError prefers the short user-facing text for AI failures and keeps the detail.
func describeError(err error) string {
	var ge *ai.GenerationError
	if errors.As(err, &ge) {
		return ge.UserMessage() + " (" + ge.Error() + ")"
	}
	return err.Error()
}
