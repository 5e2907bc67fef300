// Package prompt renders the interactive questions the self-update
// workflow asks before it mutates any state.
package prompt

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is needed but no
// terminal is attached.
var ErrNotInteractive = errors.New("interactive prompt required but no terminal is attached")

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// UI is the interaction surface the self-update workflow depends on.
type UI interface {
	// Select asks the user to pick one of options. value carries the
	// preselected default in and the choice out.
	Select(title string, options []string, value *string) error

	// Confirm asks a yes/no question.
	Confirm(title string, value *bool) error
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
