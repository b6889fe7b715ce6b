// Package oracle implements the human-interaction collaborators: a
// terminal prompter for keyword questions, the external mesh viewer
// launcher, and an optional machine suggester.
package oracle

import "context"

// Prompter asks a question with a fixed ordered set of button labels
// and returns the index of the selected button. It may block
// indefinitely; cancellation is user-initiated, not timer-driven.
type Prompter interface {
	Prompt(ctx context.Context, message string, buttons []string) (int, error)
}
