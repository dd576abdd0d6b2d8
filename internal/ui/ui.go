// Package ui defines the dialog surface commands use to talk to the user.
// The terminal implementation lives in internal/tui; tests drive commands
// with the scripted prompter from this package.
package ui

import "errors"

// ErrCancelled is returned by every prompt when the user dismisses the
// dialog without answering. Commands treat it as "abort, no mutation".
var ErrCancelled = errors.New("ui: prompt cancelled")

// Field describes one text input in a multi-field form.
type Field struct {
	Key     string
	Label   string
	Default string
}

// Prompter is the blocking modal dialog toolkit offered by the host.
// Every call blocks until the user responds or cancels.
type Prompter interface {
	// Alert shows a modal message and waits for acknowledgement.
	Alert(title, message string) error
	// AskString asks for a single line of text, pre-filled with a default.
	AskString(title, prompt, defaultValue string) (string, error)
	// AskForm collects values for several labelled text fields at once.
	AskForm(title string, fields []Field) (map[string]string, error)
	// SelectFromList asks the user to choose one option by display name.
	SelectFromList(title string, options []string) (string, error)
	// PickMany asks the user to choose any number of options.
	PickMany(title string, options []string) ([]string, error)
}
