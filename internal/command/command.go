// Package command defines the add-in command contract and the registry the
// host resolves commands from. A command is one user-invoked procedure:
// read selection, prompt for parameters, mutate the document inside a
// transaction, report results.
package command

import "fmt"

// Info describes a command's identity shown in menus and logs.
type Info struct {
	ID          string
	Title       string
	Description string
	Version     string
	// Doc is optional markdown shown in the command help view.
	Doc string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("command: id is required")
	}
	if i.Title == "" {
		return fmt.Errorf("command: title is required for %s", i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("command: version is required for %s", i.ID)
	}
	return nil
}

// Status enumerates command run outcomes.
type Status string

const (
	// StatusCompleted means the command ran and committed its mutations
	// (possibly with per-item failures listed in the report).
	StatusCompleted Status = "completed"
	// StatusAborted means a precondition failed or the user cancelled
	// before any mutation scope opened. The document is untouched.
	StatusAborted Status = "aborted"
	// StatusFailed means the command hit an unexpected error.
	StatusFailed Status = "failed"
)

// Result captures the outcome of a command execution.
type Result struct {
	Status  Status
	Message string
	// Report holds user-facing lines, e.g. one "old -> new" per rename.
	Report []string
}

// Mutated reports whether the run may have changed the document.
func (r Result) Mutated() bool {
	return r.Status == StatusCompleted
}

// Command is implemented by every add-in procedure.
type Command interface {
	Info() Info
	Run(ctx *Context) (Result, error)
}
