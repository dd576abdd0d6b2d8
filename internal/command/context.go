package command

import (
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/journal"
	"github.com/armatureproject/armature/internal/logging"
	"github.com/armatureproject/armature/internal/ui"
)

// Context carries the injected collaborators into every command run.
// Commands receive everything explicitly; there is no ambient document or
// UI state bound at package scope.
type Context struct {
	Doc     doc.Document
	UI      ui.Prompter
	Log     *logging.Logger
	Journal *journal.Journal
}

// NewContext builds a Context for one invocation.
func NewContext(d doc.Document, prompter ui.Prompter) *Context {
	return &Context{Doc: d, UI: prompter}
}

// WithLogger attaches a logger.
func (c *Context) WithLogger(log *logging.Logger) *Context {
	clone := *c
	clone.Log = log
	return &clone
}

// WithJournal attaches an invocation journal.
func (c *Context) WithJournal(j *journal.Journal) *Context {
	clone := *c
	clone.Journal = j
	return &clone
}
