package renameviews

import (
	"errors"
	"fmt"
	"strings"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/ui"
)

// ID is the registry identifier for the rename command.
const ID = "rename-views"

const (
	// maxRenameAttempts bounds the uniqueness retry loop: the computed
	// name plus up to 19 sentinel retries.
	maxRenameAttempts = 20
	retrySentinel     = "*"
)

// Rule is the user-supplied renaming rule. Empty fields are no-ops.
type Rule struct {
	Prefix  string
	Find    string
	Replace string
	Suffix  string
}

// Apply computes the candidate name for oldName. An empty Find skips the
// replace step entirely; prefix and suffix always apply.
func (r Rule) Apply(oldName string) string {
	name := oldName
	if r.Find != "" {
		name = strings.ReplaceAll(name, r.Find, r.Replace)
	}
	return r.Prefix + name + r.Suffix
}

// Command renames the selected views with find/replace logic, guaranteeing
// each final name is unique among sibling views.
type Command struct {
	cfg command.Config
}

// New builds the command. Config keys prefix/find/replace/suffix preset
// the form defaults.
func New(cfg command.Config) (*Command, error) {
	return &Command{cfg: cfg}, nil
}

// Info implements command.Command.
func (c *Command) Info() command.Info {
	return command.Info{
		ID:          ID,
		Title:       "Rename Views",
		Description: "Rename views using find/replace logic with prefix and suffix.",
		Version:     "1.1",
		Doc:         docMarkdown,
	}
}

// Run implements command.Command.
func (c *Command) Run(ctx *command.Context) (command.Result, error) {
	views := selectedViews(ctx.Doc)

	// Fall back to the interactive picker when nothing is selected.
	if len(views) == 0 {
		picked, err := pickViews(ctx)
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return command.Result{Status: command.StatusFailed}, err
		}
		views = picked
	}
	if len(views) == 0 {
		msg := "No views selected. Please try again."
		if err := ctx.UI.Alert("Rename Views", msg); err != nil {
			return command.Result{Status: command.StatusFailed}, err
		}
		return command.Result{Status: command.StatusAborted, Message: msg}, nil
	}

	rule, err := c.askRule(ctx)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return command.Result{Status: command.StatusAborted, Message: "cancelled"}, nil
		}
		return command.Result{Status: command.StatusFailed}, err
	}

	// One scope covers every rename; per-view failures are handled
	// locally and never abort the whole batch.
	tx := ctx.Doc.Begin("Rename Views")
	defer tx.Rollback()

	var report []string
	renamed := 0
	var failed []string
	for _, view := range views {
		newName, err := renameWithRetry(tx, view, rule)
		if err != nil {
			ctx.Log.Printf("rename-views: %s: %v", view.Name, err)
			report = append(report, fmt.Sprintf("failed: %s: %v", view.Name, err))
			failed = append(failed, view.Name)
			continue
		}
		report = append(report, fmt.Sprintf("%s -> %s", view.Name, newName))
		renamed++
	}
	if err := tx.Commit(); err != nil {
		return command.Result{Status: command.StatusFailed}, fmt.Errorf("rename-views: commit: %w", err)
	}

	summary := fmt.Sprintf("Renamed %d of %d views.", renamed, len(views))
	if len(failed) > 0 {
		summary += fmt.Sprintf("\nFailed: %s", strings.Join(failed, ", "))
	}
	if err := ctx.UI.Alert("Rename Views", summary); err != nil {
		return command.Result{Status: command.StatusFailed}, err
	}
	return command.Result{
		Status:  command.StatusCompleted,
		Message: summary,
		Report:  report,
	}, nil
}

// renameWithRetry assigns rule.Apply(old) to the view, appending one
// sentinel character per naming collision, up to maxRenameAttempts total
// attempts. Only collisions are retried; any other error is returned
// as-is. Exhausting the bound is reported, not swallowed.
func renameWithRetry(tx doc.Transaction, view doc.Element, rule Rule) (string, error) {
	name := rule.Apply(view.Name)
	for attempt := 0; attempt < maxRenameAttempts; attempt++ {
		err := tx.RenameView(view.ID, name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, doc.ErrNameConflict) {
			return "", err
		}
		name += retrySentinel
	}
	return "", fmt.Errorf("no unique name found after %d attempts", maxRenameAttempts)
}

// selectedViews filters the current selection down to views.
func selectedViews(d doc.Document) []doc.Element {
	var views []doc.Element
	for _, id := range d.Selection() {
		if el, ok := d.Element(id); ok && el.IsView() {
			views = append(views, el)
		}
	}
	return views
}

// pickViews runs the interactive view picker over every view in the
// document. View names are unique, so names map back to elements safely.
func pickViews(ctx *command.Context) ([]doc.Element, error) {
	all := ctx.Doc.Views()
	if len(all) == 0 {
		return nil, nil
	}
	byName := make(map[string]doc.Element, len(all))
	names := make([]string, 0, len(all))
	for _, v := range all {
		byName[v.Name] = v
		names = append(names, v.Name)
	}
	picked, err := ctx.UI.PickMany("Select Views", names)
	if err != nil {
		return nil, err
	}
	views := make([]doc.Element, 0, len(picked))
	for _, name := range picked {
		if v, ok := byName[name]; ok {
			views = append(views, v)
		}
	}
	return views, nil
}

func (c *Command) askRule(ctx *command.Context) (Rule, error) {
	fields := []ui.Field{
		{Key: "prefix", Label: "Prefix", Default: c.cfg.String("prefix", "")},
		{Key: "find", Label: "Find", Default: c.cfg.String("find", "")},
		{Key: "replace", Label: "Replace", Default: c.cfg.String("replace", "")},
		{Key: "suffix", Label: "Suffix", Default: c.cfg.String("suffix", "")},
	}
	values, err := ctx.UI.AskForm("Renaming Rules", fields)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Prefix:  values["prefix"],
		Find:    values["find"],
		Replace: values["replace"],
		Suffix:  values["suffix"],
	}, nil
}
