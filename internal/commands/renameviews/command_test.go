package renameviews

import (
	"strings"
	"testing"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/ui"
)

func newContext(d doc.Document, script *ui.Script) *command.Context {
	return command.NewContext(d, script)
}

func run(t *testing.T, d doc.Document, script *ui.Script) command.Result {
	t.Helper()
	cmd, err := New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := cmd.Run(newContext(d, script))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result
}

func ruleForm(prefix, find, replace, suffix string) map[string]string {
	return map[string]string{
		"prefix":  prefix,
		"find":    find,
		"replace": replace,
		"suffix":  suffix,
	}
}

func viewName(t *testing.T, d doc.Document, id doc.ElementID) string {
	t.Helper()
	el, ok := d.Element(id)
	if !ok {
		t.Fatalf("element %s missing", id)
	}
	return el.Name
}

func TestRenameAppliesRule(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "FloorPlan 1")
	d.SetSelection("v1")

	script := ui.NewScript().WillSubmit(ruleForm("L-", "FloorPlan", "Level", ""))
	result := run(t, d, script)

	if result.Status != command.StatusCompleted {
		t.Fatalf("status: %s (%s)", result.Status, result.Message)
	}
	if got := viewName(t, d, "v1"); got != "L-Level 1" {
		t.Fatalf("got %q want %q", got, "L-Level 1")
	}
	if len(result.Report) == 0 || result.Report[0] != "FloorPlan 1 -> L-Level 1" {
		t.Fatalf("report: %v", result.Report)
	}
}

func TestRenameFindAbsentStillAppliesAffixes(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "Section A")
	d.SetSelection("v1")

	script := ui.NewScript().WillSubmit(ruleForm("pre-", "FloorPlan", "Level", "-suf"))
	run(t, d, script)

	if got := viewName(t, d, "v1"); got != "pre-Section A-suf" {
		t.Fatalf("got %q", got)
	}
}

func TestRenameEmptyFindIsNoOpReplace(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "Plan")
	d.SetSelection("v1")

	script := ui.NewScript().WillSubmit(ruleForm("X-", "", "ignored", ""))
	run(t, d, script)

	if got := viewName(t, d, "v1"); got != "X-Plan" {
		t.Fatalf("empty find must skip replacement, got %q", got)
	}
}

func TestRenameConflictAppendsSentinels(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "Level 1")
	d.AddView("v2", "Level 1*")
	d.AddView("v3", "FloorPlan 1")
	d.SetSelection("v3")

	script := ui.NewScript().WillSubmit(ruleForm("", "FloorPlan", "Level", ""))
	result := run(t, d, script)

	// "Level 1" and "Level 1*" are taken; the second retry lands.
	if got := viewName(t, d, "v3"); got != "Level 1**" {
		t.Fatalf("got %q want %q", got, "Level 1**")
	}
	if result.Report[0] != "FloorPlan 1 -> Level 1**" {
		t.Fatalf("report: %v", result.Report)
	}
}

func TestRenameRetryExhaustionIsReported(t *testing.T) {
	d := doc.NewMemDocument("test")
	name := "Taken"
	for i := 0; i < maxRenameAttempts; i++ {
		d.AddView(doc.ElementID("blocker-"+strings.Repeat("i", i+1)), name)
		name += retrySentinel
	}
	d.AddView("victim", "Source")
	d.SetSelection("victim")

	script := ui.NewScript().WillSubmit(ruleForm("", "Source", "Taken", ""))
	result := run(t, d, script)

	if result.Status != command.StatusCompleted {
		t.Fatalf("status: %s", result.Status)
	}
	if got := viewName(t, d, "victim"); got != "Source" {
		t.Fatalf("exhausted rename must keep the old name, got %q", got)
	}
	if !strings.Contains(result.Message, "Failed: Source") {
		t.Fatalf("exhaustion must be surfaced in the summary: %q", result.Message)
	}
}

func TestRenameCancelledFormMutatesNothing(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "FloorPlan 1")
	d.SetSelection("v1")

	script := ui.NewScript().WillCancel()
	result := run(t, d, script)

	if result.Status != command.StatusAborted {
		t.Fatalf("status: %s", result.Status)
	}
	if got := viewName(t, d, "v1"); got != "FloorPlan 1" {
		t.Fatalf("cancel must not mutate, got %q", got)
	}
}

func TestRenameFallsBackToPicker(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "FloorPlan 1")
	d.AddView("v2", "FloorPlan 2")
	// Nothing selected.

	script := ui.NewScript().
		WillPick("FloorPlan 2").
		WillSubmit(ruleForm("", "FloorPlan", "Level", ""))
	run(t, d, script)

	if got := viewName(t, d, "v1"); got != "FloorPlan 1" {
		t.Fatalf("unpicked view must keep its name, got %q", got)
	}
	if got := viewName(t, d, "v2"); got != "Level 2" {
		t.Fatalf("picked view: got %q", got)
	}
}

func TestRenameNoViewsAborts(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "FloorPlan 1")

	// Picker returns an empty selection.
	script := ui.NewScript().WillPick()
	result := run(t, d, script)

	if result.Status != command.StatusAborted {
		t.Fatalf("status: %s", result.Status)
	}
	if len(script.Alerts) == 0 || !strings.Contains(script.Alerts[0], "No views selected") {
		t.Fatalf("alerts: %v", script.Alerts)
	}
}

func TestRenameBatchCollisionInsideOneScope(t *testing.T) {
	d := doc.NewMemDocument("test")
	d.AddView("v1", "Plan A")
	d.AddView("v2", "Plan A2")
	d.SetSelection("v1", "v2")

	// Stripping "2" maps both views to "Plan A"; the second collides with
	// the first inside the same scope and picks up a sentinel.
	script := ui.NewScript().WillSubmit(ruleForm("", "2", "", ""))
	run(t, d, script)

	if got := viewName(t, d, "v1"); got != "Plan A" {
		t.Fatalf("v1: %q", got)
	}
	if got := viewName(t, d, "v2"); got != "Plan A*" {
		t.Fatalf("v2: %q", got)
	}
}

func TestRuleApply(t *testing.T) {
	rule := Rule{Prefix: "L-", Find: "FloorPlan", Replace: "Level", Suffix: ""}
	if got := rule.Apply("FloorPlan 1"); got != "L-Level 1" {
		t.Fatalf("got %q", got)
	}
	empty := Rule{}
	if got := empty.Apply("Name"); got != "Name" {
		t.Fatalf("all-empty rule must be identity, got %q", got)
	}
}
