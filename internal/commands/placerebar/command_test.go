package placerebar

import (
	"math"
	"strings"
	"testing"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/geom"
	"github.com/armatureproject/armature/internal/ui"
)

const tol = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func testDocument() *doc.MemDocument {
	d := doc.NewMemDocument("test")
	d.AddWall("w1", doc.WallBasic, geom.BoundingBox{
		Min: geom.XYZ{X: 0, Y: 0, Z: 0},
		Max: geom.XYZ{X: 1, Y: 0.2, Z: 2},
	})
	d.AddRebarType("rt10", "10M")
	d.SetSelection("w1")
	return d
}

func run(t *testing.T, d doc.Document, script *ui.Script) command.Result {
	t.Helper()
	cmd, err := New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := cmd.Run(command.NewContext(d, script))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result
}

func TestParseCounts(t *testing.T) {
	cases := []struct {
		input   string
		v, h    int
		wantErr bool
	}{
		{input: "3 5", v: 3, h: 5},
		{input: "3", v: 3, h: 3},
		{input: "  2   4  ", v: 2, h: 4},
		{input: "0 0", v: 1, h: 1},
		{input: "-2", v: 1, h: 1},
		{input: "3 5 9", v: 3, h: 5},
		{input: "abc", wantErr: true},
		{input: "3 x", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range cases {
		v, h, err := ParseCounts(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}
		if v != tc.v || h != tc.h {
			t.Fatalf("%q: got %d/%d want %d/%d", tc.input, v, h, tc.v, tc.h)
		}
	}
}

func TestBarPositions(t *testing.T) {
	// X in [0,1], cover 0.04, three bars: {0.04, 0.5, 0.96}.
	got := barPositions(0, 1, 3)
	want := []float64{0.04, 0.5, 0.96}
	if len(got) != len(want) {
		t.Fatalf("positions: %v", got)
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("position %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestBarPositionsSingleBar(t *testing.T) {
	got := barPositions(0, 1, 1)
	if len(got) != 1 || !approx(got[0], 0.04) {
		t.Fatalf("single bar must sit at min+cover, got %v", got)
	}
	if got := barPositions(0, 1, 0); len(got) != 1 {
		t.Fatalf("count 0 is clamped to one bar, got %v", got)
	}
}

func TestBarPositionsEndpoints(t *testing.T) {
	got := barPositions(2, 5, 7)
	if !approx(got[0], 2+Cover) || !approx(got[len(got)-1], 5-Cover) {
		t.Fatalf("endpoints: %v", got)
	}
	// Even spacing between neighbours.
	step := got[1] - got[0]
	for i := 1; i < len(got); i++ {
		if !approx(got[i]-got[i-1], step) {
			t.Fatalf("uneven spacing: %v", got)
		}
	}
}

func TestPlacementCreatesBars(t *testing.T) {
	d := testDocument()
	script := ui.NewScript().WillChoose("10M").WillAnswer("3 2")
	result := run(t, d, script)

	if result.Status != command.StatusCompleted {
		t.Fatalf("status: %s (%s)", result.Status, result.Message)
	}
	rebars := d.Rebars()
	if len(rebars) != 5 {
		t.Fatalf("expected 3 vertical + 2 horizontal bars, got %d", len(rebars))
	}

	var verticalXs []float64
	for _, r := range rebars {
		if r.Spec.Type != "rt10" || r.Spec.Host != "w1" {
			t.Fatalf("spec wiring: %+v", r.Spec)
		}
		if r.Spec.Style != doc.RebarStyleStandard {
			t.Fatalf("style: %s", r.Spec.Style)
		}
		if !r.Spec.HookAtStart || !r.Spec.HookAtEnd {
			t.Fatalf("both end hooks must be enabled")
		}
		if r.Spec.StartHookOrientation != doc.HookRight || r.Spec.EndHookOrientation != doc.HookRight {
			t.Fatalf("hook orientation: %+v", r.Spec)
		}
		if r.Spec.StartHookType != "" || r.Spec.EndHookType != "" {
			t.Fatalf("hook types must stay unset")
		}
		if len(r.Spec.Curves) != 1 {
			t.Fatalf("one curve per bar, got %d", len(r.Spec.Curves))
		}
		line := r.Spec.Curves[0]
		switch r.Spec.Direction {
		case geom.BasisX:
			// Vertical bar: runs along Z at fixed X, inset by cover.
			if !approx(line.Start.Z, 0.04) || !approx(line.End.Z, 1.96) {
				t.Fatalf("vertical bar Z span: %+v", line)
			}
			if !approx(line.Start.Y, 0.04) || !approx(line.Start.X, line.End.X) {
				t.Fatalf("vertical bar alignment: %+v", line)
			}
			verticalXs = append(verticalXs, line.Start.X)
		case geom.BasisZ:
			// Horizontal bar: runs along X at fixed Z.
			if !approx(line.Start.X, 0.04) || !approx(line.End.X, 0.96) {
				t.Fatalf("horizontal bar X span: %+v", line)
			}
		default:
			t.Fatalf("unexpected direction: %+v", r.Spec.Direction)
		}
	}
	want := []float64{0.04, 0.5, 0.96}
	if len(verticalXs) != 3 {
		t.Fatalf("vertical bars: %v", verticalXs)
	}
	for i := range want {
		if !approx(verticalXs[i], want[i]) {
			t.Fatalf("vertical X %d: got %v want %v", i, verticalXs[i], want[i])
		}
	}
}

func TestPlacementSkipsElementWithoutBBox(t *testing.T) {
	d := testDocument()
	d.AddElement(doc.Element{ID: "c1", Kind: doc.KindFamilyInstance})
	d.SetSelection("w1", "c1")

	script := ui.NewScript().WillChoose("10M").WillAnswer("2")
	result := run(t, d, script)

	if result.Status != command.StatusCompleted {
		t.Fatalf("status: %s", result.Status)
	}
	if !strings.Contains(result.Message, "1/2") {
		t.Fatalf("summary must count the skip: %q", result.Message)
	}
	for _, r := range d.Rebars() {
		if r.Spec.Host == "c1" {
			t.Fatalf("skipped element must get no bars")
		}
	}
	found := false
	for _, line := range result.Report {
		if strings.Contains(line, "skipped c1") && strings.Contains(line, "no bounding box") {
			found = true
		}
	}
	if !found {
		t.Fatalf("report must mention the skip: %v", result.Report)
	}
}

func TestPlacementFiltersInvalidElements(t *testing.T) {
	d := testDocument()
	d.AddWall("curtain", doc.WallCurtain, geom.BoundingBox{Max: geom.XYZ{X: 1, Y: 1, Z: 1}})
	d.AddView("v1", "FloorPlan 1")
	d.SetSelection("curtain", "v1")

	script := ui.NewScript()
	result := run(t, d, script)

	if result.Status != command.StatusAborted {
		t.Fatalf("status: %s", result.Status)
	}
	if len(script.Alerts) == 0 || !strings.Contains(script.Alerts[0], "No valid structural elements") {
		t.Fatalf("alerts: %v", script.Alerts)
	}
	if len(d.Rebars()) != 0 {
		t.Fatalf("aborted run must not mutate")
	}
}

func TestPlacementInvalidCountsAbortBeforeMutation(t *testing.T) {
	d := testDocument()
	script := ui.NewScript().WillChoose("10M").WillAnswer("abc")
	result := run(t, d, script)

	if result.Status != command.StatusAborted {
		t.Fatalf("status: %s", result.Status)
	}
	if len(d.Rebars()) != 0 {
		t.Fatalf("no mutation scope may open on bad input")
	}
	joined := strings.Join(script.Alerts, "\n")
	if !strings.Contains(joined, "Invalid input") {
		t.Fatalf("alerts: %v", script.Alerts)
	}
}

func TestPlacementNoTypeChosenAborts(t *testing.T) {
	d := testDocument()
	script := ui.NewScript().WillCancel()
	result := run(t, d, script)

	if result.Status != command.StatusAborted {
		t.Fatalf("status: %s", result.Status)
	}
	joined := strings.Join(script.Alerts, "\n")
	if !strings.Contains(joined, "No rebar type selected") {
		t.Fatalf("alerts: %v", script.Alerts)
	}
}

func TestPlacementSingleBarPerAxis(t *testing.T) {
	d := testDocument()
	script := ui.NewScript().WillChoose("10M").WillAnswer("1 1")
	run(t, d, script)

	rebars := d.Rebars()
	if len(rebars) != 2 {
		t.Fatalf("expected one bar per axis, got %d", len(rebars))
	}
	for _, r := range rebars {
		line := r.Spec.Curves[0]
		switch r.Spec.Direction {
		case geom.BasisX:
			if !approx(line.Start.X, 0.04) {
				t.Fatalf("single vertical bar must sit at minX+cover: %+v", line)
			}
		case geom.BasisZ:
			if !approx(line.Start.Z, 0.04) {
				t.Fatalf("single horizontal bar must sit at minZ+cover: %+v", line)
			}
		}
	}
}
