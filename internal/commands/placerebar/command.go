package placerebar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/geom"
	"github.com/armatureproject/armature/internal/ui"
)

// ID is the registry identifier for the rebar placement command.
const ID = "place-rebar"

// Cover is the SNI concrete cover: the fixed clearance between an
// element's outer face and the nearest bar, in document length units.
const Cover = 0.040

// Request is the validated user input for one placement run.
type Request struct {
	Type       doc.ElementID
	Vertical   int
	Horizontal int
}

// Command places evenly spaced rebar curves inside each selected
// structural element, inset from its bounding box by the cover distance.
type Command struct {
	cfg command.Config
}

// New builds the command. Config key "counts" presets the quantity prompt.
func New(cfg command.Config) (*Command, error) {
	return &Command{cfg: cfg}, nil
}

// Info implements command.Command.
func (c *Command) Info() command.Info {
	return command.Info{
		ID:          ID,
		Title:       "Place Rebar",
		Description: "Place vertical and horizontal rebar in structural elements.",
		Version:     "1.0",
		Doc:         docMarkdown,
	}
}

// Run implements command.Command.
func (c *Command) Run(ctx *command.Context) (command.Result, error) {
	elements := validElements(ctx.Doc)
	if len(elements) == 0 {
		msg := "No valid structural elements selected."
		if err := ctx.UI.Alert("Place Rebar", msg); err != nil {
			return command.Result{Status: command.StatusFailed}, err
		}
		return command.Result{Status: command.StatusAborted, Message: msg}, nil
	}

	rebarType, abortMsg, err := c.askRebarType(ctx)
	if err != nil {
		return command.Result{Status: command.StatusFailed}, err
	}
	if abortMsg != "" {
		return command.Result{Status: command.StatusAborted, Message: abortMsg}, nil
	}

	vertical, horizontal, abortMsg, err := c.askCounts(ctx)
	if err != nil {
		return command.Result{Status: command.StatusFailed}, err
	}
	if abortMsg != "" {
		return command.Result{Status: command.StatusAborted, Message: abortMsg}, nil
	}

	req := Request{Type: rebarType, Vertical: vertical, Horizontal: horizontal}

	var report []string
	success := 0
	for _, el := range elements {
		if err := placeInElement(ctx.Doc, el, req); err != nil {
			ctx.Log.Printf("place-rebar: %s: %v", el.ID, err)
			report = append(report, fmt.Sprintf("skipped %s: %v", el.ID, err))
			continue
		}
		report = append(report, fmt.Sprintf("placed %d+%d bars in %s", req.Vertical, req.Horizontal, el.ID))
		success++
	}

	summary := fmt.Sprintf(
		"Successfully placed rebar in %d/%d elements\nVertical: %d bars\nHorizontal: %d bars",
		success, len(elements), req.Vertical, req.Horizontal,
	)
	if err := ctx.UI.Alert("Rebar Placement Complete", summary); err != nil {
		return command.Result{Status: command.StatusFailed}, err
	}
	return command.Result{
		Status:  command.StatusCompleted,
		Message: summary,
		Report:  report,
	}, nil
}

// placeInElement creates every bar for one element inside its own
// transaction. Any failure rolls the element's scope back and is reported
// to the caller; other elements are unaffected.
func placeInElement(d doc.Document, el doc.Element, req Request) error {
	bbox, ok := el.BoundingBox()
	if !ok {
		return errors.New("no bounding box")
	}

	tx := d.Begin("Place Rebars")
	defer tx.Rollback()

	// Vertical bars run along Z, distributed along X.
	for _, x := range barPositions(bbox.Min.X, bbox.Max.X, req.Vertical) {
		line := geom.NewLine(
			geom.XYZ{X: x, Y: bbox.Min.Y + Cover, Z: bbox.Min.Z + Cover},
			geom.XYZ{X: x, Y: bbox.Min.Y + Cover, Z: bbox.Max.Z - Cover},
		)
		if _, err := tx.CreateRebar(barSpec(el.ID, req.Type, geom.BasisX, line)); err != nil {
			return fmt.Errorf("vertical bar at x=%.3f: %w", x, err)
		}
	}

	// Horizontal bars run along X, distributed along Z.
	for _, z := range barPositions(bbox.Min.Z, bbox.Max.Z, req.Horizontal) {
		line := geom.NewLine(
			geom.XYZ{X: bbox.Min.X + Cover, Y: bbox.Min.Y + Cover, Z: z},
			geom.XYZ{X: bbox.Max.X - Cover, Y: bbox.Min.Y + Cover, Z: z},
		)
		if _, err := tx.CreateRebar(barSpec(el.ID, req.Type, geom.BasisZ, line)); err != nil {
			return fmt.Errorf("horizontal bar at z=%.3f: %w", z, err)
		}
	}

	return tx.Commit()
}

func barSpec(host, rebarType doc.ElementID, direction geom.XYZ, line geom.Line) doc.RebarSpec {
	return doc.RebarSpec{
		Style:                doc.RebarStyleStandard,
		Type:                 rebarType,
		Host:                 host,
		Direction:            direction,
		Curves:               []geom.Line{line},
		StartHookOrientation: doc.HookRight,
		EndHookOrientation:   doc.HookRight,
		HookAtStart:          true,
		HookAtEnd:            true,
	}
}

// barPositions returns count coordinates between min+Cover and max-Cover.
// A single bar sits at the min offset; more are spaced evenly across the
// inset extent, endpoints included.
func barPositions(min, max float64, count int) []float64 {
	if count <= 1 {
		return []float64{min + Cover}
	}
	return floats.Span(make([]float64, count), min+Cover, max-Cover)
}

// validElements filters the selection with the host predicate: structural
// family instances, floors, and basic walls.
func validElements(d doc.Document) []doc.Element {
	var valid []doc.Element
	for _, id := range d.Selection() {
		if el, ok := d.Element(id); ok && el.CanHostRebar() {
			valid = append(valid, el)
		}
	}
	return valid
}

func (c *Command) askRebarType(ctx *command.Context) (doc.ElementID, string, error) {
	types := ctx.Doc.RebarTypes()
	if len(types) == 0 {
		msg := "No rebar types in document."
		if err := ctx.UI.Alert("Place Rebar", msg); err != nil {
			return "", "", err
		}
		return "", msg, nil
	}
	names := make([]string, 0, len(types))
	byName := make(map[string]doc.ElementID, len(types))
	for _, rt := range types {
		name := rt.Name
		if name == "" {
			name = "Unknown"
		}
		names = append(names, name)
		byName[name] = rt.ID
	}
	chosen, err := ctx.UI.SelectFromList("Select Rebar Type", names)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			msg := "No rebar type selected."
			if alertErr := ctx.UI.Alert("Place Rebar", msg); alertErr != nil {
				return "", "", alertErr
			}
			return "", msg, nil
		}
		return "", "", err
	}
	return byName[chosen], "", nil
}

func (c *Command) askCounts(ctx *command.Context) (int, int, string, error) {
	input, err := ctx.UI.AskString(
		"Rebar Quantity",
		"Enter vertical and horizontal rebar counts (e.g. '3 5')",
		c.cfg.String("counts", "2 2"),
	)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			msg := "No input provided."
			if alertErr := ctx.UI.Alert("Place Rebar", msg); alertErr != nil {
				return 0, 0, "", alertErr
			}
			return 0, 0, msg, nil
		}
		return 0, 0, "", err
	}
	vertical, horizontal, err := ParseCounts(input)
	if err != nil {
		msg := "Invalid input! Use format '3' or '3 5'."
		if alertErr := ctx.UI.Alert("Place Rebar", msg); alertErr != nil {
			return 0, 0, "", alertErr
		}
		return 0, 0, msg, nil
	}
	return vertical, horizontal, "", nil
}

// ParseCounts parses "V" or "V H" into the two bar counts. The horizontal
// count defaults to the vertical one; both are floored at 1.
func ParseCounts(input string) (vertical, horizontal int, err error) {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return 0, 0, errors.New("placerebar: empty count input")
	}
	vertical, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("placerebar: parse vertical count %q: %w", parts[0], err)
	}
	horizontal = vertical
	if len(parts) > 1 {
		horizontal, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("placerebar: parse horizontal count %q: %w", parts[1], err)
		}
	}
	if vertical < 1 {
		vertical = 1
	}
	if horizontal < 1 {
		horizontal = 1
	}
	return vertical, horizontal, nil
}
