// Package doc defines the narrow document-model surface that add-in
// commands are allowed to touch: selection, element lookup, rebar type
// enumeration and named transactions. The host CAD model itself stays
// behind these interfaces; commands never see its internals.
package doc

import (
	"errors"
	"fmt"

	"github.com/armatureproject/armature/internal/geom"
)

// ElementID identifies an element inside a document.
type ElementID string

// ElementKind enumerates the element categories the commands care about.
type ElementKind string

const (
	KindView           ElementKind = "view"
	KindWall           ElementKind = "wall"
	KindFloor          ElementKind = "floor"
	KindFamilyInstance ElementKind = "family-instance"
	KindRebar          ElementKind = "rebar"
)

// WallKind distinguishes wall constructions. Only basic walls host rebar.
type WallKind string

const (
	WallBasic   WallKind = "basic"
	WallStacked WallKind = "stacked"
	WallCurtain WallKind = "curtain"
)

// RebarStyle selects the bar bending style.
type RebarStyle string

const (
	RebarStyleStandard   RebarStyle = "standard"
	RebarStyleStirrupTie RebarStyle = "stirrup-tie"
)

// HookOrientation controls which side a hook bends toward.
type HookOrientation string

const (
	HookLeft  HookOrientation = "left"
	HookRight HookOrientation = "right"
)

// Sentinel errors surfaced by document operations. Commands match on these
// with errors.Is; ErrNameConflict in particular drives the rename retry
// loop and must never be conflated with other failures.
var (
	ErrNameConflict   = errors.New("doc: view name already in use")
	ErrUnknownElement = errors.New("doc: unknown element")
	ErrNotAView       = errors.New("doc: element is not a view")
	ErrTxClosed       = errors.New("doc: transaction already closed")
)

// Element is a read-only snapshot of a document element.
type Element struct {
	ID   ElementID
	Kind ElementKind
	// Name is the display name. Meaningful for views; other elements may
	// leave it empty.
	Name string
	// Wall is set for wall elements only.
	Wall WallKind
	// BBox is the axis-aligned extent, when the host can produce one.
	BBox *geom.BoundingBox
}

// IsView reports whether the element is a view.
func (e Element) IsView() bool {
	return e.Kind == KindView
}

// CanHostRebar implements the host predicate for rebar placement:
// structural family instances, floors, and basic walls qualify.
func (e Element) CanHostRebar() bool {
	switch e.Kind {
	case KindFamilyInstance, KindFloor:
		return true
	case KindWall:
		return e.Wall == WallBasic
	default:
		return false
	}
}

// BoundingBox returns the element extent. The second return is false when
// the host has no box for the element.
func (e Element) BoundingBox() (geom.BoundingBox, bool) {
	if e.BBox == nil {
		return geom.BoundingBox{}, false
	}
	return *e.BBox, true
}

// RebarType is a catalog entry describing a bar diameter/material.
type RebarType struct {
	ID   ElementID `yaml:"id"`
	Name string    `yaml:"name"`
}

// RebarSpec carries every argument of the host create-rebar call.
type RebarSpec struct {
	Style RebarStyle `yaml:"style"`
	// Type references a RebarType catalog entry.
	Type ElementID `yaml:"type"`
	// StartHookType/EndHookType reference hook type elements; empty means
	// unset, which is what the placement command always passes.
	StartHookType ElementID `yaml:"start_hook_type,omitempty"`
	EndHookType   ElementID `yaml:"end_hook_type,omitempty"`
	// Host is the structural element the bars belong to.
	Host      ElementID   `yaml:"host"`
	Direction geom.XYZ    `yaml:"direction"`
	Curves    []geom.Line `yaml:"curves"`
	// Hook orientation and presence, per bar end.
	StartHookOrientation HookOrientation `yaml:"start_hook_orientation"`
	EndHookOrientation   HookOrientation `yaml:"end_hook_orientation"`
	HookAtStart          bool            `yaml:"hook_at_start"`
	HookAtEnd            bool            `yaml:"hook_at_end"`
}

// Validate checks the spec is complete enough for the host to accept.
func (s RebarSpec) Validate() error {
	if s.Type == "" {
		return fmt.Errorf("doc: rebar spec: type is required")
	}
	if s.Host == "" {
		return fmt.Errorf("doc: rebar spec: host element is required")
	}
	if len(s.Curves) == 0 {
		return fmt.Errorf("doc: rebar spec: at least one curve is required")
	}
	if s.Direction.Norm() == 0 {
		return fmt.Errorf("doc: rebar spec: direction vector must be non-zero")
	}
	return nil
}

// Document is the host document collaborator. Implementations are free to
// back it with a real CAD model; the in-memory variant in this package
// backs it with a YAML snapshot.
type Document interface {
	// Title identifies the document in logs and reports.
	Title() string
	// Selection returns the user's current selection, in order.
	Selection() []ElementID
	// Element resolves a handle to an element snapshot.
	Element(id ElementID) (Element, bool)
	// Views lists every view in the document, in document order.
	Views() []Element
	// RebarTypes enumerates the rebar type catalog.
	RebarTypes() []RebarType
	// Begin opens a named mutation scope. Nothing is visible to readers
	// until Commit.
	Begin(name string) Transaction
}

// Transaction is a mutation scope. Commit applies staged changes; Rollback
// discards them and is a no-op after Commit, so callers can defer it
// unconditionally to guarantee the scope is finalized on every exit path.
type Transaction interface {
	RenameView(id ElementID, name string) error
	CreateRebar(spec RebarSpec) (ElementID, error)
	Commit() error
	Rollback() error
}
