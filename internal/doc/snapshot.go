package doc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/armatureproject/armature/internal/geom"
)

// snapshot mirrors the on-disk YAML schema for a MemDocument. The format
// is a plain inventory of the collaborator surface, not a CAD exchange
// format.
type snapshot struct {
	Title      string            `yaml:"title"`
	Selection  []ElementID       `yaml:"selection,omitempty"`
	Views      []snapshotView    `yaml:"views,omitempty"`
	Elements   []snapshotElement `yaml:"elements,omitempty"`
	RebarTypes []RebarType       `yaml:"rebar_types,omitempty"`
	Rebars     []PlacedRebar     `yaml:"rebars,omitempty"`
}

type snapshotView struct {
	ID   ElementID `yaml:"id"`
	Name string    `yaml:"name"`
}

type snapshotElement struct {
	ID       ElementID         `yaml:"id"`
	Kind     ElementKind       `yaml:"kind"`
	WallKind WallKind          `yaml:"wall_kind,omitempty"`
	BBox     *geom.BoundingBox `yaml:"bbox,omitempty"`
}

// LoadSnapshot reads a document snapshot from a YAML file.
func LoadSnapshot(path string) (*MemDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("doc: read snapshot %s: %w", path, err)
	}
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("doc: decode snapshot %s: %w", path, err)
	}
	d := NewMemDocument(snap.Title)
	for _, v := range snap.Views {
		if v.ID == "" {
			return nil, fmt.Errorf("doc: snapshot %s: view without id", path)
		}
		d.AddView(v.ID, v.Name)
	}
	for _, e := range snap.Elements {
		if e.ID == "" {
			return nil, fmt.Errorf("doc: snapshot %s: element without id", path)
		}
		switch e.Kind {
		case KindWall, KindFloor, KindFamilyInstance:
		default:
			return nil, fmt.Errorf("doc: snapshot %s: element %s has unsupported kind %q", path, e.ID, e.Kind)
		}
		d.add(Element{ID: e.ID, Kind: e.Kind, Wall: e.WallKind, BBox: e.BBox})
	}
	for _, rt := range snap.RebarTypes {
		d.AddRebarType(rt.ID, rt.Name)
	}
	for _, r := range snap.Rebars {
		d.rebars = append(d.rebars, r)
		d.add(Element{ID: r.ID, Kind: KindRebar})
	}
	d.SetSelection(snap.Selection...)
	return d, nil
}

// Save writes the document back to a YAML snapshot file.
func (d *MemDocument) Save(path string) error {
	snap := snapshot{
		Title:      d.title,
		Selection:  d.selection,
		RebarTypes: d.rebarTypes,
		Rebars:     d.rebars,
	}
	for _, id := range d.order {
		el := d.elements[id]
		switch el.Kind {
		case KindView:
			snap.Views = append(snap.Views, snapshotView{ID: el.ID, Name: el.Name})
		case KindWall, KindFloor, KindFamilyInstance:
			snap.Elements = append(snap.Elements, snapshotElement{
				ID:       el.ID,
				Kind:     el.Kind,
				WallKind: el.Wall,
				BBox:     el.BBox,
			})
		}
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("doc: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("doc: write snapshot %s: %w", path, err)
	}
	return nil
}
