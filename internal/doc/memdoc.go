package doc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/armatureproject/armature/internal/geom"
)

// MemDocument is an in-memory Document used by the demo host and tests.
// It enforces the same view-name uniqueness rule a real host model does:
// a rename colliding with a sibling view fails inside the transaction.
//
// Command execution is synchronous and serialized by the host, so the
// document carries no locking.
type MemDocument struct {
	title      string
	elements   map[ElementID]Element
	order      []ElementID
	rebarTypes []RebarType
	selection  []ElementID
	rebars     []PlacedRebar
}

// PlacedRebar records a committed create-rebar call.
type PlacedRebar struct {
	ID   ElementID `yaml:"id"`
	Spec RebarSpec `yaml:"spec"`
}

// NewMemDocument creates an empty document with the given title.
func NewMemDocument(title string) *MemDocument {
	return &MemDocument{
		title:    title,
		elements: make(map[ElementID]Element),
	}
}

// AddView inserts a view element.
func (d *MemDocument) AddView(id ElementID, name string) {
	d.add(Element{ID: id, Kind: KindView, Name: name})
}

// AddElement inserts an arbitrary element.
func (d *MemDocument) AddElement(el Element) {
	d.add(el)
}

// AddWall inserts a wall with the given kind and bounding box.
func (d *MemDocument) AddWall(id ElementID, kind WallKind, bbox geom.BoundingBox) {
	b := bbox
	d.add(Element{ID: id, Kind: KindWall, Wall: kind, BBox: &b})
}

// AddRebarType appends a catalog entry.
func (d *MemDocument) AddRebarType(id ElementID, name string) {
	d.rebarTypes = append(d.rebarTypes, RebarType{ID: id, Name: name})
}

// SetSelection replaces the current selection.
func (d *MemDocument) SetSelection(ids ...ElementID) {
	d.selection = append([]ElementID{}, ids...)
}

// Rebars returns the committed rebar records, in creation order.
func (d *MemDocument) Rebars() []PlacedRebar {
	return append([]PlacedRebar{}, d.rebars...)
}

func (d *MemDocument) add(el Element) {
	if _, exists := d.elements[el.ID]; !exists {
		d.order = append(d.order, el.ID)
	}
	d.elements[el.ID] = el
}

// Title implements Document.
func (d *MemDocument) Title() string { return d.title }

// Selection implements Document.
func (d *MemDocument) Selection() []ElementID {
	return append([]ElementID{}, d.selection...)
}

// Element implements Document.
func (d *MemDocument) Element(id ElementID) (Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// Views implements Document.
func (d *MemDocument) Views() []Element {
	var views []Element
	for _, id := range d.order {
		if el := d.elements[id]; el.IsView() {
			views = append(views, el)
		}
	}
	return views
}

// RebarTypes implements Document.
func (d *MemDocument) RebarTypes() []RebarType {
	return append([]RebarType{}, d.rebarTypes...)
}

// Begin implements Document.
func (d *MemDocument) Begin(name string) Transaction {
	return &memTx{
		doc:     d,
		name:    name,
		renames: make(map[ElementID]string),
	}
}

// memTx stages mutations until Commit. Uniqueness checks see both
// committed names and names staged earlier in the same scope, so two
// views renamed to the same candidate collide before commit.
type memTx struct {
	doc     *MemDocument
	name    string
	renames map[ElementID]string
	created []PlacedRebar
	closed  bool
}

func (t *memTx) RenameView(id ElementID, name string) error {
	if t.closed {
		return ErrTxClosed
	}
	el, ok := t.doc.elements[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	if !el.IsView() {
		return fmt.Errorf("%w: %s", ErrNotAView, id)
	}
	if other, taken := t.nameOwner(name); taken && other != id {
		return fmt.Errorf("%w: %q", ErrNameConflict, name)
	}
	t.renames[id] = name
	return nil
}

// nameOwner resolves which view would hold the given name once the staged
// renames apply.
func (t *memTx) nameOwner(name string) (ElementID, bool) {
	for _, id := range t.doc.order {
		el := t.doc.elements[id]
		if !el.IsView() {
			continue
		}
		current := el.Name
		if staged, ok := t.renames[id]; ok {
			current = staged
		}
		if current == name {
			return id, true
		}
	}
	return "", false
}

func (t *memTx) CreateRebar(spec RebarSpec) (ElementID, error) {
	if t.closed {
		return "", ErrTxClosed
	}
	if err := spec.Validate(); err != nil {
		return "", err
	}
	host, ok := t.doc.elements[spec.Host]
	if !ok {
		return "", fmt.Errorf("%w: host %s", ErrUnknownElement, spec.Host)
	}
	if !host.CanHostRebar() {
		return "", fmt.Errorf("doc: element %s cannot host rebar", spec.Host)
	}
	if !t.typeExists(spec.Type) {
		return "", fmt.Errorf("%w: rebar type %s", ErrUnknownElement, spec.Type)
	}
	id := ElementID("rebar-" + uuid.NewString())
	t.created = append(t.created, PlacedRebar{ID: id, Spec: spec})
	return id, nil
}

func (t *memTx) typeExists(id ElementID) bool {
	for _, rt := range t.doc.rebarTypes {
		if rt.ID == id {
			return true
		}
	}
	return false
}

func (t *memTx) Commit() error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true
	for id, name := range t.renames {
		el := t.doc.elements[id]
		el.Name = name
		t.doc.elements[id] = el
	}
	for _, r := range t.created {
		t.doc.rebars = append(t.doc.rebars, r)
		t.doc.add(Element{ID: r.ID, Kind: KindRebar})
	}
	return nil
}

func (t *memTx) Rollback() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.renames = nil
	t.created = nil
	return nil
}
