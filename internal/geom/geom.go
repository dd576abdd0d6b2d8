// Package geom provides the small set of geometric types the document
// collaborator exchanges with commands: 3D points, bound line segments and
// axis-aligned bounding boxes, all in document length units.
package geom

import "math"

// XYZ is a 3D point or direction vector.
type XYZ struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Unit basis vectors used as rebar distribution directions.
var (
	BasisX = XYZ{X: 1}
	BasisY = XYZ{Y: 1}
	BasisZ = XYZ{Z: 1}
)

// Add returns p + q.
func (p XYZ) Add(q XYZ) XYZ {
	return XYZ{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p XYZ) Sub(q XYZ) XYZ {
	return XYZ{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Norm returns the Euclidean length of the vector.
func (p XYZ) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Line is a bound segment between two points.
type Line struct {
	Start XYZ `yaml:"start" json:"start"`
	End   XYZ `yaml:"end" json:"end"`
}

// NewLine creates a bound line from start to end.
func NewLine(start, end XYZ) Line {
	return Line{Start: start, End: end}
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.End.Sub(l.Start).Norm()
}

// BoundingBox is an axis-aligned min/max extent pair.
type BoundingBox struct {
	Min XYZ `yaml:"min" json:"min"`
	Max XYZ `yaml:"max" json:"max"`
}

// Width is the X extent of the box.
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Depth is the Y extent of the box.
func (b BoundingBox) Depth() float64 {
	return b.Max.Y - b.Min.Y
}

// Height is the Z extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Max.Z - b.Min.Z
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b BoundingBox) Contains(p XYZ) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
