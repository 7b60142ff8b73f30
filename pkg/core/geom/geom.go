// Package geom provides the rotated-rectangle geometry used by the word cloud
// placement engine.
//
// All coordinates live in canvas space: origin at the top-left corner, x to
// the right and y pointing down. Angles are in degrees and follow the same
// convention as the SVG rotate() transform, so a box rotated here matches a
// label rendered with the same angle.
//
// The package is intentionally small:
//
//   - [RotatedBox] builds the padded footprint of a label
//   - [SegmentsIntersect] and [PointInPolygon] are the primitive tests
//   - [BoxesIntersect] combines a bounding check with exact edge and
//     containment tests for two convex quadrilaterals
package geom

import "math"

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// cross returns the z component of the cross product of a and b.
func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

// Box is a closed quadrilateral given by its four corners, traversed
// clockwise on screen (top-left, top-right, bottom-right, bottom-left before
// rotation). Edge i runs from corner i to corner (i+1)%4.
type Box [4]Point

// Edge returns the i-th edge of the box.
func (b Box) Edge(i int) (Point, Point) {
	return b[i%4], b[(i+1)%4]
}

// Bounds returns the axis-aligned extent of the box.
func (b Box) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range b {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Area returns the area of the axis-aligned rectangle enclosing the box.
func (b Box) Area() float64 {
	minX, minY, maxX, maxY := b.Bounds()
	return (maxX - minX) * (maxY - minY)
}

// Center returns the centroid of the four corners.
func (b Box) Center() Point {
	var c Point
	for _, p := range b {
		c.X += p.X
		c.Y += p.Y
	}
	return Point{c.X / 4, c.Y / 4}
}

// Rotate rotates every corner by deg degrees about center.
func (b Box) Rotate(center Point, deg float64) Box {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	var out Box
	for i, p := range b {
		d := p.Sub(center)
		out[i] = Point{
			X: center.X + d.X*cos - d.Y*sin,
			Y: center.Y + d.X*sin + d.Y*cos,
		}
	}
	return out
}

// Within reports whether every corner lies inside [minX,maxX]x[minY,maxY].
func (b Box) Within(minX, minY, maxX, maxY float64) bool {
	for _, p := range b {
		if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
			return false
		}
	}
	return true
}

// DefaultPaddingRatio is the padding applied by [RotatedBoxDefault], as a
// fraction of the label's larger side.
const DefaultPaddingRatio = 0.15

// RotatedBox returns the footprint of a width x height rectangle centered at
// c, inflated by padding on every side and rotated by deg degrees about c.
func RotatedBox(c Point, width, height, deg, padding float64) Box {
	hw := width/2 + padding
	hh := height/2 + padding
	box := Box{
		{c.X - hw, c.Y - hh},
		{c.X + hw, c.Y - hh},
		{c.X + hw, c.Y + hh},
		{c.X - hw, c.Y + hh},
	}
	if deg == 0 {
		return box
	}
	return box.Rotate(c, deg)
}

// RotatedBoxDefault is [RotatedBox] with padding derived from the label size
// when the caller has no explicit spacing.
func RotatedBoxDefault(c Point, width, height, deg float64) Box {
	return RotatedBox(c, width, height, deg, max(width, height)*DefaultPaddingRatio)
}
