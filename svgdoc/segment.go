package svgdoc

import (
	"fmt"
	"math"

	"github.com/srwiley/rasterx"
)

// This file defines the flattened path segments

// Point is a position in document user space.
type Point struct{ X, Y float64 }

func (p Point) add(q Point) Point         { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point         { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(f float64) Point     { return Point{p.X * f, p.Y * f} }
func (p Point) norm() float64             { return math.Hypot(p.X, p.Y) }
func (p Point) String() string            { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }
func (p Point) reflect(about Point) Point { return Point{2*about.X - p.X, 2*about.Y - p.Y} }

func transformPoint(m rasterx.Matrix2D, p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// Segment is a primitive drawing instruction.
// It is either a Line or a Curve.
type Segment interface {
	Start() Point
	End() Point

	// Transform returns the image of the segment under `m`.
	Transform(m rasterx.Matrix2D) Segment
}

// Curve is a segment which is not a straight line. It
// must be approximated when converted to polylines.
type Curve interface {
	Segment

	// Length returns the arc length of the curve.
	Length() float64

	// PointAt evaluates the curve at the parametric fraction t in [0, 1].
	PointAt(t float64) Point
}

// Path is the sequence of segments built from one drawable element,
// in absolute document coordinates.
type Path struct {
	ID       string // id attribute of the source element, if any
	Tag      string // name of the source element (path, rect, circle, ...)
	Segments []Segment
}

// Line is a straight segment from A to B.
type Line struct{ A, B Point }

func (l Line) Start() Point { return l.A }
func (l Line) End() Point   { return l.B }

func (l Line) Length() float64 { return l.B.sub(l.A).norm() }

func (l Line) Transform(m rasterx.Matrix2D) Segment {
	return Line{transformPoint(m, l.A), transformPoint(m, l.B)}
}

// QuadBezier is a quadratic bezier curve: start, control, end.
type QuadBezier [3]Point

func (q QuadBezier) Start() Point { return q[0] }
func (q QuadBezier) End() Point   { return q[2] }

func (q QuadBezier) PointAt(t float64) Point {
	mt := 1 - t
	return q[0].scale(mt * mt).add(q[1].scale(2 * mt * t)).add(q[2].scale(t * t))
}

func (q QuadBezier) Length() float64 { return quadLength(q) }

func (q QuadBezier) Transform(m rasterx.Matrix2D) Segment {
	return QuadBezier{transformPoint(m, q[0]), transformPoint(m, q[1]), transformPoint(m, q[2])}
}

// CubicBezier is a cubic bezier curve: start, first control, second control, end.
type CubicBezier [4]Point

func (cu CubicBezier) Start() Point { return cu[0] }
func (cu CubicBezier) End() Point   { return cu[3] }

func (cu CubicBezier) PointAt(t float64) Point {
	mt := 1 - t
	return cu[0].scale(mt * mt * mt).
		add(cu[1].scale(3 * mt * mt * t)).
		add(cu[2].scale(3 * mt * t * t)).
		add(cu[3].scale(t * t * t))
}

func (cu CubicBezier) Length() float64 { return cubicLength(cu) }

func (cu CubicBezier) Transform(m rasterx.Matrix2D) Segment {
	var out CubicBezier
	for i, p := range cu {
		out[i] = transformPoint(m, p)
	}
	return out
}

var (
	_ Segment = Line{}
	_ Curve   = QuadBezier{}
	_ Curve   = CubicBezier{}
	_ Curve   = Arc{}
)
