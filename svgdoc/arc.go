package svgdoc

import (
	"math"

	"github.com/srwiley/rasterx"
)

// Arc is an elliptical arc. It is stored as the image of
// the unit circle by an affine map, so that any transformation
// of the document keeps it exact:
//
//	PointAt(t) = M(cos(Theta + t*Delta), sin(Theta + t*Delta))
type Arc struct {
	M            rasterx.Matrix2D
	Theta, Delta float64 // start angle and signed angular span, in radians

	from, to Point // exact end points
}

// newCenterArc returns the arc of the axis aligned ellipse
// centered at (cx, cy) with radii rx, ry.
func newCenterArc(cx, cy, rx, ry, theta, delta float64) Arc {
	m := rasterx.Matrix2D{A: rx, D: ry, E: cx, F: cy}
	a := Arc{M: m, Theta: theta, Delta: delta}
	a.from = a.eval(0)
	a.to = a.eval(1)
	return a
}

// newEndpointArc converts the SVG endpoint parametrization of an arc
// (see the implementation notes, section F.6.5, of the SVG 1.1 specification)
// to its center parametrization.
// `ok` is false when the arc degenerates: identical end points mean the
// arc is omitted, a zero radius means a straight line.
func newEndpointArc(from Point, rx, ry, rotDeg float64, largeArc, sweep bool, to Point) (a Arc, isLine, ok bool) {
	if from == to {
		return a, false, false
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return a, true, false
	}
	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	// Move origin to the mid point and rotate the ellipse axis
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale radii up if no ellipse goes through both points
	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	theta2 := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	delta := theta2 - theta
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	a = Arc{
		M: rasterx.Matrix2D{
			A: rx * cosPhi, B: rx * sinPhi,
			C: -ry * sinPhi, D: ry * cosPhi,
			E: cx, F: cy,
		},
		Theta: theta,
		Delta: delta,
		from:  from,
		to:    to,
	}
	return a, false, true
}

func (a Arc) eval(t float64) Point {
	eta := a.Theta + t*a.Delta
	return transformPoint(a.M, Point{math.Cos(eta), math.Sin(eta)})
}

func (a Arc) Start() Point { return a.from }
func (a Arc) End() Point   { return a.to }

// PointAt returns the exact end points for t = 0 and t = 1.
func (a Arc) PointAt(t float64) Point {
	switch t {
	case 0:
		return a.from
	case 1:
		return a.to
	}
	return a.eval(t)
}

func (a Arc) Length() float64 { return arcLength(a) }

func (a Arc) Transform(m rasterx.Matrix2D) Segment {
	return Arc{
		M:     m.Mult(a.M),
		Theta: a.Theta,
		Delta: a.Delta,
		from:  transformPoint(m, a.from),
		to:    transformPoint(m, a.to),
	}
}

// Center returns the center of the underlying ellipse.
func (a Arc) Center() Point { return Point{a.M.E, a.M.F} }
