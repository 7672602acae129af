package svgdoc

import (
	"math"

	"github.com/srwiley/rasterx"
	"honnef.co/go/curve"
)

// Curve lengths are delegated to honnef.co/go/curve.

// relative accuracy of the lengths, and tolerance
// of the cubic approximation of the unit circle
const lengthAccuracy = 1e-12

func toCurvePoint(p Point) curve.Point { return curve.Pt(p.X, p.Y) }

// toAffine uses the same coefficient order as rasterx
func toAffine(m rasterx.Matrix2D) curve.Affine {
	return curve.Affine{N0: m.A, N1: m.B, N2: m.C, N3: m.D, N4: m.E, N5: m.F}
}

// accuracy scales lengthAccuracy to the size of the control polygon.
func accuracy(points ...Point) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += points[i].sub(points[i-1]).norm()
	}
	return lengthAccuracy * math.Max(l, 1)
}

// degenerate curves (all points equal) may yield NaN
func finite(l float64) float64 {
	if math.IsNaN(l) {
		return 0
	}
	return l
}

func quadLength(q QuadBezier) float64 {
	bez := curve.QuadBez{P0: toCurvePoint(q[0]), P1: toCurvePoint(q[1]), P2: toCurvePoint(q[2])}
	return finite(bez.Arclen(accuracy(q[:]...)))
}

func cubicLength(cu CubicBezier) float64 {
	bez := curve.CubicBez{
		P0: toCurvePoint(cu[0]), P1: toCurvePoint(cu[1]),
		P2: toCurvePoint(cu[2]), P3: toCurvePoint(cu[3]),
	}
	return finite(bez.Arclen(accuracy(cu[:]...)))
}

// arcLength approximates the arc of the unit circle with cubics, then
// maps them by `a.M`: bezier curves are invariant under affine maps, so
// this holds for any transformation, including skews and reflections.
func arcLength(a Arc) float64 {
	unit := curve.Arc{Radii: curve.Vec(1, 1), StartAngle: a.Theta, SweepAngle: a.Delta}
	path := unit.Path(lengthAccuracy).Transform(toAffine(a.M))
	scale := math.Hypot(a.M.A, a.M.B) + math.Hypot(a.M.C, a.M.D)
	return finite(path.Arclen(lengthAccuracy * math.Max(scale*math.Abs(a.Delta), 1)))
}
