package svgread

import (
	"fmt"
	"math"

	"github.com/benoitkugler/svglines/svgdoc"
)

// Polyline is an ordered list of at least 2 points.
// It must not be modified once built.
type Polyline []svgdoc.Point

// Lines is the result of an extraction, one Polyline
// per segment, in document order.
type Lines []Polyline

// Len returns the number of polylines.
func (ls Lines) Len() int { return len(ls) }

// PointCount returns the total number of points.
func (ls Lines) PointCount() int {
	var n int
	for _, l := range ls {
		n += len(l)
	}
	return n
}

// MaxCurveSteps bounds the number of chords of one curve.
const MaxCurveSteps = 1 << 24

// Linearize approximates the segment by a polyline whose chords are
// at most `quantization` long (measured along the curve).
// Lines are returned as their two end points. Curves are evenly split
// in parameter space into ceil(length/quantization) intervals, the end points
// being returned exactly.
// An error wrapping ErrInvalidQuantization is returned if that would
// require more than MaxCurveSteps intervals.
func Linearize(seg svgdoc.Segment, quantization float64) (Polyline, error) {
	curve, ok := seg.(svgdoc.Curve)
	if !ok { // straight line
		return Polyline{seg.Start(), seg.End()}, nil
	}
	length := curve.Length()
	steps := math.Ceil(length / quantization)
	if !(steps <= MaxCurveSteps) { // also catches NaN
		return nil, fmt.Errorf("%w: %g is too small for a curve of length %g", ErrInvalidQuantization, quantization, length)
	}
	step := int(steps)
	if step < 1 {
		step = 1
	}
	out := make(Polyline, step+1)
	out[0] = curve.Start()
	for i := 1; i < step; i++ {
		out[i] = curve.PointAt(float64(i) / float64(step))
	}
	out[step] = curve.End()
	return out, nil
}
