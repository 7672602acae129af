package svgdoc

import (
	"math"
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, d string) []Segment {
	t.Helper()
	var c pathCursor
	require.NoError(t, c.compilePath(d))
	return c.path
}

func TestParseNumbers(t *testing.T) {
	for _, test := range []struct {
		in   string
		want []float64
	}{
		{"", nil},
		{"1 2 3", []float64{1, 2, 3}},
		{"1,2,,3", []float64{1, 2, 3}},
		{"1-2", []float64{1, -2}},
		{".5.5", []float64{0.5, 0.5}},
		{"-1e2+3E-1", []float64{-100, 0.3}},
		{"  4\n\t5 ", []float64{4, 5}},
	} {
		got, err := parseNumbers(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}

	for _, in := range []string{"1 x", "2e", "1;2"} {
		_, err := parseNumbers(in)
		assert.ErrorIs(t, err, ErrParamMismatch, in)
	}
}

func TestLinesAndClose(t *testing.T) {
	segs := compile(t, "M0 0 L10 0 l0 10 H0 Z")
	assert.Equal(t, []Segment{
		Line{Point{0, 0}, Point{10, 0}},
		Line{Point{10, 0}, Point{10, 10}},
		Line{Point{10, 10}, Point{0, 10}},
		Line{Point{0, 10}, Point{0, 0}},
	}, segs)

	// closing on the start point adds nothing, and M alone draws nothing
	segs = compile(t, "M0 0 h5 v5 h-5 v-5 z M100 100")
	assert.Len(t, segs, 4)
}

func TestImplicitCommands(t *testing.T) {
	// pairs after a move are line to, relative if the move is relative
	segs := compile(t, "m1 1 2 0 0 2")
	assert.Equal(t, []Segment{
		Line{Point{1, 1}, Point{3, 1}},
		Line{Point{3, 1}, Point{3, 3}},
	}, segs)

	segs = compile(t, "M0,0L1,1,2,2 3,3")
	assert.Len(t, segs, 3)

	// subpath start after z for the next relative command
	segs = compile(t, "m10 10 l5 0 z l0 5")
	require.Len(t, segs, 3)
	assert.Equal(t, Line{Point{10, 10}, Point{10, 15}}, segs[2])
}

func TestCurves(t *testing.T) {
	segs := compile(t, "M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	require.Len(t, segs, 2)
	assert.Equal(t, CubicBezier{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, segs[0])
	// reflected control point
	assert.Equal(t, CubicBezier{{10, 0}, {10, -10}, {20, -10}, {20, 0}}, segs[1])

	segs = compile(t, "M0 0 q5 5 10 0 t10 0")
	require.Len(t, segs, 2)
	assert.Equal(t, QuadBezier{{0, 0}, {5, 5}, {10, 0}}, segs[0])
	assert.Equal(t, QuadBezier{{10, 0}, {15, -5}, {20, 0}}, segs[1])

	// without a previous curve, the control point is the current point
	segs = compile(t, "M0 0 L5 0 S10 5 15 0")
	require.Len(t, segs, 2)
	assert.Equal(t, CubicBezier{{5, 0}, {5, 0}, {10, 5}, {15, 0}}, segs[1])
}

func TestArcs(t *testing.T) {
	segs := compile(t, "M0 0 A10 10 0 0 1 20 0")
	require.Len(t, segs, 1)
	arc, ok := segs[0].(Arc)
	require.True(t, ok)
	assert.Equal(t, Point{0, 0}, arc.Start())
	assert.Equal(t, Point{20, 0}, arc.End())
	assert.InDelta(t, 10, arc.Center().X, 1e-12)
	assert.InDelta(t, 0, arc.Center().Y, 1e-12)
	mid := arc.PointAt(0.5)
	assert.InDelta(t, 10, mid.X, 1e-9)
	assert.InDelta(t, -10, mid.Y, 1e-9)
	assert.InDelta(t, 10*math.Pi, arc.Length(), 1e-9)

	// flags packed with the following coordinates
	segs = compile(t, "M0 0a10 10 0 1020 0")
	require.Len(t, segs, 1)
	mid = segs[0].(Arc).PointAt(0.5)
	assert.InDelta(t, 10, mid.Y, 1e-9)

	// too small radii are scaled up
	segs = compile(t, "M0 0 A1 1 0 0 1 20 0")
	require.Len(t, segs, 1)
	assert.InDelta(t, 10*math.Pi, segs[0].(Curve).Length(), 1e-9)

	// degenerate arcs
	segs = compile(t, "M0 0 A0 10 0 0 1 20 0")
	assert.Equal(t, []Segment{Line{Point{0, 0}, Point{20, 0}}}, segs)
	segs = compile(t, "M5 5 A10 10 0 0 1 5 5")
	assert.Empty(t, segs)
}

func TestPathErrors(t *testing.T) {
	for _, d := range []string{
		"L0 0",
		"M0",
		"M0 0 X",
		"M0 0 A10 10 0 2 1 5 5",
		"M0 0 C1 1 2 2",
	} {
		var c pathCursor
		assert.ErrorIs(t, c.compilePath(d), ErrParamMismatch, d)
	}
}

func TestCurveLength(t *testing.T) {
	// straight curves with uniform parametrization
	assert.InDelta(t, 3, CubicBezier{{0, 0}, {1, 0}, {2, 0}, {3, 0}}.Length(), 1e-12)
	assert.InDelta(t, 5, QuadBezier{{0, 0}, {1.5, 2}, {3, 4}}.Length(), 1e-12)
	assert.Equal(t, 0., CubicBezier{}.Length())
	assert.Equal(t, 0., QuadBezier{{1, 1}, {1, 1}, {1, 1}}.Length())

	// quarter of circle approximated by a cubic
	const k = 0.5522847498
	l := CubicBezier{{1, 0}, {1, k}, {k, 1}, {0, 1}}.Length()
	assert.InDelta(t, math.Pi/2, l, 1e-3)
}

// chordLength sums the chords of a fine sampling of `cu`
func chordLength(cu Curve, n int) float64 {
	var l float64
	prev := cu.PointAt(0)
	for i := 1; i <= n; i++ {
		p := cu.PointAt(float64(i) / float64(n))
		l += p.sub(prev).norm()
		prev = p
	}
	return l
}

func TestLengthUnderAffineMaps(t *testing.T) {
	for _, m := range []rasterx.Matrix2D{
		Identity.SkewX(0.7),
		Identity.Scale(3, 0.2).Rotate(1),
		Identity.Scale(-1, 2).SkewY(-0.4), // reflection
		{A: 1, B: 0.5, C: 2, D: 1.5, E: 4, F: -3},
	} {
		for _, a := range []Arc{
			newCenterArc(5, 5, 10, 4, 0.3, 4),
			newCenterArc(0, 0, 1, 1, 0, -2*math.Pi),
		} {
			arc := a.Transform(m).(Curve)
			assert.InEpsilon(t, chordLength(arc, 100000), arc.Length(), 1e-6)
		}
		cu := CubicBezier{{0, 0}, {10, 30}, {40, -20}, {50, 10}}.Transform(m).(Curve)
		assert.InEpsilon(t, chordLength(cu, 100000), cu.Length(), 1e-6)
		q := QuadBezier{{0, 0}, {50, 100}, {100, 0}}.Transform(m).(Curve)
		assert.InEpsilon(t, chordLength(q, 100000), q.Length(), 1e-6)
	}
}

func TestSegmentTransform(t *testing.T) {
	m := Identity.Translate(1, 2).Scale(2, 2)
	assert.Equal(t, Line{Point{1, 2}, Point{3, 2}}, Line{Point{0, 0}, Point{1, 0}}.Transform(m))
	assert.Equal(t, QuadBezier{{1, 2}, {3, 4}, {5, 2}}, QuadBezier{{0, 0}, {1, 1}, {2, 0}}.Transform(m))

	arc := newCenterArc(0, 0, 1, 1, 0, math.Pi).Transform(m).(Arc)
	assert.Equal(t, Point{3, 2}, arc.Start())
	assert.InDelta(t, -1, arc.End().X, 1e-12)
	assert.InDelta(t, 2*math.Pi, arc.Length(), 1e-9)
}
