package svgread

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, content string, q float64) Lines {
	t.Helper()
	lines, err := ReadLines(strings.NewReader(content), q)
	require.NoError(t, err)
	return lines
}

func parseDoc(t *testing.T, content string) *svgdoc.Document {
	t.Helper()
	doc, err := svgdoc.Read(strings.NewReader(content), svgdoc.IgnoreErrorMode)
	require.NoError(t, err)
	return doc
}

func TestIdentityTransform(t *testing.T) {
	lines := readLines(t, `<svg width="10" height="10">
		<line x1="3.25" y1="-4" x2="7" y2="8.5"/>
		<polyline points="1 2 3 4"/>
	</svg>`, 1)
	assert.Equal(t, Lines{
		{{X: 3.25, Y: -4}, {X: 7, Y: 8.5}},
		{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}, lines)
}

func TestLineExactness(t *testing.T) {
	for _, q := range []float64{1e-3, 0.5, 1, 1e6} {
		lines := readLines(t, `<svg><line x1="0" y1="0" x2="10" y2="10"/></svg>`, q)
		assert.Equal(t, Lines{{{X: 0, Y: 0}, {X: 10, Y: 10}}}, lines)
	}
}

func TestCurveSubdivision(t *testing.T) {
	const content = `<svg>
		<path d="M0 0 C 10 20 30 -20 40 0 Q 60 30 80 0 A 15 25 30 1 0 100 10"/>
		<circle cx="-50" cy="20" r="10"/>
	</svg>`
	doc := parseDoc(t, content)
	var curves []svgdoc.Curve
	for _, p := range doc.Paths {
		for _, s := range p.Segments {
			curves = append(curves, s.(svgdoc.Curve))
		}
	}
	require.Len(t, curves, 5)

	for _, q := range []float64{0.1, 1, 3.7} {
		lines := readLines(t, content, q)
		require.Len(t, lines, len(curves))
		for i, c := range curves {
			step := int(math.Ceil(c.Length() / q))
			line := lines[i]
			require.Len(t, line, step+1)
			// exact end points
			assert.Equal(t, c.Start(), line[0])
			assert.Equal(t, c.End(), line[step])
			for j := 1; j < step; j++ {
				assert.Equal(t, c.PointAt(float64(j)/float64(step)), line[j])
			}
		}
	}
}

func TestShortCurve(t *testing.T) {
	// a curve shorter than the quantization is its chord
	lines := readLines(t, `<svg><path d="M0 0 Q 1 1 2 0"/></svg>`, 10)
	assert.Equal(t, Lines{{{X: 0, Y: 0}, {X: 2, Y: 0}}}, lines)

	// zero length curve
	lines = readLines(t, `<svg><path d="M1 1 C 1 1 1 1 1 1"/></svg>`, 10)
	assert.Equal(t, Lines{{{X: 1, Y: 1}, {X: 1, Y: 1}}}, lines)
}

func TestCircleCount(t *testing.T) {
	lines := readLines(t, `<svg><circle r="10"/></svg>`, 1)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Len(t, l, 32+1) // ceil(10 pi)
	}
	assert.Equal(t, 66, lines.PointCount())
	assert.Equal(t, 2, lines.Len())
}

func TestViewBoxScale(t *testing.T) {
	lines := readLines(t, `<svg width="100" height="50" viewBox="0 0 200 100">
		<line x1="0" y1="0" x2="200" y2="100"/>
	</svg>`, 1)
	assert.Equal(t, Lines{{{X: 0, Y: 0}, {X: 100, Y: 50}}}, lines)
}

func TestViewBoxOffset(t *testing.T) {
	lines := readLines(t, `<svg width="100" height="100" viewBox="10 10 100 100">
		<line x1="10" y1="10" x2="110" y2="60"/>
	</svg>`, 1)
	assert.Equal(t, Lines{{{X: 0, Y: 0}, {X: 100, Y: 50}}}, lines)
}

func TestResolveViewBox(t *testing.T) {
	vt, err := ResolveViewBox(parseDoc(t, `<svg width="20" height="20"/>`))
	require.NoError(t, err)
	assert.Equal(t, IdentityTransform, vt)

	vt, err = ResolveViewBox(parseDoc(t, `<svg width="254mm" height="1in" viewBox="-5 5 100 48"/>`))
	require.NoError(t, err)
	assert.InDelta(t, 9.6, vt.ScaleX, 1e-12)
	assert.InDelta(t, 2, vt.ScaleY, 1e-12)
	assert.Equal(t, 5., vt.OffsetX)
	assert.Equal(t, -5., vt.OffsetY)

	// preserveAspectRatio is ignored
	vt, err = ResolveViewBox(parseDoc(t, `<svg width="100" height="100" viewBox="0 0 50 100" preserveAspectRatio="xMidYMid meet"/>`))
	require.NoError(t, err)
	assert.Equal(t, ViewBoxTransform{ScaleX: 2, ScaleY: 1}, vt)
}

func TestResolveViewBoxErrors(t *testing.T) {
	for _, test := range []struct {
		root string
		err  error
	}{
		{`<svg width="100" height="100" viewBox="0 0 0 100"/>`, ErrDegenerateViewBox},
		{`<svg width="100" height="100" viewBox="0 0 100 0"/>`, ErrDegenerateViewBox},
		{`<svg height="100" viewBox="0 0 100 100"/>`, ErrMissingDimension},
		{`<svg width="100" viewBox="0 0 100 100"/>`, ErrMissingDimension},
		{`<svg width="100parsec" height="100" viewBox="0 0 100 100"/>`, units.ErrInvalidLength},
	} {
		_, err := ResolveViewBox(parseDoc(t, test.root))
		assert.ErrorIs(t, err, test.err, test.root)

		_, err = ReadLines(strings.NewReader(test.root), 1)
		assert.ErrorIs(t, err, test.err, test.root)
	}
}

func TestEmptyDocument(t *testing.T) {
	lines, err := Extract("testdata/text-only.svg", 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestExtract(t *testing.T) {
	q, err := ParseQuantization(DefaultQuantization)
	require.NoError(t, err)

	lines, err := Extract("testdata/drawing.svg", q)
	require.NoError(t, err)
	// rounded rect (4 lines, 4 arcs), circle (2 arcs), cubic, line
	require.Len(t, lines, 8+2+1+1)

	// mm document: user units are mm, points are in pixels
	last := lines[len(lines)-1]
	require.Len(t, last, 2)
	assert.InDelta(t, 30*units.MM, last[0].X, 1e-9)
	assert.InDelta(t, 220*units.MM, last[0].Y, 1e-9)
	assert.InDelta(t, 180*units.MM, last[1].X, 1e-9)

	for _, l := range lines {
		assert.GreaterOrEqual(t, len(l), 2)
	}
}

func TestDeterminism(t *testing.T) {
	first, err := Extract("testdata/drawing.svg", 0.5)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Extract("testdata/drawing.svg", 0.5)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestInvalidQuantization(t *testing.T) {
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Extract("testdata/does-not-exist.svg", q)
		assert.ErrorIs(t, err, ErrInvalidQuantization)

		_, err = ReadLines(strings.NewReader("<svg/>"), q)
		assert.ErrorIs(t, err, ErrInvalidQuantization)
	}

	// positive, but too small for the curve
	_, err := ReadLines(strings.NewReader(`<svg><path d="M0 0 Q 50 100 100 0"/></svg>`), 1e-300)
	assert.ErrorIs(t, err, ErrInvalidQuantization)
	_, err = Linearize(svgdoc.QuadBezier{{}, {X: 50, Y: 100}, {X: 100}}, 1e-300)
	assert.ErrorIs(t, err, ErrInvalidQuantization)
	line, err := Linearize(svgdoc.QuadBezier{{}, {X: 50, Y: 100}, {X: 100}}, 0.01)
	require.NoError(t, err)
	assert.Greater(t, len(line), 10000)

	for _, s := range []string{"0mm", "-1in", "abc", "", "1furlong"} {
		_, err := ParseQuantization(s)
		assert.ErrorIs(t, err, ErrInvalidQuantization, s)
	}
	_, err = ParseQuantization("abc")
	assert.ErrorIs(t, err, units.ErrInvalidLength)

	q, err := ParseQuantization("0.1in")
	require.NoError(t, err)
	assert.InDelta(t, 9.6, q, 1e-12)
}

func TestParseErrors(t *testing.T) {
	_, err := Extract("testdata/does-not-exist.svg", 1)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "testdata/does-not-exist.svg", pe.File)
	assert.Contains(t, err.Error(), "does-not-exist.svg")

	_, err = ReadLines(strings.NewReader(`<svg><line x2="1"`), 1)
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, pe.File)

	_, err = ReadLines(strings.NewReader(`<html/>`), 1)
	require.ErrorAs(t, err, &pe)

	_, err = ReadLines(strings.NewReader(`<svg><text/></svg>`), 1, svgdoc.StrictErrorMode)
	assert.ErrorIs(t, err, svgdoc.ErrUnsupportedElement)
}

func TestExtractAll(t *testing.T) {
	files := []string{"testdata/drawing.svg", "testdata/text-only.svg", "testdata/drawing.svg"}
	all, err := ExtractAll(files, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Len(t, all[0], 12)
	assert.Empty(t, all[1])
	assert.Equal(t, all[0], all[2])

	_, err = ExtractAll([]string{"testdata/drawing.svg", "testdata/missing-1.svg", "testdata/missing-2.svg"}, 1)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "testdata/missing-1.svg", pe.File)

	all, err = ExtractAll(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	svgdoc.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { svgdoc.SetLogger(nil) })

	_, err := Extract("testdata/drawing.svg", 1)
	require.NoError(t, err)
	logs := buf.String()
	assert.Contains(t, logs, `msg="svg lines extracted"`)
	assert.Contains(t, logs, "file=testdata/drawing.svg")
	assert.Contains(t, logs, "lines=12")
}
