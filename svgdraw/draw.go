// Given extracted polylines, implements how to
// draw them on screen, for previews.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/svglines/svgread"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Driver knows how to do the actual draw operations
// but doesn't need any SVG kwowledge.
// In particular, the transformation matrix is already applied to the points
// before sending them to the Driver.
type Driver interface {
	// Clear must reset the internal state (used before starting a new polyline)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// Draw strokes the accumulated path
	Draw()
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Round JoinMode = iota
	Bevel
	Miter
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

// StrokeOptions is the style shared by all the polylines of a preview.
type StrokeOptions struct {
	Width float64     // in pixels
	Color color.Color // nil means black
	Join  JoinMode
	Cap   CapMode
}

// DefaultStroke is a thin black round stroke.
var DefaultStroke = StrokeOptions{Width: 1, Color: color.Black, Join: Round, Cap: RoundCap}

// RGBA returns the 8-bit components of the stroke color.
func (so StrokeOptions) RGBA() (r, g, b, a uint8) {
	var c color.Color = color.Black
	if so.Color != nil {
		c = so.Color
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return nc.R, nc.G, nc.B, nc.A
}

// ToFixed converts a point in pixels.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// FromFixed is the inverse of ToFixed.
func FromFixed(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// DrawLines sends every polyline to the driver, mapped by `m`.
// Polylines whose end point is their start point are closed.
func DrawLines(lines svgread.Lines, d Driver, m rasterx.Matrix2D) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		d.Clear()
		d.Start(ToFixed(m.Transform(line[0].X, line[0].Y)))
		last := len(line)
		closed := len(line) > 2 && line[0] == line[len(line)-1]
		if closed {
			last-- // Stop adds the closing line
		}
		for _, p := range line[1:last] {
			d.Line(ToFixed(m.Transform(p.X, p.Y)))
		}
		d.Stop(closed)
		d.Draw()
	}
}
