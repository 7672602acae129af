package svgdraw

import (
	"math"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/svgread"
	"github.com/srwiley/rasterx"
)

// BoundingBox returns the smallest rectangle containing all the points,
// or false if there are no points.
func BoundingBox(lines svgread.Lines) (svgdoc.Bounds, bool) {
	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)
	for _, line := range lines {
		for _, p := range line {
			minX = math.Min(p.X, minX)
			minY = math.Min(p.Y, minY)
			maxX = math.Max(p.X, maxX)
			maxY = math.Max(p.Y, maxY)
		}
	}
	if minX > maxX {
		return svgdoc.Bounds{}, false
	}
	return svgdoc.Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// FitMatrix returns the uniform scaling centering `bbox` into
// the rectangle (0, 0, width, height), keeping `margin` on each side.
// Degenerate boxes are only translated.
func FitMatrix(bbox svgdoc.Bounds, width, height, margin float64) rasterx.Matrix2D {
	availW, availH := width-2*margin, height-2*margin
	scale := math.Inf(1)
	if bbox.W > 0 {
		scale = availW / bbox.W
	}
	if bbox.H > 0 {
		scale = math.Min(scale, availH/bbox.H)
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		scale = 1
	}
	return svgdoc.Identity.
		Translate(width/2, height/2).
		Scale(scale, scale).
		Translate(-(bbox.X + bbox.W/2), -(bbox.Y + bbox.H/2))
}
