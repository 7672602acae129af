package svgread

import (
	"fmt"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/units"
)

// ViewBoxTransform maps document user space to the
// width/height space of the root element.
type ViewBoxTransform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// IdentityTransform is used for documents without viewBox.
var IdentityTransform = ViewBoxTransform{ScaleX: 1, ScaleY: 1}

// Apply returns (ScaleX*(x+OffsetX), ScaleY*(y+OffsetY)).
func (vt ViewBoxTransform) Apply(p svgdoc.Point) svgdoc.Point {
	return svgdoc.Point{
		X: vt.ScaleX * (p.X + vt.OffsetX),
		Y: vt.ScaleY * (p.Y + vt.OffsetY),
	}
}

// ResolveViewBox computes the transform defined by the viewBox, width
// and height attributes of the root element.
// preserveAspectRatio is not supported: the scaling is not uniform
// when the aspect ratios differ.
func ResolveViewBox(doc *svgdoc.Document) (ViewBoxTransform, error) {
	vb := doc.ViewBox
	if vb == nil {
		return IdentityTransform, nil
	}
	if vb.W == 0 || vb.H == 0 {
		return ViewBoxTransform{}, fmt.Errorf("%w: %g x %g", ErrDegenerateViewBox, vb.W, vb.H)
	}
	w, err := dimension(doc, "width")
	if err != nil {
		return ViewBoxTransform{}, err
	}
	h, err := dimension(doc, "height")
	if err != nil {
		return ViewBoxTransform{}, err
	}
	return ViewBoxTransform{
		ScaleX:  w / vb.W,
		ScaleY:  h / vb.H,
		OffsetX: -vb.X,
		OffsetY: -vb.Y,
	}, nil
}

func dimension(doc *svgdoc.Document, name string) (float64, error) {
	s, ok := doc.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingDimension, name)
	}
	v, err := units.ParseLength(s)
	if err != nil {
		return 0, fmt.Errorf("root %s: %w", name, err)
	}
	return v, nil
}
