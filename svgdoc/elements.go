package svgdoc

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglines/units"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *docCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      gF,
	"g":        gF,
	"a":        gF,
	"switch":   gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
	"desc":     descF,
	"title":    titleF,
}

// reference dimension of percentage values
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// viewport returns the size used to resolve percentages.
func (c *docCursor) viewport() (w, h float64) {
	if vb := c.doc.ViewBox; vb != nil {
		return vb.W, vb.H
	}
	w, _ = units.ParseLength(c.doc.Width)
	h, _ = units.ParseLength(c.doc.Height)
	return w, h
}

// parseUnit converts a coordinate or length attribute, which may
// use a unit suffix or a percentage of the viewport.
func (c *docCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid percentage %q", ErrParamMismatch, s)
		}
		w, h := c.viewport()
		switch asPerc {
		case widthPercentage:
			return v / 100 * w, nil
		case heightPercentage:
			return v / 100 * h, nil
		default:
			return v / 100 * math.Hypot(w, h) / math.Sqrt2, nil
		}
	}
	return units.ParseLength(s)
}

func gF(*docCursor, []xml.Attr) error { return nil } // containers only push their transform

func rectF(c *docCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var rxSet, rySet bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
			rxSet = true
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
			rySet = true
		}
		if err != nil {
			return err
		}
	}
	if w < 0 || h < 0 || rx < 0 || ry < 0 {
		return fmt.Errorf("%w: negative rectangle dimension", ErrParamMismatch)
	}
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil
	}
	if rxSet && !rySet {
		ry = rx
	} else if rySet && !rxSet {
		rx = ry
	}
	rx, ry = math.Min(rx, w/2), math.Min(ry, h/2)

	if rx == 0 || ry == 0 {
		c.moveTo(Point{x, y})
		c.lineTo(Point{x + w, y})
		c.lineTo(Point{x + w, y + h})
		c.lineTo(Point{x, y + h})
		c.close()
		return nil
	}

	// rounded corners, clockwise from the top left
	lineTo := func(p Point) {
		if p != c.cur {
			c.lineTo(p)
		}
	}
	c.moveTo(Point{x + rx, y})
	lineTo(Point{x + w - rx, y})
	c.arcTo(rx, ry, 0, false, true, Point{x + w, y + ry})
	lineTo(Point{x + w, y + h - ry})
	c.arcTo(rx, ry, 0, false, true, Point{x + w - rx, y + h})
	lineTo(Point{x + rx, y + h})
	c.arcTo(rx, ry, 0, false, true, Point{x, y + h - ry})
	lineTo(Point{x, y + ry})
	c.arcTo(rx, ry, 0, false, true, Point{x + rx, y})
	c.close()
	return nil
}

func circleF(c *docCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx < 0 || ry < 0 {
		return fmt.Errorf("%w: negative radius", ErrParamMismatch)
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	// two half ellipses, starting from the leftmost point,
	// with exact end points
	left, right := Point{cx - rx, cy}, Point{cx + rx, cy}
	lower := newCenterArc(cx, cy, rx, ry, math.Pi, -math.Pi)
	lower.from, lower.to = left, right
	upper := newCenterArc(cx, cy, rx, ry, 0, -math.Pi)
	upper.from, upper.to = right, left
	c.path = append(c.path, lower, upper)
	return nil
}

func lineF(c *docCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.moveTo(Point{x1, y1})
	c.lineTo(Point{x2, y2})
	return nil
}

func polylineF(c *docCursor, attrs []xml.Attr) error {
	_, err := c.readPolyline(attrs)
	return err
}

// readPolyline returns the number of points read
func (c *docCursor) readPolyline(attrs []xml.Attr) (int, error) {
	points, err := parseNumbers(attrValue(attrs, "points"))
	if err != nil {
		return 0, err
	}
	if len(points)%2 != 0 {
		return 0, fmt.Errorf("%w: odd number of points", ErrParamMismatch)
	}
	if len(points) < 4 { // a single point draws nothing
		return 0, nil
	}
	c.moveTo(Point{points[0], points[1]})
	for i := 2; i < len(points)-1; i += 2 {
		c.lineTo(Point{points[i], points[i+1]})
	}
	return len(points) / 2, nil
}

func polygonF(c *docCursor, attrs []xml.Attr) error {
	n, err := c.readPolyline(attrs)
	if n > 0 {
		c.close()
	}
	return err
}

func pathF(c *docCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func descF(c *docCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.doc.Descriptions = append(c.doc.Descriptions, "")
	return nil
}

func titleF(c *docCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.doc.Titles = append(c.doc.Titles, "")
	return nil
}

func useF(c *docCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if href == "" {
		return c.handleError("use", "without href")
	}
	if !strings.HasPrefix(href, "#") {
		return c.handleError("use", "only the ID CSS selector is supported")
	}
	def, ok := c.defs[href[1:]]
	if !ok {
		return c.handleError("use", fmt.Sprintf("href %s was not found in saved defs", href))
	}
	if c.useDepth >= maxUseDepth {
		return fmt.Errorf("%w: too many nested <use> (cycle on %s ?)", ErrParamMismatch, href)
	}
	c.useDepth++
	defer func() { c.useDepth-- }()

	c.stack = append(c.stack, c.top().Translate(x, y))
	defer c.pop()
	return c.replay(def)
}
