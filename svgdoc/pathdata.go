package svgdoc

import (
	"fmt"
	"strconv"
)

// This file implements the compilation of the path data
// ('d' attribute) into segments

// scanner reads numbers and flags from attribute values,
// accepting the compact forms allowed by the SVG grammar ("1-2", ".5.5", "1e-3").
type scanner struct {
	s   string
	pos int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) skipSeparators() {
	for sc.pos < len(sc.s) && (isSpace(sc.s[sc.pos]) || sc.s[sc.pos] == ',') {
		sc.pos++
	}
}

// hasNumber skips separators and reports if a number follows.
func (sc *scanner) hasNumber() bool {
	sc.skipSeparators()
	if sc.done() {
		return false
	}
	c := sc.s[sc.pos]
	return isDigit(c) || c == '-' || c == '+' || c == '.'
}

func (sc *scanner) digits() int {
	start := sc.pos
	for sc.pos < len(sc.s) && isDigit(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.pos - start
}

func (sc *scanner) number() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
		sc.pos++
	}
	n := sc.digits()
	if sc.pos < len(sc.s) && sc.s[sc.pos] == '.' {
		sc.pos++
		n += sc.digits()
	}
	if n == 0 {
		sc.pos = start
		return 0, fmt.Errorf("%w: expected number at offset %d in %q", ErrParamMismatch, start, sc.s)
	}
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == 'e' || sc.s[sc.pos] == 'E') {
		save := sc.pos
		sc.pos++
		if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
			sc.pos++
		}
		if sc.digits() == 0 {
			sc.pos = save
		}
	}
	return strconv.ParseFloat(sc.s[start:sc.pos], 64)
}

// flag reads an arc flag, which may be packed with the next value.
func (sc *scanner) flag() (bool, error) {
	sc.skipSeparators()
	if sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case '0':
			sc.pos++
			return false, nil
		case '1':
			sc.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: expected arc flag at offset %d in %q", ErrParamMismatch, sc.pos, sc.s)
}

// parseNumbers reads a list of numbers separated by spaces or commas,
// as found in viewBox, points or transform arguments.
func parseNumbers(s string) ([]float64, error) {
	sc := scanner{s: s}
	var out []float64
	for sc.hasNumber() {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	sc.skipSeparators()
	if !sc.done() {
		return nil, fmt.Errorf("%w: unexpected %q in %q", ErrParamMismatch, sc.s[sc.pos], s)
	}
	return out, nil
}

// pathCursor accumulates segments in user space,
// tracking the current point and the control point used by
// the smooth curve commands.
type pathCursor struct {
	path       []Segment
	cur, start Point
	cntl       Point // last control point
	lastKey    byte
	scan       scanner
}

func (c *pathCursor) init() {
	c.path = c.path[:0]
	c.cur, c.start, c.cntl = Point{}, Point{}, Point{}
	c.lastKey = ' '
}

func (c *pathCursor) moveTo(p Point) {
	c.cur, c.start, c.cntl = p, p, p
}

func (c *pathCursor) lineTo(p Point) {
	c.path = append(c.path, Line{c.cur, p})
	c.cur, c.cntl = p, p
}

// close joins the current point to the start of the sub-path,
// if needed.
func (c *pathCursor) close() {
	if c.cur != c.start {
		c.path = append(c.path, Line{c.cur, c.start})
	}
	c.cur, c.cntl = c.start, c.start
}

func (c *pathCursor) quadTo(b, p Point) {
	c.path = append(c.path, QuadBezier{c.cur, b, p})
	c.cur, c.cntl = p, b
}

func (c *pathCursor) cubicTo(b, cc, p Point) {
	c.path = append(c.path, CubicBezier{c.cur, b, cc, p})
	c.cur, c.cntl = p, cc
}

func (c *pathCursor) arcTo(rx, ry, rot float64, largeArc, sweep bool, p Point) {
	arc, isLine, ok := newEndpointArc(c.cur, rx, ry, rot, largeArc, sweep, p)
	switch {
	case ok:
		c.path = append(c.path, arc)
	case isLine:
		c.path = append(c.path, Line{c.cur, p})
	}
	c.cur, c.cntl = p, p
}

func isCommand(k byte) bool {
	switch k {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// compilePath parses the path data `d`, appending the segments to c.path
func (c *pathCursor) compilePath(d string) error {
	c.init()
	c.scan = scanner{s: d}
	for {
		c.scan.skipSeparators()
		if c.scan.done() {
			return nil
		}
		k := c.scan.s[c.scan.pos]
		if !isCommand(k) {
			return fmt.Errorf("%w: unexpected %q in path data", ErrParamMismatch, k)
		}
		if c.lastKey == ' ' && k != 'M' && k != 'm' {
			return fmt.Errorf("%w: path data must start with a move command", ErrParamMismatch)
		}
		c.scan.pos++
		if err := c.addSeg(k); err != nil {
			return err
		}
	}
}

// point reads a coordinate pair, relative to the current point if `rel` is true.
func (c *pathCursor) point(rel bool) (Point, error) {
	x, err := c.scan.number()
	if err != nil {
		return Point{}, err
	}
	y, err := c.scan.number()
	if err != nil {
		return Point{}, err
	}
	if rel {
		return Point{c.cur.X + x, c.cur.Y + y}, nil
	}
	return Point{x, y}, nil
}

func (c *pathCursor) points(rel bool, n int) ([]Point, error) {
	out := make([]Point, n)
	for i := range out {
		var err error
		x, y := c.cur.X, c.cur.Y
		out[i], err = c.point(false)
		if err != nil {
			return nil, err
		}
		if rel { // all the points of a relative command refer to its start
			out[i].X += x
			out[i].Y += y
		}
	}
	return out, nil
}

// addSeg reads the arguments of the command `k`, including
// its implicit repetitions.
func (c *pathCursor) addSeg(k byte) error {
	rel := 'a' <= k && k <= 'z'
	lower := k | 0x20
	if lower == 'z' {
		c.close()
		c.lastKey = k
		return nil
	}
	for first := true; first || c.scan.hasNumber(); first = false {
		if err := c.addOne(lower, rel, first); err != nil {
			return err
		}
		c.lastKey = lower
	}
	return nil
}

func (c *pathCursor) addOne(k byte, rel, first bool) error {
	switch k {
	case 'm':
		p, err := c.point(rel)
		if err != nil {
			return err
		}
		if first {
			c.moveTo(p)
		} else { // implicit lineto
			c.lineTo(p)
		}
	case 'l':
		p, err := c.point(rel)
		if err != nil {
			return err
		}
		c.lineTo(p)
	case 'h':
		x, err := c.scan.number()
		if err != nil {
			return err
		}
		if rel {
			x += c.cur.X
		}
		c.lineTo(Point{x, c.cur.Y})
	case 'v':
		y, err := c.scan.number()
		if err != nil {
			return err
		}
		if rel {
			y += c.cur.Y
		}
		c.lineTo(Point{c.cur.X, y})
	case 'c':
		ps, err := c.points(rel, 3)
		if err != nil {
			return err
		}
		c.cubicTo(ps[0], ps[1], ps[2])
	case 's':
		ps, err := c.points(rel, 2)
		if err != nil {
			return err
		}
		b := c.cur
		if c.lastKey == 'c' || c.lastKey == 's' {
			b = c.cntl.reflect(c.cur)
		}
		c.cubicTo(b, ps[0], ps[1])
	case 'q':
		ps, err := c.points(rel, 2)
		if err != nil {
			return err
		}
		c.quadTo(ps[0], ps[1])
	case 't':
		p, err := c.point(rel)
		if err != nil {
			return err
		}
		b := c.cur
		if c.lastKey == 'q' || c.lastKey == 't' {
			b = c.cntl.reflect(c.cur)
		}
		c.quadTo(b, p)
	case 'a':
		var radii [3]float64
		for i := range radii {
			var err error
			if radii[i], err = c.scan.number(); err != nil {
				return err
			}
		}
		largeArc, err := c.scan.flag()
		if err != nil {
			return err
		}
		sweep, err := c.scan.flag()
		if err != nil {
			return err
		}
		p, err := c.point(rel)
		if err != nil {
			return err
		}
		c.arcTo(radii[0], radii[1], radii[2], largeArc, sweep, p)
	}
	return nil
}
