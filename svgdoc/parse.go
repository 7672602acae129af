package svgdoc

import (
	"encoding/xml"
	"fmt"

	"github.com/srwiley/rasterx"
)

// Identity is the identity transform.
var Identity = rasterx.Matrix2D{A: 1, D: 1}

// maximum nesting of <use> elements, which protects against
// reference cycles
const maxUseDepth = 32

type (
	// docCursor is used while parsing SVG files
	docCursor struct {
		pathCursor
		doc                     *Document
		stack                   []rasterx.Matrix2D // transforms of the open elements
		defs                    map[string]*definition
		errorMode               ErrorMode
		inTitleText, inDescText bool
		useDepth                int
		switches                []switchFrame // open <switch> elements
	}

	// switchFrame tracks the children of a <switch>:
	// only the first one is drawn
	switchFrame struct {
		level int // len(stack) while reading the children
		drawn bool
	}

	// definition stores an element found in a <defs> or <symbol>
	// tag, to be drawn by <use>
	definition struct {
		ID, Tag  string
		Attrs    []xml.Attr
		Children []*definition
	}
)

func (c *docCursor) top() rasterx.Matrix2D { return c.stack[len(c.stack)-1] }

// push reads the transform attribute and pushes the
// resulting matrix onto the stack
func (c *docCursor) push(attrs []xml.Attr) error {
	m := c.top()
	for _, attr := range attrs {
		if attr.Name.Local == "transform" {
			var err error
			m, err = parseTransform(m, attr.Value)
			if err != nil {
				return err
			}
		}
	}
	c.stack = append(c.stack, m)
	return nil
}

func (c *docCursor) pop() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// closeElement is called on end elements
func (c *docCursor) closeElement() {
	c.pop()
	if n := len(c.switches); n > 0 && c.switches[n-1].level > len(c.stack) {
		c.switches = c.switches[:n-1]
	}
}

// isAlternative returns true for the elements which may be
// selected by a <switch>. Conditional processing attributes
// are not evaluated: they are all considered to pass.
func isAlternative(tag string) bool {
	switch tag {
	case "title", "desc", "metadata", "defs", "symbol", "style", "script":
		return false
	}
	return true
}

// skipAlternative returns true if `tag` is a child of an open
// <switch> which has already selected an element.
func (c *docCursor) skipAlternative(tag string) bool {
	n := len(c.switches)
	if n == 0 || c.switches[n-1].level != len(c.stack) || !isAlternative(tag) {
		return false
	}
	if c.switches[n-1].drawn {
		return true
	}
	c.switches[n-1].drawn = true
	return false
}

// handleError reports the element `tag` as unsupported,
// according to the error mode.
func (c *docCursor) handleError(tag, reason string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("%w: <%s> %s", ErrUnsupportedElement, tag, reason)
	case WarnErrorMode:
		Logger().Warn("skipping svg element", "element", tag, "reason", reason)
	}
	return nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// flush stores the segments built by the last element,
// mapped to absolute coordinates.
func (c *docCursor) flush(tag string, attrs []xml.Attr) {
	if len(c.path) == 0 {
		return
	}
	m := c.top()
	segments := make([]Segment, len(c.path))
	for i, seg := range c.path {
		if m == Identity {
			segments[i] = seg
		} else {
			segments[i] = seg.Transform(m)
		}
	}
	c.doc.Paths = append(c.doc.Paths, Path{ID: attrValue(attrs, "id"), Tag: tag, Segments: segments})
	c.path = c.path[:0]
}

func (c *docCursor) readStartElement(decoder *xml.Decoder, se xml.StartElement) error {
	tag := se.Name.Local
	if c.skipAlternative(tag) {
		Logger().Debug("skipping svg element", "element", tag, "reason", "not selected by <switch>")
		return decoder.Skip()
	}
	if err := c.push(se.Attr); err != nil {
		return fmt.Errorf("<%s>: %w", tag, err)
	}
	switch tag {
	case "defs", "symbol":
		// not drawn, only stored
		def, err := readDefinition(decoder, se)
		c.pop() // end element consumed
		if err != nil {
			return err
		}
		c.registerDefinition(def)
		return nil
	}
	df, ok := drawFuncs[tag]
	if !ok {
		c.pop() // end element consumed by Skip
		if err := c.handleError(tag, "is not converted to a path"); err != nil {
			return err
		}
		return decoder.Skip()
	}
	if err := df(c, se.Attr); err != nil {
		return fmt.Errorf("<%s>: %w", tag, err)
	}
	c.flush(tag, se.Attr)
	if tag == "switch" {
		c.switches = append(c.switches, switchFrame{level: len(c.stack)})
	}
	return nil
}

// readDefinition reads the whole content of the element `se`
func readDefinition(decoder *xml.Decoder, se xml.StartElement) (*definition, error) {
	se = se.Copy()
	def := &definition{ID: attrValue(se.Attr, "id"), Tag: se.Name.Local, Attrs: se.Attr}
	for {
		t, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		switch tok := t.(type) {
		case xml.StartElement:
			child, err := readDefinition(decoder, tok)
			if err != nil {
				return nil, err
			}
			def.Children = append(def.Children, child)
		case xml.EndElement:
			return def, nil
		}
	}
}

func (c *docCursor) registerDefinition(def *definition) {
	if def.ID != "" {
		c.defs[def.ID] = def
	}
	for _, child := range def.Children {
		c.registerDefinition(child)
	}
}

// replay draws a stored definition, as required by <use>.
// Errors are returned as is, the calling <use> element
// being reported by readStartElement.
func (c *docCursor) replay(def *definition) error {
	tag := def.Tag
	switch tag {
	case "defs", "title", "desc":
		return nil
	case "symbol":
		tag = "g"
	}
	if err := c.push(def.Attrs); err != nil {
		return err
	}
	defer c.pop()
	df, ok := drawFuncs[tag]
	if !ok {
		return c.handleError(tag, "is not converted to a path")
	}
	if err := df(c, def.Attrs); err != nil {
		return err
	}
	c.flush(tag, def.Attrs)
	for _, child := range def.Children {
		if err := c.replay(child); err != nil {
			return err
		}
		if tag == "switch" && isAlternative(child.Tag) {
			break
		}
	}
	return nil
}
