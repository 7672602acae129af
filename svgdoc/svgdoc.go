// Provides parsing of SVG documents into flat lists of
// path segments, expressed in absolute document coordinates.
//
// Paths, lines, polylines, polygons, rectangles, circles and ellipses
// are converted; group transforms are resolved and `use` elements
// pointing to definitions are expanded. Everything else (text, images,
// styling) is ignored.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

var (
	// ErrParamMismatch is returned for malformed attribute values
	ErrParamMismatch = errors.New("param mismatch")

	// ErrUnsupportedElement is returned in StrictErrorMode
	// when an element can't be converted
	ErrUnsupportedElement = errors.New("unsupported element")

	errNoRoot = errors.New("invalid svg document: no element found")
	errNotSVG = errors.New("invalid svg document: root element is not <svg>")
)

// ErrorMode determines how unsupported elements are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements, and logs them
	// with the package logger
	WarnErrorMode
	// StrictErrorMode returns an error for unsupported elements
	StrictErrorMode
)

// Bounds defines a rectangle, such as a viewBox.
type Bounds struct{ X, Y, W, H float64 }

// Document holds the data extracted from a parsed SVG file.
type Document struct {
	// ViewBox is nil when the root element has no viewBox attribute
	ViewBox *Bounds

	Width, Height string // root width and height attributes, unparsed

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	// Paths is in document order, one item per drawable element
	Paths []Path

	attrs []xml.Attr // of the root element
}

// Attr returns the value of the attribute `name` of the root element.
func (d *Document) Attr(name string) (string, bool) {
	for _, attr := range d.attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SegmentCount returns the total number of segments in the document.
func (d *Document) SegmentCount() int {
	var n int
	for _, p := range d.Paths {
		n += len(p.Segments)
	}
	return n
}

// Read parses the SVG document from the given io.Reader.
// errMode determines if the parser ignores, errors out, or logs a warning
// when it finds an element it does not handle.
func Read(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := &Document{}
	cursor := &docCursor{
		doc:       doc,
		stack:     []rasterx.Matrix2D{Identity},
		defs:      make(map[string]*definition),
		errorMode: errMode,
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenRoot := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenRoot {
					return nil, errNoRoot
				}
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if !seenRoot {
				if se.Name.Local != "svg" {
					return nil, errNotSVG
				}
				seenRoot = true
				if err = doc.readRoot(se.Attr); err != nil {
					return nil, err
				}
			}
			if err = cursor.readStartElement(decoder, se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.closeElement()
			switch se.Name.Local {
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				doc.Titles[len(doc.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				doc.Descriptions[len(doc.Descriptions)-1] += string(se)
			}
		}
	}

	Logger().Debug("svg document parsed",
		"paths", len(doc.Paths), "segments", doc.SegmentCount(), "definitions", len(cursor.defs))
	return doc, nil
}

// ReadFile reads the document from the named file. See Read for
// the meaning of errMode.
func ReadFile(file string, errMode ErrorMode) (*Document, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Read(fin, errMode)
}

// readRoot stores the attributes of the root element. The viewBox,
// if present, must contain exactly four numbers.
func (d *Document) readRoot(attrs []xml.Attr) error {
	d.attrs = append([]xml.Attr(nil), attrs...)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			points, err := parseNumbers(attr.Value)
			if err != nil {
				return err
			}
			if len(points) != 4 {
				return errParamMismatch("viewBox", len(points))
			}
			d.ViewBox = &Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
		case "width":
			d.Width = attr.Value
		case "height":
			d.Height = attr.Value
		}
	}
	return nil
}
