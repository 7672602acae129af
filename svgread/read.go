// Package svgread converts SVG documents into polylines, ready
// to be transformed and plotted.
//
// Every segment of the drawable elements (as flattened by svgdoc)
// becomes one Polyline: lines are kept as is, curves are approximated
// by chords whose length is bounded by the quantization length.
// Points are expressed in the unit of the root width and height
// (pixels, 96 per inch), through the viewBox transform.
package svgread

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/units"
)

// DefaultQuantization is the default maximum chord length.
const DefaultQuantization = "1mm"

// ParseQuantization converts a length with an optional unit to pixels,
// and checks it is usable as quantization.
func ParseQuantization(s string) (float64, error) {
	q, err := units.ParseLength(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidQuantization, err)
	}
	if err := checkQuantization(q); err != nil {
		return 0, err
	}
	return q, nil
}

func checkQuantization(q float64) error {
	if !(q > 0) || math.IsInf(q, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidQuantization, q)
	}
	return nil
}

func errorMode(errMode []svgdoc.ErrorMode) svgdoc.ErrorMode {
	if len(errMode) == 0 {
		return svgdoc.IgnoreErrorMode
	}
	return errMode[0]
}

// Extract reads the SVG file and returns its polylines.
// An optional error mode may be given to control the handling
// of unsupported elements: by default they are silently ignored.
func Extract(file string, quantization float64, errMode ...svgdoc.ErrorMode) (Lines, error) {
	if err := checkQuantization(quantization); err != nil {
		return nil, err
	}
	doc, err := svgdoc.ReadFile(file, errorMode(errMode))
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	lines, err := documentLines(doc, quantization)
	if err != nil {
		return nil, fmt.Errorf("svgread: %s: %w", file, err)
	}
	svgdoc.Logger().Debug("svg lines extracted", "file", file,
		"paths", len(doc.Paths), "lines", lines.Len(), "points", lines.PointCount())
	return lines, nil
}

// ReadLines is the same as Extract, for a document read from `r`.
func ReadLines(r io.Reader, quantization float64, errMode ...svgdoc.ErrorMode) (Lines, error) {
	if err := checkQuantization(quantization); err != nil {
		return nil, err
	}
	doc, err := svgdoc.Read(r, errorMode(errMode))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	lines, err := documentLines(doc, quantization)
	if err != nil {
		return nil, fmt.Errorf("svgread: %w", err)
	}
	svgdoc.Logger().Debug("svg lines extracted",
		"paths", len(doc.Paths), "lines", lines.Len(), "points", lines.PointCount())
	return lines, nil
}

// ExtractAll calls Extract for each file, in parallel.
// The results are returned in the order of `files`; if some
// extractions fail, the error of the first failing file is returned.
func ExtractAll(files []string, quantization float64, errMode ...svgdoc.ErrorMode) ([]Lines, error) {
	if err := checkQuantization(quantization); err != nil {
		return nil, err
	}
	out := make([]Lines, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			out[i], errs[i] = Extract(file, quantization, errMode...)
		}(i, file)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func documentLines(doc *svgdoc.Document, quantization float64) (Lines, error) {
	vt, err := ResolveViewBox(doc)
	if err != nil {
		return nil, err
	}
	out := make(Lines, 0, doc.SegmentCount())
	for _, path := range doc.Paths {
		for _, seg := range path.Segments {
			line, err := Linearize(seg, quantization)
			if err != nil {
				return nil, fmt.Errorf("<%s>: %w", path.Tag, err)
			}
			for i, p := range line {
				line[i] = vt.Apply(p)
			}
			out = append(out, line)
		}
	}
	return out, nil
}
