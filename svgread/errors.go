package svgread

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateViewBox is returned when the viewBox has
	// a zero width or height.
	ErrDegenerateViewBox = errors.New("degenerate viewBox")

	// ErrMissingDimension is returned when the root element has a viewBox
	// but no width or height.
	ErrMissingDimension = errors.New("missing root dimension")

	// ErrInvalidQuantization is returned for non positive (or non finite)
	// quantization lengths.
	ErrInvalidQuantization = errors.New("invalid quantization")
)

// ParseError is returned when the input can't be read
// or is not a valid SVG document.
type ParseError struct {
	File string // empty for streams
	Err  error
}

func (pe *ParseError) Error() string {
	if pe.File == "" {
		return fmt.Sprintf("svgread: invalid svg: %s", pe.Err)
	}
	return fmt.Sprintf("svgread: invalid svg %s: %s", pe.File, pe.Err)
}

func (pe *ParseError) Unwrap() error { return pe.Err }
