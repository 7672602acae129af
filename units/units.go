// Converts SVG and CSS length strings such as "210mm" or "0.5in"
// to the document base unit, the CSS pixel (1/96 inch).
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned for unparsable numbers and unknown unit suffixes.
var ErrInvalidLength = errors.New("invalid length")

// Factors converting one unit to CSS pixels.
const (
	PX = 1.
	IN = 96.
	MM = IN / 25.4
	CM = IN / 2.54
	PT = IN / 72
	PC = IN / 6
	M  = 100 * CM
	KM = 1000 * M
	FT = 12 * IN
	YD = 3 * FT
)

// Units maps a unit suffix to its size in pixels.
var Units = map[string]float64{
	"px": PX,
	"in": IN,
	"mm": MM,
	"cm": CM,
	"pt": PT,
	"pc": PC,
	"m":  M,
	"km": KM,
	"ft": FT,
	"yd": YD,
}

// splitUnit separates the trailing letters of `s`.
func splitUnit(s string) (number, unit string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		i--
	}
	return s[:i], strings.ToLower(s[i:])
}

// ParseLength converts `s` to pixels. A missing suffix means pixels.
// Whitespace between the number and the unit is accepted.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidLength)
	}
	number, unit := splitUnit(s)
	factor := PX
	if unit != "" {
		var ok bool
		factor, ok = Units[unit]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidLength, unit, s)
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return v * factor, nil
}

// Length is a pixel value which may be set from a string
// with a unit suffix, suitable for the flag package.
type Length float64

// String implements flag.Value.
func (l Length) String() string {
	return strconv.FormatFloat(float64(l), 'g', -1, 64)
}

// Set implements flag.Value.
func (l *Length) Set(s string) error {
	v, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = Length(v)
	return nil
}

// MustParse is like ParseLength but panics on error.
// It is meant for package level defaults.
func MustParse(s string) Length {
	v, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return Length(v)
}
