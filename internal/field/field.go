/*
Package field holds the in-memory representation of a heightmap: a dense,
row-major grid of samples normalized to [0,1] and the global value range
used to quantize it.
*/
package field

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrEmpty is returned when a field is constructed without any samples.
var ErrEmpty = errors.New("field: empty field")

// Field is a width by height grid of samples stored row-major. A Field is
// never modified after it has been constructed.
type Field struct {
	width, height int
	samples       []float64
}

// New wraps samples as a width by height field. The slice is owned by the
// returned Field afterwards.
func New(width, height int, samples []float64) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmpty
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("field: got %d samples for %dx%d", len(samples), width, height)
	}
	return &Field{width: width, height: height, samples: samples}, nil
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of rows.
func (f *Field) Height() int { return f.height }

// At returns the sample in column x of row y.
func (f *Field) At(x, y int) float64 {
	return f.samples[y*f.width+x]
}

// Row returns the samples of row y from column x0 up to (not including) x1.
func (f *Field) Row(y, x0, x1 int) []float64 {
	off := y * f.width
	return f.samples[off+x0 : off+x1]
}

// Range scans the field once and returns its minimum and maximum sample.
func (f *Field) Range() Range {
	return Range{Min: floats.Min(f.samples), Max: floats.Max(f.samples)}
}

// Range is the global value range of a pyramid. Every level and every tile
// is quantized against the same Range.
type Range struct {
	Min, Max float64
}

// Span returns Max-Min, or 1 for a flat range so that it is always safe to
// divide by.
func (r Range) Span() float64 {
	if r.Max > r.Min {
		return r.Max - r.Min
	}
	return 1.0
}
