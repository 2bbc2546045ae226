// Package quantize maps elevation samples to 16 bit codes against a global
// value range.
package quantize

import (
	"math"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
)

// MaxCode is the code assigned to the top of the value range.
const MaxCode = math.MaxUint16

// Code normalizes v into r and scales it to 0..MaxCode. Values outside r,
// such as filter overshoot, are clamped before narrowing.
func Code(v float64, r field.Range) uint16 {
	n := (v - r.Min) / r.Span()
	switch {
	case n <= 0 || math.IsNaN(n):
		return 0
	case n >= 1:
		return MaxCode
	}
	return uint16(math.Round(n * MaxCode))
}

// Value maps a code back into r.
func Value(c uint16, r field.Range) float64 {
	return r.Min + float64(c)/MaxCode*r.Span()
}

// Row quantizes src into dst, which must be at least as long as src.
func Row(dst []uint16, src []float64, r field.Range) {
	for i, v := range src {
		dst[i] = Code(v, r)
	}
}
