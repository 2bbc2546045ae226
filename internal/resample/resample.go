/*
Package resample derives the reduced resolution fields of a pyramid.

Every level is resampled from the base field directly. Samples travel through
the resampler as 16 bit gray levels quantized against the pyramid's global
value range, so no precision is lost relative to the tiles that are written
from the result.
*/
package resample

import (
	"fmt"
	"image"
	"sort"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
	"github.com/gruppe-adler/heightmap-pyramid/internal/quantize"
	"github.com/nfnt/resize"
)

// Filter names a resampling kernel.
type Filter string

// Known filters. Nearest is a lower fidelity fallback: it picks one source
// sample per output sample instead of weighting the covered area.
const (
	Lanczos3 Filter = "lanczos3"
	Lanczos2 Filter = "lanczos2"
	Mitchell Filter = "mitchell"
	Bicubic  Filter = "bicubic"
	Bilinear Filter = "bilinear"
	Nearest  Filter = "nearest"
)

var kernels = map[Filter]resize.InterpolationFunction{
	Lanczos3: resize.Lanczos3,
	Lanczos2: resize.Lanczos2,
	Mitchell: resize.MitchellNetravali,
	Bicubic:  resize.Bicubic,
	Bilinear: resize.Bilinear,
	Nearest:  resize.NearestNeighbor,
}

// Filters returns the names of all known filters.
func Filters() []string {
	names := make([]string, 0, len(kernels))
	for f := range kernels {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Valid reports whether f names a known filter.
func (f Filter) Valid() bool {
	_, ok := kernels[f]
	return ok
}

// Size returns the dimensions of level lod for a w by h base field.
func Size(w, h, lod int) (int, int) {
	w >>= uint(lod)
	h >>= uint(lod)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Downsample returns level lod of base. Level 0 is base itself.
func Downsample(base *field.Field, lod int, r field.Range, filter Filter) (*field.Field, error) {
	if lod == 0 {
		return base, nil
	}

	kernel, ok := kernels[filter]
	if !ok {
		return nil, fmt.Errorf("resample: unknown filter %q", filter)
	}

	w, h := Size(base.Width(), base.Height(), lod)

	out := resize.Resize(uint(w), uint(h), toGray16(base, r), kernel)

	return fromImage(out, r)
}

func toGray16(f *field.Field, r field.Range) *image.Gray16 {
	w, h := f.Width(), f.Height()
	img := image.NewGray16(image.Rect(0, 0, w, h))

	codes := make([]uint16, w)
	for y := 0; y < h; y++ {
		quantize.Row(codes, f.Row(y, 0, w), r)
		pix := img.Pix[y*img.Stride:]
		for x, c := range codes {
			pix[2*x] = uint8(c >> 8)
			pix[2*x+1] = uint8(c)
		}
	}

	return img
}

func fromImage(img image.Image, r field.Range) (*field.Field, error) {
	m, ok := img.(*image.Gray16)
	if !ok {
		return nil, fmt.Errorf("resample: unexpected %T from resampler", img)
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	samples := make([]float64, w*h)

	for y := 0; y < h; y++ {
		pix := m.Pix[y*m.Stride:]
		for x := 0; x < w; x++ {
			c := uint16(pix[2*x])<<8 | uint16(pix[2*x+1])
			samples[y*w+x] = quantize.Value(c, r)
		}
	}

	return field.New(w, h, samples)
}
