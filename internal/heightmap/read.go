// Package heightmap decodes grayscale raster files into fields.
package heightmap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
)

// Read decodes the heightmap at given path.
func Read(path string) (*field.Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Decode reads any registered raster format from r and converts it to a
// field with samples in [0,1]. Color sources are converted to luminance.
func Decode(r io.Reader) (*field.Field, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	return FromImage(img)
}

// FromImage converts img to a field. 8 bit gray levels map to v/255 and
// 16 bit gray levels to v/65535.
func FromImage(img image.Image) (*field.Field, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, field.ErrEmpty
	}

	samples := make([]float64, w*h)

	switch m := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+w]
			for x, v := range row {
				samples[y*w+x] = float64(v) / 255
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+2*w]
			for x := 0; x < w; x++ {
				v := uint16(row[2*x])<<8 | uint16(row[2*x+1])
				samples[y*w+x] = float64(v) / 65535
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				samples[y*w+x] = float64(g.Y) / 65535
			}
		}
	}

	return field.New(w, h, samples)
}
