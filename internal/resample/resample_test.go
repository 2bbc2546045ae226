package resample

import (
	"testing"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(t *testing.T, w, h int) *field.Field {
	samples := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			samples[y*w+x] = float64(x) / float64(w-1)
		}
	}
	f, err := field.New(w, h, samples)
	require.NoError(t, err)
	return f
}

func TestSize(t *testing.T) {
	tables := []struct {
		w, h, lod    int
		wantW, wantH int
	}{
		{1000, 700, 0, 1000, 700},
		{1000, 700, 1, 500, 350},
		{1000, 700, 2, 250, 175},
		{1000, 700, 3, 125, 87},
		{5, 3, 2, 1, 1},
		{5, 3, 8, 1, 1},
	}

	for _, table := range tables {
		w, h := Size(table.w, table.h, table.lod)
		assert.Equal(t, table.wantW, w)
		assert.Equal(t, table.wantH, h)
	}
}

func TestDownsampleLevelZero(t *testing.T) {
	base := ramp(t, 8, 8)
	out, err := Downsample(base, 0, base.Range(), Lanczos3)
	require.NoError(t, err)
	assert.Same(t, base, out)
}

func TestDownsample(t *testing.T) {
	base := ramp(t, 64, 40)
	r := base.Range()

	for _, filter := range Filters() {
		t.Run(filter, func(t *testing.T) {
			out, err := Downsample(base, 2, r, Filter(filter))
			require.NoError(t, err)
			assert.Equal(t, 16, out.Width())
			assert.Equal(t, 10, out.Height())

			for y := 0; y < out.Height(); y++ {
				for x := 0; x < out.Width(); x++ {
					v := out.At(x, y)
					assert.GreaterOrEqual(t, v, r.Min)
					assert.LessOrEqual(t, v, r.Max)
				}
			}

			// a horizontal ramp stays increasing from left to right
			assert.Less(t, out.At(0, 5), out.At(15, 5))
		})
	}
}

func TestDownsampleFlat(t *testing.T) {
	samples := make([]float64, 32*32)
	for i := range samples {
		samples[i] = 0.4
	}
	base, err := field.New(32, 32, samples)
	require.NoError(t, err)

	out, err := Downsample(base, 3, base.Range(), Lanczos3)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width())
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			assert.Equal(t, 0.4, out.At(x, y))
		}
	}
}

func TestDownsampleUnknownFilter(t *testing.T) {
	base := ramp(t, 8, 8)
	_, err := Downsample(base, 1, base.Range(), Filter("box"))
	assert.Error(t, err)
	assert.False(t, Filter("box").Valid())
	assert.True(t, Lanczos3.Valid())
}
