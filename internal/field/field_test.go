package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(0, 3, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New(2, 2, []float64{1, 2, 3})
	assert.Error(t, err)

	f, err := New(3, 2, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Width())
	assert.Equal(t, 2, f.Height())
	assert.Equal(t, 5.0, f.At(2, 1))
	assert.Equal(t, []float64{3, 4}, f.Row(1, 0, 2))
}

func TestRange(t *testing.T) {
	f, err := New(2, 2, []float64{0.5, 0.25, 0.75, 0.5})
	require.NoError(t, err)

	r := f.Range()
	assert.Equal(t, Range{Min: 0.25, Max: 0.75}, r)
	assert.InDelta(t, 0.5, r.Span(), 1e-12)
}

func TestRangeFlat(t *testing.T) {
	f, err := New(2, 1, []float64{0.3, 0.3})
	require.NoError(t, err)

	r := f.Range()
	assert.Equal(t, r.Min, r.Max)
	assert.Equal(t, 1.0, r.Span())
}
