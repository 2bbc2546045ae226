package tileset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "3_7", Key(3, 7))
	assert.Equal(t, "tile_3_7.bin", FlatFile(3, 7))
	assert.Equal(t, "lod2/tile_3_7.bin", LevelFile(2, 3, 7))

	x, y, err := ParseKey("12_4")
	require.NoError(t, err)
	assert.Equal(t, 12, x)
	assert.Equal(t, 4, y)

	for _, key := range []string{"", "1", "1_2_3", "a_1", "1_b"} {
		_, _, err := ParseKey(key)
		assert.Error(t, err, key)
	}
}

func TestAddDuplicate(t *testing.T) {
	d := New()
	require.NoError(t, d.Add(Record{LOD: 1, X: 0, Y: 0}))
	require.NoError(t, d.Add(Record{LOD: 2, X: 0, Y: 0}))
	assert.Error(t, d.Add(Record{LOD: 1, X: 0, Y: 0}))

	require.NoError(t, d.AddFlat(0, 0, Entry{}))
	assert.Error(t, d.AddFlat(0, 0, Entry{}))

	assert.Len(t, d.Level(1), 1)
	assert.Nil(t, d.Level(5))
}

func sample(t *testing.T) *Document {
	d := New()
	d.SourceWidth, d.SourceHeight = 1000, 700
	d.TileSize, d.TilesX, d.TilesY = 512, 2, 2
	d.MinValue, d.MaxValue = 0.25, 0.75
	d.LODLevels = 1
	require.NoError(t, d.Add(Record{File: LevelFile(0, 1, 1), Width: 488, Height: 188, SrcX: 512, SrcY: 512, SrcW: 488, SrcH: 188, X: 1, Y: 1}))
	require.NoError(t, d.AddFlat(1, 1, Entry{File: FlatFile(1, 1), Width: 488, Height: 188, SrcX: 512, SrcY: 512}))
	return d
}

func TestMarshal(t *testing.T) {
	d := sample(t)

	b, err := d.MarshalIndent()
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"version": 2`)
	assert.Contains(t, s, `"lod_tiles"`)
	assert.Contains(t, s, `"src_w": 488`)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	again, err := got.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestLegacy(t *testing.T) {
	d := sample(t)
	l := d.Legacy()

	assert.Equal(t, LegacyVersion, l.Version)
	assert.Equal(t, Version, d.Version)
	assert.NotNil(t, d.LODTiles)

	b, err := l.MarshalIndent()
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"version": 1`)
	assert.False(t, strings.Contains(s, "lod_tiles"))
	assert.False(t, strings.Contains(s, "lod_levels"))
	assert.Contains(t, s, `"tile_1_1.bin"`)
}

func TestRead(t *testing.T) {
	b, err := sample(t).MarshalIndent()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), b, 0644))

	d, err := Read(filepath.Join(dir, Filename))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Level(0)["1_1"].X)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))
	_, err = Read(filepath.Join(dir, "bad.json"))
	assert.Error(t, err)
}
