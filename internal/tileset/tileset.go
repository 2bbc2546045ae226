/*
Package tileset describes a generated tile pyramid: where every tile of every
level lives and which area of the source heightmap it was cut from.
*/
package tileset

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
)

const (
	// Filename is the name of the pyramid document in the output root.
	Filename = "tileset.json"
	// LegacyFilename is the name of the single level document.
	LegacyFilename = "tileset_v1.json"

	// Version is the version of documents carrying lod_tiles.
	Version = 2
	// LegacyVersion is the version of single level documents.
	LegacyVersion = 1
)

// Entry is a tile of the flat, single level layout.
type Entry struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	SrcX   int    `json:"src_x"`
	SrcY   int    `json:"src_y"`
}

// Record is a tile of one pyramid level. Src* is the tile's footprint in
// level 0 pixels.
type Record struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	SrcX   int    `json:"src_x"`
	SrcY   int    `json:"src_y"`
	SrcW   int    `json:"src_w"`
	SrcH   int    `json:"src_h"`
	LOD    int    `json:"lod"`

	// Grid position, carried by the key in the document
	X int `json:"-"`
	Y int `json:"-"`
}

// Document is the metadata of a tile pyramid.
type Document struct {
	Version       int     `json:"version"`
	SourceWidth   int     `json:"source_width"`
	SourceHeight  int     `json:"source_height"`
	TileSize      int     `json:"tile_size"`
	TilesX        int     `json:"tiles_x"`
	TilesY        int     `json:"tiles_y"`
	MinValue      float64 `json:"min_value"`
	MaxValue      float64 `json:"max_value"`
	MarianaDepth  float64 `json:"mariana_depth"`
	EverestHeight float64 `json:"everest_height"`
	LODLevels     int     `json:"lod_levels,omitempty"`

	Tiles    map[string]Entry             `json:"tiles"`
	LODTiles map[string]map[string]Record `json:"lod_tiles,omitempty"`
}

// Key returns the document key of the tile at grid position (x, y).
func Key(x, y int) string {
	return fmt.Sprintf("%d_%d", x, y)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (int, int, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("tileset: malformed key %q", key)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("tileset: malformed key %q: %w", key, err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("tileset: malformed key %q: %w", key, err)
	}
	return x, y, nil
}

// FlatFile returns the name of a tile in the flat layout.
func FlatFile(x, y int) string {
	return fmt.Sprintf("tile_%d_%d.bin", x, y)
}

// LevelFile returns the name of a tile of level lod, relative to the output
// root.
func LevelFile(lod, x, y int) string {
	return path.Join(fmt.Sprintf("lod%d", lod), FlatFile(x, y))
}

// New returns an empty pyramid document.
func New() *Document {
	return &Document{
		Version:  Version,
		Tiles:    make(map[string]Entry),
		LODTiles: make(map[string]map[string]Record),
	}
}

// Add stores r under its level and grid position.
func (d *Document) Add(r Record) error {
	lod := strconv.Itoa(r.LOD)
	level, ok := d.LODTiles[lod]
	if !ok {
		level = make(map[string]Record)
		d.LODTiles[lod] = level
	}

	key := Key(r.X, r.Y)
	if _, ok := level[key]; ok {
		return fmt.Errorf("tileset: duplicate tile %s at lod %s", key, lod)
	}
	level[key] = r

	return nil
}

// AddFlat stores e in the flat layout at grid position (x, y).
func (d *Document) AddFlat(x, y int, e Entry) error {
	key := Key(x, y)
	if _, ok := d.Tiles[key]; ok {
		return fmt.Errorf("tileset: duplicate flat tile %s", key)
	}
	d.Tiles[key] = e
	return nil
}

// Level returns the records of level lod.
func (d *Document) Level(lod int) map[string]Record {
	return d.LODTiles[strconv.Itoa(lod)]
}

// Legacy returns the single level view of d that older readers understand.
func (d *Document) Legacy() *Document {
	l := *d
	l.Version = LegacyVersion
	l.LODLevels = 0
	l.LODTiles = nil
	return &l
}

// MarshalIndent encodes d the way it is written to disk.
func (d *Document) MarshalIndent() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Unmarshal decodes a document and restores the grid positions of its
// records.
func Unmarshal(b []byte) (*Document, error) {
	d := New()
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}

	for _, level := range d.LODTiles {
		for key, r := range level {
			x, y, err := ParseKey(key)
			if err != nil {
				return nil, err
			}
			r.X, r.Y = x, y
			level[key] = r
		}
	}

	return d, nil
}

// Read loads the document at given path.
func Read(documentPath string) (*Document, error) {
	b, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, err
	}

	d, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", documentPath, err)
	}

	return d, nil
}
