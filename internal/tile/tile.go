/*
Package tile implements the binary heightmap tile format.

A tile is written as a 4 byte header holding the width and height as little
endian unsigned 16 bit integers, followed by width times height little endian
unsigned 16 bit samples in row-major order. There is no compression and no
checksum so a tile is always exactly 4 + 2*width*height bytes in size.
*/
package tile

import (
	"errors"
	"fmt"
	"math"
)

const (
	headerSize = 4
	sampleSize = 2

	// MaxEdge is the largest width or height a tile can record.
	MaxEdge = math.MaxUint16
)

var (
	errNotEnough = errors.New("tile: not enough data")
	errTooMuch   = errors.New("tile: too much data")
	errEdge      = errors.New("tile: dimension out of range")
)

// Tile is a quantized rectangle of samples.
type Tile struct {
	Width, Height int
	Codes         []uint16
}

// New returns a zeroed w by h tile.
func New(w, h int) *Tile {
	return &Tile{Width: w, Height: h, Codes: make([]uint16, w*h)}
}

// Row returns row y of the tile.
func (t *Tile) Row(y int) []uint16 {
	return t.Codes[y*t.Width : (y+1)*t.Width]
}

// Size returns the encoded length of a w by h tile.
func Size(w, h int) int {
	return headerSize + sampleSize*w*h
}

func checkEdges(w, h int) error {
	if w < 0 || h < 0 || w > MaxEdge || h > MaxEdge {
		return fmt.Errorf("%w: %dx%d", errEdge, w, h)
	}
	return nil
}
