/*
Package grid partitions a field into fixed size tiles.

Tiles are laid out left to right, top to bottom, starting at the field's top
left corner. Tiles in the last column and row are clipped to the field and are
never padded.
*/
package grid

import "image"

// MinEdge is the smallest tile edge used at any level above the base.
const MinEdge = 32

// Count returns the number of tiles needed to cover n samples with tiles of
// the given edge.
func Count(n, edge int) int {
	if n <= 0 || edge <= 0 {
		return 0
	}
	return (n + edge - 1) / edge
}

// EdgeAt returns the tile edge used at level lod for a base edge.
func EdgeAt(base, lod int) int {
	edge := base >> uint(lod)
	if edge < MinEdge {
		return MinEdge
	}
	return edge
}

// Cell is a single tile of a grid.
type Cell struct {
	X, Y int
	// Rect is the covered sample rectangle of the field being cut.
	Rect image.Rectangle
}

// Grid is the tiling of a width by height field with square tiles.
type Grid struct {
	Width, Height int
	Edge          int
}

// New returns the tiling of a w by h field with the given edge.
func New(w, h, edge int) Grid {
	return Grid{Width: w, Height: h, Edge: edge}
}

// Cols returns the number of tile columns.
func (g Grid) Cols() int { return Count(g.Width, g.Edge) }

// Rows returns the number of tile rows.
func (g Grid) Rows() int { return Count(g.Height, g.Edge) }

// Cell returns the tile at column x and row y.
func (g Grid) Cell(x, y int) Cell {
	x0, y0 := x*g.Edge, y*g.Edge
	return Cell{
		X:    x,
		Y:    y,
		Rect: image.Rect(x0, y0, min(x0+g.Edge, g.Width), min(y0+g.Edge, g.Height)),
	}
}

// Cells returns every tile of non-zero size in row-major order.
func (g Grid) Cells() []Cell {
	cols, rows := g.Cols(), g.Rows()
	cells := make([]Cell, 0, cols*rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := g.Cell(x, y)
			if c.Rect.Dx() <= 0 || c.Rect.Dy() <= 0 {
				continue
			}
			cells = append(cells, c)
		}
	}

	return cells
}

// Footprint returns the area of a w by h source covered by the tile at grid
// index (x, y) of level lod, in level 0 pixels. The footprint is measured
// with the base edge so that it is comparable across levels; it is clipped
// to the source and may be empty at deep levels.
func Footprint(x, y, base, lod, w, h int) image.Rectangle {
	// span stops growing once it covers the source
	span := base
	for i := 0; i < lod && span < max(w, h); i++ {
		span <<= 1
	}
	x0, y0 := min(x*span, w), min(y*span, h)
	return image.Rectangle{
		Min: image.Pt(x0, y0),
		Max: image.Pt(min(x0+span, w), min(y0+span, h)),
	}
}
