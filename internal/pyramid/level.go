package pyramid

import (
	"context"
	"fmt"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
	"github.com/gruppe-adler/heightmap-pyramid/internal/grid"
	"github.com/gruppe-adler/heightmap-pyramid/internal/quantize"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tile"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tileset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// job is one level of a run.
type job struct {
	field *field.Field
	lod   int
	r     field.Range
	// dimensions of the level 0 field
	srcW, srcH int
}

type written struct {
	record tileset.Record
	flat   *tileset.Entry
	size   int
}

// level cuts the field of j into tiles and writes them. The returned slice
// is in row-major grid order.
func (g *Generator) level(ctx context.Context, j job) ([]written, error) {
	cells := grid.New(j.field.Width(), j.field.Height(), grid.EdgeAt(g.opts.TileSize, j.lod)).Cells()
	out := make([]written, len(cells))

	sem := semaphore.NewWeighted(int64(g.opts.Workers))
	eg, gctx := errgroup.WithContext(ctx)

	for i, c := range cells {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		eg.Go(func() error {
			defer sem.Release(1)

			t, err := g.writeTile(j, c)
			if err != nil {
				return err
			}
			out[i] = t
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// Acquire also stops early when the caller cancels
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// cut quantizes the samples of lf covered by c.
func cut(lf *field.Field, c grid.Cell, r field.Range) *tile.Tile {
	t := tile.New(c.Rect.Dx(), c.Rect.Dy())
	for y := 0; y < t.Height; y++ {
		quantize.Row(t.Row(y), lf.Row(c.Rect.Min.Y+y, c.Rect.Min.X, c.Rect.Max.X), r)
	}
	return t
}

func (g *Generator) writeTile(j job, c grid.Cell) (written, error) {
	b, err := cut(j.field, c, j.r).MarshalBinary()
	if err != nil {
		return written{}, err
	}

	lod := j.lod
	fp := grid.Footprint(c.X, c.Y, g.opts.TileSize, lod, j.srcW, j.srcH)

	w := written{
		record: tileset.Record{
			File:   tileset.LevelFile(lod, c.X, c.Y),
			Width:  c.Rect.Dx(),
			Height: c.Rect.Dy(),
			SrcX:   fp.Min.X,
			SrcY:   fp.Min.Y,
			SrcW:   fp.Dx(),
			SrcH:   fp.Dy(),
			LOD:    lod,
			X:      c.X,
			Y:      c.Y,
		},
		size: len(b),
	}

	if err := g.store.Put(w.record.File, b); err != nil {
		return written{}, fmt.Errorf("pyramid: write %s: %w", w.record.File, err)
	}

	if lod == 0 && g.opts.Legacy {
		w.flat = &tileset.Entry{
			File:   tileset.FlatFile(c.X, c.Y),
			Width:  w.record.Width,
			Height: w.record.Height,
			SrcX:   w.record.SrcX,
			SrcY:   w.record.SrcY,
		}
		if err := g.store.Put(w.flat.File, b); err != nil {
			return written{}, fmt.Errorf("pyramid: write %s: %w", w.flat.File, err)
		}
	}

	return w, nil
}
