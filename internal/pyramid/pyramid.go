/*
Package pyramid turns a heightmap field into a multi-resolution set of binary
tiles and the document describing them.

All levels are quantized against the value range of the base field, so a code
stands for the same elevation in every tile of every level. Levels above 0 are
resampled from the base field rather than from the level below.
*/
package pyramid

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gruppe-adler/heightmap-pyramid/internal/field"
	"github.com/gruppe-adler/heightmap-pyramid/internal/grid"
	"github.com/gruppe-adler/heightmap-pyramid/internal/resample"
	"github.com/gruppe-adler/heightmap-pyramid/internal/store"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tile"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tileset"
)

// Options controls the layout of a pyramid.
type Options struct {
	TileSize int

	// Levels is the number of levels including level 0. Zero selects
	// LevelsFor the source dimensions.
	Levels  int
	Filter  resample.Filter
	Workers int

	// Legacy additionally writes level 0 as flat tiles in the output root
	// together with a version 1 document.
	Legacy bool

	MarianaDepth  float64
	EverestHeight float64
}

// Result summarizes a finished run.
type Result struct {
	Document *tileset.Document
	Levels   int
	Files    int
	Bytes    int64
}

// Generator writes pyramids into a store.
type Generator struct {
	store  store.Store
	opts   Options
	logger *log.Logger
}

// New returns a Generator writing to s. A nil logger discards all output.
func New(s store.Store, opts Options, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Generator{
		store:  s,
		opts:   opts,
		logger: logger,
	}
}

// LevelsFor returns the number of levels needed until the coarsest level of
// a w by h field fits into a single tile.
func LevelsFor(w, h, tileSize int) int {
	lod := 0
	for {
		lw, lh := resample.Size(w, h, lod)
		edge := grid.EdgeAt(tileSize, lod)
		if lw <= edge && lh <= edge {
			return lod + 1
		}
		lod++
	}
}

// Generate cuts base into all levels of the pyramid, writes every tile and
// finally the documents. Any failure aborts the run; the store then holds an
// incomplete pyramid that has to be regenerated.
func (g *Generator) Generate(ctx context.Context, base *field.Field) (*Result, error) {
	if g.opts.TileSize < grid.MinEdge || g.opts.TileSize > tile.MaxEdge {
		return nil, fmt.Errorf("pyramid: tile size %d out of range", g.opts.TileSize)
	}

	w, h := base.Width(), base.Height()
	r := base.Range()

	levels := g.opts.Levels
	if levels == 0 {
		levels = LevelsFor(w, h, g.opts.TileSize)
	}

	doc := tileset.New()
	doc.SourceWidth = w
	doc.SourceHeight = h
	doc.TileSize = g.opts.TileSize
	doc.TilesX = grid.Count(w, g.opts.TileSize)
	doc.TilesY = grid.Count(h, g.opts.TileSize)
	doc.MinValue = r.Min
	doc.MaxValue = r.Max
	doc.MarianaDepth = g.opts.MarianaDepth
	doc.EverestHeight = g.opts.EverestHeight
	doc.LODLevels = levels

	g.logger.Printf("source %dx%d, value range %.4f to %.4f, %d levels", w, h, r.Min, r.Max, levels)

	result := &Result{Document: doc, Levels: levels}

	for lod := 0; lod < levels; lod++ {
		timer := time.Now()

		lf, err := resample.Downsample(base, lod, r, g.opts.Filter)
		if err != nil {
			return nil, err
		}

		tiles, err := g.level(ctx, job{field: lf, lod: lod, r: r, srcW: w, srcH: h})
		if err != nil {
			return nil, err
		}

		for _, t := range tiles {
			if err := doc.Add(t.record); err != nil {
				return nil, err
			}
			result.Files++
			result.Bytes += int64(t.size)

			if t.flat != nil {
				if err := doc.AddFlat(t.record.X, t.record.Y, *t.flat); err != nil {
					return nil, err
				}
				result.Files++
				result.Bytes += int64(t.size)
			}
		}

		g.logger.Printf("lod %d: %dx%d samples, %d tiles of %d in %s", lod, lf.Width(), lf.Height(), len(tiles), grid.EdgeAt(g.opts.TileSize, lod), time.Since(timer))
	}

	n, err := g.writeDocuments(doc)
	if err != nil {
		return nil, err
	}
	result.Files += n

	return result, nil
}

func (g *Generator) writeDocuments(doc *tileset.Document) (int, error) {
	if err := g.writeDocument(tileset.Filename, doc); err != nil {
		return 0, err
	}
	if !g.opts.Legacy {
		return 1, nil
	}
	if err := g.writeDocument(tileset.LegacyFilename, doc.Legacy()); err != nil {
		return 0, err
	}
	return 2, nil
}

func (g *Generator) writeDocument(name string, doc *tileset.Document) error {
	b, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if err := g.store.Put(name, b); err != nil {
		return fmt.Errorf("pyramid: write %s: %w", name, err)
	}
	return nil
}
