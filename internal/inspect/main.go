// Package inspect implements the inspect subcommand.
package inspect

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/gruppe-adler/heightmap-pyramid/internal/store"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tile"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tileset"
	"github.com/urfave/cli/v2"
)

// Report is the outcome of checking a pyramid against its document.
type Report struct {
	Document *tileset.Document
	Checked  int
	Problems []string
}

func check(s store.Store, file string, width, height int) string {
	b, err := s.Get(file)
	if err != nil {
		return err.Error()
	}
	cfg, err := tile.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return fmt.Sprintf("%s: %v", file, err)
	}
	if cfg.Width != width || cfg.Height != height {
		return fmt.Sprintf("%s: header says %dx%d, document says %dx%d", file, cfg.Width, cfg.Height, width, height)
	}
	if len(b) != tile.Size(width, height) {
		return fmt.Sprintf("%s: %d bytes, want %d", file, len(b), tile.Size(width, height))
	}
	return ""
}

// Verify loads the document of the pyramid in s and checks that every tile
// it references exists with the recorded dimensions.
func Verify(s store.Store) (*Report, error) {
	b, err := s.Get(tileset.Filename)
	if err != nil {
		return nil, err
	}
	doc, err := tileset.Unmarshal(b)
	if err != nil {
		return nil, err
	}

	rep := &Report{Document: doc}

	for _, key := range sortedKeys(doc.Tiles) {
		e := doc.Tiles[key]
		rep.Checked++
		if p := check(s, e.File, e.Width, e.Height); p != "" {
			rep.Problems = append(rep.Problems, p)
		}
	}

	for lod := 0; lod < doc.LODLevels; lod++ {
		level := doc.Level(lod)
		if len(level) == 0 {
			rep.Problems = append(rep.Problems, fmt.Sprintf("lod %d has no tiles", lod))
			continue
		}
		for _, key := range sortedKeys(level) {
			r := level[key]
			rep.Checked++
			if p := check(s, r.File, r.Width, r.Height); p != "" {
				rep.Problems = append(rep.Problems, p)
			}
		}
	}

	return rep, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Run is the subcommand's entrypoint
func Run(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("missing DIRECTORY or ARCHIVE argument", 1)
	}
	w := c.App.Writer

	s, err := store.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer s.Close()

	rep, err := Verify(s)
	if err != nil {
		return cli.Exit(err, 1)
	}
	doc := rep.Document

	fmt.Fprintf(w, "ℹ️  Version %d, source %dx%d, tile size %d (%dx%d tiles)\n", doc.Version, doc.SourceWidth, doc.SourceHeight, doc.TileSize, doc.TilesX, doc.TilesY)
	fmt.Fprintf(w, "ℹ️  Value range %.4f to %.4f\n", doc.MinValue, doc.MaxValue)
	for lod := 0; lod < doc.LODLevels; lod++ {
		fmt.Fprintf(w, "    lod %d: %d tiles\n", lod, len(doc.Level(lod)))
	}

	if len(rep.Problems) > 0 {
		for _, p := range rep.Problems {
			fmt.Fprintf(w, "❌  %s\n", p)
		}
		return cli.Exit(fmt.Sprintf("%d of %d tiles failed verification", len(rep.Problems), rep.Checked), 1)
	}

	fmt.Fprintf(w, "✔️  Verified %d tiles\n", rep.Checked)

	return nil
}
