// Package build implements the build subcommand.
package build

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gruppe-adler/heightmap-pyramid/internal/config"
	"github.com/gruppe-adler/heightmap-pyramid/internal/heightmap"
	"github.com/gruppe-adler/heightmap-pyramid/internal/pyramid"
	"github.com/gruppe-adler/heightmap-pyramid/internal/resample"
	"github.com/gruppe-adler/heightmap-pyramid/internal/store"
	"github.com/urfave/cli/v2"
)

// Flags returns the flags of the build subcommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Usage:    "path to grayscale heightmap image",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "path to output directory",
		},
		&cli.StringFlag{
			Name:  "archive",
			Usage: "write all files into a SQLite archive instead of a directory",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"HEIGHTMAP_PYRAMID_CONFIG"},
			Usage:   "path to YAML configuration",
		},
		&cli.IntFlag{
			Name:  "tile-size",
			Usage: "edge of level 0 tiles in pixels",
		},
		&cli.IntFlag{
			Name:  "levels",
			Usage: "number of levels of detail, 0 picks them from the image size",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: fmt.Sprintf("resampling filter, one of %v", resample.Filters()),
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of tiles written concurrently",
		},
		&cli.BoolFlag{
			Name:  "no-legacy",
			Usage: "skip the flat level 0 copy and the version 1 document",
		},
	}
}

// Options merges the configuration file and flags of c.
func Options(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("tile-size") {
		cfg.TileSize = c.Int("tile-size")
	}
	if c.IsSet("levels") {
		cfg.LODLevels = c.Int("levels")
	}
	if c.IsSet("filter") {
		cfg.Filter = resample.Filter(c.String("filter"))
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.Bool("no-legacy") {
		cfg.Legacy = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func openStore(c *cli.Context) (store.Store, error) {
	if archive := c.String("archive"); archive != "" {
		return store.OpenArchive(archive)
	}
	return store.NewDir(c.String("out"))
}

// closeStore closes s and reports its error unless err is already set.
func closeStore(s io.Closer, err error) error {
	if cerr := s.Close(); cerr != nil && err == nil {
		return cli.Exit(fmt.Errorf("close output: %w", cerr), 1)
	}
	return err
}

// Run is the subcommand's entrypoint
func Run(c *cli.Context) (err error) {
	var timer time.Time
	start := time.Now()
	w := c.App.Writer

	cfg, err := Options(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.String("out") == "" && c.String("archive") == "" {
		return cli.Exit(errors.New("either --out or --archive is required"), 1)
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	// load heightmap before anything is written
	timer = time.Now()
	fmt.Fprintln(w, "▶️  Loading heightmap")
	base, err := heightmap.Read(c.String("in"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(w, "✔️  Loaded %dx%d heightmap in %s\n", base.Width(), base.Height(), time.Since(timer))

	s, err := openStore(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() { err = closeStore(s, err) }()

	// build tiles
	timer = time.Now()
	fmt.Fprintln(w, "▶️  Building tiles")
	g := pyramid.New(s, pyramid.Options{
		TileSize:      cfg.TileSize,
		Levels:        cfg.LODLevels,
		Filter:        cfg.Filter,
		Workers:       cfg.Workers,
		Legacy:        cfg.Legacy,
		MarianaDepth:  cfg.Elevation.MarianaDepth,
		EverestHeight: cfg.Elevation.EverestHeight,
	}, logger)

	res, err := g.Generate(c.Context, base)
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(w, "✔️  Built %d levels in %s\n", res.Levels, time.Since(timer))
	fmt.Fprintf(w, "ℹ️  Value range: %.4f to %.4f\n", res.Document.MinValue, res.Document.MaxValue)
	fmt.Fprintf(w, "ℹ️  Wrote %d files, %.1f MB of tiles\n", res.Files, float64(res.Bytes)/(1024*1024))

	fmt.Fprintf(w, "\n    🎉  Finished in %s\n", time.Since(start))

	return nil
}
