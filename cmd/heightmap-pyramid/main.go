package main

import (
	"log"
	"os"

	"github.com/gruppe-adler/heightmap-pyramid/internal/build"
	"github.com/gruppe-adler/heightmap-pyramid/internal/config"
	"github.com/gruppe-adler/heightmap-pyramid/internal/inspect"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "heightmap-pyramid"
	app.Usage = "Build level of detail heightmap tiles from a grayscale image"
	app.Version = "2.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log every level to stderr",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "build",
			Usage:  "Build binary tiles for every level of detail",
			Flags:  build.Flags(),
			Action: build.Run,
		},
		{
			Name:      "inspect",
			Usage:     "Print and verify a generated tile set",
			ArgsUsage: "DIRECTORY|ARCHIVE",
			Action:    inspect.Run,
		},
		{
			Name:      "config",
			Usage:     "Write the default configuration",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return cli.Exit("missing FILE argument", 1)
				}
				if err := config.CreateDefaultConfigFile(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
