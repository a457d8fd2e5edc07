package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.New()

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("pixelsmash")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pixelsmash",
		Usage: "create, inspect, script and export pixelsmash levels",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "config",
				Usage: "path to the editor config file",
				Value: "editor.yaml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log at debug level",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if c.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "create an empty level",
				ArgsUsage: "[file]",
				Action:    commandNew,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "level name", Value: "Untitled"},
					&cli.IntFlag{Name: "width", Usage: "width in tiles (default from config)"},
					&cli.IntFlag{Name: "height", Usage: "height in tiles (default from config)"},
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
				},
			},
			{
				Name:      "info",
				Usage:     "print a level's size and tile counts",
				ArgsUsage: "<file>",
				Action:    commandInfo,
			},
			{
				Name:      "resize",
				Usage:     "change a level's size, keeping the top-left region",
				ArgsUsage: "<file>",
				Action:    commandResize,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Usage: "new width in tiles", Required: true},
					&cli.IntFlag{Name: "height", Usage: "new height in tiles", Required: true},
				},
			},
			{
				Name:      "export",
				Usage:     "render a level to a PNG",
				ArgsUsage: "<file>",
				Action:    commandExport,
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "out", Usage: "PNG to write (default: level file with .png)"},
					&cli.IntFlag{Name: "scale", Usage: "integer upscale factor", Value: 1},
					&cli.BoolFlag{Name: "light-markers", Usage: "outline light emitting tiles"},
					&cli.PathFlag{Name: "assets", Usage: "sprite directory (default from config, else built-in sprites)"},
				},
			},
			{
				Name:      "script",
				Usage:     "run a tengo script against a level and save the result",
				ArgsUsage: "<file> <script>",
				Action:    commandScript,
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Usage: "abort the script after this long", Value: defaultScriptTimeout},
					&cli.BoolFlag{Name: "dry-run", Usage: "run the script without saving"},
				},
			},
			{
				Name:   "samples",
				Usage:  "list the built-in sample levels, or copy them out with --out",
				Action: commandSamples,
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "out", Usage: "directory to write the samples to"},
				},
			},
		},
	}
}
