package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/milk9111/pixelsmash/assets"
	"github.com/milk9111/pixelsmash/colorize"
	"github.com/milk9111/pixelsmash/config"
	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/render"
	"github.com/milk9111/pixelsmash/script"
)

const defaultScriptTimeout = 10 * time.Second

var errMissingArg = errors.New("missing argument")

func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Warn("ignoring .env")
	}
	return config.Load(c.Path("config"))
}

func arg(c *cli.Context, i int) (string, error) {
	p := c.Args().Get(i)
	if p == "" {
		return "", fmt.Errorf("%w: see %q", errMissingArg, "pixelsmash "+c.Command.Name+" --help")
	}
	return p, nil
}

func commandNew(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	w, h := cfg.Level.Width, cfg.Level.Height
	if c.IsSet("width") {
		w = c.Int("width")
	}
	if c.IsSet("height") {
		h = c.Int("height")
	}
	l, err := levels.New(w, h, c.String("name"))
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = filepath.Join(cfg.OutputDir, levels.FileName(l.Name))
	}
	path = levels.WithExt(path)
	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}
	if err := levels.Save(l, path); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": path, "width": w, "height": h}).Info("created level")
	return nil
}

func commandInfo(c *cli.Context) error {
	path, err := arg(c, 0)
	if err != nil {
		return err
	}
	l, err := levels.Load(path)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "name:   %s\n", l.Name)
	fmt.Fprintf(out, "size:   %d x %d\n", l.Width(), l.Height())
	for layer, label := range []string{"background", "foreground"} {
		var emitters int
		l.Each(layer, func(_, _ int, t levels.Tile) {
			if t.EmitsLight {
				emitters++
			}
		})
		fmt.Fprintf(out, "%s: %d tiles, %d emitting light\n", label, l.Count(layer), emitters)
	}

	sprites := usedSprites(l)
	fmt.Fprintf(out, "sprites: %s\n", strings.Join(sprites, ", "))
	return nil
}

func usedSprites(l *levels.Level) []string {
	seen := make(map[string]bool)
	for layer := 0; layer < levels.LayerCount; layer++ {
		l.Each(layer, func(_, _ int, t levels.Tile) { seen[t.Sprite] = true })
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func commandResize(c *cli.Context) error {
	path, err := arg(c, 0)
	if err != nil {
		return err
	}
	l, err := levels.Load(path)
	if err != nil {
		return err
	}
	oldW, oldH := l.Width(), l.Height()
	if err := l.Resize(c.Int("width"), c.Int("height")); err != nil {
		return err
	}
	if err := levels.Save(l, path); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path": path,
		"from": fmt.Sprintf("%dx%d", oldW, oldH),
		"to":   fmt.Sprintf("%dx%d", l.Width(), l.Height()),
	}).Info("resized level")
	return nil
}

func commandExport(c *cli.Context) error {
	path, err := arg(c, 0)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	l, err := levels.Load(path)
	if err != nil {
		return err
	}

	dir := cfg.AssetsDir
	if c.IsSet("assets") {
		dir = c.Path("assets")
	}
	var cat *assets.Catalog
	if dir == "" {
		cat, err = assets.Default()
	} else {
		cat, err = assets.LoadDir(dir)
	}
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.TileSize = cfg.TileSize
	opts.Scale = c.Int("scale")
	opts.LightMarker = c.Bool("light-markers")
	img, err := render.Level(l, colorize.NewCache(cat), opts)
	if err != nil {
		return err
	}

	out := c.Path("out")
	if out == "" {
		out = strings.TrimSuffix(path, levels.Ext) + ".png"
	}
	if err := render.Save(out, img); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   out,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("exported level")
	return nil
}

func commandScript(c *cli.Context) error {
	path, err := arg(c, 0)
	if err != nil {
		return err
	}
	scriptPath, err := arg(c, 1)
	if err != nil {
		return err
	}
	l, err := levels.Load(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()
	start := time.Now()
	if err := script.Run(ctx, l, src); err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	entry := log.WithFields(logrus.Fields{
		"script":     scriptPath,
		"elapsed":    time.Since(start).Round(time.Millisecond),
		"foreground": l.Count(levels.Foreground),
		"background": l.Count(levels.Background),
	})
	if c.Bool("dry-run") {
		entry.Info("script finished, not saving")
		return nil
	}
	if err := levels.Save(l, path); err != nil {
		return err
	}
	entry.WithField("path", path).Info("script applied")
	return nil
}

func commandSamples(c *cli.Context) error {
	names := levels.SampleNames()
	dir := c.Path("out")
	if dir == "" {
		for _, n := range names {
			fmt.Fprintln(c.App.Writer, n)
		}
		return nil
	}
	for _, n := range names {
		data, err := fs.ReadFile(levels.SamplesFS, levels.WithExt(n))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		dst := filepath.Join(dir, levels.WithExt(n))
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}
		log.WithField("path", dst).Info("wrote sample")
	}
	return nil
}
