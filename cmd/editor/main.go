package main

import (
	"flag"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/pixelsmash/assets"
	"github.com/milk9111/pixelsmash/config"
	"github.com/milk9111/pixelsmash/editor"
	"github.com/milk9111/pixelsmash/levels"
)

var log = logrus.New()

const panelWidth = 320

func main() {
	configPath := flag.String("config", "editor.yaml", "YAML config file; missing files fall back to the built-in defaults")
	assetsDir := flag.String("assets", "", "Directory of grayscale sprite PNGs (overrides the config)")
	outputDir := flag.String("out", "", "Directory levels are saved to (overrides the config)")
	levelName := flag.String("level", "", "Level file in the output directory to open on start")
	watch := flag.Bool("watch", true, "Reload the palette and sprites when their files change")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.WithError(err).Warn("ignoring .env")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	catalog, err := loadCatalog(cfg.AssetsDir)
	if err != nil {
		log.WithError(err).Fatal("load sprites")
	}
	log.WithFields(logrus.Fields{
		"sprites": catalog.Len(),
		"dir":     cfg.AssetsDir,
	}).Info("sprites loaded")

	primary, _ := cfg.Primary()
	secondary, _ := cfg.Secondary()
	lvl, err := levels.New(cfg.Level.Width, cfg.Level.Height, levels.DefaultName)
	if err != nil {
		log.WithError(err).Fatal("create level")
	}
	session, err := editor.NewSession(catalog.Names(), editor.Options{
		OutputDir:  cfg.OutputDir,
		GridWidth:  cfg.GridWidth(),
		GridHeight: cfg.GridHeight(),
		CellPixels: cfg.CellPixels(),
		Primary:    primary,
		Secondary:  secondary,
		TileType:   cfg.TileType(),
		Level:      lvl,
		Log:        log,
	})
	if err != nil {
		log.WithError(err).Fatal("start session")
	}
	if *levelName != "" {
		// failures are reported in the status line
		_ = session.Load(*levelName)
	}

	game, err := NewGame(cfg, catalog, session)
	if err != nil {
		log.WithError(err).Fatal("build editor")
	}

	if *watch {
		w, err := config.NewWatcher(absOrEmpty(*configPath), cfg.AssetsDir)
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			defer w.Close()
			game.watcher = w
			game.configPath = *configPath
		}
	}

	cw, ch := cfg.CanvasSize()
	ebiten.SetWindowSize(cw+panelWidth, ch+stripHeight)
	ebiten.SetWindowTitle("PixelSmash Editor")
	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("editor exited")
	}
}

func loadCatalog(dir string) (*assets.Catalog, error) {
	if dir == "" {
		return assets.Default()
	}
	return assets.LoadDir(dir)
}

func absOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
