package main

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/pixelsmash/assets"
	"github.com/milk9111/pixelsmash/colorize"
	"github.com/milk9111/pixelsmash/config"
)

// pollWatcher applies pending file changes without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch := <-g.watcher.Events:
			g.applyChange(ch)
		case err := <-g.watcher.Errors:
			log.WithError(err).Warn("file watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(ch config.Change) {
	entry := log.WithFields(logrus.Fields{"kind": ch.Kind, "path": ch.Path})
	switch ch.Kind {
	case config.ConfigChanged:
		cfg, err := config.Load(g.configPath)
		if err != nil {
			entry.WithError(err).Warn("config reload failed; keeping the old one")
			g.session.Status = "Config reload failed"
			return
		}
		pal, err := cfg.Palette()
		if err != nil {
			entry.WithError(err).Warn("palette reload failed")
			return
		}
		g.palette = pal
		g.panel.setPalette(pal)
		if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
		entry.WithField("colors", len(pal)).Info("palette reloaded")
		g.session.Status = "Palette reloaded"
	case config.SpritesChanged:
		if g.cfg.AssetsDir == "" {
			return
		}
		cat, err := assets.LoadDir(g.cfg.AssetsDir)
		if err != nil {
			entry.WithError(err).Warn("sprite reload failed")
			g.session.Status = "Sprite reload failed"
			return
		}
		g.sprites.reset(colorize.NewCache(cat))
		if err := g.session.SetSprites(cat.Names()); err != nil {
			entry.WithError(err).Warn("sprite reload failed")
			return
		}
		entry.WithField("sprites", cat.Len()).Info("sprites reloaded")
		g.session.Status = "Sprites reloaded"
	}
}
