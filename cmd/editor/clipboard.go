package main

import (
	"encoding/json"

	"golang.design/x/clipboard"

	"github.com/milk9111/pixelsmash/levels"
)

// initClipboard reports whether the system clipboard is usable. Headless
// Linux sessions without X11 fail here and copy/paste is disabled.
func initClipboard() bool {
	if err := clipboard.Init(); err != nil {
		log.WithError(err).Warn("clipboard unavailable")
		return false
	}
	return true
}

// copyBrush puts the brush tile on the clipboard as level-file JSON.
func (g *Game) copyBrush() {
	s := g.session
	if !g.clipboardOK {
		s.Status = "Clipboard unavailable"
		return
	}
	b, err := json.Marshal(s.BrushTile())
	if err != nil {
		log.WithError(err).Warn("encode brush")
		s.Status = "Copy failed"
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	s.Status = "Copied brush"
}

// pasteBrush takes a tile from the clipboard, e.g. one copied out of a
// level file, and makes it the brush.
func (g *Game) pasteBrush() {
	s := g.session
	if !g.clipboardOK {
		s.Status = "Clipboard unavailable"
		return
	}
	b := clipboard.Read(clipboard.FmtText)
	if len(b) == 0 {
		s.Status = "Clipboard is empty"
		return
	}
	var t levels.Tile
	if err := json.Unmarshal(b, &t); err != nil || t.IsZero() {
		log.WithError(err).Debug("clipboard is not a tile")
		s.Status = "Clipboard does not hold a tile"
		return
	}
	s.SetBrushTile(t)
	s.Status = "Pasted " + s.Sprite()
}
