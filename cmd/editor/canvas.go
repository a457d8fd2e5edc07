package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/pixelsmash/colorize"
	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/render"
)

var (
	colorGridLine   = color.RGBA{30, 30, 30, 255}
	colorHoverFG    = color.RGBA{80, 180, 255, 255}
	colorHoverBG    = color.RGBA{120, 120, 255, 255}
	colorMissingTex = color.RGBA{255, 0, 255, 255}
)

// spriteImages keeps one GPU image per colorized sprite variant.
type spriteImages struct {
	cache  *colorize.Cache
	images map[colorize.Key]*ebiten.Image
	scale  int
}

func newSpriteImages(cache *colorize.Cache, scale int) *spriteImages {
	return &spriteImages{cache: cache, images: make(map[colorize.Key]*ebiten.Image), scale: scale}
}

// get returns nil for sprites missing from the catalog.
func (si *spriteImages) get(sprite string, primary, secondary color.Color) *ebiten.Image {
	key := colorize.NewKey(sprite, primary, secondary)
	if img, ok := si.images[key]; ok {
		return img
	}
	src, err := si.cache.Get(sprite, primary, secondary)
	if err != nil {
		log.WithError(err).WithField("sprite", sprite).Debug("sprite unavailable")
		si.images[key] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	si.images[key] = img
	return img
}

// reset drops every image, e.g. after the sprite PNGs changed on disk.
func (si *spriteImages) reset(cache *colorize.Cache) {
	for _, img := range si.images {
		if img != nil {
			img.Deallocate()
		}
	}
	si.cache = cache
	si.images = make(map[colorize.Key]*ebiten.Image)
}

func (g *Game) drawCanvas(screen *ebiten.Image) {
	s := g.session
	cell := s.CellPixels()
	scale := float64(g.cfg.EditorScale)

	s.EachVisible(func(layer, vx, vy int, t levels.Tile) {
		x, y := float64(vx*cell), float64(vy*cell)
		img := g.sprites.get(t.Sprite, t.Primary, t.Secondary)
		if img == nil {
			ebitenutil.DrawRect(screen, x+float64(cell)/4, y+float64(cell)/4, float64(cell)/2, float64(cell)/2, colorMissingTex)
		} else {
			w, h := img.Bounds().Dx()*g.cfg.EditorScale, img.Bounds().Dy()*g.cfg.EditorScale
			dx, dy := render.Offset(cell, w, h, t.Anchor)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(x+float64(dx), y+float64(dy))
			screen.DrawImage(img, op)
		}
		if t.EmitsLight {
			strokeRect(screen, x, y, float64(cell), float64(cell), 1, render.LightMarkerColor)
		}
	})

	gw, gh := s.GridSize()
	for vx := 0; vx <= gw; vx++ {
		ebitenutil.DrawLine(screen, float64(vx*cell), 0, float64(vx*cell), float64(g.canvasH), colorGridLine)
	}
	for vy := 0; vy <= gh; vy++ {
		ebitenutil.DrawLine(screen, 0, float64(vy*cell), float64(g.canvasW), float64(vy*cell), colorGridLine)
	}

	if gx, gy, ok := s.GridFromScreen(ebiten.CursorPosition()); ok {
		hover := colorHoverFG
		if s.Layer == levels.Background {
			hover = colorHoverBG
		}
		strokeRect(screen, float64((gx-s.CamX)*cell), float64((gy-s.CamY)*cell), float64(cell), float64(cell), 2, hover)
	}
}

func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, c color.Color) {
	ebitenutil.DrawRect(dst, x, y, w, width, c)
	ebitenutil.DrawRect(dst, x, y+h-width, w, width, c)
	ebitenutil.DrawRect(dst, x, y, width, h, c)
	ebitenutil.DrawRect(dst, x+w-width, y, width, h, c)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	s := g.session
	x := g.picker.right() + 16
	y := g.canvasH + 8
	lines := []string{
		fmt.Sprintf("%s | layer %s | mode %s | %s", s.FileName, layerName(s.Layer), s.Mode, s.Level.Name),
		fmt.Sprintf("level %d x %d   view (%d, %d)", s.Level.Width(), s.Level.Height(), s.CamX, s.CamY),
		s.Status,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*18)
	}
}

func layerName(layer int) string {
	if layer == levels.Background {
		return "BG"
	}
	return "FG"
}
