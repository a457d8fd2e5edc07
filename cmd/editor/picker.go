package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/pixelsmash/editor"
	"github.com/milk9111/pixelsmash/palette"
)

const (
	stripHeight = 128
	satValW     = 192
	satValH     = 112
	hueW        = 24
)

// picker is the saturation/value square and hue bar under the canvas.
type picker struct {
	satVal image.Rectangle
	hue    image.Rectangle

	satValImg *ebiten.Image
	hueImg    *ebiten.Image
	drawnHue  float64

	draggingSatVal bool
	draggingHue    bool
}

func newPicker(x, y int) *picker {
	p := &picker{
		satVal:   image.Rect(x+8, y+8, x+8+satValW, y+8+satValH),
		drawnHue: -1,
	}
	p.hue = image.Rect(p.satVal.Max.X+8, p.satVal.Min.Y, p.satVal.Max.X+8+hueW, p.satVal.Max.Y)

	bar := image.NewNRGBA(image.Rect(0, 0, 1, satValH))
	for y := 0; y < satValH; y++ {
		c := palette.FromHSV(float64(y)/float64(satValH-1), 1, 1)
		bar.SetNRGBA(0, y, color.NRGBA{c.R, c.G, c.B, 255})
	}
	p.hueImg = ebiten.NewImageFromImage(bar)
	p.satValImg = ebiten.NewImage(satValW, satValH)
	return p
}

// right is the x past the picker and the two color chips.
func (p *picker) right() int { return p.hue.Max.X + 16 + 88 }

func (p *picker) update(s *editor.Session) {
	cx, cy := ebiten.CursorPosition()
	pt := image.Pt(cx, cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.draggingSatVal = pt.In(p.satVal)
		p.draggingHue = pt.In(p.hue)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.draggingSatVal = false
		p.draggingHue = false
	}

	if p.draggingSatVal {
		sx := clampInt(cx-p.satVal.Min.X, 0, satValW-1)
		sy := clampInt(cy-p.satVal.Min.Y, 0, satValH-1)
		s.SetSatVal(float64(sx)/float64(satValW-1), 1-float64(sy)/float64(satValH-1))
	}
	if p.draggingHue {
		sy := clampInt(cy-p.hue.Min.Y, 0, satValH-1)
		s.SetHue(float64(sy) / float64(satValH-1))
	}
}

func (p *picker) redrawSatVal(hue float64) {
	img := image.NewNRGBA(image.Rect(0, 0, satValW, satValH))
	for y := 0; y < satValH; y++ {
		v := 1 - float64(y)/float64(satValH-1)
		for x := 0; x < satValW; x++ {
			c := palette.FromHSV(hue, float64(x)/float64(satValW-1), v)
			img.SetNRGBA(x, y, color.NRGBA{c.R, c.G, c.B, 255})
		}
	}
	p.satValImg.WritePixels(img.Pix)
	p.drawnHue = hue
}

func (p *picker) draw(screen *ebiten.Image, s *editor.Session) {
	if s.Hue != p.drawnHue {
		p.redrawSatVal(s.Hue)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.satVal.Min.X), float64(p.satVal.Min.Y))
	screen.DrawImage(p.satValImg, op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(hueW, 1)
	op.GeoM.Translate(float64(p.hue.Min.X), float64(p.hue.Min.Y))
	screen.DrawImage(p.hueImg, op)

	mx := float64(p.satVal.Min.X) + s.Sat*float64(satValW-1)
	my := float64(p.satVal.Min.Y) + (1-s.Val)*float64(satValH-1)
	strokeRect(screen, mx-4, my-4, 9, 9, 1, color.White)
	strokeRect(screen, mx-3, my-3, 7, 7, 1, color.Black)

	hy := float64(p.hue.Min.Y) + s.Hue*float64(satValH-1)
	strokeRect(screen, float64(p.hue.Min.X-1), hy-2, hueW+2, 4, 1, color.Black)

	// current primary and secondary, the edited one outlined
	px := float64(p.hue.Max.X + 16)
	py := float64(p.satVal.Max.Y - 24)
	ebitenutil.DrawRect(screen, px, py, 40, 24, s.Primary)
	ebitenutil.DrawRect(screen, px+48, py, 40, 24, s.Secondary)
	if s.Target == editor.TargetPrimary {
		strokeRect(screen, px-2, py-2, 44, 28, 2, colorAccent)
	} else {
		strokeRect(screen, px+46, py-2, 44, 28, 2, colorAccent)
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
