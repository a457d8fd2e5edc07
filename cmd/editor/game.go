package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/pixelsmash/assets"
	"github.com/milk9111/pixelsmash/colorize"
	"github.com/milk9111/pixelsmash/config"
	"github.com/milk9111/pixelsmash/editor"
	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/palette"
)

var (
	colorBackground = color.RGBA{18, 18, 18, 255}
	colorPanel      = color.RGBA{28, 28, 28, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorAccent     = color.RGBA{90, 200, 255, 255}
	colorIdle       = color.RGBA{70, 70, 70, 255}
)

// Game is the ebiten shell around an editor.Session. The canvas and the
// color picker strip are drawn by hand; the side panel is ebitenui.
type Game struct {
	cfg     *config.Config
	session *editor.Session
	palette []levels.Color

	sprites *spriteImages
	picker  *picker
	panel   *panel
	ui      *ebitenui.UI

	clipboardOK bool

	watcher    *config.Watcher
	configPath string

	canvasW, canvasH int
}

func NewGame(cfg *config.Config, catalog *assets.Catalog, session *editor.Session) (*Game, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	cw, ch := cfg.CanvasSize()
	g := &Game{
		cfg:         cfg,
		session:     session,
		palette:     pal,
		sprites:     newSpriteImages(colorize.NewCache(catalog), cfg.EditorScale),
		canvasW:     cw,
		canvasH:     ch,
		clipboardOK: initClipboard(),
	}
	g.picker = newPicker(0, ch)
	g.ui, g.panel = buildUI(g)
	return g, nil
}

// maxSwatches keeps the swatch grid at four rows.
const maxSwatches = 32

// addSwatches appends generated pastel swatches until the grid is full.
func (g *Game) addSwatches() {
	n := min(8, maxSwatches-len(g.palette))
	if n <= 0 {
		g.session.Status = "Swatch grid is full"
		return
	}
	extra, err := palette.Generate(n)
	if err != nil {
		log.WithError(err).Warn("generate swatches")
		g.session.Status = "Could not generate swatches"
		return
	}
	g.palette = append(g.palette, extra...)
	g.panel.setPalette(g.palette)
	g.session.Status = fmt.Sprintf("Added %d swatches", len(extra))
}

func (g *Game) Update() error {
	g.pollWatcher()

	s := g.session
	if s.Naming {
		g.updateNaming()
	} else {
		g.updateHotkeys()
	}

	g.updateCanvas()
	g.picker.update(s)
	g.ui.Update()
	g.panel.sync(s)
	return nil
}

func (g *Game) updateNaming() {
	s := g.session
	for _, r := range ebiten.AppendInputChars(nil) {
		s.TypeRune(r)
	}
	if repeatPressed(ebiten.KeyBackspace) {
		s.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Naming = false
	}
}

func (g *Game) updateHotkeys() {
	s := g.session
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyBrush()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteBrush()
	case ctrl && ebiten.IsKeyPressed(ebiten.KeyShift) && inpututil.IsKeyJustPressed(ebiten.KeyS):
		_ = s.SaveTimestamped(time.Now())
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		_ = s.Save("")
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		_ = s.Load("")
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.CycleSprite(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.CycleSprite(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.ToggleDropper()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		s.SuggestSecondary()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.ToggleLight()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		s.SetLayer(1 - s.Layer)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if s.Target == editor.TargetPrimary {
			s.SetColorTarget(editor.TargetSecondary)
		} else {
			s.SetColorTarget(editor.TargetPrimary)
		}
	}
}

func (g *Game) updateCanvas() {
	s := g.session
	cx, cy := ebiten.CursorPosition()
	onCanvas := cx >= 0 && cy >= 0 && cx < g.canvasW && cy < g.canvasH

	if onCanvas {
		for b, mb := range mouseButtons {
			if inpututil.IsMouseButtonJustPressed(mb) {
				s.Press(editor.Button(b), cx, cy)
			}
		}
		if _, wy := ebiten.Wheel(); wy > 0 {
			s.CycleSprite(-1)
		} else if wy < 0 {
			s.CycleSprite(1)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.Release(editor.ButtonLeft)
	}
	if s.Panning() {
		s.PanTo(cx, cy)
	}
}

// mouseButtons is indexed by editor.Button.
var mouseButtons = [...]ebiten.MouseButton{
	editor.ButtonLeft:   ebiten.MouseButtonLeft,
	editor.ButtonRight:  ebiten.MouseButtonRight,
	editor.ButtonMiddle: ebiten.MouseButtonMiddle,
}

func repeatPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= delay && (d-delay)%interval == 0)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawCanvas(screen)
	g.picker.draw(screen, g.session)
	g.drawStatus(screen)
	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvasW + panelWidth, g.canvasH + stripHeight
}
