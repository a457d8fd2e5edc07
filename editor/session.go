// Package editor holds the state of one editing session and every action the
// shell can trigger on it. It knows nothing about windows or input devices:
// the shell translates clicks and keys into these calls and draws whatever
// the session exposes.
package editor

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/palette"
)

// DefaultFileName is the file a fresh session saves to.
const DefaultFileName = "working.level"

// MaxNameLength caps the level name typed in the name field.
const MaxNameLength = 40

var ErrNoSprites = errors.New("editor: no sprites to paint with")

type Mode int

const (
	ModePaint Mode = iota
	ModePan
	ModeDropper
)

func (m Mode) String() string {
	switch m {
	case ModePan:
		return "pan"
	case ModeDropper:
		return "dropper"
	default:
		return "paint"
	}
}

// ColorTarget selects which brush color the HSV picker edits.
type ColorTarget int

const (
	TargetPrimary ColorTarget = iota
	TargetSecondary
)

func (t ColorTarget) String() string {
	if t == TargetSecondary {
		return "secondary"
	}
	return "primary"
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Options configure a new session. Zero sizes, tile type, level and logger
// fall back to the editor defaults; colors are used as given.
type Options struct {
	OutputDir  string
	GridWidth  int
	GridHeight int
	CellPixels int

	Primary   levels.Color
	Secondary levels.Color
	TileType  levels.TypeID

	// Level is edited in place when set; otherwise a default level is made.
	Level *levels.Level
	Log   logrus.FieldLogger
}

// Session is the editor state. It is not safe for concurrent use; the shell
// drives it from its update loop.
type Session struct {
	Level *levels.Level

	sprites   []string
	spriteIdx int

	Primary    levels.Color
	Secondary  levels.Color
	TypeID     levels.TypeID
	EmitsLight bool
	Anchor     levels.Anchor

	Mode   Mode
	Layer  int
	Target ColorTarget

	// HSV state of the picker, each in [0,1].
	Hue, Sat, Val float64

	CamX, CamY int

	FileName string
	Naming   bool
	Status   string

	outputDir  string
	gridW      int
	gridH      int
	cellPx     int
	panning    bool
	panStartPx [2]int
	panStartCm [2]int

	log logrus.FieldLogger
}

func NewSession(sprites []string, opts Options) (*Session, error) {
	if len(sprites) == 0 {
		return nil, ErrNoSprites
	}
	if opts.GridWidth < 1 {
		opts.GridWidth = levels.FallbackWidth
	}
	if opts.GridHeight < 1 {
		opts.GridHeight = levels.FallbackHeight
	}
	if opts.CellPixels < 1 {
		opts.CellPixels = 64
	}
	if opts.TileType == 0 {
		opts.TileType = palette.DefaultTileType
	}
	if opts.Level == nil {
		opts.Level = levels.NewDefault()
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		opts.Log = l
	}

	s := &Session{
		Level:     opts.Level,
		sprites:   append([]string(nil), sprites...),
		Primary:   opts.Primary,
		Secondary: opts.Secondary,
		TypeID:    opts.TileType,
		Anchor:    levels.DefaultAnchor,
		Mode:      ModePaint,
		Layer:     levels.Foreground,
		Target:    TargetPrimary,
		FileName:  DefaultFileName,
		Status:    "Welcome to the editor.",
		outputDir: opts.OutputDir,
		gridW:     opts.GridWidth,
		gridH:     opts.GridHeight,
		cellPx:    opts.CellPixels,
		log:       opts.Log,
	}
	s.syncHSV()
	return s, nil
}

// Sprites returns the sprite ids the brush cycles through.
func (s *Session) Sprites() []string { return s.sprites }

// SetSprites swaps the sprite list, keeping the brush sprite when it is
// still available.
func (s *Session) SetSprites(sprites []string) error {
	if len(sprites) == 0 {
		return ErrNoSprites
	}
	current := s.Sprite()
	s.sprites = append([]string(nil), sprites...)
	s.spriteIdx = 0
	for i, name := range s.sprites {
		if name == current {
			s.spriteIdx = i
			break
		}
	}
	return nil
}

// Sprite is the brush sprite id.
func (s *Session) Sprite() string { return s.sprites[s.spriteIdx] }

func (s *Session) SpriteIndex() int { return s.spriteIdx }

// GridSize is the number of cells visible on the canvas.
func (s *Session) GridSize() (int, int) { return s.gridW, s.gridH }

func (s *Session) CellPixels() int { return s.cellPx }

// OutputDir is the directory level files are saved to and loaded from.
func (s *Session) OutputDir() string { return s.outputDir }

// GridFromScreen maps a canvas pixel to level coordinates. ok is false when
// the pixel is outside the canvas; the cell itself may still be outside the
// level.
func (s *Session) GridFromScreen(px, py int) (gx, gy int, ok bool) {
	if px < 0 || py < 0 || px >= s.gridW*s.cellPx || py >= s.gridH*s.cellPx {
		return -1, -1, false
	}
	return s.CamX + px/s.cellPx, s.CamY + py/s.cellPx, true
}

// BrushTile is what PaintAt places.
func (s *Session) BrushTile() levels.Tile {
	return levels.Tile{
		Sprite:     s.Sprite(),
		Primary:    s.Primary,
		Secondary:  s.Secondary,
		TypeID:     s.TypeID,
		EmitsLight: s.EmitsLight,
		Anchor:     s.Anchor,
	}
}

// SetBrushTile loads every brush field from t. A sprite that is not in the
// catalog selects the first sprite.
func (s *Session) SetBrushTile(t levels.Tile) {
	s.spriteIdx = 0
	for i, name := range s.sprites {
		if name == t.Sprite {
			s.spriteIdx = i
			break
		}
	}
	s.Primary = t.Primary
	s.Secondary = t.Secondary
	s.TypeID = t.TypeID
	s.EmitsLight = t.EmitsLight
	s.Anchor = t.Anchor
	s.syncHSV()
}

func (s *Session) PaintAt(gx, gy int) bool {
	t := s.BrushTile()
	return s.Level.Place(s.Layer, gx, gy, &t)
}

func (s *Session) EraseAt(gx, gy int) bool {
	return s.Level.Erase(s.Layer, gx, gy)
}

// EyedropAt copies the tile under (gx, gy) on the active layer into the
// brush. Empty cells leave the brush alone.
func (s *Session) EyedropAt(gx, gy int) bool {
	t, ok := s.Level.Get(s.Layer, gx, gy)
	if !ok {
		return false
	}
	s.SetBrushTile(t)
	s.Status = "Eyedropped " + t.Sprite
	return true
}

// Press handles a mouse button going down on the canvas at pixel (px, py).
func (s *Session) Press(b Button, px, py int) {
	s.Naming = false
	gx, gy, ok := s.GridFromScreen(px, py)
	if !ok {
		return
	}
	switch b {
	case ButtonLeft:
		switch s.Mode {
		case ModePan:
			s.BeginPan(px, py)
		case ModeDropper:
			s.EyedropAt(gx, gy)
			s.Mode = ModePaint
		default:
			s.PaintAt(gx, gy)
		}
	case ButtonRight:
		s.EraseAt(gx, gy)
	case ButtonMiddle:
		s.EyedropAt(gx, gy)
	}
}

// Release ends a pan.
func (s *Session) Release(b Button) {
	if b == ButtonLeft {
		s.panning = false
	}
}

func (s *Session) Panning() bool { return s.panning }

func (s *Session) BeginPan(px, py int) {
	s.panning = true
	s.panStartPx = [2]int{px, py}
	s.panStartCm = [2]int{s.CamX, s.CamY}
}

// PanTo moves the camera by whole cells as the pointer is dragged.
func (s *Session) PanTo(px, py int) {
	if !s.panning {
		return
	}
	dx := floorDiv(px-s.panStartPx[0], s.cellPx)
	dy := floorDiv(py-s.panStartPx[1], s.cellPx)
	s.CamX = s.panStartCm[0] - dx
	s.CamY = s.panStartCm[1] - dy
	s.ClampCamera()
}

// ClampCamera keeps the view inside the level. Levels smaller than the view
// pin the camera at the origin.
func (s *Session) ClampCamera() {
	maxX := max(0, s.Level.Width()-s.gridW)
	maxY := max(0, s.Level.Height()-s.gridH)
	s.CamX = max(0, min(s.CamX, maxX))
	s.CamY = max(0, min(s.CamY, maxY))
}

// EachVisible calls fn for every tile inside the view, background layer
// first. vx and vy are view cells, not level cells.
func (s *Session) EachVisible(fn func(layer, vx, vy int, t levels.Tile)) {
	for layer := 0; layer < levels.LayerCount; layer++ {
		for vy := 0; vy < s.gridH; vy++ {
			for vx := 0; vx < s.gridW; vx++ {
				if t, ok := s.Level.Get(layer, s.CamX+vx, s.CamY+vy); ok {
					fn(layer, vx, vy, t)
				}
			}
		}
	}
}

func (s *Session) CycleSprite(delta int) {
	n := len(s.sprites)
	s.spriteIdx = ((s.spriteIdx+delta)%n + n) % n
}

func (s *Session) SetMode(m Mode) { s.Mode = m }

// ToggleDropper switches between dropper and paint.
func (s *Session) ToggleDropper() {
	if s.Mode == ModeDropper {
		s.Mode = ModePaint
		return
	}
	s.Mode = ModeDropper
}

func (s *Session) SetLayer(layer int) {
	if layer == levels.Background {
		s.Layer = levels.Background
		return
	}
	s.Layer = levels.Foreground
}

func (s *Session) SetType(t levels.TypeID) { s.TypeID = t }

func (s *Session) ToggleLight() { s.EmitsLight = !s.EmitsLight }

// SetAnchorCell picks one of the 3×3 anchor presets; (1, 1) is centered.
func (s *Session) SetAnchorCell(ix, iy int) {
	ix = max(0, min(ix, 2))
	iy = max(0, min(iy, 2))
	s.Anchor = levels.Anchor{X: float64(ix) / 2, Y: float64(iy) / 2}
}

func (s *Session) GrowWidth()  { s.resize(s.Level.Width()+1, s.Level.Height()) }
func (s *Session) GrowHeight() { s.resize(s.Level.Width(), s.Level.Height()+1) }

// ShrinkWidth stops at one column.
func (s *Session) ShrinkWidth() {
	if s.Level.Width() > 1 {
		s.resize(s.Level.Width()-1, s.Level.Height())
	}
}

// ShrinkHeight stops at one row.
func (s *Session) ShrinkHeight() {
	if s.Level.Height() > 1 {
		s.resize(s.Level.Width(), s.Level.Height()-1)
	}
}

func (s *Session) resize(w, h int) {
	if err := s.Level.Resize(w, h); err != nil {
		s.fail("Resize failed", err)
		return
	}
	s.ClampCamera()
	s.Status = fmt.Sprintf("Level %d x %d", w, h)
}

// TypeRune appends r to the level name while the name field is focused.
// Only printable ASCII is accepted.
func (s *Session) TypeRune(r rune) bool {
	if !s.Naming || r < 32 || r >= 127 || len(s.Level.Name) >= MaxNameLength {
		return false
	}
	s.Level.Name += string(r)
	return true
}

func (s *Session) Backspace() {
	if !s.Naming || s.Level.Name == "" {
		return
	}
	s.Level.Name = s.Level.Name[:len(s.Level.Name)-1]
}

func (s *Session) fail(what string, err error) {
	s.Status = fmt.Sprintf("%s: %v", what, err)
	s.log.WithError(err).Warn(what)
}

// floorDiv rounds toward negative infinity so dragging left or up moves the
// camera as soon as a full cell is crossed.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
