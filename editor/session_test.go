package editor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/palette"
)

var sprites = []string{"coin", "grass", "rock"}

func newSession(t *testing.T) (*Session, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	s, err := NewSession(sprites, Options{
		OutputDir:  t.TempDir(),
		GridWidth:  16,
		GridHeight: 9,
		CellPixels: 64,
		Primary:    palette.DefaultPrimary,
		Secondary:  palette.DefaultSecondary,
		Log:        log,
	})
	require.NoError(t, err)
	return s, hook
}

func TestNewSession(t *testing.T) {
	_, err := NewSession(nil, Options{})
	require.ErrorIs(t, err, ErrNoSprites)

	s, _ := newSession(t)
	require.Equal(t, "coin", s.Sprite())
	require.Equal(t, levels.Foreground, s.Layer)
	require.Equal(t, ModePaint, s.Mode)
	require.Equal(t, TargetPrimary, s.Target)
	require.Equal(t, DefaultFileName, s.FileName)
	require.Equal(t, levels.TypeFloor, s.TypeID)
	require.Equal(t, levels.DefaultAnchor, s.Anchor)
	require.Equal(t, levels.DefaultWidth, s.Level.Width())
	require.Zero(t, s.Val, "black primary has no value")

	w, h := s.GridSize()
	require.Equal(t, 16, w)
	require.Equal(t, 9, h)
}

func TestGridFromScreen(t *testing.T) {
	s, _ := newSession(t)
	s.CamX, s.CamY = 3, 2

	cases := []struct {
		name     string
		px, py   int
		gx, gy   int
		inCanvas bool
	}{
		{"origin", 0, 0, 3, 2, true},
		{"second_cell", 64, 127, 4, 3, true},
		{"last_cell", 1023, 575, 18, 10, true},
		{"right_of_canvas", 1024, 10, -1, -1, false},
		{"below_canvas", 10, 576, -1, -1, false},
		{"negative", -1, 0, -1, -1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gx, gy, ok := s.GridFromScreen(c.px, c.py)
			require.Equal(t, c.inCanvas, ok)
			require.Equal(t, c.gx, gx)
			require.Equal(t, c.gy, gy)
		})
	}
}

func TestPaintEraseEyedrop(t *testing.T) {
	s, _ := newSession(t)
	s.CycleSprite(2)
	s.Primary = levels.Color{R: 10}
	s.TypeID = levels.TypeHazard
	s.ToggleLight()
	s.SetAnchorCell(0, 2)

	require.True(t, s.PaintAt(1, 1))
	require.False(t, s.PaintAt(-1, 0))
	require.False(t, s.PaintAt(levels.DefaultWidth, 0))

	got, ok := s.Level.Get(levels.Foreground, 1, 1)
	require.True(t, ok)
	require.Equal(t, s.BrushTile(), got)
	require.Equal(t, "rock", got.Sprite)
	require.Equal(t, levels.Anchor{X: 0, Y: 1}, got.Anchor)

	// the brush is copied, later brush changes leave the tile alone
	s.ToggleLight()
	got, _ = s.Level.Get(levels.Foreground, 1, 1)
	require.True(t, got.EmitsLight)

	fresh, _ := newSession(t)
	fresh.Level = s.Level
	require.True(t, fresh.EyedropAt(1, 1))
	require.Equal(t, "Eyedropped rock", fresh.Status)
	require.Equal(t, got, fresh.BrushTile())
	require.False(t, fresh.EyedropAt(2, 2))

	fresh.SetLayer(levels.Background)
	require.False(t, fresh.EyedropAt(1, 1), "eyedrop reads the active layer only")

	require.False(t, s.EraseAt(99, 99))
	require.True(t, s.EraseAt(1, 1))
	_, ok = s.Level.Get(levels.Foreground, 1, 1)
	require.False(t, ok)
}

func TestEyedropUnknownSprite(t *testing.T) {
	s, _ := newSession(t)
	s.CycleSprite(1)
	tile := levels.NewTile("moss", levels.Color{G: 90}, levels.Color{G: 200})
	s.Level.Place(levels.Foreground, 0, 0, &tile)

	require.True(t, s.EyedropAt(0, 0))
	require.Equal(t, 0, s.SpriteIndex())
	require.Equal(t, levels.Color{G: 90}, s.Primary)
}

func TestPress(t *testing.T) {
	s, _ := newSession(t)

	s.Naming = true
	s.Press(ButtonLeft, 70, 10)
	require.False(t, s.Naming)
	_, ok := s.Level.Get(levels.Foreground, 1, 0)
	require.True(t, ok)

	s.Press(ButtonRight, 70, 10)
	_, ok = s.Level.Get(levels.Foreground, 1, 0)
	require.False(t, ok)

	other := levels.NewTile("grass", levels.Color{B: 1}, levels.Color{B: 2})
	s.Level.Place(levels.Foreground, 2, 0, &other)

	s.ToggleDropper()
	require.Equal(t, ModeDropper, s.Mode)
	s.Press(ButtonLeft, 130, 0)
	require.Equal(t, "grass", s.Sprite())
	require.Equal(t, ModePaint, s.Mode, "the dropper hands back to paint")

	s.SetBrushTile(levels.NewTile("coin", levels.Color{}, levels.Color{}))
	s.Press(ButtonMiddle, 130, 0)
	require.Equal(t, "grass", s.Sprite())

	s.ToggleDropper()
	s.ToggleDropper()
	require.Equal(t, ModePaint, s.Mode)

	s.Press(ButtonLeft, 2000, 0)
	require.Equal(t, 1, s.Level.Count(levels.Foreground), "clicks off the canvas do nothing")
}

func TestPan(t *testing.T) {
	s, _ := newSession(t)
	s.SetMode(ModePan)

	s.Press(ButtonLeft, 500, 300)
	require.True(t, s.Panning())
	require.Zero(t, s.Level.Count(levels.Foreground), "pan mode does not paint")

	s.PanTo(500-130, 300)
	require.Equal(t, 3, s.CamX)
	require.Equal(t, 0, s.CamY)

	// a one pixel drag left already crosses into the next cell
	s.PanTo(499, 300-64)
	require.Equal(t, 1, s.CamX)
	require.Equal(t, 1, s.CamY)

	s.PanTo(500+640, 300)
	require.Equal(t, 0, s.CamX, "clamped at the left edge")

	s.PanTo(500-64*100, 300-64*100)
	require.Equal(t, levels.DefaultWidth-16, s.CamX)
	require.Equal(t, levels.DefaultHeight-9, s.CamY)

	s.Release(ButtonLeft)
	require.False(t, s.Panning())
	s.PanTo(0, 0)
	require.Equal(t, levels.DefaultWidth-16, s.CamX, "released pan ignores motion")
}

func TestResize(t *testing.T) {
	s, _ := newSession(t)
	l, err := levels.New(17, 10, "small")
	require.NoError(t, err)
	s.Level = l
	s.CamX, s.CamY = 1, 1

	s.ShrinkWidth()
	require.Equal(t, 16, s.Level.Width())
	require.Equal(t, 0, s.CamX)
	require.Equal(t, 1, s.CamY)
	require.Equal(t, "Level 16 x 10", s.Status)

	s.GrowHeight()
	s.GrowWidth()
	require.Equal(t, 17, s.Level.Width())
	require.Equal(t, 11, s.Level.Height())

	one, err := levels.New(1, 1, "")
	require.NoError(t, err)
	s.Level = one
	s.ShrinkWidth()
	s.ShrinkHeight()
	require.Equal(t, 1, s.Level.Width())
	require.Equal(t, 1, s.Level.Height())
}

func TestCycleSprite(t *testing.T) {
	s, _ := newSession(t)
	s.CycleSprite(-1)
	require.Equal(t, "rock", s.Sprite())
	s.CycleSprite(1)
	require.Equal(t, "coin", s.Sprite())
	s.CycleSprite(7)
	require.Equal(t, "grass", s.Sprite())
	require.Equal(t, sprites, s.Sprites())
}

func TestSetSprites(t *testing.T) {
	s, _ := newSession(t)
	s.CycleSprite(1)
	require.NoError(t, s.SetSprites([]string{"acorn", "grass"}))
	require.Equal(t, "grass", s.Sprite())

	require.NoError(t, s.SetSprites([]string{"moss"}))
	require.Equal(t, "moss", s.Sprite())

	require.ErrorIs(t, s.SetSprites(nil), ErrNoSprites)
	require.Equal(t, "moss", s.Sprite())
}

func TestSetAnchorCell(t *testing.T) {
	s, _ := newSession(t)
	cases := []struct {
		ix, iy int
		want   levels.Anchor
	}{
		{0, 0, levels.Anchor{X: 0, Y: 0}},
		{1, 1, levels.Anchor{X: 0.5, Y: 0.5}},
		{2, 1, levels.Anchor{X: 1, Y: 0.5}},
		{5, -3, levels.Anchor{X: 1, Y: 0}},
	}
	for _, c := range cases {
		s.SetAnchorCell(c.ix, c.iy)
		require.Equal(t, c.want, s.Anchor)
	}
}

func TestSetLayer(t *testing.T) {
	s, _ := newSession(t)
	s.SetLayer(levels.Background)
	require.Equal(t, levels.Background, s.Layer)
	s.SetLayer(7)
	require.Equal(t, levels.Foreground, s.Layer)
}

func TestColorPicker(t *testing.T) {
	s, _ := newSession(t)

	s.SetSatVal(1, 1)
	s.SetHue(0)
	require.Equal(t, levels.Color{R: 255}, s.Primary)
	require.Equal(t, palette.DefaultSecondary, s.Secondary)

	s.SetColorTarget(TargetSecondary)
	require.Zero(t, s.Sat, "white has no saturation")
	require.Equal(t, 1.0, s.Val)

	s.SetSatVal(0, 0.5)
	require.Equal(t, levels.Color{R: 127, G: 127, B: 127}, s.Secondary)
	require.Equal(t, levels.Color{R: 255}, s.Primary)

	s.SetHue(3)
	require.Equal(t, 1.0, s.Hue)

	s.SetColor(levels.Color{G: 255})
	require.Equal(t, levels.Color{G: 255}, s.TargetColor())
	require.InDelta(t, 1.0/3, s.Hue, 1e-9)

	s.SetColorTarget(TargetPrimary)
	require.Equal(t, levels.Color{R: 255}, s.TargetColor())
	require.InDelta(t, 0, s.Hue, 1e-9)
}

func TestSuggestSecondary(t *testing.T) {
	s, _ := newSession(t)
	s.Primary = levels.Color{R: 110, G: 74, B: 38}

	s.SuggestSecondary()
	require.Equal(t, TargetSecondary, s.Target)
	require.Greater(t, int(s.Secondary.R)+int(s.Secondary.G)+int(s.Secondary.B), 110+74+38)
	require.Equal(t, levels.Color{R: 110, G: 74, B: 38}, s.Primary)
	require.Contains(t, s.Status, palette.Hex(s.Secondary))
}

func TestNaming(t *testing.T) {
	s, _ := newSession(t)
	s.Level.Name = ""

	require.False(t, s.TypeRune('a'), "ignored until the name field is focused")
	s.Naming = true
	for _, r := range "Cave 1" {
		require.True(t, s.TypeRune(r))
	}
	require.False(t, s.TypeRune('\n'))
	require.False(t, s.TypeRune('é'))
	require.Equal(t, "Cave 1", s.Level.Name)

	s.Backspace()
	require.Equal(t, "Cave ", s.Level.Name)

	s.Level.Name = strings.Repeat("x", MaxNameLength)
	require.False(t, s.TypeRune('y'))
	require.Len(t, s.Level.Name, MaxNameLength)

	s.Level.Name = ""
	s.Backspace()
	require.Empty(t, s.Level.Name)
}

func TestSave(t *testing.T) {
	s, hook := newSession(t)
	s.Level.Name = "My Cave!"
	s.PaintAt(0, 0)

	require.NoError(t, s.Save(""))
	require.Equal(t, "My-Cave.level", s.FileName)
	require.Equal(t, "Saved to My-Cave.level", s.Status)
	require.FileExists(t, filepath.Join(s.OutputDir(), "My-Cave.level"))
	require.Equal(t, "saved level", hook.LastEntry().Message)
	require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	// once named, renaming the level does not move the file
	s.Level.Name = "Other"
	require.NoError(t, s.Save(""))
	require.Equal(t, "My-Cave.level", s.FileName)

	require.NoError(t, s.Save("boss"))
	require.Equal(t, "boss.level", s.FileName)
	require.FileExists(t, filepath.Join(s.OutputDir(), "boss.level"))

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.NoError(t, s.SaveTimestamped(now))
	require.Equal(t, "level_20240309_140507.level", s.FileName)

	l, err := levels.Load(s.Path("boss.level"))
	require.NoError(t, err)
	require.True(t, l.Equal(s.Level))
}

func TestSaveFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	s, err := NewSession(sprites, Options{OutputDir: blocker, Log: log})
	require.NoError(t, err)

	require.Error(t, s.Save("x"))
	require.True(t, strings.HasPrefix(s.Status, "Save failed: "), s.Status)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoad(t *testing.T) {
	s, hook := newSession(t)

	err := s.Load("nothing")
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Equal(t, "No file named nothing.level", s.Status)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	require.NoError(t, os.WriteFile(s.Path("broken.level"), []byte(`{"layers": 3}`), 0o644))
	before := s.Level
	err = s.Load("broken.level")
	require.ErrorIs(t, err, levels.ErrMalformed)
	require.Same(t, before, s.Level)
	require.True(t, strings.HasPrefix(s.Status, "Load failed: "), s.Status)

	small, err := levels.New(4, 4, "Small")
	require.NoError(t, err)
	tile := levels.NewTile("rock", levels.Color{R: 1}, levels.Color{R: 2})
	small.Place(levels.Background, 3, 3, &tile)
	require.NoError(t, levels.Save(small, s.Path("small.level")))

	s.CamX, s.CamY = 20, 20
	require.NoError(t, s.Load("small"))
	require.True(t, s.Level.Equal(small))
	require.Equal(t, "small.level", s.FileName)
	require.Equal(t, "Loaded small.level", s.Status)
	require.Zero(t, s.CamX)
	require.Zero(t, s.CamY)

	// an empty name reloads the current file
	s.PaintAt(0, 0)
	require.NoError(t, s.Load(""))
	require.True(t, s.Level.Equal(small))
}

func TestEachVisible(t *testing.T) {
	s, _ := newSession(t)
	tile := levels.NewTile("rock", levels.Color{}, levels.Color{})
	s.Level.Place(levels.Foreground, 20, 10, &tile)
	s.Level.Place(levels.Background, 20, 10, &tile)
	s.Level.Place(levels.Background, 0, 0, &tile)
	s.CamX, s.CamY = 10, 5

	type hit struct{ layer, vx, vy int }
	var hits []hit
	s.EachVisible(func(layer, vx, vy int, _ levels.Tile) {
		hits = append(hits, hit{layer, vx, vy})
	})
	require.Equal(t, []hit{{levels.Background, 10, 5}, {levels.Foreground, 10, 5}}, hits)
}
