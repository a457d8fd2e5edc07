package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/pixelsmash/levels"
)

func newLevel(t *testing.T, w, h int) *levels.Level {
	t.Helper()
	l, err := levels.New(w, h, "scripted")
	require.NoError(t, err)
	return l
}

func TestRunFloor(t *testing.T) {
	l := newLevel(t, 4, 3)
	src := `
level := import("level")
level.set_name("Floor " + level.name())
for x := 0; x < level.width(); x++ {
	level.place(level.BACKGROUND, x, level.height() - 1, {
		sprite: "rock", primary: [60, 40, 20], secondary: [200, 170, 120],
	})
}
`
	require.NoError(t, Run(context.Background(), l, []byte(src)))
	require.Equal(t, "Floor scripted", l.Name)
	require.Equal(t, 4, l.Count(levels.Background))
	require.Equal(t, 0, l.Count(levels.Foreground))

	got, ok := l.Get(levels.Background, 2, 2)
	require.True(t, ok)
	want := levels.NewTile("rock", levels.Color{R: 60, G: 40, B: 20}, levels.Color{R: 200, G: 170, B: 120})
	require.Equal(t, want, got)
}

func TestRunFullTile(t *testing.T) {
	l := newLevel(t, 2, 2)
	src := `
level := import("level")
level.place(level.FOREGROUND, 1, 0, {
	sprite: "lamp", primary: [1, 2, 3], secondary: [4, 5, 6],
	type_id: level.types["hazard"], emits_light: true, anchor: [0, 1.5],
})
`
	require.NoError(t, Run(context.Background(), l, []byte(src)))
	got, ok := l.Get(levels.Foreground, 1, 0)
	require.True(t, ok)
	require.Equal(t, levels.TypeHazard, got.TypeID)
	require.True(t, got.EmitsLight)
	require.Equal(t, levels.Anchor{X: 0, Y: 1}, got.Anchor)
}

func TestRunReadBack(t *testing.T) {
	l := newLevel(t, 3, 3)
	tile := levels.NewTile("coin", levels.Color{R: 255, G: 180, B: 40}, levels.Color{R: 255, G: 220, B: 120})
	l.Place(levels.Foreground, 1, 1, &tile)

	// move the coin one cell right; the out-of-range place must report false
	src := `
level := import("level")
t := level.get(level.FOREGROUND, 1, 1)
if t == undefined { level.set_name("missing") }
if level.get(level.FOREGROUND, 0, 0) != undefined { level.set_name("not empty") }
level.place(level.FOREGROUND, 2, 1, t)
ok := level.erase(level.FOREGROUND, 1, 1)
outside := level.place(level.FOREGROUND, 9, 9, t)
if !ok || outside { level.set_name("bad result") }
`
	require.NoError(t, Run(context.Background(), l, []byte(src)))
	require.Equal(t, "scripted", l.Name)
	_, ok := l.Get(levels.Foreground, 1, 1)
	require.False(t, ok)
	got, ok := l.Get(levels.Foreground, 2, 1)
	require.True(t, ok)
	require.Equal(t, tile, got)
}

func TestRunEmptyMapErases(t *testing.T) {
	l := newLevel(t, 2, 1)
	src := `
level := import("level")
level.place(level.FOREGROUND, 0, 0, {sprite: "coin", primary: [0, 0, 0], secondary: [9, 9, 9]})
level.place(level.FOREGROUND, 1, 0, {sprite: "coin", primary: [0, 0, 0], secondary: [9, 9, 9]})
level.place(level.FOREGROUND, 0, 0, {})
`
	require.NoError(t, Run(context.Background(), l, []byte(src)))
	_, ok := l.Get(levels.Foreground, 0, 0)
	require.False(t, ok)
	require.Equal(t, 1, l.Count(levels.Foreground))
}

func TestRunResize(t *testing.T) {
	l := newLevel(t, 2, 2)
	require.NoError(t, Run(context.Background(), l, []byte(`
level := import("level")
level.resize(level.width() * 3, 1)
`)))
	require.Equal(t, 6, l.Width())
	require.Equal(t, 1, l.Height())

	err := Run(context.Background(), l, []byte(`import("level").resize(0, 4)`))
	require.ErrorContains(t, err, levels.ErrInvalidDimensions.Error())
	require.Equal(t, 6, l.Width())

	err = Run(context.Background(), l, []byte(`import("level").resize(100000, 100000)`))
	require.ErrorContains(t, err, levels.ErrInvalidDimensions.Error())
	require.Equal(t, 6, l.Width())
	require.Equal(t, 1, l.Height())
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `level := import("level"`},
		{"missing_sprite", `import("level").place(0, 0, 0, {primary: [0,0,0], secondary: [0,0,0]})`},
		{"color_out_of_range", `import("level").place(0, 0, 0, {sprite: "x", primary: [0,0,300], secondary: [0,0,0]})`},
		{"tile_not_a_map", `import("level").place(0, 0, 0, "rock")`},
		{"layer_not_int", `import("level").erase("top", 0, 0)`},
		{"wrong_arg_count", `import("level").width(1)`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := newLevel(t, 2, 2)
			require.Error(t, Run(context.Background(), l, []byte(c.src)))
			require.Equal(t, 0, l.Count(levels.Background))
		})
	}
}

func TestRunStdlib(t *testing.T) {
	l := newLevel(t, 1, 1)
	src := `
level := import("level")
text := import("text")
level.set_name(text.to_upper(level.name()))
`
	require.NoError(t, Run(context.Background(), l, []byte(src)))
	require.Equal(t, "SCRIPTED", l.Name)
}

func TestRunCancelled(t *testing.T) {
	l := newLevel(t, 1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := Run(ctx, l, []byte(`for { }`))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
