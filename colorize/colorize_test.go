package colorize

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// grayRow builds a 256x1 image whose pixel x has gray value x and alpha 255-x.
func grayRow() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		g := uint8(x)
		img.SetNRGBA(x, 0, color.NRGBA{R: g, G: g, B: g, A: 255 - g})
	}
	return img
}

func channels(c color.NRGBA) [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

func within(t *testing.T, want, got [3]int, tol int) {
	t.Helper()
	for i := range want {
		d := want[i] - got[i]
		if d < -tol || d > tol {
			t.Fatalf("channel %d: want %d got %d (tolerance %d)", i, want[i], got[i], tol)
		}
	}
}

func TestColorizeEndpoints(t *testing.T) {
	cases := []struct {
		name               string
		primary, secondary color.NRGBA
	}{
		{"black_white", color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255}},
		{"inverted", color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 255}},
		{"brown_sand", color.NRGBA{110, 74, 38, 255}, color.NRGBA{200, 170, 120, 255}},
		{"mixed_direction", color.NRGBA{30, 200, 255, 255}, color.NRGBA{200, 40, 40, 255}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := grayRow()
			out := Colorize(src, c.primary, c.secondary)
			require.Equal(t, src.Bounds(), out.Bounds())

			within(t, channels(c.primary), channels(out.NRGBAAt(0, 0)), 1)
			within(t, channels(c.secondary), channels(out.NRGBAAt(255, 0)), 1)

			for x := 0; x < 256; x++ {
				require.Equal(t, src.NRGBAAt(x, 0).A, out.NRGBAAt(x, 0).A, "alpha at %d", x)
			}
		})
	}
}

func TestColorizeMonotonic(t *testing.T) {
	primary := color.NRGBA{30, 200, 10, 255}
	secondary := color.NRGBA{220, 40, 250, 255}
	out := Colorize(grayRow(), primary, secondary)

	p := channels(primary)
	s := channels(secondary)
	prev := channels(out.NRGBAAt(0, 0))
	for x := 1; x < 256; x++ {
		cur := channels(out.NRGBAAt(x, 0))
		for ch := 0; ch < 3; ch++ {
			lo, hi := min(p[ch], s[ch]), max(p[ch], s[ch])
			require.GreaterOrEqual(t, cur[ch], lo)
			require.LessOrEqual(t, cur[ch], hi)
			if s[ch] > p[ch] {
				require.GreaterOrEqual(t, cur[ch], prev[ch], "channel %d at gray %d", ch, x)
			} else {
				require.LessOrEqual(t, cur[ch], prev[ch], "channel %d at gray %d", ch, x)
			}
		}
		prev = cur
	}
}

func TestColorizeDoesNotMutateSource(t *testing.T) {
	src := grayRow()
	before := append([]uint8(nil), src.Pix...)
	Colorize(src, color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255})
	require.Equal(t, before, src.Pix)
}

func TestColorizeGenericImage(t *testing.T) {
	// *image.Gray takes the slow path; bounds with a non-zero origin must survive
	src := image.NewGray(image.Rect(3, 5, 7, 6))
	for x := 3; x < 7; x++ {
		src.SetGray(x, 5, color.Gray{Y: 255})
	}
	out := Colorize(src, color.NRGBA{0, 0, 0, 255}, color.NRGBA{10, 20, 30, 255})
	require.Equal(t, src.Bounds(), out.Bounds())
	require.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(4, 5))

	fast := image.NewNRGBA(image.Rect(3, 5, 7, 6))
	for x := 3; x < 7; x++ {
		fast.SetNRGBA(x, 5, color.NRGBA{255, 255, 255, 255})
	}
	require.Equal(t, out.Pix, Colorize(fast, color.NRGBA{0, 0, 0, 255}, color.NRGBA{10, 20, 30, 255}).Pix)
}

func TestColorizeEmpty(t *testing.T) {
	out := Colorize(image.NewNRGBA(image.Rectangle{}), color.Black, color.White)
	require.True(t, out.Bounds().Empty())
}

func TestColorizeReadsRedChannel(t *testing.T) {
	// non-gray input is not validated; only red drives the ramp
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	out := Colorize(src, color.NRGBA{0, 0, 0, 255}, color.NRGBA{100, 100, 100, 255})
	require.Equal(t, color.NRGBA{100, 100, 100, 128}, out.NRGBAAt(0, 0))
}
