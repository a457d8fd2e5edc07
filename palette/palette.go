package palette

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"

	"github.com/milk9111/pixelsmash/levels"
)

var (
	DefaultPrimary   = levels.Color{R: 0, G: 0, B: 0}
	DefaultSecondary = levels.Color{R: 255, G: 255, B: 255}
	DefaultTileType  = levels.TypeFloor
)

// Default is the built-in swatch row: a gray ramp followed by earth, water,
// danger and light tones.
var Default = []levels.Color{
	{0, 0, 0},
	{32, 32, 32},
	{64, 64, 64},
	{96, 96, 96},
	{160, 160, 160},
	{224, 224, 224},
	{255, 255, 255},
	{110, 74, 38},
	{150, 99, 60},
	{200, 170, 120},
	{30, 120, 255},
	{20, 200, 160},
	{200, 40, 40},
	{255, 180, 40},
	{255, 220, 120},
	{180, 80, 255},
}

// FromHSV converts hue, saturation and value, all in [0,1], to a color.
// Channels are truncated, matching how the picker has always rounded.
func FromHSV(h, s, v float64) levels.Color {
	c := colorful.Hsv(math.Mod(h, 1)*360, s, v).Clamped()
	return levels.Color{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
	}
}

// ToHSV is the inverse of FromHSV; the hue is returned in [0,1).
func ToHSV(c levels.Color) (h, s, v float64) {
	h, s, v = fromColor(c).Hsv()
	return h / 360, s, v
}

// ParseHex reads "#rrggbb" (or the short "#rgb" form).
func ParseHex(s string) (levels.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return levels.Color{}, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hex formats c as "#rrggbb".
func Hex(c levels.Color) string {
	return fromColor(c).Hex()
}

// Lighter suggests a secondary color for primary by lightening it by pct
// (0..1).
func Lighter(primary levels.Color, pct float64) levels.Color {
	return FromColor(gamut.Lighter(primary, pct))
}

// Generate returns n extra pastel swatches. The result is random.
func Generate(n int) ([]levels.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	cs, err := gamut.Generate(n, gamut.PastelGenerator{})
	if err != nil {
		return nil, fmt.Errorf("palette: generate: %w", err)
	}
	out := make([]levels.Color, len(cs))
	for i, c := range cs {
		out[i] = FromColor(c)
	}
	return out, nil
}

// FromColor drops alpha and converts any color.Color to a level color.
func FromColor(c color.Color) levels.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return levels.Color{R: n.R, G: n.G, B: n.B}
}

func fromColor(c levels.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) levels.Color {
	r, g, b := c.Clamped().RGB255()
	return levels.Color{R: r, G: g, B: b}
}
