// Package colorize maps grayscale sprites through a two-color ramp.
//
// Sprites are authored as grayscale images with an alpha channel. A pixel's
// gray value g (its red channel divided by 255) selects a point on the line
// from the primary color (g = 0) to the secondary color (g = 1); alpha is
// carried over unchanged.
package colorize

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Ramp holds the output color for each of the 256 gray levels.
type Ramp [256]color.NRGBA

// NewRamp evaluates the primary-to-secondary ramp at every gray level.
// Channels are interpolated linearly in sRGB space, clamped and rounded.
func NewRamp(primary, secondary color.Color) *Ramp {
	p := toColorful(primary)
	s := toColorful(secondary)

	var r Ramp
	for g := range r {
		c := p.BlendRgb(s, float64(g)/255).Clamped()
		r[g].R, r[g].G, r[g].B = c.RGB255()
	}
	return &r
}

func toColorful(c color.Color) colorful.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
}

// Apply returns a new image with the bounds of src where every pixel is
// ramp[gray] with the source pixel's alpha. src is not modified.
func (r *Ramp) Apply(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	if b.Empty() {
		return out
	}

	if s, ok := src.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := s.PixOffset(b.Min.X, y)
			di := out.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				c := r[s.Pix[si]]
				out.Pix[di+0] = c.R
				out.Pix[di+1] = c.G
				out.Pix[di+2] = c.B
				out.Pix[di+3] = s.Pix[si+3]
				si += 4
				di += 4
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c := r[px.R]
			c.A = px.A
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// Colorize tints a grayscale image with a primary (dark) and secondary
// (light) color.
func Colorize(src image.Image, primary, secondary color.Color) *image.NRGBA {
	return NewRamp(primary, secondary).Apply(src)
}
