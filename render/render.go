// Package render composites a level into a flat image, the same way the
// editor canvas draws it: background layer first, then foreground, each
// sprite scaled by whole pixels and shifted inside its cell by its anchor.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"

	"github.com/milk9111/pixelsmash/colorize"
	"github.com/milk9111/pixelsmash/levels"
)

// LightMarkerColor outlines cells whose tile emits light.
var LightMarkerColor = color.NRGBA{255, 255, 100, 255}

type Options struct {
	TileSize    int
	Scale       int
	Background  color.Color
	LightMarker bool
}

func DefaultOptions() Options {
	return Options{
		TileSize:   16,
		Scale:      1,
		Background: color.NRGBA{20, 20, 20, 255},
	}
}

// Offset returns where a w×h sprite starts inside a cellPx square cell.
// Sprites larger than the cell get a negative offset and spill over.
func Offset(cellPx, w, h int, a levels.Anchor) (dx, dy int) {
	return int(float64(cellPx-w) * a.X), int(float64(cellPx-h) * a.Y)
}

// Level draws every tile of l. Sprites are tinted through cache.
func Level(l *levels.Level, cache *colorize.Cache, opts Options) (*image.NRGBA, error) {
	if opts.TileSize < 1 || opts.Scale < 1 {
		return nil, fmt.Errorf("render: tile size %d and scale %d must be positive", opts.TileSize, opts.Scale)
	}
	if opts.Background == nil {
		opts.Background = color.Transparent
	}

	cellPx := opts.TileSize * opts.Scale
	canvas := imaging.New(l.Width()*cellPx, l.Height()*cellPx, opts.Background)
	scaled := make(map[colorize.Key]*image.NRGBA)

	var err error
	for layer := 0; layer < levels.LayerCount; layer++ {
		l.Each(layer, func(x, y int, t levels.Tile) {
			if err != nil {
				return
			}
			key := colorize.NewKey(t.Sprite, t.Primary, t.Secondary)
			img, ok := scaled[key]
			if !ok {
				var src *image.NRGBA
				src, err = cache.Get(t.Sprite, t.Primary, t.Secondary)
				if err != nil {
					err = fmt.Errorf("render: tile (%d,%d) on layer %d: %w", x, y, layer, err)
					return
				}
				img = Scale(src, opts.Scale)
				scaled[key] = img
			}

			dx, dy := Offset(cellPx, img.Bounds().Dx(), img.Bounds().Dy(), t.Anchor)
			at := image.Pt(x*cellPx+dx, y*cellPx+dy)
			draw.Draw(canvas, img.Bounds().Sub(img.Bounds().Min).Add(at), img, img.Bounds().Min, draw.Over)

			if opts.LightMarker && t.EmitsLight {
				outline(canvas, image.Rect(x*cellPx, y*cellPx, (x+1)*cellPx, (y+1)*cellPx), LightMarkerColor)
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

// Scale enlarges img by a whole factor with nearest-neighbor sampling.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	w := max(1, img.Bounds().Dx()*factor)
	h := max(1, img.Bounds().Dy()*factor)
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}

func outline(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// Save writes img to path; the format follows the file extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
