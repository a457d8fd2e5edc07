package colorize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrUnknownSprite = errors.New("colorize: unknown sprite")

// Catalog provides the grayscale source image for a sprite id.
type Catalog interface {
	Sprite(id string) (image.Image, bool)
}

// Key identifies one colorized variant of a sprite.
type Key struct {
	Sprite    string
	Primary   color.NRGBA
	Secondary color.NRGBA
}

// NewKey normalizes both colors so that equal colors from different
// color.Color implementations share a cache entry.
func NewKey(sprite string, primary, secondary color.Color) Key {
	return Key{
		Sprite:    sprite,
		Primary:   opaque(primary),
		Secondary: opaque(secondary),
	}
}

func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

// Cache memoizes colorized sprites for the lifetime of an editing session.
// Entries are never evicted: sprites are loaded once and do not change.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	catalog Catalog
	images  map[Key]*image.NRGBA
}

func NewCache(catalog Catalog) *Cache {
	return &Cache{
		catalog: catalog,
		images:  make(map[Key]*image.NRGBA),
	}
}

// Get returns the sprite tinted with primary and secondary, computing it on
// first use. Callers must not modify the returned image.
func (c *Cache) Get(sprite string, primary, secondary color.Color) (*image.NRGBA, error) {
	key := NewKey(sprite, primary, secondary)
	if img, ok := c.images[key]; ok {
		return img, nil
	}

	src, ok := c.catalog.Sprite(sprite)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, sprite)
	}
	img := Colorize(src, key.Primary, key.Secondary)
	c.images[key] = img
	return img, nil
}

// Len returns the number of cached variants.
func (c *Cache) Len() int {
	return len(c.images)
}
