package levels

import (
	"errors"
	"fmt"
)

const (
	// Background is drawn first, Foreground on top of it.
	Background = 0
	Foreground = 1
	// LayerCount is fixed: a level never has more or fewer layers.
	LayerCount = 2

	DefaultName   = "Untitled"
	DefaultWidth  = 64
	DefaultHeight = 36

	// MaxDimension caps either side of a level and MaxCells caps the area,
	// which keeps width*height far from overflowing and the grid in memory.
	MaxDimension = 4096
	MaxCells     = 1 << 22
)

var (
	ErrInvalidDimensions = errors.New("levels: invalid width or height")
	ErrMalformed         = errors.New("levels: malformed level")
)

// Level is a two-layer tile grid. Each layer is a flat row-major slice of
// Width*Height cells (index y*Width+x); a nil cell is empty.
//
// A Level is not safe for concurrent use. Resize replaces the backing storage,
// so Place, Get and Resize must all be called from the same goroutine.
type Level struct {
	Name string

	width  int
	height int
	layers [LayerCount][]*Tile
}

// New creates an empty level. An empty name becomes DefaultName.
func New(width, height int, name string) (*Level, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultName
	}
	l := &Level{Name: name, width: width, height: height}
	for i := range l.layers {
		l.layers[i] = make([]*Tile, width*height)
	}
	return l, nil
}

// NewDefault creates an empty DefaultWidth x DefaultHeight level.
func NewDefault() *Level {
	l, _ := New(DefaultWidth, DefaultHeight, DefaultName)
	return l
}

func checkDimensions(width, height int) error {
	switch {
	case width < 1 || height < 1:
		return fmt.Errorf("%w: got %dx%d, both must be at least 1", ErrInvalidDimensions, width, height)
	case width > MaxDimension || height > MaxDimension:
		return fmt.Errorf("%w: got %dx%d, sides are limited to %d", ErrInvalidDimensions, width, height, MaxDimension)
	case width*height > MaxCells:
		return fmt.Errorf("%w: got %dx%d, more than %d cells", ErrInvalidDimensions, width, height, MaxCells)
	}
	return nil
}

func (l *Level) Width() int  { return l.width }
func (l *Level) Height() int { return l.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

func (l *Level) index(layer, x, y int) (int, bool) {
	if layer < 0 || layer >= LayerCount || !l.InBounds(x, y) {
		return 0, false
	}
	return y*l.width + x, true
}

// Place writes a copy of t into a cell; a nil t empties it. It returns false,
// leaving the level untouched, when the layer or coordinate is out of range.
func (l *Level) Place(layer, x, y int, t *Tile) bool {
	idx, ok := l.index(layer, x, y)
	if !ok {
		return false
	}
	if t == nil {
		l.layers[layer][idx] = nil
		return true
	}
	c := *t
	l.layers[layer][idx] = &c
	return true
}

// Erase empties a cell. See Place for the return value.
func (l *Level) Erase(layer, x, y int) bool {
	return l.Place(layer, x, y, nil)
}

// Get returns the tile in a cell. ok is false for empty cells and for any
// out-of-range layer or coordinate.
func (l *Level) Get(layer, x, y int) (t Tile, ok bool) {
	idx, ok := l.index(layer, x, y)
	if !ok {
		return Tile{}, false
	}
	p := l.layers[layer][idx]
	if p == nil {
		return Tile{}, false
	}
	return *p, true
}

// Resize changes the grid extents. Cells inside both the old and the new
// bounds keep their content, new cells start empty and cells outside the new
// bounds are dropped. On error the level is unchanged.
func (l *Level) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	keepW := min(l.width, width)
	keepH := min(l.height, height)

	var next [LayerCount][]*Tile
	for li := range next {
		cells := make([]*Tile, width*height)
		for y := 0; y < keepH; y++ {
			copy(cells[y*width:y*width+keepW], l.layers[li][y*l.width:y*l.width+keepW])
		}
		next[li] = cells
	}

	l.layers = next
	l.width = width
	l.height = height
	return nil
}

// Count returns the number of non-empty cells in a layer.
func (l *Level) Count(layer int) int {
	if layer < 0 || layer >= LayerCount {
		return 0
	}
	n := 0
	for _, c := range l.layers[layer] {
		if c != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty cell of a layer in row-major order.
func (l *Level) Each(layer int, fn func(x, y int, t Tile)) {
	if layer < 0 || layer >= LayerCount {
		return
	}
	for idx, c := range l.layers[layer] {
		if c == nil {
			continue
		}
		fn(idx%l.width, idx/l.width, *c)
	}
}

// Equal reports whether two levels have the same name, extents and cells.
func (l *Level) Equal(o *Level) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Name != o.Name || l.width != o.width || l.height != o.height {
		return false
	}
	for li := range l.layers {
		for idx, a := range l.layers[li] {
			b := o.layers[li][idx]
			if (a == nil) != (b == nil) {
				return false
			}
			if a != nil && *a != *b {
				return false
			}
		}
	}
	return true
}
