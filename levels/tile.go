package levels

import (
	"encoding/json"
	"fmt"
	"math"
)

// TypeID tags a tile with what it represents in the game. The editor never
// interprets it.
type TypeID int

const (
	TypeFloor TypeID = iota + 1
	TypeAir
	TypeWater
	TypeEntity
	TypeCollectible
	TypeHazard
	TypeParticle
)

// TypeIDs lists every known tile type in display order.
var TypeIDs = []TypeID{TypeFloor, TypeAir, TypeWater, TypeEntity, TypeCollectible, TypeHazard, TypeParticle}

func (t TypeID) String() string {
	switch t {
	case TypeFloor:
		return "floor"
	case TypeAir:
		return "air/light"
	case TypeWater:
		return "water"
	case TypeEntity:
		return "entity"
	case TypeCollectible:
		return "collectible"
	case TypeHazard:
		return "hazard"
	case TypeParticle:
		return "particle"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Color is an opaque 8-bit RGB triple. It is stored in level files as [r, g, b].
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Colors are always fully opaque; sprite
// transparency comes from the source image.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{int(c.R), int(c.G), int(c.B)})
}

func (c *Color) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: color: %w", ErrMalformed, err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("%w: color needs 3 channels, got %d", ErrMalformed, len(raw))
	}
	var ch [3]uint8
	for i, v := range raw {
		if v < 0 || v > 255 || math.IsNaN(v) {
			return fmt.Errorf("%w: color channel %v out of range 0-255", ErrMalformed, v)
		}
		ch[i] = uint8(math.Round(v))
	}
	*c = Color{R: ch[0], G: ch[1], B: ch[2]}
	return nil
}

// Anchor places a sprite inside its grid cell. (0,0) is the top-left corner,
// (1,1) the bottom-right and (0.5,0.5) centers the sprite.
type Anchor struct {
	X, Y float64
}

// DefaultAnchor centers sprites in their cell.
var DefaultAnchor = Anchor{X: 0.5, Y: 0.5}

func (a Anchor) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{a.X, a.Y})
}

// UnmarshalJSON reads [ax, ay]. Components outside [0,1] are clamped.
func (a *Anchor) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: anchor: %w", ErrMalformed, err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("%w: anchor needs 2 components, got %d", ErrMalformed, len(raw))
	}
	*a = Anchor{X: clamp01(raw[0]), Y: clamp01(raw[1])}
	return nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tile is the content of one cell. Tiles are values: the level stores its own
// copy, so changing a Tile after placing it has no effect on the level.
type Tile struct {
	Sprite     string `json:"sprite"`
	Primary    Color  `json:"primary"`
	Secondary  Color  `json:"secondary"`
	TypeID     TypeID `json:"type_id"`
	EmitsLight bool   `json:"emits_light"`
	Anchor     Anchor `json:"anchor"`
}

// NewTile returns a tile with the default type, light flag and anchor.
func NewTile(sprite string, primary, secondary Color) Tile {
	return Tile{
		Sprite:    sprite,
		Primary:   primary,
		Secondary: secondary,
		TypeID:    TypeFloor,
		Anchor:    DefaultAnchor,
	}
}

// IsZero reports whether t is the zero Tile, which is what an empty JSON
// object decodes to. Tiles built by NewTile or read with a sprite never are.
func (t Tile) IsZero() bool {
	return t == Tile{}
}

// UnmarshalJSON requires sprite, primary and secondary. The remaining fields
// fall back to the NewTile defaults when absent. An empty object decodes to
// the zero Tile.
func (t *Tile) UnmarshalJSON(b []byte) error {
	var aux struct {
		Sprite     *string `json:"sprite"`
		Primary    *Color  `json:"primary"`
		Secondary  *Color  `json:"secondary"`
		TypeID     *TypeID `json:"type_id"`
		EmitsLight *bool   `json:"emits_light"`
		Anchor     *Anchor `json:"anchor"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Sprite == nil && aux.Primary == nil && aux.Secondary == nil &&
		aux.TypeID == nil && aux.EmitsLight == nil && aux.Anchor == nil {
		*t = Tile{}
		return nil
	}
	switch {
	case aux.Sprite == nil:
		return fmt.Errorf("%w: tile missing sprite", ErrMalformed)
	case aux.Primary == nil:
		return fmt.Errorf("%w: tile %q missing primary", ErrMalformed, *aux.Sprite)
	case aux.Secondary == nil:
		return fmt.Errorf("%w: tile %q missing secondary", ErrMalformed, *aux.Sprite)
	}

	out := NewTile(*aux.Sprite, *aux.Primary, *aux.Secondary)
	if aux.TypeID != nil {
		out.TypeID = *aux.TypeID
	}
	if aux.EmitsLight != nil {
		out.EmitsLight = *aux.EmitsLight
	}
	if aux.Anchor != nil {
		out.Anchor = *aux.Anchor
	}
	*t = out
	return nil
}
