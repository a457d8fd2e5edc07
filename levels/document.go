package levels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Fallback extents used when a document omits width or height: one screen
// of 16x16 tiles at 256x144.
const (
	FallbackWidth  = 16
	FallbackHeight = 9
)

// Document is the on-disk shape of a level. Layers are indexed
// [layer][y][x]; a nil cell is written as null.
type Document struct {
	Name   string      `json:"name"`
	Width  *int        `json:"width"`
	Height *int        `json:"height"`
	Layers [][][]*Tile `json:"layers"`
}

// Serialize converts a level into its document form. Every layer and row is
// written in full.
func Serialize(l *Level) Document {
	w, h := l.width, l.height
	doc := Document{
		Name:   l.Name,
		Width:  &w,
		Height: &h,
		Layers: make([][][]*Tile, LayerCount),
	}
	for li := range l.layers {
		rows := make([][]*Tile, h)
		for y := 0; y < h; y++ {
			row := make([]*Tile, w)
			for x := 0; x < w; x++ {
				if c := l.layers[li][y*w+x]; c != nil {
					t := *c
					row[x] = &t
				}
			}
			rows[y] = row
		}
		doc.Layers[li] = rows
	}
	return doc
}

// Deserialize builds a level from a document. Missing width or height use
// FallbackWidth and FallbackHeight, a missing name uses DefaultName, missing
// layers are empty, {} cells are empty and anything past the level extents is
// ignored.
func Deserialize(doc Document) (*Level, error) {
	w, h := FallbackWidth, FallbackHeight
	if doc.Width != nil {
		w = *doc.Width
	}
	if doc.Height != nil {
		h = *doc.Height
	}
	if err := checkDimensions(w, h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	l, err := New(w, h, doc.Name)
	if err != nil {
		return nil, err
	}
	for li, layer := range doc.Layers {
		if li >= LayerCount {
			break
		}
		for y, row := range layer {
			for x, cell := range row {
				if cell != nil && cell.IsZero() {
					cell = nil
				}
				l.Place(li, x, y, cell)
			}
		}
	}
	return l, nil
}

func (l *Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(Serialize(l))
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	lvl, err := Deserialize(doc)
	if err != nil {
		return err
	}
	*l = *lvl
	return nil
}

// Encode writes a level as 2-space indented JSON.
func Encode(w io.Writer, l *Level) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Serialize(l))
}

// Decode reads one level document; anything after it but whitespace is an
// error. Every failure wraps ErrMalformed.
func Decode(r io.Reader) (*Level, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the level document", ErrMalformed)
	}
	return Deserialize(doc)
}

// Unmarshal is Decode over a byte slice.
func Unmarshal(data []byte) (*Level, error) {
	return Decode(bytes.NewReader(data))
}
