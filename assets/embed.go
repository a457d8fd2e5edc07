package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

//go:embed sprites/*.png
var spritesFS embed.FS

var ErrNoSprites = errors.New("assets: no sprites found")

// Catalog holds the grayscale sprites available to the editor, keyed by the
// file name without extension. It is filled once and read-only afterwards.
type Catalog struct {
	names   []string
	sprites map[string]*image.NRGBA
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog of embedded sprites.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(spritesFS, "sprites")
	})
	return defaultCatalog, defaultErr
}

// LoadDir loads every PNG directly inside dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every PNG directly inside dir of fsys.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", dir, err)
	}

	c := &Catalog{sprites: make(map[string]*image.NRGBA)}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".png") {
			continue
		}
		img, err := loadImage(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if _, dup := c.sprites[name]; dup {
			continue
		}
		c.sprites[name] = img
		c.names = append(c.names, name)
	}
	if len(c.names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSprites, dir)
	}
	sort.Strings(c.names)
	return c, nil
}

func loadImage(fsys fs.FS, name string) (*image.NRGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return imaging.Clone(img), nil
}

// Names returns the sprite ids in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Sprite returns the grayscale source image for id.
func (c *Catalog) Sprite(id string) (image.Image, bool) {
	img, ok := c.sprites[id]
	if !ok {
		return nil, false
	}
	return img, true
}

// Index returns the position of id in Names, or -1.
func (c *Catalog) Index(id string) int {
	i := sort.SearchStrings(c.names, id)
	if i < len(c.names) && c.names[i] == id {
		return i
	}
	return -1
}

func (c *Catalog) Len() int { return len(c.names) }
