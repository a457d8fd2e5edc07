package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.level
var SamplesFS embed.FS

// LoadFromFS reads a level file from fsys. The extension is optional.
func LoadFromFS(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, WithExt(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	l, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return l, nil
}

// SampleNames lists the embedded sample levels without their extension.
func SampleNames() []string {
	matches, _ := fs.Glob(SamplesFS, "*"+Ext)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, Ext))
	}
	sort.Strings(names)
	return names
}
