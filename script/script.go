// Package script runs tengo programs against a level. Scripts import the
// "level" module next to the tengo standard library:
//
//	level := import("level")
//	for x := 0; x < level.width(); x++ {
//		level.place(level.BACKGROUND, x, level.height() - 1, {
//			sprite: "rock", primary: [60, 40, 20], secondary: [200, 170, 120],
//		})
//	}
//
// Tile maps use the same keys as the level file. place and erase return
// false when the cell is outside the level.
package script

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/pixelsmash/levels"
)

// ModuleName is the import name of the level module.
const ModuleName = "level"

// Run compiles and runs src with l bound to the level module. Changes made
// by the script stay on l even when the script fails part way.
func Run(ctx context.Context, l *levels.Level, src []byte) error {
	modules := stdlib.GetModuleMap(stdlib.AllModuleNames()...)
	modules.AddBuiltinModule(ModuleName, Module(l))

	s := tengo.NewScript(src)
	s.SetImports(modules)
	if _, err := s.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Module builds the attributes of the level module for l.
func Module(l *levels.Level) map[string]tengo.Object {
	types := make(map[string]tengo.Object, len(levels.TypeIDs))
	for _, id := range levels.TypeIDs {
		types[id.String()] = &tengo.Int{Value: int64(id)}
	}

	return map[string]tengo.Object{
		"BACKGROUND": &tengo.Int{Value: levels.Background},
		"FOREGROUND": &tengo.Int{Value: levels.Foreground},
		"types":      &tengo.ImmutableMap{Value: types},

		"width": &tengo.UserFunction{Name: "width", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			return &tengo.Int{Value: int64(l.Width())}, nil
		}},
		"height": &tengo.UserFunction{Name: "height", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			return &tengo.Int{Value: int64(l.Height())}, nil
		}},
		"name": &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			return &tengo.String{Value: l.Name}, nil
		}},
		"set_name": &tengo.UserFunction{Name: "set_name", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := tengo.ToString(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
			}
			l.Name = name
			return tengo.UndefinedValue, nil
		}},
		"place": &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			layer, x, y, err := cell(args)
			if err != nil {
				return nil, err
			}
			t, err := toTile(args[3])
			if err != nil {
				return nil, err
			}
			return boolObject(l.Place(layer, x, y, t)), nil
		}},
		"erase": &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			layer, x, y, err := cell(args)
			if err != nil {
				return nil, err
			}
			return boolObject(l.Erase(layer, x, y)), nil
		}},
		"get": &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			layer, x, y, err := cell(args)
			if err != nil {
				return nil, err
			}
			t, ok := l.Get(layer, x, y)
			if !ok {
				return tengo.UndefinedValue, nil
			}
			return tileObject(t), nil
		}},
		"resize": &tengo.UserFunction{Name: "resize", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			w, ok := tengo.ToInt(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "width", Expected: "int", Found: args[0].TypeName()}
			}
			h, ok := tengo.ToInt(args[1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "height", Expected: "int", Found: args[1].TypeName()}
			}
			if err := l.Resize(w, h); err != nil {
				return nil, err
			}
			return tengo.UndefinedValue, nil
		}},
	}
}

func cell(args []tengo.Object) (layer, x, y int, err error) {
	names := [3]string{"layer", "x", "y"}
	var out [3]int
	for i := range out {
		v, ok := tengo.ToInt(args[i])
		if !ok {
			return 0, 0, 0, tengo.ErrInvalidArgumentType{Name: names[i], Expected: "int", Found: args[i].TypeName()}
		}
		out[i] = v
	}
	return out[0], out[1], out[2], nil
}

// toTile goes through the file format so scripts get the same defaults and
// validation as level files. An empty map, like an empty cell, erases.
func toTile(o tengo.Object) (*levels.Tile, error) {
	if o == tengo.UndefinedValue {
		return nil, nil
	}
	switch o.(type) {
	case *tengo.Map, *tengo.ImmutableMap:
	default:
		return nil, tengo.ErrInvalidArgumentType{Name: "tile", Expected: "map", Found: o.TypeName()}
	}

	data, err := json.Marshal(tengo.ToInterface(o))
	if err != nil {
		return nil, err
	}
	var t levels.Tile
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, nil
	}
	return &t, nil
}

func tileObject(t levels.Tile) tengo.Object {
	return &tengo.Map{Value: map[string]tengo.Object{
		"sprite":      &tengo.String{Value: t.Sprite},
		"primary":     colorObject(t.Primary),
		"secondary":   colorObject(t.Secondary),
		"type_id":     &tengo.Int{Value: int64(t.TypeID)},
		"emits_light": boolObject(t.EmitsLight),
		"anchor": &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: t.Anchor.X},
			&tengo.Float{Value: t.Anchor.Y},
		}},
	}}
}

func colorObject(c levels.Color) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Int{Value: int64(c.R)},
		&tengo.Int{Value: int64(c.G)},
		&tengo.Int{Value: int64(c.B)},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
