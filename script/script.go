// Package script runs tengo layer generators. A generator defines
// generate(engine) and fills the target tile layer through engine calls.
package script

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/palette"
)

//go:embed builtin/*.tengo
var builtinFS embed.FS

const runTimeout = 2 * time.Second

const dispatchScript = `
generate(__engine)
`

// Generator is a compiled generator script.
type Generator struct {
	Name     string
	compiled *tengo.Compiled
}

// Compile compiles a generator from source.
func Compile(name string, src []byte) (*Generator, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	if err := s.Add("__engine", map[string]any{}); err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Generator{Name: name, compiled: compiled}, nil
}

// Load compiles the generator at path.
func Load(path string) (*Generator, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return Compile(scriptName(path), src)
}

// Builtins compiles the generators shipped with the editor.
func Builtins() ([]*Generator, error) {
	return loadFS(builtinFS, "builtin")
}

// LoadDir compiles every .tengo file in dir. A missing dir yields nothing.
func LoadDir(dir string) ([]*Generator, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, dir string) ([]*Generator, error) {
	matches, err := fs.Glob(fsys, path(dir, "*.tengo"))
	if err != nil {
		return nil, fmt.Errorf("script: glob %s: %w", dir, err)
	}
	sort.Strings(matches)
	res := make([]*Generator, 0, len(matches))
	for _, m := range matches {
		src, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("script: read %s: %w", m, err)
		}
		g, err := Compile(scriptName(m), src)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, nil
}

func path(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

func scriptName(p string) string {
	return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
}

// Run executes the generator against a tile layer of f and returns the
// resulting grid. The layer itself is not modified.
func (g *Generator) Run(ctx context.Context, f mapdata.File, layerID string, brush palette.Brush, seed int64) ([][]mapdata.Tile, error) {
	l := f.Layer(layerID)
	if l == nil || l.Kind != mapdata.KindTile {
		return nil, fmt.Errorf("script: %s: layer %s is not a tile layer", g.Name, layerID)
	}
	grid := l.Clone().Tiles
	if w, h := mapdata.GridSize(grid); w != f.Width || h != f.Height {
		grid = mapdata.NewGrid(f.Width, f.Height)
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	c := g.compiled.Clone()
	if err := c.Set("__engine", buildEngine(grid, brush, seed)); err != nil {
		return nil, fmt.Errorf("script: %s: %w", g.Name, err)
	}
	if err := c.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", g.Name, err)
	}
	return grid, nil
}

func buildEngine(grid [][]mapdata.Tile, brush palette.Brush, seed int64) *tengo.ImmutableMap {
	w, h := mapdata.GridSize(grid)
	inGrid := func(x, y int) bool { return x >= 0 && y >= 0 && x < w && y < h }
	values := map[string]tengo.Object{}

	values["width"] = &tengo.Int{Value: int64(w)}
	values["height"] = &tengo.Int{Value: int64(h)}
	values["seed"] = &tengo.Int{Value: seed}

	values["brush_size"] = &tengo.UserFunction{Name: "brush_size", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(len(brush))}, nil
	}}

	values["paint"] = &tengo.UserFunction{Name: "paint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 || len(brush) == 0 {
			return tengo.FalseValue, nil
		}
		x, y := objectAsInt(args[0]), objectAsInt(args[1])
		i := 0
		if len(args) > 2 {
			i = objectAsInt(args[2])
		}
		if !inGrid(x, y) || i < 0 || i >= len(brush) {
			return tengo.FalseValue, nil
		}
		t := brush[i]
		grid[y][x] = mapdata.Tile{
			TilesetID:   t.TilesetID,
			TilesetName: t.TilesetName,
			TilesetX:    t.TilesetX,
			TilesetY:    t.TilesetY,
			TileData:    t.TileData,
		}
		return tengo.TrueValue, nil
	}}

	values["erase"] = &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, y := objectAsInt(args[0]), objectAsInt(args[1])
		if !inGrid(x, y) {
			return tengo.FalseValue, nil
		}
		grid[y][x] = mapdata.BlankTile()
		return tengo.TrueValue, nil
	}}

	values["is_blank"] = &tengo.UserFunction{Name: "is_blank", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, y := objectAsInt(args[0]), objectAsInt(args[1])
		if !inGrid(x, y) || !grid[y][x].IsBlank() {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["get"] = &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.UndefinedValue, nil
		}
		x, y := objectAsInt(args[0]), objectAsInt(args[1])
		if !inGrid(x, y) || grid[y][x].IsBlank() {
			return tengo.UndefinedValue, nil
		}
		c := grid[y][x]
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"tileset": &tengo.String{Value: c.TilesetName},
			"x":       &tengo.Int{Value: int64(c.TilesetX)},
			"y":       &tengo.Int{Value: int64(c.TilesetY)},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsInt(obj tengo.Object) int {
	switch v := obj.(type) {
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return int(v.Value)
	default:
		return -1
	}
}
