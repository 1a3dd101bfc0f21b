package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/palette"
)

func tileFile(w, h int) mapdata.File {
	return mapdata.File{
		ID: "F", Name: "F", Width: w, Height: h, TileWidth: 16, TileHeight: 16,
		Layers: []mapdata.Layer{
			mapdata.NewLayer("L", "tiles", mapdata.KindTile, 0, w, h),
			mapdata.NewLayer("O", "objects", mapdata.KindObject, 1, 0, 0),
		},
	}
}

var twoTiles = palette.Brush{
	{TilesetID: "T", TilesetName: "t", TilesetX: 0, TilesetY: 0},
	{OffsetX: 1, TilesetID: "T", TilesetName: "t", TilesetX: 1, TilesetY: 0},
}

func builtin(t *testing.T, name string) *Generator {
	t.Helper()
	gens, err := Builtins()
	if err != nil {
		t.Fatalf("builtins: %v", err)
	}
	for _, g := range gens {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("builtin %s missing", name)
	return nil
}

func TestBuiltins(t *testing.T) {
	cases := []struct {
		name  string
		check func(t *testing.T, grid [][]mapdata.Tile)
	}{
		{"border", func(t *testing.T, grid [][]mapdata.Tile) {
			if grid[0][0].IsBlank() || grid[3][4].IsBlank() || grid[2][0].IsBlank() {
				t.Fatalf("edge not painted")
			}
			if !grid[2][2].IsBlank() || !grid[2][3].IsBlank() {
				t.Fatalf("interior painted")
			}
		}},
		{"checker", func(t *testing.T, grid [][]mapdata.Tile) {
			for y := range grid {
				for x := range grid[y] {
					if want := (x + y) % 2; grid[y][x].TilesetX != want {
						t.Fatalf("cell (%d,%d) = %d, want %d", x, y, grid[y][x].TilesetX, want)
					}
				}
			}
		}},
		{"scatter", func(t *testing.T, grid [][]mapdata.Tile) {
			if len(grid) != 4 || len(grid[0]) != 5 {
				t.Fatalf("grid reshaped")
			}
		}},
		{"clear", func(t *testing.T, grid [][]mapdata.Tile) {
			for y := range grid {
				for x := range grid[y] {
					if !grid[y][x].IsBlank() {
						t.Fatalf("cell (%d,%d) not cleared", x, y)
					}
				}
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := tileFile(5, 4)
			f.Layers[0].Tiles[1][1] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TilesetX: 3, TilesetY: 3}
			grid, err := builtin(t, c.name).Run(context.Background(), f, "L", twoTiles, 7)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			c.check(t, grid)
			if c.name != "clear" && f.Layers[0].Tiles[1][1].TilesetX != 3 {
				t.Fatalf("input layer modified")
			}
		})
	}
}

func TestScatterIsDeterministicPerSeed(t *testing.T) {
	g := builtin(t, "scatter")
	f := tileFile(20, 20)
	a, err := g.Run(context.Background(), f, "L", twoTiles, 42)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := g.Run(context.Background(), f, "L", twoTiles, 42)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("runs differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestRunErrors(t *testing.T) {
	loop, err := Compile("loop", []byte("generate := func(engine) { for { } }"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	border := builtin(t, "border")
	cases := []struct {
		name    string
		gen     *Generator
		layerID string
	}{
		{"object_layer", border, "O"},
		{"missing_layer", border, "nope"},
		{"timeout", loop, "L"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.gen.Run(context.Background(), tileFile(3, 3), c.layerID, twoTiles, 0); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile("bad", []byte("generate := func(engine) {"))
	if err == nil {
		t.Fatalf("expected compile error")
	}
	if !strings.HasPrefix(err.Error(), "script: compile bad: ") {
		t.Fatalf("error not wrapped with the script name: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	src := []byte("generate := func(engine) { engine.paint(0, 0) }")
	if err := os.WriteFile(filepath.Join(dir, "corner.tengo"), src, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	gens, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(gens) != 1 || gens[0].Name != "corner" {
		t.Fatalf("unexpected generators %v", gens)
	}
	grid, err := gens[0].Run(context.Background(), tileFile(2, 2), "L", twoTiles, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if grid[0][0].TilesetX != 0 || grid[0][0].IsBlank() {
		t.Fatalf("corner not painted: %+v", grid[0][0])
	}

	if gens, err := LoadDir(filepath.Join(dir, "missing")); err != nil || gens != nil {
		t.Fatalf("missing dir: %v %v", gens, err)
	}
}
