package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/tilemapper/mapdata"
)

// checker returns a cols×rows tileset where every cell is filled with a colour
// encoding its coordinates.
func checker(cols, rows, tile int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols*tile, rows*tile))
	for y := 0; y < rows*tile; y++ {
		for x := 0; x < cols*tile; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x / tile * 10), G: uint8(y / tile * 10), A: 255})
		}
	}
	return img
}

func TestSelectionFinish(t *testing.T) {
	ts := mapdata.Tileset{ID: "T", Name: "terrain"}
	cases := []struct {
		name  string
		path  [][2]int
		w, h  int
		first BrushTile
	}{
		{"single", [][2]int{{2, 1}}, 1, 1, BrushTile{TilesetX: 2, TilesetY: 1}},
		{"forward", [][2]int{{1, 1}, {2, 1}, {3, 2}}, 3, 2, BrushTile{TilesetX: 1, TilesetY: 1}},
		{"backward", [][2]int{{3, 2}, {2, 2}, {1, 0}}, 3, 3, BrushTile{TilesetX: 1, TilesetY: 0}},
		{"wander_back", [][2]int{{0, 0}, {4, 0}, {1, 0}}, 5, 1, BrushTile{TilesetX: 0, TilesetY: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var sel Selection
			sel.Begin(c.path[0][0], c.path[0][1])
			for _, p := range c.path[1:] {
				sel.Extend(p[0], p[1])
			}
			brush := sel.Finish(ts)
			if len(brush) != c.w*c.h {
				t.Fatalf("expected %d cells, got %d", c.w*c.h, len(brush))
			}
			if w, h := brush.Size(); w != c.w || h != c.h {
				t.Fatalf("expected size %dx%d, got %dx%d", c.w, c.h, w, h)
			}
			first := brush[0]
			if first.OffsetX != 0 || first.OffsetY != 0 || first.TilesetX != c.first.TilesetX || first.TilesetY != c.first.TilesetY {
				t.Fatalf("unexpected first cell %+v", first)
			}
			if first.TilesetID != "T" || first.TilesetName != "terrain" {
				t.Fatalf("tileset not tagged: %+v", first)
			}
			for i, b := range brush {
				if b.OffsetY*c.w+b.OffsetX != i {
					t.Fatalf("cell %d out of row-major order: %+v", i, b)
				}
			}
			if sel.Active() {
				t.Fatalf("selection still active")
			}
		})
	}
}

func TestExtendWithoutBegin(t *testing.T) {
	var sel Selection
	sel.Extend(3, 3)
	if brush := sel.Finish(mapdata.Tileset{ID: "T"}); brush != nil {
		t.Fatalf("expected nil brush, got %v", brush)
	}
}

func TestComposeAndSnippet(t *testing.T) {
	src := checker(4, 4, 8)
	brush := Brush{
		{OffsetX: 0, OffsetY: 0, TilesetX: 2, TilesetY: 1},
		{OffsetX: 1, OffsetY: 0, TilesetX: 3, TilesetY: 1},
	}
	img := Compose(src, 8, 8, brush)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("unexpected preview size %v", b)
	}
	if c := img.NRGBAAt(12, 4); c.R != 30 || c.G != 10 {
		t.Fatalf("unexpected pixel %+v", c)
	}

	data, err := Snippet(src, 1, 2, 8, 8)
	if err != nil {
		t.Fatalf("snippet: %v", err)
	}
	cell, err := mapdata.DecodeImage(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := cell.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("unexpected cell size %v", b)
	}
	r, g, _, _ := cell.At(cell.Bounds().Min.X, cell.Bounds().Min.Y).RGBA()
	if r>>8 != 10 || g>>8 != 20 {
		t.Fatalf("wrong cell cropped: r=%d g=%d", r>>8, g>>8)
	}

	if _, err := Snippet(src, 9, 9, 8, 8); err == nil {
		t.Fatalf("expected error for a cell outside the tileset")
	}
}

func TestFill(t *testing.T) {
	src := checker(2, 2, 4)
	brush, err := Fill(Brush{{TilesetX: 1, TilesetY: 1}}, src, 4, 4)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if brush[0].TileData == "" {
		t.Fatalf("tile data not cached")
	}
}

func TestCellAt(t *testing.T) {
	src := checker(4, 3, 16)
	cases := []struct {
		px, py int
		x, y   int
	}{
		{0, 0, 0, 0},
		{17, 33, 1, 2},
		{500, 500, 3, 2},
		{-5, 20, 0, 1},
	}
	for _, c := range cases {
		if x, y := CellAt(src, c.px, c.py, 16, 16); x != c.x || y != c.y {
			t.Fatalf("CellAt(%d,%d) = %d,%d, want %d,%d", c.px, c.py, x, y, c.x, c.y)
		}
	}
}
