// Package palette turns a drag over a tileset image into a brush: a rectangle
// of tileset cells, each carrying its offset inside the rectangle.
package palette

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/milk9111/tilemapper/mapdata"
)

// BrushTile is one cell of a brush.
type BrushTile struct {
	OffsetX     int
	OffsetY     int
	TilesetID   string
	TilesetName string
	TilesetX    int
	TilesetY    int
	TileData    string
}

// Brush is a rectangle of tiles in row-major order. A nil brush paints nothing.
type Brush []BrushTile

// Size returns the width and height of the brush in cells.
func (b Brush) Size() (int, int) {
	w, h := 0, 0
	for _, t := range b {
		if t.OffsetX+1 > w {
			w = t.OffsetX + 1
		}
		if t.OffsetY+1 > h {
			h = t.OffsetY + 1
		}
	}
	return w, h
}

// Selection tracks a drag over the palette in tileset cell coordinates.
type Selection struct {
	active                 bool
	minX, minY, maxX, maxY int
}

// Begin starts a selection at cell (x,y).
func (s *Selection) Begin(x, y int) {
	s.active = true
	s.minX, s.maxX = x, x
	s.minY, s.maxY = y, y
}

// Extend grows the running bounding box to include cell (x,y).
func (s *Selection) Extend(x, y int) {
	if !s.active {
		return
	}
	s.minX = min(s.minX, x)
	s.minY = min(s.minY, y)
	s.maxX = max(s.maxX, x)
	s.maxY = max(s.maxY, y)
}

// Active reports whether a drag is in progress.
func (s *Selection) Active() bool { return s.active }

// Bounds returns the selected cell rectangle, max exclusive.
func (s *Selection) Bounds() image.Rectangle {
	return image.Rect(s.minX, s.minY, s.maxX+1, s.maxY+1)
}

// Finish ends the drag and returns one tile per cell of the bounding box.
// Tile data is left empty; use Fill to cache pixels.
func (s *Selection) Finish(ts mapdata.Tileset) Brush {
	if !s.active {
		return nil
	}
	s.active = false
	r := s.Bounds()
	brush := make(Brush, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			brush = append(brush, BrushTile{
				OffsetX:     x - r.Min.X,
				OffsetY:     y - r.Min.Y,
				TilesetID:   ts.ID,
				TilesetName: ts.Name,
				TilesetX:    x,
				TilesetY:    y,
			})
		}
	}
	return brush
}

// Fill caches each brush cell's pixels cut from the tileset image.
func Fill(brush Brush, src image.Image, tileW, tileH int) (Brush, error) {
	out := make(Brush, len(brush))
	for i, t := range brush {
		data, err := Snippet(src, t.TilesetX, t.TilesetY, tileW, tileH)
		if err != nil {
			return nil, err
		}
		t.TileData = data
		out[i] = t
	}
	return out, nil
}

// Crop cuts cell (x,y) out of a tileset image.
func Crop(src image.Image, x, y, tileW, tileH int) *image.NRGBA {
	b := src.Bounds()
	r := image.Rect(b.Min.X+x*tileW, b.Min.Y+y*tileH, b.Min.X+(x+1)*tileW, b.Min.Y+(y+1)*tileH)
	return imaging.Crop(src, r)
}

// Snippet crops cell (x,y) and returns it as a PNG data URL.
func Snippet(src image.Image, x, y, tileW, tileH int) (string, error) {
	if tileW < 1 || tileH < 1 {
		return "", fmt.Errorf("palette: bad tile size %dx%d", tileW, tileH)
	}
	cell := Crop(src, x, y, tileW, tileH)
	if cell.Bounds().Empty() {
		return "", fmt.Errorf("palette: cell %d,%d outside tileset", x, y)
	}
	return mapdata.EncodeImage(cell)
}

// Compose renders the brush as a single preview image covering its whole
// rectangle.
func Compose(src image.Image, tileW, tileH int, brush Brush) *image.NRGBA {
	w, h := brush.Size()
	dst := imaging.New(w*tileW, h*tileH, color.NRGBA{})
	for _, t := range brush {
		cell := Crop(src, t.TilesetX, t.TilesetY, tileW, tileH)
		dst = imaging.Paste(dst, cell, image.Pt(t.OffsetX*tileW, t.OffsetY*tileH))
	}
	return dst
}

// Columns returns how many whole cells fit across and down the tileset.
func Columns(src image.Image, tileW, tileH int) (int, int) {
	if tileW < 1 || tileH < 1 {
		return 0, 0
	}
	b := src.Bounds()
	return b.Dx() / tileW, b.Dy() / tileH
}

// CellAt maps a pixel inside the tileset image to a cell, clamped to the grid.
func CellAt(src image.Image, px, py, tileW, tileH int) (int, int) {
	cols, rows := Columns(src, tileW, tileH)
	if cols == 0 || rows == 0 {
		return 0, 0
	}
	return clamp(px/tileW, 0, cols-1), clamp(py/tileH, 0, rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
