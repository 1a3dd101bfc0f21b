// Package interaction maps pointer input on the canvas to editor operations.
// It knows nothing about the windowing library: the host feeds it a Pointer
// per frame, relative to the canvas widget, plus the current Viewport.
package interaction

import (
	"math"

	"github.com/milk9111/tilemapper/mapdata"
)

// Pointer is the state of the primary button and position for one frame.
type Pointer struct {
	X, Y         float64
	Down         bool
	JustPressed  bool
	JustReleased bool
}

// Viewport converts between canvas-widget pixels and map pixels.
// Origin is the map point drawn at the widget's top-left, in map pixels.
type Viewport struct {
	Zoom    float64
	OriginX float64
	OriginY float64
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToMap converts a widget-space point to map pixels.
func (v Viewport) ToMap(x, y float64) (float64, float64) {
	z := v.zoom()
	return x/z - v.OriginX, y/z - v.OriginY
}

// ToScreen converts a map pixel to widget space.
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	z := v.zoom()
	return (x + v.OriginX) * z, (y + v.OriginY) * z
}

// Cell returns the grid cell under the pointer, clamped to the file.
func (v Viewport) Cell(p Pointer, f mapdata.File) (int, int) {
	mx, my := v.ToMap(p.X, p.Y)
	cx := int(math.Floor(mx / float64(max(f.TileWidth, 1))))
	cy := int(math.Floor(my / float64(max(f.TileHeight, 1))))
	return clamp(cx, 0, f.Width-1), clamp(cy, 0, f.Height-1)
}

// OverGrid reports whether the pointer is over the file's pixel area.
func (v Viewport) OverGrid(p Pointer, f mapdata.File) bool {
	mx, my := v.ToMap(p.X, p.Y)
	w, h := f.PixelSize()
	return mx >= 0 && my >= 0 && mx < float64(w) && my < float64(h)
}

// Pixel returns the map pixel under the pointer.
func (v Viewport) Pixel(p Pointer) (int, int) {
	mx, my := v.ToMap(p.X, p.Y)
	return int(math.Floor(mx)), int(math.Floor(my))
}

// MapPoint returns the pointer position in whole map pixels, clamped to the
// file's pixel area.
func (v Viewport) MapPoint(p Pointer, f mapdata.File) (int, int) {
	mx, my := v.ToMap(p.X, p.Y)
	w, h := f.PixelSize()
	return clamp(int(math.Floor(mx)), 0, w), clamp(int(math.Floor(my)), 0, h)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
