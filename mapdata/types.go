package mapdata

import (
	"errors"
	"fmt"
)

// UnknownTilesetName replaces the tileset name of cells whose tileset was deleted.
const UnknownTilesetName = "unknown"

// Default dimensions for a newly created file.
const (
	DefaultWidth      = 10
	DefaultHeight     = 10
	DefaultTileWidth  = 32
	DefaultTileHeight = 32
)

// File is a complete map. Width and Height are in tiles, TileWidth and
// TileHeight in pixels.
type File struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	TileWidth   int     `json:"tileWidth"`
	TileHeight  int     `json:"tileHeight"`
	SortOrder   int     `json:"sortOrder"`
	IsStructure bool    `json:"isStructure"`
	Layers      []Layer `json:"layers"`
}

// Tile is one grid cell referencing a sub-region of a tileset. TileData caches
// the cell's pixels as a PNG data URL.
type Tile struct {
	TilesetID   string `json:"tilesetId"`
	TilesetName string `json:"tilesetName"`
	TilesetX    int    `json:"tilesetX"`
	TilesetY    int    `json:"tilesetY"`
	TileData    string `json:"tileData,omitempty"`
}

// Object is a rectangle drawn on an object layer. (X,Y) and (X2,Y2) are the
// two raw drag corners in pixels, in whatever order they were drawn.
type Object struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	IsVisible bool   `json:"isVisible"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	X2        int    `json:"x2"`
	Y2        int    `json:"y2"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Color     string `json:"color,omitempty"`
}

// Structure is a placed reference to another File anchored at a pixel position.
type Structure struct {
	ID     string `json:"id"`
	FileID string `json:"fileId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Tileset is an uploaded image. Blob is a base64 PNG data URL.
type Tileset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Blob string `json:"blob"`
}

// Rect is an axis-aligned pixel rectangle, Min inclusive and Max exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

func (r Rect) Dx() int { return r.MaxX - r.MinX }
func (r Rect) Dy() int { return r.MaxY - r.MinY }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// BlankTile returns the empty cell sentinel.
func BlankTile() Tile {
	return Tile{TilesetX: -1, TilesetY: -1}
}

// IsBlank reports whether the cell references no tileset region.
func (t Tile) IsBlank() bool {
	return t.TilesetX == -1 && t.TilesetY == -1 && t.TilesetName == ""
}

// NewGrid returns a height×width grid of blank cells.
func NewGrid(width, height int) [][]Tile {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	grid := make([][]Tile, height)
	for y := range grid {
		row := make([]Tile, width)
		for x := range row {
			row[x] = BlankTile()
		}
		grid[y] = row
	}
	return grid
}

// GridSize returns the width and height of a grid.
func GridSize(grid [][]Tile) (int, int) {
	if len(grid) == 0 {
		return 0, 0
	}
	return len(grid[0]), len(grid)
}

// Bounds resolves the rectangle covered by the object from its two raw corners.
func (o Object) Bounds() Rect {
	minX, maxX := o.X, o.X2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := o.Y, o.Y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// PixelSize returns the size of the file's canvas in pixels.
func (f *File) PixelSize() (int, int) {
	return f.Width * f.TileWidth, f.Height * f.TileHeight
}

// Layer returns a pointer to the layer with the given id, or nil.
func (f *File) Layer(id string) *Layer {
	if f == nil {
		return nil
	}
	for i := range f.Layers {
		if f.Layers[i].ID == id {
			return &f.Layers[i]
		}
	}
	return nil
}

var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrBadDimensions  = errors.New("width and height must be at least 1")
	ErrBadTileSize    = errors.New("tile width and height must be at least 1")
	ErrDuplicateOrder = errors.New("layer sort orders must be unique")
)

// Validate checks the file-level invariants.
func (f *File) Validate() error {
	if f.Name == "" {
		return ErrEmptyName
	}
	if f.Width < 1 || f.Height < 1 {
		return ErrBadDimensions
	}
	if f.TileWidth < 1 || f.TileHeight < 1 {
		return ErrBadTileSize
	}
	seen := make(map[int]string, len(f.Layers))
	for _, l := range f.Layers {
		if other, ok := seen[l.SortOrder]; ok {
			return fmt.Errorf("%w: %q and %q share %d", ErrDuplicateOrder, other, l.Name, l.SortOrder)
		}
		seen[l.SortOrder] = l.Name
	}
	return nil
}
