// Package cursor holds the synthetic canvas cursor as plain data. The canvas
// draws whatever this state says; nothing else positions or styles it.
package cursor

import (
	"image"

	"github.com/milk9111/tilemapper/palette"
)

type Tool int

const (
	ToolTile Tool = iota
	ToolEraser
	ToolSelect
	ToolObject
	ToolStructure
	ToolRemove
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolTile, ToolEraser, ToolSelect, ToolObject, ToolStructure, ToolRemove}

func (t Tool) String() string {
	switch t {
	case ToolTile:
		return "Tile"
	case ToolEraser:
		return "Eraser"
	case ToolSelect:
		return "Select"
	case ToolObject:
		return "Object"
	case ToolStructure:
		return "Structure"
	case ToolRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Paints reports whether the tool writes tile cells.
func (t Tool) Paints() bool { return t == ToolTile || t == ToolEraser }

// Cursor is the canvas cursor. X, Y, Width and Height are in canvas pixels.
type Cursor struct {
	Tool    Tool
	Preview image.Image
	X, Y    int
	Width   int
	Height  int
	Visible bool

	// Brush is the tile selection painted by ToolTile.
	Brush palette.Brush
	// StructureFileID is the file armed for placement by ToolStructure.
	StructureFileID string
}

// New returns a hidden cursor with the tile tool active.
func New() *Cursor {
	return &Cursor{Tool: ToolTile}
}

// SetTool switches tools. Leaving the tile or structure tool drops its
// preview.
func (c *Cursor) SetTool(t Tool) {
	if c.Tool == t {
		return
	}
	c.Tool = t
	switch t {
	case ToolTile:
		if c.StructureFileID != "" {
			c.Preview = nil
		}
		c.StructureFileID = ""
	case ToolStructure:
	default:
		c.Preview = nil
		c.StructureFileID = ""
	}
}

// MoveTo places the cursor and shows it.
func (c *Cursor) MoveTo(x, y int) {
	c.X, c.Y = x, y
	c.Visible = true
}

// Resize sets the cursor footprint.
func (c *Cursor) Resize(w, h int) {
	c.Width, c.Height = w, h
}

// Hide hides the cursor, for example when the pointer leaves the canvas.
func (c *Cursor) Hide() { c.Visible = false }

// SetBrush arms the tile tool with a brush and its preview image.
func (c *Cursor) SetBrush(b palette.Brush, preview image.Image, tileW, tileH int) {
	c.Tool = ToolTile
	c.Brush = b
	c.Preview = preview
	c.StructureFileID = ""
	w, h := b.Size()
	c.Resize(w*tileW, h*tileH)
}

// ArmStructure arms the structure tool with a file to place.
func (c *Cursor) ArmStructure(fileID string, preview image.Image, w, h int) {
	c.Tool = ToolStructure
	c.StructureFileID = fileID
	c.Preview = preview
	c.Resize(w, h)
}

// Clear drops the brush, the armed structure and the preview.
func (c *Cursor) Clear() {
	c.Brush = nil
	c.StructureFileID = ""
	c.Preview = nil
}
