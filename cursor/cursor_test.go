package cursor

import (
	"image"
	"testing"

	"github.com/milk9111/tilemapper/palette"
)

func TestToolString(t *testing.T) {
	cases := []struct {
		tool Tool
		want string
	}{
		{ToolTile, "Tile"},
		{ToolEraser, "Eraser"},
		{ToolSelect, "Select"},
		{ToolObject, "Object"},
		{ToolStructure, "Structure"},
		{ToolRemove, "Remove"},
		{Tool(42), "Unknown"},
	}
	for _, c := range cases {
		if got := c.tool.String(); got != c.want {
			t.Fatalf("Tool(%d).String() = %q, want %q", c.tool, got, c.want)
		}
	}
}

func TestSetBrushSizesCursor(t *testing.T) {
	c := New()
	c.SetTool(ToolObject)
	brush := palette.Brush{
		{OffsetX: 0, OffsetY: 0}, {OffsetX: 1, OffsetY: 0},
		{OffsetX: 0, OffsetY: 1}, {OffsetX: 1, OffsetY: 1},
	}
	preview := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	c.SetBrush(brush, preview, 32, 32)
	if c.Tool != ToolTile {
		t.Fatalf("expected tile tool, got %v", c.Tool)
	}
	if c.Width != 64 || c.Height != 64 {
		t.Fatalf("unexpected footprint %dx%d", c.Width, c.Height)
	}
	if c.Preview == nil || len(c.Brush) != 4 {
		t.Fatalf("brush not armed")
	}
}

func TestSwitchingToolsDropsPreview(t *testing.T) {
	preview := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	cases := []struct {
		name        string
		arm         func(c *Cursor)
		next        Tool
		keepPreview bool
	}{
		{"brush_to_eraser", func(c *Cursor) { c.SetBrush(palette.Brush{{}}, preview, 8, 8) }, ToolEraser, false},
		{"brush_to_tile", func(c *Cursor) { c.SetBrush(palette.Brush{{}}, preview, 8, 8) }, ToolTile, true},
		{"structure_to_tile", func(c *Cursor) { c.ArmStructure("f", preview, 8, 8) }, ToolTile, false},
		{"structure_to_select", func(c *Cursor) { c.ArmStructure("f", preview, 8, 8) }, ToolSelect, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			tc.arm(c)
			c.SetTool(tc.next)
			if (c.Preview != nil) != tc.keepPreview {
				t.Fatalf("preview kept=%v, want %v", c.Preview != nil, tc.keepPreview)
			}
			if c.StructureFileID != "" && tc.next != ToolStructure {
				t.Fatalf("structure still armed")
			}
		})
	}
}

func TestMoveAndHide(t *testing.T) {
	c := New()
	if c.Visible {
		t.Fatalf("new cursor should be hidden")
	}
	c.MoveTo(10, 20)
	if !c.Visible || c.X != 10 || c.Y != 20 {
		t.Fatalf("unexpected cursor %+v", c)
	}
	c.Hide()
	if c.Visible {
		t.Fatalf("cursor still visible")
	}
	c.ArmStructure("house", nil, 64, 32)
	c.Clear()
	if c.StructureFileID != "" || c.Brush != nil || c.Preview != nil {
		t.Fatalf("clear left state behind: %+v", c)
	}
}
