package interaction

import (
	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
)

// Canvas routes pointer input to the controller of the active tool and keeps
// the hover cursor in sync.
type Canvas struct {
	Store  *editor.Store
	Cursor *cursor.Cursor

	painter TilePainter
	band    ObjectRubberBand
	placer  StructurePlacer
	remover StructureRemover
	sel     Selector

	lastTool cursor.Tool
}

// NewCanvas returns a canvas controller bound to a store and cursor.
func NewCanvas(st *editor.Store, cur *cursor.Cursor) *Canvas {
	return &Canvas{Store: st, Cursor: cur, lastTool: cur.Tool}
}

// Busy reports whether a drag owns the pointer.
func (c *Canvas) Busy() bool {
	return c.painter.Active() || c.band.Active()
}

// Handle processes one frame of pointer input. inside reports whether the
// pointer is over the canvas widget; a drag keeps receiving input after it
// leaves.
func (c *Canvas) Handle(v Viewport, p Pointer, inside bool) {
	if c.Cursor.Tool != c.lastTool {
		c.Cancel()
		c.lastTool = c.Cursor.Tool
	}
	if !inside && !c.Busy() {
		c.Cursor.Hide()
		return
	}
	if !inside {
		p.JustPressed = false
	}
	c.hover(v, p)

	switch c.Cursor.Tool {
	case cursor.ToolTile, cursor.ToolEraser:
		c.painter.Handle(c.Store, c.Cursor, v, p)
	case cursor.ToolObject:
		c.band.Handle(c.Store, c.Cursor, v, p)
	case cursor.ToolStructure:
		c.placer.Handle(c.Store, c.Cursor, v, p)
	case cursor.ToolRemove:
		c.remover.Handle(c.Store, v, p)
	case cursor.ToolSelect:
		c.sel.Handle(c.Store, v, p)
	}
}

// Cancel drops any drag in progress without committing it. An open paint
// stroke is closed so later edits get their own undo entries.
func (c *Canvas) Cancel() {
	c.painter.end(c.Store)
	c.band.Cancel()
}

// Fill flood-fills from the cell under the pointer with the current brush.
func (c *Canvas) Fill(v Viewport, p Pointer) {
	s := c.Store.State()
	f, ok := s.SelectedFile()
	if !ok || !v.OverGrid(p, f) {
		return
	}
	l, ok := s.SelectedLayer()
	if !ok {
		return
	}
	x, y := v.Cell(p, f)
	c.Store.Dispatch(FillOp(l.ID, x, y, c.Cursor.Brush))
}

// Wheel zooms in for positive deltas and out for negative ones.
func (c *Canvas) Wheel(dy float64) {
	switch {
	case dy > 0:
		c.Store.Update(editor.ZoomIn)
	case dy < 0:
		c.Store.Update(editor.ZoomOut)
	}
}

func (c *Canvas) hover(v Viewport, p Pointer) {
	f, ok := c.Store.State().SelectedFile()
	if !ok {
		c.Cursor.Hide()
		return
	}
	switch c.Cursor.Tool {
	case cursor.ToolTile:
		x, y := Snap(v, p, f)
		c.Cursor.MoveTo(x, y)
		w, h := c.Cursor.Brush.Size()
		c.Cursor.Resize(w*f.TileWidth, h*f.TileHeight)
	case cursor.ToolEraser:
		x, y := Snap(v, p, f)
		c.Cursor.MoveTo(x, y)
		c.Cursor.Resize(f.TileWidth, f.TileHeight)
	case cursor.ToolObject:
		if !c.band.Active() {
			x, y := v.MapPoint(p, f)
			c.Cursor.MoveTo(x, y)
			c.Cursor.Resize(0, 0)
		}
	case cursor.ToolSelect, cursor.ToolRemove:
		c.Cursor.Hide()
	}
}
