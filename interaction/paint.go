package interaction

import (
	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/palette"
)

// TilePainter paints the cursor's brush, or erases, once per cell entered
// during a drag. A whole drag is one undo step.
type TilePainter struct {
	active       bool
	lastX, lastY int
}

// Active reports whether a stroke is in progress.
func (tp *TilePainter) Active() bool { return tp.active }

// Handle processes one frame of pointer input.
func (tp *TilePainter) Handle(st *editor.Store, cur *cursor.Cursor, v Viewport, p Pointer) {
	s := st.State()
	f, ok := s.SelectedFile()
	if !ok {
		tp.end(st)
		return
	}
	l, ok := s.SelectedLayer()
	if !ok || l.Kind != mapdata.KindTile {
		tp.end(st)
		return
	}

	if p.JustPressed && v.OverGrid(p, f) {
		if cur.Tool == cursor.ToolTile && len(cur.Brush) == 0 {
			return
		}
		st.BeginStroke()
		tp.active = true
		tp.lastX, tp.lastY = -1, -1
	}
	if tp.active && p.Down {
		x, y := v.Cell(p, f)
		if x != tp.lastX || y != tp.lastY {
			tp.lastX, tp.lastY = x, y
			if cur.Tool == cursor.ToolEraser {
				st.Dispatch(eraseOp(l.ID, x, y))
			} else {
				st.Dispatch(paintOp(l.ID, x, y, cur.Brush))
			}
		}
	}
	if p.JustReleased || !p.Down {
		tp.end(st)
	}
}

func (tp *TilePainter) end(st *editor.Store) {
	if !tp.active {
		return
	}
	tp.active = false
	st.EndStroke()
}

// paintOp stamps the brush with its top-left cell at (x,y). Cells that fall
// outside the grid are skipped.
func paintOp(layerID string, x, y int, brush palette.Brush) editor.Op {
	return func(s editor.State) editor.State {
		for _, t := range brush {
			s = editor.UpdateTilemap(s, editor.TilePaint{
				LayerID:     layerID,
				TileX:       x + t.OffsetX,
				TileY:       y + t.OffsetY,
				TilesetX:    t.TilesetX,
				TilesetY:    t.TilesetY,
				TilesetName: t.TilesetName,
				TilesetID:   t.TilesetID,
				TileData:    t.TileData,
			})
		}
		return s
	}
}

func eraseOp(layerID string, x, y int) editor.Op {
	return func(s editor.State) editor.State {
		return editor.EraseTile(s, layerID, x, y)
	}
}

// FillOp flood-fills from (x,y) with the first cell of the brush.
func FillOp(layerID string, x, y int, brush palette.Brush) editor.Op {
	return func(s editor.State) editor.State {
		if len(brush) == 0 {
			return s
		}
		t := brush[0]
		return editor.FillLayer(s, editor.TilePaint{
			LayerID:     layerID,
			TileX:       x,
			TileY:       y,
			TilesetX:    t.TilesetX,
			TilesetY:    t.TilesetY,
			TilesetName: t.TilesetName,
			TilesetID:   t.TilesetID,
			TileData:    t.TileData,
		})
	}
}
