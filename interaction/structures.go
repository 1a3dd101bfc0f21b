package interaction

import (
	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/mapdata"
)

// StructurePlacer moves the armed structure preview in grid steps and places
// it on click.
type StructurePlacer struct{}

// Snap returns the grid-aligned map position under the pointer.
func Snap(v Viewport, p Pointer, f mapdata.File) (int, int) {
	x, y := v.Cell(p, f)
	return x * f.TileWidth, y * f.TileHeight
}

// Handle processes one frame of pointer input.
func (StructurePlacer) Handle(st *editor.Store, cur *cursor.Cursor, v Viewport, p Pointer) {
	if cur.StructureFileID == "" {
		return
	}
	s := st.State()
	f, ok := s.SelectedFile()
	if !ok {
		return
	}
	x, y := Snap(v, p, f)
	cur.MoveTo(x, y)

	if !p.JustPressed || !v.OverGrid(p, f) {
		return
	}
	l, ok := s.SelectedLayer()
	if !ok || l.Kind != mapdata.KindStructure {
		return
	}
	id := st.NewID()
	fileID := cur.StructureFileID
	st.Dispatch(func(s editor.State) editor.State { return editor.AddStructure(s, id, fileID, x, y) })
}

// StructureRemover deletes the placed structure under the pointer.
type StructureRemover struct{}

// Handle processes one frame of pointer input.
func (StructureRemover) Handle(st *editor.Store, v Viewport, p Pointer) {
	if !p.JustPressed {
		return
	}
	s := st.State()
	f, ok := s.SelectedFile()
	if !ok {
		return
	}
	id := HitStructure(s, f, v, p)
	if id == "" {
		return
	}
	st.Dispatch(func(s editor.State) editor.State { return editor.RemoveStructure(s, id) })
}

// HitStructure returns the id of the topmost structure of f under the
// pointer. Structures are sized by the file they reference; references that
// no longer resolve cannot be hit.
func HitStructure(s editor.State, f mapdata.File, v Viewport, p Pointer) string {
	x, y := v.Pixel(p)
	layers := f.SortedLayers()
	for li := len(layers) - 1; li >= 0; li-- {
		l := layers[li]
		if l.Kind != mapdata.KindStructure || !l.IsVisible {
			continue
		}
		for i := len(l.Structures) - 1; i >= 0; i-- {
			ps := l.Structures[i]
			ref, ok := s.File(ps.FileID)
			if !ok {
				continue
			}
			w, h := ref.PixelSize()
			r := mapdata.Rect{MinX: ps.X, MinY: ps.Y, MaxX: ps.X + w, MaxY: ps.Y + h}
			if r.Contains(x, y) {
				return ps.ID
			}
		}
	}
	return ""
}
