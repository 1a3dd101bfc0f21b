package interaction

import (
	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/mapdata"
)

// ObjectRubberBand draws a new object by dragging from one corner to the
// other. The preview is carried on the cursor.
type ObjectRubberBand struct {
	active bool
	ax, ay int
}

// Active reports whether a drag is in progress.
func (rb *ObjectRubberBand) Active() bool { return rb.active }

// Cancel abandons the drag.
func (rb *ObjectRubberBand) Cancel() { rb.active = false }

// Handle processes one frame of pointer input. The object is committed only
// on the release that ends the press which started the drag.
func (rb *ObjectRubberBand) Handle(st *editor.Store, cur *cursor.Cursor, v Viewport, p Pointer) {
	s := st.State()
	f, ok := s.SelectedFile()
	if !ok {
		rb.active = false
		return
	}
	l, ok := s.SelectedLayer()
	if !ok || l.Kind != mapdata.KindObject {
		rb.active = false
		return
	}

	if p.JustPressed && v.OverGrid(p, f) {
		rb.active = true
		rb.ax, rb.ay = v.MapPoint(p, f)
		cur.MoveTo(rb.ax, rb.ay)
		cur.Resize(0, 0)
	}
	if !rb.active {
		return
	}
	if !p.Down && !p.JustReleased {
		rb.active = false
		return
	}
	x, y := v.MapPoint(p, f)
	cur.MoveTo(min(rb.ax, x), min(rb.ay, y))
	cur.Resize(abs(x-rb.ax), abs(y-rb.ay))

	if p.JustReleased {
		rb.active = false
		id := st.NewID()
		r := editor.ObjectRect{
			X:      rb.ax,
			Y:      rb.ay,
			X2:     x,
			Y2:     y,
			Width:  abs(x - rb.ax),
			Height: abs(y - rb.ay),
		}
		st.Dispatch(func(s editor.State) editor.State { return editor.AddObject(s, id, r) })
	}
}

// Selector selects the topmost visible object under the pointer on the
// selected object layer. Clicking empty space clears the selection.
type Selector struct{}

// Handle processes one frame of pointer input.
func (Selector) Handle(st *editor.Store, v Viewport, p Pointer) {
	if !p.JustPressed {
		return
	}
	l, ok := st.State().SelectedLayer()
	if !ok || l.Kind != mapdata.KindObject {
		return
	}
	id := HitObject(l, v, p)
	st.Update(func(s editor.State) editor.State { return editor.SelectObject(s, id) })
}

// HitObject returns the id of the topmost visible object of l under the
// pointer, or "".
func HitObject(l mapdata.Layer, v Viewport, p Pointer) string {
	x, y := v.Pixel(p)
	objs := mapdata.SortedObjects(l.Objects)
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if !o.IsVisible {
			continue
		}
		b := o.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			continue
		}
		if b.Contains(x, y) {
			return o.ID
		}
	}
	return ""
}
