package interaction

import (
	"github.com/milk9111/tilemapper/editor"
)

// Scope names the list a ReorderDrag operates on.
type Scope int

const (
	ScopeFiles Scope = iota
	ScopeLayers
	ScopeObjects
)

// ReorderDrag swaps the sort orders of a dragged list entry and the entry it
// is dropped on.
type ReorderDrag struct {
	Scope Scope
	// LayerID is the owning layer for ScopeObjects.
	LayerID string

	dragging string
}

// Start records the dragged entry.
func (d *ReorderDrag) Start(id string) { d.dragging = id }

// Dragging returns the id being dragged, or "".
func (d *ReorderDrag) Dragging() string { return d.dragging }

// Cancel abandons the drag.
func (d *ReorderDrag) Cancel() { d.dragging = "" }

// Drop swaps with target. Drops on the dragged entry itself, or without a
// drag in progress, are ignored.
func (d *ReorderDrag) Drop(st *editor.Store, target string) bool {
	src := d.dragging
	d.dragging = ""
	if src == "" || target == "" || src == target {
		return false
	}
	var op editor.Op
	switch d.Scope {
	case ScopeFiles:
		op = func(s editor.State) editor.State { return editor.SwapFiles(s, src, target) }
	case ScopeLayers:
		op = func(s editor.State) editor.State { return editor.SwapLayers(s, src, target) }
	case ScopeObjects:
		layerID := d.LayerID
		op = func(s editor.State) editor.State { return editor.SwapObjects(s, layerID, src, target) }
	default:
		return false
	}
	return st.Dispatch(op)
}
