package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/interaction"
)

// ListEntry is one row of an EntryList.
type ListEntry struct {
	ID    string
	Label string
}

// EntryList is a column of selectable rows. With reordering enabled a row
// can be dragged onto another to swap the two.
type EntryList struct {
	Container *widget.Container
	Drag      interaction.ReorderDrag
	reorder   bool

	theme    *widget.Theme
	fontFace *text.Face
	onSelect func(id string)

	entries  []ListEntry
	selected string
	rows     map[string]*widget.Button
	hover    string
}

func NewEntryList(theme *widget.Theme, fontFace *text.Face, onSelect func(id string)) *EntryList {
	return &EntryList{
		Container: newColumn(2),
		theme:     theme,
		fontFace:  fontFace,
		onSelect:  onSelect,
		rows:      make(map[string]*widget.Button),
	}
}

// EnableReorder lets rows be dragged within scope.
func (l *EntryList) EnableReorder(scope interaction.Scope) {
	l.reorder = true
	l.Drag.Scope = scope
}

// SetEntries shows entries with selected highlighted. Rows are only rebuilt
// when the entries themselves change.
func (l *EntryList) SetEntries(entries []ListEntry, selected string) {
	if !sameEntries(l.entries, entries) {
		l.entries = append([]ListEntry(nil), entries...)
		l.rebuild()
	}
	if selected != l.selected {
		l.selected = selected
		for id, row := range l.rows {
			row.SetImage(rowImageFor(id == selected))
		}
	}
}

// Release finishes a drag when the mouse button goes up anywhere. It reports
// whether a swap happened.
func (l *EntryList) Release(st *editor.Store) bool {
	if l.Drag.Dragging() == "" {
		return false
	}
	if l.hover == "" {
		l.Drag.Cancel()
		return false
	}
	return l.Drag.Drop(st, l.hover)
}

func (l *EntryList) rebuild() {
	l.Container.RemoveChildren()
	l.rows = make(map[string]*widget.Button, len(l.entries))
	l.hover = ""
	for _, e := range l.entries {
		id := e.ID
		row := widget.NewButton(
			widget.ButtonOpts.Image(rowImageFor(id == l.selected)),
			widget.ButtonOpts.Text(e.Label, l.fontFace, rowTextColor),
			widget.ButtonOpts.TextPosition(widget.TextPositionStart, widget.TextPositionCenter),
			widget.ButtonOpts.TextPadding(l.theme.ButtonTheme.TextPadding),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(236, 22),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.ButtonOpts.PressedHandler(func(args *widget.ButtonPressedEventArgs) {
				if l.reorder {
					l.Drag.Start(id)
				}
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if l.onSelect != nil {
					l.onSelect(id)
				}
			}),
			widget.ButtonOpts.CursorEnteredHandler(func(args *widget.ButtonHoverEventArgs) {
				l.hover = id
			}),
			widget.ButtonOpts.CursorExitedHandler(func(args *widget.ButtonHoverEventArgs) {
				if l.hover == id {
					l.hover = ""
				}
			}),
		)
		l.rows[id] = row
		l.Container.AddChild(row)
	}
}

func rowImageFor(active bool) *widget.ButtonImage {
	if active {
		return rowActiveImage
	}
	return rowImage
}

func sameEntries(a, b []ListEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
