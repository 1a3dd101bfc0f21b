package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/forms"
	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/palette"
	"github.com/milk9111/tilemapper/watch"
)

// syncUI pushes the current state into the panels.
func (g *Game) syncUI() {
	s := g.store.State()
	v := g.view

	v.files.SetEntries(fileEntries(s), s.SelectedFileID)
	f, hasFile := s.SelectedFile()
	v.layers.SetEntries(layerEntries(f), s.SelectedLayerID)
	l, hasLayer := s.SelectedLayer()
	v.objects.SetEntries(objectEntries(l), s.SelectedObjectID)
	v.objects.Drag.LayerID = l.ID
	v.structures.SetEntries(structureEntries(s), g.cursor.StructureFileID)
	v.generators.SetEntries(g.generatorEntries(), g.selectedGenerator)

	if _, ok := s.Tileset(g.selectedTileset); !ok {
		g.selectedTileset = ""
		if len(s.Tilesets) > 0 {
			g.selectedTileset = s.Tilesets[0].ID
		}
	}
	v.tilesets.SetEntries(tilesetEntries(s), g.selectedTileset)

	v.fileForm.SetVisible(hasFile)
	if hasFile {
		vals := fileValues(f)
		v.fileForm.Load(formKey(f.ID, vals), vals)
	}
	v.layerForm.SetVisible(hasLayer)
	if hasLayer {
		vals := layerValues(l)
		v.layerForm.Load(formKey(l.ID, vals), vals)
	}
	obj := l.Object(s.SelectedObjectID)
	v.objectForm.SetVisible(obj != nil)
	if obj != nil {
		vals := objectValues(*obj)
		v.objectForm.Load(formKey(obj.ID, vals), vals)
	}

	g.sizePalette()
}

// sizePalette makes room in the right panel for the selected tileset image.
func (g *Game) sizePalette() {
	w, h := 1, 1
	if ts, ok := g.store.State().Tileset(g.selectedTileset); ok {
		if _, img := g.images.Tileset(ts); img != nil {
			b := img.Bounds()
			w, h = b.Dx(), b.Dy()
		}
	}
	box := g.view.paletteBox.GetWidget()
	if box.MinWidth == w && box.MinHeight == h {
		return
	}
	box.MinWidth, box.MinHeight = w, h
	g.view.right.RequestRelayout()
}

// formKey identifies what a form shows. It changes when the entity's values
// change, so undo refreshes the form while unrelated edits leave typing alone.
func formKey(id string, v forms.Values) string {
	return id + "|" + fmt.Sprint(map[string]string(v))
}

func fileValues(f mapdata.File) forms.Values {
	return forms.Values{
		"name":        f.Name,
		"width":       strconv.Itoa(f.Width),
		"height":      strconv.Itoa(f.Height),
		"tileWidth":   strconv.Itoa(f.TileWidth),
		"tileHeight":  strconv.Itoa(f.TileHeight),
		"isStructure": strconv.FormatBool(f.IsStructure),
	}
}

func layerValues(l mapdata.Layer) forms.Values {
	return forms.Values{
		"name":      l.Name,
		"isVisible": strconv.FormatBool(l.IsVisible),
		"sortOrder": strconv.Itoa(l.SortOrder),
	}
}

func objectValues(o mapdata.Object) forms.Values {
	r := o.Bounds()
	return forms.Values{
		"name":      o.Name,
		"isVisible": strconv.FormatBool(o.IsVisible),
		"x":         strconv.Itoa(r.MinX),
		"y":         strconv.Itoa(r.MinY),
		"width":     strconv.Itoa(r.Dx()),
		"height":    strconv.Itoa(r.Dy()),
		"color":     o.Color,
	}
}

func (g *Game) generatorEntries() []ListEntry {
	res := make([]ListEntry, 0, len(g.generators))
	for _, gen := range g.generators {
		res = append(res, ListEntry{ID: gen.Name, Label: gen.Name})
	}
	return res
}

func (g *Game) selectTool(t cursor.Tool) {
	g.cursor.SetTool(t)
	g.dirty = true
}

// Files

func (g *Game) selectFile(id string) {
	g.store.Update(func(s editor.State) editor.State { return editor.SelectFile(s, id) })
}

func (g *Game) newFile() {
	id := g.store.NewID()
	g.store.Dispatch(func(s editor.State) editor.State { return editor.AddFile(s, id) })
}

func (g *Game) deleteFile() {
	id := g.store.State().SelectedFileID
	if id == "" {
		return
	}
	if g.cursor.StructureFileID == id {
		g.cursor.Clear()
	}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.DeleteFile(s, id) })
}

func (g *Game) applyFileForm(v forms.Values) forms.Errors {
	form, errs := forms.ParseFileForm(v)
	if errs != nil {
		return errs
	}
	settings := form.Settings()
	g.store.Dispatch(func(s editor.State) editor.State { return editor.UpdateFileSettings(s, settings) })
	return nil
}

// Layers

func (g *Game) selectLayer(id string) {
	g.store.Update(func(s editor.State) editor.State { return editor.SelectLayer(s, id) })
}

func (g *Game) addLayer(kind mapdata.LayerKind) {
	id := g.store.NewID()
	g.store.Dispatch(func(s editor.State) editor.State { return editor.AddLayer(s, id, kind) })
}

func (g *Game) duplicateLayer() {
	id, newID := g.store.State().SelectedLayerID, g.store.NewID()
	g.store.Dispatch(func(s editor.State) editor.State { return editor.DuplicateLayer(s, id, newID) })
}

func (g *Game) toggleLayer() {
	id := g.store.State().SelectedLayerID
	g.store.Dispatch(func(s editor.State) editor.State { return editor.ToggleLayerVisibility(s, id) })
}

func (g *Game) removeLayer() {
	id := g.store.State().SelectedLayerID
	g.store.Dispatch(func(s editor.State) editor.State { return editor.RemoveLayer(s, id) })
}

func (g *Game) applyLayerForm(v forms.Values) forms.Errors {
	form, errs := forms.ParseLayerForm(v)
	if errs != nil {
		return errs
	}
	s := g.store.State()
	f, ok := s.SelectedFile()
	if !ok {
		return forms.Errors{"": "no file selected"}
	}
	id := s.SelectedLayerID
	for _, other := range f.Layers {
		if other.ID != id && other.SortOrder == form.SortOrder {
			return forms.Errors{"sortOrder": "is already used by " + other.Name}
		}
	}
	patch := editor.LayerPatch{Name: &form.Name, IsVisible: &form.IsVisible, SortOrder: &form.SortOrder}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.UpdateLayerSettings(s, id, patch) })
	return nil
}

// Objects and structures

func (g *Game) selectObject(id string) {
	g.store.Update(func(s editor.State) editor.State { return editor.SelectObject(s, id) })
}

func (g *Game) removeObject() {
	s := g.store.State()
	layerID, objID := s.SelectedLayerID, s.SelectedObjectID
	if objID == "" {
		return
	}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.RemoveObject(s, layerID, objID) })
}

func (g *Game) applyObjectForm(v forms.Values) forms.Errors {
	form, errs := forms.ParseObjectForm(v)
	if errs != nil {
		return errs
	}
	s := g.store.State()
	l, ok := s.SelectedLayer()
	if !ok {
		return forms.Errors{"": "no layer selected"}
	}
	obj := l.Object(s.SelectedObjectID)
	if obj == nil {
		return forms.Errors{"": "no object selected"}
	}
	layerID, objID := l.ID, obj.ID
	g.store.Dispatch(func(s editor.State) editor.State {
		return editor.UpdateObjectSettings(s, layerID, objID, objectPatch(*obj, form))
	})
	return nil
}

// objectPatch converts the form into a patch. The drag corners are only
// rewritten, normalized to top-left and bottom-right, when the bounds changed.
func objectPatch(o mapdata.Object, form forms.ObjectForm) editor.ObjectPatch {
	patch := editor.ObjectPatch{
		Name:      &form.Name,
		IsVisible: &form.IsVisible,
		Color:     &form.Color,
	}
	r := o.Bounds()
	if form.X == r.MinX && form.Y == r.MinY && form.Width == r.Dx() && form.Height == r.Dy() {
		return patch
	}
	x2, y2 := form.X+form.Width, form.Y+form.Height
	patch.X, patch.Y = &form.X, &form.Y
	patch.X2, patch.Y2 = &x2, &y2
	patch.Width, patch.Height = &form.Width, &form.Height
	return patch
}

func (g *Game) armStructure(fileID string) {
	f, ok := g.store.State().File(fileID)
	if !ok {
		return
	}
	w, h := f.PixelSize()
	g.cursor.ArmStructure(fileID, g.images.compositor.FileImage(f), w, h)
	g.view.toolBar.SetTool(cursor.ToolStructure)
	g.dirty = true
}

// Generators

func (g *Game) selectGenerator(name string) {
	g.selectedGenerator = name
	g.dirty = true
}

func (g *Game) runGenerator() {
	s := g.store.State()
	f, ok := s.SelectedFile()
	if !ok {
		return
	}
	for _, gen := range g.generators {
		if gen.Name != g.selectedGenerator {
			continue
		}
		grid, err := gen.Run(context.Background(), f, s.SelectedLayerID, g.cursor.Brush, time.Now().UnixNano())
		if err != nil {
			g.setStatus("generator %s: %v", gen.Name, err)
			return
		}
		layerID := s.SelectedLayerID
		g.store.Dispatch(func(s editor.State) editor.State { return editor.ApplyGenerated(s, layerID, grid) })
		g.setStatus("ran %s", gen.Name)
		return
	}
}

// Tilesets

func (g *Game) selectTileset(id string) {
	if id != g.selectedTileset {
		g.paletteSel = palette.Selection{}
	}
	g.selectedTileset = id
	g.dirty = true
}

func (g *Game) openRenameTileset() {
	ts, ok := g.store.State().Tileset(g.selectedTileset)
	if !ok {
		return
	}
	g.view.rename.Open(ts.ID, ts.Name)
}

func (g *Game) renameTileset(id, name string) forms.Errors {
	form, errs := forms.ParseTilesetForm(forms.Values{"name": name})
	if errs != nil {
		return errs
	}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.RenameTileset(s, id, form.Name) })
	return nil
}

func (g *Game) deleteTileset() {
	id := g.selectedTileset
	if id == "" {
		return
	}
	for _, t := range g.cursor.Brush {
		if t.TilesetID == id {
			g.cursor.Clear()
			break
		}
	}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.DeleteTileset(s, id) })
}

func (g *Game) addTilesetFromInput() {
	path := strings.TrimSpace(g.view.tilesetIn.GetText())
	if path == "" {
		return
	}
	ts, err := watch.ReadTileset(path)
	if err != nil {
		g.setStatus("add tileset: %v", err)
		return
	}
	g.store.Dispatch(func(s editor.State) editor.State { return editor.AddTileset(s, ts) })
	g.selectedTileset = ts.ID
	g.view.tilesetIn.SetText("")
	log.WithFields(log.Fields{"id": ts.ID, "path": path}).Info("tileset added")
}
