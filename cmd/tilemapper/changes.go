package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/mapdata"
)

// changedFiles lists the files of prev that next removed or modified.
// Reducers copy a file's layer slice whenever they touch the file, so an
// unchanged backing array means an unchanged file.
func changedFiles(prev, next editor.State) []string {
	var ids []string
	for _, a := range prev.Files {
		b, ok := next.File(a.ID)
		if !ok || !sameFile(a, b) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func sameFile(a, b mapdata.File) bool {
	if a.Width != b.Width || a.Height != b.Height || a.TileWidth != b.TileWidth || a.TileHeight != b.TileHeight {
		return false
	}
	if len(a.Layers) != len(b.Layers) {
		return false
	}
	return len(a.Layers) == 0 || &a.Layers[0] == &b.Layers[0]
}

// diffTilesets returns the tilesets to write and the ids to delete so that a
// store holding prev ends up holding next.
func diffTilesets(prev, next []mapdata.Tileset) (put []mapdata.Tileset, del []string) {
	old := make(map[string]mapdata.Tileset, len(prev))
	for _, ts := range prev {
		old[ts.ID] = ts
	}
	for _, ts := range next {
		if o, ok := old[ts.ID]; !ok || o != ts {
			put = append(put, ts)
		}
		delete(old, ts.ID)
	}
	for _, ts := range prev {
		if _, gone := old[ts.ID]; gone {
			del = append(del, ts.ID)
		}
	}
	return put, del
}

func fileEntries(s editor.State) []ListEntry {
	files := mapdata.SortedFiles(s.Files)
	res := make([]ListEntry, 0, len(files))
	for _, f := range files {
		label := f.Name
		if f.IsStructure {
			label += " [structure]"
		}
		res = append(res, ListEntry{ID: f.ID, Label: label})
	}
	return res
}

func layerEntries(f mapdata.File) []ListEntry {
	layers := f.SortedLayers()
	res := make([]ListEntry, 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		label := fmt.Sprintf("%d. %s (%s)", l.SortOrder, l.Name, l.Kind.Title())
		if !l.IsVisible {
			label += " hidden"
		}
		res = append(res, ListEntry{ID: l.ID, Label: label})
	}
	return res
}

func objectEntries(l mapdata.Layer) []ListEntry {
	if l.Kind != mapdata.KindObject {
		return nil
	}
	objs := mapdata.SortedObjects(l.Objects)
	res := make([]ListEntry, 0, len(objs))
	for _, o := range objs {
		r := o.Bounds()
		res = append(res, ListEntry{ID: o.ID, Label: fmt.Sprintf("%s %dx%d", o.Name, r.Dx(), r.Dy())})
	}
	return res
}

func structureEntries(s editor.State) []ListEntry {
	files := s.StructureFiles()
	res := make([]ListEntry, 0, len(files))
	for _, f := range files {
		w, h := f.PixelSize()
		res = append(res, ListEntry{ID: f.ID, Label: fmt.Sprintf("%s %dx%d", f.Name, w, h)})
	}
	return res
}

func tilesetEntries(s editor.State) []ListEntry {
	usage := editor.TilesetUsage(s)
	res := make([]ListEntry, 0, len(s.Tilesets))
	for _, ts := range s.Tilesets {
		res = append(res, ListEntry{ID: ts.ID, Label: fmt.Sprintf("%s (%d)", ts.Name, usage[ts.ID])})
	}
	return res
}

// exportPath picks the bundle path for an export. An empty name falls back
// to a timestamped one.
func exportPath(dir, name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "tilemapper-" + now.Format("20060102-150405")
	}
	if !strings.EqualFold(filepath.Ext(name), ".zip") {
		name += ".zip"
	}
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
