package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/forms"
	"github.com/milk9111/tilemapper/mapdata"
)

func twoFiles() editor.State {
	s := editor.AddFile(editor.NewState(), "a")
	s = editor.AddLayer(s, "la", mapdata.KindTile)
	s = editor.AddFile(s, "b")
	return editor.AddLayer(s, "lb", mapdata.KindTile)
}

func TestChangedFiles(t *testing.T) {
	base := twoFiles()

	tests := []struct {
		name string
		op   editor.Op
		want []string
	}{
		{
			name: "paint touches the selected file only",
			op: func(s editor.State) editor.State {
				return editor.UpdateTilemap(s, editor.TilePaint{LayerID: "lb", TileX: 0, TileY: 0, TilesetX: 1, TilesetY: 1, TilesetID: "T", TilesetName: "t"})
			},
			want: []string{"b"},
		},
		{
			name: "selection changes nothing",
			op:   func(s editor.State) editor.State { return editor.SelectFile(s, "a") },
		},
		{
			name: "swapping files keeps pixels",
			op:   func(s editor.State) editor.State { return editor.SwapFiles(s, "a", "b") },
		},
		{
			name: "deleted file is reported",
			op:   func(s editor.State) editor.State { return editor.DeleteFile(s, "a") },
			want: []string{"a"},
		},
		{
			name: "resize is reported",
			op: func(s editor.State) editor.State {
				return editor.UpdateFileSettings(s, editor.FileSettings{Name: "b", Width: 4, Height: 4, TileWidth: 16, TileHeight: 16})
			},
			want: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := changedFiles(base, tt.op(base))
			if len(got) != len(tt.want) {
				t.Fatalf("changedFiles = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("changedFiles = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDiffTilesets(t *testing.T) {
	prev := []mapdata.Tileset{
		{ID: "1", Name: "grass", Blob: "x"},
		{ID: "2", Name: "rock", Blob: "y"},
		{ID: "3", Name: "sand", Blob: "z"},
	}
	next := []mapdata.Tileset{
		{ID: "1", Name: "grass", Blob: "x"},
		{ID: "2", Name: "stone", Blob: "y"},
		{ID: "4", Name: "water", Blob: "w"},
	}

	put, del := diffTilesets(prev, next)
	if len(put) != 2 || put[0].ID != "2" || put[1].ID != "4" {
		t.Fatalf("unexpected put %+v", put)
	}
	if len(del) != 1 || del[0] != "3" {
		t.Fatalf("unexpected del %v", del)
	}

	put, del = diffTilesets(next, next)
	if len(put) != 0 || len(del) != 0 {
		t.Fatalf("identical sets should not diff: put=%v del=%v", put, del)
	}
}

func TestLayerEntriesTopFirst(t *testing.T) {
	f := mapdata.File{
		ID: "f", Name: "f", Width: 2, Height: 2, TileWidth: 8, TileHeight: 8,
		Layers: []mapdata.Layer{
			mapdata.NewLayer("low", "Ground", mapdata.KindTile, 0, 2, 2),
			mapdata.NewLayer("high", "Walls", mapdata.KindObject, 3, 2, 2),
		},
	}
	f.Layers[1].IsVisible = false

	got := layerEntries(f)
	want := []ListEntry{
		{ID: "high", Label: "3. Walls (Object) hidden"},
		{ID: "low", Label: "0. Ground (Tile)"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestObjectAndTilesetEntries(t *testing.T) {
	l := mapdata.NewLayer("l", "Objects", mapdata.KindObject, 0, 0, 0)
	l.Objects = []mapdata.Object{{ID: "o", Name: "door", X: 40, Y: 30, X2: 10, Y2: 10}}
	got := objectEntries(l)
	if len(got) != 1 || got[0].Label != "door 30x20" {
		t.Fatalf("unexpected object entries %+v", got)
	}
	if objectEntries(mapdata.NewLayer("t", "Tiles", mapdata.KindTile, 0, 1, 1)) != nil {
		t.Fatalf("tile layers have no object entries")
	}

	s := editor.AddTileset(editor.NewState(), mapdata.Tileset{ID: "T", Name: "grass"})
	s = editor.AddFile(s, "f")
	s = editor.AddLayer(s, "l", mapdata.KindTile)
	s = editor.UpdateTilemap(s, editor.TilePaint{LayerID: "l", TileX: 0, TileY: 0, TilesetID: "T", TilesetName: "grass"})
	s = editor.UpdateTilemap(s, editor.TilePaint{LayerID: "l", TileX: 1, TileY: 0, TilesetID: "T", TilesetName: "grass"})
	ts := tilesetEntries(s)
	if len(ts) != 1 || ts[0].Label != "grass (2)" {
		t.Fatalf("unexpected tileset entries %+v", ts)
	}
}

func TestExportPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	abs := filepath.Join(string(filepath.Separator), "tmp", "maps.zip")

	tests := []struct {
		dir, name, want string
	}{
		{"exports", "", filepath.Join("exports", "tilemapper-20240309-140506.zip")},
		{"exports", "level1", filepath.Join("exports", "level1.zip")},
		{"exports", " level1.ZIP ", filepath.Join("exports", "level1.ZIP")},
		{"", "level1", "level1.zip"},
		{"exports", abs, abs},
	}
	for _, tt := range tests {
		if got := exportPath(tt.dir, tt.name, now); got != tt.want {
			t.Errorf("exportPath(%q, %q) = %q, want %q", tt.dir, tt.name, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#ff8000", 0xff, 0x80, 0x00},
		{"#0f0", 0x00, 0xff, 0x00},
		{"", defaultObject.R, defaultObject.G, defaultObject.B},
		{"red", defaultObject.R, defaultObject.G, defaultObject.B},
		{"#zzzzzz", defaultObject.R, defaultObject.G, defaultObject.B},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := parseHexColor(tt.in)
			if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 0xff {
				t.Fatalf("parseHexColor(%q) = %v", tt.in, c)
			}
		})
	}
}

func TestObjectPatchKeepsCornersUnlessMoved(t *testing.T) {
	o := mapdata.Object{ID: "o", Name: "door", X: 40, Y: 30, X2: 10, Y2: 10, Width: 30, Height: 20}

	form := forms.ObjectForm{Name: "gate", IsVisible: true, X: 10, Y: 10, Width: 30, Height: 20}
	p := objectPatch(o, form)
	if p.X != nil || p.X2 != nil || p.Width != nil {
		t.Fatalf("unchanged bounds should not rewrite corners: %+v", p)
	}
	if p.Name == nil || *p.Name != "gate" {
		t.Fatalf("name not patched")
	}

	form.Width = 50
	p = objectPatch(o, form)
	if p.X == nil || *p.X != 10 || *p.X2 != 60 || *p.Y2 != 30 || *p.Width != 50 {
		t.Fatalf("resized patch wrong: %+v", p)
	}
}

func TestFormKeyFollowsValues(t *testing.T) {
	a := layerValues(mapdata.NewLayer("l", "Ground", mapdata.KindTile, 0, 1, 1))
	b := layerValues(mapdata.NewLayer("l", "Ground", mapdata.KindTile, 0, 1, 1))
	if formKey("l", a) != formKey("l", b) {
		t.Fatalf("same values should give the same key")
	}
	b["name"] = "Walls"
	if formKey("l", a) == formKey("l", b) {
		t.Fatalf("changed values should give a new key")
	}
}
