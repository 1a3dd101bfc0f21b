package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/tilemapper/mapdata"
)

func sampleFile() mapdata.File {
	l := mapdata.NewLayer("L", "Ground", mapdata.KindTile, 0, 3, 2)
	l.Tiles[1][2] = mapdata.Tile{TilesetID: "T", TilesetName: "terrain", TilesetX: 2, TilesetY: 1, TileData: "data:image/png;base64,AA=="}
	return mapdata.File{ID: "F", Name: "level one", Width: 3, Height: 2, TileWidth: 16, TileHeight: 16, Layers: []mapdata.Layer{l}}
}

func entries(t *testing.T, b []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	res := make(map[string][]byte)
	for _, zf := range zr.File {
		data, err := readEntry(zf)
		if err != nil {
			t.Fatalf("read %s: %v", zf.Name, err)
		}
		res[zf.Name] = data
	}
	return res
}

func TestExportLayout(t *testing.T) {
	tilesets := []mapdata.Tileset{
		{ID: "T", Name: "terrain", Blob: mapdata.EncodeDataURL([]byte{1, 2, 3})},
		{ID: "U", Name: "a/b", Blob: mapdata.EncodeDataURL([]byte{4})},
	}
	var buf bytes.Buffer
	if err := Export(&buf, []mapdata.File{sampleFile()}, tilesets); err != nil {
		t.Fatalf("export: %v", err)
	}
	got := entries(t, buf.Bytes())

	if !bytes.Equal(got["tilesets/T/terrain.png"], []byte{1, 2, 3}) {
		t.Fatalf("tileset T missing or wrong: %v", got["tilesets/T/terrain.png"])
	}
	if _, ok := got["tilesets/U/a_b.png"]; !ok {
		t.Fatalf("unsafe tileset name not sanitized: %v", keys(got))
	}
	raw, ok := got["level one.json"]
	if !ok {
		t.Fatalf("file entry missing: %v", keys(got))
	}
	if strings.Contains(string(raw), "tileData") {
		t.Fatalf("tile data not stripped: %s", raw)
	}
	var f mapdata.File
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := f.Layers[0].Tiles[1][2]
	if c.TilesetID != "T" || c.TilesetName != "terrain" || c.TilesetX != 2 || c.TilesetY != 1 {
		t.Fatalf("cell reference lost: %+v", c)
	}
}

func keys(m map[string][]byte) []string {
	var res []string
	for k := range m {
		res = append(res, k)
	}
	return res
}

func TestTilesetRoundTrip(t *testing.T) {
	// ordered by name, as ImportTilesets returns them
	tilesets := []mapdata.Tileset{
		{ID: "X", Name: "caves/deep: v2", Blob: mapdata.EncodeDataURL([]byte{5})},
		{ID: "T", Name: "terrain", Blob: mapdata.EncodeDataURL([]byte{9, 8, 7})},
		{ID: "W", Name: "water", Blob: mapdata.EncodeDataURL([]byte{6})},
	}
	var buf bytes.Buffer
	if err := Export(&buf, nil, tilesets); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := ImportTilesets(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != len(tilesets) {
		t.Fatalf("expected %d tilesets, got %d", len(tilesets), len(got))
	}
	for i, want := range tilesets {
		if got[i].ID != want.ID || got[i].Name != want.Name || got[i].Blob != want.Blob {
			t.Fatalf("tileset %d: got %+v, want %+v", i, got[i], want)
		}
	}
}

func TestImportTilesetEntryNames(t *testing.T) {
	cases := []struct {
		entry   string
		ok      bool
		id      string
		name    string
		freshID bool
	}{
		{"tilesets/abc/grass.png", true, "abc", "grass", false},
		{"tilesets/legacy.png", true, "", "legacy", true},
		{"tilesets/abc/grass.PNG", true, "abc", "grass", false},
		{"tilesets/a/b/c.png", false, "", "", false},
		{"tilesets/abc/readme.txt", false, "", "", false},
		{"level.json", false, "", "", false},
	}
	for _, c := range cases {
		t.Run(c.entry, func(t *testing.T) {
			id, name, ok := tilesetEntry(c.entry)
			if ok != c.ok {
				t.Fatalf("ok=%v, want %v", ok, c.ok)
			}
			if !ok {
				return
			}
			if name != c.name {
				t.Fatalf("name=%q, want %q", name, c.name)
			}
			if c.freshID {
				if id == "" {
					t.Fatalf("expected a generated id")
				}
			} else if id != c.id {
				t.Fatalf("id=%q, want %q", id, c.id)
			}
		})
	}
}

func TestImportFiles(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	good, _ := json.Marshal(sampleFile())
	for name, data := range map[string][]byte{
		"level one.json":         good,
		"broken.json":            []byte("{"),
		"invalid.json":           []byte(`{"id":"x","name":"","width":1,"height":1,"tileWidth":1,"tileHeight":1,"layers":[]}`),
		"tilesets/T/terrain.png": {1},
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		w.Write(data)
	}
	zw.Close()

	files, err := ImportFiles(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(files) != 1 || files[0].ID != "F" {
		t.Fatalf("unexpected files %+v", files)
	}
	if files[0].Layers[0].Tiles[1][2].TilesetID != "T" {
		t.Fatalf("cells not restored")
	}
}

const sampleTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="2">
 <tileset firstgid="1" name="terrain" tilewidth="16" tileheight="16" tilecount="8" columns="4">
  <image source="terrain.png" width="64" height="32"/>
 </tileset>
 <layer id="1" name="ground" width="3" height="2">
  <data encoding="csv">
1,0,6,
0,8,0
</data>
 </layer>
 <objectgroup id="2" name="spawns">
  <object id="1" name="start" x="10" y="20" width="30" height="40"/>
 </objectgroup>
</map>
`

func TestImportTMX(t *testing.T) {
	fsys := fstest.MapFS{"maps/cave.tmx": &fstest.MapFile{Data: []byte(sampleTMX)}}
	f, err := ImportTMX(fsys, "maps/cave.tmx", []mapdata.Tileset{{ID: "T", Name: "terrain"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if f.Name != "cave" || f.Width != 3 || f.Height != 2 || f.TileWidth != 16 {
		t.Fatalf("unexpected file header %+v", f)
	}
	if len(f.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(f.Layers))
	}

	var tiles, objects *mapdata.Layer
	for i := range f.Layers {
		switch f.Layers[i].Kind {
		case mapdata.KindTile:
			tiles = &f.Layers[i]
		case mapdata.KindObject:
			objects = &f.Layers[i]
		}
	}
	if tiles == nil || objects == nil {
		t.Fatalf("missing layer kinds")
	}
	if objects.SortOrder <= tiles.SortOrder {
		t.Fatalf("object group should stack above tile layers")
	}

	cases := []struct {
		x, y   int
		blank  bool
		tx, ty int
	}{
		{0, 0, false, 0, 0},
		{1, 0, true, 0, 0},
		{2, 0, false, 1, 1},
		{1, 1, false, 3, 1},
	}
	for _, c := range cases {
		cell := tiles.Tiles[c.y][c.x]
		if cell.IsBlank() != c.blank {
			t.Fatalf("cell (%d,%d) blank=%v", c.x, c.y, cell.IsBlank())
		}
		if c.blank {
			continue
		}
		if cell.TilesetX != c.tx || cell.TilesetY != c.ty || cell.TilesetID != "T" || cell.TilesetName != "terrain" {
			t.Fatalf("cell (%d,%d) = %+v", c.x, c.y, cell)
		}
	}

	o := objects.Objects[0]
	if o.Name != "start" || o.X != 10 || o.Y != 20 || o.X2 != 40 || o.Y2 != 60 {
		t.Fatalf("unexpected object %+v", o)
	}
}
