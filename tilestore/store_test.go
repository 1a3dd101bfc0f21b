package tilestore

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/tilemapper/mapdata"
)

type memBackend struct {
	items   map[string][]byte
	failKey string
	saves   int
}

func newMem() *memBackend { return &memBackend{items: make(map[string][]byte)} }

func (m *memBackend) LoadItem(key string) ([]byte, error) {
	if key == m.failKey {
		return nil, errors.New("disk on fire")
	}
	return m.items[key], nil
}

func (m *memBackend) SaveItem(key string, data []byte) error {
	m.saves++
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBackend) DeleteItem(key string) error {
	delete(m.items, key)
	return nil
}

func TestTilesetCRUD(t *testing.T) {
	s := New(newMem())
	for _, ts := range []mapdata.Tileset{
		{ID: "b", Name: "water", Blob: "data:image/png;base64,AA=="},
		{ID: "a", Name: "grass", Blob: "data:image/png;base64,AQ=="},
	} {
		if err := s.PutTileset(ts); err != nil {
			t.Fatalf("put %s: %v", ts.ID, err)
		}
	}
	if err := s.PutTileset(mapdata.Tileset{ID: "b", Name: "ocean"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	all := s.AllTilesets()
	if len(all) != 2 || all[0].Name != "grass" || all[1].Name != "ocean" {
		t.Fatalf("unexpected tilesets %+v", all)
	}
	if _, ok := s.Tileset("missing"); ok {
		t.Fatalf("missing tileset reported present")
	}

	if err := s.DeleteTileset("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Tileset("a"); ok {
		t.Fatalf("deleted tileset still present")
	}
	if got := s.AllTilesets(); len(got) != 1 {
		t.Fatalf("expected 1 tileset, got %d", len(got))
	}

	if err := s.ReplaceTilesets([]mapdata.Tileset{{ID: "c", Name: "lava"}}); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if got := s.AllTilesets(); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("unexpected tilesets after replace %+v", got)
	}
	if err := s.ClearTilesets(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := s.AllTilesets(); len(got) != 0 {
		t.Fatalf("expected empty table, got %+v", got)
	}
}

func TestReadFailuresResolveToAbsent(t *testing.T) {
	cases := []struct {
		name    string
		failKey string
		raw     map[string]string
	}{
		{"backend_error", rowKey(tableTilesets, "x"), nil},
		{"corrupt_row", "", map[string]string{rowKey(tableTilesets, "x"): "{not json"}},
		{"corrupt_index", "", map[string]string{indexKey(tableTilesets): "nope"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mem := newMem()
			s := New(mem)
			if err := s.PutTileset(mapdata.Tileset{ID: "x", Name: "x"}); err != nil {
				t.Fatalf("put: %v", err)
			}
			mem.failKey = c.failKey
			for k, v := range c.raw {
				mem.items[k] = []byte(v)
			}
			if c.name == "corrupt_index" {
				if got := s.AllTilesets(); len(got) != 0 {
					t.Fatalf("expected no tilesets, got %+v", got)
				}
				return
			}
			if _, ok := s.Tileset("x"); ok {
				t.Fatalf("expected absent")
			}
		})
	}
}

func solidTile(c color.NRGBA, size int) string {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	data, err := mapdata.EncodeImage(img)
	if err != nil {
		panic(err)
	}
	return data
}

func compositeFile() mapdata.File {
	red := solidTile(color.NRGBA{R: 255, A: 255}, 4)
	blue := solidTile(color.NRGBA{B: 255, A: 255}, 4)
	bottom := mapdata.NewLayer("bottom", "bottom", mapdata.KindTile, 0, 2, 2)
	top := mapdata.NewLayer("top", "top", mapdata.KindTile, 1, 2, 2)
	hidden := mapdata.NewLayer("hidden", "hidden", mapdata.KindTile, 2, 2, 2)
	hidden.IsVisible = false
	bottom.Tiles[0][0] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TileData: red}
	bottom.Tiles[1][1] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TileData: red}
	top.Tiles[0][0] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TileData: blue}
	hidden.Tiles[1][1] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TileData: blue}
	return mapdata.File{
		ID: "F", Name: "F", Width: 2, Height: 2, TileWidth: 4, TileHeight: 4,
		// listed top-first to check that sort order, not slice order, wins
		Layers: []mapdata.Layer{hidden, top, bottom},
	}
}

func TestComposite(t *testing.T) {
	img := Composite(compositeFile(), nil)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("unexpected size %v", b)
	}
	cases := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"top_wins", 1, 1, color.NRGBA{B: 255, A: 255}},
		{"bottom_only", 5, 5, color.NRGBA{R: 255, A: 255}},
		{"blank", 5, 1, color.NRGBA{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := img.NRGBAAt(c.x, c.y); got != c.want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestCompositorMemoizesUntilInvalidated(t *testing.T) {
	mem := newMem()
	s := New(mem)
	c := NewCompositor(s, nil)
	f := compositeFile()

	c.FileImage(f)
	if _, ok := s.FileImage("F"); !ok {
		t.Fatalf("composite not persisted")
	}

	// changing the file does not change the cached composite
	f.Layers = nil
	img := c.FileImage(f)
	if r, _, _, _ := img.At(5, 5).RGBA(); r == 0 {
		t.Fatalf("expected the stale composite")
	}

	// a fresh compositor reads the persisted composite back
	img = NewCompositor(s, nil).FileImage(f)
	if r, _, _, _ := img.At(5, 5).RGBA(); r == 0 {
		t.Fatalf("expected the persisted composite")
	}

	c.Invalidate("F")
	if _, ok := s.FileImage("F"); ok {
		t.Fatalf("persisted composite survived invalidation")
	}
	img = c.FileImage(f)
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Fatalf("expected a rebuilt, empty composite")
	}
}

func TestDeletedRowsLeaveNoItems(t *testing.T) {
	mem := newMem()
	s := New(mem)
	for _, id := range []string{"a", "b"} {
		if err := s.PutTileset(mapdata.Tileset{ID: id, Name: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
		if err := s.PutFileImage(FileImage{ID: id, Blob: "x"}); err != nil {
			t.Fatalf("put image %s: %v", id, err)
		}
	}

	if err := s.DeleteTileset("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.ClearFileImages(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	for _, key := range []string{rowKey(tableTilesets, "a"), rowKey(tableFileImages, "a"), rowKey(tableFileImages, "b")} {
		if _, ok := mem.items[key]; ok {
			t.Fatalf("item %s still stored", key)
		}
	}
	if _, ok := mem.items[rowKey(tableTilesets, "b")]; !ok {
		t.Fatalf("untouched tileset was removed")
	}
}

func TestCompositeRebuildsStrippedCells(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			sheet.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}
	l := mapdata.NewLayer("l", "l", mapdata.KindTile, 0, 2, 1)
	l.Tiles[0][1] = mapdata.Tile{TilesetID: "T", TilesetName: "t", TilesetX: 1, TilesetY: 0}
	l.Tiles[0][0] = mapdata.Tile{TilesetID: "gone", TilesetName: "gone", TileData: solidTile(color.NRGBA{R: 255, A: 255}, 4)}
	f := mapdata.File{ID: "F", Name: "F", Width: 2, Height: 1, TileWidth: 4, TileHeight: 4, Layers: []mapdata.Layer{l}}

	tilesets := func(id string) image.Image {
		if id == "T" {
			return sheet
		}
		return nil
	}
	img := Composite(f, tilesets)
	if got := img.NRGBAAt(5, 1); got != (color.NRGBA{G: 255, A: 255}) {
		t.Fatalf("stripped cell not drawn from its tileset: %+v", got)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("snippet fallback missing: %+v", got)
	}

	if got := Composite(f, nil).NRGBAAt(5, 1); got != (color.NRGBA{}) {
		t.Fatalf("expected a blank cell without tilesets, got %+v", got)
	}
}

func TestMemoryBackendRoundTrip(t *testing.T) {
	s := New(NewMemory())
	ts := mapdata.Tileset{ID: "a", Name: "grass", Blob: "data:image/png;base64,AA=="}
	if err := s.PutTileset(ts); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, ok := s.Tileset("a"); !ok || got != ts {
		t.Fatalf("Tileset(a) = %+v, %v", got, ok)
	}
	if err := s.DeleteTileset("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Tileset("a"); ok {
		t.Fatalf("deleted tileset still readable")
	}
	if n := len(s.AllTilesets()); n != 0 {
		t.Fatalf("expected no tilesets, got %d", n)
	}
}
