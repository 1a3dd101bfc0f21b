package editor

import (
	"github.com/milk9111/tilemapper/mapdata"
)

// AddTileset registers a tileset, replacing one with the same id.
func AddTileset(s State, ts mapdata.Tileset) State {
	if ts.ID == "" {
		return s
	}
	out := s.clone()
	if i := s.tilesetIndex(ts.ID); i >= 0 {
		out.Tilesets[i] = ts
		return out
	}
	out.Tilesets = append(out.Tilesets, ts)
	return out
}

// ReplaceTilesets swaps the whole tileset table, as an import does. Cells
// keep their references; the canvas resolves them by id.
func ReplaceTilesets(s State, tilesets []mapdata.Tileset) State {
	out := s.clone()
	out.Tilesets = append([]mapdata.Tileset{}, tilesets...)
	return out
}

// RenameTileset renames a tileset and every cell that references it.
func RenameTileset(s State, id, name string) State {
	idx := s.tilesetIndex(id)
	if idx < 0 || name == "" || s.Tilesets[idx].Name == name {
		return s
	}
	out := rewriteCells(s, id, func(t *mapdata.Tile) { t.TilesetName = name })
	if out.rev == s.rev {
		out = s.clone()
	}
	out.Tilesets[idx].Name = name
	return out
}

// DeleteTileset drops a tileset. Referencing cells are kept but lose their
// reference: name becomes unknown, id empty, coordinates -1 and cached
// pixels empty.
func DeleteTileset(s State, id string) State {
	idx := s.tilesetIndex(id)
	if idx < 0 {
		return s
	}
	out := rewriteCells(s, id, func(t *mapdata.Tile) {
		*t = mapdata.Tile{
			TilesetName: mapdata.UnknownTilesetName,
			TilesetX:    -1,
			TilesetY:    -1,
		}
	})
	if out.rev == s.rev {
		out = s.clone()
	}
	out.Tilesets = append(out.Tilesets[:idx:idx], out.Tilesets[idx+1:]...)
	return out
}

// rewriteCells applies fn to every tile cell, in every file, that references
// tileset id. Only files that contain such a cell are copied.
func rewriteCells(s State, id string, fn func(t *mapdata.Tile)) State {
	out := s
	for _, f := range s.Files {
		if !referencesTileset(f, id) {
			continue
		}
		out = updateFile(out, f.ID, func(f *mapdata.File) bool {
			for li := range f.Layers {
				if f.Layers[li].Kind != mapdata.KindTile {
					continue
				}
				l := f.Layers[li].Clone()
				for y := range l.Tiles {
					for x := range l.Tiles[y] {
						if l.Tiles[y][x].TilesetID == id {
							fn(&l.Tiles[y][x])
						}
					}
				}
				f.Layers[li] = l
			}
			return true
		})
	}
	return out
}

func referencesTileset(f mapdata.File, id string) bool {
	for _, l := range f.Layers {
		for _, row := range l.Tiles {
			for _, c := range row {
				if c.TilesetID == id {
					return true
				}
			}
		}
	}
	return false
}

// TilesetUsage counts the cells referencing each tileset id across all files.
func TilesetUsage(s State) map[string]int {
	usage := make(map[string]int)
	for _, f := range s.Files {
		for _, l := range f.Layers {
			for _, row := range l.Tiles {
				for _, c := range row {
					if c.TilesetID != "" {
						usage[c.TilesetID]++
					}
				}
			}
		}
	}
	return usage
}
