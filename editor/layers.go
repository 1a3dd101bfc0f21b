package editor

import (
	"fmt"

	"github.com/milk9111/tilemapper/mapdata"
)

// LayerPatch is a merge-patch for layer settings. Nil fields are left alone.
// Kind and payload cannot be patched.
type LayerPatch struct {
	Name      *string
	IsVisible *bool
	SortOrder *int
}

// TilePaint writes one cell of a tile layer.
type TilePaint struct {
	LayerID     string
	TileX       int
	TileY       int
	TilesetX    int
	TilesetY    int
	TilesetName string
	TilesetID   string
	TileData    string
}

func (p TilePaint) cell() mapdata.Tile {
	return mapdata.Tile{
		TilesetID:   p.TilesetID,
		TilesetName: p.TilesetName,
		TilesetX:    p.TilesetX,
		TilesetY:    p.TilesetY,
		TileData:    p.TileData,
	}
}

// AddLayer creates an empty layer of the given kind at the next sort order,
// prepends it to the selected file's layer list and selects it.
func AddLayer(s State, id string, kind mapdata.LayerKind) State {
	if id == "" || !kind.Valid() {
		return s
	}
	out := updateSelectedFile(s, func(f *mapdata.File) bool {
		if layerIndex(f, id) >= 0 {
			return false
		}
		order := mapdata.NextSortOrder(len(f.Layers), func(i int) int { return f.Layers[i].SortOrder })
		name := fmt.Sprintf("%s Layer %d", kind.Title(), len(f.Layers)+1)
		l := mapdata.NewLayer(id, name, kind, order, f.Width, f.Height)
		f.Layers = append([]mapdata.Layer{l}, f.Layers...)
		return true
	})
	if out.rev == s.rev {
		return s
	}
	out.SelectedLayerID = id
	out.SelectedObjectID = ""
	return out
}

// RemoveLayer drops a layer from the selected file.
func RemoveLayer(s State, id string) State {
	out := updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, id)
		if idx < 0 {
			return false
		}
		f.Layers = append(f.Layers[:idx:idx], f.Layers[idx+1:]...)
		return true
	})
	if out.rev != s.rev && out.SelectedLayerID == id {
		out.SelectedLayerID = ""
		out.SelectedObjectID = ""
	}
	return out
}

// SelectLayer selects a layer of the selected file.
func SelectLayer(s State, id string) State {
	f, ok := s.SelectedFile()
	if !ok || f.Layer(id) == nil || s.SelectedLayerID == id {
		return s
	}
	out := s.clone()
	out.SelectedLayerID = id
	out.SelectedObjectID = ""
	return out
}

// UpdateLayerSettings merges patch into the layer.
func UpdateLayerSettings(s State, id string, patch LayerPatch) State {
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, id)
		if idx < 0 {
			return false
		}
		l := f.Layers[idx]
		if patch.Name != nil {
			if *patch.Name == "" {
				return false
			}
			l.Name = *patch.Name
		}
		if patch.IsVisible != nil {
			l.IsVisible = *patch.IsVisible
		}
		if patch.SortOrder != nil {
			for i := range f.Layers {
				if i != idx && f.Layers[i].SortOrder == *patch.SortOrder {
					return false
				}
			}
			l.SortOrder = *patch.SortOrder
		}
		f.Layers[idx] = l
		return true
	})
}

// ToggleLayerVisibility flips the visibility of a layer.
func ToggleLayerVisibility(s State, id string) State {
	l, ok := findLayer(s, id)
	if !ok {
		return s
	}
	visible := !l.IsVisible
	return UpdateLayerSettings(s, id, LayerPatch{IsVisible: &visible})
}

// DuplicateLayer copies a layer under a new id at the next sort order.
func DuplicateLayer(s State, id, newID string) State {
	if newID == "" {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, id)
		if idx < 0 || layerIndex(f, newID) >= 0 {
			return false
		}
		dup := f.Layers[idx].Clone()
		dup.ID = newID
		dup.Name = f.Layers[idx].Name + " copy"
		dup.SortOrder = mapdata.NextSortOrder(len(f.Layers), func(i int) int { return f.Layers[i].SortOrder })
		f.Layers = append([]mapdata.Layer{dup}, f.Layers...)
		return true
	})
}

// SwapLayers exchanges the sort orders of two layers of the selected file.
func SwapLayers(s State, a, b string) State {
	if a == b {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		ia, ib := layerIndex(f, a), layerIndex(f, b)
		if ia < 0 || ib < 0 {
			return false
		}
		la, lb := f.Layers[ia], f.Layers[ib]
		la.SortOrder, lb.SortOrder = lb.SortOrder, la.SortOrder
		f.Layers[ia], f.Layers[ib] = la, lb
		return true
	})
}

// RegenerateMap replaces a tile layer's grid with a blank width×height grid.
func RegenerateMap(s State, layerID string, width, height int) State {
	if width < 1 || height < 1 {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		if idx < 0 || f.Layers[idx].Kind != mapdata.KindTile {
			return false
		}
		l := f.Layers[idx]
		l.Tiles = mapdata.NewGrid(width, height)
		f.Layers[idx] = l
		return true
	})
}

// UpdateTilemap writes one cell. The target must be a tile layer of the
// selected file and the coordinates must address an existing cell;
// otherwise nothing changes.
func UpdateTilemap(s State, p TilePaint) State {
	return writeCell(s, p.LayerID, p.TileX, p.TileY, p.cell())
}

// EraseTile writes the blank cell.
func EraseTile(s State, layerID string, x, y int) State {
	return writeCell(s, layerID, x, y, mapdata.BlankTile())
}

func writeCell(s State, layerID string, x, y int, cell mapdata.Tile) State {
	f, ok := s.SelectedFile()
	if !ok {
		return s
	}
	cur := f.Layer(layerID)
	if !cur.InGrid(x, y) || cur.Tiles[y][x] == cell {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		l := f.Layers[idx]
		// copy only the touched row
		rows := append([][]mapdata.Tile(nil), l.Tiles...)
		row := append([]mapdata.Tile(nil), rows[y]...)
		row[x] = cell
		rows[y] = row
		l.Tiles = rows
		f.Layers[idx] = l
		return true
	})
}

// FillLayer flood-fills the 4-connected region of cells equal to the cell at
// (p.TileX, p.TileY) with the painted cell.
func FillLayer(s State, p TilePaint) State {
	f, ok := s.SelectedFile()
	if !ok {
		return s
	}
	cur := f.Layer(p.LayerID)
	if !cur.InGrid(p.TileX, p.TileY) {
		return s
	}
	target := cur.Tiles[p.TileY][p.TileX]
	replacement := p.cell()
	if sameReference(target, replacement) {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		l := editLayer(f, p.LayerID)
		stack := [][2]int{{p.TileX, p.TileY}}
		for len(stack) > 0 {
			pt := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := pt[0], pt[1]
			if !l.InGrid(x, y) || !sameReference(l.Tiles[y][x], target) {
				continue
			}
			l.Tiles[y][x] = replacement
			stack = append(stack, [2]int{x + 1, y}, [2]int{x - 1, y}, [2]int{x, y + 1}, [2]int{x, y - 1})
		}
		return true
	})
}

func sameReference(a, b mapdata.Tile) bool {
	return a.TilesetID == b.TilesetID && a.TilesetName == b.TilesetName &&
		a.TilesetX == b.TilesetX && a.TilesetY == b.TilesetY
}

// ApplyGenerated replaces a tile layer's grid with grid, which must match the
// file's dimensions.
func ApplyGenerated(s State, layerID string, grid [][]mapdata.Tile) State {
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		if idx < 0 || f.Layers[idx].Kind != mapdata.KindTile {
			return false
		}
		if w, h := mapdata.GridSize(grid); w != f.Width || h != f.Height {
			return false
		}
		l := f.Layers[idx]
		l.Tiles = grid
		f.Layers[idx] = l.Clone()
		return true
	})
}

func findLayer(s State, id string) (mapdata.Layer, bool) {
	f, ok := s.SelectedFile()
	if !ok {
		return mapdata.Layer{}, false
	}
	if l := f.Layer(id); l != nil {
		return *l, true
	}
	return mapdata.Layer{}, false
}
