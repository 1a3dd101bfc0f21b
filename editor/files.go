package editor

import (
	"fmt"

	"github.com/milk9111/tilemapper/mapdata"
)

// FileSettings is the payload of the file settings form.
type FileSettings struct {
	Name        string
	Width       int
	Height      int
	TileWidth   int
	TileHeight  int
	IsStructure bool
}

// AddFile appends a blank file with default dimensions and selects it.
func AddFile(s State, id string) State {
	if id == "" || s.fileIndex(id) >= 0 {
		return s
	}
	f := mapdata.File{
		ID:         id,
		Name:       fmt.Sprintf("File %d", len(s.Files)+1),
		Width:      mapdata.DefaultWidth,
		Height:     mapdata.DefaultHeight,
		TileWidth:  mapdata.DefaultTileWidth,
		TileHeight: mapdata.DefaultTileHeight,
		SortOrder:  mapdata.NextSortOrder(len(s.Files), func(i int) int { return s.Files[i].SortOrder }),
		Layers:     []mapdata.Layer{},
	}
	out := s.clone()
	out.Files = append(out.Files, f)
	out.SelectedFileID = id
	out.SelectedLayerID = ""
	out.SelectedObjectID = ""
	return out
}

// ImportFile appends an existing file, giving it the next sort order. Files
// whose id is already present are ignored.
func ImportFile(s State, f mapdata.File) State {
	if f.ID == "" || s.fileIndex(f.ID) >= 0 || f.Validate() != nil {
		return s
	}
	f = f.Clone()
	f.SortOrder = mapdata.NextSortOrder(len(s.Files), func(i int) int { return s.Files[i].SortOrder })
	out := s.clone()
	out.Files = append(out.Files, f)
	return out
}

// DeleteFile removes the file. Structures placed elsewhere that reference it
// are left alone; the canvas skips references it cannot resolve.
func DeleteFile(s State, id string) State {
	idx := s.fileIndex(id)
	if idx < 0 {
		return s
	}
	out := s.clone()
	out.Files = append(out.Files[:idx:idx], out.Files[idx+1:]...)
	if out.SelectedFileID == id {
		out.SelectedFileID = ""
		out.SelectedLayerID = ""
		out.SelectedObjectID = ""
	}
	return out
}

// SelectFile makes id the current file and clears the layer selection.
func SelectFile(s State, id string) State {
	if s.fileIndex(id) < 0 || s.SelectedFileID == id {
		return s
	}
	out := s.clone()
	out.SelectedFileID = id
	out.SelectedLayerID = ""
	out.SelectedObjectID = ""
	return out
}

// RenameFile changes the name of any file.
func RenameFile(s State, id, name string) State {
	if name == "" {
		return s
	}
	return updateFile(s, id, func(f *mapdata.File) bool {
		if f.Name == name {
			return false
		}
		f.Name = name
		return true
	})
}

// UpdateFileSettings applies the settings form to the selected file. A change
// of any dimension regenerates every tile layer as a blank grid of the new
// size; name and structure flag are applied as given.
func UpdateFileSettings(s State, fs FileSettings) State {
	if fs.Name == "" || fs.Width < 1 || fs.Height < 1 || fs.TileWidth < 1 || fs.TileHeight < 1 {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		resized := f.Width != fs.Width || f.Height != fs.Height ||
			f.TileWidth != fs.TileWidth || f.TileHeight != fs.TileHeight
		f.Name = fs.Name
		f.IsStructure = fs.IsStructure
		f.Width = fs.Width
		f.Height = fs.Height
		f.TileWidth = fs.TileWidth
		f.TileHeight = fs.TileHeight
		if resized {
			for i := range f.Layers {
				if f.Layers[i].Kind != mapdata.KindTile {
					continue
				}
				l := f.Layers[i]
				l.Tiles = mapdata.NewGrid(fs.Width, fs.Height)
				f.Layers[i] = l
			}
		}
		return true
	})
}

// SwapFiles exchanges the sort orders of two files.
func SwapFiles(s State, a, b string) State {
	if a == b {
		return s
	}
	ia, ib := s.fileIndex(a), s.fileIndex(b)
	if ia < 0 || ib < 0 {
		return s
	}
	out := s.clone()
	out.Files[ia].SortOrder, out.Files[ib].SortOrder = s.Files[ib].SortOrder, s.Files[ia].SortOrder
	return out
}
