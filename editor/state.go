// Package editor holds the editor view-model: an immutable State plus the
// reducer operations that derive a new State from an old one. Reducers never
// modify their input and never fail; an operation whose target no longer
// exists returns the input unchanged.
package editor

import (
	"github.com/milk9111/tilemapper/mapdata"
)

const (
	zoomStep     = 1.1
	maxUndoDepth = 100
)

// State is one snapshot of everything the editor shows.
type State struct {
	Files    []mapdata.File
	Tilesets []mapdata.Tileset

	SelectedFileID   string
	SelectedLayerID  string
	SelectedObjectID string

	ZoomLevel float64
	ShowGrid  bool

	rev uint64
}

// NewState returns the empty editor state.
func NewState() State {
	return State{
		Files:     []mapdata.File{},
		Tilesets:  []mapdata.Tileset{},
		ZoomLevel: 1,
		ShowGrid:  true,
	}
}

// Revision increases every time a reducer produces a changed state.
func (s State) Revision() uint64 { return s.rev }

// clone copies the top-level slices so the result can be modified without
// touching s. Files and tilesets themselves are still shared.
func (s State) clone() State {
	out := s
	out.Files = append([]mapdata.File(nil), s.Files...)
	out.Tilesets = append([]mapdata.Tileset(nil), s.Tilesets...)
	out.rev = s.rev + 1
	return out
}

func (s State) fileIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Files {
		if s.Files[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) tilesetIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Tilesets {
		if s.Tilesets[i].ID == id {
			return i
		}
	}
	return -1
}

// File returns the file with the given id.
func (s State) File(id string) (mapdata.File, bool) {
	if i := s.fileIndex(id); i >= 0 {
		return s.Files[i], true
	}
	return mapdata.File{}, false
}

// SelectedFile returns the currently selected file.
func (s State) SelectedFile() (mapdata.File, bool) {
	return s.File(s.SelectedFileID)
}

// SelectedLayer returns the selected layer of the selected file.
func (s State) SelectedLayer() (mapdata.Layer, bool) {
	f, ok := s.SelectedFile()
	if !ok {
		return mapdata.Layer{}, false
	}
	if l := f.Layer(s.SelectedLayerID); l != nil {
		return *l, true
	}
	return mapdata.Layer{}, false
}

// Tileset returns the tileset with the given id.
func (s State) Tileset(id string) (mapdata.Tileset, bool) {
	if i := s.tilesetIndex(id); i >= 0 {
		return s.Tilesets[i], true
	}
	return mapdata.Tileset{}, false
}

// StructureFiles lists the files that may be placed as structures.
func (s State) StructureFiles() []mapdata.File {
	var res []mapdata.File
	for _, f := range mapdata.SortedFiles(s.Files) {
		if f.IsStructure {
			res = append(res, f)
		}
	}
	return res
}

// updateFile applies fn to a private copy of the file with the given id. The
// copy shares layer payloads with the original until editLayer is used. When
// fn reports false the original state is returned.
func updateFile(s State, id string, fn func(f *mapdata.File) bool) State {
	idx := s.fileIndex(id)
	if idx < 0 {
		return s
	}
	f := s.Files[idx]
	f.Layers = append([]mapdata.Layer(nil), f.Layers...)
	if !fn(&f) {
		return s
	}
	out := s.clone()
	out.Files[idx] = f
	return out
}

func updateSelectedFile(s State, fn func(f *mapdata.File) bool) State {
	return updateFile(s, s.SelectedFileID, fn)
}

// editLayer deep-copies the layer with the given id inside f and returns it
// for modification. f must come from updateFile.
func editLayer(f *mapdata.File, id string) *mapdata.Layer {
	for i := range f.Layers {
		if f.Layers[i].ID == id {
			f.Layers[i] = f.Layers[i].Clone()
			return &f.Layers[i]
		}
	}
	return nil
}

func layerIndex(f *mapdata.File, id string) int {
	for i := range f.Layers {
		if f.Layers[i].ID == id {
			return i
		}
	}
	return -1
}
