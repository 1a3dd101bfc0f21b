package editor

import (
	"fmt"

	"github.com/milk9111/tilemapper/mapdata"
)

// ObjectRect carries the two raw drag corners of a new object.
type ObjectRect struct {
	X, Y, X2, Y2  int
	Width, Height int
}

// ObjectPatch is a merge-patch for object settings.
type ObjectPatch struct {
	Name      *string
	IsVisible *bool
	X, Y      *int
	X2, Y2    *int
	Width     *int
	Height    *int
	Color     *string
}

// AddObject appends an object to the selected layer, which must be an object
// layer. The corners are stored as given.
func AddObject(s State, id string, r ObjectRect) State {
	if id == "" {
		return s
	}
	layerID := s.SelectedLayerID
	out := updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		if idx < 0 || f.Layers[idx].Kind != mapdata.KindObject {
			return false
		}
		l := f.Layers[idx]
		if l.Object(id) != nil {
			return false
		}
		objs := l.Objects
		obj := mapdata.Object{
			ID:        id,
			Name:      fmt.Sprintf("Object %d", len(objs)+1),
			SortOrder: mapdata.NextSortOrder(len(objs), func(i int) int { return objs[i].SortOrder }),
			IsVisible: true,
			X:         r.X,
			Y:         r.Y,
			X2:        r.X2,
			Y2:        r.Y2,
			Width:     r.Width,
			Height:    r.Height,
		}
		l.Objects = append(append([]mapdata.Object(nil), objs...), obj)
		f.Layers[idx] = l
		return true
	})
	if out.rev != s.rev {
		out.SelectedObjectID = id
	}
	return out
}

// RemoveObject deletes an object from a layer of the selected file.
func RemoveObject(s State, layerID, objectID string) State {
	out := updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		if idx < 0 {
			return false
		}
		l := f.Layers[idx]
		kept := make([]mapdata.Object, 0, len(l.Objects))
		for _, o := range l.Objects {
			if o.ID != objectID {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(l.Objects) {
			return false
		}
		l.Objects = kept
		f.Layers[idx] = l
		return true
	})
	if out.rev != s.rev && out.SelectedObjectID == objectID {
		out.SelectedObjectID = ""
	}
	return out
}

// UpdateObjectSettings merges patch into an object.
func UpdateObjectSettings(s State, layerID, objectID string, patch ObjectPatch) State {
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		l := editLayer(f, layerID)
		o := l.Object(objectID)
		if o == nil {
			return false
		}
		if patch.Name != nil {
			if *patch.Name == "" {
				return false
			}
			o.Name = *patch.Name
		}
		setInt := func(dst *int, v *int) {
			if v != nil {
				*dst = *v
			}
		}
		if patch.IsVisible != nil {
			o.IsVisible = *patch.IsVisible
		}
		setInt(&o.X, patch.X)
		setInt(&o.Y, patch.Y)
		setInt(&o.X2, patch.X2)
		setInt(&o.Y2, patch.Y2)
		setInt(&o.Width, patch.Width)
		setInt(&o.Height, patch.Height)
		if patch.Color != nil {
			o.Color = *patch.Color
		}
		return true
	})
}

// SelectObject selects an object of the selected layer. An empty id clears
// the selection.
func SelectObject(s State, id string) State {
	if s.SelectedObjectID == id {
		return s
	}
	if id != "" {
		l, ok := s.SelectedLayer()
		if !ok || l.Object(id) == nil {
			return s
		}
	}
	out := s.clone()
	out.SelectedObjectID = id
	return out
}

// SwapObjects exchanges the sort orders of two objects of a layer.
func SwapObjects(s State, layerID, a, b string) State {
	if a == b {
		return s
	}
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		l := editLayer(f, layerID)
		oa, ob := l.Object(a), l.Object(b)
		if oa == nil || ob == nil {
			return false
		}
		oa.SortOrder, ob.SortOrder = ob.SortOrder, oa.SortOrder
		return true
	})
}

// AddStructure places a reference to a structure file on the selected layer,
// which must be a structure layer. A file cannot be placed inside itself.
func AddStructure(s State, id, fileID string, x, y int) State {
	if id == "" || fileID == s.SelectedFileID {
		return s
	}
	ref, ok := s.File(fileID)
	if !ok || !ref.IsStructure {
		return s
	}
	layerID := s.SelectedLayerID
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		idx := layerIndex(f, layerID)
		if idx < 0 || f.Layers[idx].Kind != mapdata.KindStructure {
			return false
		}
		l := f.Layers[idx]
		l.Structures = append(append([]mapdata.Structure(nil), l.Structures...),
			mapdata.Structure{ID: id, FileID: fileID, X: x, Y: y})
		f.Layers[idx] = l
		return true
	})
}

// RemoveStructure deletes a placed structure from whichever structure layer
// of the selected file holds it.
func RemoveStructure(s State, id string) State {
	return updateSelectedFile(s, func(f *mapdata.File) bool {
		for i := range f.Layers {
			l := f.Layers[i]
			if l.Kind != mapdata.KindStructure {
				continue
			}
			for j := range l.Structures {
				if l.Structures[j].ID != id {
					continue
				}
				kept := append([]mapdata.Structure(nil), l.Structures[:j]...)
				l.Structures = append(kept, l.Structures[j+1:]...)
				f.Layers[i] = l
				return true
			}
		}
		return false
	})
}
