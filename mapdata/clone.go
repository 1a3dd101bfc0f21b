package mapdata

import "sort"

func cloneGrid(src [][]Tile) [][]Tile {
	if src == nil {
		return nil
	}
	res := make([][]Tile, len(src))
	for y := range src {
		res[y] = make([]Tile, len(src[y]))
		copy(res[y], src[y])
	}
	return res
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	res := l
	res.Tiles = cloneGrid(l.Tiles)
	if l.Objects != nil {
		res.Objects = make([]Object, len(l.Objects))
		copy(res.Objects, l.Objects)
	}
	if l.Structures != nil {
		res.Structures = make([]Structure, len(l.Structures))
		copy(res.Structures, l.Structures)
	}
	return res
}

// Clone returns a deep copy of the file.
func (f File) Clone() File {
	res := f
	if f.Layers != nil {
		res.Layers = make([]Layer, len(f.Layers))
		for i, l := range f.Layers {
			res.Layers[i] = l.Clone()
		}
	}
	return res
}

// StripTileData returns a copy of the file whose tile cells keep only their
// tileset reference.
func (f File) StripTileData() File {
	res := f.Clone()
	for li := range res.Layers {
		for y := range res.Layers[li].Tiles {
			for x := range res.Layers[li].Tiles[y] {
				res.Layers[li].Tiles[y][x].TileData = ""
			}
		}
	}
	return res
}

// SortedLayers returns the layers ordered by ascending sort order. The
// file itself is untouched.
func (f *File) SortedLayers() []Layer {
	res := make([]Layer, len(f.Layers))
	copy(res, f.Layers)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].SortOrder < res[j].SortOrder
	})
	return res
}

// SortedFiles returns files ordered by ascending sort order.
func SortedFiles(files []File) []File {
	res := make([]File, len(files))
	copy(res, files)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].SortOrder < res[j].SortOrder
	})
	return res
}

// SortedObjects returns objects ordered by ascending sort order.
func SortedObjects(objs []Object) []Object {
	res := make([]Object, len(objs))
	copy(res, objs)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].SortOrder < res[j].SortOrder
	})
	return res
}

// NextSortOrder returns one past the largest sort order yielded by orders,
// or 0 when there are none.
func NextSortOrder(n int, order func(i int) int) int {
	next := 0
	for i := 0; i < n; i++ {
		if o := order(i); o >= next {
			next = o + 1
		}
	}
	return next
}
