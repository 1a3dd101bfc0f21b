package mapdata

import (
	"encoding/json"
	"fmt"
)

// LayerKind discriminates the payload carried by a Layer.
type LayerKind string

const (
	KindTile      LayerKind = "tile"
	KindObject    LayerKind = "object"
	KindStructure LayerKind = "structure"
)

func (k LayerKind) Valid() bool {
	switch k {
	case KindTile, KindObject, KindStructure:
		return true
	default:
		return false
	}
}

// Title is the capitalized kind used in default layer names.
func (k LayerKind) Title() string {
	switch k {
	case KindTile:
		return "Tile"
	case KindObject:
		return "Object"
	case KindStructure:
		return "Structure"
	default:
		return "Unknown"
	}
}

// Layer is one entry of a file's layer stack. Exactly one of Tiles, Objects
// and Structures is meaningful, selected by Kind.
type Layer struct {
	ID        string
	Name      string
	IsVisible bool
	SortOrder int
	Kind      LayerKind

	Tiles      [][]Tile
	Objects    []Object
	Structures []Structure
}

// NewLayer returns an empty layer of the given kind. Tile layers get a blank
// width×height grid.
func NewLayer(id, name string, kind LayerKind, sortOrder, width, height int) Layer {
	l := Layer{
		ID:        id,
		Name:      name,
		IsVisible: true,
		SortOrder: sortOrder,
		Kind:      kind,
	}
	switch kind {
	case KindTile:
		l.Tiles = NewGrid(width, height)
	case KindObject:
		l.Objects = []Object{}
	case KindStructure:
		l.Structures = []Structure{}
	}
	return l
}

// Object returns a pointer to the object with the given id, or nil.
func (l *Layer) Object(id string) *Object {
	if l == nil {
		return nil
	}
	for i := range l.Objects {
		if l.Objects[i].ID == id {
			return &l.Objects[i]
		}
	}
	return nil
}

// InGrid reports whether (x,y) addresses a cell of a tile layer.
func (l *Layer) InGrid(x, y int) bool {
	if l == nil || l.Kind != KindTile {
		return false
	}
	return y >= 0 && y < len(l.Tiles) && x >= 0 && x < len(l.Tiles[y])
}

type layerJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsVisible bool            `json:"isVisible"`
	SortOrder int             `json:"sortOrder"`
	Type      LayerKind       `json:"type"`
	Data      json.RawMessage `json:"data"`
}

func (l Layer) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch l.Kind {
	case KindTile:
		tiles := l.Tiles
		if tiles == nil {
			tiles = [][]Tile{}
		}
		data, err = json.Marshal(tiles)
	case KindObject:
		objs := l.Objects
		if objs == nil {
			objs = []Object{}
		}
		data, err = json.Marshal(objs)
	case KindStructure:
		structs := l.Structures
		if structs == nil {
			structs = []Structure{}
		}
		data, err = json.Marshal(structs)
	default:
		return nil, fmt.Errorf("mapdata: marshal layer %s: unknown type %q", l.ID, l.Kind)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(layerJSON{
		ID:        l.ID,
		Name:      l.Name,
		IsVisible: l.IsVisible,
		SortOrder: l.SortOrder,
		Type:      l.Kind,
		Data:      data,
	})
}

func (l *Layer) UnmarshalJSON(b []byte) error {
	var raw layerJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Layer{
		ID:        raw.ID,
		Name:      raw.Name,
		IsVisible: raw.IsVisible,
		SortOrder: raw.SortOrder,
		Kind:      raw.Type,
	}
	empty := len(raw.Data) == 0 || string(raw.Data) == "null"
	switch raw.Type {
	case KindTile:
		out.Tiles = [][]Tile{}
		if !empty {
			if err := json.Unmarshal(raw.Data, &out.Tiles); err != nil {
				return fmt.Errorf("mapdata: tile layer %s: %w", raw.ID, err)
			}
		}
	case KindObject:
		out.Objects = []Object{}
		if !empty {
			if err := json.Unmarshal(raw.Data, &out.Objects); err != nil {
				return fmt.Errorf("mapdata: object layer %s: %w", raw.ID, err)
			}
		}
	case KindStructure:
		out.Structures = []Structure{}
		if !empty {
			if err := json.Unmarshal(raw.Data, &out.Structures); err != nil {
				return fmt.Errorf("mapdata: structure layer %s: %w", raw.ID, err)
			}
		}
	default:
		return fmt.Errorf("mapdata: layer %s: unknown type %q", raw.ID, raw.Type)
	}
	*l = out
	return nil
}
