package archive

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/lafriks/go-tiled"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/mapdata"
)

// ImportTMX converts a Tiled map into a File. Tile layers become tile layers
// whose cells point at the cell's column and row in its tileset; object
// groups become object layers. Tiled tilesets are matched to known tilesets
// by name; unmatched cells keep the name with an empty id.
func ImportTMX(fsys fs.FS, tmxPath string, known []mapdata.Tileset) (mapdata.File, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return mapdata.File{}, fmt.Errorf("archive: load TMX %s: %w", tmxPath, err)
	}

	ids := make(map[string]string, len(known))
	for _, ts := range known {
		ids[ts.Name] = ts.ID
	}

	f := mapdata.File{
		ID:         uuid.NewString(),
		Name:       strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		Width:      m.Width,
		Height:     m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}
	if err := f.Validate(); err != nil {
		return mapdata.File{}, fmt.Errorf("archive: TMX %s: %w", tmxPath, err)
	}

	order := 0
	for _, tl := range m.Layers {
		l := mapdata.NewLayer(uuid.NewString(), tl.Name, mapdata.KindTile, order, m.Width, m.Height)
		l.IsVisible = tl.Visible
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				i := y*m.Width + x
				if i >= len(tl.Tiles) {
					break
				}
				t := tl.Tiles[i]
				if t == nil || t.IsNil() || t.Tileset == nil || t.Tileset.Columns < 1 {
					continue
				}
				cols := t.Tileset.Columns
				l.Tiles[y][x] = mapdata.Tile{
					TilesetID:   ids[t.Tileset.Name],
					TilesetName: t.Tileset.Name,
					TilesetX:    int(t.ID) % cols,
					TilesetY:    int(t.ID) / cols,
				}
			}
		}
		f.Layers = append([]mapdata.Layer{l}, f.Layers...)
		order++
	}

	for _, og := range m.ObjectGroups {
		l := mapdata.NewLayer(uuid.NewString(), og.Name, mapdata.KindObject, order, 0, 0)
		l.IsVisible = og.Visible
		for i, o := range og.Objects {
			x, y := round(o.X), round(o.Y)
			w, h := round(o.Width), round(o.Height)
			name := o.Name
			if name == "" {
				name = fmt.Sprintf("Object %d", i+1)
			}
			l.Objects = append(l.Objects, mapdata.Object{
				ID:        uuid.NewString(),
				Name:      name,
				SortOrder: i,
				IsVisible: true,
				X:         x,
				Y:         y,
				X2:        x + w,
				Y2:        y + h,
				Width:     w,
				Height:    h,
			})
		}
		f.Layers = append([]mapdata.Layer{l}, f.Layers...)
		order++
	}

	log.WithFields(log.Fields{"path": tmxPath, "layers": len(f.Layers)}).Info("archive: imported TMX")
	return f, nil
}

func round(v float64) int { return int(math.Round(v)) }
