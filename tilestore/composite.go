package tilestore

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/mapdata"
)

// TilesetImages resolves a tileset id to its decoded image, or nil when the
// tileset is not loaded.
type TilesetImages func(tilesetID string) image.Image

// Compositor flattens a file's visible tile layers into one image, used as
// the preview of a placed structure. Results are memoized per file id in the
// fileImages table and in memory until Invalidate is called for that file.
type Compositor struct {
	store    *Store
	tilesets TilesetImages
	decoded  map[string]image.Image
}

// NewCompositor returns a compositor caching into store. Cells are drawn from
// tilesets when it resolves them; tilesets may be nil.
func NewCompositor(store *Store, tilesets TilesetImages) *Compositor {
	return &Compositor{store: store, tilesets: tilesets, decoded: make(map[string]image.Image)}
}

// FileImage returns the composite of f, building and caching it on a miss.
func (c *Compositor) FileImage(f mapdata.File) image.Image {
	if img, ok := c.decoded[f.ID]; ok {
		return img
	}
	if fi, ok := c.store.FileImage(f.ID); ok {
		img, err := mapdata.DecodeImage(fi.Blob)
		if err == nil {
			c.decoded[f.ID] = img
			return img
		}
		log.WithField("file", f.ID).WithError(err).Warn("tilestore: cached composite unreadable")
	}

	img := Composite(f, c.tilesets)
	c.decoded[f.ID] = img
	blob, err := mapdata.EncodeImage(img)
	if err != nil {
		log.WithField("file", f.ID).WithError(err).Warn("tilestore: encode composite")
		return img
	}
	if err := c.store.PutFileImage(FileImage{ID: f.ID, Blob: blob}); err != nil {
		log.WithField("file", f.ID).WithError(err).Warn("tilestore: cache composite")
	}
	return img
}

// Invalidate drops the cached composite of a file.
func (c *Compositor) Invalidate(fileID string) {
	delete(c.decoded, fileID)
	if err := c.store.DeleteFileImage(fileID); err != nil {
		log.WithField("file", fileID).WithError(err).Warn("tilestore: invalidate composite")
	}
}

// Composite draws every non-blank cell of every visible tile layer, in
// ascending sort order, at (x·tileWidth, y·tileHeight). A cell takes its
// pixels from the live tileset when tilesets resolves it, and from its cached
// snippet otherwise. Cells with neither are skipped; snippets of the wrong
// size are rescaled to the tile.
func Composite(f mapdata.File, tilesets TilesetImages) *image.NRGBA {
	w, h := f.PixelSize()
	dst := imaging.New(max(w, 1), max(h, 1), color.NRGBA{})
	for _, l := range f.SortedLayers() {
		if !l.IsVisible || l.Kind != mapdata.KindTile {
			continue
		}
		for y, row := range l.Tiles {
			for x, cell := range row {
				if cell.IsBlank() {
					continue
				}
				snippet := tilesetCell(tilesets, cell, f.TileWidth, f.TileHeight)
				if snippet == nil {
					if cell.TileData == "" {
						continue
					}
					var err error
					if snippet, err = mapdata.DecodeImage(cell.TileData); err != nil {
						continue
					}
				}
				if b := snippet.Bounds(); b.Dx() != f.TileWidth || b.Dy() != f.TileHeight {
					snippet = imaging.Resize(snippet, f.TileWidth, f.TileHeight, imaging.Lanczos)
				}
				dst = imaging.Overlay(dst, snippet, image.Pt(x*f.TileWidth, y*f.TileHeight), 1.0)
			}
		}
	}
	return dst
}

func tilesetCell(tilesets TilesetImages, t mapdata.Tile, tileW, tileH int) image.Image {
	if tilesets == nil {
		return nil
	}
	src := tilesets(t.TilesetID)
	if src == nil {
		return nil
	}
	b := src.Bounds()
	r := image.Rect(t.TilesetX*tileW, t.TilesetY*tileH, (t.TilesetX+1)*tileW, (t.TilesetY+1)*tileH).Add(b.Min)
	if !r.In(b) {
		return nil
	}
	return imaging.Crop(src, r)
}
