package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/tilestore"
)

type tilesetImage struct {
	blob string
	src  image.Image
	img  *ebiten.Image
}

// imageCache converts decoded map images into GPU images once and hands out
// the cached copies on every frame.
type imageCache struct {
	compositor *tilestore.Compositor

	tilesets   map[string]tilesetImage
	snippets   map[string]*ebiten.Image
	composites map[string]*ebiten.Image

	preview    image.Image
	previewImg *ebiten.Image
}

func newImageCache(compositor *tilestore.Compositor) *imageCache {
	return &imageCache{
		compositor: compositor,
		tilesets:   make(map[string]tilesetImage),
		snippets:   make(map[string]*ebiten.Image),
		composites: make(map[string]*ebiten.Image),
	}
}

// Tileset returns the decoded tileset, refreshing it when its blob changed.
func (c *imageCache) Tileset(ts mapdata.Tileset) (image.Image, *ebiten.Image) {
	if cached, ok := c.tilesets[ts.ID]; ok && cached.blob == ts.Blob {
		return cached.src, cached.img
	}
	src, err := mapdata.DecodeImage(ts.Blob)
	if err != nil {
		log.WithField("tileset", ts.ID).WithError(err).Warn("tileset image unreadable")
		c.tilesets[ts.ID] = tilesetImage{blob: ts.Blob}
		return nil, nil
	}
	img := ebiten.NewImageFromImage(src)
	c.tilesets[ts.ID] = tilesetImage{blob: ts.Blob, src: src, img: img}
	return src, img
}

// Snippet returns the image of a cell's cached pixels.
func (c *imageCache) Snippet(dataURL string) *ebiten.Image {
	if dataURL == "" {
		return nil
	}
	if img, ok := c.snippets[dataURL]; ok {
		return img
	}
	src, err := mapdata.DecodeImage(dataURL)
	if err != nil {
		c.snippets[dataURL] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	c.snippets[dataURL] = img
	return img
}

// Composite returns the flattened preview of a file placed as a structure.
func (c *imageCache) Composite(f mapdata.File) *ebiten.Image {
	if img, ok := c.composites[f.ID]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(c.compositor.FileImage(f))
	c.composites[f.ID] = img
	return img
}

// Invalidate drops everything derived from a file's pixels.
func (c *imageCache) Invalidate(fileID string) {
	if img, ok := c.composites[fileID]; ok {
		img.Deallocate()
		delete(c.composites, fileID)
	}
	c.compositor.Invalidate(fileID)
}

// Preview returns the GPU copy of the cursor preview.
func (c *imageCache) Preview(src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if src != c.preview {
		if c.previewImg != nil {
			c.previewImg.Deallocate()
		}
		c.preview = src
		c.previewImg = ebiten.NewImageFromImage(src)
	}
	return c.previewImg
}

// Forget drops tileset images that are no longer in use.
func (c *imageCache) Forget(tilesets []mapdata.Tileset) {
	live := make(map[string]bool, len(tilesets))
	for _, ts := range tilesets {
		live[ts.ID] = true
	}
	for id, cached := range c.tilesets {
		if live[id] {
			continue
		}
		if cached.img != nil {
			cached.img.Deallocate()
		}
		delete(c.tilesets, id)
	}
}
