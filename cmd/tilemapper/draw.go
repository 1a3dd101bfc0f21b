package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/interaction"
	"github.com/milk9111/tilemapper/mapdata"
)

var (
	canvasBackground = color.RGBA{24, 24, 28, 255}
	mapBackground    = color.RGBA{52, 52, 60, 255}
	gridColor        = color.RGBA{255, 255, 255, 40}
	defaultObject    = color.RGBA{0x3c, 0x78, 0xff, 0xff}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	r := g.canvasRect()
	if !r.Empty() {
		g.drawCanvas(screen.SubImage(r).(*ebiten.Image), r.Min)
	}

	g.ui.Draw(screen)
	g.drawPalette(screen)

	if r.Empty() {
		return
	}
	ebitenutil.DebugPrintAt(screen, g.statusLine(), r.Min.X+4, r.Max.Y-18)
}

func (g *Game) statusLine() string {
	s := g.store.State()
	line := fmt.Sprintf("%s  zoom %.2f", g.cursor.Tool, s.ZoomLevel)
	if g.cursor.Visible {
		line += fmt.Sprintf("  %d,%d", g.cursor.X, g.cursor.Y)
	}
	if g.status != "" {
		line += "  " + g.status
	}
	return line
}

// drawCanvas renders the selected file. dst is a sub-image of the screen, so
// everything is offset by its top-left corner.
func (g *Game) drawCanvas(dst *ebiten.Image, offset image.Point) {
	s := g.store.State()
	f, ok := s.SelectedFile()
	if !ok {
		ebitenutil.DebugPrintAt(dst, "Create or open a file to start.", offset.X+8, offset.Y+8)
		return
	}
	v := g.viewport()
	z := float32(v.Zoom)
	toScreen := func(x, y int) (float32, float32) {
		sx, sy := v.ToScreen(float64(x), float64(y))
		return float32(sx) + float32(offset.X), float32(sy) + float32(offset.Y)
	}

	w, h := f.PixelSize()
	x0, y0 := toScreen(0, 0)
	vector.FillRect(dst, x0, y0, float32(w)*z, float32(h)*z, mapBackground, false)

	for _, l := range f.SortedLayers() {
		if !l.IsVisible {
			continue
		}
		switch l.Kind {
		case mapdata.KindTile:
			g.drawTiles(dst, s, f, l, v, offset)
		case mapdata.KindObject:
			for _, o := range mapdata.SortedObjects(l.Objects) {
				if !o.IsVisible {
					continue
				}
				b := o.Bounds()
				x, y := toScreen(b.MinX, b.MinY)
				c := parseHexColor(o.Color)
				fill := color.RGBA{c.R, c.G, c.B, 64}
				vector.FillRect(dst, x, y, float32(b.Dx())*z, float32(b.Dy())*z, fill, false)
				stroke := color.Color(c)
				if o.ID == s.SelectedObjectID && l.ID == s.SelectedLayerID {
					stroke = colornames.Yellow
				}
				vector.StrokeRect(dst, x, y, float32(b.Dx())*z, float32(b.Dy())*z, 1, stroke, false)
			}
		case mapdata.KindStructure:
			for _, st := range l.Structures {
				ref, ok := s.File(st.FileID)
				if !ok {
					continue
				}
				img := g.images.Composite(ref)
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(v.Zoom, v.Zoom)
				x, y := toScreen(st.X, st.Y)
				op.GeoM.Translate(float64(x), float64(y))
				dst.DrawImage(img, op)
			}
		}
	}

	if s.ShowGrid {
		stepX, stepY := float32(f.TileWidth)*z, float32(f.TileHeight)*z
		for i := 0; i <= f.Width; i++ {
			x := x0 + float32(i)*stepX
			vector.StrokeLine(dst, x, y0, x, y0+float32(h)*z, 1, gridColor, false)
		}
		for j := 0; j <= f.Height; j++ {
			y := y0 + float32(j)*stepY
			vector.StrokeLine(dst, x0, y, x0+float32(w)*z, y, 1, gridColor, false)
		}
	}
	vector.StrokeRect(dst, x0, y0, float32(w)*z, float32(h)*z, 1, colornames.Lightgrey, false)

	g.drawCursor(dst, v, toScreen)
}

func (g *Game) drawTiles(dst *ebiten.Image, s editor.State, f mapdata.File, l mapdata.Layer, v interaction.Viewport, offset image.Point) {
	for y, row := range l.Tiles {
		for x, t := range row {
			if t.IsBlank() {
				continue
			}
			img := g.tileImage(s, f, t)
			if img == nil {
				continue
			}
			sx, sy := v.ToScreen(float64(x*f.TileWidth), float64(y*f.TileHeight))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(v.Zoom, v.Zoom)
			op.GeoM.Translate(sx+float64(offset.X), sy+float64(offset.Y))
			dst.DrawImage(img, op)
		}
	}
}

// tileImage resolves a cell to pixels: the live tileset region when the
// tileset is still loaded, otherwise the cell's cached snippet.
func (g *Game) tileImage(s editor.State, f mapdata.File, t mapdata.Tile) *ebiten.Image {
	if ts, ok := s.Tileset(t.TilesetID); ok {
		if _, img := g.images.Tileset(ts); img != nil {
			b := img.Bounds()
			cell := image.Rect(t.TilesetX*f.TileWidth, t.TilesetY*f.TileHeight, (t.TilesetX+1)*f.TileWidth, (t.TilesetY+1)*f.TileHeight).Add(b.Min)
			if cell.In(b) {
				return img.SubImage(cell).(*ebiten.Image)
			}
		}
	}
	return g.images.Snippet(t.TileData)
}

func (g *Game) drawCursor(dst *ebiten.Image, v interaction.Viewport, toScreen func(x, y int) (float32, float32)) {
	c := g.cursor
	if !c.Visible {
		return
	}
	x, y := toScreen(c.X, c.Y)
	z := float32(v.Zoom)
	if img := g.images.Preview(c.Preview); img != nil && (c.Tool == cursor.ToolTile || c.Tool == cursor.ToolStructure) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.Zoom, v.Zoom)
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleAlpha(0.5)
		dst.DrawImage(img, op)
	}
	outline := colornames.White
	if c.Tool == cursor.ToolEraser || c.Tool == cursor.ToolRemove {
		outline = colornames.Red
	}
	if c.Width > 0 && c.Height > 0 {
		vector.StrokeRect(dst, x, y, float32(c.Width)*z, float32(c.Height)*z, 1, outline, false)
	}
}

// drawPalette draws the selected tileset over its placeholder in the right
// panel, with the running selection on top.
func (g *Game) drawPalette(screen *ebiten.Image) {
	ts, ok := g.store.State().Tileset(g.selectedTileset)
	if !ok {
		return
	}
	_, img := g.images.Tileset(ts)
	if img == nil {
		return
	}
	r := widgetRect(g.view.paletteBox)
	if r.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	screen.DrawImage(img, op)

	f, ok := g.store.State().SelectedFile()
	if !ok || !g.paletteSel.Active() {
		return
	}
	sel := g.paletteSel.Bounds()
	tw, th := float32(f.TileWidth), float32(f.TileHeight)
	vector.StrokeRect(screen,
		float32(r.Min.X)+float32(sel.Min.X)*tw, float32(r.Min.Y)+float32(sel.Min.Y)*th,
		float32(sel.Dx())*tw, float32(sel.Dy())*th, 2, colornames.Yellow, false)
}

// parseHexColor parses #rgb or #rrggbb. Anything else yields the default
// object colour.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint32
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return defaultObject
		}
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return defaultObject
		}
		r, g, b = r*17, g*17, b*17
	default:
		return defaultObject
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
}
