package main

import (
	"fmt"
	"image"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/tilemapper/config"
	"github.com/milk9111/tilemapper/cursor"
	"github.com/milk9111/tilemapper/editor"
	"github.com/milk9111/tilemapper/interaction"
	"github.com/milk9111/tilemapper/mapdata"
	"github.com/milk9111/tilemapper/palette"
	"github.com/milk9111/tilemapper/script"
	"github.com/milk9111/tilemapper/tilestore"
)

const (
	leftPanelWidth  = 260
	rightPanelWidth = 300
	canvasMargin    = 16
)

// Game is the editor window.
type Game struct {
	cfg    config.Config
	store  *editor.Store
	cursor *cursor.Cursor
	canvas *interaction.Canvas

	tiles  *tilestore.Store
	images *imageCache
	inbox  chan mapdata.Tileset

	generators        []*script.Generator
	selectedGenerator string

	ui   *ebitenui.UI
	view *editorUI

	paletteSel      palette.Selection
	selectedTileset string

	originX, originY   float64
	panning            bool
	lastPanX, lastPanY int

	prev        editor.State
	dirty       bool
	clipboardOK bool
	status      string

	width, height int
}

func NewGame(cfg config.Config, store *editor.Store, tiles *tilestore.Store, generators []*script.Generator) *Game {
	g := &Game{
		cfg:        cfg,
		store:      store,
		cursor:     cursor.New(),
		tiles:      tiles,
		inbox:      make(chan mapdata.Tileset, 8),
		generators: generators,
		originX:    canvasMargin,
		originY:    canvasMargin,
		prev:       store.State(),
		dirty:      true,
	}
	g.images = newImageCache(tilestore.NewCompositor(tiles, g.tilesetSource))
	g.canvas = interaction.NewCanvas(store, g.cursor)
	if len(generators) > 0 {
		g.selectedGenerator = generators[0].Name
	}
	if ts := store.State().Tilesets; len(ts) > 0 {
		g.selectedTileset = ts[0].ID
	}
	g.ui, g.view = g.buildUI()
	store.Subscribe(g.onChange)
	return g
}

// tilesetSource resolves live tilesets for the compositor.
func (g *Game) tilesetSource(id string) image.Image {
	ts, ok := g.store.State().Tileset(id)
	if !ok {
		return nil
	}
	src, _ := g.images.Tileset(ts)
	return src
}

// onChange keeps the persistent tileset table and the image caches in step
// with the store.
func (g *Game) onChange(s editor.State) {
	for _, id := range changedFiles(g.prev, s) {
		g.images.Invalidate(id)
	}
	put, del := diffTilesets(g.prev.Tilesets, s.Tilesets)
	for _, ts := range put {
		if err := g.tiles.PutTileset(ts); err != nil {
			log.WithField("tileset", ts.ID).WithError(err).Error("persist tileset")
		}
	}
	for _, id := range del {
		if err := g.tiles.DeleteTileset(id); err != nil {
			log.WithField("tileset", id).WithError(err).Error("delete tileset")
		}
	}
	if len(del) > 0 {
		g.images.Forget(s.Tilesets)
	}
	if len(put) > 0 || len(del) > 0 {
		for _, f := range s.Files {
			g.images.Invalidate(f.ID)
		}
	}
	g.prev = s
	g.dirty = true
}

func (g *Game) Update() error {
	g.drainInbox()
	if g.dirty {
		g.syncUI()
		g.dirty = false
	}

	g.ui.Update()

	typing := false
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		_, typing = fw.(*widget.TextInput)
	}
	if !typing && !g.view.rename.IsOpen() {
		if err := g.handleKeys(); err != nil {
			return err
		}
	}

	mx, my := ebiten.CursorPosition()
	g.handlePalette(mx, my)
	if !g.view.rename.IsOpen() {
		g.handleCanvas(mx, my)
	} else {
		g.canvas.Cancel()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.view.files.Release(g.store)
		g.view.layers.Release(g.store)
		g.view.objects.Release(g.store)
	}
	return nil
}

func (g *Game) drainInbox() {
	for {
		select {
		case ts := <-g.inbox:
			g.store.Dispatch(func(s editor.State) editor.State { return editor.AddTileset(s, ts) })
			g.setStatus("added tileset %s", ts.Name)
		default:
			return
		}
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) handleKeys() error {
	ctrl := ctrlPressed()
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) && ebiten.IsKeyPressed(ebiten.KeyShift):
		g.canvas.Cancel()
		g.store.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.canvas.Cancel()
		g.store.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.canvas.Cancel()
		g.store.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyFile()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteFile()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.exportBundle()
	}
	if ctrl {
		return nil
	}

	toolKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}
	for i, k := range toolKeys {
		if i < len(cursor.Tools) && inpututil.IsKeyJustPressed(k) {
			g.view.toolBar.SetTool(cursor.Tools[i])
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.cursor.Clear()
		g.paletteSel = palette.Selection{}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		g.removeObject()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.store.Update(editor.ToggleGrid)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) {
		g.store.Update(editor.ResetZoom)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v, p, inside := g.pointer(ebiten.CursorPosition())
		if inside {
			g.canvas.Fill(v, p)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	return nil
}

// canvasRect is the screen area left between the panels.
func (g *Game) canvasRect() image.Rectangle {
	r := image.Rect(0, 0, g.width, g.height)
	if left := widgetRect(g.view.left); !left.Empty() {
		r.Min.X = left.Max.X
	}
	if right := widgetRect(g.view.right); !right.Empty() {
		r.Max.X = right.Min.X
	}
	if top := widgetRect(g.view.toolbar); !top.Empty() {
		r.Min.Y = top.Max.Y
	}
	if bottom := widgetRect(g.view.bottom); !bottom.Empty() {
		r.Max.Y = bottom.Min.Y
	}
	return r
}

func (g *Game) viewport() interaction.Viewport {
	return interaction.Viewport{Zoom: g.store.State().ZoomLevel, OriginX: g.originX, OriginY: g.originY}
}

// pointer returns the left-button state relative to the canvas.
func (g *Game) pointer(mx, my int) (interaction.Viewport, interaction.Pointer, bool) {
	r := g.canvasRect()
	p := interaction.Pointer{
		X:            float64(mx - r.Min.X),
		Y:            float64(my - r.Min.Y),
		Down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	return g.viewport(), p, image.Pt(mx, my).In(r)
}

func (g *Game) handleCanvas(mx, my int) {
	v, p, inside := g.pointer(mx, my)
	if g.paletteSel.Active() {
		inside = false
		p.JustPressed = false
	}
	g.canvas.Handle(v, p, inside)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && inside {
		g.panning = true
		g.lastPanX, g.lastPanY = mx, my
	}
	if g.panning {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
			g.panning = false
		} else {
			z := v.Zoom
			if z <= 0 {
				z = 1
			}
			g.originX += float64(mx-g.lastPanX) / z
			g.originY += float64(my-g.lastPanY) / z
			g.lastPanX, g.lastPanY = mx, my
		}
	}

	if inside {
		if _, wy := ebiten.Wheel(); wy != 0 {
			g.canvas.Wheel(wy)
		}
	}
}

// handlePalette turns a drag over the tileset image into a brush.
func (g *Game) handlePalette(mx, my int) {
	ts, ok := g.store.State().Tileset(g.selectedTileset)
	if !ok {
		g.paletteSel = palette.Selection{}
		return
	}
	f, ok := g.store.State().SelectedFile()
	if !ok {
		return
	}
	src, _ := g.images.Tileset(ts)
	if src == nil {
		return
	}
	r := widgetRect(g.view.paletteBox)
	px, py := mx-r.Min.X, my-r.Min.Y
	cx, cy := palette.CellAt(src, px, py, f.TileWidth, f.TileHeight)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && image.Pt(mx, my).In(r):
		g.paletteSel.Begin(cx, cy)
	case g.paletteSel.Active() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.paletteSel.Extend(cx, cy)
	case g.paletteSel.Active():
		brush := g.paletteSel.Finish(ts)
		filled, err := palette.Fill(brush, src, f.TileWidth, f.TileHeight)
		if err != nil {
			g.setStatus("brush: %v", err)
			return
		}
		g.cursor.SetBrush(filled, palette.Compose(src, f.TileWidth, f.TileHeight, filled), f.TileWidth, f.TileHeight)
		g.view.toolBar.SetTool(cursor.ToolTile)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Info(g.status)
}
