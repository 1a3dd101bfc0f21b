package main

import (
	"bytes"
	"image"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/tilemapper/interaction"
	"github.com/milk9111/tilemapper/mapdata"
)

// editorUI is every widget the game reads back or updates after build.
type editorUI struct {
	toolBar *ToolBar

	files      *EntryList
	layers     *EntryList
	objects    *EntryList
	structures *EntryList
	generators *EntryList
	tilesets   *EntryList

	fileForm   *PropertyForm
	layerForm  *PropertyForm
	objectForm *PropertyForm
	rename     *renameDialog

	pathInput  *widget.TextInput
	tilesetIn  *widget.TextInput
	paletteBox *widget.Container

	left    *widget.Container
	right   *widget.Container
	toolbar *widget.Container
	bottom  *widget.Container
}

func (g *Game) buildUI() (*ebitenui.UI, *editorUI) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 13}
	ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := ui.PrimaryTheme

	v := &editorUI{}
	v.left = g.buildLeftPanel(theme, &fontFace, v)
	v.right = g.buildRightPanel(theme, &fontFace, v)
	v.toolbar, v.toolBar = buildToolBar(theme, &fontFace, g.selectTool, g.cursor.Tool)
	v.bottom = g.buildBottomBar(theme, &fontFace, v)
	v.rename = newRenameDialog(theme, &fontFace, "Rename tileset", g.renameTileset)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	v.left.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	v.right.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	v.toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	v.bottom.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	root.AddChild(v.left)
	root.AddChild(v.right)
	root.AddChild(v.toolbar)
	root.AddChild(v.bottom)
	root.AddChild(v.rename.Overlay)

	ui.Container = root
	return ui, v
}

func panelContainer(width int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			),
		),
	)
}

func (g *Game) buildLeftPanel(theme *widget.Theme, fontFace *text.Face, v *editorUI) *widget.Container {
	panel := panelContainer(leftPanelWidth)

	panel.AddChild(newLabel("Files", fontFace))
	v.files = NewEntryList(theme, fontFace, g.selectFile)
	v.files.EnableReorder(interaction.ScopeFiles)
	panel.AddChild(v.files.Container)
	fileButtons := newRow(4)
	fileButtons.AddChild(newButton(theme, fontFace, "New", g.newFile))
	fileButtons.AddChild(newButton(theme, fontFace, "Delete", g.deleteFile))
	fileButtons.AddChild(newButton(theme, fontFace, "Copy", g.copyFile))
	fileButtons.AddChild(newButton(theme, fontFace, "Paste", g.pasteFile))
	panel.AddChild(fileButtons)

	panel.AddChild(newLabel("Layers", fontFace))
	v.layers = NewEntryList(theme, fontFace, g.selectLayer)
	v.layers.EnableReorder(interaction.ScopeLayers)
	panel.AddChild(v.layers.Container)
	addButtons := newRow(4)
	addButtons.AddChild(newButton(theme, fontFace, "+Tile", func() { g.addLayer(mapdata.KindTile) }))
	addButtons.AddChild(newButton(theme, fontFace, "+Object", func() { g.addLayer(mapdata.KindObject) }))
	addButtons.AddChild(newButton(theme, fontFace, "+Structure", func() { g.addLayer(mapdata.KindStructure) }))
	panel.AddChild(addButtons)
	layerButtons := newRow(4)
	layerButtons.AddChild(newButton(theme, fontFace, "Duplicate", g.duplicateLayer))
	layerButtons.AddChild(newButton(theme, fontFace, "Show/Hide", g.toggleLayer))
	layerButtons.AddChild(newButton(theme, fontFace, "Delete", g.removeLayer))
	panel.AddChild(layerButtons)

	panel.AddChild(newLabel("Objects", fontFace))
	v.objects = NewEntryList(theme, fontFace, g.selectObject)
	v.objects.EnableReorder(interaction.ScopeObjects)
	panel.AddChild(v.objects.Container)
	panel.AddChild(newButton(theme, fontFace, "Delete object", g.removeObject))

	panel.AddChild(newLabel("Structures", fontFace))
	v.structures = NewEntryList(theme, fontFace, g.armStructure)
	panel.AddChild(v.structures.Container)

	panel.AddChild(newLabel("Generators", fontFace))
	v.generators = NewEntryList(theme, fontFace, g.selectGenerator)
	panel.AddChild(v.generators.Container)
	panel.AddChild(newButton(theme, fontFace, "Run on layer", g.runGenerator))

	return panel
}

func (g *Game) buildRightPanel(theme *widget.Theme, fontFace *text.Face, v *editorUI) *widget.Container {
	panel := panelContainer(rightPanelWidth)

	v.fileForm = newPropertyForm(theme, fontFace, "File", []fieldSpec{
		{key: "name", label: "Name"},
		{key: "width", label: "Width"},
		{key: "height", label: "Height"},
		{key: "tileWidth", label: "Tile width"},
		{key: "tileHeight", label: "Tile height"},
		{key: "isStructure", label: "Structure", toggle: true},
	}, g.applyFileForm)
	panel.AddChild(v.fileForm.Container)

	v.layerForm = newPropertyForm(theme, fontFace, "Layer", []fieldSpec{
		{key: "name", label: "Name"},
		{key: "isVisible", label: "Visible", toggle: true},
		{key: "sortOrder", label: "Order"},
	}, g.applyLayerForm)
	panel.AddChild(v.layerForm.Container)

	v.objectForm = newPropertyForm(theme, fontFace, "Object", []fieldSpec{
		{key: "name", label: "Name"},
		{key: "isVisible", label: "Visible", toggle: true},
		{key: "x", label: "X"},
		{key: "y", label: "Y"},
		{key: "width", label: "Width"},
		{key: "height", label: "Height"},
		{key: "color", label: "Colour"},
	}, g.applyObjectForm)
	panel.AddChild(v.objectForm.Container)

	panel.AddChild(newLabel("Tilesets", fontFace))
	v.tilesets = NewEntryList(theme, fontFace, g.selectTileset)
	panel.AddChild(v.tilesets.Container)
	tilesetButtons := newRow(4)
	tilesetButtons.AddChild(newButton(theme, fontFace, "Rename", g.openRenameTileset))
	tilesetButtons.AddChild(newButton(theme, fontFace, "Delete", g.deleteTileset))
	panel.AddChild(tilesetButtons)
	addRow := newRow(4)
	v.tilesetIn = newTextInput(fontFace, 170)
	addRow.AddChild(v.tilesetIn)
	addRow.AddChild(newButton(theme, fontFace, "Add PNG", g.addTilesetFromInput))
	panel.AddChild(addRow)

	// The palette is drawn by the game over this placeholder, sized to the
	// selected tileset.
	v.paletteBox = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(1, 1),
		),
	)
	panel.AddChild(v.paletteBox)

	return panel
}

func (g *Game) buildBottomBar(theme *widget.Theme, fontFace *text.Face, v *editorUI) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
			),
		),
	)
	bar.AddChild(newLabel("Path", fontFace))
	v.pathInput = newTextInput(fontFace, 260)
	bar.AddChild(v.pathInput)
	bar.AddChild(newButton(theme, fontFace, "Export", g.exportBundle))
	bar.AddChild(newButton(theme, fontFace, "Import", g.importBundle))
	bar.AddChild(newButton(theme, fontFace, "Import TMX", g.importTMX))
	bar.AddChild(newButton(theme, fontFace, "Open JSON", g.openJSON))
	return bar
}

// widgetRect returns the on-screen rectangle of w after layout.
func widgetRect(w widget.HasWidget) image.Rectangle {
	if w == nil {
		return image.Rectangle{}
	}
	return w.GetWidget().Rect
}
