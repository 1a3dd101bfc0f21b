package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/forms"
)

type renameDialog struct {
	Overlay *widget.Container
	Open    func(id, current string)
	IsOpen  func() bool
}

// newRenameDialog builds the modal used to rename tilesets. onRename returns
// the validation errors to show, or nil to close the dialog.
func newRenameDialog(theme *widget.Theme, fontFace *text.Face, title string, onRename func(id, name string) forms.Errors) *renameDialog {
	renameID := ""

	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 140),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			),
		),
	)

	nameLabel := widget.NewLabel(
		widget.LabelOpts.Text(title, fontFace, &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}),
	)
	errLabel := widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: color.RGBA{180, 0, 0, 255}, Disabled: color.Gray{Y: 140}}),
	)

	closeDialog := func() {
		overlay.GetWidget().Visibility = widget.Visibility_Hide
		renameID = ""
		errLabel.Label = ""
	}
	submit := func(name string) {
		if renameID == "" || onRename == nil {
			closeDialog()
			return
		}
		if errs := onRename(renameID, name); errs != nil {
			errLabel.Label = errs.Field("name")
			return
		}
		closeDialog()
	}

	nameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(260, 28),
		),
		widget.TextInputOpts.Image(inputImage),
		widget.TextInputOpts.Color(inputColor),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			submit(args.InputText)
		}),
	)

	buttonsRow := newRow(8)
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", func() { submit(nameInput.GetText()) }))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", closeDialog))

	dialog.AddChild(nameLabel)
	dialog.AddChild(nameInput)
	dialog.AddChild(errLabel)
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(id, current string) {
		renameID = id
		errLabel.Label = ""
		nameInput.SetText(current)
		nameInput.Focus(true)
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}

	return &renameDialog{
		Overlay: overlay,
		Open:    open,
		IsOpen:  func() bool { return renameID != "" },
	}
}
