package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	panelColor     = color.RGBA{40, 40, 40, 255}
	labelColor     = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	errorColor     = &widget.LabelColor{Idle: color.RGBA{255, 110, 110, 255}, Disabled: color.Gray{Y: 140}}
	inputImage     = &widget.TextInputImage{Idle: solidNineSlice(color.RGBA{245, 245, 245, 255}), Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255})}
	inputColor     = &widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}
	rowImage       = &widget.ButtonImage{Idle: solidNineSlice(color.RGBA{70, 70, 70, 255}), Hover: solidNineSlice(color.RGBA{90, 90, 90, 255}), Pressed: solidNineSlice(color.RGBA{60, 60, 90, 255})}
	rowActiveImage = &widget.ButtonImage{Idle: solidNineSlice(color.RGBA{60, 90, 160, 255}), Hover: solidNineSlice(color.RGBA{70, 100, 170, 255}), Pressed: solidNineSlice(color.RGBA{50, 80, 150, 255})}
	rowTextColor   = &widget.ButtonTextColor{Idle: color.White, Disabled: color.Gray{Y: 128}}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.Black,
				Disabled: color.Gray{Y: 128},
			},
			TextPadding: &widget.Insets{Left: 6, Right: 6, Top: 2, Bottom: 2},
		},
	}
}

func newLabel(text string, fontFace *text.Face) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(text, fontFace, labelColor))
}

func newTextInput(fontFace *text.Face, width int) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 24),
		),
		widget.TextInputOpts.Image(inputImage),
		widget.TextInputOpts.Color(inputColor),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.Padding(&widget.Insets{Left: 4, Right: 4, Top: 2, Bottom: 2}),
	)
}

func newButton(theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.TextPadding(theme.ButtonTheme.TextPadding),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func newRow(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(spacing),
			),
		),
	)
}

func newColumn(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(spacing),
			),
		),
	)
}

func setVisible(w widget.HasWidget, visible bool) {
	if visible {
		w.GetWidget().Visibility = widget.Visibility_Show
	} else {
		w.GetWidget().Visibility = widget.Visibility_Hide
	}
}
