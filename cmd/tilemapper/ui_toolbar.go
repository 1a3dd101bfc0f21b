package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/cursor"
)

// ToolBar holds the radio group behind the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

// SetTool reflects a tool chosen elsewhere (hotkey, palette). The change
// handler may still fire; selecting the active tool again is a no-op.
func (tb *ToolBar) SetTool(t cursor.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range cursor.Tools {
		if tool == t && i < len(tb.buttons) {
			if tb.group.Active() == tb.buttons[i] {
				return
			}
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool cursor.Tool), initialTool cursor.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 40),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	tb := &ToolBar{}
	for _, tool := range cursor.Tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.TextPadding(theme.ButtonTheme.TextPadding),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 32),
			),
		)
		tb.buttons = append(tb.buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		elements = append(elements, b)
	}

	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range tb.buttons {
				if args.Active == b {
					onToolSelected(cursor.Tools[idx])
					return
				}
			}
		}),
	)

	tb.SetTool(initialTool)
	return toolbar, tb
}
