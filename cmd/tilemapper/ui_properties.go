package main

import (
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilemapper/forms"
)

type fieldSpec struct {
	key    string
	label  string
	toggle bool
}

type formField struct {
	spec   fieldSpec
	input  *widget.TextInput
	toggle *widget.Button
	on     bool
	err    *widget.Label
}

func (f *formField) value() string {
	if f.toggle != nil {
		return strconv.FormatBool(f.on)
	}
	return f.input.GetText()
}

func (f *formField) set(v string) {
	if f.toggle != nil {
		f.on, _ = strconv.ParseBool(v)
		f.toggle.SetText(onOff(f.on))
		return
	}
	f.input.SetText(v)
}

// PropertyForm is one settings panel: a column of labelled inputs, each with
// an inline error line, and an Apply button. Values typed by the user stay in
// place when Apply is rejected.
type PropertyForm struct {
	Container *widget.Container

	fields  []*formField
	general *widget.Label
	target  string
	onApply func(v forms.Values) forms.Errors
}

func newPropertyForm(theme *widget.Theme, fontFace *text.Face, title string, specs []fieldSpec, onApply func(v forms.Values) forms.Errors) *PropertyForm {
	p := &PropertyForm{Container: newColumn(2), onApply: onApply}
	p.Container.AddChild(newLabel(title, fontFace))

	for _, spec := range specs {
		f := &formField{spec: spec}
		row := newRow(6)
		label := newLabel(spec.label, fontFace)
		label.GetWidget().MinWidth = 84
		row.AddChild(label)
		if spec.toggle {
			field := f
			f.toggle = newButton(theme, fontFace, onOff(false), func() {
				field.on = !field.on
				field.toggle.SetText(onOff(field.on))
			})
			row.AddChild(f.toggle)
		} else {
			f.input = newTextInput(fontFace, 140)
			row.AddChild(f.input)
		}
		f.err = widget.NewLabel(widget.LabelOpts.Text("", fontFace, errorColor))
		p.Container.AddChild(row)
		p.Container.AddChild(f.err)
		p.fields = append(p.fields, f)
	}

	p.general = widget.NewLabel(widget.LabelOpts.Text("", fontFace, errorColor))
	p.Container.AddChild(p.general)
	p.Container.AddChild(newButton(theme, fontFace, "Apply", p.Apply))
	return p
}

// Load fills the form for target. Reloading the same target is skipped so
// edits in progress survive unrelated state changes.
func (p *PropertyForm) Load(target string, v forms.Values) {
	if target == p.target {
		return
	}
	p.target = target
	for _, f := range p.fields {
		f.set(v[f.spec.key])
	}
	p.ShowErrors(nil)
}

// Reset forces the next Load to refill the inputs.
func (p *PropertyForm) Reset() { p.target = "" }

// Values collects the raw input.
func (p *PropertyForm) Values() forms.Values {
	v := make(forms.Values, len(p.fields))
	for _, f := range p.fields {
		v[f.spec.key] = f.value()
	}
	return v
}

// Apply submits the form.
func (p *PropertyForm) Apply() {
	if p.onApply == nil || p.target == "" {
		return
	}
	errs := p.onApply(p.Values())
	p.ShowErrors(errs)
	if errs == nil {
		p.Reset()
	}
}

// ShowErrors puts each message next to its field.
func (p *PropertyForm) ShowErrors(errs forms.Errors) {
	for _, f := range p.fields {
		f.err.Label = errs.Field(f.spec.key)
	}
	p.general.Label = errs.Field("")
}

func (p *PropertyForm) SetVisible(visible bool) {
	setVisible(p.Container, visible)
	if !visible {
		p.target = ""
	}
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
