// Package forms validates property-panel input. Each failure is reported per
// field so the panel can show it next to the offending input.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/milk9111/tilemapper/editor"
)

// Errors maps a field name to its message. A nil or empty map means valid.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for k, v := range e {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}

// Field returns the message for one field.
func (e Errors) Field(name string) string { return e[name] }

// FileForm is the file settings panel.
type FileForm struct {
	Name        string `form:"name" validate:"required"`
	Width       int    `form:"width" validate:"min=1"`
	Height      int    `form:"height" validate:"min=1"`
	TileWidth   int    `form:"tileWidth" validate:"min=1"`
	TileHeight  int    `form:"tileHeight" validate:"min=1"`
	IsStructure bool   `form:"isStructure"`
}

// Settings converts the form into the editor payload.
func (f FileForm) Settings() editor.FileSettings {
	return editor.FileSettings{
		Name:        f.Name,
		Width:       f.Width,
		Height:      f.Height,
		TileWidth:   f.TileWidth,
		TileHeight:  f.TileHeight,
		IsStructure: f.IsStructure,
	}
}

// LayerForm is the layer settings panel.
type LayerForm struct {
	Name      string `form:"name" validate:"required"`
	IsVisible bool   `form:"isVisible"`
	SortOrder int    `form:"sortOrder" validate:"min=0"`
}

// ObjectForm is the object settings panel. Color may be empty.
type ObjectForm struct {
	Name      string `form:"name" validate:"required"`
	IsVisible bool   `form:"isVisible"`
	X         int    `form:"x"`
	Y         int    `form:"y"`
	Width     int    `form:"width" validate:"min=0"`
	Height    int    `form:"height" validate:"min=0"`
	Color     string `form:"color" validate:"omitempty,hexcolor,rgbhex"`
}

// TilesetForm renames a tileset.
type TilesetForm struct {
	Name string `form:"name" validate:"required,excludesall=/\\"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" {
				return name
			}
			return fld.Name
		})
		// hexcolor also admits #rgba and #rrggbbaa, which objects cannot draw
		err := validate.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
			n := len(fl.Field().String())
			return n == 4 || n == 7
		})
		if err != nil {
			panic(err)
		}
	})
	return validate
}

// Validate checks a form struct and returns its per-field messages, or nil.
func Validate(form any) Errors {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}
	res := make(Errors, len(verrs))
	for _, fe := range verrs {
		res[fe.Field()] = message(fe)
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "hexcolor", "rgbhex":
		return "must be a hex colour like #ff8800"
	case "excludesall":
		return "must not contain " + fe.Param()
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

// Values is raw text input keyed by form field name.
type Values map[string]string

func (v Values) number(errs Errors, key string) int {
	raw := strings.TrimSpace(v[key])
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs[key] = "must be a whole number"
		return 0
	}
	return n
}

func (v Values) flag(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v[key]))
	return b
}

// merge adds the validation messages for fields that parsed cleanly.
func merge(parse, valid Errors) Errors {
	for k, msg := range valid {
		if _, ok := parse[k]; !ok {
			parse[k] = msg
		}
	}
	if len(parse) == 0 {
		return nil
	}
	return parse
}

// ParseFileForm parses and validates the file settings panel.
func ParseFileForm(v Values) (FileForm, Errors) {
	errs := Errors{}
	f := FileForm{
		Name:        strings.TrimSpace(v["name"]),
		Width:       v.number(errs, "width"),
		Height:      v.number(errs, "height"),
		TileWidth:   v.number(errs, "tileWidth"),
		TileHeight:  v.number(errs, "tileHeight"),
		IsStructure: v.flag("isStructure"),
	}
	return f, merge(errs, Validate(f))
}

// ParseLayerForm parses and validates the layer settings panel.
func ParseLayerForm(v Values) (LayerForm, Errors) {
	errs := Errors{}
	f := LayerForm{
		Name:      strings.TrimSpace(v["name"]),
		IsVisible: v.flag("isVisible"),
		SortOrder: v.number(errs, "sortOrder"),
	}
	return f, merge(errs, Validate(f))
}

// ParseObjectForm parses and validates the object settings panel.
func ParseObjectForm(v Values) (ObjectForm, Errors) {
	errs := Errors{}
	f := ObjectForm{
		Name:      strings.TrimSpace(v["name"]),
		IsVisible: v.flag("isVisible"),
		X:         v.number(errs, "x"),
		Y:         v.number(errs, "y"),
		Width:     v.number(errs, "width"),
		Height:    v.number(errs, "height"),
		Color:     strings.TrimSpace(v["color"]),
	}
	return f, merge(errs, Validate(f))
}

// ParseTilesetForm parses and validates the tileset rename field.
func ParseTilesetForm(v Values) (TilesetForm, Errors) {
	f := TilesetForm{Name: strings.TrimSpace(v["name"])}
	return f, merge(Errors{}, Validate(f))
}
