package forms

import "testing"

func TestParseFileForm(t *testing.T) {
	valid := Values{"name": "Level", "width": "12", "height": "8", "tileWidth": "16", "tileHeight": "16", "isStructure": "true"}
	cases := []struct {
		name   string
		edit   map[string]string
		fields map[string]string
	}{
		{"valid", nil, nil},
		{"empty_name", map[string]string{"name": "  "}, map[string]string{"name": "is required"}},
		{"zero_width", map[string]string{"width": "0"}, map[string]string{"width": "must be at least 1"}},
		{"text_height", map[string]string{"height": "tall"}, map[string]string{"height": "must be a whole number"}},
		{"several", map[string]string{"name": "", "tileWidth": "-3", "tileHeight": "x"}, map[string]string{
			"name":       "is required",
			"tileWidth":  "must be at least 1",
			"tileHeight": "must be a whole number",
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Values{}
			for k, v := range valid {
				in[k] = v
			}
			for k, v := range c.edit {
				in[k] = v
			}
			form, errs := ParseFileForm(in)
			if len(errs) != len(c.fields) {
				t.Fatalf("expected %d errors, got %v", len(c.fields), errs)
			}
			for field, msg := range c.fields {
				if got := errs.Field(field); got != msg {
					t.Fatalf("%s: got %q, want %q", field, got, msg)
				}
			}
			if _, bad := c.fields["width"]; !bad && form.Width != 12 {
				t.Fatalf("unaffected field lost its value: %+v", form)
			}
		})
	}
}

func TestFileFormSettings(t *testing.T) {
	form, errs := ParseFileForm(Values{"name": "L", "width": "3", "height": "4", "tileWidth": "8", "tileHeight": "9", "isStructure": "1"})
	if errs != nil {
		t.Fatalf("unexpected errors %v", errs)
	}
	s := form.Settings()
	if s.Name != "L" || s.Width != 3 || s.Height != 4 || s.TileWidth != 8 || s.TileHeight != 9 || !s.IsStructure {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestParseObjectFormColor(t *testing.T) {
	cases := []struct {
		color string
		ok    bool
	}{
		{"", true},
		{"#ff8800", true},
		{"#abc", true},
		{"orange", false},
		{"#12345", false},
		{"#abcd", false},
		{"#ff880080", false},
	}
	for _, c := range cases {
		t.Run(c.color, func(t *testing.T) {
			_, errs := ParseObjectForm(Values{"name": "o", "x": "1", "y": "2", "width": "3", "height": "4", "color": c.color})
			if got := errs.Field("color") == ""; got != c.ok {
				t.Fatalf("color %q: ok=%v, want %v (%v)", c.color, got, c.ok, errs)
			}
		})
	}
}

func TestParseLayerAndTilesetForms(t *testing.T) {
	if _, errs := ParseLayerForm(Values{"name": "Ground", "sortOrder": "-1"}); errs.Field("sortOrder") == "" {
		t.Fatalf("negative sort order accepted")
	}
	if f, errs := ParseLayerForm(Values{"name": "Ground", "sortOrder": "2", "isVisible": "true"}); errs != nil || !f.IsVisible || f.SortOrder != 2 {
		t.Fatalf("unexpected layer form %+v %v", f, errs)
	}
	if _, errs := ParseTilesetForm(Values{"name": "a/b"}); errs.Field("name") == "" {
		t.Fatalf("slash accepted in tileset name")
	}
	if _, errs := ParseTilesetForm(Values{"name": "grass"}); errs != nil {
		t.Fatalf("unexpected errors %v", errs)
	}
}
