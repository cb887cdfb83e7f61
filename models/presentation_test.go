package models

import (
	"encoding/json"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestFontStyleDisplayRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fs := FontStyle{
			Bold:   rapid.Bool().Draw(t, "bold"),
			Italic: rapid.Bool().Draw(t, "italic"),
		}
		data, err := json.Marshal(fs)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got FontStyle
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != fs {
			t.Fatalf("round trip of %+v via %s gave %+v", fs, data, got)
		}
	})
}

func TestParseFontStyle(t *testing.T) {
	tests := map[string]FontStyle{
		"":            {},
		"normal":      {},
		"bold":        {Bold: true},
		"italic":      {Italic: true},
		"bold italic": {Bold: true, Italic: true},
		"Italic Bold": {Bold: true, Italic: true},
		"  bold  ":    {Bold: true},
	}
	for in, want := range tests {
		if got := ParseFontStyle(in); got != want {
			t.Errorf("ParseFontStyle(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseAlign(t *testing.T) {
	tests := map[string]Align{
		"center":  AlignCenter,
		"RIGHT":   AlignRight,
		"left":    AlignLeft,
		"":        AlignLeft,
		"justify": AlignLeft,
	}
	for in, want := range tests {
		if got := ParseAlign(in); got != want {
			t.Errorf("ParseAlign(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShapeDecodeKeepsAbsentFieldsNil(t *testing.T) {
	var s Shape
	if err := json.Unmarshal([]byte(`{"id":"1","type":"text","text":"hi","x":10}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.FontSize != nil || s.Fill != nil || s.FontStyle != nil || s.Align != "" {
		t.Fatalf("expected optional text fields to be absent, got %+v", s)
	}
	x, y, w, h := s.Geometry()
	if x != 10 || y != 0 || w != DefaultShapeWidth || h != DefaultShapeHeight {
		t.Fatalf("Geometry() = %v %v %v %v", x, y, w, h)
	}
}

func TestErrorDocumentShape(t *testing.T) {
	doc := NewErrorDocument("zip: not a valid zip file")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"slides":[]`, `"width":1280`, `"height":720`, `"error":"zip: not a valid zip file"`} {
		if !strings.Contains(s, want) {
			t.Errorf("%s missing %s", s, want)
		}
	}
}

func TestDocumentSizeDefaults(t *testing.T) {
	var d Document
	if w, h := d.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %v x %v", w, h)
	}
	d.Width, d.Height = 960, 540
	if w, h := d.Size(); w != 960 || h != 540 {
		t.Errorf("Size() = %v x %v", w, h)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := &Document{Width: 800, Height: 600, Slides: []Slide{{
		ID: "slide-0",
		Shapes: []Shape{{
			ID:        "1",
			Type:      ShapeText,
			X:         Float(10),
			Fill:      String("#ffffff"),
			FontStyle: &FontStyle{Bold: true},
		}},
	}}}

	cp := doc.Clone()
	*cp.Slides[0].Shapes[0].X = 99
	*cp.Slides[0].Shapes[0].Fill = "#000000"
	cp.Slides[0].Shapes[0].FontStyle.Bold = false
	cp.Slides[0].Shapes = append(cp.Slides[0].Shapes, Shape{ID: "2"})

	orig := doc.Slides[0].Shapes
	if len(orig) != 1 {
		t.Fatalf("expected original to keep 1 shape, got %d", len(orig))
	}
	if *orig[0].X != 10 || *orig[0].Fill != "#ffffff" || !orig[0].FontStyle.Bold {
		t.Errorf("original shape was mutated through the clone: %+v", orig[0])
	}
	if (*Document)(nil).Clone() != nil {
		t.Error("expected nil clone of nil document")
	}
}
