package models

import (
	"encoding/json"
	"strings"
)

// FontStyle is the bold/italic flag-set of a text shape. On the wire it is
// the canvas display string: "normal", "bold", "italic" or "bold italic".
type FontStyle struct {
	Bold   bool
	Italic bool
}

// ParseFontStyle reads a display string by token membership, so word order
// and unknown tokens do not matter.
func ParseFontStyle(s string) FontStyle {
	var fs FontStyle
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		switch tok {
		case "bold":
			fs.Bold = true
		case "italic":
			fs.Italic = true
		}
	}
	return fs
}

// String returns the display form.
func (fs FontStyle) String() string {
	switch {
	case fs.Bold && fs.Italic:
		return "bold italic"
	case fs.Bold:
		return "bold"
	case fs.Italic:
		return "italic"
	}
	return "normal"
}

// MarshalJSON encodes the style as "normal", "bold", "italic" or "bold italic".
func (fs FontStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(fs.String())
}

// UnmarshalJSON accepts any string ParseFontStyle does.
func (fs *FontStyle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*fs = ParseFontStyle(s)
	return nil
}

// Align is the horizontal alignment of a text shape.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign maps anything other than "center" or "right" to left.
func ParseAlign(s string) Align {
	switch Align(strings.ToLower(strings.TrimSpace(s))) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	}
	return AlignLeft
}

// Normalized returns a valid alignment for a possibly empty or unknown value.
func (a Align) Normalized() Align { return ParseAlign(string(a)) }
