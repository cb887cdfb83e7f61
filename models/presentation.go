package models

// Canvas defaults used when a deck or document does not carry a size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ShapeType is the variant kind of a Shape.
type ShapeType string

const (
	ShapeText ShapeType = "text"
	ShapeRect ShapeType = "rect"
)

// Shape defaults applied by the deck writer when a field is absent.
const (
	DefaultShapeWidth  = 100.0
	DefaultShapeHeight = 50.0
	DefaultFontSize    = 16.0
)

// Document is the normalized, pixel-space presentation exchanged with the
// canvas editor.
type Document struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Slides []Slide `json:"slides"`
	Error  string  `json:"error,omitempty"`
}

// Slide is one page of a Document.
type Slide struct {
	ID              string  `json:"id"`
	Index           int     `json:"index"`
	BackgroundColor string  `json:"backgroundColor"`
	Shapes          []Shape `json:"shapes"`
}

// Shape is a positioned text box or rectangle. Optional fields are pointers
// so that an absent value can be told apart from zero.
type Shape struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Type      ShapeType  `json:"type"`
	X         *float64   `json:"x"`
	Y         *float64   `json:"y"`
	Width     *float64   `json:"width"`
	Height    *float64   `json:"height"`
	Text      string     `json:"text,omitempty"`
	FontSize  *float64   `json:"fontSize,omitempty"`
	Fill      *string    `json:"fill,omitempty"`
	FontStyle *FontStyle `json:"fontStyle,omitempty"`
	Align     Align      `json:"align,omitempty"`
	Draggable *bool      `json:"draggable,omitempty"`
}

// Geometry returns x, y, width and height with the writer defaults applied.
func (s Shape) Geometry() (x, y, w, h float64) {
	return FloatOr(s.X, 0), FloatOr(s.Y, 0),
		FloatOr(s.Width, DefaultShapeWidth), FloatOr(s.Height, DefaultShapeHeight)
}

// Size returns the canvas size, falling back to 1280x720 for non-positive values.
func (d *Document) Size() (w, h float64) {
	w, h = d.Width, d.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// NewErrorDocument is the result of a read that could not open the deck.
func NewErrorDocument(msg string) *Document {
	return &Document{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Slides: []Slide{},
		Error:  msg,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// FloatOr dereferences p or returns def.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// StringOr dereferences p or returns def.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s
		out.Slides[i].Shapes = make([]Shape, len(s.Shapes))
		for j, sh := range s.Shapes {
			out.Slides[i].Shapes[j] = sh.clone()
		}
	}
	return &out
}

func (s Shape) clone() Shape {
	out := s
	if s.X != nil {
		out.X = Float(*s.X)
	}
	if s.Y != nil {
		out.Y = Float(*s.Y)
	}
	if s.Width != nil {
		out.Width = Float(*s.Width)
	}
	if s.Height != nil {
		out.Height = Float(*s.Height)
	}
	if s.FontSize != nil {
		out.FontSize = Float(*s.FontSize)
	}
	if s.Fill != nil {
		out.Fill = String(*s.Fill)
	}
	if s.FontStyle != nil {
		fs := *s.FontStyle
		out.FontStyle = &fs
	}
	if s.Draggable != nil {
		out.Draggable = Bool(*s.Draggable)
	}
	return out
}
