package builder

import (
	"fmt"
	"strings"

	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
	"github.com/christineastoria/custom-slide-annotation/units"
)

// Element colors.
var (
	titleColor     = hexcolor.RGB{R: 0xf8, G: 0xfa, B: 0xfc}
	bodyColor      = hexcolor.RGB{R: 0x94, G: 0xa3, B: 0xb8}
	subtleColor    = hexcolor.RGB{R: 0x64, G: 0x74, B: 0x8b}
	cardColor      = hexcolor.DefaultRect
	trendUpColor   = hexcolor.RGB{R: 0x10, G: 0xb9, B: 0x81}
	trendDownColor = hexcolor.RGB{R: 0xef, G: 0x44, B: 0x44}
	trendFlatColor = hexcolor.RGB{R: 0x6b, G: 0x72, B: 0x80}
)

// Positions and sizes in the option types below are in inches. Slide, when
// set, is the 1-based slide to select before adding the element.

// TitleOptions places a large heading.
type TitleOptions struct {
	Text      string  `json:"text"`
	X         float64 `json:"x_inches"`
	Y         float64 `json:"y_inches"`
	Width     float64 `json:"width_inches"`
	FontSize  float64 `json:"font_size"`
	FontColor string  `json:"font_color"`
	Bold      bool    `json:"bold"`
	Center    bool    `json:"center"`
	Slide     *int    `json:"slide_num,omitempty"`
}

// DefaultTitleOptions is a centered bold 48pt title across the slide.
func DefaultTitleOptions() TitleOptions {
	return TitleOptions{X: 0.5, Y: 2.5, Width: 12.333, FontSize: 48, FontColor: titleColor.Hex(), Bold: true, Center: true}
}

// BodyOptions places left-aligned body text.
type BodyOptions struct {
	Text      string  `json:"text"`
	X         float64 `json:"x_inches"`
	Y         float64 `json:"y_inches"`
	Width     float64 `json:"width_inches"`
	FontSize  float64 `json:"font_size"`
	FontColor string  `json:"font_color"`
	Slide     *int    `json:"slide_num,omitempty"`
}

// DefaultBodyOptions is 16pt body text below the title area.
func DefaultBodyOptions() BodyOptions {
	return BodyOptions{X: 0.5, Y: 1.5, Width: 12, FontSize: 16, FontColor: bodyColor.Hex()}
}

// SubtitleOptions places a centered 14pt subtitle.
type SubtitleOptions struct {
	Text      string  `json:"text"`
	X         float64 `json:"x_inches"`
	Y         float64 `json:"y_inches"`
	FontColor string  `json:"font_color"`
	Slide     *int    `json:"slide_num,omitempty"`
}

// DefaultSubtitleOptions sits just below a default title.
func DefaultSubtitleOptions() SubtitleOptions {
	return SubtitleOptions{X: 0.5, Y: 4.2, FontColor: subtleColor.Hex()}
}

// SlideNumberOptions places the "Slide N" label.
type SlideNumberOptions struct {
	X     float64 `json:"x_inches"`
	Y     float64 `json:"y_inches"`
	Slide *int    `json:"slide_num,omitempty"`
}

// DefaultSlideNumberOptions puts the label in the top-left corner.
func DefaultSlideNumberOptions() SlideNumberOptions {
	return SlideNumberOptions{X: 0.5, Y: 0.4}
}

// MetricCardOptions describes a KPI card. Trend is "up", "down" or anything
// else for flat.
type MetricCardOptions struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Trend  string  `json:"trend"`
	X      float64 `json:"x_inches"`
	Y      float64 `json:"y_inches"`
	Width  float64 `json:"width_inches"`
	Height float64 `json:"height_inches"`
	Slide  *int    `json:"slide_num,omitempty"`
}

// DefaultMetricCardOptions is a 2.8x1.3in card at the slide origin.
func DefaultMetricCardOptions() MetricCardOptions {
	return MetricCardOptions{Width: 2.8, Height: 1.3}
}

type textSpec struct {
	name       string
	text       string
	x, y, w, h float64 // inches
	size       float64
	color      hexcolor.RGB
	bold       bool
	align      models.Align
}

func (s *Session) textShape(spec textSpec) models.Shape {
	return models.Shape{
		ID:        s.nextShapeID(),
		Name:      spec.name,
		Type:      models.ShapeText,
		X:         models.Float(units.InchesToPixels(spec.x)),
		Y:         models.Float(units.InchesToPixels(spec.y)),
		Width:     models.Float(units.InchesToPixels(spec.w)),
		Height:    models.Float(units.InchesToPixels(spec.h)),
		Text:      spec.text,
		FontSize:  models.Float(spec.size),
		Fill:      models.String(spec.color.Hex()),
		FontStyle: &models.FontStyle{Bold: spec.bold},
		Align:     spec.align,
		Draggable: models.Bool(true),
	}
}

func fontSizeOr(size, def float64) float64 {
	if size <= 0 {
		return def
	}
	return size
}

// AddTitleText adds a large title. Returns the slide it was added to.
func (s *Session) AddTitleText(opts TitleOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slide, n, err := s.target(opts.Slide)
	if err != nil {
		return 0, err
	}
	align := models.AlignLeft
	if opts.Center {
		align = models.AlignCenter
	}
	slide.Shapes = append(slide.Shapes, s.textShape(textSpec{
		name: "Title", text: opts.Text,
		x: opts.X, y: opts.Y, w: opts.Width, h: 1.5,
		size:  fontSizeOr(opts.FontSize, 48),
		color: hexcolor.DecodeOr(opts.FontColor, titleColor),
		bold:  opts.Bold, align: align,
	}))
	return n, nil
}

// AddBodyText adds left-aligned paragraph text.
func (s *Session) AddBodyText(opts BodyOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slide, n, err := s.target(opts.Slide)
	if err != nil {
		return 0, err
	}
	slide.Shapes = append(slide.Shapes, s.textShape(textSpec{
		name: "Body", text: opts.Text,
		x: opts.X, y: opts.Y, w: opts.Width, h: 1.0,
		size:  fontSizeOr(opts.FontSize, 16),
		color: hexcolor.DecodeOr(opts.FontColor, bodyColor),
		align: models.AlignLeft,
	}))
	return n, nil
}

// AddSubtitle adds a centered full-width subtitle line.
func (s *Session) AddSubtitle(opts SubtitleOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slide, n, err := s.target(opts.Slide)
	if err != nil {
		return 0, err
	}
	slide.Shapes = append(slide.Shapes, s.textShape(textSpec{
		name: "Subtitle", text: opts.Text,
		x: opts.X, y: opts.Y, w: 12.333, h: 0.5,
		size:  14,
		color: hexcolor.DecodeOr(opts.FontColor, subtleColor),
		align: models.AlignCenter,
	}))
	return n, nil
}

// AddSlideNumber adds a "Slide N" label carrying the target slide's number.
func (s *Session) AddSlideNumber(opts SlideNumberOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slide, n, err := s.target(opts.Slide)
	if err != nil {
		return 0, err
	}
	slide.Shapes = append(slide.Shapes, s.textShape(textSpec{
		name: "Slide Number", text: fmt.Sprintf("Slide %d", n),
		x: opts.X, y: opts.Y, w: 2, h: 0.3,
		size:  10,
		color: subtleColor,
		align: models.AlignLeft,
	}))
	return n, nil
}

// TrendIcon returns the arrow and color for a trend keyword.
func TrendIcon(trend string) (string, hexcolor.RGB) {
	switch strings.ToLower(strings.TrimSpace(trend)) {
	case "up":
		return "↑", trendUpColor
	case "down":
		return "↓", trendDownColor
	}
	return "→", trendFlatColor
}

// AddMetricCard adds a borderless card with an upper-cased label, a bold
// value and a trend arrow, all centered.
func (s *Session) AddMetricCard(opts MetricCardOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slide, n, err := s.target(opts.Slide)
	if err != nil {
		return 0, err
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 2.8
	}
	if h <= 0 {
		h = 1.3
	}
	icon, iconColor := TrendIcon(opts.Trend)
	inner := w - 0.2

	slide.Shapes = append(slide.Shapes,
		models.Shape{
			ID:        s.nextShapeID(),
			Name:      "Metric Card",
			Type:      models.ShapeRect,
			X:         models.Float(units.InchesToPixels(opts.X)),
			Y:         models.Float(units.InchesToPixels(opts.Y)),
			Width:     models.Float(units.InchesToPixels(w)),
			Height:    models.Float(units.InchesToPixels(h)),
			Fill:      models.String(cardColor.Hex()),
			Draggable: models.Bool(true),
		},
		s.textShape(textSpec{
			name: "Metric Label", text: strings.ToUpper(opts.Label),
			x: opts.X + 0.1, y: opts.Y + 0.15, w: inner, h: 0.3,
			size: 10, color: bodyColor, align: models.AlignCenter,
		}),
		s.textShape(textSpec{
			name: "Metric Value", text: opts.Value,
			x: opts.X + 0.1, y: opts.Y + 0.4, w: inner, h: 0.4,
			size: 24, color: titleColor, bold: true, align: models.AlignCenter,
		}),
		s.textShape(textSpec{
			name: "Metric Trend", text: icon,
			x: opts.X + 0.1, y: opts.Y + 0.85, w: inner, h: 0.3,
			size: 16, color: iconColor, align: models.AlignCenter,
		}),
	)
	return n, nil
}
