// Package preview rasterizes one slide of a canvas document into a
// thumbnail image.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
)

const (
	// DefaultWidth is the thumbnail width used when Options.Width is unset.
	DefaultWidth = 480
	// DefaultMaxSide bounds both image sides when Options.MaxSide is unset.
	DefaultMaxSide = 2048
)

// Errors returned by RenderSlide.
var (
	ErrNoDocument      = errors.New("no document")
	ErrSlideOutOfRange = errors.New("slide index out of range")
	ErrTooLarge        = errors.New("preview too large")
)

// Options controls the rendered image size.
type Options struct {
	// Width of the output image in pixels; the height follows the canvas
	// aspect ratio. Widths above MaxSide are clamped.
	Width int
	// MaxSide caps width and height. A canvas whose aspect ratio would need
	// a taller image fails with ErrTooLarge.
	MaxSide int
}

// size returns the image dimensions for a cw x ch canvas.
func (o Options) size(cw, ch float64) (w, h int, err error) {
	maxSide := o.MaxSide
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	w = o.Width
	if w <= 0 {
		w = DefaultWidth
	}
	if w > maxSide {
		w = maxSide
	}
	hf := math.Round(ch * float64(w) / cw)
	if math.IsNaN(hf) || hf > float64(maxSide) {
		return 0, 0, fmt.Errorf("%w: %vx%v canvas at width %d exceeds %d px", ErrTooLarge, cw, ch, w, maxSide)
	}
	h = int(hf)
	if h < 1 {
		h = 1
	}
	return w, h, nil
}

func rgba(c hexcolor.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RenderSlide draws slide index (0-based) of doc. Rectangles are filled
// with their color. Text uses a fixed bitmap face in the shape's color, so
// font size is not reflected.
func RenderSlide(doc *models.Document, index int, opts Options) (*image.RGBA, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if index < 0 || index >= len(doc.Slides) {
		return nil, fmt.Errorf("%w: %d (have %d slides)", ErrSlideOutOfRange, index, len(doc.Slides))
	}
	slide := doc.Slides[index]

	cw, ch := doc.Size()
	w, h, err := opts.size(cw, ch)
	if err != nil {
		return nil, err
	}
	scale := float64(w) / cw

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := hexcolor.DecodeOr(slide.BackgroundColor, hexcolor.DefaultBackground)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: rgba(bg)}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)

	for _, shape := range slide.Shapes {
		x, y, sw, sh := shape.Geometry()
		x, y, sw, sh = x*scale, y*scale, sw*scale, sh*scale
		switch shape.Type {
		case models.ShapeText:
			fill := hexcolor.DecodeOr(models.StringOr(shape.Fill, ""), hexcolor.DefaultText)
			drawText(img, shape.Text, shape.Align, x, y, sw, rgba(fill))
		case models.ShapeRect, "":
			if sw <= 0 || sh <= 0 {
				continue
			}
			fill := hexcolor.DecodeOr(models.StringOr(shape.Fill, ""), hexcolor.DefaultRect)
			filler.SetColor(rgba(fill))
			rasterx.AddRect(x, y, x+sw, y+sh, 0, filler)
			filler.Draw()
			filler.Clear()
		}
	}
	return img, nil
}

// drawText writes each line of text below the previous one, aligned within
// the box width.
func drawText(dst draw.Image, text string, align models.Align, x, y, w float64, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	lineHeight := face.Metrics().Height.Ceil()
	baseline := int(math.Round(y)) + face.Metrics().Ascent.Ceil()

	for i, line := range strings.Split(text, "\n") {
		adv := float64(d.MeasureString(line).Ceil())
		left := x
		switch align.Normalized() {
		case models.AlignCenter:
			left = x + (w-adv)/2
		case models.AlignRight:
			left = x + w - adv
		}
		d.Dot = fixed.P(int(math.Round(left)), baseline+i*lineHeight)
		d.DrawString(line)
	}
}

// RenderPNG renders the slide and encodes it as PNG.
func RenderPNG(doc *models.Document, index int, opts Options) ([]byte, error) {
	img, err := RenderSlide(doc, index, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
