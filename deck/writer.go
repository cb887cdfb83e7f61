package deck

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"baliance.com/gooxml"
	"baliance.com/gooxml/drawing"
	"baliance.com/gooxml/presentation"
	"baliance.com/gooxml/schema/soo/dml"
	"baliance.com/gooxml/schema/soo/pml"

	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
	"github.com/christineastoria/custom-slide-annotation/units"
)

// Font sizes outside this range are rejected by presentation software.
const (
	minFontSize = 1.0
	maxFontSize = 4000.0
)

// Slide extents allowed by sldSz, in EMU (1 to 56 inches).
const (
	minSlideEMU = 914400
	maxSlideEMU = 51206400
)

// Writer converts the normalized document into deck bytes.
type Writer struct {
	logger func(string)
}

// NewWriter creates a Writer.
func NewWriter(opts Options) *Writer {
	return &Writer{logger: opts.Logger}
}

func (w *Writer) log(format string, args ...interface{}) {
	if w.logger != nil {
		w.logger(fmt.Sprintf(format, args...))
	}
}

// Write builds a deck with one blank slide per document slide. Absent fields
// take the writer defaults. Shapes of unknown type are skipped.
func (w *Writer) Write(doc *models.Document) ([]byte, error) {
	if doc == nil {
		doc = &models.Document{}
	}

	ppt := presentation.New()
	width, height := doc.Size()
	if ppt.X().SldSz == nil {
		ppt.X().SldSz = pml.NewCT_SlideSize()
	}
	ppt.X().SldSz.CxAttr = w.slideExtent("width", width, models.DefaultWidth)
	ppt.X().SldSz.CyAttr = w.slideExtent("height", height, models.DefaultHeight)

	for si, s := range doc.Slides {
		slide := ppt.AddSlide()
		setBackground(slide.X(), s.BackgroundColor)

		id := uint32(2)
		for _, shape := range s.Shapes {
			switch shape.Type {
			case models.ShapeText:
				addText(slide, shape, id)
			case models.ShapeRect, "":
				addRect(slide.X(), shape, id)
			default:
				w.log("[DECK] slide %d: skipped shape %q of unknown type %q", si, shape.ID, shape.Type)
				continue
			}
			id++
		}
	}

	var buf bytes.Buffer
	if err := ppt.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to save presentation: %w", err)
	}
	return buf.Bytes(), nil
}

// slideExtent converts a canvas side to EMU clamped to the sldSz range.
func (w *Writer) slideExtent(side string, px, def float64) int32 {
	if math.IsNaN(px) {
		px = def
	}
	lo, hi := units.ToPixels(minSlideEMU), units.ToPixels(maxSlideEMU)
	clamped := math.Min(math.Max(px, lo), hi)
	if clamped != px {
		w.log("[DECK] slide %s %v px clamped to %v px", side, px, clamped)
	}
	return int32(units.ToEMU(clamped))
}

func setBackground(sld *pml.Sld, hex string) {
	bgPr := pml.NewCT_BackgroundProperties()
	bgPr.SolidFill = solidFill(hexcolor.DecodeOr(hex, hexcolor.DefaultBackground))
	bgPr.EffectLst = dml.NewCT_EffectList()
	sld.CSld.Bg = pml.NewCT_Background()
	sld.CSld.Bg.BgPr = bgPr
}

// identify sets the non-visual id and name, creating the required
// non-visual children when missing.
func identify(sp *pml.CT_Shape, id uint32, name string) {
	if sp.NvSpPr == nil {
		sp.NvSpPr = pml.NewCT_ShapeNonVisual()
	}
	if sp.NvSpPr.CNvPr == nil {
		sp.NvSpPr.CNvPr = dml.NewCT_NonVisualDrawingProps()
	}
	if sp.NvSpPr.CNvSpPr == nil {
		sp.NvSpPr.CNvSpPr = dml.NewCT_NonVisualDrawingShapeProps()
	}
	if sp.NvSpPr.NvPr == nil {
		sp.NvSpPr.NvPr = pml.NewCT_ApplicationNonVisualDrawingProps()
	}
	sp.NvSpPr.CNvPr.IdAttr = id
	sp.NvSpPr.CNvPr.NameAttr = name
}

func shapeName(shape models.Shape, kind string, id uint32) string {
	if shape.Name != "" {
		return shape.Name
	}
	return fmt.Sprintf("%s %d", kind, id)
}

func fontSize(shape models.Shape) float64 {
	size := models.FloatOr(shape.FontSize, models.DefaultFontSize)
	if size <= 0 || math.IsNaN(size) {
		return models.DefaultFontSize
	}
	return math.Min(math.Max(size, minFontSize), maxFontSize)
}

// addText writes a word-wrapped text box with a single paragraph. Each "\n"
// in the text becomes a line break, and every run shares the shape's style.
func addText(slide presentation.Slide, shape models.Shape, id uint32) {
	box := slide.AddTextBox()
	sp := box.X()
	identify(sp, id, shapeName(shape, "TextBox", id))
	box.Properties().SetGeometry(dml.ST_ShapeTypeRect)
	x, y, width, height := shape.Geometry()
	setTransform(sp.SpPr, x, y, width, height)

	if sp.TxBody == nil {
		sp.TxBody = dml.NewCT_TextBody()
	}
	if sp.TxBody.BodyPr == nil {
		sp.TxBody.BodyPr = dml.NewCT_TextBodyProperties()
	}
	sp.TxBody.BodyPr.WrapAttr = dml.ST_TextWrappingTypeSquare
	sp.TxBody.P = nil

	var style models.FontStyle
	if shape.FontStyle != nil {
		style = *shape.FontStyle
	}
	fill := drawingColor(hexcolor.DecodeOr(models.StringOr(shape.Fill, ""), hexcolor.DefaultText))
	sz := units.PointsToHundredths(fontSize(shape))
	styleRun := func(rp drawing.RunProperties) {
		// sz is written directly: measurement.Distance division loses
		// hundredths such as 24.5pt.
		rp.X().SzAttr = gooxml.Int32(sz)
		rp.SetBold(style.Bold)
		rp.X().IAttr = gooxml.Bool(style.Italic)
		rp.SetSolidFill(fill)
	}

	para := box.AddParagraph()
	para.Properties().SetAlign(alignToContainer(shape.Align))
	for i, line := range strings.Split(shape.Text, "\n") {
		if i > 0 {
			para.AddBreak()
		}
		run := para.AddRun()
		run.SetText(line)
		styleRun(run.Properties())
	}
	para.X().EndParaRPr = dml.NewCT_TextCharacterProperties()
	styleRun(drawing.MakeRunProperties(para.X().EndParaRPr))
}

// addRect appends a borderless filled rectangle to the slide's shape tree.
func addRect(sld *pml.Sld, shape models.Shape, id uint32) {
	sp := pml.NewCT_Shape()
	identify(sp, id, shapeName(shape, "Rectangle", id))
	if sp.SpPr == nil {
		sp.SpPr = dml.NewCT_ShapeProperties()
	}
	x, y, width, height := shape.Geometry()
	setTransform(sp.SpPr, x, y, width, height)

	props := drawing.MakeShapeProperties(sp.SpPr)
	props.SetGeometry(dml.ST_ShapeTypeRect)
	props.SetSolidFill(drawingColor(hexcolor.DecodeOr(models.StringOr(shape.Fill, ""), hexcolor.DefaultRect)))
	props.LineProperties().SetNoFill()

	choice := pml.NewCT_GroupShapeChoice()
	choice.Sp = append(choice.Sp, sp)
	sld.CSld.SpTree.Choice = append(sld.CSld.SpTree.Choice, choice)
}
