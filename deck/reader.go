package deck

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"baliance.com/gooxml/presentation"
	"baliance.com/gooxml/schema/soo/dml"
	"baliance.com/gooxml/schema/soo/pml"

	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
	"github.com/christineastoria/custom-slide-annotation/units"
)

// Reader converts deck bytes into the normalized document.
type Reader struct {
	logger func(string)
}

// NewReader creates a Reader.
func NewReader(opts Options) *Reader {
	return &Reader{logger: opts.Logger}
}

func (r *Reader) log(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger(fmt.Sprintf(format, args...))
	}
}

// Read never fails. Bytes that cannot be opened as a deck produce an error
// document with the default canvas and no slides; a shape that cannot be
// extracted is dropped and the rest of its slide survives.
func (r *Reader) Read(data []byte) (doc *models.Document) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log("[DECK] read aborted: %v", rec)
			doc = models.NewErrorDocument(fmt.Sprintf("failed to read presentation: %v", rec))
		}
	}()

	prs, err := presentation.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		r.log("[DECK] open failed: %v", err)
		return models.NewErrorDocument(fmt.Sprintf("failed to read presentation: %v", err))
	}

	doc = &models.Document{
		Width:  models.DefaultWidth,
		Height: models.DefaultHeight,
		Slides: []models.Slide{},
	}
	if sz := prs.X().SldSz; sz != nil && sz.CxAttr > 0 && sz.CyAttr > 0 {
		doc.Width = units.ToPixels(int64(sz.CxAttr))
		doc.Height = units.ToPixels(int64(sz.CyAttr))
	}

	for idx, slide := range prs.Slides() {
		doc.Slides = append(doc.Slides, r.readSlide(slide.X(), idx))
	}
	return doc
}

func (r *Reader) readSlide(sld *pml.Sld, idx int) models.Slide {
	out := models.Slide{
		ID:              fmt.Sprintf("slide-%d", idx),
		Index:           idx,
		BackgroundColor: hexcolor.DefaultBackground.Hex(),
		Shapes:          []models.Shape{},
	}
	if sld == nil || sld.CSld == nil {
		return out
	}
	if bg := sld.CSld.Bg; bg != nil && bg.BgPr != nil {
		if c, ok := solidFillColor(bg.BgPr.SolidFill); ok {
			out.BackgroundColor = c.Hex()
		}
	}
	if sld.CSld.SpTree != nil {
		r.walk(sld.CSld.SpTree, identity, &out.Shapes)
	}
	return out
}

// walk collects shapes in document order, descending into groups.
// Pictures, connectors and graphic frames become placeholder rects so their
// footprint stays visible on the canvas.
func (r *Reader) walk(tree *pml.CT_GroupShape, a affine, out *[]models.Shape) {
	keep := func(shape models.Shape, ok bool) {
		if ok {
			*out = append(*out, shape)
		}
	}
	for _, choice := range tree.Choice {
		if choice == nil {
			continue
		}
		for _, sp := range choice.Sp {
			keep(r.extractShape(sp, a))
		}
		for _, grp := range choice.GrpSp {
			if grp != nil {
				r.walk(grp, groupAffine(grp).then(a), out)
			}
		}
		for _, pic := range choice.Pic {
			keep(r.placeholder(a, func() (*dml.CT_NonVisualDrawingProps, *dml.CT_Transform2D) {
				return pic.NvPicPr.CNvPr, pic.SpPr.Xfrm
			}))
		}
		for _, cxn := range choice.CxnSp {
			keep(r.placeholder(a, func() (*dml.CT_NonVisualDrawingProps, *dml.CT_Transform2D) {
				return cxn.NvCxnSpPr.CNvPr, cxn.SpPr.Xfrm
			}))
		}
		for _, frame := range choice.GraphicFrame {
			keep(r.placeholder(a, func() (*dml.CT_NonVisualDrawingProps, *dml.CT_Transform2D) {
				return frame.NvGraphicFramePr.CNvPr, frame.Xfrm
			}))
		}
	}
}

// placeholder reads a non-shape element as a default-filled rect. locate
// returns the element's identity and transform; a panic while locating them
// drops the element.
func (r *Reader) placeholder(a affine, locate func() (*dml.CT_NonVisualDrawingProps, *dml.CT_Transform2D)) (shape models.Shape, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log("[DECK] dropped element: %v", rec)
			shape, ok = models.Shape{}, false
		}
	}()

	cNvPr, xfrm := locate()
	if cNvPr == nil {
		r.log("[DECK] dropped element without identity")
		return models.Shape{}, false
	}
	x, y, w, h := a.frame(xfrm)
	return models.Shape{
		ID:        strconv.FormatUint(uint64(cNvPr.IdAttr), 10),
		Name:      cNvPr.NameAttr,
		Type:      models.ShapeRect,
		X:         models.Float(x),
		Y:         models.Float(y),
		Width:     models.Float(w),
		Height:    models.Float(h),
		Fill:      models.String(hexcolor.DefaultRect.Hex()),
		Draggable: models.Bool(true),
	}, true
}

// extractShape classifies sp and extracts it with the matching extractor.
// A panic while reading the shape drops only that shape.
func (r *Reader) extractShape(sp *pml.CT_Shape, a affine) (shape models.Shape, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log("[DECK] dropped shape: %v", rec)
			shape, ok = models.Shape{}, false
		}
	}()

	base, ok := baseShape(sp, a)
	if !ok {
		r.log("[DECK] dropped shape without identity")
		return models.Shape{}, false
	}
	// Shapes without visible text, including empty text boxes and
	// placeholders, read as rects.
	if text := frameText(sp.TxBody); strings.TrimSpace(text) != "" {
		return extractText(sp, base, text), true
	}
	return extractRect(sp, base), true
}

func baseShape(sp *pml.CT_Shape, a affine) (models.Shape, bool) {
	if sp == nil || sp.NvSpPr == nil || sp.NvSpPr.CNvPr == nil {
		return models.Shape{}, false
	}
	x, y, w, h := a.geometry(sp.SpPr)
	return models.Shape{
		ID:        strconv.FormatUint(uint64(sp.NvSpPr.CNvPr.IdAttr), 10),
		Name:      sp.NvSpPr.CNvPr.NameAttr,
		X:         models.Float(x),
		Y:         models.Float(y),
		Width:     models.Float(w),
		Height:    models.Float(h),
		Draggable: models.Bool(true),
	}, true
}

// extractText styles the shape from the first paragraph's alignment and the
// first run of that paragraph. Later runs contribute text only.
func extractText(sp *pml.CT_Shape, shape models.Shape, text string) models.Shape {
	shape.Type = models.ShapeText
	shape.Text = text

	size := float64(models.DefaultFontSize)
	fill := hexcolor.DefaultText
	style := models.FontStyle{}
	align := models.AlignLeft

	if paras := sp.TxBody.P; len(paras) > 0 && paras[0] != nil {
		first := paras[0]
		if first.PPr != nil {
			align = alignFromContainer(first.PPr.AlgnAttr)
		}
		if rpr := firstRunProperties(first); rpr != nil {
			if rpr.SzAttr != nil {
				size = units.HundredthsToPoints(*rpr.SzAttr)
			}
			if c, ok := solidFillColor(rpr.SolidFill); ok {
				fill = c
			}
			style.Bold = rpr.BAttr != nil && *rpr.BAttr
			style.Italic = rpr.IAttr != nil && *rpr.IAttr
		}
	}

	shape.FontSize = models.Float(size)
	shape.Fill = models.String(fill.Hex())
	shape.FontStyle = &style
	shape.Align = align
	return shape
}

func extractRect(sp *pml.CT_Shape, shape models.Shape) models.Shape {
	shape.Type = models.ShapeRect
	fill := hexcolor.DefaultRect
	if sp.SpPr != nil {
		if c, ok := solidFillColor(sp.SpPr.SolidFill); ok {
			fill = c
		}
	}
	shape.Fill = models.String(fill.Hex())
	return shape
}

func firstRunProperties(p *dml.CT_TextParagraph) *dml.CT_TextCharacterProperties {
	for _, run := range p.EG_TextRun {
		if run != nil && run.R != nil {
			return run.R.RPr
		}
	}
	return nil
}

// frameText joins paragraphs with "\n". Line breaks inside a paragraph also
// read as "\n"; field text such as slide numbers is kept.
func frameText(tb *dml.CT_TextBody) string {
	if tb == nil {
		return ""
	}
	paras := make([]string, 0, len(tb.P))
	for _, p := range tb.P {
		if p == nil {
			continue
		}
		var sb strings.Builder
		for _, run := range p.EG_TextRun {
			switch {
			case run == nil:
			case run.R != nil:
				sb.WriteString(run.R.T)
			case run.Br != nil:
				sb.WriteByte('\n')
			case run.Fld != nil && run.Fld.T != nil:
				sb.WriteString(*run.Fld.T)
			}
		}
		paras = append(paras, sb.String())
	}
	return strings.Join(paras, "\n")
}
