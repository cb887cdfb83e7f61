// Package deck reads PPTX bytes into the normalized canvas document and
// writes the document back out as PPTX.
//
// Only the subset the canvas edits is modelled: solid slide backgrounds,
// rectangles with a solid fill, and text boxes styled from their first run.
package deck

import (
	"math"

	"baliance.com/gooxml"
	"baliance.com/gooxml/color"
	"baliance.com/gooxml/schema/soo/dml"
	"baliance.com/gooxml/schema/soo/pml"

	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/models"
	"github.com/christineastoria/custom-slide-annotation/units"
)

// Options configures a Reader or Writer.
type Options struct {
	// Logger receives one line per dropped shape or defaulted field. Nil
	// disables logging.
	Logger func(string)
}

// Read converts deck bytes into a Document. See Reader.Read.
func Read(data []byte) *models.Document {
	return NewReader(Options{}).Read(data)
}

// Write converts a Document into deck bytes. See Writer.Write.
func Write(doc *models.Document) ([]byte, error) {
	return NewWriter(Options{}).Write(doc)
}

// drawingColor converts c for the gooxml drawing wrappers.
func drawingColor(c hexcolor.RGB) color.Color {
	return color.RGB(c.R, c.G, c.B)
}

// solidFill builds an sRGB solid fill. Slide backgrounds have no drawing
// wrapper, so they are built from the schema types.
func solidFill(c hexcolor.RGB) *dml.CT_SolidColorFillProperties {
	sf := dml.NewCT_SolidColorFillProperties()
	sf.SrgbClr = dml.NewCT_SRgbColor()
	sf.SrgbClr.ValAttr = c.Container()
	return sf
}

// solidFillColor returns the sRGB color of a solid fill. Scheme, system and
// preset colors are reported as absent.
func solidFillColor(sf *dml.CT_SolidColorFillProperties) (hexcolor.RGB, bool) {
	if sf == nil || sf.SrgbClr == nil {
		return hexcolor.RGB{}, false
	}
	c, err := hexcolor.Decode(sf.SrgbClr.ValAttr)
	if err != nil {
		return hexcolor.RGB{}, false
	}
	return c, true
}

func alignToContainer(a models.Align) dml.ST_TextAlignType {
	switch a.Normalized() {
	case models.AlignCenter:
		return dml.ST_TextAlignTypeCtr
	case models.AlignRight:
		return dml.ST_TextAlignTypeR
	}
	return dml.ST_TextAlignTypeL
}

func alignFromContainer(a dml.ST_TextAlignType) models.Align {
	switch a {
	case dml.ST_TextAlignTypeCtr:
		return models.AlignCenter
	case dml.ST_TextAlignTypeR:
		return models.AlignRight
	}
	return models.AlignLeft
}

// setTransform writes the shape offset and extent in EMU. Negative sizes are
// clamped to zero.
func setTransform(spPr *dml.CT_ShapeProperties, x, y, w, h float64) {
	xfrm := dml.NewCT_Transform2D()
	xfrm.Off = dml.NewCT_Point2D()
	xfrm.Off.XAttr.ST_CoordinateUnqualified = gooxml.Int64(units.ToEMU(x))
	xfrm.Off.YAttr.ST_CoordinateUnqualified = gooxml.Int64(units.ToEMU(y))
	xfrm.Ext = dml.NewCT_PositiveSize2D()
	xfrm.Ext.CxAttr = units.ToEMU(math.Max(w, 0))
	xfrm.Ext.CyAttr = units.ToEMU(math.Max(h, 0))
	spPr.Xfrm = xfrm
}

func coordinate(c dml.ST_Coordinate) int64 {
	if c.ST_CoordinateUnqualified == nil {
		return 0
	}
	return *c.ST_CoordinateUnqualified
}

// affine maps child EMU coordinates of a group into slide EMU coordinates,
// per axis: slide = scale*child + shift.
type affine struct {
	sx, bx float64
	sy, by float64
}

var identity = affine{sx: 1, sy: 1}

func (a affine) then(parent affine) affine {
	return affine{
		sx: parent.sx * a.sx, bx: parent.sx*a.bx + parent.bx,
		sy: parent.sy * a.sy, by: parent.sy*a.by + parent.by,
	}
}

// groupAffine is the child-to-parent mapping declared by a group's xfrm.
func groupAffine(grp *pml.CT_GroupShape) affine {
	if grp == nil || grp.GrpSpPr == nil || grp.GrpSpPr.Xfrm == nil {
		return identity
	}
	xfrm := grp.GrpSpPr.Xfrm
	var offX, offY, chOffX, chOffY float64
	var extX, extY, chExtX, chExtY float64
	if xfrm.Off != nil {
		offX, offY = float64(coordinate(xfrm.Off.XAttr)), float64(coordinate(xfrm.Off.YAttr))
	}
	if xfrm.ChOff != nil {
		chOffX, chOffY = float64(coordinate(xfrm.ChOff.XAttr)), float64(coordinate(xfrm.ChOff.YAttr))
	}
	if xfrm.Ext != nil {
		extX, extY = float64(xfrm.Ext.CxAttr), float64(xfrm.Ext.CyAttr)
	}
	if xfrm.ChExt != nil {
		chExtX, chExtY = float64(xfrm.ChExt.CxAttr), float64(xfrm.ChExt.CyAttr)
	}
	a := affine{sx: 1, sy: 1}
	if chExtX > 0 && extX > 0 {
		a.sx = extX / chExtX
	}
	if chExtY > 0 && extY > 0 {
		a.sy = extY / chExtY
	}
	a.bx = offX - a.sx*chOffX
	a.by = offY - a.sy*chOffY
	return a
}

// geometry returns the shape's x, y, width and height in pixels. Missing
// transform parts read as zero.
func (a affine) geometry(spPr *dml.CT_ShapeProperties) (x, y, w, h float64) {
	if spPr == nil {
		return a.frame(nil)
	}
	return a.frame(spPr.Xfrm)
}

func (a affine) frame(xfrm *dml.CT_Transform2D) (x, y, w, h float64) {
	var offX, offY, cx, cy int64
	if xfrm != nil {
		if off := xfrm.Off; off != nil {
			offX, offY = coordinate(off.XAttr), coordinate(off.YAttr)
		}
		if ext := xfrm.Ext; ext != nil {
			cx, cy = ext.CxAttr, ext.CyAttr
		}
	}
	if a == identity {
		return units.ToPixels(offX), units.ToPixels(offY), units.ToPixels(cx), units.ToPixels(cy)
	}
	px := func(v float64) float64 { return units.ToPixels(int64(math.Round(v))) }
	return px(a.sx*float64(offX) + a.bx), px(a.sy*float64(offY) + a.by),
		px(a.sx * float64(cx)), px(a.sy * float64(cy))
}
