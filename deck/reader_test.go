package deck

import (
	"strings"
	"testing"

	"baliance.com/gooxml"
	"baliance.com/gooxml/schema/soo/dml"
	"baliance.com/gooxml/schema/soo/pml"

	"github.com/christineastoria/custom-slide-annotation/models"
)

func TestReadGarbageReturnsErrorDocument(t *testing.T) {
	inputs := map[string][]byte{
		"empty":   nil,
		"text":    []byte("definitely not a zip archive"),
		"zip-ish": []byte("PK\x03\x04 truncated"),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			doc := Read(data)
			if doc == nil {
				t.Fatal("expected a document")
			}
			if doc.Error == "" {
				t.Error("expected error to be set")
			}
			if doc.Width != 1280 || doc.Height != 720 {
				t.Errorf("expected 1280x720, got %vx%v", doc.Width, doc.Height)
			}
			if doc.Slides == nil || len(doc.Slides) != 0 {
				t.Errorf("expected empty non-nil slides, got %v", doc.Slides)
			}
		})
	}
}

func newShape(id uint32, name string) *pml.CT_Shape {
	sp := pml.NewCT_Shape()
	identify(sp, id, name)
	if sp.SpPr == nil {
		sp.SpPr = dml.NewCT_ShapeProperties()
	}
	return sp
}

func treeOf(shapes ...*pml.CT_Shape) *pml.CT_GroupShape {
	tree := pml.NewCT_GroupShape()
	for _, sp := range shapes {
		choice := pml.NewCT_GroupShapeChoice()
		choice.Sp = append(choice.Sp, sp)
		tree.Choice = append(tree.Choice, choice)
	}
	return tree
}

func TestMalformedShapeIsDroppedAlone(t *testing.T) {
	good := newShape(7, "Good")
	setTransform(good.SpPr, 10, 20, 30, 40)

	broken := pml.NewCT_Shape()
	broken.NvSpPr = nil

	sld := pml.NewSld()
	if sld.CSld == nil {
		sld.CSld = pml.NewCT_CommonSlideData()
	}
	sld.CSld.SpTree = treeOf(broken, good)

	var logs []string
	r := NewReader(Options{Logger: func(msg string) { logs = append(logs, msg) }})
	slide := r.readSlide(sld, 3)

	if slide.ID != "slide-3" || slide.Index != 3 {
		t.Errorf("unexpected slide identity %s/%d", slide.ID, slide.Index)
	}
	if slide.BackgroundColor != "#0f172a" {
		t.Errorf("expected default background, got %s", slide.BackgroundColor)
	}
	if len(slide.Shapes) != 1 {
		t.Fatalf("expected only the good shape, got %d", len(slide.Shapes))
	}
	if slide.Shapes[0].ID != "7" || slide.Shapes[0].Name != "Good" {
		t.Errorf("unexpected surviving shape %+v", slide.Shapes[0])
	}
	if len(logs) == 0 {
		t.Error("expected the dropped shape to be logged")
	}
}

func TestExtractShapeWithoutNonVisualProperties(t *testing.T) {
	r := NewReader(Options{})
	for _, sp := range []*pml.CT_Shape{nil, {}, {NvSpPr: &pml.CT_ShapeNonVisual{}}} {
		if _, ok := r.extractShape(sp, identity); ok {
			t.Errorf("expected shape %+v to be dropped", sp)
		}
	}
}

func paragraph(runs ...*dml.EG_TextRun) *dml.CT_TextParagraph {
	p := dml.NewCT_TextParagraph()
	p.EG_TextRun = runs
	return p
}

func textRun(text string, rpr *dml.CT_TextCharacterProperties) *dml.EG_TextRun {
	run := dml.NewEG_TextRun()
	run.R = dml.NewCT_RegularTextRun()
	run.R.T = text
	run.R.RPr = rpr
	return run
}

func TestFrameTextJoinsParagraphsAndBreaks(t *testing.T) {
	br := dml.NewEG_TextRun()
	br.Br = dml.NewCT_TextLineBreak()
	fld := dml.NewEG_TextRun()
	fld.Fld = dml.NewCT_TextField()
	fld.Fld.T = gooxml.String("12")

	body := dml.NewCT_TextBody()
	body.P = []*dml.CT_TextParagraph{
		paragraph(textRun("Hello ", nil), textRun("world", nil)),
		paragraph(textRun("line", nil), br, textRun("break", nil)),
		paragraph(textRun("Slide ", nil), fld),
	}

	want := "Hello world\nline\nbreak\nSlide 12"
	if got := frameText(body); got != want {
		t.Errorf("frameText = %q, want %q", got, want)
	}
	if got := frameText(nil); got != "" {
		t.Errorf("frameText(nil) = %q", got)
	}
}

func TestTextStyleComesFromFirstRun(t *testing.T) {
	first := dml.NewCT_TextCharacterProperties()
	first.SzAttr = gooxml.Int32(2800)
	first.BAttr = gooxml.Bool(true)
	first.SolidFill = solidFill(mustDecode(t, "#10b981"))

	second := dml.NewCT_TextCharacterProperties()
	second.SzAttr = gooxml.Int32(1000)
	second.IAttr = gooxml.Bool(true)

	sp := newShape(4, "Metric")
	sp.TxBody = dml.NewCT_TextBody()
	p := paragraph(textRun("42", first), textRun("%", second))
	p.PPr = dml.NewCT_TextParagraphProperties()
	p.PPr.AlgnAttr = dml.ST_TextAlignTypeR
	sp.TxBody.P = []*dml.CT_TextParagraph{p}

	shape, ok := NewReader(Options{}).extractShape(sp, identity)
	if !ok {
		t.Fatal("expected shape to be extracted")
	}
	if shape.Text != "42%" {
		t.Errorf("expected all runs in text, got %q", shape.Text)
	}
	if models.FloatOr(shape.FontSize, 0) != 28 {
		t.Errorf("expected 28pt from first run, got %v", models.FloatOr(shape.FontSize, 0))
	}
	if shape.FontStyle.String() != "bold" {
		t.Errorf("expected bold only, got %s", shape.FontStyle)
	}
	if models.StringOr(shape.Fill, "") != "#10b981" {
		t.Errorf("expected #10b981, got %s", models.StringOr(shape.Fill, ""))
	}
	if shape.Align != models.AlignRight {
		t.Errorf("expected right, got %s", shape.Align)
	}
}

func TestEmptyShapesReadAsRects(t *testing.T) {
	r := NewReader(Options{})

	emptyBox := newShape(2, "Empty")
	emptyBox.NvSpPr.CNvSpPr.TxBoxAttr = gooxml.Bool(true)
	emptyBox.TxBody = dml.NewCT_TextBody()
	emptyBox.TxBody.P = []*dml.CT_TextParagraph{paragraph(textRun("   ", nil))}

	placeholder := newShape(3, "Title Placeholder")
	placeholder.NvSpPr.NvPr.Ph = pml.NewCT_Placeholder()

	autoShape := newShape(4, "Shape")

	for _, sp := range []*pml.CT_Shape{emptyBox, placeholder, autoShape} {
		shape, ok := r.extractShape(sp, identity)
		if !ok || shape.Type != models.ShapeRect {
			t.Errorf("%s: expected rect, got %+v", sp.NvSpPr.CNvPr.NameAttr, shape)
			continue
		}
		if shape.Text != "" {
			t.Errorf("%s: expected no text, got %q", shape.Name, shape.Text)
		}
		if models.StringOr(shape.Fill, "") != "#1e293b" {
			t.Errorf("%s: expected default rect fill, got %s", shape.Name, models.StringOr(shape.Fill, ""))
		}
	}
}

func TestNonShapeElementsReadAsPlaceholders(t *testing.T) {
	frameOf := func(x, y, w, h float64) *dml.CT_ShapeProperties {
		spPr := dml.NewCT_ShapeProperties()
		setTransform(spPr, x, y, w, h)
		return spPr
	}
	props := func(id uint32, name string) *dml.CT_NonVisualDrawingProps {
		c := dml.NewCT_NonVisualDrawingProps()
		c.IdAttr, c.NameAttr = id, name
		return c
	}

	pic := pml.NewCT_Picture()
	pic.NvPicPr = pml.NewCT_PictureNonVisual()
	pic.NvPicPr.CNvPr = props(10, "Logo")
	pic.SpPr = frameOf(10, 20, 30, 40)

	cxn := pml.NewCT_Connector()
	cxn.NvCxnSpPr = pml.NewCT_ConnectorNonVisual()
	cxn.NvCxnSpPr.CNvPr = props(11, "Arrow")
	cxn.SpPr = frameOf(50, 60, 70, 0)

	chart := pml.NewCT_GraphicalObjectFrame()
	chart.NvGraphicFramePr = pml.NewCT_GraphicalObjectFrameNonVisual()
	chart.NvGraphicFramePr.CNvPr = props(12, "Chart")
	chart.Xfrm = frameOf(96, 96, 480, 270).Xfrm

	broken := &pml.CT_Picture{}

	tree := pml.NewCT_GroupShape()
	for _, c := range []*pml.CT_GroupShapeChoice{
		{Pic: []*pml.CT_Picture{pic}},
		{Pic: []*pml.CT_Picture{broken}},
		{CxnSp: []*pml.CT_Connector{cxn}},
		{GraphicFrame: []*pml.CT_GraphicalObjectFrame{chart}},
	} {
		tree.Choice = append(tree.Choice, c)
	}

	var logs []string
	var shapes []models.Shape
	NewReader(Options{Logger: func(msg string) { logs = append(logs, msg) }}).walk(tree, identity, &shapes)

	want := []struct {
		id, name   string
		x, y, w, h float64
	}{
		{"10", "Logo", 10, 20, 30, 40},
		{"11", "Arrow", 50, 60, 70, 0},
		{"12", "Chart", 96, 96, 480, 270},
	}
	if len(shapes) != len(want) {
		t.Fatalf("expected %d placeholders, got %d", len(want), len(shapes))
	}
	for i, w := range want {
		got := shapes[i]
		if got.ID != w.id || got.Name != w.name || got.Type != models.ShapeRect {
			t.Errorf("placeholder %d: unexpected identity %+v", i, got)
		}
		x, y, width, height := got.Geometry()
		if x != w.x || y != w.y || width != w.w || height != w.h {
			t.Errorf("%s: expected %v,%v %vx%v, got %v,%v %vx%v", w.name, w.x, w.y, w.w, w.h, x, y, width, height)
		}
		if models.StringOr(got.Fill, "") != "#1e293b" {
			t.Errorf("%s: expected default rect fill, got %s", w.name, models.StringOr(got.Fill, ""))
		}
	}
	if len(logs) != 1 {
		t.Errorf("expected the broken picture to be logged once, got %v", logs)
	}
}

func TestGroupChildrenAreMappedToSlideSpace(t *testing.T) {
	child := newShape(5, "Child")
	setTransform(child.SpPr, 0, 0, 100, 50)

	grp := pml.NewCT_GroupShape()
	grp.GrpSpPr = dml.NewCT_GroupShapeProperties()
	xfrm := dml.NewCT_GroupTransform2D()
	xfrm.Off = dml.NewCT_Point2D()
	xfrm.Off.XAttr.ST_CoordinateUnqualified = gooxml.Int64(200 * 9525)
	xfrm.Off.YAttr.ST_CoordinateUnqualified = gooxml.Int64(100 * 9525)
	xfrm.Ext = dml.NewCT_PositiveSize2D()
	xfrm.Ext.CxAttr, xfrm.Ext.CyAttr = 200*9525, 100*9525
	xfrm.ChOff = dml.NewCT_Point2D()
	xfrm.ChOff.XAttr.ST_CoordinateUnqualified = gooxml.Int64(0)
	xfrm.ChOff.YAttr.ST_CoordinateUnqualified = gooxml.Int64(0)
	xfrm.ChExt = dml.NewCT_PositiveSize2D()
	xfrm.ChExt.CxAttr, xfrm.ChExt.CyAttr = 100*9525, 50*9525
	grp.GrpSpPr.Xfrm = xfrm
	grp.Choice = treeOf(child).Choice

	root := pml.NewCT_GroupShape()
	choice := pml.NewCT_GroupShapeChoice()
	choice.GrpSp = append(choice.GrpSp, grp)
	root.Choice = append(root.Choice, choice)

	var shapes []models.Shape
	NewReader(Options{}).walk(root, identity, &shapes)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	x, y, w, h := shapes[0].Geometry()
	if x != 200 || y != 100 || w != 200 || h != 100 {
		t.Errorf("expected 200,100 200x100, got %v,%v %vx%v", x, y, w, h)
	}
}

func TestAlignmentMapping(t *testing.T) {
	for _, a := range []models.Align{models.AlignLeft, models.AlignCenter, models.AlignRight} {
		if got := alignFromContainer(alignToContainer(a)); got != a {
			t.Errorf("alignment %s came back as %s", a, got)
		}
	}
	if got := alignFromContainer(dml.ST_TextAlignTypeJust); got != models.AlignLeft {
		t.Errorf("expected justified text to read as left, got %s", got)
	}
	if got := alignToContainer("diagonal"); got != dml.ST_TextAlignTypeL {
		t.Errorf("expected unknown alignment to write as left, got %v", got)
	}
}
