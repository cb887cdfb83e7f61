package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/christineastoria/custom-slide-annotation/builder"
	"github.com/christineastoria/custom-slide-annotation/hexcolor"
	"github.com/christineastoria/custom-slide-annotation/i18n"
)

// DeckTool is one deck-building operation exposed to the model. Builder
// failures come back as result text so the model can correct itself; only
// malformed arguments are returned as errors.
type DeckTool struct {
	name    string
	desc    string
	params  map[string]*schema.ParameterInfo
	session *builder.Session
	logger  func(string)
	run     func(s *builder.Session, args []byte) (string, error)
}

var _ tool.InvokableTool = (*DeckTool)(nil)

// Info returns tool information for the LLM
func (t *DeckTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        t.name,
		Desc:        t.desc,
		ParamsOneOf: schema.NewParamsOneOfByParams(t.params),
	}, nil
}

// InvokableRun decodes the JSON arguments and applies them to the session.
func (t *DeckTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	args := []byte(strings.TrimSpace(argumentsInJSON))
	if len(args) == 0 {
		args = []byte("{}")
	}
	result, err := t.run(t.session, args)
	if err != nil {
		t.log("[DECK-TOOL] %s: %v", t.name, err)
		return "", err
	}
	t.log("[DECK-TOOL] %s: %s", t.name, result)
	return result, nil
}

func (t *DeckTool) log(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger(fmt.Sprintf(format, args...))
	}
}

// Name returns the tool name without building the full ToolInfo.
func (t *DeckTool) Name() string { return t.name }

// NewDeckTools returns one tool per builder operation, all bound to session.
func NewDeckTools(session *builder.Session, logger func(string)) []tool.BaseTool {
	defs := []*DeckTool{
		createPresentationTool(),
		addSlideTool(),
		setCurrentSlideTool(),
		addTitleTextTool(),
		addBodyTextTool(),
		addSlideNumberTool(),
		addMetricCardTool(),
		addSubtitleTool(),
		finalizePresentationTool(),
	}
	tools := make([]tool.BaseTool, 0, len(defs))
	for _, d := range defs {
		d.session = session
		d.logger = logger
		tools = append(tools, d)
	}
	return tools
}

// FindTool returns the invokable tool called name.
func FindTool(tools []tool.BaseTool, name string) (tool.InvokableTool, bool) {
	for _, t := range tools {
		inv, ok := t.(tool.InvokableTool)
		if !ok {
			continue
		}
		if dt, ok := t.(*DeckTool); ok {
			if dt.name == name {
				return inv, true
			}
			continue
		}
		info, err := t.Info(context.Background())
		if err == nil && info.Name == name {
			return inv, true
		}
	}
	return nil, false
}

func decode(args []byte, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("failed to parse input: %v", err)
	}
	return nil
}

// describe turns a builder error into tool result text.
func describe(s *builder.Session, slide int, err error) string {
	switch {
	case errors.Is(err, builder.ErrNoSlide):
		return i18n.T("tool.no_slide")
	case errors.Is(err, builder.ErrSlideOutOfRange):
		return i18n.T("tool.slide_out_of_range", slide, s.SlideCount())
	case errors.Is(err, builder.ErrFinalized):
		return i18n.T("tool.already_finalized")
	case errors.Is(err, builder.ErrEmptyDeck):
		return i18n.T("tool.empty_deck")
	}
	return i18n.T("tool.failed", err.Error())
}

func slideOf(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// preview shortens long text for result messages.
func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

var slideNumParam = &schema.ParameterInfo{
	Type: schema.Integer,
	Desc: "Optional 1-based slide to target; becomes the current slide",
}

func inches(desc string) *schema.ParameterInfo {
	return &schema.ParameterInfo{Type: schema.Number, Desc: desc}
}

func createPresentationTool() *DeckTool {
	return &DeckTool{
		name: "create_presentation",
		desc: "Create a new PowerPoint presentation. Must be called first before adding slides.",
		params: map[string]*schema.ParameterInfo{
			"title": {Type: schema.String, Desc: "Presentation title", Required: true},
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			var in struct {
				Title string `json:"title"`
			}
			if err := decode(args, &in); err != nil {
				return "", err
			}
			if !s.Restart(in.Title) {
				return i18n.T("tool.presentation_exists"), nil
			}
			return i18n.T("tool.presentation_created", in.Title), nil
		},
	}
}

func addSlideTool() *DeckTool {
	return &DeckTool{
		name: "add_slide",
		desc: "Add a new blank slide to the presentation. Sets it as the current slide.",
		params: map[string]*schema.ParameterInfo{
			"background_color": {Type: schema.String, Desc: "Background hex color, default #0f172a"},
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			in := struct {
				Background string `json:"background_color"`
			}{Background: hexcolor.DefaultBackground.Hex()}
			if err := decode(args, &in); err != nil {
				return "", err
			}
			n, err := s.AddSlide(in.Background)
			if err != nil {
				return describe(s, 0, err), nil
			}
			return i18n.T("tool.slide_added", n, hexcolor.Normalize(in.Background, hexcolor.DefaultBackground)), nil
		},
	}
}

func setCurrentSlideTool() *DeckTool {
	return &DeckTool{
		name: "set_current_slide",
		desc: "Select which slide subsequent elements are added to (1-indexed).",
		params: map[string]*schema.ParameterInfo{
			"slide_num": {Type: schema.Integer, Desc: "1-based slide number", Required: true},
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			var in struct {
				Slide int `json:"slide_num"`
			}
			if err := decode(args, &in); err != nil {
				return "", err
			}
			if err := s.SetCurrentSlide(in.Slide); err != nil {
				return describe(s, in.Slide, err), nil
			}
			return i18n.T("tool.current_slide_set", in.Slide), nil
		},
	}
}

func addTitleTextTool() *DeckTool {
	return &DeckTool{
		name: "add_title_text",
		desc: "Add a large title text to the selected/current slide.",
		params: map[string]*schema.ParameterInfo{
			"text":         {Type: schema.String, Desc: "Title text", Required: true},
			"x_inches":     inches("Left edge in inches, default 0.5"),
			"y_inches":     inches("Top edge in inches, default 2.5"),
			"width_inches": inches("Width in inches, default 12.333"),
			"font_size":    {Type: schema.Number, Desc: "Font size in points, default 48"},
			"font_color":   {Type: schema.String, Desc: "Hex color, default #f8fafc"},
			"bold":         {Type: schema.Boolean, Desc: "Bold, default true"},
			"center":       {Type: schema.Boolean, Desc: "Center align, default true"},
			"slide_num":    slideNumParam,
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			opts := builder.DefaultTitleOptions()
			if err := decode(args, &opts); err != nil {
				return "", err
			}
			if _, err := s.AddTitleText(opts); err != nil {
				return describe(s, slideOf(opts.Slide), err), nil
			}
			return i18n.T("tool.title_added", opts.Text), nil
		},
	}
}

func addBodyTextTool() *DeckTool {
	return &DeckTool{
		name: "add_body_text",
		desc: "Add body/paragraph text to the selected/current slide.",
		params: map[string]*schema.ParameterInfo{
			"text":         {Type: schema.String, Desc: "Body text", Required: true},
			"x_inches":     inches("Left edge in inches, default 0.5"),
			"y_inches":     inches("Top edge in inches, default 1.5"),
			"width_inches": inches("Width in inches, default 12"),
			"font_size":    {Type: schema.Number, Desc: "Font size in points, default 16"},
			"font_color":   {Type: schema.String, Desc: "Hex color, default #94a3b8"},
			"slide_num":    slideNumParam,
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			opts := builder.DefaultBodyOptions()
			if err := decode(args, &opts); err != nil {
				return "", err
			}
			if _, err := s.AddBodyText(opts); err != nil {
				return describe(s, slideOf(opts.Slide), err), nil
			}
			return i18n.T("tool.body_added", preview(opts.Text, 50)), nil
		},
	}
}

func addSlideNumberTool() *DeckTool {
	return &DeckTool{
		name: "add_slide_number",
		desc: "Add a slide number label to the selected/current slide. If slide_num is provided, it targets that slide; the label uses that slide's number.",
		params: map[string]*schema.ParameterInfo{
			"x_inches":  inches("Left edge in inches, default 0.5"),
			"y_inches":  inches("Top edge in inches, default 0.4"),
			"slide_num": slideNumParam,
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			opts := builder.DefaultSlideNumberOptions()
			if err := decode(args, &opts); err != nil {
				return "", err
			}
			n, err := s.AddSlideNumber(opts)
			if err != nil {
				return describe(s, slideOf(opts.Slide), err), nil
			}
			return i18n.T("tool.slide_number_added", n), nil
		},
	}
}

func addMetricCardTool() *DeckTool {
	return &DeckTool{
		name: "add_metric_card",
		desc: "Add a styled metric card showing a KPI with trend indicator to the selected/current slide.",
		params: map[string]*schema.ParameterInfo{
			"label":         {Type: schema.String, Desc: "Metric label", Required: true},
			"value":         {Type: schema.String, Desc: "Metric value", Required: true},
			"trend":         {Type: schema.String, Desc: "up, down or flat", Required: true, Enum: []string{"up", "down", "flat"}},
			"x_inches":      {Type: schema.Number, Desc: "Left edge in inches", Required: true},
			"y_inches":      {Type: schema.Number, Desc: "Top edge in inches", Required: true},
			"width_inches":  inches("Card width in inches, default 2.8"),
			"height_inches": inches("Card height in inches, default 1.3"),
			"slide_num":     slideNumParam,
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			opts := builder.DefaultMetricCardOptions()
			if err := decode(args, &opts); err != nil {
				return "", err
			}
			if _, err := s.AddMetricCard(opts); err != nil {
				return describe(s, slideOf(opts.Slide), err), nil
			}
			return i18n.T("tool.metric_card_added", opts.Label, opts.Value, opts.Trend), nil
		},
	}
}

func addSubtitleTool() *DeckTool {
	return &DeckTool{
		name: "add_subtitle",
		desc: "Add a subtle subtitle/footer text to the selected/current slide.",
		params: map[string]*schema.ParameterInfo{
			"text":       {Type: schema.String, Desc: "Subtitle text", Required: true},
			"x_inches":   inches("Left edge in inches, default 0.5"),
			"y_inches":   inches("Top edge in inches, default 4.2"),
			"font_color": {Type: schema.String, Desc: "Hex color, default #64748b"},
			"slide_num":  slideNumParam,
		},
		run: func(s *builder.Session, args []byte) (string, error) {
			opts := builder.DefaultSubtitleOptions()
			if err := decode(args, &opts); err != nil {
				return "", err
			}
			if _, err := s.AddSubtitle(opts); err != nil {
				return describe(s, slideOf(opts.Slide), err), nil
			}
			return i18n.T("tool.subtitle_added", opts.Text), nil
		},
	}
}

func finalizePresentationTool() *DeckTool {
	return &DeckTool{
		name:   "finalize_presentation",
		desc:   "Finalize and return the completed PowerPoint presentation.",
		params: map[string]*schema.ParameterInfo{},
		run: func(s *builder.Session, args []byte) (string, error) {
			data, err := s.Finalize()
			if err != nil {
				return describe(s, 0, err), nil
			}
			return i18n.T("tool.finalized", s.SlideCount(), len(data)), nil
		},
	}
}
