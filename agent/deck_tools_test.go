package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/tool"

	"github.com/christineastoria/custom-slide-annotation/builder"
	"github.com/christineastoria/custom-slide-annotation/deck"
)

func invoke(t *testing.T, tools []tool.BaseTool, name, args string) string {
	t.Helper()
	inv, ok := FindTool(tools, name)
	if !ok {
		t.Fatalf("tool %s not found", name)
	}
	out, err := inv.InvokableRun(context.Background(), args)
	if err != nil {
		t.Fatalf("%s(%s) failed: %v", name, args, err)
	}
	return out
}

func TestToolInfo(t *testing.T) {
	tools := NewDeckTools(builder.NewSession(""), nil)
	want := []string{
		"create_presentation", "add_slide", "set_current_slide", "add_title_text",
		"add_body_text", "add_slide_number", "add_metric_card", "add_subtitle",
		"finalize_presentation",
	}
	if len(tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(tools))
	}
	for i, tl := range tools {
		info, err := tl.Info(context.Background())
		if err != nil {
			t.Fatalf("Info failed: %v", err)
		}
		if info.Name != want[i] {
			t.Errorf("tool %d: expected %s, got %s", i, want[i], info.Name)
		}
		if info.Desc == "" || info.ParamsOneOf == nil {
			t.Errorf("tool %s lacks description or params", info.Name)
		}
		if _, err := info.ParamsOneOf.ToJSONSchema(); err != nil {
			t.Errorf("tool %s params do not convert to JSON schema: %v", info.Name, err)
		}
	}
}

func TestBuildDeckThroughTools(t *testing.T) {
	session := builder.NewSession("")
	var logs []string
	tools := NewDeckTools(session, func(msg string) { logs = append(logs, msg) })

	if out := invoke(t, tools, "create_presentation", `{"title":"Q3 Results"}`); !strings.Contains(out, "Q3 Results") {
		t.Errorf("unexpected create result %q", out)
	}
	if out := invoke(t, tools, "add_slide", `{}`); out != "Added slide 1 with background #0f172a" {
		t.Errorf("unexpected add_slide result %q", out)
	}
	invoke(t, tools, "add_slide", `{"background_color":"#FFFFFF"}`)
	if out := invoke(t, tools, "create_presentation", `{"title":"Other"}`); !strings.Contains(out, "already exists") {
		t.Errorf("expected existing presentation message, got %q", out)
	}

	invoke(t, tools, "add_title_text", `{"text":"Revenue","slide_num":1}`)
	invoke(t, tools, "add_metric_card", `{"label":"ARR","value":"$12M","trend":"up","x_inches":1,"y_inches":2}`)
	if out := invoke(t, tools, "add_slide_number", ``); out != "Added slide number: 1" {
		t.Errorf("unexpected slide number result %q", out)
	}
	long := strings.Repeat("a", 80)
	if out := invoke(t, tools, "add_body_text", `{"text":"`+long+`","slide_num":2}`); !strings.HasSuffix(out, "...'") {
		t.Errorf("expected truncated body text, got %q", out)
	}

	doc := session.Document()
	if len(doc.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(doc.Slides))
	}
	if n := len(doc.Slides[0].Shapes); n != 6 {
		t.Errorf("expected title, card (4) and slide number on slide 1, got %d shapes", n)
	}
	if bg := doc.Slides[1].BackgroundColor; bg != "#ffffff" {
		t.Errorf("expected normalized background, got %s", bg)
	}
	title := doc.Slides[0].Shapes[0]
	if *title.FontSize != 48 || !title.FontStyle.Bold {
		t.Errorf("expected title defaults to survive partial arguments, got %+v", title)
	}

	out := invoke(t, tools, "finalize_presentation", `{}`)
	if !strings.HasPrefix(out, "Presentation finalized: 2 slides") {
		t.Errorf("unexpected finalize result %q", out)
	}
	read := deck.Read(session.Output())
	if read.Error != "" || len(read.Slides) != 2 {
		t.Errorf("finalized deck did not read back: %+v", read)
	}
	if len(logs) == 0 {
		t.Error("expected tool calls to be logged")
	}
}

func TestBuilderErrorsAreResults(t *testing.T) {
	session := builder.NewSession("deck")
	tools := NewDeckTools(session, nil)

	if out := invoke(t, tools, "add_title_text", `{"text":"x"}`); !strings.HasPrefix(out, "Error: No slide available") {
		t.Errorf("unexpected result %q", out)
	}
	if out := invoke(t, tools, "set_current_slide", `{"slide_num":3}`); out != "Error: slide_num 3 out of range. Have 0 slides." {
		t.Errorf("unexpected result %q", out)
	}
	if out := invoke(t, tools, "finalize_presentation", ``); out != "Error: No slides added to presentation." {
		t.Errorf("unexpected result %q", out)
	}
}

func TestMalformedArgumentsFail(t *testing.T) {
	tools := NewDeckTools(builder.NewSession("deck"), nil)
	inv, _ := FindTool(tools, "add_slide")
	if _, err := inv.InvokableRun(context.Background(), `{"background_color":`); err == nil {
		t.Error("expected malformed JSON to fail")
	}
	inv, _ = FindTool(tools, "set_current_slide")
	if _, err := inv.InvokableRun(context.Background(), `{"slide_num":"two"}`); err == nil {
		t.Error("expected wrong argument type to fail")
	}
	if _, ok := FindTool(tools, "delete_everything"); ok {
		t.Error("expected unknown tool lookup to fail")
	}
}
