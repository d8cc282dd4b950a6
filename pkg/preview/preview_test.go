package preview

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/inkframe/pkg/compose"
	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/template"
	"github.com/matzehuels/inkframe/pkg/widget"
)

func testPage() Page {
	one := 1
	return Page{
		Number: 1,
		Canvas: geom.Canvas{Width: 200, Height: 100, Margins: geom.Uniform(10)},
		Widgets: []widget.Widget{
			{ID: "rule", Kind: widget.KindDivider, Position: geom.Position{X: 10, Y: 5, Width: 180, Height: 2}, Props: widget.DividerProps{}},
			{ID: "todo", Kind: widget.KindCheckbox, Page: &one, Position: geom.Position{X: 20, Y: 20, Width: 80, Height: 16},
				Props: widget.CheckboxProps{BoxSize: 12, Label: "Buy <milk>"}},
			{ID: "notes", Kind: widget.KindLines, Page: &one, Position: geom.Position{X: 20, Y: 40, Width: 160, Height: 50},
				Props: widget.LinesProps{LineSpacing: 10}},
			{ID: "shade", Kind: widget.KindBox, Page: &one, Position: geom.Position{X: 120, Y: 20, Width: 40, Height: 10},
				Props: widget.BoxProps{Fill: "#808080"}},
		},
		Warnings: []constraints.Warning{
			{WidgetID: "todo", Kind: widget.KindCheckbox, Field: constraints.FieldTouchTarget, Message: "touch target 16.0pt is below the 28.0pt minimum"},
		},
		Guides: []Guide{{Axis: GuideX, At: 20}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testPage(), WithMargins(), WithLabels(), WithWarnings(), WithGuides(), WithScale(2)))

	wants := []string{
		`viewBox="0 0 200.0 100.0" width="400" height="200"`,
		`class="safe-area"`,
		`class="checkbox"`,
		`Buy &lt;milk&gt;`,
		`class="warning"`,
		`touch target 16.0pt`,
		`class="guide"`,
		`fill="#808080"`,
		`checkbox todo`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGOptionsOff(t *testing.T) {
	svg := string(RenderSVG(testPage()))
	for _, absent := range []string{`class="safe-area"`, `class="warning"`, `class="guide"`, `class="label"`} {
		if strings.Contains(svg, absent) {
			t.Errorf("SVG should not contain %s without its option", absent)
		}
	}
}

func TestMasterWidgetsAreDashed(t *testing.T) {
	shapes := widgetShapes(testPage().Widgets[0], true)
	if !shapes[0].dashed || shapes[0].stroke != colorMaster {
		t.Errorf("master outline = %+v, want dashed %s", shapes[0], colorMaster)
	}
	shapes = widgetShapes(testPage().Widgets[1], false)
	if shapes[0].dashed || shapes[0].stroke != colorInk {
		t.Errorf("page outline = %+v, want solid %s", shapes[0], colorInk)
	}
}

func TestLinesDecoration(t *testing.T) {
	shapes := widgetShapes(testPage().Widgets[2], false)
	lines := 0
	for _, s := range shapes {
		if s.kind == shapeLine {
			lines++
		}
	}
	// 50pt tall at 10pt spacing: rules at 10, 20, 30, 40.
	if lines != 4 {
		t.Errorf("lines = %d, want 4", lines)
	}
}

func TestFromTemplate(t *testing.T) {
	one := 1
	tmpl := template.Template{
		Name:      "t",
		PageCount: 2,
		Canvas:    geom.Canvas{Width: 100, Height: 100},
		Widgets: []widget.Widget{
			{ID: "title", Kind: widget.KindText, Page: &one, Position: geom.Position{X: 1, Y: 1, Width: 10, Height: 10}, Props: widget.TextProps{}},
			{ID: "over", Kind: widget.KindText, Page: &one, Position: geom.Position{X: 1, Y: 20, Width: 10, Height: 10}, Props: widget.TextProps{}},
		},
		Masters: []compose.Master{{ID: "m", Name: "Header", Widgets: []widget.Widget{
			{ID: "rule", Kind: widget.KindDivider, Position: geom.Position{Width: 100, Height: 1}, Props: widget.DividerProps{}},
			{ID: "over", Kind: widget.KindText, Position: geom.Position{Width: 10, Height: 10}, Props: widget.TextProps{}},
		}}},
		PageAssignments: []compose.Assignment{{Page: 1, MasterID: "m"}},
	}

	p := FromTemplate(tmpl, 1)
	if len(p.Widgets) != 3 {
		t.Fatalf("widgets = %d, want 3", len(p.Widgets))
	}
	if len(p.MasterWidgets) != 1 || p.MasterWidgets[0] != "rule" {
		t.Errorf("MasterWidgets = %v, want [rule]", p.MasterWidgets)
	}
	if !p.fromMaster(p.Widgets[0]) || p.fromMaster(p.Widgets[2]) {
		t.Error("fromMaster misclassified widgets")
	}

	if p := FromTemplate(tmpl, 2); len(p.Widgets) != 0 || p.MasterWidgets != nil {
		t.Errorf("unassigned page = %+v", p)
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		lo, hi, step float64
		want         int
	}{
		{0, 50, 10, 4},
		{0, 55, 10, 5},
		{0, 50, 0, 0},
		{10, 5, 1, 0},
		{0, 1e6, 1, maxRules},
	}
	for _, tt := range tests {
		if got := len(steps(tt.lo, tt.hi, tt.step)); got != tt.want {
			t.Errorf("steps(%v, %v, %v) = %d values, want %d", tt.lo, tt.hi, tt.step, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100, 6); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	// 18pt at 6pt text fits 5 characters.
	if got := truncate("checkbox todo", 18, 6); got != "che.." {
		t.Errorf("truncate = %q, want che..", got)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testPage(), WithScale(2), WithLabels())
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("size = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}

func TestRenderPNGQuantized(t *testing.T) {
	data, err := RenderPNG(testPage(), WithQuantize(2))
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("quantized image type = %T, want *image.Gray", img)
	}
	for _, v := range gray.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel value %d with 2 levels", v)
		}
	}
}

func TestRenderPNGInvalidCanvas(t *testing.T) {
	p := testPage()
	p.Canvas.Width = 0
	if _, err := RenderPNG(p); err == nil {
		t.Error("expected error for invalid canvas")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(Page{Number: 3, Canvas: geom.Canvas{Width: 10, Height: 10}})
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}
	var out struct {
		Page    int               `json:"page"`
		Widgets []json.RawMessage `json:"widgets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Page != 3 || out.Widgets == nil {
		t.Errorf("RenderJSON = %s", data)
	}
}

func TestInkColor(t *testing.T) {
	if c, ok := inkColor("#ff0000"); !ok || c == nil {
		t.Error("hex color should parse")
	}
	if _, ok := inkColor("gray"); !ok {
		t.Error("named gray should parse")
	}
	if _, ok := inkColor("none"); ok {
		t.Error("none should not paint")
	}
	if _, ok := inkColor(""); ok {
		t.Error("empty should not paint")
	}
}
