package constraints

import (
	"fmt"
	"testing"

	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/widget"
)

var eink = geom.DeviceConstraints{
	MinFontPt:        10,
	MinStrokePt:      0.5,
	MinTouchTargetPt: 44,
	GrayscaleLevels:  16,
	MaxGrayFillArea:  10000,
}

func TestFloorFor(t *testing.T) {
	tests := []struct {
		floor widget.Floor
		want  float64
	}{
		{widget.FloorNone, 0},
		{widget.FloorFont, 10},
		{widget.FloorStroke, 0.5},
		{widget.FloorTouch, 44},
	}
	for _, tt := range tests {
		if got := FloorFor(tt.floor, eink); got != tt.want {
			t.Errorf("FloorFor(%v) = %v, want %v", tt.floor, got, tt.want)
		}
	}
}

func TestValidateFontSize(t *testing.T) {
	ws := []widget.Widget{{
		ID:       "title",
		Kind:     widget.KindText,
		Position: geom.Position{Width: 200, Height: 40},
		Style:    &widget.Style{FontSize: 16},
		Props:    widget.TextProps{Text: "Notes"},
	}}

	if got := Validate(ws, 1, 1, eink); len(got) != 0 {
		t.Errorf("unscaled text should pass, got %v", got)
	}

	got := Validate(ws, 1, 0.5, eink)
	if len(got) != 1 {
		t.Fatalf("Validate = %v, want one warning", got)
	}
	w := got[0]
	if w.WidgetID != "title" || w.Field != "font_size" || w.Actual != 8 || w.Required != 10 {
		t.Errorf("warning = %+v", w)
	}
	if w.Message != "font size 8.0pt is below the 10.0pt minimum" {
		t.Errorf("Message = %q", w.Message)
	}
}

func TestValidateComparesAtFieldPrecision(t *testing.T) {
	ws := []widget.Widget{{
		ID:       "title",
		Kind:     widget.KindText,
		Position: geom.Position{Width: 200, Height: 40},
		Style:    &widget.Style{FontSize: 12},
		Props:    widget.TextProps{Text: "Notes"},
	}}

	tests := []struct {
		scaleY float64
		want   int
	}{
		{0.83, 0},  // 9.96pt is stored as 10.0pt
		{0.828, 1}, // 9.936pt is stored as 9.9pt
	}
	for _, tt := range tests {
		if got := Validate(ws, 1, tt.scaleY, eink); len(got) != tt.want {
			t.Errorf("Validate(scaleY=%v) = %v, want %d warnings", tt.scaleY, got, tt.want)
		}
	}
}

func TestValidateStrokeUsesMinAxis(t *testing.T) {
	ws := []widget.Widget{{
		ID:       "rule",
		Kind:     widget.KindDivider,
		Position: geom.Position{Width: 400, Height: 1},
		Style:    &widget.Style{LineWidth: 0.8},
		Props:    widget.DividerProps{},
	}}

	got := Validate(ws, 2, 0.5, eink)
	if len(got) != 1 || got[0].Field != "line_width" {
		t.Fatalf("Validate = %v, want line_width warning", got)
	}
	if got[0].Actual != 0.4 {
		t.Errorf("Actual = %v, want 0.4", got[0].Actual)
	}
	if got[0].Message != "line width 0.40pt is below the 0.50pt minimum" {
		t.Errorf("Message = %q", got[0].Message)
	}
}

func TestValidateInteractiveTouchTarget(t *testing.T) {
	ws := []widget.Widget{
		{ID: "cb", Kind: widget.KindCheckbox, Position: geom.Position{Width: 48, Height: 48}, Props: widget.CheckboxProps{BoxSize: 16}},
		{ID: "img", Kind: widget.KindImage, Position: geom.Position{Width: 10, Height: 10}, Props: widget.ImageProps{}},
	}

	got := Validate(ws, 0.5, 0.5, eink)
	var fields []string
	for _, w := range got {
		fields = append(fields, w.WidgetID+"/"+w.Field)
	}
	want := []string{"cb/box_size", "cb/touch_target"}
	if fmt.Sprint(fields) != fmt.Sprint(want) {
		t.Errorf("warnings = %v, want %v", fields, want)
	}
}

func TestValidateCalendarLinkedCells(t *testing.T) {
	cal := widget.Widget{
		ID:       "cal",
		Kind:     widget.KindCalendar,
		Position: geom.Position{Width: 300, Height: 300},
		Props:    widget.CalendarProps{CellMinSize: 30},
	}
	if got := Validate([]widget.Widget{cal}, 1, 1, eink); len(got) != 0 {
		t.Errorf("plain calendar should pass, got %v", got)
	}

	cal.Props = widget.CalendarProps{CellMinSize: 30, LinkDays: true}
	got := Validate([]widget.Widget{cal}, 1, 1, eink)
	if len(got) != 1 || got[0].Required != 44 {
		t.Errorf("linked calendar warnings = %v, want touch floor 44", got)
	}
}

func TestValidateSkipsUnsetFields(t *testing.T) {
	ws := []widget.Widget{{
		ID:       "lines",
		Kind:     widget.KindLines,
		Position: geom.Position{Width: 100, Height: 100},
		Style:    &widget.Style{},
		Props:    widget.LinesProps{},
	}}
	if got := Validate(ws, 0.1, 0.1, eink); len(got) != 0 {
		t.Errorf("unset fields should not warn, got %v", got)
	}
}

func TestValidateGrayFillArea(t *testing.T) {
	box := widget.Widget{
		ID:       "shade",
		Kind:     widget.KindBox,
		Position: geom.Position{Width: 100, Height: 80},
		Props:    widget.BoxProps{Fill: "#cccccc"},
	}

	if got := Validate([]widget.Widget{box}, 1, 1, eink); len(got) != 0 {
		t.Errorf("8000pt² gray fill should pass, got %v", got)
	}

	got := Validate([]widget.Widget{box}, 1.5, 1, eink)
	if len(got) != 1 || got[0].Field != FieldFillArea || got[0].Actual != 12000 {
		t.Errorf("warnings = %v, want fill_area 12000", got)
	}

	box.Props = widget.BoxProps{Fill: "black"}
	if got := Validate([]widget.Widget{box}, 2, 2, eink); len(got) != 0 {
		t.Errorf("black fill should never warn, got %v", got)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	ws := []widget.Widget{
		{ID: "a", Kind: widget.KindTable, Position: geom.Position{Width: 20, Height: 20}, Style: &widget.Style{FontSize: 9}, Props: widget.TableProps{RowHeight: 12}},
		{ID: "b", Kind: widget.KindTapZone, Position: geom.Position{Width: 20, Height: 20}, Props: widget.TapZoneProps{}},
	}

	first := Validate(ws, 0.8, 0.8, eink)
	for i := 0; i < 5; i++ {
		again := Validate(ws, 0.8, 0.8, eink)
		if fmt.Sprint(again) != fmt.Sprint(first) {
			t.Fatalf("Validate not deterministic: %v vs %v", again, first)
		}
	}
	if first[0].WidgetID != "a" || first[len(first)-1].WidgetID != "b" {
		t.Errorf("warnings not in widget order: %v", first)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"black", 0, true},
		{"#FFFFFF", 1, true},
		{"#fff", 1, true},
		{"#000", 0, true},
		{"gray", 0.5, true},
		{"", 0, false},
		{"none", 0, false},
		{"#12", 0, false},
		{"chartreuse", 0, false},
	}
	for _, tt := range tests {
		got, ok := Luminance(tt.in)
		if ok != tt.wantOK || !geom.Near(got, tt.want, 1e-9) {
			t.Errorf("Luminance(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func ExampleValidate() {
	ws := []widget.Widget{{
		ID:       "cb-1",
		Kind:     widget.KindCheckbox,
		Position: geom.Position{Width: 40, Height: 40},
		Props:    widget.CheckboxProps{BoxSize: 16},
	}}
	c := geom.DeviceConstraints{MinFontPt: 10, MinTouchTargetPt: 30}

	for _, w := range Validate(ws, 0.5, 0.5, c) {
		fmt.Println(w)
	}
	// Output:
	// cb-1 (checkbox): box size 8.0pt is below the 10.0pt minimum
	// cb-1 (checkbox): touch target 20.0pt is below the 30.0pt minimum
}
