package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/compose"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/rescale"
	"github.com/matzehuels/inkframe/pkg/snap"
	"github.com/matzehuels/inkframe/pkg/template"
	"github.com/matzehuels/inkframe/pkg/widget"
)

func testTemplate() template.Template {
	one := 1
	return template.Template{
		Name:      "fixture",
		Device:    "remarkable-2",
		PageCount: 2,
		Canvas:    geom.Canvas{Width: 200, Height: 100, Margins: geom.Uniform(10)},
		Widgets: []widget.Widget{
			{ID: "title", Kind: widget.KindText, Page: &one,
				Position: geom.Position{X: 10, Y: 10, Width: 100, Height: 20},
				Style:    &widget.Style{FontSize: 12}, Props: widget.TextProps{Text: "Today"}},
			{ID: "cb", Kind: widget.KindCheckbox, Page: &one,
				Position: geom.Position{X: 10, Y: 40, Width: 30, Height: 30},
				Props:    widget.CheckboxProps{BoxSize: 12}},
		},
		Masters: []compose.Master{{ID: "m", Name: "Footer", Widgets: []widget.Widget{
			{ID: "rule", Kind: widget.KindDivider,
				Position: geom.Position{X: 10, Y: 90, Width: 180, Height: 1},
				Style:    &widget.Style{LineWidth: 1}, Props: widget.DividerProps{}},
		}}},
		PageAssignments: []compose.Assignment{{Page: 1, MasterID: "m"}},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, quietLogger())
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil || r.Devices == nil {
		t.Errorf("NewRunner left a nil field: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestProfileResolution(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	tmpl := testTemplate()

	tests := []struct {
		name string
		opts Options
		tmpl string
		want string
	}{
		{"template device", Options{}, "kindle-scribe", "kindle-scribe"},
		{"option wins", Options{Device: "a4"}, "kindle-scribe", "a4"},
		{"default", Options{}, "", "remarkable-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl.Device = tt.tmpl
			p, err := r.Profile(tmpl, tt.opts)
			if err != nil {
				t.Fatalf("Profile: %v", err)
			}
			if p.Name != tt.want {
				t.Errorf("Profile = %s, want %s", p.Name, tt.want)
			}
		})
	}

	_, err := r.Profile(tmpl, Options{Device: "etch-a-sketch"})
	if errors.GetCode(err) != errors.ErrCodeDeviceNotFound {
		t.Errorf("unknown device code = %q", errors.GetCode(err))
	}
}

func TestCheck(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	res, err := r.Check(context.Background(), testTemplate(), Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Clean() {
		t.Errorf("fixture should be clean, got %v outside %v", res.Warnings, res.Outside)
	}
	if res.Stats.Masters != 1 || res.Stats.MasterWidgets != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}

	tmpl := testTemplate()
	tmpl.Widgets[0].Style.FontSize = 5
	tmpl.Widgets[1].Position.X = 190
	res, err = r.Check(context.Background(), tmpl, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].WidgetID != "title" {
		t.Errorf("Warnings = %v, want one font warning on title", res.Warnings)
	}
	if len(res.Outside) != 1 || res.Outside[0] != "cb" {
		t.Errorf("Outside = %v, want [cb]", res.Outside)
	}

	tmpl = testTemplate()
	tmpl.PageCount = 0
	if _, err := r.Check(context.Background(), tmpl, Options{}); errors.GetCode(err) != errors.ErrCodeInvalidTemplate {
		t.Errorf("invalid template code = %q", errors.GetCode(err))
	}
}

func TestPlanRescaleCaches(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Width: 100, Height: 50}

	plan, hit, err := r.PlanRescaleWithCacheInfo(ctx, testTemplate(), opts)
	if err != nil {
		t.Fatalf("PlanRescale: %v", err)
	}
	if hit {
		t.Error("first plan should miss the cache")
	}
	if plan.Clean() {
		t.Error("shrinking to 100×50 should produce warnings")
	}

	again, hit, err := r.PlanRescaleWithCacheInfo(ctx, testTemplate(), opts)
	if err != nil {
		t.Fatalf("PlanRescale: %v", err)
	}
	if !hit {
		t.Error("second plan should hit the cache")
	}
	if again.Scale != plan.Scale || len(again.Warnings) != len(plan.Warnings) {
		t.Errorf("cached plan differs: %+v vs %+v", again, plan)
	}

	opts.Refresh = true
	if _, hit, _ := r.PlanRescaleWithCacheInfo(ctx, testTemplate(), opts); hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestPlanRescaleMissesAfterProfileChange(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	p, err := r.Devices.Lookup("remarkable-2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	register := func(minFont float64) {
		t.Helper()
		p.Constraints = geom.DeviceConstraints{MinFontPt: minFont}
		if err := r.Devices.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	fontWarnings := func(plan rescale.Plan) int {
		n := 0
		for _, w := range plan.Warnings {
			if w.WidgetID == "title" && w.Field == "font_size" {
				n++
			}
		}
		return n
	}

	register(1)
	plan, hit, err := r.PlanRescaleWithCacheInfo(ctx, testTemplate(), Options{})
	if err != nil {
		t.Fatalf("PlanRescale: %v", err)
	}
	if hit || fontWarnings(plan) != 0 {
		t.Fatalf("hit = %v, font warnings = %d, want a clean miss", hit, fontWarnings(plan))
	}

	register(40)
	plan, hit, err = r.PlanRescaleWithCacheInfo(ctx, testTemplate(), Options{})
	if err != nil {
		t.Fatalf("PlanRescale: %v", err)
	}
	if hit {
		t.Error("plan computed under the old constraints was served from the cache")
	}
	if fontWarnings(plan) != 1 {
		t.Errorf("font warnings = %d, want 1 under a 40pt floor", fontWarnings(plan))
	}
}

func TestKeyOptsTrackProfile(t *testing.T) {
	a := device.Profile{Name: "tablet", Width: 400, Height: 600,
		Constraints: geom.DeviceConstraints{MinFontPt: 7, GrayscaleLevels: 16}}
	b := a
	b.Constraints.MinFontPt = 9
	c := a
	c.SafeMargins = geom.Uniform(12)

	opts := Options{Scale: 2, Quantize: true}
	if opts.PlanKeyOpts(a) == opts.PlanKeyOpts(b) || opts.PlanKeyOpts(a) == opts.PlanKeyOpts(c) {
		t.Error("plan key options should change with the profile")
	}
	if opts.PreviewKeyOpts(FormatSVG, a) == opts.PreviewKeyOpts(FormatSVG, b) {
		t.Error("preview key options should change with the constraints")
	}
	if opts.PlanKeyOpts(a) != opts.PlanKeyOpts(a) {
		t.Error("plan key options should be stable for one profile")
	}
}

func TestRescaleExplicitSize(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	res, err := r.Rescale(ctx, testTemplate(), Options{Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if len(res.Remaining) == 0 {
		t.Error("without auto-fix violations should remain")
	}
	if c := res.Template.Canvas; c.Width != 100 || c.Height != 50 || c.Margins != geom.Uniform(10) {
		t.Errorf("Canvas = %+v, want 100×50 with original margins", c)
	}
	if res.Template.Device != "remarkable-2" {
		t.Errorf("Device = %q, explicit size should keep it", res.Template.Device)
	}

	fixed, err := r.Rescale(ctx, testTemplate(), Options{Width: 100, Height: 50, AutoFix: true})
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if len(fixed.Remaining) != 0 {
		t.Errorf("auto-fix left %v", fixed.Remaining)
	}
	// Masters scale with the same transform.
	rule := fixed.Template.Masters[0].Widgets[0]
	if !geom.Near(rule.Position.Width, geom.Round(180*fixed.Plan.Scale.X, 1), 1e-9) {
		t.Errorf("master widget width = %v, scale %v", rule.Position.Width, fixed.Plan.Scale)
	}
}

func TestRescaleToDevice(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	tmpl := testTemplate()
	tmpl.Device = ""

	res, err := r.Rescale(context.Background(), tmpl, Options{Device: "a4"})
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if res.Template.Device != "a4" {
		t.Errorf("Device = %q, want a4", res.Template.Device)
	}
	if res.Template.Canvas != res.Profile.Canvas() {
		t.Errorf("Canvas = %+v, want %+v", res.Template.Canvas, res.Profile.Canvas())
	}
	if len(tmpl.Widgets) != 2 || tmpl.Widgets[0].Position.Width != 100 {
		t.Error("Rescale mutated its input")
	}
}

func TestRescaleErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	tmpl := testTemplate()
	tmpl.Widgets = nil
	tmpl.Masters = nil

	_, err := r.Rescale(context.Background(), tmpl, Options{})
	if errors.GetCode(err) != errors.ErrCodeEmptyLayout {
		t.Errorf("empty template code = %q", errors.GetCode(err))
	}
	_, err = r.Rescale(context.Background(), testTemplate(), Options{Mode: "zoom"})
	if errors.GetCode(err) != errors.ErrCodeInvalidMode {
		t.Errorf("bad mode code = %q", errors.GetCode(err))
	}
}

func TestSnapWidget(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	tmpl := testTemplate()

	res, err := r.SnapWidget(ctx, tmpl, SnapRequest{
		Page: 1, WidgetID: "cb",
		Position: geom.Position{X: 12, Y: 40, Width: 30, Height: 30},
	}, Options{})
	if err != nil {
		t.Fatalf("SnapWidget: %v", err)
	}
	if res.Position.X != 10 || res.SnappedToX != snap.Margin {
		t.Errorf("X = %v (%q), want margin snap to 10", res.Position.X, res.SnappedToX)
	}
	if res.Position.Y != 40 || res.SnappedToY != snap.None {
		t.Errorf("Y = %v (%q), want unchanged", res.Position.Y, res.SnappedToY)
	}
	if len(res.Guides) != 1 || res.Guides[0].At != 10 {
		t.Errorf("Guides = %v", res.Guides)
	}

	// The master rule is a target on page 1.
	res, err = r.SnapWidget(ctx, tmpl, SnapRequest{
		Page: 1, WidgetID: "cb",
		Position: geom.Position{X: 50, Y: 58, Width: 30, Height: 30},
	}, Options{})
	if err != nil {
		t.Fatalf("SnapWidget: %v", err)
	}
	if res.Position.Y != 60 || res.SnappedToY != snap.Margin {
		t.Errorf("Y = %v (%q), want margin snap to 60", res.Position.Y, res.SnappedToY)
	}

	res, _ = r.SnapWidget(ctx, tmpl, SnapRequest{
		Page: 1, WidgetID: "cb",
		Position: geom.Position{X: 12, Y: 40, Width: 30, Height: 30},
	}, Options{SnapDisabled: true})
	if res.Position.X != 12 || len(res.Guides) != 0 {
		t.Errorf("disabled snap moved the widget: %+v", res)
	}
}

func TestSnapWidgetErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	_, err := r.SnapWidget(ctx, testTemplate(), SnapRequest{Page: 2, WidgetID: "cb"}, Options{})
	if errors.GetCode(err) != errors.ErrCodeWidgetNotFound {
		t.Errorf("widget on other page code = %q", errors.GetCode(err))
	}
	_, err = r.SnapWidget(ctx, testTemplate(), SnapRequest{Page: 9, WidgetID: "cb"}, Options{})
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("bad page code = %q", errors.GetCode(err))
	}
}

func TestPreview(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}, Warnings: true, Labels: true}

	res, err := r.PreviewWithCacheInfo(ctx, testTemplate(), opts)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(res.Pages) != 2 || res.CacheHits != 0 {
		t.Errorf("Pages = %v, hits = %d", res.Pages, res.CacheHits)
	}
	svg, ok := res.Artifact(1, FormatSVG)
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Fatal("page 1 svg missing")
	}
	if !bytes.Contains(svg, []byte("divider rule")) {
		t.Error("master widget should be drawn on page 1")
	}
	if data, _ := res.Artifact(2, FormatJSON); !strings.Contains(string(data), `"page": 2`) {
		t.Errorf("page 2 json = %s", data)
	}

	res, err = r.PreviewWithCacheInfo(ctx, testTemplate(), opts)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if res.CacheHits != 4 {
		t.Errorf("CacheHits = %d, want 4", res.CacheHits)
	}
}

func TestPreviewRejectsBadOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	if _, err := r.Preview(ctx, testTemplate(), Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("pdf should be rejected")
	}
	if _, err := r.Preview(ctx, testTemplate(), Options{Pages: []int{3}}); err == nil {
		t.Error("page 3 should be rejected")
	}
}

func TestHooksAreCalled(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	if _, err := r.Rescale(ctx, testTemplate(), Options{}); err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if _, err := r.Check(ctx, testTemplate(), Options{}); err != nil {
		t.Fatalf("Check: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if got := strings.Join(rec.events, ","); got != "rescale-start,rescale,check" {
		t.Errorf("events = %s", got)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnRescaleStart(context.Context, string, int) { h.add("rescale-start") }
func (h *recordingHooks) OnRescaleComplete(context.Context, string, int, time.Duration, error) {
	h.add("rescale")
}
func (h *recordingHooks) OnCheckComplete(context.Context, string, int, int, time.Duration, error) {
	h.add("check")
}
