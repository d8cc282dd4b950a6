package preview

import (
	"bytes"
	"encoding/xml"
	"slices"

	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/template"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Guide is an alignment line reported by the snap resolver.
type Guide struct {
	Axis string  `json:"axis"` // "x" for a vertical line, "y" for a horizontal one
	At   float64 `json:"at"`
}

// Guide axes.
const (
	GuideX = "x"
	GuideY = "y"
)

// Page is one composed page ready for drawing.
type Page struct {
	Number        int                   `json:"page"`
	Canvas        geom.Canvas           `json:"canvas"`
	Widgets       []widget.Widget       `json:"widgets"`
	MasterWidgets []string              `json:"master_widgets,omitempty"` // IDs drawn from the page's master
	Warnings      []constraints.Warning `json:"warnings,omitempty"`
	Guides        []Guide               `json:"guides,omitempty"`
}

// NewPage returns a page holding ws in draw order.
func NewPage(n int, c geom.Canvas, ws []widget.Widget) Page {
	return Page{Number: n, Canvas: c, Widgets: ws}
}

// FromTemplate composes page n of t and records which of its widgets come
// from the assigned master.
func FromTemplate(t template.Template, n int) Page {
	p := NewPage(n, t.Canvas, t.Page(n))

	c := t.Composition()
	a, ok := c.AssignmentFor(n)
	if !ok {
		return p
	}
	m, ok := c.Master(a.MasterID)
	if !ok {
		return p
	}
	own := make(map[string]bool)
	for _, w := range t.Widgets {
		if w.OnPage(n) {
			own[w.ID] = true
		}
	}
	for _, w := range m.Widgets {
		if !own[w.ID] {
			p.MasterWidgets = append(p.MasterWidgets, w.ID)
		}
	}
	return p
}

func (p Page) fromMaster(w widget.Widget) bool {
	return w.InMaster() || slices.Contains(p.MasterWidgets, w.ID)
}

// =============================================================================
// Options
// =============================================================================

// Option configures a render.
type Option func(*options)

type options struct {
	scale    float64
	margins  bool
	labels   bool
	warnings bool
	guides   bool
	quantize int
}

// DefaultScale is the number of output pixels per page point.
const DefaultScale = 1.0

// WithScale sets the output pixels per point. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// WithMargins draws the safe-area outline.
func WithMargins() Option { return func(o *options) { o.margins = true } }

// WithLabels writes each widget's kind and ID inside its box.
func WithLabels() Option { return func(o *options) { o.labels = true } }

// WithWarnings outlines widgets that have constraint warnings.
func WithWarnings() Option { return func(o *options) { o.warnings = true } }

// WithGuides draws the page's snap guides.
func WithGuides() Option { return func(o *options) { o.guides = true } }

// WithQuantize reduces a PNG to the given number of gray levels. Levels
// below 2 leave the image in full color.
func WithQuantize(levels int) Option { return func(o *options) { o.quantize = levels } }

func newOptions(opts ...Option) options {
	o := options{scale: DefaultScale}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Text helpers
// =============================================================================

const (
	labelSize      = 6.0
	labelCharWidth = 0.6 // monospace advance as a fraction of the font size
	defaultTextPt  = 10.0
)

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// truncate shortens s to fit width at the given font size.
func truncate(s string, width, size float64) string {
	maxChars := int(width / (size * labelCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-2]) + ".."
}
