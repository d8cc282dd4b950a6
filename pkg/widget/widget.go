package widget

import (
	"encoding/json"
	"maps"

	"github.com/matzehuels/inkframe/pkg/geom"
)

// =============================================================================
// Sensitive Fields
// =============================================================================

// Axis selects which scale factor applies to a field.
type Axis int

const (
	AxisX   Axis = iota // horizontal factor
	AxisY               // vertical factor
	AxisMin             // min(scaleX, scaleY)
)

// Factor returns the scale factor for this axis.
func (a Axis) Factor(scaleX, scaleY float64) float64 {
	switch a {
	case AxisX:
		return scaleX
	case AxisY:
		return scaleY
	}
	return min(scaleX, scaleY)
}

// Floor names the device constraint that bounds a field from below.
type Floor int

const (
	FloorNone   Floor = iota // no device floor
	FloorFont                // DeviceConstraints.MinFontPt
	FloorStroke              // DeviceConstraints.MinStrokePt
	FloorTouch               // DeviceConstraints.MinTouchTargetPt
)

// Field is a numeric widget attribute whose value depends on scale.
// A Value of zero or less means "unset" and is never scaled up or checked.
type Field struct {
	Name      string  // JSON key, e.g. "font_size"
	Label     string  // human wording, e.g. "font size"
	Value     float64 // current value in points
	Axis      Axis
	Floor     Floor
	Precision int // decimal places kept after scaling
}

// Set reports whether the field carries a value.
func (f Field) Set() bool { return f.Value > 0 }

// Scaled returns the value multiplied by the axis factor, rounded to Precision.
func (f Field) Scaled(scaleX, scaleY float64) float64 {
	return geom.Round(f.Value*f.Axis.Factor(scaleX, scaleY), f.Precision)
}

const (
	precisionLength = 1
	precisionStroke = 2
)

// =============================================================================
// Style
// =============================================================================

// Style holds the optional presentation attributes shared by all kinds.
type Style struct {
	FontFamily string  `json:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Color      string  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"`
	LineWidth  float64 `json:"line_width,omitempty"`
}

// Fields returns the scale-sensitive style fields.
func (s Style) Fields() []Field {
	return []Field{
		{Name: "font_size", Label: "font size", Value: s.FontSize, Axis: AxisY, Floor: FloorFont, Precision: precisionLength},
		{Name: "line_width", Label: "line width", Value: s.LineWidth, Axis: AxisMin, Floor: FloorStroke, Precision: precisionStroke},
	}
}

// MapFields returns a copy of s with each field replaced by fn(field).
func (s Style) MapFields(fn func(Field) float64) Style {
	f := s.Fields()
	s.FontSize = fn(f[0])
	s.LineWidth = fn(f[1])
	return s
}

// =============================================================================
// Widget
// =============================================================================

// Widget is a positioned element on a page or in a master.
//
// Page is nil for widgets stored in a master; a widget is never in both scopes.
// Extra keeps property keys the engine does not model so that templates survive
// a read/write cycle unchanged.
type Widget struct {
	ID       string
	Kind     Kind
	Page     *int
	Position geom.Position
	Style    *Style
	Props    Props
	Extra    map[string]json.RawMessage
}

// New creates a widget of the given kind with its zero payload.
func New(id string, kind Kind, pos geom.Position) (Widget, error) {
	p, err := newProps(kind)
	if err != nil {
		return Widget{}, err
	}
	return Widget{ID: id, Kind: kind, Position: pos, Props: p}, nil
}

// OnPage reports whether the widget is page-scoped and lives on page n.
func (w Widget) OnPage(n int) bool {
	return w.Page != nil && *w.Page == n
}

// InMaster reports whether the widget is master-scoped.
func (w Widget) InMaster() bool { return w.Page == nil }

// WithPage returns a copy placed on page n.
func (w Widget) WithPage(n int) Widget {
	c := w.Clone()
	c.Page = &n
	return c
}

// WithoutPage returns a copy with the page cleared, ready for a master.
func (w Widget) WithoutPage() Widget {
	c := w.Clone()
	c.Page = nil
	return c
}

// WithPosition returns a copy at pos.
func (w Widget) WithPosition(pos geom.Position) Widget {
	c := w.Clone()
	c.Position = pos
	return c
}

// Fields returns the style fields followed by the payload fields.
// Unset style fields are included; callers filter with Field.Set.
func (w Widget) Fields() []Field {
	var out []Field
	if w.Style != nil {
		out = append(out, w.Style.Fields()...)
	}
	if w.Props != nil {
		out = append(out, w.Props.Fields()...)
	}
	return out
}

// MapFields returns a copy whose style and payload fields are replaced by fn(field).
func (w Widget) MapFields(fn func(Field) float64) Widget {
	c := w.Clone()
	if c.Style != nil {
		s := c.Style.MapFields(fn)
		c.Style = &s
	}
	if c.Props != nil {
		c.Props = c.Props.MapFields(fn)
	}
	return c
}

// Clone returns a deep copy of w.
func (w Widget) Clone() Widget {
	c := w
	if w.Page != nil {
		p := *w.Page
		c.Page = &p
	}
	if w.Style != nil {
		s := *w.Style
		c.Style = &s
	}
	if w.Props != nil {
		c.Props = w.Props.Clone()
	}
	if w.Extra != nil {
		c.Extra = maps.Clone(w.Extra)
	}
	return c
}

// Positions extracts the positions of ws in order.
func Positions(ws []Widget) []geom.Position {
	out := make([]geom.Position, len(ws))
	for i, w := range ws {
		out[i] = w.Position
	}
	return out
}

// Find returns the index of the widget with the given ID, or -1.
func Find(ws []Widget, id string) int {
	for i, w := range ws {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Intp returns a pointer to n. It is a convenience for building page-scoped widgets.
func Intp(n int) *int { return &n }
