package constraints

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Field names used for checks that are not backed by a widget.Field.
const (
	FieldTouchTarget = "touch_target"
	FieldFillArea    = "fill_area"
)

// Warning is one constraint violation under a proposed scale.
type Warning struct {
	WidgetID string      `json:"widget_id"`
	Kind     widget.Kind `json:"kind"`
	Field    string      `json:"field"`
	Actual   float64     `json:"actual"`
	Required float64     `json:"required"`
	Message  string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.WidgetID, w.Kind, w.Message)
}

// FloorFor returns the minimum value a field with floor f may take on a
// device. Zero means unbounded.
func FloorFor(f widget.Floor, c geom.DeviceConstraints) float64 {
	switch f {
	case widget.FloorFont:
		return c.MinFontPt
	case widget.FloorStroke:
		return c.MinStrokePt
	case widget.FloorTouch:
		return c.MinTouchTargetPt
	}
	return 0
}

// Validate reports every constraint violation of ws under the scale
// (scaleX, scaleY). Warnings follow widget order, then field order. It never
// fails and never modifies ws.
//
// Field values are compared after rounding to the field's precision, the
// value rescale.Apply would store. A font scaled to 9.96pt is written as
// 10.0pt and so meets a 10pt floor; the same value is checked before and
// after the rescale is applied.
func Validate(ws []widget.Widget, scaleX, scaleY float64, c geom.DeviceConstraints) []Warning {
	var out []Warning
	for _, w := range ws {
		out = append(out, ValidateWidget(w, scaleX, scaleY, c)...)
	}
	return out
}

// ValidateWidget reports the violations of a single widget.
func ValidateWidget(w widget.Widget, scaleX, scaleY float64, c geom.DeviceConstraints) []Warning {
	var out []Warning

	for _, f := range w.Fields() {
		if !f.Set() {
			continue
		}
		floor := FloorFor(f.Floor, c)
		if floor <= 0 {
			continue
		}
		actual := f.Scaled(scaleX, scaleY)
		if actual >= floor {
			continue
		}
		out = append(out, Warning{
			WidgetID: w.ID,
			Kind:     w.Kind,
			Field:    f.Name,
			Actual:   actual,
			Required: floor,
			Message: fmt.Sprintf("%s %s is below the %s minimum",
				f.Label, formatPt(actual, f.Precision), formatPt(floor, f.Precision)),
		})
	}

	if w.Kind.Interactive() && c.MinTouchTargetPt > 0 {
		actual := TouchSize(w.Position, scaleX, scaleY)
		if actual < c.MinTouchTargetPt {
			out = append(out, Warning{
				WidgetID: w.ID,
				Kind:     w.Kind,
				Field:    FieldTouchTarget,
				Actual:   actual,
				Required: c.MinTouchTargetPt,
				Message: fmt.Sprintf("touch target %s is below the %s minimum",
					formatPt(actual, 1), formatPt(c.MinTouchTargetPt, 1)),
			})
		}
	}

	if box, ok := w.Props.(widget.BoxProps); ok && c.MaxGrayFillArea > 0 && IsGrayFill(box.Fill) {
		area := geom.Round(w.Position.Width*scaleX*w.Position.Height*scaleY, 1)
		if area > c.MaxGrayFillArea {
			out = append(out, Warning{
				WidgetID: w.ID,
				Kind:     w.Kind,
				Field:    FieldFillArea,
				Actual:   area,
				Required: c.MaxGrayFillArea,
				Message: fmt.Sprintf("gray fill area %.1fpt² exceeds the %.1fpt² maximum",
					area, c.MaxGrayFillArea),
			})
		}
	}

	return out
}

// TouchSize returns the smaller side of pos after scaling, rounded to 0.1pt.
func TouchSize(pos geom.Position, scaleX, scaleY float64) float64 {
	return geom.Round(math.Min(pos.Width*scaleX, pos.Height*scaleY), 1)
}

// ByWidget groups warnings by widget ID, preserving order within each group.
func ByWidget(ws []Warning) map[string][]Warning {
	out := make(map[string][]Warning)
	for _, w := range ws {
		out[w.WidgetID] = append(out[w.WidgetID], w)
	}
	return out
}

// IsGrayFill reports whether a fill color is an intermediate gray that
// e-ink panels render by dithering. Empty, transparent, black and white
// fills are not gray.
func IsGrayFill(fill string) bool {
	v, ok := Luminance(fill)
	if !ok {
		return false
	}
	return v > 0 && v < 1
}

// Luminance parses a fill color and returns its relative luminance in [0, 1].
// It accepts "#rgb", "#rrggbb", "black", "white", "gray"/"grey" and
// "transparent"/"none" (reported as not ok).
func Luminance(color string) (float64, bool) {
	c := strings.ToLower(strings.TrimSpace(color))
	switch c {
	case "", "none", "transparent":
		return 0, false
	case "black":
		return 0, true
	case "white":
		return 1, true
	case "gray", "grey":
		return 0.5, true
	case "lightgray", "lightgrey":
		return 0.827, true
	case "darkgray", "darkgrey":
		return 0.663, true
	}

	if !strings.HasPrefix(c, "#") {
		return 0, false
	}
	hex := c[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, false
	}
	// Rec. 601 luma.
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, true
}

func formatPt(v float64, precision int) string {
	if precision < 1 {
		precision = 1
	}
	return fmt.Sprintf("%.*fpt", precision, v)
}
