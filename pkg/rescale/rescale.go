package rescale

import (
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Mode selects how content is fitted to a new canvas.
type Mode string

const (
	Proportional Mode = "proportional" // uniform scale, content fits both axes
	WidthOnly    Mode = "width_only"   // fit width, keep vertical scale
	HeightOnly   Mode = "height_only"  // fit height, keep horizontal scale
	Stretch      Mode = "stretch"      // fit both axes independently
)

// ValidModes lists the accepted modes.
var ValidModes = map[Mode]bool{
	Proportional: true,
	WidthOnly:    true,
	HeightOnly:   true,
	Stretch:      true,
}

// Modes returns the accepted mode names in sorted order.
func Modes() []string {
	out := make([]string, 0, len(ValidModes))
	for m := range ValidModes {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}

// ParseMode converts a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !ValidModes[m] {
		return "", errors.New(errors.ErrCodeInvalidMode, "invalid rescale mode: %q (valid: %v)", s, Modes())
	}
	return m, nil
}

// minExtent keeps rescaled rectangles valid after rounding.
const minExtent = 0.1

// Scale is a per-axis scale transform.
type Scale struct {
	X float64 `json:"scale_x"`
	Y float64 `json:"scale_y"`
}

// Min returns min(X, Y), the factor applied to isotropic attributes.
func (s Scale) Min() float64 { return math.Min(s.X, s.Y) }

// Identity reports whether the transform changes nothing.
func (s Scale) Identity() bool { return s.X == 1 && s.Y == 1 }

// Valid reports whether both factors are positive and finite.
func (s Scale) Valid() bool {
	return s.X > 0 && s.Y > 0 && !math.IsInf(s.X, 0) && !math.IsInf(s.Y, 0)
}

func (s Scale) String() string {
	return fmt.Sprintf("%.3f × %.3f", s.X, s.Y)
}

// ComputeScale fits the bounding box of ws to a canvasWidth × canvasHeight
// canvas under mode.
//
// It fails on an empty widget list, a non-positive canvas, an unknown mode,
// or content with zero extent on an axis the mode fits.
func ComputeScale(ws []widget.Widget, canvasWidth, canvasHeight float64, mode Mode) (Scale, error) {
	if !ValidModes[mode] {
		return Scale{}, errors.New(errors.ErrCodeInvalidMode, "invalid rescale mode: %q (valid: %v)", mode, Modes())
	}
	if !(canvasWidth > 0) || !(canvasHeight > 0) || math.IsInf(canvasWidth, 0) || math.IsInf(canvasHeight, 0) {
		return Scale{}, errors.New(errors.ErrCodeInvalidInput, "canvas must be positive, got %v × %v", canvasWidth, canvasHeight)
	}
	b, ok := geom.BoundsOf(widget.Positions(ws))
	if !ok {
		return Scale{}, errors.New(errors.ErrCodeEmptyLayout, "nothing to rescale: layout has no widgets")
	}

	w, h := b.Width(), b.Height()
	fitX := mode != HeightOnly
	fitY := mode != WidthOnly
	if fitX && !(w > 0) {
		return Scale{}, errors.New(errors.ErrCodeInvalidInput, "content has zero width")
	}
	if fitY && !(h > 0) {
		return Scale{}, errors.New(errors.ErrCodeInvalidInput, "content has zero height")
	}

	switch mode {
	case Proportional:
		s := math.Min(canvasWidth/w, canvasHeight/h)
		return Scale{X: s, Y: s}, nil
	case WidthOnly:
		return Scale{X: canvasWidth / w, Y: 1}, nil
	case HeightOnly:
		return Scale{X: 1, Y: canvasHeight / h}, nil
	default:
		return Scale{X: canvasWidth / w, Y: canvasHeight / h}, nil
	}
}

// Apply returns rescaled copies of ws.
//
// Positions scale per axis and round to 0.1pt. Every sensitive field scales
// by its own axis and rounds to its precision; unset fields stay unset. With
// autoFix, values that land below their device floor are raised to exactly
// the floor, and interactive bounding boxes grow to the touch target minimum.
// Without it values are written as computed.
func Apply(ws []widget.Widget, s Scale, autoFix bool, c geom.DeviceConstraints) ([]widget.Widget, error) {
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive and finite, got %v", s)
	}
	if len(ws) == 0 {
		return nil, nil
	}

	out := make([]widget.Widget, len(ws))
	for i, w := range ws {
		out[i] = applyOne(w, s, autoFix, c)
	}
	return out, nil
}

func applyOne(w widget.Widget, s Scale, autoFix bool, c geom.DeviceConstraints) widget.Widget {
	scaled := w.MapFields(func(f widget.Field) float64 {
		if !f.Set() {
			return f.Value
		}
		v := f.Scaled(s.X, s.Y)
		if autoFix {
			if floor := constraints.FloorFor(f.Floor, c); v < floor {
				v = floor
			}
		}
		return v
	})

	pos := w.Position.Scale(s.X, s.Y).Round(1)
	pos.Width = math.Max(pos.Width, minExtent)
	pos.Height = math.Max(pos.Height, minExtent)
	if autoFix && w.Kind.Interactive() && c.MinTouchTargetPt > 0 {
		pos.Width = math.Max(pos.Width, c.MinTouchTargetPt)
		pos.Height = math.Max(pos.Height, c.MinTouchTargetPt)
	}
	scaled.Position = pos
	return scaled
}

// Plan is the outcome of previewing a rescale before it is applied.
type Plan struct {
	Mode     Mode                  `json:"mode"`
	Scale    Scale                 `json:"scale"`
	Content  geom.Bounds           `json:"content"`
	Warnings []constraints.Warning `json:"warnings,omitempty"`
}

// Clean reports whether the plan has no constraint violations.
func (p Plan) Clean() bool { return len(p.Warnings) == 0 }

// Preview computes the scale for ws and validates it against c without
// changing anything. The caller shows the warnings, then calls Apply with
// the plan's scale and the user's auto-fix choice.
func Preview(ws []widget.Widget, canvasWidth, canvasHeight float64, mode Mode, c geom.DeviceConstraints) (Plan, error) {
	s, err := ComputeScale(ws, canvasWidth, canvasHeight, mode)
	if err != nil {
		return Plan{}, err
	}
	b, _ := geom.BoundsOf(widget.Positions(ws))
	return Plan{
		Mode:     mode,
		Scale:    s,
		Content:  b,
		Warnings: constraints.Validate(ws, s.X, s.Y, c),
	}, nil
}
