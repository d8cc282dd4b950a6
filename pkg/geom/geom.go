package geom

import (
	"encoding/json"
	"fmt"
	"math"
)

// =============================================================================
// Position
// =============================================================================

// Point is a location on the page in points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position is an axis-aligned rectangle in page points with a top-left origin.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Left returns the x coordinate of the leading vertical edge.
func (p Position) Left() float64 { return p.X }

// Right returns the x coordinate of the trailing vertical edge.
func (p Position) Right() float64 { return p.X + p.Width }

// Top returns the y coordinate of the leading horizontal edge.
func (p Position) Top() float64 { return p.Y }

// Bottom returns the y coordinate of the trailing horizontal edge.
func (p Position) Bottom() float64 { return p.Y + p.Height }

// CenterX returns the horizontal center.
func (p Position) CenterX() float64 { return p.X + p.Width/2 }

// CenterY returns the vertical center.
func (p Position) CenterY() float64 { return p.Y + p.Height/2 }

// Origin returns the top-left corner.
func (p Position) Origin() Point { return Point{X: p.X, Y: p.Y} }

// Area returns Width * Height.
func (p Position) Area() float64 { return p.Width * p.Height }

// Valid reports whether both dimensions are strictly positive and finite.
func (p Position) Valid() bool {
	return p.Width > 0 && p.Height > 0 && finite(p.X, p.Y, p.Width, p.Height)
}

// MoveTo returns a copy of p with its origin at (x, y).
func (p Position) MoveTo(x, y float64) Position {
	p.X, p.Y = x, y
	return p
}

// Scale multiplies x and width by sx, y and height by sy.
func (p Position) Scale(sx, sy float64) Position {
	return Position{X: p.X * sx, Y: p.Y * sy, Width: p.Width * sx, Height: p.Height * sy}
}

// Round rounds every component to the given number of decimal places.
func (p Position) Round(places int) Position {
	return Position{
		X:      Round(p.X, places),
		Y:      Round(p.Y, places),
		Width:  Round(p.Width, places),
		Height: Round(p.Height, places),
	}
}

// Contains reports whether q lies entirely inside p.
func (p Position) Contains(q Position) bool {
	return q.Left() >= p.Left() && q.Right() <= p.Right() &&
		q.Top() >= p.Top() && q.Bottom() <= p.Bottom()
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%.1f, %.1f %.1f×%.1f)", p.X, p.Y, p.Width, p.Height)
}

// =============================================================================
// Bounds
// =============================================================================

// Bounds is the bounding box of a set of positions.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf returns the bounding box of ps. The second result is false when ps is empty.
func BoundsOf(ps []Position) (Bounds, bool) {
	if len(ps) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range ps {
		b.MinX = math.Min(b.MinX, p.Left())
		b.MinY = math.Min(b.MinY, p.Top())
		b.MaxX = math.Max(b.MaxX, p.Right())
		b.MaxY = math.Max(b.MaxY, p.Bottom())
	}
	return b, true
}

// =============================================================================
// Canvas
// =============================================================================

// Margins are canvas-edge insets in points.
// They serialize as a JSON array [top, right, bottom, left].
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns margins with the same inset on every side.
func Uniform(v float64) Margins { return Margins{Top: v, Right: v, Bottom: v, Left: v} }

// MarshalJSON encodes the margins as [top, right, bottom, left].
func (m Margins) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{m.Top, m.Right, m.Bottom, m.Left})
}

// UnmarshalJSON decodes [top, right, bottom, left].
func (m *Margins) UnmarshalJSON(data []byte) error {
	var a [4]float64
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("margins must be [top, right, bottom, left]: %w", err)
	}
	*m = Margins{Top: a[0], Right: a[1], Bottom: a[2], Left: a[3]}
	return nil
}

// Canvas is the page surface in points.
type Canvas struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margins Margins `json:"margins"`
}

// SafeArea returns the margin-inset content rectangle.
func (c Canvas) SafeArea() Position {
	return Position{
		X:      c.Margins.Left,
		Y:      c.Margins.Top,
		Width:  c.Width - c.Margins.Left - c.Margins.Right,
		Height: c.Height - c.Margins.Top - c.Margins.Bottom,
	}
}

// Bounds returns the full canvas rectangle.
func (c Canvas) Bounds() Position {
	return Position{Width: c.Width, Height: c.Height}
}

// Valid reports whether the canvas has a positive size and margins that leave room inside.
func (c Canvas) Valid() bool {
	if c.Width <= 0 || c.Height <= 0 {
		return false
	}
	m := c.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return false
	}
	return m.Left+m.Right < c.Width && m.Top+m.Bottom < c.Height
}

// =============================================================================
// Device Constraints
// =============================================================================

// DeviceConstraints are the physical limits of a target device.
type DeviceConstraints struct {
	MinFontPt        float64 `json:"min_font_pt" toml:"min_font_pt"`
	MinStrokePt      float64 `json:"min_stroke_pt" toml:"min_stroke_pt"`
	MinTouchTargetPt float64 `json:"min_touch_target_pt" toml:"min_touch_target_pt"`
	GrayscaleLevels  int     `json:"grayscale_levels" toml:"grayscale_levels"`
	MaxGrayFillArea  float64 `json:"max_gray_fill_area" toml:"max_gray_fill_area"`
}

// =============================================================================
// Numeric helpers
// =============================================================================

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Near reports whether a and b differ by at most tol.
func Near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
