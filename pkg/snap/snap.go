package snap

import (
	"math"
	"slices"

	"github.com/matzehuels/inkframe/pkg/geom"
)

// Category records why a coordinate changed.
type Category string

const (
	None       Category = ""
	Margin     Category = "margin" // snapped to a margin-inset boundary
	CanvasEdge Category = "canvas" // snapped to a boundary with zero inset
	WidgetEdge Category = "widget" // snapped to another widget's edge or center
	Grid       Category = "grid"   // rounded to the grid
)

// DefaultMinSize is the smallest width or height ResolveResize produces
// when Options.MinSize is not set.
const DefaultMinSize = 1.0

// Target is another widget eligible as a snap reference.
type Target struct {
	ID       string
	Position geom.Position
}

// Options configures a single resolution.
type Options struct {
	Enabled   bool
	GridSize  float64 // <= 0 disables grid snapping
	Tolerance float64 // maximum distance in points
	Canvas    geom.Canvas
	Targets   []Target
	MovingID  string   // the widget being moved; never its own target
	Exclude   []string // co-selected widgets moving with it
	MinSize   float64  // resize floor, DefaultMinSize when <= 0
}

// Result is the outcome of Resolve.
type Result struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	SnappedToX Category `json:"snapped_to_x,omitempty"`
	SnappedToY Category `json:"snapped_to_y,omitempty"`
	GuideX     *float64 `json:"guide_x,omitempty"`
	GuideY     *float64 `json:"guide_y,omitempty"`
}

// Position returns pos moved to the resolved origin.
func (r Result) Position(pos geom.Position) geom.Position {
	return pos.MoveTo(r.X, r.Y)
}

// Snapped reports whether either axis snapped.
func (r Result) Snapped() bool {
	return r.SnappedToX != None || r.SnappedToY != None
}

// ResizeResult is the outcome of ResolveResize.
type ResizeResult struct {
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	SnappedToX Category `json:"snapped_to_x,omitempty"`
	SnappedToY Category `json:"snapped_to_y,omitempty"`
	GuideX     *float64 `json:"guide_x,omitempty"`
	GuideY     *float64 `json:"guide_y,omitempty"`
}

// Position returns pos with the resolved size.
func (r ResizeResult) Position(pos geom.Position) geom.Position {
	pos.Width, pos.Height = r.Width, r.Height
	return pos
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve snaps a moving rectangle. Each axis is resolved independently with
// the priority margin/canvas, then other widgets, then grid. A disabled
// resolver returns the input origin with no categories.
func Resolve(pos geom.Position, opts Options) Result {
	if !opts.Enabled {
		return Result{X: pos.X, Y: pos.Y}
	}
	xs, ys := opts.spans()
	safe := opts.Canvas.SafeArea()

	bx := boundary{
		lo: safe.Left(), hi: safe.Right(),
		loInset: opts.Canvas.Margins.Left, hiInset: opts.Canvas.Margins.Right,
	}
	by := boundary{
		lo: safe.Top(), hi: safe.Bottom(),
		loInset: opts.Canvas.Margins.Top, hiInset: opts.Canvas.Margins.Bottom,
	}
	x := settle(pos.X, func(v float64) axisResult {
		return resolveMove(span{v, pos.Width}, bx, xs, opts)
	})
	y := settle(pos.Y, func(v float64) axisResult {
		return resolveMove(span{v, pos.Height}, by, ys, opts)
	})

	return Result{
		X: x.value, Y: y.value,
		SnappedToX: x.cat, SnappedToY: y.cat,
		GuideX: x.guide, GuideY: y.guide,
	}
}

// ResolveResize snaps a rectangle being resized from its bottom-right corner.
// The origin stays fixed; only the trailing edges move, under the same
// priority chain as Resolve. Sizes never drop below Options.MinSize.
func ResolveResize(pos geom.Position, opts Options) ResizeResult {
	if !opts.Enabled {
		return ResizeResult{Width: pos.Width, Height: pos.Height}
	}
	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}
	xs, ys := opts.spans()
	safe := opts.Canvas.SafeArea()

	x := settle(pos.Right(), func(v float64) axisResult {
		return resolveEdge(v, safe.Right(), opts.Canvas.Margins.Right, xs, opts)
	})
	y := settle(pos.Bottom(), func(v float64) axisResult {
		return resolveEdge(v, safe.Bottom(), opts.Canvas.Margins.Bottom, ys, opts)
	})

	return ResizeResult{
		Width:      math.Max(x.value-pos.X, minSize),
		Height:     math.Max(y.value-pos.Y, minSize),
		SnappedToX: x.cat, SnappedToY: y.cat,
		GuideX: x.guide, GuideY: y.guide,
	}
}

// =============================================================================
// Axis helpers
// =============================================================================

// span is a one-dimensional extent along an axis.
type span struct {
	lead, size float64
}

func (s span) trail() float64  { return s.lead + s.size }
func (s span) center() float64 { return s.lead + s.size/2 }

type boundary struct {
	lo, hi           float64
	loInset, hiInset float64
}

type axisResult struct {
	value float64
	cat   Category
	guide *float64
}

func edgeCategory(inset float64) Category {
	if inset > 0 {
		return Margin
	}
	return CanvasEdge
}

// spans returns the eligible target extents for each axis.
func (o Options) spans() (xs, ys []span) {
	for _, t := range o.Targets {
		if t.ID != "" && (t.ID == o.MovingID || slices.Contains(o.Exclude, t.ID)) {
			continue
		}
		xs = append(xs, span{t.Position.X, t.Position.Width})
		ys = append(ys, span{t.Position.Y, t.Position.Height})
	}
	return xs, ys
}

// match is a candidate widget alignment. rank orders ties: moving leading
// edge, then trailing edge, then center.
type match struct {
	dist   float64
	rank   int
	offset float64 // distance from the moving leading edge to the aligned point
	guide  float64
}

func (m match) better(o match) bool {
	if m.dist != o.dist {
		return m.dist < o.dist
	}
	return m.rank < o.rank
}

func resolveMove(s span, b boundary, targets []span, opts Options) axisResult {
	tol := opts.Tolerance

	dLead := math.Abs(s.lead - b.lo)
	dTrail := math.Abs(s.trail() - b.hi)
	switch {
	case dLead <= tol && dLead <= dTrail:
		return axisResult{value: b.lo, cat: edgeCategory(b.loInset), guide: ptr(b.lo)}
	case dTrail <= tol:
		return axisResult{value: b.hi - s.size, cat: edgeCategory(b.hiInset), guide: ptr(b.hi)}
	}

	var best *match
	consider := func(m match) {
		if m.dist > tol {
			return
		}
		if best == nil || m.better(*best) {
			best = &m
		}
	}
	for _, t := range targets {
		for _, edge := range [2]float64{t.lead, t.trail()} {
			consider(match{dist: math.Abs(s.lead - edge), rank: 0, offset: 0, guide: edge})
			consider(match{dist: math.Abs(s.trail() - edge), rank: 1, offset: s.size, guide: edge})
		}
		c := t.center()
		consider(match{dist: math.Abs(s.center() - c), rank: 2, offset: s.size / 2, guide: c})
	}
	if best != nil {
		return axisResult{value: best.guide - best.offset, cat: WidgetEdge, guide: ptr(best.guide)}
	}

	if opts.GridSize > 0 {
		return axisResult{value: roundTo(s.lead, opts.GridSize), cat: Grid}
	}
	return axisResult{value: s.lead}
}

// maxPasses bounds settle. A coordinate can step down the priority chain at
// most from grid to widget to margin, so three passes always reach a fixed
// point.
const maxPasses = 4

// settle resolves v, then resolves the result again until the coordinate
// stops moving. A grid-rounded or widget-snapped coordinate can land within
// tolerance of a higher-priority boundary; settling takes that boundary so
// that resolving a resolved position leaves it unchanged.
func settle(v float64, resolve func(float64) axisResult) axisResult {
	r := resolve(v)
	for pass := 0; pass < maxPasses; pass++ {
		next := resolve(r.value)
		if next.value == r.value {
			return next
		}
		r = next
	}
	return r
}

// resolveEdge snaps a single trailing coordinate.
func resolveEdge(edge, hi, inset float64, targets []span, opts Options) axisResult {
	tol := opts.Tolerance

	if math.Abs(edge-hi) <= tol {
		return axisResult{value: hi, cat: edgeCategory(inset), guide: ptr(hi)}
	}

	var best *match
	for _, t := range targets {
		for i, g := range [3]float64{t.lead, t.trail(), t.center()} {
			m := match{dist: math.Abs(edge - g), rank: i, guide: g}
			if m.dist > tol {
				continue
			}
			if best == nil || m.better(*best) {
				best = &m
			}
		}
	}
	if best != nil {
		return axisResult{value: best.guide, cat: WidgetEdge, guide: ptr(best.guide)}
	}

	if opts.GridSize > 0 {
		return axisResult{value: roundTo(edge, opts.GridSize), cat: Grid}
	}
	return axisResult{value: edge}
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}

func ptr(v float64) *float64 { return &v }
