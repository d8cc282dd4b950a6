package preview

import (
	"strings"

	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Both renderers draw the same list of shapes, built once per page.

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeLine
	shapeDot
	shapeText
)

type shape struct {
	kind   shapeKind
	x, y   float64
	w, h   float64 // rect size, or line end point offset
	stroke string
	fill   string
	width  float64
	dashed bool
	text   string
	size   float64
	title  string
	class  string
}

const (
	colorPaper  = "#ffffff"
	colorInk    = "#000000"
	colorMaster = "#777777"
	colorSafe   = "#9e9e9e"
	colorWarn   = "#d62728"
	colorGuide  = "#1f77b4"

	hairline = 0.5

	// maxRules bounds the decoration lines drawn for one widget.
	maxRules = 400
)

func buildShapes(p Page, o options) []shape {
	out := []shape{{
		kind: shapeRect, w: p.Canvas.Width, h: p.Canvas.Height,
		fill: colorPaper, class: "canvas",
	}}

	if o.margins {
		s := p.Canvas.SafeArea()
		out = append(out, shape{
			kind: shapeRect, x: s.X, y: s.Y, w: s.Width, h: s.Height,
			stroke: colorSafe, width: hairline, dashed: true, class: "safe-area",
		})
	}

	var warned map[string][]constraints.Warning
	if o.warnings {
		warned = constraints.ByWidget(p.Warnings)
	}

	for _, w := range p.Widgets {
		out = append(out, widgetShapes(w, p.fromMaster(w))...)
		if o.labels {
			out = append(out, labelShape(w))
		}
		if ws := warned[w.ID]; len(ws) > 0 {
			msgs := make([]string, len(ws))
			for i, wr := range ws {
				msgs[i] = wr.Message
			}
			pos := w.Position
			out = append(out, shape{
				kind: shapeRect, x: pos.X, y: pos.Y, w: pos.Width, h: pos.Height,
				stroke: colorWarn, width: 1.5, class: "warning",
				title: strings.Join(msgs, "\n"),
			})
		}
	}

	if o.guides {
		for _, g := range p.Guides {
			s := shape{kind: shapeLine, stroke: colorGuide, width: hairline, dashed: true, class: "guide"}
			if g.Axis == GuideX {
				s.x, s.h = g.At, p.Canvas.Height
			} else {
				s.y, s.w = g.At, p.Canvas.Width
			}
			out = append(out, s)
		}
	}
	return out
}

func widgetShapes(w widget.Widget, master bool) []shape {
	pos := w.Position
	ink := colorInk
	if master {
		ink = colorMaster
	}

	box := shape{
		kind: shapeRect, x: pos.X, y: pos.Y, w: pos.Width, h: pos.Height,
		stroke: ink, width: hairline, dashed: master, class: string(w.Kind),
	}
	if p, ok := w.Props.(widget.BoxProps); ok {
		if _, ok := constraints.Luminance(p.Fill); ok {
			box.fill = p.Fill
		}
	}
	out := []shape{box}

	line := func(x1, y1, x2, y2, width float64) shape {
		if width <= 0 {
			width = hairline
		}
		return shape{kind: shapeLine, x: x1, y: y1, w: x2 - x1, h: y2 - y1, stroke: ink, width: width}
	}

	switch p := w.Props.(type) {
	case widget.LinesProps:
		for _, y := range steps(pos.Y, pos.Bottom(), p.LineSpacing) {
			out = append(out, line(pos.Left(), y, pos.Right(), y, p.LineThickness))
		}
	case widget.GridProps:
		out = append(out, gridShapes(pos, p.CellSize, p.CellSize, line)...)
	case widget.DotGridProps:
		r := p.DotSize / 2
		if r <= 0 {
			r = hairline
		}
		xs, ys := steps(pos.X, pos.Right(), p.Spacing), steps(pos.Y, pos.Bottom(), p.Spacing)
		if len(xs)*len(ys) <= maxRules*4 {
			for _, y := range ys {
				for _, x := range xs {
					out = append(out, shape{kind: shapeDot, x: x, y: y, w: r, fill: ink})
				}
			}
		}
	case widget.TableProps:
		if p.Rows > 0 && p.Columns > 0 {
			out = append(out, gridShapes(pos, pos.Width/float64(p.Columns), pos.Height/float64(p.Rows), line)...)
		}
	case widget.CalendarProps:
		// Six weeks of seven days, below a header row.
		header := pos.Height / 7
		body := geom.Position{X: pos.X, Y: pos.Y + header, Width: pos.Width, Height: pos.Height - header}
		out = append(out, line(pos.Left(), body.Y, pos.Right(), body.Y, 0))
		out = append(out, gridShapes(body, body.Width/7, body.Height/6, line)...)
	case widget.CheckboxProps:
		size := p.BoxSize
		if size <= 0 || size > pos.Height {
			size = min(pos.Width, pos.Height)
		}
		y := pos.CenterY() - size/2
		out = append(out, shape{kind: shapeRect, x: pos.X, y: y, w: size, h: size, stroke: ink, width: hairline * 2})
		if p.Label != "" {
			fs := fontSize(w, min(size, defaultTextPt))
			out = append(out, shape{
				kind: shapeText, x: pos.X + size + 3, y: pos.CenterY() + fs/3,
				text: truncate(p.Label, pos.Width-size-3, fs), size: fs, fill: ink,
			})
		}
	case widget.DividerProps:
		if p.Orientation == "vertical" {
			out = append(out, line(pos.CenterX(), pos.Top(), pos.CenterX(), pos.Bottom(), lineWidth(w)))
		} else {
			out = append(out, line(pos.Left(), pos.CenterY(), pos.Right(), pos.CenterY(), lineWidth(w)))
		}
		out[len(out)-1].dashed = p.Dashed
	case widget.TextProps:
		if p.Text != "" {
			fs := fontSize(w, defaultTextPt)
			out = append(out, shape{
				kind: shapeText, x: pos.X + 1, y: pos.Y + fs,
				text: truncate(p.Text, pos.Width, fs), size: fs, fill: ink,
			})
		}
	}
	return out
}

func gridShapes(pos geom.Position, dx, dy float64, line func(x1, y1, x2, y2, width float64) shape) []shape {
	var out []shape
	for _, x := range steps(pos.X, pos.Right(), dx) {
		out = append(out, line(x, pos.Top(), x, pos.Bottom(), 0))
	}
	for _, y := range steps(pos.Y, pos.Bottom(), dy) {
		out = append(out, line(pos.Left(), y, pos.Right(), y, 0))
	}
	return out
}

// steps returns the interior multiples of step between lo and hi.
func steps(lo, hi, step float64) []float64 {
	if step <= 0 || hi <= lo {
		return nil
	}
	var out []float64
	for v := lo + step; v < hi-1e-9 && len(out) < maxRules; v += step {
		out = append(out, v)
	}
	return out
}

func labelShape(w widget.Widget) shape {
	text := string(w.Kind)
	if w.ID != "" {
		text += " " + w.ID
	}
	return shape{
		kind: shapeText, x: w.Position.X + 1.5, y: w.Position.Y + labelSize + 1,
		text: truncate(text, w.Position.Width-2, labelSize), size: labelSize,
		fill: colorGuide, class: "label",
	}
}

func fontSize(w widget.Widget, fallback float64) float64 {
	if w.Style != nil && w.Style.FontSize > 0 {
		return w.Style.FontSize
	}
	return fallback
}

func lineWidth(w widget.Widget) float64 {
	if w.Style != nil && w.Style.LineWidth > 0 {
		return w.Style.LineWidth
	}
	return hairline
}
