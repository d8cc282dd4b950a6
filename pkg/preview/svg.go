package preview

import (
	"bytes"
	"fmt"
)

// RenderSVG draws p as an SVG wireframe. Coordinates stay in page points;
// the scale option only sets the width and height attributes.
func RenderSVG(p Page, opts ...Option) []byte {
	o := newOptions(opts...)
	w, h := p.Canvas.Width, p.Canvas.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*o.scale, h*o.scale)
	fmt.Fprintf(&buf, "  <title>page %d</title>\n", p.Number)
	buf.WriteString(`  <g font-family="monospace">` + "\n")

	for _, s := range buildShapes(p, o) {
		writeShape(&buf, s)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, s shape) {
	attrs := paint(s)
	if s.class != "" {
		attrs = fmt.Sprintf(` class="%s"`, escapeXML(s.class)) + attrs
	}

	var open string
	switch s.kind {
	case shapeRect:
		open = fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s`, s.x, s.y, s.w, s.h, attrs)
	case shapeLine:
		open = fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s`, s.x, s.y, s.x+s.w, s.y+s.h, attrs)
	case shapeDot:
		open = fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"%s`, s.x, s.y, s.w, attrs)
	case shapeText:
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f"%s>%s</text>`+"\n",
			s.x, s.y, s.size, attrs, escapeXML(s.text))
		return
	}

	if s.title != "" {
		fmt.Fprintf(buf, "    %s><title>%s</title></%s>\n", open, escapeXML(s.title), tagName(s.kind))
		return
	}
	fmt.Fprintf(buf, "    %s/>\n", open)
}

func paint(s shape) string {
	fill := s.fill
	if fill == "" {
		fill = "none"
	}
	out := fmt.Sprintf(` fill="%s"`, escapeXML(fill))
	if s.stroke != "" {
		out += fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, s.stroke, s.width)
	}
	if s.dashed {
		out += ` stroke-dasharray="3 2"`
	}
	return out
}

func tagName(k shapeKind) string {
	switch k {
	case shapeLine:
		return "line"
	case shapeDot:
		return "circle"
	case shapeText:
		return "text"
	}
	return "rect"
}
