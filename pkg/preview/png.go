package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/inkframe/pkg/constraints"
)

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// RenderPNG rasterizes p at the configured scale. With WithQuantize the
// result is a grayscale image limited to that many levels, approximating
// how an e-ink panel shows it.
func RenderPNG(p Page, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	if !p.Canvas.Valid() {
		return nil, fmt.Errorf("render png: invalid canvas %v × %v", p.Canvas.Width, p.Canvas.Height)
	}
	ttf, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	w := int(math.Ceil(p.Canvas.Width * o.scale))
	h := int(math.Ceil(p.Canvas.Height * o.scale))
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	faces := make(map[float64]font.Face)
	faceFor := func(size float64) font.Face {
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(ttf, &truetype.Options{
			Size:    size * o.scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		faces[size] = f
		return f
	}

	for _, s := range buildShapes(p, o) {
		drawShape(dc, s, o.scale, faceFor)
	}

	var img image.Image = dc.Image()
	if o.quantize >= 2 {
		img = quantize(img, o.quantize)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawShape(dc *gg.Context, s shape, k float64, faceFor func(float64) font.Face) {
	x, y, w, h := s.x*k, s.y*k, s.w*k, s.h*k

	dc.SetLineWidth(math.Max(s.width*k, 1))
	if s.dashed {
		dc.SetDash(3*k, 2*k)
	} else {
		dc.SetDash()
	}

	switch s.kind {
	case shapeRect:
		if c, ok := inkColor(s.fill); ok {
			dc.DrawRectangle(x, y, w, h)
			dc.SetColor(c)
			dc.Fill()
		}
		if c, ok := inkColor(s.stroke); ok {
			dc.DrawRectangle(x, y, w, h)
			dc.SetColor(c)
			dc.Stroke()
		}
	case shapeLine:
		if c, ok := inkColor(s.stroke); ok {
			dc.DrawLine(x, y, x+w, y+h)
			dc.SetColor(c)
			dc.Stroke()
		}
	case shapeDot:
		if c, ok := inkColor(s.fill); ok {
			dc.DrawCircle(x, y, math.Max(w, 0.5))
			dc.SetColor(c)
			dc.Fill()
		}
	case shapeText:
		if c, ok := inkColor(s.fill); ok {
			dc.SetFontFace(faceFor(s.size))
			dc.SetColor(c)
			dc.DrawString(s.text, x, y)
		}
	}
}

// inkColor parses the colors used in shapes. Hex colors keep their hue;
// named colors become the matching gray.
func inkColor(s string) (color.Color, bool) {
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}, true
		}
	}
	l, ok := constraints.Luminance(s)
	if !ok {
		return nil, false
	}
	v := uint8(math.Round(l * 255))
	return color.Gray{Y: v}, true
}

// quantize converts img to gray and snaps each pixel to one of levels evenly
// spaced values.
func quantize(img image.Image, levels int) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	step := 255.0 / float64(levels-1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			out.SetGray(x, y, color.Gray{Y: uint8(math.Round(math.Round(float64(g.Y)/step) * step))})
		}
	}
	return out
}
