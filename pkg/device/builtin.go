package device

import "github.com/matzehuels/inkframe/pkg/geom"

// DefaultName is the profile used when none is configured.
const DefaultName = "remarkable-2"

// px converts device pixels at the given density to points.
func px(pixels, ppi float64) float64 {
	return geom.Round(pixels/ppi*72, 1)
}

// Shared constraint sets. Pen tablets resolve fine strokes but need finger
// sized tap targets; print profiles have no touch floor.
var (
	einkTablet = geom.DeviceConstraints{
		MinFontPt:        7,
		MinStrokePt:      0.5,
		MinTouchTargetPt: 28,
		GrayscaleLevels:  16,
		MaxGrayFillArea:  40000,
	}
	colorTablet = geom.DeviceConstraints{
		MinFontPt:        7,
		MinStrokePt:      0.5,
		MinTouchTargetPt: 28,
		GrayscaleLevels:  16,
	}
	paper = geom.DeviceConstraints{
		MinFontPt:       5,
		MinStrokePt:     0.25,
		GrayscaleLevels: 256,
	}
)

// Builtin returns the profiles shipped with inkframe.
func Builtin() []Profile {
	return []Profile{
		{
			Name: "remarkable-2", Title: "reMarkable 2",
			Width: px(1404, 226), Height: px(1872, 226),
			SafeMargins: geom.Margins{Top: 18, Right: 18, Bottom: 18, Left: 36},
			Constraints: einkTablet, Builtin: true,
		},
		{
			Name: "remarkable-paper-pro", Title: "reMarkable Paper Pro",
			Width: px(1620, 229), Height: px(2160, 229),
			SafeMargins: geom.Margins{Top: 18, Right: 18, Bottom: 18, Left: 36},
			Constraints: colorTablet, Builtin: true,
		},
		{
			Name: "kindle-scribe", Title: "Kindle Scribe",
			Width: px(1860, 300), Height: px(2480, 300),
			SafeMargins: geom.Margins{Top: 36, Right: 18, Bottom: 18, Left: 18},
			Constraints: einkTablet, Builtin: true,
		},
		{
			Name: "boox-note-air", Title: "BOOX Note Air",
			Width: px(1404, 227), Height: px(1872, 227),
			SafeMargins: geom.Uniform(18),
			Constraints: einkTablet, Builtin: true,
		},
		{
			Name: "supernote-a5x", Title: "Supernote A5 X",
			Width: px(1404, 226), Height: px(1872, 226),
			SafeMargins: geom.Margins{Top: 24, Right: 18, Bottom: 18, Left: 18},
			Constraints: einkTablet, Builtin: true,
		},
		{
			Name: "letter", Title: "US Letter (print)",
			Width: 612, Height: 792,
			SafeMargins: geom.Uniform(36),
			Constraints: paper, Builtin: true,
		},
		{
			Name: "a4", Title: "A4 (print)",
			Width: 595.3, Height: 841.9,
			SafeMargins: geom.Uniform(36),
			Constraints: paper, Builtin: true,
		},
	}
}
