// Package pipeline runs inkframe's layout engine over whole templates.
//
// The engine packages (snap, constraints, rescale, compose) work on plain
// widget slices and know nothing about files, devices or caches. This
// package is the layer the CLI calls: it resolves the target device
// profile, applies the engine across every page and master of a template,
// caches rendered previews and rescale plans, and reports each stage to the
// observability hooks.
//
// # Stages
//
//  1. Check: template invariants plus constraint warnings at the current size
//  2. Rescale: plan (scale + warnings) and apply to a target device or canvas
//  3. Snap: resolve one widget's move or resize against its page
//  4. Preview: draw wireframe proof sheets of composed pages
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Device: "kindle-scribe", Mode: "proportional"}
//	plan, err := runner.PlanRescale(ctx, tmpl, opts)
//	if err != nil {
//	    return err
//	}
//	if !plan.Clean() {
//	    opts.AutoFix = true
//	}
//	out, err := runner.Rescale(ctx, tmpl, opts)
package pipeline

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/rescale"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library callers
// =============================================================================

const (
	// DefaultMode is the rescale mode used when none is given.
	DefaultMode = string(rescale.Proportional)

	// DefaultTolerance is the snap distance in points.
	DefaultTolerance = 5.0

	// DefaultPreviewScale is the number of preview pixels per page point.
	DefaultPreviewScale = 1.0
)

// Format constants for preview output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported preview formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration for a pipeline operation. Each stage
// reads only the fields it needs.
type Options struct {
	// Device selects the target profile by name. Profile, when set, takes
	// precedence. With neither, the template's own device is used, then
	// device.DefaultName.
	Device  string          `json:"device,omitempty"`
	Profile *device.Profile `json:"-"`

	// Rescale options. Width and Height override the profile size.
	Mode    string  `json:"mode,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	AutoFix bool    `json:"auto_fix,omitempty"`

	// Snap options
	SnapDisabled bool    `json:"snap_disabled,omitempty"`
	Tolerance    float64 `json:"tolerance,omitempty"`
	GridSize     float64 `json:"grid_size,omitempty"`

	// Preview options
	Pages    []int    `json:"pages,omitempty"` // empty means every page
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Quantize bool     `json:"quantize,omitempty"` // reduce PNGs to the device's gray levels
	Warnings bool     `json:"warnings,omitempty"`
	Margins  bool     `json:"margins,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a rescale mode is valid.
func ValidateMode(mode string) error {
	_, err := rescale.ParseMode(mode)
	return err
}

// ValidatePages checks that every page is within 1..count.
func ValidatePages(pages []int, count int) error {
	for _, p := range pages {
		if err := errors.ValidatePage(p, count); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRescaleDefaults sets default values for rescaling.
func (o *Options) SetRescaleDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	o.setLoggerDefault()
}

// ValidateForRescale validates and sets defaults for rescaling.
func (o *Options) ValidateForRescale() error {
	o.SetRescaleDefaults()
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "target size must be positive, got %v × %v", o.Width, o.Height)
	}
	if (o.Width > 0) != (o.Height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be given together")
	}
	return nil
}

// SetSnapDefaults sets default values for snapping.
func (o *Options) SetSnapDefaults() {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	o.setLoggerDefault()
}

// ValidateForSnap validates and sets defaults for snapping.
func (o *Options) ValidateForSnap() error {
	o.SetSnapDefaults()
	if o.Tolerance < 0 || o.GridSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance and grid size must not be negative")
	}
	return nil
}

// SetPreviewDefaults sets default values for previews.
func (o *Options) SetPreviewDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPreviewScale
	}
	o.setLoggerDefault()
}

// ValidateForPreview validates and sets defaults for previewing a template
// with pageCount pages.
func (o *Options) ValidateForPreview(pageCount int) error {
	o.SetPreviewDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidatePages(o.Pages, pageCount)
}

// PageList returns the pages to preview: o.Pages sorted and deduplicated, or
// 1..pageCount when empty.
func (o *Options) PageList(pageCount int) []int {
	if len(o.Pages) == 0 {
		out := make([]int, pageCount)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	out := slices.Clone(o.Pages)
	slices.Sort(out)
	return slices.Compact(out)
}

// PreviewKeyOpts returns cache key options for a preview in format.
func (o *Options) PreviewKeyOpts(format string, p device.Profile) cache.PreviewKeyOpts {
	k := cache.PreviewKeyOpts{
		Format:   format,
		Device:   p.Name,
		Profile:  profileHash(p),
		Scale:    o.Scale,
		Warnings: o.Warnings,
		Margins:  o.Margins,
		Labels:   o.Labels,
	}
	if o.Quantize && format == FormatPNG {
		k.Quantize = p.Constraints.GrayscaleLevels
	}
	return k
}

// PlanKeyOpts returns cache key options for a rescale plan.
func (o *Options) PlanKeyOpts(p device.Profile) cache.PlanKeyOpts {
	w, h := o.target(p)
	return cache.PlanKeyOpts{
		Device:  p.Name,
		Profile: profileHash(p),
		Mode:    o.Mode,
		Width:   w,
		Height:  h,
	}
}

// profileHash fingerprints p so that a profile replaced under the same name
// (a user profile overriding a built-in, or an edited profile file) never
// hits entries computed with its old limits.
func profileHash(p device.Profile) string {
	h, err := cache.HashJSON(p)
	if err != nil {
		return p.Name
	}
	return h
}

// target returns the rescale target canvas size.
func (o *Options) target(p device.Profile) (float64, float64) {
	if o.Width > 0 && o.Height > 0 {
		return o.Width, o.Height
	}
	return p.Width, p.Height
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
