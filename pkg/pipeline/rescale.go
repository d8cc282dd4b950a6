package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/rescale"
	"github.com/matzehuels/inkframe/pkg/template"
)

// RescaleResult is the outcome of Runner.Rescale.
type RescaleResult struct {
	Template template.Template
	Profile  device.Profile
	Plan     rescale.Plan

	// Remaining are the violations left after applying, empty when
	// auto-fix resolved everything.
	Remaining []constraints.Warning
}

// PlanRescaleWithCacheInfo computes the scale that fits every widget of t,
// in pages and masters, to the target canvas and the constraint warnings it
// would cause, without changing anything. It reports whether the plan came
// from the cache.
func (r *Runner) PlanRescaleWithCacheInfo(ctx context.Context, t template.Template, opts Options) (rescale.Plan, bool, error) {
	if err := opts.ValidateForRescale(); err != nil {
		return rescale.Plan{}, false, err
	}
	p, err := r.Profile(t, opts)
	if err != nil {
		return rescale.Plan{}, false, err
	}

	hash, err := templateHash(t)
	if err != nil {
		return rescale.Plan{}, false, err
	}
	key := r.Keyer.PlanKey(hash, opts.PlanKeyOpts(p))

	var plan rescale.Plan
	if !opts.Refresh && r.getJSON(ctx, "plan", key, &plan) {
		return plan, true, nil
	}

	w, h := opts.target(p)
	plan, err = rescale.Preview(t.AllWidgets(), w, h, rescale.Mode(opts.Mode), p.Constraints)
	if err != nil {
		return rescale.Plan{}, false, err
	}
	r.setJSON(ctx, "plan", key, plan, r.ttl(cache.TTLPlan))
	return plan, false, nil
}

// PlanRescale is a convenience wrapper that calls PlanRescaleWithCacheInfo and discards the cache hit info.
func (r *Runner) PlanRescale(ctx context.Context, t template.Template, opts Options) (rescale.Plan, error) {
	plan, _, err := r.PlanRescaleWithCacheInfo(ctx, t, opts)
	return plan, err
}

// Rescale applies the planned transform to every widget in every scope, so
// masters and pages stay aligned. The canvas takes the target size; when the
// target is a device profile it also takes the profile's safe margins and
// the template is retagged with the device.
func (r *Runner) Rescale(ctx context.Context, t template.Template, opts Options) (*RescaleResult, error) {
	if err := opts.ValidateForRescale(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Pipeline().OnRescaleStart(ctx, opts.Mode, len(t.AllWidgets()))

	res, err := r.rescale(ctx, t, opts)
	remaining := 0
	if res != nil {
		remaining = len(res.Remaining)
	}
	observability.Pipeline().OnRescaleComplete(ctx, opts.Mode, remaining, time.Since(start), err)
	return res, err
}

func (r *Runner) rescale(ctx context.Context, t template.Template, opts Options) (*RescaleResult, error) {
	p, err := r.Profile(t, opts)
	if err != nil {
		return nil, err
	}
	plan, err := r.PlanRescale(ctx, t, opts)
	if err != nil {
		return nil, err
	}

	c := t.Composition()
	if c.Widgets, err = rescale.Apply(c.Widgets, plan.Scale, opts.AutoFix, p.Constraints); err != nil {
		return nil, err
	}
	for i := range c.Masters {
		if c.Masters[i].Widgets, err = rescale.Apply(c.Masters[i].Widgets, plan.Scale, opts.AutoFix, p.Constraints); err != nil {
			return nil, err
		}
	}
	out := t.WithComposition(c)

	w, h := opts.target(p)
	if opts.Width > 0 && opts.Height > 0 {
		out.Canvas = geom.Canvas{Width: w, Height: h, Margins: t.Canvas.Margins}
	} else {
		out.Canvas = p.Canvas()
		out.Device = p.Name
	}

	res := &RescaleResult{
		Template:  out,
		Profile:   p,
		Plan:      plan,
		Remaining: constraints.Validate(out.AllWidgets(), 1, 1, p.Constraints),
	}
	r.Logger.Info("rescaled template",
		"template", t.Name,
		"device", p.Name,
		"scale", plan.Scale.String(),
		"auto_fix", opts.AutoFix,
		"remaining", len(res.Remaining))
	return res, nil
}
