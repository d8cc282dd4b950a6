package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/template"
)

// CheckResult is the outcome of Runner.Check.
type CheckResult struct {
	Profile  device.Profile        `json:"device"`
	Stats    template.Stats        `json:"stats"`
	Warnings []constraints.Warning `json:"warnings"`

	// Outside lists widgets that extend past the canvas.
	Outside []string `json:"outside,omitempty"`
}

// Clean reports whether the check found nothing to fix.
func (r *CheckResult) Clean() bool {
	return len(r.Warnings) == 0 && len(r.Outside) == 0
}

// Check verifies the template's invariants and validates every widget, in
// pages and masters, against the target device at the current size.
// Invariant violations are errors; constraint violations are warnings.
func (r *Runner) Check(ctx context.Context, t template.Template, opts Options) (*CheckResult, error) {
	start := time.Now()
	res, err := r.check(t, opts)
	warnings := 0
	if res != nil {
		warnings = len(res.Warnings)
	}
	observability.Pipeline().OnCheckComplete(ctx, t.Name, len(t.AllWidgets()), warnings, time.Since(start), err)
	return res, err
}

func (r *Runner) check(t template.Template, opts Options) (*CheckResult, error) {
	if err := t.Check(); err != nil {
		return nil, err
	}
	p, err := r.Profile(t, opts)
	if err != nil {
		return nil, err
	}

	all := t.AllWidgets()
	res := &CheckResult{
		Profile:  p,
		Stats:    t.Stats(),
		Warnings: constraints.Validate(all, 1, 1, p.Constraints),
	}
	bounds := t.Canvas.Bounds()
	for _, w := range all {
		if !bounds.Contains(w.Position) {
			res.Outside = append(res.Outside, w.ID)
		}
	}

	r.Logger.Debug("checked template", "template", t.Name, "device", p.Name,
		"widgets", len(all), "warnings", len(res.Warnings), "outside", len(res.Outside))
	return res, nil
}
