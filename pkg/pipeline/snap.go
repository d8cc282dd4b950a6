package pipeline

import (
	"context"
	"slices"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/preview"
	"github.com/matzehuels/inkframe/pkg/snap"
	"github.com/matzehuels/inkframe/pkg/template"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// SnapRequest describes a proposed move or resize of one widget.
type SnapRequest struct {
	Page     int
	WidgetID string
	Position geom.Position // the proposed rectangle
	Resize   bool          // resize from the bottom-right corner instead of moving
	Exclude  []string      // co-selected widgets moving along
}

// SnapResult is the outcome of Runner.SnapWidget.
type SnapResult struct {
	Position   geom.Position   `json:"position"`
	SnappedToX snap.Category   `json:"snapped_to_x,omitempty"`
	SnappedToY snap.Category   `json:"snapped_to_y,omitempty"`
	Guides     []preview.Guide `json:"guides,omitempty"`
}

// SnapWidget resolves req against the effective widgets of its page. The
// moving widget and the excluded widgets are never targets.
func (r *Runner) SnapWidget(ctx context.Context, t template.Template, req SnapRequest, opts Options) (SnapResult, error) {
	if err := opts.ValidateForSnap(); err != nil {
		return SnapResult{}, err
	}
	if err := errors.ValidatePage(req.Page, t.PageCount); err != nil {
		return SnapResult{}, err
	}

	ws := t.Page(req.Page)
	i := slices.IndexFunc(ws, func(w widget.Widget) bool { return w.ID == req.WidgetID })
	if i < 0 {
		return SnapResult{}, errors.Wrap(errors.ErrCodeWidgetNotFound,
			&errors.UnknownError{What: "widget", Name: req.WidgetID},
			"widget %q not found on page %d", req.WidgetID, req.Page)
	}
	pos := req.Position
	if pos == (geom.Position{}) {
		pos = ws[i].Position
	}

	so := snap.Options{
		Enabled:   !opts.SnapDisabled,
		GridSize:  opts.GridSize,
		Tolerance: opts.Tolerance,
		Canvas:    t.Canvas,
		MovingID:  req.WidgetID,
		Exclude:   req.Exclude,
	}
	for _, w := range ws {
		so.Targets = append(so.Targets, snap.Target{ID: w.ID, Position: w.Position})
	}

	var out SnapResult
	var gx, gy *float64
	if req.Resize {
		res := snap.ResolveResize(pos, so)
		out = SnapResult{Position: res.Position(pos), SnappedToX: res.SnappedToX, SnappedToY: res.SnappedToY}
		gx, gy = res.GuideX, res.GuideY
	} else {
		res := snap.Resolve(pos, so)
		out = SnapResult{Position: res.Position(pos), SnappedToX: res.SnappedToX, SnappedToY: res.SnappedToY}
		gx, gy = res.GuideX, res.GuideY
	}
	if gx != nil {
		out.Guides = append(out.Guides, preview.Guide{Axis: preview.GuideX, At: *gx})
	}
	if gy != nil {
		out.Guides = append(out.Guides, preview.Guide{Axis: preview.GuideY, At: *gy})
	}

	observability.Pipeline().OnSnap(ctx, req.WidgetID, string(out.SnappedToX), string(out.SnappedToY))
	return out, nil
}
