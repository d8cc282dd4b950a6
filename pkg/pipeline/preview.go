package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/constraints"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/preview"
	"github.com/matzehuels/inkframe/pkg/template"
)

// PreviewResult holds rendered proof sheets keyed by page, then format.
type PreviewResult struct {
	Pages     []int
	Artifacts map[int]map[string][]byte
	CacheHits int // artifacts served from the cache
}

// Artifact returns the rendered bytes for a page and format.
func (r *PreviewResult) Artifact(page int, format string) ([]byte, bool) {
	data, ok := r.Artifacts[page][format]
	return data, ok
}

// PreviewWithCacheInfo renders the requested pages of t concurrently. Each
// page is composed from its master and page widgets; with opts.Warnings the
// widgets are validated against the target device first.
func (r *Runner) PreviewWithCacheInfo(ctx context.Context, t template.Template, opts Options) (*PreviewResult, error) {
	if err := opts.ValidateForPreview(t.PageCount); err != nil {
		return nil, err
	}
	p, err := r.Profile(t, opts)
	if err != nil {
		return nil, err
	}
	hash, err := templateHash(t)
	if err != nil {
		return nil, err
	}

	pages := opts.PageList(t.PageCount)
	res := &PreviewResult{
		Pages:     pages,
		Artifacts: make(map[int]map[string][]byte, len(pages)),
	}
	for _, n := range pages {
		res.Artifacts[n] = make(map[string][]byte, len(opts.Formats))
	}

	start := time.Now()
	observability.Pipeline().OnPreviewStart(ctx, fmt.Sprint(opts.Formats), len(pages))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, n := range pages {
		n := n
		g.Go(func() error {
			page := r.composePage(t, n, p, opts)
			for _, format := range opts.Formats {
				if err := gctx.Err(); err != nil {
					return err
				}
				key := r.Keyer.PreviewKey(hash, n, opts.PreviewKeyOpts(format, p))

				data, hit := []byte(nil), false
				if !opts.Refresh {
					data, hit = r.getBytes(gctx, "preview", key)
				}
				if !hit {
					var err error
					if data, err = renderPage(page, format, p, opts); err != nil {
						return fmt.Errorf("page %d: %w", n, err)
					}
					r.setBytes(gctx, "preview", key, data, r.ttl(cache.TTLPreview))
				}

				mu.Lock()
				res.Artifacts[n][format] = data
				if hit {
					res.CacheHits++
				}
				mu.Unlock()
			}
			return nil
		})
	}
	err = g.Wait()

	observability.Pipeline().OnPreviewComplete(ctx, fmt.Sprint(opts.Formats), len(pages), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered previews", "pages", len(pages), "formats", opts.Formats,
		"cached", res.CacheHits, "duration", time.Since(start))
	return res, nil
}

// Preview is a convenience wrapper that calls PreviewWithCacheInfo.
func (r *Runner) Preview(ctx context.Context, t template.Template, opts Options) (map[int]map[string][]byte, error) {
	res, err := r.PreviewWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts, nil
}

func (r *Runner) composePage(t template.Template, n int, p device.Profile, opts Options) preview.Page {
	page := preview.FromTemplate(t, n)
	if opts.Warnings {
		page.Warnings = constraints.Validate(page.Widgets, 1, 1, p.Constraints)
	}
	return page
}

func renderPage(page preview.Page, format string, p device.Profile, opts Options) ([]byte, error) {
	po := []preview.Option{preview.WithScale(opts.Scale), preview.WithGuides()}
	if opts.Margins {
		po = append(po, preview.WithMargins())
	}
	if opts.Labels {
		po = append(po, preview.WithLabels())
	}
	if opts.Warnings {
		po = append(po, preview.WithWarnings())
	}
	if opts.Quantize {
		po = append(po, preview.WithQuantize(p.Constraints.GrayscaleLevels))
	}

	switch format {
	case FormatSVG:
		return preview.RenderSVG(page, po...), nil
	case FormatPNG:
		return preview.RenderPNG(page, po...)
	case FormatJSON:
		return preview.RenderJSON(page)
	}
	return nil, ValidateFormat(format)
}
