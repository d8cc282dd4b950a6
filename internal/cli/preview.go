package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/pipeline"
)

// previewFlags holds the preview flags that are not pipeline options.
type previewFlags struct {
	outDir  string
	formats string
	pages   string
	noCache bool
}

// previewCommand creates the preview command for rendering proof sheets.
func (c *CLI) previewCommand() *cobra.Command {
	var flags previewFlags
	opts := c.baseOptions()
	opts.Warnings = true
	opts.Margins = true

	cmd := &cobra.Command{
		Use:   "preview [template.json]",
		Short: "Render pages to SVG, PNG or JSON proof sheets",
		Long: `Render pages to SVG, PNG or JSON proof sheets.

Each page is composed from its master and its own widgets and drawn as a
wireframe: the canvas, the safe-area margins, every widget box with kind
decorations, and outlines around widgets that break a device limit. Master
widgets are drawn dashed. PNG output can be quantized to the device's gray
levels to judge e-ink contrast.

Pages render concurrently and are cached; an unchanged template and options
are served from the cache.

Files are written as <name>-p<page>.<format> in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.formats != "" {
				opts.Formats = parseFormats(flags.formats)
			}
			pages, err := parsePages(flags.pages)
			if err != nil {
				return err
			}
			opts.Pages = pages
			return c.runPreview(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outDir, "output", "o", "", "output directory (default: next to the template)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.pages, "pages", "p", "", "pages to render, e.g. 1,3-5 (default: all)")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "device profile for warnings and quantization")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "output pixels per point")
	cmd.Flags().BoolVar(&opts.Quantize, "quantize", opts.Quantize, "quantize PNG output to the device's gray levels")
	cmd.Flags().BoolVar(&opts.Warnings, "warnings", opts.Warnings, "outline widgets with constraint warnings")
	cmd.Flags().BoolVar(&opts.Margins, "margins", opts.Margins, "draw the safe-area margins")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label widgets with their kind and ID")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPreview renders the requested pages and writes one file per page and
// format.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, flags previewFlags) error {
	t, err := loadTemplate(input)
	if err != nil {
		return err
	}
	c.defaultDevice(&opts, t)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering previews...")
	spinner.Start()

	res, err := runner.PreviewWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Preview failed")
		return fmt.Errorf("render preview: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	dir := flags.outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	var written []string
	for _, n := range res.Pages {
		for _, format := range opts.Formats {
			data, ok := res.Artifact(n, format)
			if !ok {
				continue
			}
			path := filepath.Join(dir, previewFileName(base, n, format))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	printSuccess("Rendered %d %s", len(res.Pages), plural(len(res.Pages), "page", "pages"))
	for _, path := range written {
		printFile(path)
	}
	fmt.Println(statsLine(
		dimf("%s", strings.Join(opts.Formats, ", ")),
		dimf("%d from cache", res.CacheHits),
		cacheStatus(res.CacheHits == len(written) && len(written) > 0),
	))
	return nil
}

// previewFileName names the file for one page and format.
func previewFileName(base string, page int, format string) string {
	return fmt.Sprintf("%s-p%d.%s", base, page, format)
}
