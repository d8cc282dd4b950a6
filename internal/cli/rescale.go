package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/pipeline"
	"github.com/matzehuels/inkframe/pkg/rescale"
)

// rescaleFlags holds the rescale flags that are not pipeline options.
type rescaleFlags struct {
	output  string // output template (default: overwrite input)
	dryRun  bool   // show the plan without writing
	yes     bool   // apply without asking, even with warnings
	noCache bool
}

// rescaleCommand creates the rescale command for fitting a template to a
// device or canvas size.
func (c *CLI) rescaleCommand() *cobra.Command {
	var flags rescaleFlags
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "rescale [template.json]",
		Short: "Fit a template to a device or canvas size",
		Long: `Fit a template to a device or canvas size.

Every widget, on pages and in masters, is scaled by the same transform so
masters stay aligned with page content. Positions and sizes scale per axis;
font sizes, strokes and touch-sensitive sizes follow the axis or the smaller
factor as appropriate.

When the scaled template would break a device limit (for example a font below
the minimum readable size) the warnings are shown first and you can apply the
values as computed, apply with auto-fix to raise them to the device minimums,
or cancel. Use --yes to skip the prompt, and --auto-fix to always fix.

Modes:
  proportional  uniform scale, content fits both axes (default)
  width_only    fit the width, keep the vertical scale
  height_only   fit the height, keep the horizontal scale
  stretch       fit both axes independently`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRescale(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "target device profile")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", opts.Mode, "rescale mode: proportional, width_only, height_only, stretch")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "target canvas width in points (with --height, instead of a device)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "target canvas height in points")
	cmd.Flags().BoolVar(&opts.AutoFix, "auto-fix", opts.AutoFix, "raise values below the device minimums")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the plan without writing")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "apply without asking when there are warnings")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRescale plans the rescale, asks for confirmation when the plan has
// warnings, then applies it and writes the result.
func (c *CLI) runRescale(ctx context.Context, input string, opts pipeline.Options, flags rescaleFlags) error {
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

	profile, err := runner.Profile(t, opts)
	if err != nil {
		return err
	}
	target := profile.Name
	if opts.Width > 0 && opts.Height > 0 {
		target = fmt.Sprintf("%s × %s", formatPt(opts.Width), formatPt(opts.Height))
	}

	plan, cacheHit, err := runner.PlanRescaleWithCacheInfo(ctx, t, opts)
	if err != nil {
		return fmt.Errorf("plan rescale: %w", err)
	}
	printPlan(plan, target, cacheHit)

	if flags.dryRun {
		printWarnings(plan.Warnings)
		return nil
	}

	if !plan.Clean() && !opts.AutoFix && !flags.yes {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			printWarnings(plan.Warnings)
			printDetail("Not a terminal: applying as computed (use --auto-fix to raise values)")
		} else {
			choice, err := confirmRescale(plan, target)
			if err != nil {
				return fmt.Errorf("confirm rescale: %w", err)
			}
			switch choice {
			case ChoiceCancel:
				printInfo("Rescale cancelled")
				return nil
			case ChoiceAutoFix:
				opts.AutoFix = true
			}
		}
	}

	prog := newProgress(c.Logger)
	res, err := runner.Rescale(ctx, t, opts)
	if err != nil {
		return fmt.Errorf("rescale: %w", err)
	}
	path, err := saveTemplate(res.Template, input, flags.output)
	if err != nil {
		return err
	}
	prog.done("Rescaled " + t.Name)

	printSuccess("Rescaled to %s", target)
	printFile(path)
	if len(res.Remaining) > 0 {
		printWarnings(res.Remaining)
		printNewline()
		printNextStep("Fix", fmt.Sprintf("%s rescale --auto-fix %s", appName, path))
		return nil
	}
	printNewline()
	printNextStep("Preview", fmt.Sprintf("%s preview %s", appName, path))
	return nil
}

func printPlan(plan rescale.Plan, target string, cached bool) {
	printInfo("Rescale to %s", StyleHighlight.Render(target))
	fmt.Println(statsLine(
		dimf("%s", plan.Mode),
		dimf("scale %s", plan.Scale),
		dimf("content %s × %s", formatPt(plan.Content.Width()), formatPt(plan.Content.Height())),
		cacheStatus(cached),
	))
}
