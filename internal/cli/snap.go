package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/pipeline"
)

// snapFlags holds the snap flags that are not pipeline options.
type snapFlags struct {
	page    int
	widget  string
	to      string   // proposed rectangle "x,y,w,h"
	resize  bool     // resize from the bottom-right corner
	exclude []string // co-selected widgets
	apply   bool     // write the snapped position back
	output  string
	asJSON  bool
}

// snapCommand creates the snap command for resolving a widget move.
func (c *CLI) snapCommand() *cobra.Command {
	flags := snapFlags{page: 1}
	opts := c.baseOptions()
	var noSnap bool

	cmd := &cobra.Command{
		Use:   "snap [template.json]",
		Short: "Snap a widget move or resize to margins, widgets and the grid",
		Long: `Snap a widget move or resize to margins, widgets and the grid.

Each axis snaps independently. An edge within the tolerance of the safe-area
margin snaps to it first; otherwise any edge or center within tolerance of
another widget on the page (master widgets included) snaps to the closest one;
otherwise the position rounds to the grid when --grid is set.

Without --to the widget's current rectangle is snapped. With --apply the
result is written back to the template.`,
		Example: `  inkframe snap planner.json --page 2 --widget title --to 22,19,300,40
  inkframe snap planner.json --widget notes --to 20,80,410,300 --resize --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SnapDisabled = noSnap
			return c.runSnap(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.page, "page", "p", flags.page, "page the widget is on")
	cmd.Flags().StringVarP(&flags.widget, "widget", "w", "", "widget ID")
	cmd.Flags().StringVar(&flags.to, "to", "", "proposed rectangle as x,y,width,height")
	cmd.Flags().BoolVar(&flags.resize, "resize", false, "resize from the bottom-right corner instead of moving")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "co-selected widgets that are not snap targets")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", opts.Tolerance, "snap distance in points")
	cmd.Flags().Float64Var(&opts.GridSize, "grid", opts.GridSize, "grid size in points (0 disables)")
	cmd.Flags().BoolVar(&noSnap, "no-snap", opts.SnapDisabled, "disable snapping")
	cmd.Flags().BoolVar(&flags.apply, "apply", false, "write the snapped position to the template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file with --apply (default: overwrite the input)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("widget")

	return cmd
}

// runSnap resolves the move and prints or applies it.
func (c *CLI) runSnap(ctx context.Context, input string, opts pipeline.Options, flags snapFlags) error {
	t, err := loadTemplate(input)
	if err != nil {
		return err
	}

	req := pipeline.SnapRequest{
		Page:     flags.page,
		WidgetID: flags.widget,
		Resize:   flags.resize,
		Exclude:  flags.exclude,
	}
	if flags.to != "" {
		if req.Position, err = parseRect(flags.to); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.SnapWidget(ctx, t, req, opts)
	if err != nil {
		return fmt.Errorf("snap %s: %w", flags.widget, err)
	}

	if flags.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		printSnapResult(flags.widget, res)
	}

	if !flags.apply {
		return nil
	}
	out, err := t.SetPosition(flags.widget, flags.page, res.Position)
	if err != nil {
		return fmt.Errorf("move %s: %w", flags.widget, err)
	}
	path, err := saveTemplate(out, input, flags.output)
	if err != nil {
		return err
	}
	if !flags.asJSON {
		printFile(path)
	}
	return nil
}

func printSnapResult(id string, res pipeline.SnapResult) {
	printSuccess("%s → %s", StyleHighlight.Render(id), res.Position)
	printKeyValue("x", formatSnap(res.SnappedToX))
	printKeyValue("y", formatSnap(res.SnappedToY))
	for _, g := range res.Guides {
		printDetail("guide %s = %s", g.Axis, formatPt(g.At))
	}
}
