package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/pipeline"
)

// checkCommand creates the check command for validating a template.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		asJSON bool
		strict bool
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "check [template.json]",
		Short: "Validate a template against a device",
		Long: `Validate a template against a device.

The check command verifies the template's structure (page numbers, masters and
scopes) and validates every widget, on pages and in masters, against the
device's minimum font size, stroke width, touch target and gray fill area.
Widgets that extend past the canvas are listed as well.

The device is taken from --device, then the template, then the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], opts, asJSON, strict)
		},
	}

	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "device profile to validate against")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when there are warnings")

	return cmd
}

// runCheck loads the template, runs the check and prints the result.
func (c *CLI) runCheck(ctx context.Context, input string, opts pipeline.Options, asJSON, strict bool) error {
	t, err := loadTemplate(input)
	if err != nil {
		return err
	}
	c.defaultDevice(&opts, t)

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Check(ctx, t, opts)
	if err != nil {
		return fmt.Errorf("check %s: %w", input, err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		printCheckResult(input, res)
	}

	if strict && !res.Clean() {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s has %d warnings and %d widgets outside the canvas",
			input, len(res.Warnings), len(res.Outside))
	}
	return nil
}

func printCheckResult(input string, res *pipeline.CheckResult) {
	if res.Clean() {
		printSuccess("%s fits %s", input, res.Profile.Name)
	} else {
		printInfo("%s on %s", input, res.Profile.Name)
	}
	printStats(res.Stats)

	printWarnings(res.Warnings)
	if len(res.Outside) > 0 {
		printWarning("%d %s outside the canvas: %s", len(res.Outside),
			plural(len(res.Outside), "widget", "widgets"), strings.Join(res.Outside, ", "))
	}
	if !res.Clean() {
		printNewline()
		printNextStep("Fix", fmt.Sprintf("%s rescale --auto-fix %s", appName, input))
	}
}
