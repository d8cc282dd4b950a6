package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/device"
)

// devicesCommand creates the devices command for listing device profiles.
func (c *CLI) devicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List device profiles",
		Long: `List device profiles.

Built-in profiles cover common e-ink tablets and print sizes. Additional
profiles are read from *.toml files in the profile_dir set in the config
file; use 'devices show' on a built-in profile to get a starting point.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			tbl := newTable("Name", "Title", "Size (pt)", "Font", "Stroke", "Touch", "Grays", "Source")
			for _, p := range runner.Devices.Profiles() {
				k := p.Constraints
				source := "built-in"
				if !p.Builtin {
					source = p.Source
				}
				name := p.Name
				if name == c.Config.Device {
					name += " *"
				}
				tbl.Row(name, p.Title, num(p.Width)+" × "+num(p.Height),
					num(k.MinFontPt), num(k.MinStrokePt), num(k.MinTouchTargetPt),
					strconv.Itoa(k.GrayscaleLevels), source)
			}
			fmt.Println(tbl.Render())
			printDetail("* default device")
			return nil
		},
	}

	cmd.AddCommand(c.devicesShowCommand())
	return cmd
}

// devicesShowCommand creates the "devices show" subcommand.
func (c *CLI) devicesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print a device profile as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			p, err := runner.Devices.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := device.Encode(p)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}
