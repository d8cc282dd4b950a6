package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/pipeline"
	"github.com/matzehuels/inkframe/pkg/rescale"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for inkframe.

Device, mode and format flags complete to the known values.

  bash:       source <(inkframe completion bash)
  zsh:        inkframe completion zsh > "${fpath[1]}/_inkframe"
  fish:       inkframe completion fish | source
  powershell: inkframe completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerFlagCompletions attaches value completions to the device, mode
// and format flags of cmd and its subcommands.
func (c *CLI) registerFlagCompletions(cmd *cobra.Command) {
	values := map[string]func() []string{
		"device": func() []string {
			r := device.NewRegistry()
			if c.Config.ProfileDir != "" {
				_, _ = r.LoadDir(c.Config.ProfileDir)
			}
			return r.Names()
		},
		"mode":   rescale.Modes,
		"format": func() []string { return []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON} },
	}
	for name, fn := range values {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return fn(), cobra.ShellCompDirectiveNoFileComp
		})
	}
	for _, sub := range cmd.Commands() {
		c.registerFlagCompletions(sub)
	}
}
