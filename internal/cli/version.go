package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/buildinfo"
	"github.com/matzehuels/inkframe/pkg/config"
)

// versionCommand creates the version command. Unlike --version it also
// reports the Go toolchain, the platform and the config file in use.
func (c *CLI) versionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("%s %s\n", appName, StyleHighlight.Render(info.Version))
			printKeyValue("commit", info.Commit)
			printKeyValue("built", info.Date)
			printKeyValue("go", info.GoVersion)
			printKeyValue("platform", info.Platform)
			if path, err := config.Path(); err == nil {
				printKeyValue("config", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
