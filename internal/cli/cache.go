package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the preview and rescale plan cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached previews and plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Caching is disabled")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached %s", count, plural(count, "entry", "entries"))
			printDetail("Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes where the configured backend stores entries.
func (c *CLI) cacheLocation() string {
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return "none"
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (prefix %s)", c.Config.Cache.RedisAddr, c.Config.Cache.RedisDB, redisPrefix)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return "unknown"
	}
	return dir
}
