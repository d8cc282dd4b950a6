package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/buildinfo"
	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/config"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/pipeline"
	"github.com/matzehuels/inkframe/pkg/template"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// redisPrefix namespaces inkframe keys in a shared Redis.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. Call LoadConfig before RootCommand to apply the user's
// config file.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// LoadConfig reads the user configuration file. Flag defaults are taken from
// it, so it must run before RootCommand.
func (c *CLI) LoadConfig() error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	return nil
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// cache hooks log through the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Inkframe lays out page templates for e-ink tablets",
		Long:         `Inkframe checks, rescales and previews multi-page templates for e-ink tablets and print, snapping widgets to margins and neighbours and keeping them within the limits of the target device.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.rescaleCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.pageCommand())
	root.AddCommand(c.masterCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.devicesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())
	c.registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. User device profiles from
// the configured profile directory are registered next to the built-ins.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	if ttl, err := c.Config.Cache.TTLDuration(); err == nil {
		runner.TTL = ttl
	}

	if dir := c.Config.ProfileDir; dir != "" {
		n, err := runner.Devices.LoadDir(dir)
		if err != nil {
			runner.Close()
			return nil, fmt.Errorf("load device profiles: %w", err)
		}
		c.Logger.Debug("loaded device profiles", "dir", dir, "count", n)
	}
	return runner, nil
}

// newCache opens the configured cache backend. A Redis server that cannot be
// reached degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:   c.Config.Cache.RedisAddr,
			DB:     c.Config.Cache.RedisDB,
			Prefix: redisPrefix,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", c.Config.Cache.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/inkframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the user configuration.
// Command flags are bound on top of these values.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		Mode:         cfg.Rescale.Mode,
		AutoFix:      cfg.Rescale.AutoFix,
		SnapDisabled: !cfg.Snap.Enabled,
		Tolerance:    cfg.Snap.Tolerance,
		GridSize:     cfg.Snap.GridSize,
		Scale:        cfg.Preview.Scale,
		Quantize:     cfg.Preview.Quantize,
		Logger:       c.Logger,
	}
	if cfg.Preview.Format != "" {
		opts.Formats = parseFormats(cfg.Preview.Format)
	}
	return opts
}

// defaultDevice fills in the configured device when neither the flags nor
// the template name one.
func (c *CLI) defaultDevice(opts *pipeline.Options, t template.Template) {
	if opts.Device == "" && opts.Profile == nil && t.Device == "" {
		opts.Device = c.Config.Device
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
