// Package config loads the inkframe user configuration.
//
// The file lives at $XDG_CONFIG_HOME/inkframe/config.toml (falling back to
// ~/.config/inkframe/config.toml). Every key is optional; a missing file
// yields [Default]. Command-line flags override configured values.
//
//	device = "kindle-scribe"
//	profile_dir = "~/tablets"
//
//	[snap]
//	tolerance = 6
//	grid_size = 8
//
//	[rescale]
//	mode = "stretch"
//	auto_fix = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inkframe/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "inkframe"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the user configuration.
type Config struct {
	Device     string        `toml:"device"`
	ProfileDir string        `toml:"profile_dir"`
	Snap       SnapConfig    `toml:"snap"`
	Rescale    RescaleConfig `toml:"rescale"`
	Cache      CacheConfig   `toml:"cache"`
	Preview    PreviewConfig `toml:"preview"`
}

// SnapConfig holds snap resolver defaults.
type SnapConfig struct {
	Enabled   bool    `toml:"enabled"`
	Tolerance float64 `toml:"tolerance"`
	GridSize  float64 `toml:"grid_size"`
}

// RescaleConfig holds rescale defaults.
type RescaleConfig struct {
	Mode    string `toml:"mode"`
	AutoFix bool   `toml:"auto_fix"`
}

// CacheConfig selects and configures the preview cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	TTL       string `toml:"ttl"`
}

// PreviewConfig holds preview rendering defaults.
type PreviewConfig struct {
	Format   string  `toml:"format"`
	Scale    float64 `toml:"scale"`
	Quantize bool    `toml:"quantize"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Device: "remarkable-2",
		Snap: SnapConfig{
			Enabled:   true,
			Tolerance: 5,
			GridSize:  0,
		},
		Rescale: RescaleConfig{
			Mode: "proportional",
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       "168h",
		},
		Preview: PreviewConfig{
			Format:   "svg",
			Scale:    2,
			Quantize: true,
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration at path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys %v", path, undecoded)
	}
	cfg.ProfileDir = expandHome(cfg.ProfileDir)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the configuration from Path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Device != "" {
		if err := errors.ValidateDeviceName(c.Device); err != nil {
			return err
		}
	}
	if c.Snap.Tolerance < 0 || c.Snap.GridSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "snap tolerance and grid size must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %q (valid: file, redis, none)", c.Cache.Backend)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	if c.Preview.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "preview scale must not be negative")
	}
	return nil
}

// TTLDuration parses the cache TTL. An empty TTL means no expiry.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid cache ttl: %q", c.TTL)
	}
	return d, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
