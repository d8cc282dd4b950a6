package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inkframe/pkg/cache"
	"github.com/matzehuels/inkframe/pkg/device"
	"github.com/matzehuels/inkframe/pkg/observability"
	"github.com/matzehuels/inkframe/pkg/template"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, the device registry and the
// logger; it doesn't store results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Devices *device.Registry

	// TTL overrides the default cache entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The device registry starts with the built-in profiles.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Devices: device.NewRegistry(),
	}
}

// Profile resolves the target device for t: opts.Profile, then opts.Device,
// then the template's device, then device.DefaultName.
func (r *Runner) Profile(t template.Template, opts Options) (device.Profile, error) {
	if opts.Profile != nil {
		return *opts.Profile, nil
	}
	name := opts.Device
	if name == "" {
		name = t.Device
	}
	if name == "" {
		name = device.DefaultName
	}
	return r.Devices.Lookup(name)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// templateHash identifies a template's content for cache keys.
func templateHash(t template.Template) (string, error) {
	h, err := cache.HashJSON(t)
	if err != nil {
		return "", fmt.Errorf("hash template: %w", err)
	}
	return h, nil
}

// getJSON reads a cached JSON value into v. Decoding failures count as a miss.
func (r *Runner) getJSON(ctx context.Context, keyType, key string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// setJSON caches the JSON encoding of v. Write failures are logged and
// otherwise ignored; the cache is an optimization.
func (r *Runner) setJSON(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.setBytes(ctx, keyType, key, data, ttl)
}

func (r *Runner) getBytes(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) setBytes(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
