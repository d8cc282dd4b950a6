// Package cache provides the storage layer for rendered previews and
// rescale plans.
//
// Three backends implement [Cache]: [FileCache] for local CLI use,
// [RedisCache] for sharing results between machines, and [NullCache] when
// caching is disabled. Keys are built by a [Keyer] from a content hash of the
// template and the options that affect the output, so a changed template or
// option never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Default entry lifetimes.
const (
	TTLPreview = 7 * 24 * time.Hour
	TTLPlan    = 24 * time.Hour
)

// =============================================================================
// Keys
// =============================================================================

// Keyer builds cache keys.
type Keyer interface {
	// PreviewKey identifies a rendered page preview.
	PreviewKey(templateHash string, page int, opts PreviewKeyOpts) string

	// PlanKey identifies a rescale plan.
	PlanKey(templateHash string, opts PlanKeyOpts) string
}

// PreviewKeyOpts are the options that change a preview's bytes.
type PreviewKeyOpts struct {
	Format   string  `json:"format"`
	Device   string  `json:"device,omitempty"`
	Profile  string  `json:"profile,omitempty"` // hash of the device profile
	Scale    float64 `json:"scale,omitempty"`
	Quantize int     `json:"quantize,omitempty"` // gray levels, 0 for none
	Warnings bool    `json:"warnings,omitempty"`
	Margins  bool    `json:"margins,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
}

// PlanKeyOpts are the options that change a rescale plan.
type PlanKeyOpts struct {
	Device  string  `json:"device"`
	Profile string  `json:"profile,omitempty"` // hash of the device profile
	Mode    string  `json:"mode"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PreviewKey implements Keyer.
func (DefaultKeyer) PreviewKey(templateHash string, page int, opts PreviewKeyOpts) string {
	return hashKey("preview", templateHash, page, opts)
}

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(templateHash string, opts PlanKeyOpts) string {
	return hashKey("plan", templateHash, opts)
}
