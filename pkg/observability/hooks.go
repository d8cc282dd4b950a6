// Package observability provides hooks for metrics, tracing, and logging.
//
// The engine packages stay free of logging; the pipeline reports what it does
// through the hooks registered here. The CLI installs [LogHooks] in verbose
// mode so every stage prints its timing, and embedders can install their own
// implementation to feed a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    logger := log.New(os.Stderr)
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    observability.SetCacheHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// The pipeline calls them around each stage:
//
//	observability.Pipeline().OnRescaleStart(ctx, "proportional", len(widgets))
//	// ... rescale ...
//	observability.Pipeline().OnRescaleComplete(ctx, "proportional", len(warnings), elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Constraint check events
	OnCheckComplete(ctx context.Context, template string, widgets, warnings int, duration time.Duration, err error)

	// Rescale events
	OnRescaleStart(ctx context.Context, mode string, widgets int)
	OnRescaleComplete(ctx context.Context, mode string, warnings int, duration time.Duration, err error)

	// OnSnap records a single snap resolution. Categories are empty when an
	// axis did not snap.
	OnSnap(ctx context.Context, widgetID, snappedX, snappedY string)

	// Preview events
	OnPreviewStart(ctx context.Context, format string, pages int)
	OnPreviewComplete(ctx context.Context, format string, pages int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCheckComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRescaleStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnRescaleComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnSnap(context.Context, string, string, string)                       {}
func (NoopPipelineHooks) OnPreviewStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnPreviewComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
