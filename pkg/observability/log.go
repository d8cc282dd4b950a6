package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a charmbracelet logger at
// debug level. Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) done(msg string, duration time.Duration, err error, kv ...any) {
	kv = append(kv, "took", duration.Round(time.Microsecond))
	if err != nil {
		h.logger.Warn(msg+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

// OnCheckComplete implements PipelineHooks.
func (h *LogHooks) OnCheckComplete(_ context.Context, template string, widgets, warnings int, d time.Duration, err error) {
	h.done("check", d, err, "template", template, "widgets", widgets, "warnings", warnings)
}

// OnRescaleStart implements PipelineHooks.
func (h *LogHooks) OnRescaleStart(_ context.Context, mode string, widgets int) {
	h.logger.Debug("rescale start", "mode", mode, "widgets", widgets)
}

// OnRescaleComplete implements PipelineHooks.
func (h *LogHooks) OnRescaleComplete(_ context.Context, mode string, warnings int, d time.Duration, err error) {
	h.done("rescale", d, err, "mode", mode, "warnings", warnings)
}

// OnSnap implements PipelineHooks.
func (h *LogHooks) OnSnap(_ context.Context, widgetID, snappedX, snappedY string) {
	h.logger.Debug("snap", "widget", widgetID, "x", orNone(snappedX), "y", orNone(snappedY))
}

// OnPreviewStart implements PipelineHooks.
func (h *LogHooks) OnPreviewStart(_ context.Context, format string, pages int) {
	h.logger.Debug("preview start", "format", format, "pages", pages)
}

// OnPreviewComplete implements PipelineHooks.
func (h *LogHooks) OnPreviewComplete(_ context.Context, format string, pages int, d time.Duration, err error) {
	h.done("preview", d, err, "format", format, "pages", pages)
}

// OnCacheHit implements CacheHooks.
func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

// OnCacheMiss implements CacheHooks.
func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

// OnCacheSet implements CacheHooks.
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
