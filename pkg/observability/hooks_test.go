package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnCheckComplete(ctx, "planner", 12, 2, time.Millisecond, nil)
	p.OnRescaleStart(ctx, "proportional", 12)
	p.OnRescaleComplete(ctx, "proportional", 0, time.Millisecond, nil)
	p.OnSnap(ctx, "cb-1", "margin", "")
	p.OnPreviewStart(ctx, "svg", 3)
	p.OnPreviewComplete(ctx, "svg", 3, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "preview")
	c.OnCacheMiss(ctx, "plan")
	c.OnCacheSet(ctx, "preview", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnSnap(ctx, "cb-1", "margin", "")
	h.OnRescaleComplete(ctx, "stretch", 0, time.Millisecond, errors.New("boom"))
	h.OnCacheSet(ctx, "preview", 512)

	out := buf.String()
	for _, want := range []string{"snap", "cb-1", "none", "rescale failed", "boom", "cache set", "512"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	h := NewLogHooks(logger)

	h.OnPreviewComplete(context.Background(), "png", 2, time.Second, nil)
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %s", buf.String())
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
