package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnRecalcStart(ctx, "map-1", 10)
	p.OnRecalcComplete(ctx, "map-1", 3, 0, time.Second, nil)
	p.OnDiagnostic(ctx, "map-1", "poi", "UNKNOWN_REFERENCE")
	p.OnValidate(ctx, "poi", 2)

	s := NoopStoreHooks{}
	s.OnLoad(ctx, "file", "map-1", time.Millisecond, nil)
	s.OnSave(ctx, "file", "map-1", 10, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "recalc")
	c.OnCacheMiss(ctx, "recalc")
	c.OnCacheSet(ctx, "recalc", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/maps")
	h.OnResponse(ctx, "GET", "/maps", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore NoopPipelineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	h.SetAll()

	ctx := context.Background()
	Pipeline().OnRecalcStart(ctx, "map-7", 4)
	Store().OnSave(ctx, "file", "map-7", 4, time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "recalc")
	HTTP().OnResponse(ctx, "POST", "/recalculate", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"recalc start", "map-7", "store save", "cache miss", "/recalculate"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
