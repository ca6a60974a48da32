package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "scene.json")
	p.OnLoadComplete(ctx, "scene.json", 12, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Patch hooks
	pa := NoopPatchHooks{}
	pa.OnPatchComplete(10, 4, 1, time.Millisecond)
	pa.OnResolverError("edge-1", nil)

	// Resource hooks
	NoopResourceHooks{}.OnResourceCreated("marker", "sp-marker-arrow-end-default")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/render")
	h.OnResponse(ctx, "POST", "/v1/render", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/render", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Patch().(NoopPatchHooks); !ok {
		t.Error("Patch() should return NoopPatchHooks by default")
	}
	if _, ok := Resource().(NoopResourceHooks); !ok {
		t.Error("Resource() should return NoopResourceHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customPatch := &testPatchHooks{}
	SetPatchHooks(customPatch)
	if Patch() != customPatch {
		t.Error("SetPatchHooks should set custom hooks")
	}

	customResource := &testResourceHooks{}
	SetResourceHooks(customResource)
	if Resource() != customResource {
		t.Error("SetResourceHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Patch().(NoopPatchHooks); !ok {
		t.Error("Reset() should restore NoopPatchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPatchHooks{}
	SetPatchHooks(custom)

	// Setting nil should be ignored
	SetPatchHooks(nil)

	if Patch() != custom {
		t.Error("SetPatchHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testPatchHooks struct{ NoopPatchHooks }
type testResourceHooks struct{ NoopResourceHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
