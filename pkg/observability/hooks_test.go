package observability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "flow.json")
	p.OnLoadComplete(ctx, "flow.json", 3, time.Second, nil)
	p.OnRenderStart(ctx, "flow", 3)
	p.OnRenderComplete(ctx, "flow", 9, time.Second, nil)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/render")
	h.OnResponse(ctx, "POST", "/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	assert.Same(t, customPipeline, Pipeline())

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	assert.Same(t, customHTTP, HTTP())

	SetPipelineHooks(nil)
	assert.Same(t, customPipeline, Pipeline(), "nil must not replace registered hooks")

	Reset()
	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	p := &testPipelineHooks{}
	SetPipelineHooks(p)

	ctx := context.Background()
	Pipeline().OnRenderStart(ctx, "flow", 3)
	Pipeline().OnRenderComplete(ctx, "flow", 9, time.Millisecond, nil)

	assert.Equal(t, []string{"render-start:flow", "render-complete:flow"}, p.events)
}

type testPipelineHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *testPipelineHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *testPipelineHooks) OnLoadStart(_ context.Context, path string) {
	h.record("load-start:" + path)
}

func (h *testPipelineHooks) OnLoadComplete(_ context.Context, path string, _ int, _ time.Duration, _ error) {
	h.record("load-complete:" + path)
}

func (h *testPipelineHooks) OnRenderStart(_ context.Context, id string, _ int) {
	h.record("render-start:" + id)
}

func (h *testPipelineHooks) OnRenderComplete(_ context.Context, id string, _ int, _ time.Duration, _ error) {
	h.record("render-complete:" + id)
}

type testHTTPHooks struct{}

func (*testHTTPHooks) OnRequest(context.Context, string, string)                     {}
func (*testHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
