package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mermaidspec/pkg/observability"
	"github.com/matzehuels/mermaidspec/pkg/pipeline"
)

const reviewJSON = `{
  "id": "review-flow",
  "entry_node": "draft",
  "terminal_nodes": ["publish"],
  "nodes": [
    {"id": "draft", "name": "Write draft", "node_type": "llm_generate"},
    {"id": "publish", "name": "Publish", "node_type": "function"}
  ],
  "edges": [{"id": "e1", "source": "draft", "target": "publish", "condition": "llm_decide"}]
}`

func newTestServer(t *testing.T, specDir string) *httptest.Server {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	srv := newServer(pipeline.NewRunner(logger), specDir, pipeline.Options{}, logger)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, contentType, body string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.String()
}

func TestServe_Health(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","version":"dev"}`, body)
}

func TestServe_RenderJSONBody(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/render?direction=LR", "application/json", reviewJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "flowchart LR\n"))
	assert.Contains(t, body, "    draft==>|LLM decides|publish")
	assert.NotEmpty(t, resp.Header.Get("ETag"))
}

func TestServe_EmptyDirectionMeansDefault(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/render?direction=", "application/json", reviewJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.True(t, strings.HasPrefix(body, "flowchart TD\n"), body)
}

func TestServe_RenderYAMLBodyMarkdown(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/render?markdown=true", "application/yaml; charset=utf-8", reviewYAML)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "```mermaid\n"+strings.TrimSuffix(reviewMermaid, "\n")+"\n```\n", body)
}

func TestServe_RenderAcceptJSON(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/render", "", reviewJSON, "Accept", "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var got renderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.True(t, strings.HasPrefix(got.Diagram, "flowchart TD\n"))
	assert.Equal(t, statsResponse{Nodes: 2, Edges: 1, Routes: 0, Lines: 7}, got.Stats)
}

func TestServe_RenderErrors(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"malformed json", "/render", "application/json", `{"nodes": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unsupported type", "/render", "text/csv", "a,b", http.StatusUnsupportedMediaType, "UNSUPPORTED"},
		{"bad markdown flag", "/render?markdown=maybe", "application/json", reviewJSON, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPost, ts.URL+tt.url, tt.contentType, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, body)

			var got errorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, tt.code, string(got.Code))
		})
	}
}

func TestServe_Specs(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "flows/review.yaml", reviewYAML)
	ts := newTestServer(t, dir)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/specs/flows/review.yaml", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, reviewMermaid, body)

	etag := resp.Header.Get("ETag")
	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/specs/flows/review.yaml", "", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/specs/flows/missing.yaml", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/specs/flows/readme.txt", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, ts.URL+"/specs/flows/..%2F..%2Fsecret.json", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_HTTPHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)

	ts := newTestServer(t, t.TempDir())
	doRequest(t, http.MethodGet, ts.URL+"/healthz", "", "")

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Equal(t, []string{"GET /healthz", "GET /healthz 200"}, h.events)
}

func TestServe_ListenAndServeShutsDown(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	srv := newServer(pipeline.NewRunner(logger), t.TempDir(), pipeline.Options{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.listenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestBodyFormat(t *testing.T) {
	for ct, want := range map[string]string{
		"":                                "json",
		"application/json":                "json",
		"application/json; charset=utf-8": "json",
		"text/yaml":                       "yaml",
		"application/x-yaml":              "yaml",
		"application/toml":                "toml",
	} {
		got, err := bodyFormat(ct)
		require.NoError(t, err, ct)
		assert.Equal(t, want, string(got), ct)
	}

	_, err := bodyFormat("image/png")
	assert.Error(t, err)
	_, err = bodyFormat(";;")
	assert.Error(t, err)
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, method+" "+path+" "+strconv.Itoa(status))
}

func TestWriteError_BodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &http.MaxBytesError{Limit: maxBodyBytes})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
}

func TestServe_RenderBodyTooLarge(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	handler := newServer(pipeline.NewRunner(logger), t.TempDir(), pipeline.Options{}, logger).routes()

	padding := strings.Repeat("x", maxBodyBytes+1)
	for contentType, body := range map[string]string{
		"application/json": `{"id": "` + padding + `"}`,
		"application/yaml": "id: " + padding + "\n",
		"application/toml": `id = "` + padding + `"`,
	} {
		t.Run(contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
			assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
		})
	}
}

func TestServe_ETagPerRepresentation(t *testing.T) {
	ts := newTestServer(t, t.TempDir())

	resp, _ := doRequest(t, http.MethodPost, ts.URL+"/render", "application/json", reviewJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	textTag := resp.Header.Get("ETag")
	assert.Equal(t, "Accept", resp.Header.Get("Vary"))

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/render", "application/json", reviewJSON,
		"Accept", "application/json", "If-None-Match", textTag)
	require.Equal(t, http.StatusOK, resp.StatusCode, "a text ETag must not validate the JSON body")
	assert.NotEqual(t, textTag, resp.Header.Get("ETag"))
	assert.Equal(t, "Accept", resp.Header.Get("Vary"))
	assert.Contains(t, body, `"diagram"`)

	resp, _ = doRequest(t, http.MethodPost, ts.URL+"/render", "application/json", reviewJSON,
		"Accept", "application/json", "If-None-Match", resp.Header.Get("ETag"))
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodPost, ts.URL+"/render?markdown=true", "application/json", reviewJSON,
		"If-None-Match", textTag)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "markdown is a different representation")
}
