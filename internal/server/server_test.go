package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/scenepatch/pkg/pipeline"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/store"
)

const testSceneJSON = `{
  "viewBox": {"w": 200, "h": 100},
  "nodes": [
    {"id": "a", "pos": {"x": 40, "y": 50}, "shape": {"kind": "rect", "w": 40, "h": 20}},
    {"id": "b", "pos": {"x": 160, "y": 50}, "shape": {"kind": "circle", "r": 10}}
  ],
  "edges": [{"id": "e", "from": "a", "to": "b"}]
}`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := New(pipeline.NewRunner(nil, nil, nil), st, nil, Options{MaxBodyBytes: 1 << 16})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func do(t *testing.T, method, url, body string) (*http.Response, Response) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out Response
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, out := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || !out.Success {
		t.Fatalf("status = %d, success = %v", resp.StatusCode, out.Success)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != "abc" {
		t.Errorf("request id = %q, want abc", got)
	}
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"svg", `{"scene":` + testSceneJSON + `,"options":{"formats":["svg","json"]}}`, http.StatusOK, ""},
		{"missing scene", `{"options":{}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", `{"scene":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"scene":` + testSceneJSON + `,"extra":1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", `{"scene":` + testSceneJSON + `,"options":{"formats":["pdf"]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid scene", `{"scene":{"nodes":[{"id":"a","shape":{"kind":"blob"}}]}}`, http.StatusBadRequest, "INVALID_SCENE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := do(t, http.MethodPost, ts.URL+"/v1/render", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (error %q)", resp.StatusCode, tt.wantStatus, out.Error)
			}
			if out.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", out.Code, tt.wantCode)
			}
		})
	}
}

func TestRenderArtifacts(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{"scene":` + testSceneJSON + `,"options":{"formats":["svg"]}}`
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out struct {
		Data RenderResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Data.Artifacts["svg"], []byte(`id="node-a"`)) {
		t.Error("svg artifact missing node-a")
	}
	if out.Data.Nodes != 2 || out.Data.Edges != 1 || out.Data.SceneHash == "" {
		t.Errorf("data = %+v", out.Data)
	}
}

func TestBodyTooLarge(t *testing.T) {
	ts, _ := newTestServer(t)
	big := `{"scene":{"nodes":[],"edges":[]},"options":{},"pad":"` + strings.Repeat("x", 1<<17) + `"}`
	resp, _ := do(t, http.MethodPost, ts.URL+"/v1/render", big)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestSceneCRUD(t *testing.T) {
	ts, st := newTestServer(t)

	resp, out := do(t, http.MethodPost, ts.URL+"/v1/scenes", `{"name":"demo","scene":`+testSceneJSON+`}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", resp.StatusCode, out.Error)
	}
	id, _ := out.Data.(map[string]any)["id"].(string)
	if id == "" {
		t.Fatal("no id in create response")
	}

	doc, err := st.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if doc.Name != "demo" || doc.Hash == "" {
		t.Errorf("stored doc = %+v", doc)
	}

	resp, out = do(t, http.MethodGet, ts.URL+"/v1/scenes", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if items, _ := out.Data.([]any); len(items) != 1 {
		t.Errorf("list = %v, want 1 item", out.Data)
	}

	resp, _ = do(t, http.MethodGet, ts.URL+"/v1/scenes/"+id, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", resp.StatusCode)
	}

	resp, _ = do(t, http.MethodPut, ts.URL+"/v1/scenes/"+id, `{"name":"renamed","scene":`+testSceneJSON+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("put status = %d", resp.StatusCode)
	}
	if doc, _ := st.Get(context.Background(), id); doc == nil || doc.Name != "renamed" {
		t.Errorf("doc after put = %+v", doc)
	}

	resp, _ = do(t, http.MethodDelete, ts.URL+"/v1/scenes/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp, out = do(t, http.MethodGet, ts.URL+"/v1/scenes/"+id, "")
	if resp.StatusCode != http.StatusNotFound || out.Code != "NOT_FOUND" {
		t.Errorf("get after delete = %d %q", resp.StatusCode, out.Code)
	}
}

func TestListLimit(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, _ := do(t, http.MethodGet, ts.URL+"/v1/scenes?limit=x", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderStoredScene(t *testing.T) {
	ts, st := newTestServer(t)
	sc, err := scene.Read(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatal(err)
	}
	sc.AnimationSpecs = []scene.AnimationSpec{{
		Version: scene.AnimationVersion,
		Tweens: []scene.Tween{{
			Kind: scene.TweenKind, Target: scene.NodeTarget("a"), Property: "x", To: 140, Duration: 100,
		}},
	}}
	doc := &store.Document{Scene: sc}
	id, err := st.Put(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"svg", "", http.StatusOK, "image/svg+xml", `x="20"`},
		{"animated", "?time=100", http.StatusOK, "image/svg+xml", `x="120"`},
		{"png", "?format=png&scale=1", http.StatusOK, "image/png", "\x89PNG"},
		{"json", "?format=json", http.StatusOK, "application/json", `"layers"`},
		{"bad format", "?format=gif", http.StatusBadRequest, "application/json", "INVALID_FORMAT"},
		{"bad scale", "?scale=big", http.StatusBadRequest, "application/json", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/v1/scenes/" + id + "/render" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, buf.String())
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
			if !strings.Contains(buf.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}

	resp, err := http.Get(ts.URL + "/v1/scenes/missing/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing scene status = %d, want 404", resp.StatusCode)
	}
}

func TestAnimations(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, out := do(t, http.MethodPost, ts.URL+"/v1/animations/compile",
		`{"steps":[{"node":"a","to":{"x":10,"opacity":0.5},"duration":200}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("compile status = %d (%s)", resp.StatusCode, out.Error)
	}
	data, _ := json.Marshal(out.Data)
	var spec scene.AnimationSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatal(err)
	}
	if spec.Version != scene.AnimationVersion || len(spec.Tweens) != 2 {
		t.Errorf("spec = %+v", spec)
	}

	resp, _ = do(t, http.MethodPost, ts.URL+"/v1/animations/validate", string(data))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("validate status = %d", resp.StatusCode)
	}

	resp, out = do(t, http.MethodPost, ts.URL+"/v1/animations/validate", `{"version":"viz-anim/9","tweens":[]}`)
	if resp.StatusCode != http.StatusBadRequest || out.Code != "INVALID_ANIMATION" {
		t.Errorf("invalid spec = %d %q", resp.StatusCode, out.Code)
	}

	resp, _ = do(t, http.MethodPost, ts.URL+"/v1/animations/compile", `{"steps":[{"to":{"x":1}}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("compile without target status = %d, want 400", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, _ := do(t, http.MethodOptions, ts.URL+"/v1/render", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(store.ErrNotFound); got != http.StatusNotFound {
		t.Errorf("statusFor(ErrNotFound) = %d", got)
	}
	if got := statusFor(context.Canceled); got != http.StatusInternalServerError {
		t.Errorf("statusFor(Canceled) = %d", got)
	}
}
