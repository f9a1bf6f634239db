package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/relpanel/pkg/cache"
	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/pipeline"
	"github.com/matzehuels/relpanel/pkg/scene"
	"github.com/matzehuels/relpanel/pkg/storage"
)

const sceneJSON = `{
  "width": 400,
  "height": 300,
  "elements": [
    {"name": "blue", "width": 150, "height": 100, "align_right_with_panel": true},
    {"name": "red", "width": 150, "height": 100, "left_of": "blue"}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	ts := httptest.NewServer(New(runner, storage.NewMemoryStore(), WithLogger(logger)))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if body := decode[map[string]string](t, resp); body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRequestID_Echo(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/layout", sceneJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	res := decode[scene.Result](t, resp)
	want := []scene.Block{
		{ID: "blue", X: 250, Y: 0, Width: 150, Height: 100, Constraints: []string{"AlignRightWithPanel"}},
		{ID: "red", X: 100, Y: 0, Width: 150, Height: 100, Constraints: []string{"LeftOf"}},
	}
	if diff := cmp.Diff(want, res.Blocks); diff != "" {
		t.Errorf("blocks (-want +got):\n%s", diff)
	}

	again := do(t, http.MethodPost, ts.URL+"/v1/layout", sceneJSON)
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}

	wide := do(t, http.MethodPost, ts.URL+"/v1/layout?width=600", sceneJSON)
	if res := decode[scene.Result](t, wide); res.Width != 600 {
		t.Errorf("width override: got %g", res.Width)
	}
}

func TestLayout_Errors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", "/v1/layout", `{"elements": [`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", "/v1/layout", `{"elements": [], "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad width", "/v1/layout?width=wide", sceneJSON, http.StatusBadRequest, errors.ErrCodeInvalidSize},
		{"missing reference", "/v1/layout",
			`{"elements": [{"name": "a", "width": 10, "height": 10, "below": "ghost"}]}`,
			http.StatusUnprocessableEntity, errors.ErrCodeReferenceNotFound},
		{"cycle", "/v1/layout",
			`{"elements": [{"name": "a", "width": 10, "height": 10, "below": "b"}, {"name": "b", "width": 10, "height": 10, "below": "a"}]}`,
			http.StatusUnprocessableEntity, errors.ErrCodeCircularDependency},
		{"too complex", "/v1/layout", interlockedJSON(40), http.StatusUnprocessableEntity, errors.ErrCodeLayoutTooComplex},
		{"too many elements", "/v1/layout", interlockedJSON(errors.MaxElements + 1), http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"bad format", "/v1/render?format=gif", sceneJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no route", "/v2/layout", sceneJSON, http.StatusNotFound, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorResponse](t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
			if body.RequestID == "" || body.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header = %q", body.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

// interlockedJSON returns a scene of n elements where element k aligns its
// left edge with k-1 and its right edge with k-2.
func interlockedJSON(n int) string {
	els := make([]scene.Element, n)
	for k := range els {
		els[k] = scene.Element{Name: fmt.Sprintf("n%d", k), Width: 10, Height: 10}
		if k >= 1 {
			els[k].AlignLeftWith = els[k-1].Name
		}
		if k >= 2 {
			els[k].AlignRightWith = els[k-2].Name
		}
	}
	b, err := json.Marshal(scene.Scene{Elements: els})
	if err != nil {
		panic(err)
	}
	return string(b)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", `id="block-red"`},
		{"dot", "text/vnd.graphviz", `"red" -> "blue"`},
		{"json", "application/json", `"id": "blue"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/v1/render?labels=true&format="+tt.format, sceneJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, body)
			}
		})
	}
}

func TestLayouts_CRUD(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/layouts", `{"name": "pair", "scene": `+sceneJSON+`}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[storage.Record](t, resp)
	if created.ID == "" || created.Name != "pair" || created.Result == nil {
		t.Fatalf("created = %+v", created)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/layouts/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	list := decode[struct {
		Layouts []storage.Record `json:"layouts"`
	}](t, do(t, http.MethodGet, ts.URL+"/v1/layouts", ""))
	if len(list.Layouts) != 1 || list.Layouts[0].ID != created.ID {
		t.Errorf("list = %+v", list.Layouts)
	}

	got := decode[storage.Record](t, do(t, http.MethodGet, ts.URL+"/v1/layouts/"+created.ID, ""))
	if diff := cmp.Diff(created.Result, got.Result); diff != "" {
		t.Errorf("fetched result differs (-created +got):\n%s", diff)
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/v1/layouts/"+created.ID, ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, ts.URL+"/v1/layouts/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
	if body := decode[errorResponse](t, resp); body.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %s", body.Code)
	}
}

func TestLayouts_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"no scene", http.MethodPost, "/v1/layouts", `{"name": "x"}`, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/v1/layouts?limit=-1", "", http.StatusBadRequest},
		{"unknown id", http.MethodDelete, "/v1/layouts/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := do(t, tt.method, ts.URL+tt.path, tt.body); resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidScene, http.StatusBadRequest},
		{errors.ErrCodeCircularDependency, http.StatusUnprocessableEntity},
		{errors.ErrCodeLayoutTooComplex, http.StatusUnprocessableEntity},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.code); got != tt.want {
			t.Errorf("statusOf(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
