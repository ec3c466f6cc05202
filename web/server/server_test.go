package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func testOptions() Options {
	options := DefaultOptions()
	options.SamplesPerPixel = 1
	options.Passes = 3
	options.Workers = 2
	return options
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeProgress(t *testing.T, rec *httptest.ResponseRecorder) Progress {
	t.Helper()
	var p Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("Failed to decode progress %q: %v", rec.Body.String(), err)
	}
	return p
}

func waitForState(t *testing.T, s *Server, states ...string) Progress {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		p := decodeProgress(t, doRequest(t, s, http.MethodGet, "/api/progress"))
		for _, state := range states {
			if p.State == state {
				return p
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timeout waiting for states %v", states)
	return Progress{}
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(testOptions()), http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Errorf("Unexpected health body %q", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, NewServer(testOptions()), http.MethodGet, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var infos []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("Failed to decode scenes: %v", err)
	}
	if len(infos) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(infos))
	}
}

func TestIdleServer(t *testing.T) {
	s := NewServer(testOptions())

	p := decodeProgress(t, doRequest(t, s, http.MethodGet, "/api/progress"))
	if p.State != StateIdle {
		t.Errorf("Expected idle state, got %q", p.State)
	}
	if rec := doRequest(t, s, http.MethodGet, "/api/preview.png"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 preview before any render, got %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodPost, "/api/cancel"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 cancel without a render, got %d", rec.Code)
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	s := NewServer(testOptions())

	tests := []struct {
		name   string
		target string
	}{
		{"unknown scene", "/api/render?scene=nope"},
		{"missing scene", "/api/render"},
		{"bad width", "/api/render?scene=furnace&width=abc"},
		{"huge height", "/api/render?scene=furnace&height=100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(t, s, http.MethodPost, tt.target); rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRender_CompletesWithPreview(t *testing.T) {
	s := NewServer(testOptions())

	rec := doRequest(t, s, http.MethodPost, "/api/render?scene=furnace&width=16&height=12")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	started := decodeProgress(t, rec)
	if started.ID == "" || started.Scene != "furnace" || started.TotalPasses != 3 {
		t.Errorf("Unexpected start response %+v", started)
	}

	p := waitForState(t, s, StateDone, StateFailed)
	if p.State != StateDone {
		t.Fatalf("Render failed: %s", p.Error)
	}
	if p.CurrentPass != 3 || p.ProgressPercent != 100 || p.Rays == 0 {
		t.Errorf("Unexpected final progress %+v", p)
	}

	preview := doRequest(t, s, http.MethodGet, "/api/preview.png")
	if preview.Code != http.StatusOK {
		t.Fatalf("Expected preview, got %d", preview.Code)
	}
	if ct := preview.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	var lines []ConsoleMessage
	console := doRequest(t, s, http.MethodGet, "/api/console")
	if err := json.Unmarshal(console.Body.Bytes(), &lines); err != nil {
		t.Fatalf("Failed to decode console: %v", err)
	}
}

func TestHandleRender_BusyReturnsConflict(t *testing.T) {
	s := NewServer(testOptions())

	// A running job blocks new renders
	s.job = &renderJob{
		state:    Progress{ID: "render-0", State: StateRunning, TotalPasses: 1},
		started:  time.Now(),
		cancel:   func() {},
		finished: make(chan struct{}),
	}

	if rec := doRequest(t, s, http.MethodPost, "/api/render?scene=furnace"); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}

	s.job.mu.Lock()
	s.job.state.State = StateDone
	s.job.mu.Unlock()

	rec := doRequest(t, s, http.MethodPost, "/api/render?scene=furnace&width=4&height=4")
	if rec.Code != http.StatusAccepted {
		t.Errorf("Expected 202 once the previous render finished, got %d", rec.Code)
	}
	waitForState(t, s, StateDone, StateFailed)
}

func TestDimensionParam(t *testing.T) {
	s := NewServer(testOptions())
	for _, target := range []string{"/api/render?scene=furnace&width=0", "/api/render?scene=furnace&width=-3"} {
		if rec := doRequest(t, s, http.MethodPost, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestHandleRender_ForwardsAssetPaths(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "tetra.obj")
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 3 2\nf 1 2 4\nf 1 4 3\nf 2 3 4\n"
	if err := os.WriteFile(objPath, []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}

	options := testOptions()
	options.ObjPath = objPath
	options.EnvMapPath = filepath.Join(dir, "missing-dome.png")
	s := NewServer(options)

	// The mesh loads, so the failure can only come from the forwarded dome path
	rec := doRequest(t, s, http.MethodPost, "/api/render?scene=suzanne&width=4&height=4")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "light dome") {
		t.Errorf("Expected light dome error, got %s", rec.Body.String())
	}

	// A failed load leaves the server idle
	if p := decodeProgress(t, doRequest(t, s, http.MethodGet, "/api/progress")); p.State != StateIdle {
		t.Errorf("Expected idle state, got %q", p.State)
	}
}

func TestHandleRender_MissingMeshIsServerError(t *testing.T) {
	options := testOptions()
	options.PlyPath = filepath.Join(t.TempDir(), "dragon.ply")
	s := NewServer(options)

	rec := doRequest(t, s, http.MethodPost, "/api/render?scene=dragon")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "missing asset") {
		t.Errorf("Expected missing asset error, got %d: %s", rec.Code, rec.Body.String())
	}
}
