package monitor

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/canopy.report/internal/crown"
	"github.com/banshee-data/canopy.report/internal/crown/storage/sqlite"
	"github.com/banshee-data/canopy.report/internal/db"
)

func setupServer(t *testing.T) (*WebServer, *sqlite.RunStore, *sql.DB) {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ws := NewWebServer(WebServerConfig{Address: ":0", DB: database.DB})
	return ws, sqlite.NewRunStore(database.DB), database.DB
}

func insertTestRun(t *testing.T, store *sqlite.RunStore) *sqlite.SegmentationRun {
	t.Helper()
	modes := crown.FindCluster([]crown.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0},
		{X: 5, Y: 5, Z: 1},
	}, 0.6)
	run := &sqlite.SegmentationRun{Source: "test.csv", Epsilon: 0.6}
	if err := store.InsertRun(run, modes); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	return run
}

func TestHandleHealth(t *testing.T) {
	ws, _, _ := setupServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandleListRuns(t *testing.T) {
	ws, store, _ := setupServer(t)

	// Empty database returns an empty array, not null.
	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array for no runs, got %q", body)
	}

	run := insertTestRun(t, store)

	rec = httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	var runs []sqlite.SegmentationRun
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("failed to decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != run.RunID {
		t.Errorf("unexpected runs payload: %+v", runs)
	}
}

func TestHandleRun(t *testing.T) {
	ws, store, _ := setupServer(t)
	run := insertTestRun(t, store)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got sqlite.SegmentationRun
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode run: %v", err)
	}
	if got.ModeCount != 3 || got.ClusterCount != 2 {
		t.Errorf("unexpected run payload: %+v", got)
	}
}

func TestHandleRun_NotFound(t *testing.T) {
	ws, _, _ := setupServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleRunModes(t *testing.T) {
	ws, store, _ := setupServer(t)
	run := insertTestRun(t, store)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.RunID+"/modes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var modes []sqlite.RunMode
	if err := json.Unmarshal(rec.Body.Bytes(), &modes); err != nil {
		t.Fatalf("failed to decode modes: %v", err)
	}
	if len(modes) != 3 {
		t.Fatalf("expected 3 modes, got %d", len(modes))
	}
	for i, m := range modes {
		if m.Seq != i {
			t.Errorf("mode %d out of order: seq %d", i, m.Seq)
		}
	}
}

func TestHandleClusterScatter(t *testing.T) {
	ws, store, _ := setupServer(t)
	run := insertTestRun(t, store)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/clusters?run_id="+run.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "echarts") {
		t.Error("expected rendered chart HTML to reference echarts")
	}
}

func TestHandleClusterScatter_MissingRunID(t *testing.T) {
	ws, _, _ := setupServer(t)

	rec := httptest.NewRecorder()
	ws.setupRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/clusters", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
