package monitor

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/banshee-data/canopy.report/internal/crown/storage/sqlite"
)

// WebServer exposes segmentation runs over HTTP: a small JSON API plus
// debugging chart endpoints.
type WebServer struct {
	address string
	store   *sqlite.RunStore
	server  *http.Server
}

// WebServerConfig contains configuration options for the web server
type WebServerConfig struct {
	Address string
	DB      *sql.DB
}

// NewWebServer creates a new web server with the provided configuration
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		store:   sqlite.NewRunStore(config.DB),
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", ws.handleHealth)
	mux.HandleFunc("/api/runs", ws.handleListRuns)
	mux.HandleFunc("/api/runs/", ws.handleRun)
	mux.HandleFunc("/debug/clusters", ws.handleClusterScatter)
	return mux
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ws.server.Shutdown(shutdownCtx)
}

// Close shuts the server down immediately.
func (ws *WebServer) Close() error {
	return ws.server.Close()
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (ws *WebServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := ws.store.ListRuns()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, "failed to list runs: "+err.Error())
		return
	}
	if runs == nil {
		runs = []*sqlite.SegmentationRun{}
	}
	ws.writeJSON(w, runs)
}

// handleRun serves /api/runs/{id} and /api/runs/{id}/modes.
func (ws *WebServer) handleRun(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	runID, sub, _ := strings.Cut(rest, "/")
	if runID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "missing run ID")
		return
	}

	switch sub {
	case "":
		run, err := ws.store.GetRun(runID)
		if err == sql.ErrNoRows {
			ws.writeJSONError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			ws.writeJSONError(w, http.StatusInternalServerError, "failed to load run: "+err.Error())
			return
		}
		ws.writeJSON(w, run)
	case "modes":
		modes, err := ws.store.ListModes(runID)
		if err != nil {
			ws.writeJSONError(w, http.StatusInternalServerError, "failed to load modes: "+err.Error())
			return
		}
		if modes == nil {
			modes = []sqlite.RunMode{}
		}
		ws.writeJSON(w, modes)
	default:
		ws.writeJSONError(w, http.StatusNotFound, "unknown run resource")
	}
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
