package monitor

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/canopy.report/internal/crown/storage/sqlite"
)

// handleClusterScatter renders a quick scatter plot (HTML) of a run's
// clustered modes using go-echarts. This is a debugging-only endpoint
// (no auth) to eyeball mode merging without a full UI.
// Query params:
//   - run_id (required)
func (ws *WebServer) handleClusterScatter(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "run_id query parameter required")
		return
	}

	modes, err := ws.store.ListModes(runID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, "failed to load modes: "+err.Error())
		return
	}
	if len(modes) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "no modes for run")
		return
	}

	var buf bytes.Buffer
	if err := RenderClusterScatter(&buf, runID, modes); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// RenderClusterScatter writes an HTML scatter chart of the given modes,
// coloured by cluster leader ID. The CLI uses it to write standalone
// chart files; handleClusterScatter serves the same chart over HTTP.
func RenderClusterScatter(w io.Writer, runID string, modes []sqlite.RunMode) error {
	data := make([]opts.ScatterData, 0, len(modes))
	maxAbs := 0.0
	maxID := 0
	for _, m := range modes {
		maxAbs = max(maxAbs, math.Abs(m.X), math.Abs(m.Y))
		if m.ClusterID > maxID {
			maxID = m.ClusterID
		}
		data = append(data, opts.ScatterData{Value: []interface{}{m.X, m.Y, m.ClusterID}})
	}

	// Add a small padding so points at the edges are visible
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if maxID == 0 {
		maxID = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Crown Mode Clusters", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Crown Mode Clusters", Subtitle: fmt.Sprintf("run=%s modes=%d", runID, len(modes))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxID),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("modes", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	return scatter.Render(w)
}
