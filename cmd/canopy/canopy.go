package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/canopy.report/internal/config"
	"github.com/banshee-data/canopy.report/internal/crown"
	"github.com/banshee-data/canopy.report/internal/crown/monitor"
	"github.com/banshee-data/canopy.report/internal/crown/storage/sqlite"
	"github.com/banshee-data/canopy.report/internal/db"
)

var (
	centroidsFile = flag.String("centroids", "", "CSV file of candidate mode centroids (x,y,z per row)")
	epsilon       = flag.Float64("epsilon", config.DefaultClusterEpsilon, "Mode merge distance in meters (overrides config)")
	configFile    = flag.String("config", "", "Optional tuning config JSON file")
	dbFile        = flag.String("db", "canopy_data.db", "Path to the SQLite database file")
	migrationsDir = flag.String("migrations", "", "Apply migrations from this directory before running")
	source        = flag.String("source", "", "Source label recorded with the run (default: centroids file name)")
	chartFile     = flag.String("chart", "", "Write an HTML cluster scatter chart to this file")
	plotsDir      = flag.String("plots", "", "Write kernel profile PNGs to this directory")
	listen        = flag.String("serve", "", "Serve the run API and debug charts on this address (e.g. :8082)")
)

func main() {
	flag.Parse()

	cfg := config.EmptyTuningConfig()
	if *configFile != "" {
		loaded, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	// An explicit -epsilon wins over the config file.
	eps := cfg.GetClusterEpsilon()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "epsilon" {
			eps = *epsilon
		}
	})

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", *dbFile, err)
	}
	defer database.Close()

	if *migrationsDir != "" {
		if err := database.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	store := sqlite.NewRunStore(database.DB)

	if *centroidsFile != "" {
		if err := runClustering(store, cfg, eps); err != nil {
			log.Fatalf("clustering run failed: %v", err)
		}
	}

	if *plotsDir != "" {
		files, err := monitor.PlotKernelProfiles(*plotsDir,
			cfg.GetCrownRadius(), cfg.GetCrownHeight(), cfg.GetKernelWidth())
		if err != nil {
			log.Fatalf("failed to plot kernel profiles: %v", err)
		}
		for _, f := range files {
			log.Printf("wrote %s", f)
		}
	}

	if *listen != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ws := monitor.NewWebServer(monitor.WebServerConfig{Address: *listen, DB: database.DB})
		if err := ws.Start(ctx); err != nil {
			log.Fatalf("server shutdown failed: %v", err)
		}
		return
	}

	if *centroidsFile == "" && *plotsDir == "" {
		flag.Usage()
		os.Exit(2)
	}
}

// runClustering reads the centroid CSV, runs the leader-rule pass, and
// records the result as a segmentation run.
func runClustering(store *sqlite.RunStore, cfg *config.TuningConfig, eps float64) error {
	centroids, err := loadCentroidsCSV(*centroidsFile)
	if err != nil {
		return fmt.Errorf("failed to load centroids: %w", err)
	}

	modes := crown.FindCluster(centroids, eps)
	summaries := crown.SummarizeClusters(modes)

	label := *source
	if label == "" {
		label = *centroidsFile
	}

	params, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal run params: %w", err)
	}

	run := &sqlite.SegmentationRun{
		Source:     label,
		Epsilon:    eps,
		ParamsJSON: params,
	}
	if err := store.InsertRun(run, modes); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	log.Printf("run %s: %d centroids -> %d clusters (epsilon=%.3fm)",
		run.RunID, len(modes), len(summaries), eps)
	for _, s := range summaries {
		log.Printf("  cluster %d: %d modes, mean=(%.2f, %.2f, %.2f), spread=%.2fm",
			s.LeaderID, s.Count, s.MeanX, s.MeanY, s.MeanZ, s.PlanarSpread)
	}

	if *chartFile != "" {
		stored, err := store.ListModes(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to load stored modes: %w", err)
		}
		f, err := os.Create(*chartFile)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		defer f.Close()
		if err := monitor.RenderClusterScatter(f, run.RunID, stored); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		log.Printf("wrote %s", *chartFile)
	}

	return nil
}
