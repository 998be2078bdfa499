package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the segmentation results database.
type DB struct {
	*sql.DB
}

// defaultPragmas are applied to every new connection. WAL keeps readers
// from blocking the run writer; busy_timeout covers short lock
// contention before the store-level retry kicks in.
var defaultPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
}

// NewDB opens (creating if necessary) the SQLite database at path and
// ensures the base schema exists. Schema changes beyond the base tables
// are managed through migrations (see migrate.go).
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	for _, pragma := range defaultPragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	_, err = sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS segmentation_runs (
			run_id            TEXT PRIMARY KEY,
			source            TEXT NOT NULL,
			epsilon           DOUBLE NOT NULL,
			mode_count        BIGINT NOT NULL,
			cluster_count     BIGINT NOT NULL,
			params_json       TEXT,
			created_at        BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_modes (
			run_id            TEXT NOT NULL,
			seq               BIGINT NOT NULL,
			x                 DOUBLE NOT NULL,
			y                 DOUBLE NOT NULL,
			z                 DOUBLE NOT NULL,
			cluster_id        BIGINT NOT NULL,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY (run_id) REFERENCES segmentation_runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_run_modes_cluster
			ON run_modes(run_id, cluster_id);
	`)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create base schema: %w", err)
	}

	return &DB{sqlDB}, nil
}
