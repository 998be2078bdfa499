package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/canopy.report/internal/crown"
)

// SegmentationRun represents one persisted mode clustering pass.
type SegmentationRun struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	Epsilon      float64         `json:"epsilon"`
	ModeCount    int             `json:"mode_count"`
	ClusterCount int             `json:"cluster_count"`
	ParamsJSON   json.RawMessage `json:"params_json,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

// RunMode is one clustered mode row belonging to a run. Seq preserves
// the input order of the centroid sequence; ClusterID is the leader
// index within that sequence.
type RunMode struct {
	RunID     string  `json:"run_id"`
	Seq       int     `json:"seq"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	ClusterID int     `json:"cluster_id"`
}

// RunStore provides persistence for segmentation runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// InsertRun persists a run and its clustered modes in one transaction.
// If run.RunID is empty, a UUID is generated. Mode and cluster counts
// are derived from the given assignment.
func (s *RunStore) InsertRun(run *SegmentationRun, modes []crown.ClusteredMode) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	run.ModeCount = len(modes)
	run.ClusterCount = len(crown.Leaders(modes))

	var paramsStr interface{}
	if len(run.ParamsJSON) > 0 {
		paramsStr = string(run.ParamsJSON)
	}

	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin run insert: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO segmentation_runs (
				run_id, source, epsilon, mode_count, cluster_count,
				params_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.Source, run.Epsilon, run.ModeCount, run.ClusterCount,
			paramsStr, run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO run_modes (run_id, seq, x, y, z, cluster_id)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare mode insert: %w", err)
		}
		defer stmt.Close()

		for i, m := range modes {
			if _, err := stmt.Exec(run.RunID, i, m.X, m.Y, m.Z, m.ID); err != nil {
				return fmt.Errorf("insert mode %d: %w", i, err)
			}
		}

		return tx.Commit()
	})
}

// GetRun returns the run with the given ID, or sql.ErrNoRows.
func (s *RunStore) GetRun(runID string) (*SegmentationRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, source, epsilon, mode_count, cluster_count,
		       params_json, created_at
		FROM segmentation_runs
		WHERE run_id = ?`, runID)
	return scanRun(row)
}

// ListRuns returns all runs ordered by creation time descending.
func (s *RunStore) ListRuns() ([]*SegmentationRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source, epsilon, mode_count, cluster_count,
		       params_json, created_at
		FROM segmentation_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*SegmentationRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListModes returns the clustered modes of a run in input (seq) order.
func (s *RunStore) ListModes(runID string) ([]RunMode, error) {
	rows, err := s.db.Query(`
		SELECT run_id, seq, x, y, z, cluster_id
		FROM run_modes
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run modes: %w", err)
	}
	defer rows.Close()

	var modes []RunMode
	for rows.Next() {
		var m RunMode
		if err := rows.Scan(&m.RunID, &m.Seq, &m.X, &m.Y, &m.Z, &m.ClusterID); err != nil {
			return nil, fmt.Errorf("scan run mode: %w", err)
		}
		modes = append(modes, m)
	}
	return modes, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*SegmentationRun, error) {
	var r SegmentationRun
	var params sql.NullString
	err := row.Scan(&r.RunID, &r.Source, &r.Epsilon, &r.ModeCount,
		&r.ClusterCount, &params, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if params.Valid && params.String != "" {
		r.ParamsJSON = json.RawMessage(params.String)
	}
	return &r, nil
}
