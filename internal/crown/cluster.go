package crown

import "math"

// Constants for mode clustering configuration
const (
	// DefaultEpsilon is the default merge distance in meters for mode
	// clustering: modes less than a meter apart collapse together.
	DefaultEpsilon = 1.0
)

// ClusteringParams holds configuration for mode clustering.
type ClusteringParams struct {
	Epsilon float64 // Merge distance in meters
}

// DefaultClusteringParams returns production-default clustering parameters.
func DefaultClusteringParams() ClusteringParams {
	return ClusteringParams{Epsilon: DefaultEpsilon}
}

// FindCluster assigns each centroid a cluster leader using a single
// left-to-right pass: centroid i keeps its own index unless an earlier
// centroid j (scanning j = 0 upward) lies strictly within epsilon in 3D
// Euclidean distance, in which case i takes j's index and the scan
// stops. First match wins, not nearest match, and no transitive
// closure is computed: re-ordering the input can change the partition.
//
// epsilon <= 0 leaves every centroid as its own leader. An empty input
// returns nil.
func FindCluster(centroids []Point, epsilon float64) []ClusteredMode {
	if len(centroids) == 0 {
		return nil
	}

	modes := make([]ClusteredMode, len(centroids))
	for i, c := range centroids {
		id := i
		for j := 0; j < i; j++ {
			dx := c.X - centroids[j].X
			dy := c.Y - centroids[j].Y
			dz := c.Z - centroids[j].Z
			if math.Sqrt(dx*dx+dy*dy+dz*dz) < epsilon {
				id = j
				break
			}
		}
		modes[i] = ClusteredMode{X: c.X, Y: c.Y, Z: c.Z, ID: id}
	}
	return modes
}

// Leaders returns the coordinates of each distinct cluster leader in
// first-appearance order. Feeding these back through FindCluster with
// the same epsilon reproduces the same leader assignment.
func Leaders(modes []ClusteredMode) []Point {
	var leaders []Point
	seen := make(map[int]bool, len(modes))
	for _, m := range modes {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		leaders = append(leaders, Point{X: modes[m.ID].X, Y: modes[m.ID].Y, Z: modes[m.ID].Z})
	}
	return leaders
}

// Clusterer abstracts mode clustering so callers can swap strategies
// without touching the pipeline.
type Clusterer interface {
	Cluster(centroids []Point) []ClusteredMode
	GetParams() ClusteringParams
	SetParams(params ClusteringParams)
}

// ModeClusterer implements Clusterer using the leader rule above. The
// assignment is deterministic given the input order, which keeps replay
// comparisons reproducible.
type ModeClusterer struct {
	params ClusteringParams
}

// NewModeClusterer creates a mode clusterer with the specified epsilon.
func NewModeClusterer(epsilon float64) *ModeClusterer {
	return &ModeClusterer{params: ClusteringParams{Epsilon: epsilon}}
}

// NewDefaultModeClusterer creates a mode clusterer with default parameters.
func NewDefaultModeClusterer() *ModeClusterer {
	return NewModeClusterer(DefaultEpsilon)
}

// Cluster runs the leader-rule pass over the given centroids.
func (c *ModeClusterer) Cluster(centroids []Point) []ClusteredMode {
	return FindCluster(centroids, c.params.Epsilon)
}

// GetParams returns the current clustering parameters.
func (c *ModeClusterer) GetParams() ClusteringParams {
	return c.params
}

// SetParams updates the clustering parameters.
func (c *ModeClusterer) SetParams(params ClusteringParams) {
	c.params = params
}

// Verify at compile time that *ModeClusterer implements Clusterer.
var _ Clusterer = (*ModeClusterer)(nil)
