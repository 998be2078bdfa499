package crown

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ClusterSummary aggregates the modes attached to one cluster leader.
type ClusterSummary struct {
	LeaderID     int     // Index of the cluster leader in the input sequence
	Count        int     // Number of modes in the cluster (leader included)
	MeanX        float64 // Mean position of the member modes
	MeanY        float64
	MeanZ        float64
	PlanarSpread float64 // Standard deviation of planar distance to the mean
}

// SummarizeClusters computes per-cluster summaries from a leader
// assignment. Summaries are ordered by ascending leader ID so output is
// stable across runs over the same input.
func SummarizeClusters(modes []ClusteredMode) []ClusterSummary {
	if len(modes) == 0 {
		return nil
	}

	members := make(map[int][]ClusteredMode)
	for _, m := range modes {
		members[m.ID] = append(members[m.ID], m)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	summaries := make([]ClusterSummary, 0, len(ids))
	for _, id := range ids {
		ms := members[id]
		xs := make([]float64, len(ms))
		ys := make([]float64, len(ms))
		zs := make([]float64, len(ms))
		for i, m := range ms {
			xs[i] = m.X
			ys[i] = m.Y
			zs[i] = m.Z
		}

		meanX := stat.Mean(xs, nil)
		meanY := stat.Mean(ys, nil)
		meanZ := stat.Mean(zs, nil)

		dists := make([]float64, len(ms))
		for i, m := range ms {
			dx := m.X - meanX
			dy := m.Y - meanY
			dists[i] = math.Sqrt(dx*dx + dy*dy)
		}

		spread := 0.0
		if len(dists) > 1 {
			spread = stat.StdDev(dists, nil)
		}

		summaries = append(summaries, ClusterSummary{
			LeaderID:     id,
			Count:        len(ms),
			MeanX:        meanX,
			MeanY:        meanY,
			MeanZ:        meanZ,
			PlanarSpread: spread,
		})
	}
	return summaries
}
