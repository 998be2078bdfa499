package crown

import (
	"math"
	"testing"
)

func TestSummarizeClusters_Empty(t *testing.T) {
	if got := SummarizeClusters(nil); got != nil {
		t.Errorf("expected nil summaries for empty input, got %v", got)
	}
}

func TestSummarizeClusters_SingleCluster(t *testing.T) {
	modes := []ClusteredMode{
		{X: 0, Y: 0, Z: 10, ID: 0},
		{X: 2, Y: 0, Z: 12, ID: 0},
	}
	got := SummarizeClusters(modes)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	s := got[0]
	if s.LeaderID != 0 || s.Count != 2 {
		t.Errorf("unexpected leader/count: %+v", s)
	}
	if s.MeanX != 1 || s.MeanY != 0 || s.MeanZ != 11 {
		t.Errorf("unexpected means: %+v", s)
	}
	// Both members are distance 1 from the mean, so the spread of the
	// distance samples is zero.
	if s.PlanarSpread != 0 {
		t.Errorf("expected zero planar spread, got %v", s.PlanarSpread)
	}
}

func TestSummarizeClusters_OrderedByLeader(t *testing.T) {
	modes := []ClusteredMode{
		{X: 9, Y: 9, Z: 2, ID: 4},
		{X: 0, Y: 0, Z: 0, ID: 0},
		{X: 5, Y: 5, Z: 1, ID: 2},
	}
	got := SummarizeClusters(modes)
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	for i, wantID := range []int{0, 2, 4} {
		if got[i].LeaderID != wantID {
			t.Errorf("summary %d: expected leader %d, got %d", i, wantID, got[i].LeaderID)
		}
	}
}

func TestSummarizeClusters_SingletonSpread(t *testing.T) {
	got := SummarizeClusters([]ClusteredMode{{X: 1, Y: 2, Z: 3, ID: 0}})
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].PlanarSpread != 0 || math.IsNaN(got[0].PlanarSpread) {
		t.Errorf("expected zero spread for singleton, got %v", got[0].PlanarSpread)
	}
}
