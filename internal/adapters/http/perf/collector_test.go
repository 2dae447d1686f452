package perf

import (
	"math"
	"sync"
	"testing"
	"time"
)

func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Label: "GET /api/events", Status: 200, Duration: 10 * time.Millisecond, At: now})
	c.Record(Entry{Kind: KindRequest, Label: "GET /api/events", Status: 500, Duration: 30 * time.Millisecond, At: now})
	c.Record(Entry{Kind: KindQuery, Label: "query events", Duration: 5 * time.Millisecond, At: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 3 {
		t.Errorf("TotalRecorded = %d, want 3", snap.TotalRecorded)
	}
	if snap.Requests != 2 || snap.ServerErrors != 1 {
		t.Errorf("Requests/ServerErrors = %d/%d, want 2/1", snap.Requests, snap.ServerErrors)
	}
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if got := snap.SlowestRoutes[0]; got.AvgMs != 20 || got.MaxMs != 30 || got.Count != 2 {
		t.Errorf("route stat = %+v", got)
	}
	if len(snap.SlowestQueries) != 1 || snap.SlowestQueries[0].Label != "query events" {
		t.Errorf("SlowestQueries = %+v", snap.SlowestQueries)
	}
}

func TestCollector_RingOverwritesOldest(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Label: "GET /", Duration: time.Duration(i) * time.Millisecond, At: now})
	}
	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.SlowestRoutes[0].Count != 3 {
		t.Errorf("Count = %d, want 3", snap.SlowestRoutes[0].Count)
	}
	// Kept samples are 2, 3, 4 ms.
	if snap.SlowestRoutes[0].AvgMs != 3 {
		t.Errorf("AvgMs = %v, want 3", snap.SlowestRoutes[0].AvgMs)
	}
}

func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()
	for i := 1; i <= 101; i++ {
		c.Record(Entry{Kind: KindRequest, Label: "GET /", Duration: time.Duration(i) * time.Millisecond, At: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	near := func(got, want float64) bool { return math.Abs(got-want) < 0.01 }
	if !near(snap.RequestP50Ms, 51) {
		t.Errorf("P50 = %v, want 51", snap.RequestP50Ms)
	}
	if !near(snap.RequestP95Ms, 96) {
		t.Errorf("P95 = %v, want 96", snap.RequestP95Ms)
	}
	if !near(snap.RequestP99Ms, 100) {
		t.Errorf("P99 = %v, want 100", snap.RequestP99Ms)
	}
}

func TestCollector_SinceFilters(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindRequest, Label: "old", Duration: time.Millisecond, At: now.Add(-time.Hour)})
	c.Record(Entry{Kind: KindRequest, Label: "new", Duration: time.Millisecond, At: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.Requests != 1 || snap.SlowestRoutes[0].Label != "new" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestCollector_TopN(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	for i, label := range []string{"a", "b", "c"} {
		c.Record(Entry{Kind: KindQuery, Label: label, Duration: time.Duration(i+1) * time.Millisecond, At: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 2)
	if len(snap.SlowestQueries) != 2 || snap.SlowestQueries[0].Label != "c" || snap.SlowestQueries[1].Label != "b" {
		t.Errorf("SlowestQueries = %+v", snap.SlowestQueries)
	}
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Record(Entry{Kind: KindRequest, Label: "GET /", At: time.Now()})
			}
		}()
	}
	wg.Wait()
	if c.TotalRecorded() != 800 {
		t.Errorf("TotalRecorded = %d, want 800", c.TotalRecorded())
	}
}
