package perf

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 4096

// Kind distinguishes HTTP requests from database statements.
type Kind uint8

const (
	KindRequest Kind = iota
	KindQuery
)

// Entry is a single timing sample.
type Entry struct {
	Kind     Kind
	Label    string // "GET /api/events" or "exec events"
	Status   int    // HTTP status, 0 for queries
	Duration time.Duration
	At       time.Time
}

// Collector keeps the most recent samples in a fixed ring.
// When full, the oldest sample is overwritten.
type Collector struct {
	mu    sync.Mutex
	ring  []Entry
	next  int
	total atomic.Int64
}

// NewCollector creates a collector holding up to size samples.
// PRE: none (size <= 0 falls back to DefaultRingSize)
// POST: Returns a ready-to-use collector
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{ring: make([]Entry, size)}
}

// Record stores a sample.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.ring[c.next] = e
	c.next = (c.next + 1) % len(c.ring)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns the number of samples ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.total.Load()
}

// Stat aggregates samples sharing a label.
type Stat struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	MaxMs float64 `json:"max_ms"`
}

// Snapshot is the aggregated view served on the developer perf page.
type Snapshot struct {
	Since          time.Time `json:"since"`
	TotalRecorded  int64     `json:"total_recorded"`
	Requests       int       `json:"requests"`
	ServerErrors   int       `json:"server_errors"`
	RequestP50Ms   float64   `json:"request_p50_ms"`
	RequestP95Ms   float64   `json:"request_p95_ms"`
	RequestP99Ms   float64   `json:"request_p99_ms"`
	SlowestRoutes  []Stat    `json:"slowest_routes"`
	SlowestQueries []Stat    `json:"slowest_queries"`
}

// Snapshot aggregates the samples recorded at or after since.
// PRE: topN >= 0
// POST: Returns percentiles over requests and the topN slowest labels per kind
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := slices.Clone(c.ring)
	c.mu.Unlock()

	snap := Snapshot{Since: since, TotalRecorded: c.TotalRecorded()}
	var durations []float64
	routes := map[string]*Stat{}
	queries := map[string]*Stat{}

	for _, e := range buf {
		if e.At.IsZero() || e.At.Before(since) {
			continue
		}
		ms := float64(e.Duration.Microseconds()) / 1000
		group := queries
		if e.Kind == KindRequest {
			group = routes
			snap.Requests++
			if e.Status >= 500 {
				snap.ServerErrors++
			}
			durations = append(durations, ms)
		}
		s := group[e.Label]
		if s == nil {
			s = &Stat{Label: e.Label}
			group[e.Label] = s
		}
		s.AvgMs = (s.AvgMs*float64(s.Count) + ms) / float64(s.Count+1)
		s.Count++
		s.MaxMs = max(s.MaxMs, ms)
	}

	snap.SlowestRoutes = slowest(routes, topN)
	snap.SlowestQueries = slowest(queries, topN)
	if len(durations) > 0 {
		slices.Sort(durations)
		snap.RequestP50Ms = percentile(durations, 0.50)
		snap.RequestP95Ms = percentile(durations, 0.95)
		snap.RequestP99Ms = percentile(durations, 0.99)
	}
	return snap
}

// percentile interpolates the q-quantile (0..1) of a sorted slice.
func percentile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

func slowest(stats map[string]*Stat, n int) []Stat {
	list := make([]Stat, 0, len(stats))
	for _, s := range stats {
		list = append(list, *s)
	}
	slices.SortFunc(list, func(a, b Stat) int {
		if c := cmp.Compare(b.AvgMs, a.AvgMs); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
